package platforms

// AuthType is the credential mechanism a hosting platform expects.
type AuthType string

const (
	AuthTypeToken AuthType = "token"
	AuthTypeKey   AuthType = "key"
	AuthTypeOAuth AuthType = "oauth"
)

// Pricing is the billing tier advertised for a platform.
type Pricing string

const (
	PricingFree     Pricing = "free"
	PricingPaid     Pricing = "paid"
	PricingFreemium Pricing = "freemium"
)

// Format is a project format tag accepted by a platform.
type Format string

const (
	FormatStatic  Format = "static"
	FormatReact   Format = "react"
	FormatVue     Format = "vue"
	FormatAngular Format = "angular"
	FormatSvelte  Format = "svelte"
	FormatNextJS  Format = "nextjs"
	FormatNuxt    Format = "nuxt"
	FormatGatsby  Format = "gatsby"
	FormatHugo    Format = "hugo"
	FormatJekyll  Format = "jekyll"
	FormatNode    Format = "node"
	FormatDeno    Format = "deno"
)

// Feature is a capability tag.
type Feature string

const (
	FeatureCustomDomain   Feature = "custom-domain"
	FeatureSSL            Feature = "ssl"
	FeatureCDN            Feature = "cdn"
	FeaturePreviews       Feature = "preview-deployments"
	FeatureServerless     Feature = "serverless-functions"
	FeatureEdge           Feature = "edge-functions"
	FeatureForms          Feature = "forms"
	FeatureAnalytics      Feature = "analytics"
	FeatureRollback       Feature = "instant-rollback"
	FeatureGitIntegration Feature = "git-integration"
	FeatureDatabases      Feature = "databases"
	FeatureObjectStorage  Feature = "object-storage"
)

// Platform is an immutable registry entry describing a deployment target.
type Platform struct {
	ID               string
	Name             string
	APIBaseURL       string
	AuthType         AuthType
	SupportedFormats []Format
	Features         []Feature
	Pricing          Pricing

	// Credentials lists the environment variables the adapter requires.
	Credentials []string
}
