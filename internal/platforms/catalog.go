package platforms

const (
	Vercel          = "vercel"
	Netlify         = "netlify"
	CloudflarePages = "cloudflare-pages"
	GitHubPages     = "github-pages"
	GitLabPages     = "gitlab-pages"
	Firebase        = "firebase"
	Surge           = "surge"
	AWSS3           = "aws-s3"
	S3Compatible    = "s3-compatible"
	Heroku          = "heroku"
	Neocities       = "neocities"
	DenoDeploy      = "deno-deploy"
)

// staticSites returns a fresh list of the static-site formats for each entry.
func staticSites() []Format {
	return []Format{
		FormatStatic, FormatReact, FormatVue, FormatAngular, FormatSvelte, FormatGatsby, FormatHugo, FormatJekyll,
	}
}

// catalog is the registry content in insertion order.
//
//nolint:gochecknoglobals //static catalog
var catalog = []Platform{
	{
		ID:               Vercel,
		Name:             "Vercel",
		APIBaseURL:       "https://api.vercel.com",
		AuthType:         AuthTypeToken,
		SupportedFormats: append([]Format{FormatNextJS, FormatNuxt, FormatNode}, staticSites()...),
		Features: []Feature{
			FeatureCustomDomain, FeatureSSL, FeatureCDN, FeaturePreviews, FeatureServerless, FeatureEdge,
			FeatureAnalytics, FeatureRollback,
		},
		Pricing:     PricingFreemium,
		Credentials: []string{"VERCEL_TOKEN"},
	},
	{
		ID:               Netlify,
		Name:             "Netlify",
		APIBaseURL:       "https://api.netlify.com",
		AuthType:         AuthTypeToken,
		SupportedFormats: append([]Format{FormatNextJS, FormatNuxt}, staticSites()...),
		Features: []Feature{
			FeatureCustomDomain, FeatureSSL, FeatureCDN, FeaturePreviews, FeatureServerless, FeatureForms,
			FeatureRollback,
		},
		Pricing:     PricingFreemium,
		Credentials: []string{"NETLIFY_TOKEN"},
	},
	{
		ID:               CloudflarePages,
		Name:             "Cloudflare Pages",
		APIBaseURL:       "https://api.cloudflare.com/client/v4",
		AuthType:         AuthTypeToken,
		SupportedFormats: append([]Format{FormatNextJS}, staticSites()...),
		Features: []Feature{
			FeatureCustomDomain, FeatureSSL, FeatureCDN, FeaturePreviews, FeatureEdge, FeatureAnalytics,
		},
		Pricing:     PricingFreemium,
		Credentials: []string{"CLOUDFLARE_TOKEN", "CLOUDFLARE_ACCOUNT_ID"},
	},
	{
		ID:               GitHubPages,
		Name:             "GitHub Pages",
		APIBaseURL:       "https://api.github.com",
		AuthType:         AuthTypeToken,
		SupportedFormats: staticSites(),
		Features:         []Feature{FeatureCustomDomain, FeatureSSL, FeatureCDN, FeatureGitIntegration},
		Pricing:          PricingFree,
		Credentials:      []string{"GITHUB_TOKEN"},
	},
	{
		ID:               GitLabPages,
		Name:             "GitLab Pages",
		APIBaseURL:       "https://gitlab.com/api/v4",
		AuthType:         AuthTypeToken,
		SupportedFormats: staticSites(),
		Features:         []Feature{FeatureCustomDomain, FeatureSSL, FeatureGitIntegration},
		Pricing:          PricingFree,
		Credentials:      []string{"GITLAB_TOKEN"},
	},
	{
		ID:               Firebase,
		Name:             "Firebase Hosting",
		APIBaseURL:       "https://firebasehosting.googleapis.com/v1beta1",
		AuthType:         AuthTypeOAuth,
		SupportedFormats: staticSites(),
		Features: []Feature{
			FeatureCustomDomain, FeatureSSL, FeatureCDN, FeaturePreviews, FeatureRollback, FeatureDatabases,
		},
		Pricing:     PricingFreemium,
		Credentials: []string{"FIREBASE_PROJECT_ID", "FIREBASE_TOKEN"},
	},
	{
		ID:               Surge,
		Name:             "Surge",
		APIBaseURL:       "https://surge.surge.sh",
		AuthType:         AuthTypeToken,
		SupportedFormats: staticSites(),
		Features:         []Feature{FeatureCustomDomain, FeatureSSL, FeatureCDN},
		Pricing:          PricingFreemium,
		Credentials:      []string{"SURGE_LOGIN", "SURGE_TOKEN"},
	},
	{
		ID:               AWSS3,
		Name:             "AWS S3 Static Website",
		APIBaseURL:       "https://s3.amazonaws.com",
		AuthType:         AuthTypeKey,
		SupportedFormats: staticSites(),
		Features:         []Feature{FeatureObjectStorage, FeatureCustomDomain},
		Pricing:          PricingPaid,
		Credentials:      []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"},
	},
	{
		ID:               S3Compatible,
		Name:             "S3-Compatible Object Storage",
		APIBaseURL:       "",
		AuthType:         AuthTypeKey,
		SupportedFormats: []Format{FormatStatic},
		Features:         []Feature{FeatureObjectStorage},
		Pricing:          PricingPaid,
		Credentials:      []string{"S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY"},
	},
	{
		ID:               Heroku,
		Name:             "Heroku",
		APIBaseURL:       "https://api.heroku.com",
		AuthType:         AuthTypeKey,
		SupportedFormats: []Format{FormatNode, FormatNextJS, FormatNuxt},
		Features:         []Feature{FeatureCustomDomain, FeatureSSL, FeatureDatabases, FeatureRollback},
		Pricing:          PricingPaid,
		Credentials:      []string{"HEROKU_API_KEY"},
	},
	{
		ID:               Neocities,
		Name:             "Neocities",
		APIBaseURL:       "https://neocities.org/api",
		AuthType:         AuthTypeKey,
		SupportedFormats: []Format{FormatStatic, FormatHugo, FormatJekyll},
		Features:         []Feature{FeatureSSL, FeatureCustomDomain},
		Pricing:          PricingFreemium,
		Credentials:      []string{"NEOCITIES_API_KEY"},
	},
	{
		ID:               DenoDeploy,
		Name:             "Deno Deploy",
		APIBaseURL:       "https://api.deno.com/v1",
		AuthType:         AuthTypeToken,
		SupportedFormats: []Format{FormatStatic, FormatDeno, FormatReact},
		Features:         []Feature{FeatureSSL, FeatureEdge, FeatureCustomDomain},
		Pricing:          PricingFreemium,
		Credentials:      []string{"DENO_DEPLOY_TOKEN", "DENO_ORG_ID"},
	},
}

// recommendations maps a project type to platform ids, best match first.
//
//nolint:gochecknoglobals //static table
var recommendations = map[string][]string{
	"react":     {Vercel, Netlify, CloudflarePages},
	"nextjs":    {Vercel, Netlify},
	"vue":       {Netlify, Vercel, CloudflarePages},
	"nuxt":      {Vercel, Netlify},
	"angular":   {Netlify, Firebase, Vercel},
	"svelte":    {Vercel, CloudflarePages, Netlify},
	"static":    {GitHubPages, Netlify, CloudflarePages, Surge},
	"node":      {Heroku, Vercel},
	"deno":      {DenoDeploy},
	"ecommerce": {Vercel, Netlify, Firebase},
	"portfolio": {GitHubPages, Netlify, Surge},
	"blog":      {Netlify, GitHubPages, Neocities},
	"docs":      {GitHubPages, GitLabPages, CloudflarePages},
	"landing":   {Netlify, Vercel, Surge},
	"assets":    {AWSS3, S3Compatible, CloudflarePages},
}

//nolint:gochecknoglobals //static table
var defaultRecommendations = []string{Vercel, Netlify}
