package providers

import (
	"context"
	"strings"

	"github.com/mayaweb/udeploy/internal/git"
	"github.com/mayaweb/udeploy/internal/platforms"
	"go.uber.org/zap"
)

// Publisher pushes a file snapshot to a git remote.
type Publisher interface {
	Publish(ctx context.Context, req git.PublishRequest) (*git.PublishResult, error)
}

// Deps carries what built-in adapters share.
type Deps struct {
	Platforms   *platforms.Registry
	Credentials CredentialSource
	Publisher   Publisher
	Config      Config
	Logger      *zap.Logger
}

// base holds the plumbing every adapter embeds.
type base struct {
	platform platforms.Platform

	// endpoint is the API base url without a trailing slash.
	endpoint string
	// overridden reports that endpoint came from configuration.
	overridden bool

	creds  CredentialSource
	client *apiClient
	logger *zap.Logger
}

func newBase(platform platforms.Platform, deps Deps, client *apiClient) base {
	endpoint, overridden := deps.Config.Endpoints[platform.ID]
	if !overridden || endpoint == "" {
		endpoint, overridden = platform.APIBaseURL, false
	}

	return base{
		platform:   platform,
		endpoint:   strings.TrimRight(endpoint, "/"),
		overridden: overridden,
		creds:      deps.Credentials,
		client:     client,
		logger:     deps.Logger.With(zap.String("platform", platform.ID)),
	}
}

func (b *base) Platform() string {
	return b.platform.ID
}

// credentials resolves every credential the platform declares.
func (b *base) credentials() (credentials, error) {
	return resolveCredentials(b.creds, string(b.platform.AuthType), b.platform.Credentials)
}

// optional returns a credential that has a fallback value.
func (b *base) optional(key, fallback string) string {
	if value, ok := b.creds.Lookup(key); ok {
		return value
	}

	return fallback
}

func (b *base) url(path string) string {
	return b.endpoint + path
}
