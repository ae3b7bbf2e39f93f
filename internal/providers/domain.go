package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/packager"
)

const (
	maxSlugLength    = 63
	slugDigestLength = 8
)

// Request is the input of a single adapter invocation.
type Request struct {
	Config deployments.Config
	Files  packager.Files
	// Slug names the remote project, stable across retries of the same project.
	Slug string
}

// Release describes a successful deployment on the provider side.
type Release struct {
	URL                  string
	ProviderDeploymentID string
	EstimatedTime        time.Duration
	Logs                 []string
}

// Adapter deploys packaged files to one hosting platform.
type Adapter interface {
	Platform() string
	Deploy(ctx context.Context, req Request) (*Release, error)
}

// Canceler is implemented by adapters whose provider can abort a deployment.
type Canceler interface {
	Cancel(ctx context.Context, providerDeploymentID string) error
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the deterministic remote project name for a project id.
// Ids that had to be normalized or shortened get a digest suffix so that
// distinct ids never share a remote project.
func Slug(prefix, projectID string) string {
	id := strings.Trim(slugInvalidChars.ReplaceAllString(strings.ToLower(projectID), "-"), "-")
	name := id
	if prefix != "" {
		name = strings.Trim(prefix+"-"+id, "-")
	}

	if id == projectID && len(name) <= maxSlugLength {
		return name
	}

	sum := sha256.Sum256([]byte(projectID))
	suffix := hex.EncodeToString(sum[:])[:slugDigestLength]

	if limit := maxSlugLength - slugDigestLength - 1; len(name) > limit {
		name = strings.TrimRight(name[:limit], "-")
	}

	return strings.TrimLeft(name+"-"+suffix, "-")
}

// checkURL accepts absolute http(s) urls with a host.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: provider returned no usable url %q", ErrProvider, raw)
	}

	return nil
}

// hostURL turns a host reported by a provider into an https url.
func hostURL(host string) (string, error) {
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}

	return host, checkURL(host)
}
