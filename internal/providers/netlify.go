package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
)

const netlifyEstimate = 20 * time.Second

type netlify struct {
	base
}

func newNetlify(b base, _ Deps) Adapter {
	return &netlify{base: b}
}

type netlifySite struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	SSLURL string `json:"ssl_url"`
}

type netlifyDeploy struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	SSLURL       string `json:"ssl_url"`
	DeploySSLURL string `json:"deploy_ssl_url"`
}

func (a *netlify) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	auth := bearer(creds["NETLIFY_TOKEN"])

	site, created, err := a.ensureSite(ctx, auth, req)
	if err != nil {
		return nil, err
	}

	archive, err := req.Files.Zip()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	var deploy netlifyDeploy
	if err = a.client.raw(ctx, http.MethodPost,
		a.url("/api/v1/sites/"+site.ID+"/deploys"),
		auth, "application/zip", archive, &deploy); err != nil {
		return nil, fmt.Errorf("failed to upload site archive: %w", err)
	}

	siteURL, err := hostURL(lo.CoalesceOrEmpty(site.SSLURL, deploy.SSLURL, site.URL, deploy.DeploySSLURL))
	if err != nil {
		return nil, err
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: deploy.ID,
		EstimatedTime:        netlifyEstimate,
		Logs: []string{
			lo.Ternary(created, "Created site ", "Reusing site ") + site.Name,
			fmt.Sprintf("Uploaded %d bytes archive, deploy %s is %s", len(archive), deploy.ID, deploy.State),
		},
	}, nil
}

func (a *netlify) ensureSite(ctx context.Context, auth http.Header, req Request) (*netlifySite, bool, error) {
	var sites []netlifySite
	query := url.Values{"name": {req.Slug}, "filter": {"all"}}
	if err := a.client.json(ctx, http.MethodGet, a.url("/api/v1/sites?"+query.Encode()), auth, nil, &sites); err != nil {
		return nil, false, fmt.Errorf("failed to look up site: %w", err)
	}

	if site, ok := lo.Find(sites, func(s netlifySite) bool { return s.Name == req.Slug }); ok {
		return &site, false, nil
	}

	payload := map[string]any{"name": req.Slug}
	if req.Config.CustomDomain != "" {
		payload["custom_domain"] = req.Config.CustomDomain
	}

	var site netlifySite
	if err := a.client.json(ctx, http.MethodPost, a.url("/api/v1/sites"), auth, payload, &site); err != nil {
		return nil, false, fmt.Errorf("failed to create site: %w", err)
	}

	return &site, true, nil
}

func (a *netlify) Cancel(ctx context.Context, providerDeploymentID string) error {
	creds, err := a.credentials()
	if err != nil {
		return err
	}

	if err = a.client.json(ctx, http.MethodPost,
		a.url("/api/v1/deploys/"+providerDeploymentID+"/cancel"),
		bearer(creds["NETLIFY_TOKEN"]), nil, nil); err != nil {
		return fmt.Errorf("failed to cancel deploy: %w", err)
	}

	return nil
}
