package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"
)

const surgeEstimate = 15 * time.Second

type surge struct {
	base
}

func newSurge(b base, _ Deps) Adapter {
	return &surge{base: b}
}

func (a *surge) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}

	domain := lo.Ternary(req.Config.CustomDomain != "", req.Config.CustomDomain, req.Slug+".surge.sh")

	tarball, err := req.Files.TarGz("project/")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	header := basicAuth(creds["SURGE_LOGIN"], creds["SURGE_TOKEN"])
	header.Set("Version", "0.24.0")

	if err = a.client.raw(ctx, http.MethodPut, a.url("/"+domain), header, "application/gzip", tarball, nil); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", domain, err)
	}

	return &Release{
		URL:                  "https://" + domain,
		ProviderDeploymentID: domain,
		EstimatedTime:        surgeEstimate,
		Logs: []string{
			fmt.Sprintf("Published %d files (%d bytes) to %s", len(req.Files), len(tarball), domain),
		},
	}, nil
}
