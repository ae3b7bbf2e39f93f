package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const neocitiesEstimate = 10 * time.Second

type neocities struct {
	base
}

func newNeocities(b base, _ Deps) Adapter {
	return &neocities{base: b}
}

type neocitiesResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Info    struct {
		Sitename string `json:"sitename"`
		Domain   string `json:"domain"`
	} `json:"info"`
}

func (r *neocitiesResponse) err() error {
	if r.Result == "success" {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrProvider, r.Message)
}

// Deploy uploads into the site bound to the API key; Neocities has one site
// per account, so the project slug is informational only.
func (a *neocities) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	auth := bearer(creds["NEOCITIES_API_KEY"])

	files := make([]formFile, 0, len(req.Files))
	for _, path := range req.Files.Paths() {
		files = append(files, formFile{
			Field:       path,
			Name:        path,
			ContentType: req.Files[path].ContentType,
			Content:     req.Files[path].Content,
		})
	}

	body, contentType, err := multipartForm(nil, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	var uploaded neocitiesResponse
	if err = a.client.raw(ctx, http.MethodPost, a.url("/upload"), auth, contentType, body, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to upload files: %w", err)
	}
	if err = uploaded.err(); err != nil {
		return nil, fmt.Errorf("failed to upload files: %w", err)
	}

	var info neocitiesResponse
	if err = a.client.json(ctx, http.MethodGet, a.url("/info"), auth, nil, &info); err != nil {
		return nil, fmt.Errorf("failed to read site info: %w", err)
	}
	if err = info.err(); err != nil {
		return nil, fmt.Errorf("failed to read site info: %w", err)
	}

	siteURL := fmt.Sprintf("https://%s.neocities.org", info.Info.Sitename)
	if info.Info.Domain != "" {
		siteURL = "https://" + info.Info.Domain
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: info.Info.Sitename,
		EstimatedTime:        neocitiesEstimate,
		Logs: []string{
			fmt.Sprintf("Uploaded %d files to %s (project %s)", len(files), info.Info.Sitename, req.Slug),
		},
	}, nil
}
