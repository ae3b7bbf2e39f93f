package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const cloudflareEstimate = 45 * time.Second

type cloudflarePages struct {
	base
}

func newCloudflarePages(b base, _ Deps) Adapter {
	return &cloudflarePages{base: b}
}

// cloudflareEnvelope is the response wrapper of the Cloudflare v4 API.
type cloudflareEnvelope[T any] struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Result T `json:"result"`
}

func (e *cloudflareEnvelope[T]) err() error {
	if e.Success {
		return nil
	}
	if len(e.Errors) == 0 {
		return fmt.Errorf("%w: request was not successful", ErrProvider)
	}

	return fmt.Errorf("%w: %d %s", ErrProvider, e.Errors[0].Code, e.Errors[0].Message)
}

type cloudflareProject struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

type cloudflareDeployment struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (a *cloudflarePages) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	auth := bearer(creds["CLOUDFLARE_TOKEN"])
	projects := a.url("/accounts/" + creds["CLOUDFLARE_ACCOUNT_ID"] + "/pages/projects")

	project, err := a.ensureProject(ctx, auth, projects, req.Slug)
	if err != nil {
		return nil, err
	}

	manifest := make(map[string]string, len(req.Files))
	files := make([]formFile, 0, len(req.Files))
	for _, path := range req.Files.Paths() {
		file := req.Files[path]
		hash := file.SHA256()
		manifest["/"+path] = hash
		files = append(files, formFile{
			Field:       hash,
			Name:        path,
			ContentType: file.ContentType,
			Content:     file.Content,
		})
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode manifest: %w", ErrProvider, err)
	}

	body, contentType, err := multipartForm([][2]string{{"manifest", string(manifestJSON)}}, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	var resp cloudflareEnvelope[cloudflareDeployment]
	if err = a.client.raw(ctx, http.MethodPost, projects+"/"+req.Slug+"/deployments",
		auth, contentType, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}
	if err = resp.err(); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	siteURL := "https://" + req.Slug + ".pages.dev"
	if project.Subdomain != "" {
		siteURL = "https://" + project.Subdomain
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: resp.Result.ID,
		EstimatedTime:        cloudflareEstimate,
		Logs: []string{
			fmt.Sprintf("Uploaded %d files to Pages project %s", len(files), project.Name),
			"Preview available at " + resp.Result.URL,
		},
	}, nil
}

func (a *cloudflarePages) ensureProject(
	ctx context.Context,
	auth http.Header,
	projects, name string,
) (*cloudflareProject, error) {
	var existing cloudflareEnvelope[cloudflareProject]
	err := a.client.json(ctx, http.MethodGet, projects+"/"+name, auth, nil, &existing)
	if err == nil && existing.Success {
		return &existing.Result, nil
	}
	if err != nil && !hasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	var created cloudflareEnvelope[cloudflareProject]
	if err = a.client.json(ctx, http.MethodPost, projects, auth, map[string]any{
		"name":              name,
		"production_branch": "main",
	}, &created); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if err = created.err(); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &created.Result, nil
}
