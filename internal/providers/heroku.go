package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"
)

const herokuEstimate = 180 * time.Second

type heroku struct {
	base
}

func newHeroku(b base, _ Deps) Adapter {
	return &heroku{base: b}
}

type herokuApp struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"web_url"`
}

type herokuSource struct {
	SourceBlob struct {
		GetURL string `json:"get_url"`
		PutURL string `json:"put_url"`
	} `json:"source_blob"`
}

type herokuBuild struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (a *heroku) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	auth := bearer(creds["HEROKU_API_KEY"])
	auth.Set("Accept", "application/vnd.heroku+json; version=3")

	app, created, err := a.ensureApp(ctx, auth, req.Slug)
	if err != nil {
		return nil, err
	}

	if len(req.Config.EnvironmentVariables) > 0 {
		if err = a.client.json(ctx, http.MethodPatch, a.url("/apps/"+app.Name+"/config-vars"), auth,
			req.Config.EnvironmentVariables, nil); err != nil {
			return nil, fmt.Errorf("failed to set config vars: %w", err)
		}
	}

	var source herokuSource
	if err = a.client.json(ctx, http.MethodPost, a.url("/sources"), auth, nil, &source); err != nil {
		return nil, fmt.Errorf("failed to allocate source blob: %w", err)
	}

	tarball, err := req.Files.TarGz("")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	// The signed upload url carries its own authorization.
	if err = a.client.raw(ctx, http.MethodPut, source.SourceBlob.PutURL, nil, "", tarball, nil); err != nil {
		return nil, fmt.Errorf("failed to upload source: %w", err)
	}

	var build herokuBuild
	if err = a.client.json(ctx, http.MethodPost, a.url("/apps/"+app.Name+"/builds"), auth, map[string]any{
		"source_blob": map[string]string{
			"url":     source.SourceBlob.GetURL,
			"version": time.Now().UTC().Format("20060102150405"),
		},
	}, &build); err != nil {
		return nil, fmt.Errorf("failed to start build: %w", err)
	}

	return &Release{
		URL:                  lo.CoalesceOrEmpty(app.WebURL, fmt.Sprintf("https://%s.herokuapp.com/", app.Name)),
		ProviderDeploymentID: build.ID,
		EstimatedTime:        herokuEstimate,
		Logs: []string{
			lo.Ternary(created, "Created app ", "Reusing app ") + app.Name,
			fmt.Sprintf("Uploaded %d bytes source, build %s is %s", len(tarball), build.ID, build.Status),
		},
	}, nil
}

func (a *heroku) ensureApp(ctx context.Context, auth http.Header, name string) (*herokuApp, bool, error) {
	var app herokuApp
	err := a.client.json(ctx, http.MethodGet, a.url("/apps/"+name), auth, nil, &app)
	if err == nil {
		return &app, false, nil
	}
	if !hasStatus(err, http.StatusNotFound) {
		return nil, false, fmt.Errorf("failed to look up app: %w", err)
	}

	if err = a.client.json(ctx, http.MethodPost, a.url("/apps"), auth, map[string]string{"name": name}, &app); err != nil {
		return nil, false, fmt.Errorf("failed to create app: %w", err)
	}

	return &app, true, nil
}
