package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

const vercelEstimate = 30 * time.Second

type vercel struct {
	base
}

func newVercel(b base, _ Deps) Adapter {
	return &vercel{base: b}
}

type vercelFile struct {
	File     string `json:"file"`
	Data     string `json:"data"`
	Encoding string `json:"encoding"`
}

type vercelDeployment struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	ReadyState string `json:"readyState"`
}

func (a *vercel) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}

	files := make([]vercelFile, 0, len(req.Files))
	for _, path := range req.Files.Paths() {
		files = append(files, vercelFile{
			File:     path,
			Data:     base64.StdEncoding.EncodeToString(req.Files[path].Content),
			Encoding: "base64",
		})
	}

	payload := map[string]any{
		"name":   req.Slug,
		"files":  files,
		"target": "production",
		"projectSettings": map[string]any{
			"framework": nil,
		},
	}

	var deployment vercelDeployment
	if err = a.client.json(ctx, http.MethodPost,
		a.url("/v13/deployments?skipAutoDetectionConfirmation=1"),
		bearer(creds["VERCEL_TOKEN"]), payload, &deployment); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	siteURL, err := hostURL(deployment.URL)
	if err != nil {
		return nil, err
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: deployment.ID,
		EstimatedTime:        vercelEstimate,
		Logs: []string{
			fmt.Sprintf("Uploaded %d files to project %s", len(files), req.Slug),
			fmt.Sprintf("Vercel deployment %s is %s", deployment.ID, deployment.ReadyState),
		},
	}, nil
}

func (a *vercel) Cancel(ctx context.Context, providerDeploymentID string) error {
	creds, err := a.credentials()
	if err != nil {
		return err
	}

	if err = a.client.json(ctx, http.MethodPatch,
		a.url("/v12/deployments/"+providerDeploymentID+"/cancel"),
		bearer(creds["VERCEL_TOKEN"]), nil, nil); err != nil {
		return fmt.Errorf("failed to cancel deployment: %w", err)
	}

	return nil
}
