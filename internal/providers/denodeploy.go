package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

const (
	denoDeployEstimate = 20 * time.Second
	denoEntryPoint     = "udeploy-serve.ts"
	denoStaticServer   = `import { serveDir } from "jsr:@std/http/file-server";

Deno.serve((req) => serveDir(req, { fsRoot: ".", quiet: true }));
`
)

type denoDeploy struct {
	base
}

func newDenoDeploy(b base, _ Deps) Adapter {
	return &denoDeploy{base: b}
}

type denoProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type denoAsset struct {
	Kind     string `json:"kind"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type denoDeployment struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Domains []string `json:"domains"`
}

func (a *denoDeploy) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	auth := bearer(creds["DENO_DEPLOY_TOKEN"])

	project, err := a.ensureProject(ctx, auth, creds["DENO_ORG_ID"], req.Slug)
	if err != nil {
		return nil, err
	}

	assets := make(map[string]denoAsset, len(req.Files)+1)
	for path, file := range req.Files {
		assets[path] = denoAsset{
			Kind:     "file",
			Content:  base64.StdEncoding.EncodeToString(file.Content),
			Encoding: "base64",
		}
	}

	entryPoint := "main.ts"
	if _, ok := req.Files[entryPoint]; !ok {
		entryPoint = denoEntryPoint
		assets[entryPoint] = denoAsset{Kind: "file", Content: denoStaticServer, Encoding: "utf-8"}
	}

	var deployment denoDeployment
	if err = a.client.json(ctx, http.MethodPost, a.url("/projects/"+project.ID+"/deployments"), auth, map[string]any{
		"entryPointUrl": entryPoint,
		"assets":        assets,
		"envVars":       req.Config.EnvironmentVariables,
	}, &deployment); err != nil {
		return nil, fmt.Errorf("failed to create deployment: %w", err)
	}

	siteURL := fmt.Sprintf("https://%s.deno.dev", project.Name)
	if len(deployment.Domains) > 0 {
		siteURL = "https://" + deployment.Domains[0]
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: deployment.ID,
		EstimatedTime:        denoDeployEstimate,
		Logs: []string{
			fmt.Sprintf("Uploaded %d assets with entry point %s", len(assets), entryPoint),
			fmt.Sprintf("Deno deployment %s is %s", deployment.ID, deployment.Status),
		},
	}, nil
}

func (a *denoDeploy) ensureProject(ctx context.Context, auth http.Header, org, name string) (*denoProject, error) {
	var project denoProject
	err := a.client.json(ctx, http.MethodGet, a.url("/projects/"+name), auth, nil, &project)
	if err == nil {
		return &project, nil
	}
	if !hasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	if err = a.client.json(ctx, http.MethodPost, a.url("/organizations/"+org+"/projects"), auth,
		map[string]string{"name": name}, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}
