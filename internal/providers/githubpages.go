package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mayaweb/udeploy/internal/git"
)

const (
	githubPagesBranch   = "gh-pages"
	githubPagesEstimate = 120 * time.Second
)

type githubPages struct {
	base

	publisher Publisher
}

func newGitHubPages(b base, deps Deps) Adapter {
	return &githubPages{base: b, publisher: deps.Publisher}
}

type githubUser struct {
	Login string `json:"login"`
}

type githubRepository struct {
	Name     string `json:"name"`
	CloneURL string `json:"clone_url"`
}

func (a *githubPages) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	if a.publisher == nil {
		return nil, fmt.Errorf("%w: git publisher is not available", ErrConfiguration)
	}

	token := creds["GITHUB_TOKEN"]
	auth := bearer(token)
	auth.Set("Accept", "application/vnd.github+json")

	var user githubUser
	if err = a.client.json(ctx, http.MethodGet, a.url("/user"), auth, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	repo, err := a.ensureRepository(ctx, auth, user.Login, req.Slug)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(req.Files)+2)
	for path, file := range req.Files {
		files[path] = file.Content
	}
	files[".nojekyll"] = []byte{}
	if req.Config.CustomDomain != "" {
		files["CNAME"] = []byte(req.Config.CustomDomain + "\n")
	}

	published, err := a.publisher.Publish(ctx, git.PublishRequest{
		RemoteURL: repo.CloneURL,
		Branch:    githubPagesBranch,
		Files:     files,
		Message:   "Deploy " + req.Slug,
		Username:  user.Login,
		Token:     token,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to push site: %w", ErrProvider, err)
	}

	if err = a.client.json(ctx, http.MethodPost, a.url("/repos/"+user.Login+"/"+req.Slug+"/pages"), auth,
		map[string]any{"source": map[string]string{"branch": githubPagesBranch, "path": "/"}}, nil,
	); err != nil && !hasStatus(err, http.StatusConflict) {
		return nil, fmt.Errorf("failed to enable pages: %w", err)
	}

	siteURL := fmt.Sprintf("https://%s.github.io/%s", strings.ToLower(user.Login), req.Slug)
	if req.Config.CustomDomain != "" {
		siteURL = "https://" + req.Config.CustomDomain
	}

	return &Release{
		URL:                  siteURL,
		ProviderDeploymentID: published.Commit,
		EstimatedTime:        githubPagesEstimate,
		Logs: []string{
			fmt.Sprintf("Pushed %d files to %s/%s@%s", len(files), user.Login, req.Slug, githubPagesBranch),
			"Commit " + published.Commit,
		},
	}, nil
}

func (a *githubPages) ensureRepository(
	ctx context.Context,
	auth http.Header,
	owner, name string,
) (*githubRepository, error) {
	var repo githubRepository
	err := a.client.json(ctx, http.MethodPost, a.url("/user/repos"), auth, map[string]any{
		"name":        name,
		"description": "Deployed site",
		"auto_init":   false,
		"private":     false,
	}, &repo)
	if err == nil {
		return &repo, nil
	}
	if !hasStatus(err, http.StatusUnprocessableEntity) {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	if err = a.client.json(ctx, http.MethodGet, a.url("/repos/"+owner+"/"+name), auth, nil, &repo); err != nil {
		return nil, fmt.Errorf("failed to look up repository: %w", err)
	}

	return &repo, nil
}
