package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mayaweb/udeploy/internal/git"
)

const (
	gitlabPagesBranch   = "main"
	gitlabPagesEstimate = 180 * time.Second

	gitlabPagesCI = `pages:
  stage: deploy
  script:
    - echo "publishing static files"
  artifacts:
    paths:
      - public
  rules:
    - if: $CI_COMMIT_BRANCH == "main"
`
)

type gitlabPages struct {
	base

	publisher Publisher
}

func newGitLabPages(b base, deps Deps) Adapter {
	return &gitlabPages{base: b, publisher: deps.Publisher}
}

type gitlabUser struct {
	Username string `json:"username"`
}

type gitlabProject struct {
	ID            int    `json:"id"`
	PathWithNS    string `json:"path_with_namespace"`
	HTTPURLToRepo string `json:"http_url_to_repo"`
}

func (a *gitlabPages) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	if a.publisher == nil {
		return nil, fmt.Errorf("%w: git publisher is not available", ErrConfiguration)
	}

	token := creds["GITLAB_TOKEN"]
	auth := http.Header{}
	auth.Set("PRIVATE-TOKEN", token)

	var user gitlabUser
	if err = a.client.json(ctx, http.MethodGet, a.url("/user"), auth, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	project, err := a.ensureProject(ctx, auth, user.Username, req.Slug)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(req.Files)+1)
	for path, file := range req.Files {
		files["public/"+path] = file.Content
	}
	files[".gitlab-ci.yml"] = []byte(gitlabPagesCI)

	published, err := a.publisher.Publish(ctx, git.PublishRequest{
		RemoteURL: project.HTTPURLToRepo,
		Branch:    gitlabPagesBranch,
		Files:     files,
		Message:   "Deploy " + req.Slug,
		Username:  "oauth2",
		Token:     token,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to push site: %w", ErrProvider, err)
	}

	return &Release{
		URL:                  fmt.Sprintf("https://%s.gitlab.io/%s", strings.ToLower(user.Username), req.Slug),
		ProviderDeploymentID: published.Commit,
		EstimatedTime:        gitlabPagesEstimate,
		Logs: []string{
			fmt.Sprintf("Pushed %d files to %s@%s", len(files), project.PathWithNS, gitlabPagesBranch),
			"Pages pipeline triggered by commit " + published.Commit,
		},
	}, nil
}

func (a *gitlabPages) ensureProject(
	ctx context.Context,
	auth http.Header,
	namespace, name string,
) (*gitlabProject, error) {
	var project gitlabProject
	err := a.client.json(ctx, http.MethodGet,
		a.url("/projects/"+url.PathEscape(namespace+"/"+name)), auth, nil, &project)
	if err == nil {
		return &project, nil
	}
	if !hasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	if err = a.client.json(ctx, http.MethodPost, a.url("/projects"), auth, map[string]any{
		"name":       name,
		"path":       name,
		"visibility": "public",
	}, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}
