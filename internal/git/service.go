package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-billy/v6/util"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	remoteName     = "origin"
	defaultMessage = "Deploy site"
)

type Service struct {
	config Config
	logger *zap.Logger
}

// NewService creates a new git publisher.
func NewService(config Config, logger *zap.Logger) *Service {
	defaults := DefaultConfig()
	config.Timeout = lo.Ternary(config.Timeout > 0, config.Timeout, defaults.Timeout)
	config.AuthorName = lo.Ternary(config.AuthorName != "", config.AuthorName, defaults.AuthorName)
	config.AuthorEmail = lo.Ternary(config.AuthorEmail != "", config.AuthorEmail, defaults.AuthorEmail)

	return &Service{
		config: config,
		logger: logger,
	}
}

// Publish commits the files into a fresh repository and force pushes it to
// the requested branch, replacing whatever the branch held before.
func (s *Service) Publish(ctx context.Context, req PublishRequest) (*PublishResult, error) {
	if req.RemoteURL == "" || req.Branch == "" {
		return nil, fmt.Errorf("%w: remote url and branch are required", ErrInvalidRequest)
	}
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: nothing to publish", ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	s.logger.Info("publishing files",
		zap.String("remote", req.RemoteURL),
		zap.String("branch", req.Branch),
		zap.Int("files", len(req.Files)))

	dir, err := os.MkdirTemp("", "udeploy-publish-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	defer os.RemoveAll(dir)

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		s.logger.Error("failed to init repository", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	hash, err := s.commit(repo, req)
	if err != nil {
		s.logger.Error("failed to commit files", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	if _, err = repo.CreateRemote(&config.RemoteConfig{
		Name: remoteName,
		URLs: []string{req.RemoteURL},
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	pushOptions := &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("+%s:%s", head.Name(), plumbing.NewBranchReferenceName(req.Branch))),
		},
		Force: true,
	}
	// Credentials only travel over http(s) remotes.
	if req.Token != "" && strings.HasPrefix(req.RemoteURL, "http") {
		pushOptions.Auth = &http.BasicAuth{
			Username: lo.Ternary(req.Username != "", req.Username, "x-access-token"),
			Password: req.Token,
		}
	}

	err = repo.PushContext(ctx, pushOptions)
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		s.logger.Error("push rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	default:
		s.logger.Error("failed to push", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	s.logger.Info("files published",
		zap.String("remote", req.RemoteURL),
		zap.String("branch", req.Branch),
		zap.String("commit", hash.String()))

	return &PublishResult{
		Branch: req.Branch,
		Commit: hash.String(),
	}, nil
}

func (s *Service) commit(repo *git.Repository, req PublishRequest) (plumbing.Hash, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	for path, content := range req.Files {
		if err = util.WriteFile(worktree.Filesystem, path, content, 0o644); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to write %s: %w", path, err)
		}
		if _, err = worktree.Add(path); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to stage %s: %w", path, err)
		}
	}

	return worktree.Commit(lo.Ternary(req.Message != "", req.Message, defaultMessage), &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.config.AuthorName,
			Email: s.config.AuthorEmail,
			When:  time.Now(),
		},
	})
}
