package packager

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-billy/v6/util"
	"go.uber.org/zap"
)

const defaultContentType = "application/octet-stream"

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Package reads every regular file below dir from the local disk.
func (s *Service) Package(ctx context.Context, dir string) (Files, error) {
	return s.PackageFS(ctx, osfs.New(dir), ".")
}

// PackageFS reads every regular file below root in fs. Keys are relative to
// root and always use forward slashes.
func (s *Service) PackageFS(ctx context.Context, fs billy.Filesystem, root string) (Files, error) {
	info, err := fs.Stat(root)
	if err != nil {
		s.logger.Error("output directory unavailable", zap.String("root", root), zap.Error(err))
		return nil, fmt.Errorf("%w: output directory %q: %w", ErrPackaging, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrPackaging, root)
	}

	files := Files{}
	walkErr := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, relErr)
		}

		content, readErr := util.ReadFile(fs, path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}

		files[filepath.ToSlash(rel)] = File{
			Content:     content,
			ContentType: DetectContentType(rel, content),
		}

		return nil
	})
	if walkErr != nil {
		s.logger.Error("failed to package directory", zap.String("root", root), zap.Error(walkErr))
		return nil, fmt.Errorf("%w: %w", ErrPackaging, walkErr)
	}

	s.logger.Info("directory packaged",
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int64("bytes", files.Size()))

	return files, nil
}

// DetectContentType prefers the extension and falls back to sniffing content.
func DetectContentType(path string, content []byte) string {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	if len(content) == 0 {
		return defaultContentType
	}

	return mimetype.Detect(content).String()
}
