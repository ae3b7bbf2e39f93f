package packager

import (
	"crypto/sha1" //nolint:gosec //content digests required by provider APIs
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/samber/lo"
)

// File is one packaged file.
type File struct {
	Content     []byte
	ContentType string
}

// SHA1 returns the hex encoded SHA-1 digest of the content.
func (f File) SHA1() string {
	sum := sha1.Sum(f.Content) //nolint:gosec //see import
	return hex.EncodeToString(sum[:])
}

// SHA256 returns the hex encoded SHA-256 digest of the content.
func (f File) SHA256() string {
	sum := sha256.Sum256(f.Content)
	return hex.EncodeToString(sum[:])
}

// Files maps forward-slash relative paths to file contents.
type Files map[string]File

// Paths returns the file paths in lexical order.
func (f Files) Paths() []string {
	paths := lo.Keys(f)
	slices.Sort(paths)

	return paths
}

// Size returns the total content size in bytes.
func (f Files) Size() int64 {
	return lo.SumBy(lo.Values(f), func(file File) int64 { return int64(len(file.Content)) })
}
