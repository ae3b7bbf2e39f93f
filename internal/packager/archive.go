package packager

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"time"
)

const archiveFileMode = 0o644

// Zip encodes the files as a zip archive.
func (f Files) Zip() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, path := range f.Paths() {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     path,
			Method:   zip.Deflate,
			Modified: time.Unix(0, 0).UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to zip: %w", path, err)
		}
		if _, wErr := w.Write(f[path].Content); wErr != nil {
			return nil, fmt.Errorf("failed to write %s to zip: %w", path, wErr)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}

	return buf.Bytes(), nil
}

// TarGz encodes the files as a gzipped tarball, each entry prefixed by prefix
// (which may be empty).
func (f Files) TarGz(prefix string) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, path := range f.Paths() {
		content := f[path].Content
		if err := tw.WriteHeader(&tar.Header{
			Name:     prefix + path,
			Mode:     archiveFileMode,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
			ModTime:  time.Unix(0, 0).UTC(),
		}); err != nil {
			return nil, fmt.Errorf("failed to add %s to tarball: %w", path, err)
		}
		if _, err := tw.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write %s to tarball: %w", path, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize tarball: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize gzip stream: %w", err)
	}

	return buf.Bytes(), nil
}

// Gzip compresses a single payload.
func Gzip(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(content); err != nil {
		return nil, fmt.Errorf("failed to gzip content: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("failed to gzip content: %w", err)
	}

	return buf.Bytes(), nil
}
