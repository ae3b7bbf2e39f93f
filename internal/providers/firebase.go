package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mayaweb/udeploy/internal/packager"
)

const firebaseEstimate = 60 * time.Second

type firebase struct {
	base
}

func newFirebase(b base, _ Deps) Adapter {
	return &firebase{base: b}
}

type firebaseVersion struct {
	Name string `json:"name"`
}

type firebasePopulateResponse struct {
	UploadRequiredHashes []string `json:"uploadRequiredHashes"`
	UploadURL            string   `json:"uploadUrl"`
}

type firebaseRelease struct {
	Name string `json:"name"`
}

// Deploy follows the Hosting REST flow: create a version, declare file
// hashes, upload the gzipped files the service asks for, finalize the
// version and release it.
func (a *firebase) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	site := creds["FIREBASE_PROJECT_ID"]
	auth := bearer(creds["FIREBASE_TOKEN"])

	var version firebaseVersion
	if err = a.client.json(ctx, http.MethodPost, a.url("/sites/"+site+"/versions"), auth,
		map[string]any{"config": map[string]any{}}, &version); err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	gzipped, hashes, err := firebaseDigests(req.Files)
	if err != nil {
		return nil, err
	}

	var populated firebasePopulateResponse
	if err = a.client.json(ctx, http.MethodPost, a.url("/"+version.Name+":populateFiles"), auth,
		map[string]any{"files": hashes}, &populated); err != nil {
		return nil, fmt.Errorf("failed to populate files: %w", err)
	}

	for _, hash := range populated.UploadRequiredHashes {
		content, ok := gzipped[hash]
		if !ok {
			return nil, fmt.Errorf("%w: upload requested for unknown hash %s", ErrProvider, hash)
		}
		if err = a.client.raw(ctx, http.MethodPost, populated.UploadURL+"/"+hash, auth,
			"application/octet-stream", content, nil); err != nil {
			return nil, fmt.Errorf("failed to upload file: %w", err)
		}
	}

	if err = a.client.json(ctx, http.MethodPatch, a.url("/"+version.Name+"?update_mask=status"), auth,
		map[string]string{"status": "FINALIZED"}, nil); err != nil {
		return nil, fmt.Errorf("failed to finalize version: %w", err)
	}

	var release firebaseRelease
	query := url.Values{"versionName": {version.Name}}
	if err = a.client.json(ctx, http.MethodPost, a.url("/sites/"+site+"/releases?"+query.Encode()), auth,
		nil, &release); err != nil {
		return nil, fmt.Errorf("failed to release version: %w", err)
	}

	return &Release{
		URL:                  fmt.Sprintf("https://%s.web.app", site),
		ProviderDeploymentID: release.Name,
		EstimatedTime:        firebaseEstimate,
		Logs: []string{
			fmt.Sprintf("Created version %s with %d files", version.Name, len(hashes)),
			fmt.Sprintf("Uploaded %d new files", len(populated.UploadRequiredHashes)),
			"Released " + release.Name,
		},
	}, nil
}

// firebaseDigests gzips every file and keys the result by the SHA-256 of the
// gzipped bytes, which is how Hosting identifies content.
func firebaseDigests(files packager.Files) (map[string][]byte, map[string]string, error) {
	gzipped := make(map[string][]byte, len(files))
	hashes := make(map[string]string, len(files))

	for _, path := range files.Paths() {
		content, err := packager.Gzip(files[path].Content)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrProvider, err)
		}

		sum := sha256.Sum256(content)
		hash := hex.EncodeToString(sum[:])

		gzipped[hash] = content
		hashes["/"+path] = hash
	}

	return gzipped, hashes, nil
}
