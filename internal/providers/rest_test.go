package providers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mayaweb/udeploy/internal/platforms"
)

func TestVercel_Deploy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v13/deployments", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer vercel-secret" {
			t.Errorf("unexpected authorization %q", r.Header.Get("Authorization"))
		}

		var payload struct {
			Name  string       `json:"name"`
			Files []vercelFile `json:"files"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload.Name != "maya-web-demo1" || len(payload.Files) != 2 {
			t.Errorf("unexpected payload %+v", payload)
		}

		writeJSON(w, http.StatusOK, `{"id":"dpl_1","url":"maya-web-demo1.vercel.app","readyState":"QUEUED"}`)
	})
	mux.HandleFunc("PATCH /v12/deployments/dpl_1/cancel", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"dpl_1","readyState":"CANCELED"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"VERCEL_TOKEN": "vercel-secret"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Vercel), testFiles())
	if !outcome.Success() {
		t.Fatalf("deploy failed: %s", outcome.Error)
	}
	if outcome.Release.URL != "https://maya-web-demo1.vercel.app" || outcome.Release.ProviderDeploymentID != "dpl_1" {
		t.Errorf("unexpected release %+v", outcome.Release)
	}
	if outcome.Release.EstimatedTime <= 0 || len(outcome.Release.Logs) == 0 {
		t.Errorf("expected estimate and logs, got %+v", outcome.Release)
	}

	supported, err := registry.Cancel(context.Background(), platforms.Vercel, "dpl_1")
	if err != nil || !supported {
		t.Errorf("cancel failed: supported=%v err=%v", supported, err)
	}
}

func TestVercel_ProviderRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error":{"code":"forbidden","message":"Not authorized"}}`)
	}))
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"VERCEL_TOKEN": "bad"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Vercel), testFiles())
	if !errors.Is(outcome.Err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", outcome.Err)
	}
	if !hasStatus(outcome.Err, http.StatusForbidden) {
		t.Errorf("expected status error to be preserved, got %v", outcome.Err)
	}
	if !strings.HasPrefix(outcome.Error, "Vercel: provider error: ") || !strings.Contains(outcome.Error, "Not authorized") {
		t.Errorf("unexpected error message %q", outcome.Error)
	}
}

func TestNetlify_CreatesSiteAndUploadsZip(t *testing.T) {
	var created bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/sites", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "maya-web-demo1" {
			t.Errorf("unexpected lookup %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `[{"id":"other","name":"maya-web-demo10"}]`)
	})
	mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
		created = true
		writeJSON(w, http.StatusCreated,
			`{"id":"site-1","name":"maya-web-demo1","ssl_url":"https://maya-web-demo1.netlify.app"}`)
	})
	mux.HandleFunc("POST /api/v1/sites/site-1/deploys", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/zip" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
		if err != nil {
			t.Fatalf("invalid zip upload: %v", err)
		}
		if len(zr.File) != 2 {
			t.Errorf("expected 2 zip entries, got %d", len(zr.File))
		}
		writeJSON(w, http.StatusOK, `{"id":"deploy-1","state":"uploaded"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"NETLIFY_TOKEN": "n"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Netlify), testFiles())
	if !outcome.Success() {
		t.Fatalf("deploy failed: %s", outcome.Error)
	}
	if !created {
		t.Error("expected site to be created")
	}
	if outcome.Release.URL != "https://maya-web-demo1.netlify.app" || outcome.Release.ProviderDeploymentID != "deploy-1" {
		t.Errorf("unexpected release %+v", outcome.Release)
	}
}

func TestNetlify_ReusesExistingSite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"site-1","name":"maya-web-demo1","ssl_url":"https://demo.netlify.app"}]`)
	})
	mux.HandleFunc("POST /api/v1/sites", func(w http.ResponseWriter, _ *http.Request) {
		t.Error("site must not be created twice")
		writeJSON(w, http.StatusInternalServerError, `{}`)
	})
	mux.HandleFunc("POST /api/v1/sites/site-1/deploys", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"deploy-2","state":"ready"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"NETLIFY_TOKEN": "n"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Netlify), testFiles())
	if !outcome.Success() || outcome.Release.URL != "https://demo.netlify.app" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestCloudflarePages_Deploy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/acc/pages/projects/maya-web-demo1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"errors":[{"code":8000007,"message":"Project not found"}]}`)
	})
	mux.HandleFunc("POST /accounts/acc/pages/projects", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"success":true,"result":{"name":"maya-web-demo1","subdomain":"maya-web-demo1.pages.dev"}}`)
	})
	mux.HandleFunc("POST /accounts/acc/pages/projects/maya-web-demo1/deployments",
		func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("invalid multipart body: %v", err)
			}
			var manifest map[string]string
			if err := json.Unmarshal([]byte(r.FormValue("manifest")), &manifest); err != nil {
				t.Fatalf("invalid manifest: %v", err)
			}
			if len(manifest) != 2 || manifest["/index.html"] == "" {
				t.Errorf("unexpected manifest %v", manifest)
			}
			if len(r.MultipartForm.File) != 2 {
				t.Errorf("expected 2 uploaded files, got %d", len(r.MultipartForm.File))
			}
			writeJSON(w, http.StatusOK, `{"success":true,"result":{"id":"cf-1","url":"https://abc.maya-web-demo1.pages.dev"}}`)
		})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"CLOUDFLARE_TOKEN": "c", "CLOUDFLARE_ACCOUNT_ID": "acc"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.CloudflarePages), testFiles())
	if !outcome.Success() {
		t.Fatalf("deploy failed: %s", outcome.Error)
	}
	if outcome.Release.URL != "https://maya-web-demo1.pages.dev" || outcome.Release.ProviderDeploymentID != "cf-1" {
		t.Errorf("unexpected release %+v", outcome.Release)
	}
}

func TestFirebase_UploadsOnlyRequiredHashes(t *testing.T) {
	var (
		mu       sync.Mutex
		uploads  []string
		released bool
	)
	gzipped, _, err := firebaseDigests(testFiles())
	if err != nil {
		t.Fatal(err)
	}
	var required string
	for hash := range gzipped {
		required = hash
		break
	}

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sites/my-site/versions", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"name":"sites/my-site/versions/v1"}`)
	})
	mux.HandleFunc("POST /sites/my-site/versions/{version}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("version") != "v1:populateFiles" {
			t.Errorf("unexpected version call %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"uploadRequiredHashes":["`+required+`"],"uploadUrl":"`+server.URL+`/upload/v1"}`)
	})
	mux.HandleFunc("POST /upload/v1/{hash}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		uploads = append(uploads, r.PathValue("hash"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PATCH /sites/my-site/versions/v1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("update_mask") != "status" {
			t.Errorf("unexpected finalize query %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `{"status":"FINALIZED"}`)
	})
	mux.HandleFunc("POST /sites/my-site/releases", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("versionName") != "sites/my-site/versions/v1" {
			t.Errorf("unexpected release query %s", r.URL.RawQuery)
		}
		released = true
		writeJSON(w, http.StatusOK, `{"name":"sites/my-site/releases/r1"}`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"FIREBASE_PROJECT_ID": "my-site", "FIREBASE_TOKEN": "f"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Firebase), testFiles())
	if !outcome.Success() {
		t.Fatalf("deploy failed: %s", outcome.Error)
	}
	if !released {
		t.Error("expected version to be released")
	}
	if len(uploads) != 1 || uploads[0] != required {
		t.Errorf("expected a single upload of %s, got %v", required, uploads)
	}
	if outcome.Release.URL != "https://my-site.web.app" {
		t.Errorf("unexpected url %s", outcome.Release.URL)
	}
}

func TestSurge_Deploy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "me@example.com" || pass != "s" {
			t.Errorf("unexpected basic auth %q %q", user, pass)
		}
		if r.Method != http.MethodPut || r.URL.Path != "/maya-web-demo1.surge.sh" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"SURGE_LOGIN": "me@example.com", "SURGE_TOKEN": "s"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Surge), testFiles())
	if !outcome.Success() || outcome.Release.URL != "https://maya-web-demo1.surge.sh" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestHeroku_CreatesAppAndBuilds(t *testing.T) {
	var (
		server   *httptest.Server
		uploaded bool
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /apps/maya-web-demo1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"id":"not_found"}`)
	})
	mux.HandleFunc("POST /apps", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated,
			`{"id":"app-1","name":"maya-web-demo1","web_url":"https://maya-web-demo1.herokuapp.com/"}`)
	})
	mux.HandleFunc("POST /sources", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated,
			`{"source_blob":{"get_url":"`+server.URL+`/blob","put_url":"`+server.URL+`/blob"}}`)
	})
	mux.HandleFunc("PUT /blob", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("signed upload must not carry the api key")
		}
		uploaded = true
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /apps/maya-web-demo1/builds", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":"build-1","status":"pending"}`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"HEROKU_API_KEY": "h"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Heroku), testFiles())
	if !outcome.Success() {
		t.Fatalf("deploy failed: %s", outcome.Error)
	}
	if !uploaded || outcome.Release.ProviderDeploymentID != "build-1" {
		t.Errorf("unexpected outcome %+v", outcome.Release)
	}
}

func TestNeocities_Deploy(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("invalid multipart body: %v", err)
		}
		if _, ok := r.MultipartForm.File["assets/app.js"]; !ok {
			t.Errorf("missing nested file, got %v", r.MultipartForm.File)
		}
		writeJSON(w, http.StatusOK, `{"result":"success","message":"your file(s) have been successfully uploaded"}`)
	})
	mux.HandleFunc("GET /info", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"result":"success","info":{"sitename":"mayaweb"}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"NEOCITIES_API_KEY": "k"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.Neocities), testFiles())
	if !outcome.Success() || outcome.Release.URL != "https://mayaweb.neocities.org" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestDenoDeploy_AddsStaticEntryPoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/maya-web-demo1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"proj-1","name":"maya-web-demo1"}`)
	})
	mux.HandleFunc("POST /projects/proj-1/deployments", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			EntryPointURL string               `json:"entryPointUrl"`
			Assets        map[string]denoAsset `json:"assets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload.EntryPointURL != denoEntryPoint || len(payload.Assets) != 3 {
			t.Errorf("unexpected payload entry=%s assets=%d", payload.EntryPointURL, len(payload.Assets))
		}
		writeJSON(w, http.StatusOK, `{"id":"dd-1","status":"pending","domains":[]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newTestRegistry(t, StaticCredentials{"DENO_DEPLOY_TOKEN": "d", "DENO_ORG_ID": "org"}, server, nil)

	outcome := registry.Dispatch(context.Background(), testConfig(platforms.DenoDeploy), testFiles())
	if !outcome.Success() || outcome.Release.URL != "https://maya-web-demo1.deno.dev" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestParseObjectStoreEndpoint(t *testing.T) {
	cases := []struct {
		raw    string
		host   string
		secure bool
	}{
		{"play.min.io", "play.min.io", true},
		{"http://localhost:9000", "localhost:9000", false},
		{"https://s3.example.com/", "s3.example.com", true},
	}

	for _, c := range cases {
		host, secure, err := parseObjectStoreEndpoint(c.raw)
		if err != nil || host != c.host || secure != c.secure {
			t.Errorf("%s: got host=%s secure=%v err=%v", c.raw, host, secure, err)
		}
	}

	if _, _, err := parseObjectStoreEndpoint("http://"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}
