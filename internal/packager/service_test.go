package packager

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/util"
	"go.uber.org/zap/zaptest"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestService_PackageNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":            "<html></html>",
		"assets/app.js":         "console.log(1)",
		"assets/css/site.css":   "body{}",
		"deep/a/b/c/readme.txt": "hi",
	})

	service := NewService(zaptest.NewLogger(t))
	files, err := service.Package(context.Background(), dir)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	expected := []string{"assets/app.js", "assets/css/site.css", "deep/a/b/c/readme.txt", "index.html"}
	if !reflect.DeepEqual(files.Paths(), expected) {
		t.Errorf("expected %v, got %v", expected, files.Paths())
	}

	if string(files["assets/css/site.css"].Content) != "body{}" {
		t.Errorf("unexpected content %q", files["assets/css/site.css"].Content)
	}
	if ct := files["index.html"].ContentType; ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestService_PackageIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.html": "a", "js/main.js": "b"})

	service := NewService(zaptest.NewLogger(t))
	first, err := service.Package(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := service.Package(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical packages for an unchanged directory")
	}
}

func TestService_PackageReflectsChanges(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.html": "v1"})

	service := NewService(zaptest.NewLogger(t))
	if _, err := service.Package(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	writeTree(t, dir, map[string]string{"index.html": "v2", "new.txt": "added"})

	files, err := service.Package(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if string(files["index.html"].Content) != "v2" {
		t.Errorf("expected updated content, got %q", files["index.html"].Content)
	}
	if _, ok := files["new.txt"]; !ok {
		t.Error("expected new file to be packaged")
	}
}

func TestService_PackageMissingDirectory(t *testing.T) {
	service := NewService(zaptest.NewLogger(t))

	_, err := service.Package(context.Background(), filepath.Join(t.TempDir(), "dist"))
	if !errors.Is(err, ErrPackaging) {
		t.Fatalf("expected ErrPackaging, got %v", err)
	}
}

func TestService_PackageFSMemory(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "site/index.html", []byte("<h1>hi</h1>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fs, "site/img/logo.svg", []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fs, "other/ignored.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	service := NewService(zaptest.NewLogger(t))
	files, err := service.PackageFS(context.Background(), fs, "site")
	if err != nil {
		t.Fatalf("PackageFS failed: %v", err)
	}

	if !reflect.DeepEqual(files.Paths(), []string{"img/logo.svg", "index.html"}) {
		t.Errorf("unexpected paths %v", files.Paths())
	}
	if files.Size() != int64(len("<h1>hi</h1>")+len("<svg/>")) {
		t.Errorf("unexpected size %d", files.Size())
	}
}

func TestService_PackageFSNotADirectory(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "file.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	service := NewService(zaptest.NewLogger(t))
	if _, err := service.PackageFS(context.Background(), fs, "file.txt"); !errors.Is(err, ErrPackaging) {
		t.Fatalf("expected ErrPackaging, got %v", err)
	}
}

func TestDetectContentType(t *testing.T) {
	if ct := DetectContentType("noext", []byte("%PDF-1.4\n")); ct != "application/pdf" {
		t.Errorf("expected sniffed pdf, got %q", ct)
	}
	if ct := DetectContentType("empty", nil); ct != defaultContentType {
		t.Errorf("expected default content type, got %q", ct)
	}
}

func TestFiles_Archives(t *testing.T) {
	files := Files{
		"index.html":    {Content: []byte("<html/>")},
		"assets/app.js": {Content: []byte("run()")},
	}

	zipped, err := files.Zip()
	if err != nil {
		t.Fatalf("Zip failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(zipped), int64(len(zipped)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "assets/app.js" {
		t.Errorf("unexpected zip entries %v", zr.File)
	}

	tarball, err := files.TarGz("package/")
	if err != nil {
		t.Fatalf("TarGz failed: %v", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(tarball))
	if err != nil {
		t.Fatal(err)
	}
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			t.Fatal(nextErr)
		}
		names = append(names, hdr.Name)
	}
	if !reflect.DeepEqual(names, []string{"package/assets/app.js", "package/index.html"}) {
		t.Errorf("unexpected tar entries %v", names)
	}
}

func TestFile_Digests(t *testing.T) {
	f := File{Content: []byte("abc")}

	if f.SHA1() != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("unexpected sha1 %s", f.SHA1())
	}
	if f.SHA256() != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected sha256 %s", f.SHA256())
	}
}
