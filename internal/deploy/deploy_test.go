package deploy

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// ============================================================================
// Mocks
// ============================================================================

type putRecord struct {
	contentType  string
	cacheControl string
	hash         string
}

type mockS3Client struct {
	remote  map[string]string // key -> hash returned by ListObjects
	puts    map[string]putRecord
	deletes []string
	listErr error
}

func newMockS3Client() *mockS3Client {
	return &mockS3Client{
		remote: make(map[string]string),
		puts:   make(map[string]putRecord),
	}
}

func (m *mockS3Client) PutObject(ctx context.Context, key string, body io.Reader, contentType, cacheControl, sha256Hash string) error {
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	m.puts[key] = putRecord{contentType: contentType, cacheControl: cacheControl, hash: sha256Hash}
	return nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	return nil
}

func (m *mockS3Client) ListObjects(ctx context.Context, prefix string) (map[string]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.remote, nil
}

type mockCloudFrontClient struct {
	distributionID string
	paths          []string
	calls          int
}

func (m *mockCloudFrontClient) CreateInvalidation(ctx context.Context, distributionID string, paths []string) error {
	m.distributionID = distributionID
	m.paths = paths
	m.calls++
	return nil
}

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ============================================================================
// Content type and cache control
// ============================================================================

func TestContentTypeForExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".png", "image/png"},
		{".jpg", "image/jpeg"},
		{".webp", "image/webp"},
		{".html", "text/html; charset=utf-8"},
		{".yaml", "text/yaml; charset=utf-8"},
		{".PNG", "image/png"},
		{".zzz", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentTypeForExt(tt.ext); got != tt.want {
			t.Errorf("ContentTypeForExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestCacheControlForExt(t *testing.T) {
	if got := CacheControlForExt(".html"); got != "public, max-age=0, must-revalidate" {
		t.Errorf("html cache control = %q", got)
	}
	if got := CacheControlForExt(".yaml"); got != "public, max-age=0, must-revalidate" {
		t.Errorf("yaml cache control = %q", got)
	}
	if got := CacheControlForExt(".png"); got != "public, max-age=86400" {
		t.Errorf("png cache control = %q", got)
	}
	if got := CacheControlForExt(".bin"); got != "public, max-age=3600" {
		t.Errorf("default cache control = %q", got)
	}
}

// ============================================================================
// Scanning and diffing
// ============================================================================

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "placeholder-280x200-glitch.png", "png-bytes")
	writeAsset(t, dir, "index.html", "<html></html>")
	writeAsset(t, dir, "manifest.yaml", "assets: []")
	writeAsset(t, dir, ".placekit/rendercache.json", "{}")
	writeAsset(t, dir, ".DS_Store", "junk")

	entries, err := ScanFiles(dir)
	if err != nil {
		t.Fatalf("ScanFiles: %v", err)
	}

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)

	want := []string{"index.html", "manifest.yaml", "placeholder-280x200-glitch.png"}
	if len(paths) != len(want) {
		t.Fatalf("got paths %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	for _, e := range entries {
		if e.Hash == "" {
			t.Errorf("entry %s has empty hash", e.Path)
		}
		if e.Path == "placeholder-280x200-glitch.png" && e.ContentType != "image/png" {
			t.Errorf("png content type = %q", e.ContentType)
		}
	}
}

func TestDiffFiles(t *testing.T) {
	local := []FileEntry{
		{Path: "unchanged.png", Hash: "aaa"},
		{Path: "changed.png", Hash: "bbb"},
		{Path: "new.png", Hash: "ccc"},
	}
	remote := map[string]string{
		"unchanged.png": "aaa",
		"changed.png":   "old",
		"stale.png":     "ddd",
	}

	toUpload, toDelete := DiffFiles(local, remote)

	uploadPaths := make(map[string]bool)
	for _, e := range toUpload {
		uploadPaths[e.Path] = true
	}
	if len(toUpload) != 2 || !uploadPaths["changed.png"] || !uploadPaths["new.png"] {
		t.Errorf("toUpload = %v, want changed.png and new.png", uploadPaths)
	}
	if len(toDelete) != 1 || toDelete[0] != "stale.png" {
		t.Errorf("toDelete = %v, want [stale.png]", toDelete)
	}
}

// ============================================================================
// Deploy
// ============================================================================

func TestDeploy_UploadsNewAssets(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")
	writeAsset(t, dir, "b.webp", "bbb")

	s3 := newMockS3Client()
	result, err := Deploy(context.Background(), Config{Bucket: "assets"}, dir, s3, nil)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	if result.Uploaded != 2 {
		t.Errorf("Uploaded = %d, want 2", result.Uploaded)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
	if rec, ok := s3.puts["a.png"]; !ok || rec.contentType != "image/png" {
		t.Errorf("a.png put record = %+v", rec)
	}
	if rec, ok := s3.puts["b.webp"]; !ok || rec.contentType != "image/webp" {
		t.Errorf("b.webp put record = %+v", rec)
	}
}

func TestDeploy_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	hash, err := HashFile(filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}

	s3 := newMockS3Client()
	s3.remote["a.png"] = hash

	result, err := Deploy(context.Background(), Config{Bucket: "assets"}, dir, s3, nil)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if result.Uploaded != 0 {
		t.Errorf("Uploaded = %d, want 0", result.Uploaded)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestDeploy_DeletesRemoved(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	s3.remote["gone.png"] = "xxx"

	result, err := Deploy(context.Background(), Config{Bucket: "assets"}, dir, s3, nil)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", result.Deleted)
	}
	if len(s3.deletes) != 1 || s3.deletes[0] != "gone.png" {
		t.Errorf("deletes = %v, want [gone.png]", s3.deletes)
	}
}

func TestDeploy_PrefixedKeys(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	cfg := Config{Bucket: "assets", Prefix: "placeholders"}
	if _, err := Deploy(context.Background(), cfg, dir, s3, nil); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if _, ok := s3.puts["placeholders/a.png"]; !ok {
		t.Errorf("expected upload under prefix, got keys %v", s3.puts)
	}
}

func TestDeploy_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	cf := &mockCloudFrontClient{}
	cfg := Config{Bucket: "assets", Distribution: "E123", DryRun: true}

	result, err := Deploy(context.Background(), cfg, dir, s3, cf)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if result.Uploaded != 1 {
		t.Errorf("dry-run Uploaded = %d, want 1 (planned)", result.Uploaded)
	}
	if len(s3.puts) != 0 {
		t.Errorf("dry-run performed %d uploads", len(s3.puts))
	}
	if cf.calls != 0 {
		t.Error("dry-run created a CloudFront invalidation")
	}
}

func TestDeploy_ListFailureAborts(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	s3.listErr = errors.New("no credentials")

	if _, err := Deploy(context.Background(), Config{Bucket: "assets"}, dir, s3, nil); err == nil {
		t.Fatal("expected error when listing remote objects fails")
	}
	if len(s3.puts) != 0 {
		t.Error("uploads attempted after list failure")
	}
}

func TestDeploy_CloudFrontInvalidation(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	cf := &mockCloudFrontClient{}
	cfg := Config{Bucket: "assets", Distribution: "E123"}

	if _, err := Deploy(context.Background(), cfg, dir, s3, cf); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if cf.calls != 1 {
		t.Fatalf("invalidation calls = %d, want 1", cf.calls)
	}
	if cf.distributionID != "E123" {
		t.Errorf("distribution = %q, want E123", cf.distributionID)
	}
	if len(cf.paths) != 1 || cf.paths[0] != "/*" {
		t.Errorf("paths = %v, want [/*]", cf.paths)
	}
}

func TestDeploy_InvalidationPathsUsePrefix(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "a.png", "aaa")

	s3 := newMockS3Client()
	cf := &mockCloudFrontClient{}
	cfg := Config{Bucket: "assets", Prefix: "placeholders/", Distribution: "E123"}

	if _, err := Deploy(context.Background(), cfg, dir, s3, cf); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if len(cf.paths) != 1 || cf.paths[0] != "/placeholders/*" {
		t.Errorf("paths = %v, want [/placeholders/*]", cf.paths)
	}
}
