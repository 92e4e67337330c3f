// Package deploy publishes a generated asset directory to S3 and optionally
// invalidates a CloudFront distribution. Uploads are incremental: files are
// hashed locally and compared against hashes recorded in object metadata, so
// only new or changed assets transfer.
package deploy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Config holds deployment configuration.
type Config struct {
	Bucket          string
	Region          string
	Prefix          string // S3 key prefix, e.g. "placeholders/"
	Distribution    string // CloudFront distribution ID (optional)
	InvalidatePaths []string
	DryRun          bool
	Verbose         bool
}

// Result holds the results of a deployment.
type Result struct {
	Uploaded int
	Deleted  int
	Skipped  int
	Errors   []error
}

// FileEntry represents a local asset to deploy.
type FileEntry struct {
	Path         string // relative path from the output dir
	ContentType  string // MIME type
	CacheControl string // Cache-Control header value
	Hash         string // hex-encoded SHA-256 hash
}

// S3Client is an interface for S3 operations used during deployment.
type S3Client interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType, cacheControl, sha256Hash string) error
	DeleteObject(ctx context.Context, key string) error
	ListObjects(ctx context.Context, prefix string) (map[string]string, error) // returns key -> sha256 metadata
}

// CloudFrontClient is an interface for CloudFront operations.
type CloudFrontClient interface {
	CreateInvalidation(ctx context.Context, distributionID string, paths []string) error
}

// ContentTypeForExt returns the MIME type for a file extension. The ext
// parameter should include the leading dot (e.g. ".png").
func ContentTypeForExt(ext string) string {
	ext = strings.ToLower(ext)

	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".yaml", ".yml":
		return "text/yaml; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	}

	ct := mime.TypeByExtension(ext)
	if ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// CacheControlForExt returns the Cache-Control header for a file extension.
//
// Policy:
//   - HTML and the manifest: "public, max-age=0, must-revalidate"
//   - Image files: "public, max-age=86400"
//   - Other files: "public, max-age=3600"
func CacheControlForExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".html", ".htm", ".yaml", ".yml", ".json":
		return "public, max-age=0, must-revalidate"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return "public, max-age=86400"
	default:
		return "public, max-age=3600"
	}
}

// HashFile computes the SHA-256 hash of a file and returns it as a hex string.
func HashFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("opening file for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ScanFiles walks the output directory and returns a FileEntry per asset.
// Cache files and dotfiles are excluded.
func ScanFiles(outputDir string) ([]FileEntry, error) {
	var entries []FileEntry

	err := filepath.Walk(outputDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && p != outputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		relPath, err := filepath.Rel(outputDir, p)
		if err != nil {
			return fmt.Errorf("computing relative path: %w", err)
		}
		// Normalize to forward slashes for S3 keys.
		relPath = filepath.ToSlash(relPath)

		ext := filepath.Ext(p)
		hash, err := HashFile(p)
		if err != nil {
			return err
		}

		entries = append(entries, FileEntry{
			Path:         relPath,
			ContentType:  ContentTypeForExt(ext),
			CacheControl: CacheControlForExt(ext),
			Hash:         hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning files: %w", err)
	}

	return entries, nil
}

// DiffFiles compares local files against a map of remote object hashes.
// Returns lists of files to upload (new or changed) and keys to delete
// (remote only). Remote keys are relative to the configured prefix.
func DiffFiles(local []FileEntry, remoteHashes map[string]string) (toUpload []FileEntry, toDelete []string) {
	localMap := make(map[string]FileEntry, len(local))
	for _, entry := range local {
		localMap[entry.Path] = entry
	}

	for _, entry := range local {
		remoteHash, exists := remoteHashes[entry.Path]
		if !exists || remoteHash != entry.Hash {
			toUpload = append(toUpload, entry)
		}
	}

	for key := range remoteHashes {
		if _, exists := localMap[key]; !exists {
			toDelete = append(toDelete, key)
		}
	}

	return toUpload, toDelete
}

// key joins the configured prefix with a relative asset path.
func (c Config) key(relPath string) string {
	if c.Prefix == "" {
		return relPath
	}
	return path.Join(c.Prefix, relPath)
}

// invalidatePaths returns the CloudFront paths to invalidate, defaulting to
// everything under the prefix.
func (c Config) invalidatePaths() []string {
	if len(c.InvalidatePaths) > 0 {
		return c.InvalidatePaths
	}
	if c.Prefix != "" {
		return []string{"/" + strings.Trim(c.Prefix, "/") + "/*"}
	}
	return []string{"/*"}
}

// Deploy executes the deployment using the provided clients.
//
// Steps:
//  1. Scan local assets
//  2. List remote objects under the prefix via S3Client
//  3. Diff to find uploads and deletes
//  4. If DryRun, print plan and return
//  5. Upload new/changed assets
//  6. Delete removed assets
//  7. If Distribution is set, invalidate CloudFront
func Deploy(ctx context.Context, cfg Config, outputDir string, s3 S3Client, cf CloudFrontClient) (*Result, error) {
	result := &Result{}

	localFiles, err := ScanFiles(outputDir)
	if err != nil {
		return nil, fmt.Errorf("scanning local assets: %w", err)
	}

	remoteHashes, err := s3.ListObjects(ctx, cfg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("listing remote objects: %w", err)
	}

	toUpload, toDelete := DiffFiles(localFiles, remoteHashes)
	result.Skipped = len(localFiles) - len(toUpload)

	if cfg.DryRun {
		if cfg.Verbose {
			for _, f := range toUpload {
				fmt.Printf("[dry-run] upload: %s (%s)\n", cfg.key(f.Path), f.ContentType)
			}
			for _, key := range toDelete {
				fmt.Printf("[dry-run] delete: %s\n", cfg.key(key))
			}
		}
		if cfg.Distribution != "" {
			fmt.Printf("[dry-run] invalidate CloudFront distribution: %s\n", cfg.Distribution)
		}
		result.Uploaded = len(toUpload)
		result.Deleted = len(toDelete)
		return result, nil
	}

	for _, entry := range toUpload {
		fullPath := filepath.Join(outputDir, filepath.FromSlash(entry.Path))
		f, err := os.Open(fullPath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("opening %s: %w", entry.Path, err))
			continue
		}

		err = s3.PutObject(ctx, cfg.key(entry.Path), f, entry.ContentType, entry.CacheControl, entry.Hash)
		f.Close()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("uploading %s: %w", entry.Path, err))
			continue
		}
		result.Uploaded++
		if cfg.Verbose {
			fmt.Printf("uploaded: %s\n", cfg.key(entry.Path))
		}
	}

	for _, key := range toDelete {
		if err := s3.DeleteObject(ctx, cfg.key(key)); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("deleting %s: %w", key, err))
			continue
		}
		result.Deleted++
		if cfg.Verbose {
			fmt.Printf("deleted: %s\n", cfg.key(key))
		}
	}

	if cfg.Distribution != "" && cf != nil {
		paths := cfg.invalidatePaths()
		if err := cf.CreateInvalidation(ctx, cfg.Distribution, paths); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("CloudFront invalidation: %w", err))
		} else if cfg.Verbose {
			fmt.Printf("invalidated CloudFront distribution: %s\n", cfg.Distribution)
		}
	}

	return result, nil
}
