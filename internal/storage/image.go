package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tarumajaya/umkm-backend/pkg/logger"
)

const dataURIPrefix = "data:image/"

// ErrNotDataURI is returned when a payload is not an encoded image
var ErrNotDataURI = errors.New("payload is not an image data URI")

// IsDataURI reports whether a string is a transient base64 image payload
// (as produced by the admin form's file picker) rather than a durable URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, dataURIPrefix)
}

// DecodeDataURI decodes a data:image/...;base64 payload into raw bytes and
// its MIME content type.
func DecodeDataURI(payload string) ([]byte, string, error) {
	if !IsDataURI(payload) {
		return nil, "", ErrNotDataURI
	}

	meta, encoded, found := strings.Cut(payload, ",")
	if !found {
		return nil, "", ErrNotDataURI
	}

	contentType := strings.TrimPrefix(meta, "data:")
	contentType, _, _ = strings.Cut(contentType, ";")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, contentType, nil
}

// UmkmNamespace returns the storage prefix owning a business's images
func UmkmNamespace(umkmID string) string {
	return "umkm/" + umkmID
}

// ImageStore bridges transient base64 image payloads and durable object
// storage URLs. Upload and delete operations are best-effort by design:
// the relational row is authoritative and storage failures only get logged.
type ImageStore struct {
	objects ObjectStorage
}

func NewImageStore(objects ObjectStorage) *ImageStore {
	return &ImageStore{objects: objects}
}

// UploadImage decodes a payload and writes it under namespace/filename,
// overwriting on conflict, and returns the public URL. Returns "" instead
// of an error so callers can proceed with whatever uploads succeeded.
func (s *ImageStore) UploadImage(ctx context.Context, namespace, filename, payload string) string {
	data, contentType, err := DecodeDataURI(payload)
	if err != nil {
		logger.Error("Failed to decode image payload", err, map[string]interface{}{
			"namespace": namespace,
			"filename":  filename,
		})
		return ""
	}

	key := namespace + "/" + filename
	if err := s.objects.Put(ctx, key, data, contentType); err != nil {
		logger.Error("Failed to upload image", err, map[string]interface{}{
			"key":  key,
			"size": len(data),
		})
		return ""
	}

	url := s.objects.PublicURL(key)
	logger.Debug("Image uploaded", map[string]interface{}{
		"key": key,
		"url": url,
	})
	return url
}

// UploadImages uploads every payload entry under the namespace. Entries that
// are already URLs pass through unchanged; entries whose upload failed are
// dropped from the result.
func (s *ImageStore) UploadImages(ctx context.Context, namespace string, entries []string) []string {
	urls := make([]string, 0, len(entries))
	now := time.Now().UnixNano()

	for i, entry := range entries {
		if !IsDataURI(entry) {
			urls = append(urls, entry)
			continue
		}

		filename := fmt.Sprintf("image-%d-%d%s", i+1, now, extensionFor(entry))
		if url := s.UploadImage(ctx, namespace, filename, entry); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// DeleteImage removes the object behind a URL. Payloads that were never
// uploaded and URLs outside the managed bucket are skipped silently.
func (s *ImageStore) DeleteImage(ctx context.Context, url string) {
	if url == "" || IsDataURI(url) {
		return
	}

	key, ok := s.objects.KeyFromURL(url)
	if !ok {
		logger.Debug("Skipping delete of unmanaged URL", map[string]interface{}{
			"url": url,
		})
		return
	}

	if err := s.objects.Delete(ctx, key); err != nil {
		logger.Error("Failed to delete image", err, map[string]interface{}{
			"key": key,
		})
		return
	}

	logger.Debug("Image deleted", map[string]interface{}{
		"key": key,
	})
}

// DeleteImages removes the objects behind the given URLs, best-effort
func (s *ImageStore) DeleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		s.DeleteImage(ctx, url)
	}
}

// CleanupOrphanedImages deletes every URL present in old but absent from
// new, ignoring entries that are still encoded payloads.
func (s *ImageStore) CleanupOrphanedImages(ctx context.Context, namespace string, newURLs, oldURLs []string) {
	kept := make(map[string]bool, len(newURLs))
	for _, url := range newURLs {
		kept[url] = true
	}

	var orphaned []string
	for _, url := range oldURLs {
		if !kept[url] && !IsDataURI(url) {
			orphaned = append(orphaned, url)
		}
	}

	if len(orphaned) == 0 {
		return
	}

	logger.Info("Cleaning up orphaned images", map[string]interface{}{
		"namespace": namespace,
		"count":     len(orphaned),
	})
	s.DeleteImages(ctx, orphaned)
}

// DeleteNamespace purges every object under a business's namespace,
// used when the business itself is deleted.
func (s *ImageStore) DeleteNamespace(ctx context.Context, namespace string) {
	keys, err := s.objects.List(ctx, namespace+"/")
	if err != nil {
		logger.Error("Failed to list namespace for purge", err, map[string]interface{}{
			"namespace": namespace,
		})
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.objects.Delete(ctx, keys...); err != nil {
		logger.Error("Failed to purge namespace", err, map[string]interface{}{
			"namespace": namespace,
			"count":     len(keys),
		})
		return
	}

	logger.Info("Namespace purged", map[string]interface{}{
		"namespace": namespace,
		"count":     len(keys),
	})
}

// ListKeys returns every stored key under a prefix, for the orphan sweeper
func (s *ImageStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	return s.objects.List(ctx, prefix)
}

// DeleteKeys removes stored keys directly, for the orphan sweeper
func (s *ImageStore) DeleteKeys(ctx context.Context, keys []string) error {
	return s.objects.Delete(ctx, keys...)
}

// KeyForURL resolves a managed URL to its storage key
func (s *ImageStore) KeyForURL(url string) (string, bool) {
	if url == "" || IsDataURI(url) {
		return "", false
	}
	return s.objects.KeyFromURL(url)
}

func extensionFor(payload string) string {
	meta, _, _ := strings.Cut(payload, ",")
	switch {
	case strings.Contains(meta, "image/png"):
		return ".png"
	case strings.Contains(meta, "image/webp"):
		return ".webp"
	case strings.Contains(meta, "image/gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}
