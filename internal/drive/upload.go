package drive

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"strings"
	"time"

	"go-cloud-drive/internal/models"
)

// UploadItem is one pending file in a batch. RelativePath carries the nested
// folder path from a folder selection or drag-drop ("Trip/Day1/a.jpg"); it is
// empty for a flat upload.
type UploadItem struct {
	Name         string
	RelativePath string
	SizeBytes    int64
	ContentType  string
	Data         io.Reader
}

// UploadFailure records why one file of a batch did not make it.
type UploadFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchResult summarizes a completed batch: every file is accounted for as
// uploaded, skipped (hidden files), or failed.
type BatchResult struct {
	Total    int             `json:"total"`
	Uploaded int             `json:"uploaded"`
	Skipped  int             `json:"skipped"`
	Failures []UploadFailure `json:"failures,omitempty"`
	Files    []models.File   `json:"files"`
}

// UploadBatch drives one user-initiated multi-file upload. Files are
// processed strictly in order: resolution for a file completes before its
// payload moves, which keeps the batch path cache correct without extra
// locking and makes the status message meaningful. A failure on one file
// never aborts the rest; cancellation is honored between files. At the end
// the listing is re-fetched so the visible state matches the backend no
// matter which steps failed.
func (m *Manager) UploadBatch(ctx context.Context, items []UploadItem) (*BatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &BatchResult{Total: len(items)}
	if len(items) == 0 {
		return result, nil
	}

	m.uploading = true
	m.setProgress(0, "")
	defer func() { m.uploading = false }()

	cache := newPathCache()
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			for _, rest := range items[i:] {
				result.Failures = append(result.Failures, UploadFailure{Name: rest.Name, Reason: err.Error()})
			}
			return result, err
		}

		m.setProgress(m.progress, item.Name)
		m.processUpload(ctx, item, cache, result)
		m.setProgress(percentOf(i+1, len(items)), item.Name)
	}

	if err := m.refreshLocked(ctx); err != nil {
		log.Printf("upload: post-batch refresh failed: %v", err)
	}
	m.setProgress(100, fmt.Sprintf("%d of %d files uploaded", result.Uploaded, result.Total))
	return result, nil
}

func (m *Manager) processUpload(ctx context.Context, item UploadItem, cache pathCache, result *BatchResult) {
	if isHidden(item) {
		result.Skipped++
		return
	}

	// Resolve before the quota check: the folders on a file's path belong to
	// the batch even when the file itself gets rejected, and later files in
	// the batch reuse them through the cache.
	targetFolderID, err := m.resolvePath(ctx, pathSegments(item.RelativePath), m.currentFolderID(), cache)
	if err != nil {
		result.Failures = append(result.Failures, UploadFailure{Name: item.Name, Reason: err.Error()})
		return
	}

	if !m.quota.CanAdmit(item.SizeBytes) {
		result.Failures = append(result.Failures, UploadFailure{Name: item.Name, Reason: ErrQuotaExceeded.Error()})
		return
	}

	key := storageKey(m.ownerID, item.Name)
	if err := m.objects.Upload(item.Data, key); err != nil {
		result.Failures = append(result.Failures, UploadFailure{Name: item.Name, Reason: err.Error()})
		return
	}

	file := &models.File{
		Name:       item.Name,
		StorageKey: key,
		PublicURL:  m.objects.GetPublicURL(key),
		MimeType:   item.ContentType,
		SizeBytes:  item.SizeBytes,
		OwnerID:    m.ownerID,
		FolderID:   targetFolderID,
	}
	if err := m.gateway.CreateFile(ctx, file); err != nil {
		// The object stays behind without a row; acceptable, not retried.
		log.Printf("upload: metadata insert failed, orphan object %s: %v", key, err)
		result.Failures = append(result.Failures, UploadFailure{Name: item.Name, Reason: err.Error()})
		return
	}

	if sameParent(targetFolderID, m.currentFolderID()) {
		m.files = append([]models.File{*file}, m.files...)
	}
	m.quota.Add(item.SizeBytes)
	result.Uploaded++
	result.Files = append(result.Files, *file)
}

// isHidden reports whether the file or any folder on its relative path is a
// hidden/system entry (leading dot).
func isHidden(item UploadItem) bool {
	if strings.HasPrefix(item.Name, ".") {
		return true
	}
	for _, segment := range pathSegments(item.RelativePath) {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// pathSegments turns a relative path into its folder components, dropping
// the trailing filename and any blank segments.
func pathSegments(relativePath string) []string {
	relativePath = strings.Trim(relativePath, "/")
	if relativePath == "" {
		return nil
	}
	parts := strings.Split(relativePath, "/")
	if len(parts) < 2 {
		return nil
	}

	segments := make([]string, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// storageKey builds a collision-resistant object key from the owner, the
// clock, and a sanitized filename.
func storageKey(ownerID, name string) string {
	clean := unsafeKeyChars.ReplaceAllString(name, "_")
	return fmt.Sprintf("%s/%d_%s", ownerID, time.Now().UnixNano(), clean)
}

func percentOf(done, total int) int {
	return int(math.Round(100 * float64(done) / float64(total)))
}
