package drive

import (
	"context"
	"errors"
	"fmt"

	"go-cloud-drive/internal/models"
)

// pathKey identifies one folder lookup within a batch: the parent already
// resolved plus the next segment name. An empty parent stands for the root.
type pathKey struct {
	parentID string
	name     string
}

// pathCache memoizes segment resolution for the lifetime of one upload
// batch. It is what guarantees that two files sharing a path prefix resolve
// the prefix to the same folder and that each missing folder is created at
// most once per batch. Never reused across batches.
type pathCache map[pathKey]string

func newPathCache() pathCache {
	return make(pathCache)
}

func (c pathCache) key(parentID *string, name string) pathKey {
	k := pathKey{name: name}
	if parentID != nil {
		k.parentID = *parentID
	}
	return k
}

// resolvePath walks the path segments left to right, returning the id of the
// folder the file itself belongs in (nil for the root). Missing folders are
// created along the way; a duplicate-key race with another session is
// recovered by re-querying for the folder the other session created.
//
// Segments must be non-empty; the orchestrator filters blank segments before
// calling.
func (m *Manager) resolvePath(ctx context.Context, segments []string, startParentID *string, cache pathCache) (*string, error) {
	parentID := startParentID

	for _, segment := range segments {
		key := cache.key(parentID, segment)
		if id, ok := cache[key]; ok {
			parentID = &id
			continue
		}

		folder, err := m.gateway.FolderByName(ctx, m.ownerID, parentID, segment)
		if errors.Is(err, ErrNotFound) {
			folder, err = m.createPathFolder(ctx, segment, parentID)
		}
		if err != nil {
			return nil, fmt.Errorf("resolving segment %q: %w", segment, err)
		}

		cache[key] = folder.ID
		parentID = &folder.ID
	}

	return parentID, nil
}

func (m *Manager) createPathFolder(ctx context.Context, name string, parentID *string) (*models.Folder, error) {
	folder := &models.Folder{
		Name:     name,
		ParentID: parentID,
		OwnerID:  m.ownerID,
	}
	err := m.gateway.CreateFolder(ctx, folder)
	if errors.Is(err, ErrDuplicateName) {
		// Another session created it first. The constraint is the arbiter;
		// reuse the winner's folder.
		return m.gateway.FolderByName(ctx, m.ownerID, parentID, name)
	}
	if err != nil {
		return nil, err
	}

	if sameParent(parentID, m.currentFolderID()) {
		m.folders = append(m.folders, *folder)
	}
	return folder, nil
}

// sameParent compares two nullable folder ids.
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
