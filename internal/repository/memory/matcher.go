// Package memory provides in-process repository implementations backing the
// service tests. Specifications are interpreted structurally instead of
// being compiled to SQL.
package memory

import (
	"sort"

	"lecturescribe-be/internal/repository/specification"

	"github.com/google/uuid"
)

// record is the subset of row fields the specifications can predicate on.
type record struct {
	Id     uuid.UUID
	UserId uuid.UUID
	// GroupId is folder_id for notes and parent_id for folders.
	GroupId *uuid.UUID
}

func matches(r record, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if r.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if r.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.UserOwnedBy:
			if r.UserId != s.UserID {
				return false
			}
		case specification.ByFolderID:
			if r.GroupId == nil || *r.GroupId != s.FolderID {
				return false
			}
		case specification.ByFolderIDs:
			if r.GroupId == nil {
				return false
			}
			found := false
			for _, id := range s.FolderIDs {
				if *r.GroupId == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ByParentID:
			if r.GroupId == nil || *r.GroupId != s.ParentID {
				return false
			}
		case specification.OrderBy, specification.Pagination:
			// applied after filtering
		}
	}
	return true
}

// orderSpec extracts the OrderBy specification, if present.
func orderSpec(specs []specification.Specification) (specification.OrderBy, bool) {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok {
			return s, true
		}
	}
	return specification.OrderBy{}, false
}

// sortStable orders filtered results with the provided less function,
// honoring the Desc flag.
func sortStable[T any](items []T, desc bool, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
