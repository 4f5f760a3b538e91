package types

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jcastellanos-dev/mercata-backend/pkg/db/models"
)

// StoreLoader fetches a vendor store by id.
type StoreLoader interface {
	FindStore(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// VendorRef is a tagged reference to a vendor store: either just the id, or
// the id plus the loaded row. Callers must go through Resolve before touching
// store fields instead of inspecting the shape ad hoc.
type VendorRef struct {
	ID       uuid.UUID
	resolved *models.Store
}

// VendorRefFromID wraps a bare vendor id.
func VendorRefFromID(id uuid.UUID) VendorRef {
	return VendorRef{ID: id}
}

// VendorRefFromStore wraps an already-loaded store row.
func VendorRefFromStore(store *models.Store) VendorRef {
	if store == nil {
		return VendorRef{}
	}
	return VendorRef{ID: store.ID, resolved: store}
}

// IsZero reports whether the reference points at no vendor.
func (v VendorRef) IsZero() bool {
	return v.ID == uuid.Nil
}

// Resolved returns the loaded store row, or nil when only the id is known.
func (v VendorRef) Resolved() *models.Store {
	return v.resolved
}

// Resolve loads the store row unless it is already attached.
func (v VendorRef) Resolve(ctx context.Context, loader StoreLoader) (*models.Store, error) {
	if v.resolved != nil {
		return v.resolved, nil
	}
	if v.ID == uuid.Nil {
		return nil, fmt.Errorf("vendor reference is empty")
	}
	if loader == nil {
		return nil, fmt.Errorf("store loader required")
	}
	store, err := loader.FindStore(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.resolved = store
	return store, nil
}
