package layout

import "context"

// Repository persists one layout per owner.
type Repository interface {
	// Get returns ErrNotFound when the owner has no layout.
	Get(ctx context.Context, owner Owner) (*Layout, error)
	// Create returns ErrAlreadyExists when the owner already has a layout.
	Create(ctx context.Context, l *Layout) error
	// Update stores l only if the stored version still equals expectedVersion.
	Update(ctx context.Context, l *Layout, expectedVersion int) error
	Delete(ctx context.Context, owner Owner) error
}
