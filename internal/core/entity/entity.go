// Package entity provides base types shared by all persisted entities.
package entity

import (
	"context"
	"time"

	"stockpos/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// DeletionState is the tagged soft-delete state of an entity.
// Storage keeps a nullable deleted_at column; the domain only ever sees
// this explicit state so "is active" checks cannot skip the null check.
type DeletionState struct {
	Deleted bool
	At      time.Time
}

// Base contains common fields for all mutable entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// DeletedAt carries the soft-delete timestamp; nil means active.
	// Use State/MarkDeleted/Restore instead of touching it directly.
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

// NewBase creates a new Base with generated ID and timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// State returns the tagged deletion state.
func (b *Base) State() DeletionState {
	if b.DeletedAt == nil {
		return DeletionState{}
	}
	return DeletionState{Deleted: true, At: *b.DeletedAt}
}

// IsDeleted reports whether the entity is soft-deleted.
func (b *Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// MarkDeleted sets the deletion timestamp.
func (b *Base) MarkDeleted() {
	now := time.Now().UTC()
	b.DeletedAt = &now
}

// Restore clears the deletion timestamp.
func (b *Base) Restore() {
	b.DeletedAt = nil
}
