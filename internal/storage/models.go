package storage

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all storage entities.
type BaseEntity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBaseEntity stamps a fresh time-ordered identifier.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.Must(uuid.NewV7()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch moves UpdatedAt forward.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// Entity is a value that knows how to persist itself in a key-value store.
type Entity interface {
	// StorageKey returns the primary key.
	StorageKey() string
	// StorageIndexes returns secondary keys pointing at the primary key.
	StorageIndexes() []string

	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}
