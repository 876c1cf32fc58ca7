// Package snapshot persists the last successfully fetched content listings.
// The slug map service falls back to a snapshot when every upstream fetch
// fails, so routing keeps working through backend outages and restarts.
package snapshot

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContentSnapshot is one persisted payload, keyed by a stable name.
type ContentSnapshot struct {
	bun.BaseModel `bun:"table:content_snapshots,alias:cs"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key       string    `bun:"key,notnull,unique" json:"key"`
	Payload   []byte    `bun:"payload,notnull" json:"payload"`
	FetchedAt time.Time `bun:"fetched_at,nullzero,default:current_timestamp" json:"fetched_at"`
}

// NewSnapshotRepository creates a repository for ContentSnapshot entities.
func NewSnapshotRepository(db *bun.DB) repository.Repository[*ContentSnapshot] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentSnapshot]{
		NewRecord: func() *ContentSnapshot { return &ContentSnapshot{} },
		GetID: func(s *ContentSnapshot) uuid.UUID {
			return s.ID
		},
		SetID: func(s *ContentSnapshot, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(s *ContentSnapshot) string {
			return s.Key
		},
	})
}

// EnsureSchema creates the snapshot table when it does not exist.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*ContentSnapshot)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
