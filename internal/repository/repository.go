// Package repository implements the document-store collaborator for contests
// and the bag-builder winner. The Postgres implementation is the production
// backend; an in-memory implementation backs tests and database-less runs,
// and an Unavailable implementation answers for an unconfigured store.
package repository

import (
	"context"
	"errors"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned by every method of the Unavailable stores when
// no document store has been configured.
var ErrUnavailable = errors.New("document store unavailable")

// ContestStore is the persistence contract for contests. Create assigns the
// document id; Get and Update report ErrNotFound for unknown ids.
type ContestStore interface {
	Create(ctx context.Context, contest *model.Contest) error
	Get(ctx context.Context, id string) (*model.Contest, error)
	List(ctx context.Context) ([]model.Contest, error)
	Update(ctx context.Context, contest *model.Contest) error
}

// WinnerStore is the persistence contract for the single winner record.
// First returns ErrNotFound while the collection is empty.
type WinnerStore interface {
	Create(ctx context.Context, record *model.WinnerRecord) error
	First(ctx context.Context) (*model.WinnerRecord, error)
}
