package repository

import (
	"context"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// UnavailableContestStore answers every call with ErrUnavailable. It stands
// in for the real store when no database is configured, so callers see a
// deterministic 503 instead of spurious not-found results.
type UnavailableContestStore struct{}

func (UnavailableContestStore) Create(context.Context, *model.Contest) error {
	return ErrUnavailable
}

func (UnavailableContestStore) Get(context.Context, string) (*model.Contest, error) {
	return nil, ErrUnavailable
}

func (UnavailableContestStore) List(context.Context) ([]model.Contest, error) {
	return nil, ErrUnavailable
}

func (UnavailableContestStore) Update(context.Context, *model.Contest) error {
	return ErrUnavailable
}

// UnavailableWinnerStore is the WinnerStore counterpart.
type UnavailableWinnerStore struct{}

func (UnavailableWinnerStore) Create(context.Context, *model.WinnerRecord) error {
	return ErrUnavailable
}

func (UnavailableWinnerStore) First(context.Context) (*model.WinnerRecord, error) {
	return nil, ErrUnavailable
}
