package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpspell/premier-squares-service/internal/config"
	"github.com/jpspell/premier-squares-service/internal/model"
	"github.com/jpspell/premier-squares-service/internal/repository"
)

// WinnerService owns the bag-builder winner registry: a single record with
// write-once semantics. The existence check and the insert are separate store
// calls, so two concurrent first writers can race; see DESIGN.md.
type WinnerService struct {
	winners repository.WinnerStore
	cfg     config.Config
}

// NewWinnerService constructs a WinnerService with its dependencies.
func NewWinnerService(winners repository.WinnerStore, cfg config.Config) *WinnerService {
	return &WinnerService{winners: winners, cfg: cfg}
}

// SetWinner records the winner. It fails with AlreadyExistsError, carrying
// the existing record, once a winner has been recorded.
func (s *WinnerService) SetWinner(ctx context.Context, name string) (*model.WinnerRecord, error) {
	name = strings.TrimSpace(name)

	var errs []string
	if name == "" {
		errs = append(errs, "name is required")
	} else if len(name) > s.cfg.MaxNameLength {
		errs = append(errs, fmt.Sprintf("name cannot exceed %d characters", s.cfg.MaxNameLength))
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	existing, err := s.winners.First(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing winner: %w", err)
	}
	if existing != nil {
		return nil, &AlreadyExistsError{Existing: existing}
	}

	now := time.Now().UTC()
	record := &model.WinnerRecord{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.winners.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create winner: %w", err)
	}
	return record, nil
}

// GetWinner returns the recorded winner, or (nil, nil) when no winner has
// been selected yet. Absence is a normal result, not an error.
func (s *WinnerService) GetWinner(ctx context.Context) (*model.WinnerRecord, error) {
	record, err := s.winners.First(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get winner: %w", err)
	}
	return record, nil
}
