// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/jpspell/premier-squares-service/internal/config"
	"github.com/jpspell/premier-squares-service/internal/model"
	"github.com/jpspell/premier-squares-service/internal/repository"
)

var eventIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// ContestService owns the contest lifecycle: creation, roster assignment,
// and the validated transition from 'new' to 'active'.
type ContestService struct {
	contests repository.ContestStore
	cfg      config.Config
}

// NewContestService constructs a ContestService with its dependencies.
func NewContestService(contests repository.ContestStore, cfg config.Config) *ContestService {
	return &ContestService{contests: contests, cfg: cfg}
}

// Create validates the request and persists a new contest in the 'new' state
// with no roster. All violated constraints are reported together.
func (s *ContestService) Create(ctx context.Context, req model.CreateContestRequest) (*model.Contest, error) {
	var errs []string

	eventID := strings.TrimSpace(req.EventID)
	switch {
	case eventID == "":
		errs = append(errs, "eventId is required")
	case !eventIDPattern.MatchString(eventID):
		errs = append(errs, "eventId must be 1-100 characters of letters, digits, hyphens, or underscores")
	}

	if req.CostPerSquare <= 0 {
		errs = append(errs, "costPerSquare must be a positive number")
	} else {
		if req.CostPerSquare > s.cfg.MaxCostPerSquare {
			errs = append(errs, fmt.Sprintf("costPerSquare cannot exceed %g", s.cfg.MaxCostPerSquare))
		}
		if !hasAtMostTwoDecimals(req.CostPerSquare) {
			errs = append(errs, "costPerSquare can have at most 2 decimal places")
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	now := time.Now().UTC()
	contest := &model.Contest{
		EventID:       eventID,
		CostPerSquare: req.CostPerSquare,
		Status:        model.StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.contests.Create(ctx, contest); err != nil {
		return nil, fmt.Errorf("create contest: %w", err)
	}
	return contest, nil
}

// Get returns a single contest by ID.
func (s *ContestService) Get(ctx context.Context, id string) (*model.Contest, error) {
	contest, err := s.contests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get contest: %w", err)
	}
	return contest, nil
}

// List returns all contests in store order.
func (s *ContestService) List(ctx context.Context) ([]model.Contest, error) {
	return s.contests.List(ctx)
}

// UpdateNames replaces the contest's roster. The roster may only be written
// while the contest is 'new'; any other state is rejected with the current
// status so the caller can display it.
func (s *ContestService) UpdateNames(ctx context.Context, id string, names []string) (*model.Contest, error) {
	var errs []string
	if len(names) == 0 {
		errs = append(errs, "names must contain at least one entry")
	}
	if len(names) > s.cfg.RequiredRosterSize {
		errs = append(errs, fmt.Sprintf("names cannot contain more than %d entries", s.cfg.RequiredRosterSize))
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Sprintf("names[%d] must be a non-empty string", i))
			break
		}
		if len(name) > s.cfg.MaxNameLength {
			errs = append(errs, fmt.Sprintf("names[%d] cannot exceed %d characters", i, s.cfg.MaxNameLength))
			break
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	contest, err := s.contests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if contest.Status != model.StatusNew {
		return nil, &InvalidStateError{CurrentStatus: contest.Status}
	}

	contest.Names = names
	contest.UpdatedAt = time.Now().UTC()
	if err := s.contests.Update(ctx, contest); err != nil {
		return nil, fmt.Errorf("update contest: %w", err)
	}
	return contest, nil
}

// Start locks in the roster and transitions the contest to 'active'. Every
// violated precondition is collected before failing, so one call reports the
// full fix list; on success the roster is shuffled with an unbiased
// Fisher-Yates permutation.
func (s *ContestService) Start(ctx context.Context, id string) (*model.Contest, error) {
	contest, err := s.contests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get contest: %w", err)
	}

	var errs []string
	if contest.Status != model.StatusNew {
		errs = append(errs, fmt.Sprintf("Contest cannot be started in '%s' state. Only contests in 'new' state can be started.", contest.Status))
	}
	if strings.TrimSpace(contest.EventID) == "" {
		errs = append(errs, "Contest is missing an eventId.")
	}
	if contest.CostPerSquare <= 0 {
		errs = append(errs, "Contest costPerSquare must be a positive number.")
	}
	if contest.Names == nil {
		errs = append(errs, fmt.Sprintf("Contest has no names assigned. Exactly %d names are required to start.", s.cfg.RequiredRosterSize))
	} else {
		if len(contest.Names) != s.cfg.RequiredRosterSize {
			errs = append(errs, fmt.Sprintf("Contest has %d names but exactly %d are required to start.", len(contest.Names), s.cfg.RequiredRosterSize))
		}
		// One message for the first offending entry is enough.
		for i, name := range contest.Names {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, fmt.Sprintf("Name at position %d is empty. Every name must be a non-empty string.", i))
				break
			}
		}
	}
	if len(errs) > 0 {
		return nil, &StartValidationError{Errors: errs, Snapshot: contest.Snapshot()}
	}

	contest.Names = shuffle(contest.Names)
	contest.Status = model.StatusActive
	contest.UpdatedAt = time.Now().UTC()
	if err := s.contests.Update(ctx, contest); err != nil {
		return nil, fmt.Errorf("update contest: %w", err)
	}
	return contest, nil
}

// shuffle returns an unbiased Fisher-Yates permutation of names. Board
// positions are assigned from this order, so uniformity is the fairness
// guarantee participants rely on.
func shuffle(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	for i := len(out) - 1; i >= 1; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// hasAtMostTwoDecimals reports whether v has no more than two fractional
// digits, within floating-point tolerance.
func hasAtMostTwoDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
