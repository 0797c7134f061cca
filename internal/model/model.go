// Package model defines the core domain types for the squares contest service.
package model

import "time"

// Status is the lifecycle state of a contest.
type Status string

const (
	// StatusNew is the initial state of every contest. Rosters may only be
	// edited while a contest is new.
	StatusNew Status = "new"
	// StatusActive means the roster has been locked in and shuffled.
	StatusActive Status = "active"
	// StatusCompleted and StatusCancelled are set by external processes,
	// never by this service. They are accepted as valid stored values.
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known contest status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Contest represents a squares contest for a single event.
//
// Names is absent (nil) until the roster-update step; its order encodes
// board position once the contest is started.
type Contest struct {
	ID            string    `json:"id"`
	EventID       string    `json:"eventId"`
	CostPerSquare float64   `json:"costPerSquare"`
	Names         []string  `json:"names,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Snapshot returns the diagnostic summary attached to start-validation
// failures.
func (c *Contest) Snapshot() ContestSnapshot {
	return ContestSnapshot{
		ID:            c.ID,
		EventID:       c.EventID,
		CostPerSquare: c.CostPerSquare,
		NamesCount:    len(c.Names),
		Status:        c.Status,
	}
}

// ContestSnapshot is a compact view of a contest used in error payloads.
type ContestSnapshot struct {
	ID            string  `json:"id"`
	EventID       string  `json:"eventId"`
	CostPerSquare float64 `json:"costPerSquare"`
	NamesCount    int     `json:"namesCount"`
	Status        Status  `json:"status"`
}

// WinnerRecord is the single bag-builder winner. At most one record ever
// exists in the collection.
type WinnerRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateContestRequest is the payload for creating a new contest.
type CreateContestRequest struct {
	EventID       string  `json:"eventId"`
	CostPerSquare float64 `json:"costPerSquare"`
}

// UpdateNamesRequest is the payload for replacing a contest's roster.
type UpdateNamesRequest struct {
	Names []string `json:"names"`
}

// CreateContestResponse is the envelope for a successful contest creation.
type CreateContestResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	DocumentID string   `json:"documentId"`
	Data       *Contest `json:"data"`
}

// ListContestsResponse is the envelope for listing all contests.
type ListContestsResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Contests []Contest `json:"contests"`
}

// GetContestResponse is the envelope for fetching a single contest.
type GetContestResponse struct {
	Success bool     `json:"success"`
	Contest *Contest `json:"contest"`
}

// ContestMutationResponse is the envelope for roster updates and starts.
type ContestMutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Contest `json:"data"`
}

// WinnerResponse is the envelope for winner reads and writes. Data is null
// when no winner has been selected yet.
type WinnerResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *WinnerRecord `json:"data"`
}

// ErrorResponse is the standard JSON error envelope. Error holds a stable
// machine-readable category; the optional fields carry the context a client
// needs to recover.
type ErrorResponse struct {
	Success          bool             `json:"success"`
	Error            string           `json:"error"`
	Message          string           `json:"message"`
	CurrentStatus    Status           `json:"currentStatus,omitempty"`
	ValidationErrors []string         `json:"validationErrors,omitempty"`
	ContestData      *ContestSnapshot `json:"contestData,omitempty"`
	Data             *WinnerRecord    `json:"data,omitempty"`
}

// HealthResponse is the liveness payload for GET /health.
type HealthResponse struct {
	Status        string    `json:"status"`
	UptimeSeconds float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
}
