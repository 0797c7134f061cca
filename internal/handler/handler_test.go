package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpspell/premier-squares-service/internal/config"
	"github.com/jpspell/premier-squares-service/internal/model"
	"github.com/jpspell/premier-squares-service/internal/repository"
	"github.com/jpspell/premier-squares-service/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		MaxCostPerSquare:   10000,
		RequiredRosterSize: 100,
		MaxNameLength:      100,
		MaxBodyBytes:       1 << 20,
		CORSAllowedOrigins: []string{"*"},
		// Rate limiting stays off so tests can hammer the router.
		RateLimitPerMinute: 0,
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	contests := service.NewContestService(repository.NewMemoryContestStore(), cfg)
	winners := service.NewWinnerService(repository.NewMemoryWinnerStore(), cfg)
	return NewRouter(cfg, contests, winners)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func rosterOfSize(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i)
	}
	return names
}

func TestContestLifecycleEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// Create.
	rec := doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{
		EventID:       "evt1",
		CostPerSquare: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.CreateContestResponse](t, rec)
	assert.True(t, created.Success)
	assert.Equal(t, "Contest created successfully", created.Message)
	assert.NotEmpty(t, created.DocumentID)
	assert.Equal(t, model.StatusNew, created.Data.Status)
	assert.NotContains(t, rec.Body.String(), `"names"`, "a new contest must not carry a names field")

	id := created.DocumentID

	// Assign the roster.
	roster := rosterOfSize(100)
	rec = doJSON(t, router, http.MethodPut, "/contests/"+id, model.UpdateNamesRequest{Names: roster})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.ContestMutationResponse](t, rec)
	assert.True(t, updated.Success)
	assert.Len(t, updated.Data.Names, 100)

	// Start.
	rec = doJSON(t, router, http.MethodPost, "/contests/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	started := decode[model.ContestMutationResponse](t, rec)
	assert.Equal(t, model.StatusActive, started.Data.Status)
	assert.ElementsMatch(t, roster, started.Data.Names)

	// A second start must fail citing the active state and not re-shuffle.
	rec = doJSON(t, router, http.MethodPost, "/contests/"+id+"/start", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "validation_failed", errResp.Error)
	require.NotEmpty(t, errResp.ValidationErrors)
	assert.Contains(t, errResp.ValidationErrors[0], "'active' state")
	require.NotNil(t, errResp.ContestData)
	assert.Equal(t, model.StatusActive, errResp.ContestData.Status)

	rec = doJSON(t, router, http.MethodGet, "/contests/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.GetContestResponse](t, rec)
	assert.Equal(t, started.Data.Names, got.Contest.Names)
}

func TestUpdateSingleNameOnFreshContest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{
		EventID:       "evt1",
		CostPerSquare: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[model.CreateContestResponse](t, rec).DocumentID

	rec = doJSON(t, router, http.MethodPut, "/contests/"+id, model.UpdateNamesRequest{Names: []string{"OnlyOneName"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.ContestMutationResponse](t, rec)
	assert.Equal(t, []string{"OnlyOneName"}, updated.Data.Names)
}

func TestUpdateNamesOnActiveContest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{
		EventID:       "evt1",
		CostPerSquare: 10,
	})
	id := decode[model.CreateContestResponse](t, rec).DocumentID
	doJSON(t, router, http.MethodPut, "/contests/"+id, model.UpdateNamesRequest{Names: rosterOfSize(100)})
	rec = doJSON(t, router, http.MethodPost, "/contests/"+id+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	started := decode[model.ContestMutationResponse](t, rec)

	rec = doJSON(t, router, http.MethodPut, "/contests/"+id, model.UpdateNamesRequest{Names: []string{"Interloper"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "invalid_state", errResp.Error)
	assert.Equal(t, model.StatusActive, errResp.CurrentStatus)

	// The roster is unchanged.
	rec = doJSON(t, router, http.MethodGet, "/contests/"+id, nil)
	got := decode[model.GetContestResponse](t, rec)
	assert.Equal(t, started.Data.Names, got.Contest.Names)
}

func TestCreateContestValidationResponse(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{
		EventID:       "",
		CostPerSquare: -1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.False(t, errResp.Success)
	assert.Equal(t, "validation_error", errResp.Error)
	assert.Len(t, errResp.ValidationErrors, 2, "all violations are reported together")
}

func TestMalformedRequestBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/contests", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", errResp.Error)
}

func TestGetUnknownContest(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/contests/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "not_found", errResp.Error)
}

func TestListContests(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/contests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[model.ListContestsResponse](t, rec)
	assert.True(t, listed.Success)
	assert.Zero(t, listed.Count)
	assert.NotNil(t, listed.Contests, "empty list must encode as [], not null")

	doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{EventID: "evt1", CostPerSquare: 10})
	doJSON(t, router, http.MethodPost, "/contests", model.CreateContestRequest{EventID: "evt2", CostPerSquare: 20})

	rec = doJSON(t, router, http.MethodGet, "/contests", nil)
	listed = decode[model.ListContestsResponse](t, rec)
	assert.Equal(t, 2, listed.Count)
	assert.Len(t, listed.Contests, 2)
}

func TestWinnerRegistryEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	// No winner yet: an explicit null result, not an error.
	rec := doJSON(t, router, http.MethodGet, "/bagbuilder/winner", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	winner := decode[model.WinnerResponse](t, rec)
	assert.True(t, winner.Success)
	assert.Nil(t, winner.Data)
	assert.Equal(t, "No winner selected yet", winner.Message)

	// First write succeeds.
	rec = doJSON(t, router, http.MethodPost, "/bagbuilder/winner/Alice", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	winner = decode[model.WinnerResponse](t, rec)
	assert.Equal(t, "Alice", winner.Data.Name)
	assert.NotEmpty(t, winner.Data.ID)

	// Second write is rejected with the existing record attached.
	rec = doJSON(t, router, http.MethodPost, "/bagbuilder/winner/Bob", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errResp := decode[model.ErrorResponse](t, rec)
	assert.Equal(t, "already_exists", errResp.Error)
	require.NotNil(t, errResp.Data)
	assert.Equal(t, "Alice", errResp.Data.Name)

	// The registry still holds the original.
	rec = doJSON(t, router, http.MethodGet, "/bagbuilder/winner", nil)
	winner = decode[model.WinnerResponse](t, rec)
	assert.Equal(t, "Alice", winner.Data.Name)
}

func TestUnavailableStoreAnswers503(t *testing.T) {
	cfg := testConfig()
	contests := service.NewContestService(repository.UnavailableContestStore{}, cfg)
	winners := service.NewWinnerService(repository.UnavailableWinnerStore{}, cfg)
	router := NewRouter(cfg, contests, winners)

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/contests", model.CreateContestRequest{EventID: "evt1", CostPerSquare: 10}},
		{http.MethodGet, "/contests", nil},
		{http.MethodGet, "/contests/some-id", nil},
		{http.MethodPost, "/bagbuilder/winner/Alice", nil},
		{http.MethodGet, "/bagbuilder/winner", nil},
	} {
		rec := doJSON(t, router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", tc.method, tc.path)
		errResp := decode[model.ErrorResponse](t, rec)
		assert.Equal(t, "service_unavailable", errResp.Error, "%s %s", tc.method, tc.path)
	}

	// Health stays green without a store.
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[model.HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.GreaterOrEqual(t, health.UptimeSeconds, 0.0)
	assert.False(t, health.Timestamp.IsZero())
}
