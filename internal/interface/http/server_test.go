package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniguide-hub/uniguide-server/internal/application/command"
	"github.com/uniguide-hub/uniguide-server/internal/application/query"
	"github.com/uniguide-hub/uniguide-server/internal/domain/catalog"
	"github.com/uniguide-hub/uniguide-server/internal/domain/progress"
	"github.com/uniguide-hub/uniguide-server/internal/domain/shortlist"
)

// testEnv bundles the wired server with the fakes behind it so tests can
// seed state directly.
type testEnv struct {
	server    *Server
	progress  *fakeProgressRepo
	shortlist *fakeShortlistRepo
	checklist *fakeChecklistRepo
	profiles  *fakeProfileRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := newFakeAccountRepo()
	profiles := newFakeProfileRepo()
	progressRepo := newFakeProgressRepo()
	entries := newFakeShortlistRepo()
	checklist := newFakeChecklistRepo()
	universities := &fakeCatalogRepo{universities: []catalog.University{
		{ID: "u-1", Name: "MIT", Country: "USA", TuitionFee: 55000, AcceptanceRate: 4, Ranking: 1},
		{ID: "u-2", Name: "TUM", Country: "Germany", TuitionFee: 300, AcceptanceRate: 8, Ranking: 37},
	}}

	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0

	server := NewServer(cfg, Dependencies{
		RegisterStudent:      command.NewRegisterStudentHandler(accounts, nil),
		UpdateProfileSection: command.NewUpdateProfileSectionHandler(profiles, nil),
		CompleteOnboarding:   command.NewCompleteOnboardingHandler(progressRepo, nil),
		CompleteCounsellor:   command.NewCompleteCounsellorHandler(progressRepo, nil),
		AddToShortlist:       command.NewAddToShortlistHandler(entries, progressRepo, nil),
		RemoveFromShortlist:  command.NewRemoveFromShortlistHandler(entries, nil),
		LockUniversity:       command.NewLockUniversityHandler(entries, progressRepo, nil),
		UnlockUniversity:     command.NewUnlockUniversityHandler(entries, progressRepo, nil),
		AddCustomTask:        command.NewAddCustomTaskHandler(profiles),
		SetTaskDone:          command.NewSetTaskDoneHandler(profiles),
		UpdateChecklistItem:  command.NewUpdateChecklistItemHandler(checklist),
		GetDashboard:         query.NewGetDashboardHandler(profiles, progressRepo, entries, nil),
		GetStrength:          query.NewGetStrengthHandler(profiles),
		GetMatches:           query.NewGetMatchesHandler(profiles, progressRepo, universities, nil),
		GetShortlist:         query.NewGetShortlistHandler(entries),
		GetProgress:          query.NewGetProgressHandler(progressRepo),
		GetChecklist:         query.NewGetChecklistHandler(progressRepo, entries, checklist),
	})

	return &testEnv{
		server:    server,
		progress:  progressRepo,
		shortlist: entries,
		checklist: checklist,
		profiles:  profiles,
	}
}

func (e *testEnv) do(t *testing.T, method, path, studentID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if studentID != "" {
		req.Header.Set("X-Student-ID", studentID)
	}

	rr := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) JSONResponse {
	t.Helper()
	var resp JSONResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) seedEntry(t *testing.T, studentID, id, name, country string) {
	t.Helper()
	entry, err := shortlist.New(id, studentID, name, shortlist.UniversityData{Country: country})
	require.NoError(t, err)
	require.NoError(t, e.shortlist.Create(context.Background(), entry))
}

// ─────────────────────────────────────────────────────────────────────────────
// Identity & probes
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_MissingIdentityIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/profile", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	resp := decodeResponse(t, rr)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unauthorized", resp.Error.Code)
}

func TestServer_BlankIdentityIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/profile", "   ", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServer_ShutdownStopsRateLimiter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 5
	server := NewServer(cfg, Dependencies{})
	require.NotNil(t, server.rateLimiter)

	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case <-server.rateLimiter.stopCh:
	default:
		t.Fatal("cleanup goroutine not signalled to stop after shutdown")
	}

	// A second shutdown must not panic on the closed channel.
	require.NoError(t, server.Shutdown(context.Background()))
}

func TestServer_RegisterNeedsNoIdentity(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	// A repeat registration is absorbed, not rejected.
	rr = env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_RegisterRejectsBlankCredentials(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerRequest{Email: "  "})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_ProbeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/ready", "", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/live", "", nil).Code)
}

func TestProbeChecker_CriticalFailureBlocksReadiness(t *testing.T) {
	checker := NewProbeChecker(map[string]func(ctx context.Context) error{
		"postgres": func(ctx context.Context) error { return errors.New("connection refused") },
		"redis":    func(ctx context.Context) error { return nil },
	}, "postgres")

	status := checker.Check(context.Background())

	assert.False(t, status.Ready)
	assert.False(t, status.Healthy)
	assert.Equal(t, "connection refused", status.Components["postgres"])
	assert.Equal(t, "ok", status.Components["redis"])
}

func TestProbeChecker_AdvisoryFailureKeepsReadiness(t *testing.T) {
	checker := NewProbeChecker(map[string]func(ctx context.Context) error{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("redis down") },
	}, "postgres")

	status := checker.Check(context.Background())

	assert.True(t, status.Ready)
	assert.True(t, status.Healthy)
	assert.Equal(t, "redis degraded", status.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// Stage gates & error mapping
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_StageGateCarriesRedirect(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageBuildingProfile)

	rr := env.do(t, http.MethodPost, "/api/v1/shortlist", "student-1", addShortlistRequest{
		UniversityName: "MIT",
	})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	resp := decodeResponse(t, rr)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "stage_locked", resp.Error.Code)
	assert.Equal(t, "/onboarding/profile", resp.Error.RedirectTo)
}

func TestServer_UnknownEntryIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageFinalizing)

	rr := env.do(t, http.MethodPost, "/api/v1/shortlist/missing/lock", "student-1", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_DuplicateShortlistConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageDiscovery)
	env.seedEntry(t, "student-1", "e-1", "MIT", "USA")

	rr := env.do(t, http.MethodPost, "/api/v1/shortlist", "student-1", addShortlistRequest{
		UniversityName: "MIT",
	})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestServer_MalformedJSONIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Journey flows over the wire
// ─────────────────────────────────────────────────────────────────────────────

func TestServer_LockAndUnlockFlow(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageFinalizing)
	env.seedEntry(t, "student-1", "e-1", "MIT", "USA")
	env.seedEntry(t, "student-1", "e-2", "TUM", "Germany")

	rr := env.do(t, http.MethodPost, "/api/v1/shortlist/e-1/lock", "student-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// The second lock conflicts while the first is held.
	rr = env.do(t, http.MethodPost, "/api/v1/shortlist/e-2/lock", "student-1", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// A locked entry cannot be removed.
	rr = env.do(t, http.MethodDelete, "/api/v1/shortlist/e-1", "student-1", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Unlock requires a reason.
	rr = env.do(t, http.MethodPost, "/api/v1/shortlist/e-1/unlock", "student-1", unlockRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/shortlist/e-1/unlock", "student-1", unlockRequest{Reason: "changed my mind"})
	require.Equal(t, http.StatusOK, rr.Code)

	// After the unlock rollback the lock is free again.
	rr = env.do(t, http.MethodPost, "/api/v1/shortlist/e-2/lock", "student-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_DiscoverFiltersByCountry(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageDiscovery)

	rr := env.do(t, http.MethodGet, "/api/v1/universities/discover?country=Germany", "student-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	matches, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, matches, 1)
}

func TestServer_ProfileSectionRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/profile/section", "student-1", updateSectionRequest{
		Section: "academic",
		Data:    json.RawMessage(`{"gpa":"3.8"}`),
	})
	require.Equal(t, http.StatusOK, rr.Code)

	env.progress.seed("student-1", progress.StageBuildingProfile)
	rr = env.do(t, http.MethodGet, "/api/v1/profile", "student-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_ChecklistGeneratedOnFirstFetch(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageApplication)
	env.seedEntry(t, "student-1", "e-1", "MIT", "USA")
	_, err := env.shortlist.Lock(context.Background(), "student-1", "e-1", time.Now())
	require.NoError(t, err)

	rr := env.do(t, http.MethodGet, "/api/v1/checklist", "student-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 5)
}

func TestServer_ChecklistGatedBeforeApplicationStage(t *testing.T) {
	env := newTestEnv(t)
	env.progress.seed("student-1", progress.StageFinalizing)

	rr := env.do(t, http.MethodGet, "/api/v1/checklist", "student-1", nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestServer_ChecklistItemUpdateUnknownIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPatch, "/api/v1/checklist/missing", "student-1", setDoneRequest{Done: true})

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_CustomTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/tasks", "student-1", addTaskRequest{Title: "Book IELTS slot"})
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeResponse(t, rr)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	taskID, _ := data["id"].(string)
	require.NotEmpty(t, taskID)

	rr = env.do(t, http.MethodPatch, "/api/v1/tasks/"+taskID, "student-1", setDoneRequest{Done: true})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
}
