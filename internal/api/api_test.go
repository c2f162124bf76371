package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/repository/sqlite"
	"github.com/vytor/minimalpairs/internal/services"
	"github.com/vytor/minimalpairs/internal/testutil"
)

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return stderrors.New("database is locked") }

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := services.NewQuizService(ctx, testutil.NewStore(),
		sqlite.NewProgressRepository(database.DB, "minimalPairs_v1"),
		sqlite.NewHistoryRepository(database.DB),
		testutil.NewRand(7), nil)
	s := &Server{Quiz: svc, DB: database}
	return s, s.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeAction(t *testing.T, rr *httptest.ResponseRecorder) actionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp actionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func eventTypes(events []services.Event) []services.EventType {
	out := make([]services.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"].Code
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ready", rr.Body.String())
}

func TestReady_DatabaseDown(t *testing.T) {
	s, _ := newTestServer(t)
	s.DB = failingPinger{}

	rr := do(t, s.Routes(), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestMiddleware_Headers(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	_, err := uuid.Parse(rr.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, id, rr.Header().Get("X-Request-ID"))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rr))
}

func TestNotFound(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rr))
}

func TestState(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var snap services.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.SessionNumber)
	assert.Equal(t, 3, snap.Total)
	assert.Nil(t, snap.Current)
}

func TestNextAndAnswer(t *testing.T) {
	_, h := newTestServer(t)

	next := decodeAction(t, do(t, h, http.MethodPost, "/api/next", ""))
	require.Equal(t, []services.EventType{services.EventItemPresented}, eventTypes(next.Events))
	presented := next.Events[0]
	require.NotNil(t, next.State.Current)
	assert.Equal(t, presented.Item.ID, next.State.Current.ID)
	assert.False(t, next.State.Current.Answered)

	ans := decodeAction(t, do(t, h, http.MethodPost, "/api/answer", `{"slot":"`+string(presented.CorrectSlot)+`"}`))
	require.NotNil(t, ans.Answer)
	assert.True(t, ans.Answer.Accepted)
	assert.True(t, ans.Answer.IsCorrect)
	assert.Equal(t, 2, ans.Answer.BoxAfter)
	assert.Equal(t, []services.EventType{services.EventAnswerResult, services.EventStatsChanged}, eventTypes(ans.Events))
	assert.Equal(t, presented.Item.Explanation, ans.Events[0].Explanation)
	assert.Equal(t, 1, ans.State.Stats.Streak)
	assert.True(t, ans.State.Current.Answered)

	again := decodeAction(t, do(t, h, http.MethodPost, "/api/answer", `{"slot":"A"}`))
	assert.False(t, again.Answer.Accepted)
	assert.Empty(t, again.Events)

	rr := do(t, h, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var hist struct {
		History []models.AnswerRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hist))
	require.Len(t, hist.History, 1)
	assert.Equal(t, presented.Item.ID, hist.History[0].ItemID)
	assert.True(t, hist.History[0].Correct)
}

func TestAnswer_BadRequests(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodPost, "/api/answer", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rr))

	rr = do(t, h, http.MethodPost, "/api/answer", `{"slot":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/answer", `{"slot":"C"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))
}

func TestAnswer_NothingPresented(t *testing.T) {
	_, h := newTestServer(t)

	resp := decodeAction(t, do(t, h, http.MethodPost, "/api/answer", `{"slot":"B"}`))
	assert.False(t, resp.Answer.Accepted)
	assert.Empty(t, resp.Events)
	assert.Equal(t, 0, resp.State.Stats.TotalAnswered)
}

func TestToggleCategory(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodPut, "/api/categories/klingonisch", `{"enabled":false}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))

	rr = do(t, h, http.MethodPut, "/api/categories/kasus", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for _, c := range models.Categories {
		decodeAction(t, do(t, h, http.MethodPut, "/api/categories/"+string(c), `{"enabled":false}`))
	}
	next := decodeAction(t, do(t, h, http.MethodPost, "/api/next", ""))
	require.Len(t, next.Events, 1)
	assert.Equal(t, services.EventQueueExhausted, next.Events[0].Type)
	assert.Equal(t, models.ReasonNoActiveCategories, next.Events[0].Reason)
	assert.Empty(t, next.State.ActiveCategories)

	on := decodeAction(t, do(t, h, http.MethodPut, "/api/categories/passiv", `{"enabled":true}`))
	assert.Equal(t, []models.Category{models.CategoryPassiv}, on.State.ActiveCategories)
	assert.Equal(t, 1, on.State.Remaining)

	rr = do(t, h, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var cats struct {
		Categories []services.CategoryInfo `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cats))
	require.Len(t, cats.Categories, len(models.Categories))
	for _, c := range cats.Categories {
		assert.Equal(t, c.Category == models.CategoryPassiv, c.Active, c.Category)
	}
}

func TestContinueAndReset(t *testing.T) {
	_, h := newTestServer(t)

	cont := decodeAction(t, do(t, h, http.MethodPost, "/api/continue", ""))
	assert.Equal(t, 2, cont.State.SessionNumber)
	assert.Equal(t, services.EventItemPresented, cont.Events[0].Type)

	reset := decodeAction(t, do(t, h, http.MethodPost, "/api/reset", ""))
	assert.Equal(t, []services.EventType{services.EventStatsChanged, services.EventItemPresented}, eventTypes(reset.Events))
	assert.Equal(t, 1, reset.State.SessionNumber)
	assert.Equal(t, 0, reset.State.Stats.TotalAnswered)
}

func TestHistory_InvalidLimit(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/history?limit=-3", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/history?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rr))
}

func TestHistory_EmptyIsArray(t *testing.T) {
	_, h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"history":[]}`, rr.Body.String())
}

func TestTimeoutMiddleware_RespondsWithJSON(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	h := timeoutMiddleware(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))

	rr := do(t, h, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "TIMEOUT", errorCode(t, rr))
}

func TestTimeout_DoesNotWrapMutatingRoutes(t *testing.T) {
	s, _ := newTestServer(t)
	s.RequestTimeout = time.Nanosecond
	h := s.Routes()

	for _, path := range []string{"/api/next", "/api/continue", "/api/reset"} {
		rr := do(t, h, http.MethodPost, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
	rr := do(t, h, http.MethodPut, "/api/categories/kasus", `{"enabled":false}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}
