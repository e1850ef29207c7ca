package internal

import (
	"context"
	"errors"
	"intentd/internal/controllers"
	"intentd/internal/services"
	"intentd/internal/structures"
	"intentd/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(scrape bool) http.Handler {
	conf := &structures.Config{AppName: "UpgradeIntentDaemon"}
	logger := &testutil.MockLogger{}
	sessions := services.NewSessionService(conf, testutil.NewMockKVStore(), logger, testutil.NewMockMetrics())
	ac := controllers.NewApiController(logger, sessions)
	hc := controllers.NewHealthController(conf, sessions)
	return newHandler(hc, InitRoutes(ac, logger).GetRoutes(), testutil.NewMockMetrics(), scrape)
}

func TestNewHandler_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(false).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestNewHandler_MetricsEndpointToggle(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(false).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	newTestHandler(true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewHandler_APIRoutes(t *testing.T) {
	h := newTestHandler(false)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"sessionId":"tab"}`)))
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summary?s=tab", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

type shutdownScheduler struct {
	stopped    int
	persisted  int
	persistErr error
}

func (s *shutdownScheduler) Init() {}
func (s *shutdownScheduler) Stop() { s.stopped++ }
func (s *shutdownScheduler) Persist(_ context.Context) error {
	s.persisted++
	return s.persistErr
}

func TestShutdown_ClosesLogger(t *testing.T) {
	app := &App{WebServer: &http.Server{}}
	sched := &shutdownScheduler{}
	logger := &testutil.MockLogger{}

	require.NoError(t, app.shutdown(sched, logger))

	assert.Equal(t, 1, sched.stopped)
	assert.Equal(t, 1, sched.persisted)
	assert.True(t, logger.Closed())
	assert.Equal(t, 1, logger.Count("info"))
}

func TestShutdown_PersistErrorStillClosesLogger(t *testing.T) {
	app := &App{WebServer: &http.Server{}}
	sched := &shutdownScheduler{persistErr: errors.New("disk full")}
	logger := &testutil.MockLogger{}

	err := app.shutdown(sched, logger)

	assert.ErrorIs(t, err, sched.persistErr)
	assert.True(t, logger.Closed())
	assert.Equal(t, 1, logger.Count("error"))
}
