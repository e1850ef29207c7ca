package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
	"intentd/internal/intent"
	"intentd/internal/models"
	"intentd/internal/providers"
	"intentd/internal/services"
	"io"
	"math"
	"net/http"
	"time"
)

const (
	maxRequestBodySize = 64 << 10 // 64 KB
	maxTrialMs         = math.MaxInt64 / int64(time.Millisecond)
)

var errInvalidDuration = errors.New("invalid durationMs")

type ApiController struct {
	logger   providers.Logger
	sessions services.SessionServiceInterface
}

func NewApiController(logger providers.Logger, sessions services.SessionServiceInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		sessions: sessions,
	}
}

type openSessionRequest struct {
	SessionID string `json:"sessionId" validate:"maxLen:128"`
}

type openSessionResponse struct {
	SessionID         string `json:"sessionId"`
	SessionStart      int64  `json:"sessionStart"`
	TotalInteractions int    `json:"totalInteractions"`
}

type interactionRequest struct {
	MetricID        string `json:"metricId" validate:"required"`
	InteractionType string `json:"interactionType" validate:"required|in:hover,tap,click,longHover"`
	Duration        *int64 `json:"duration"`
	Source          string `json:"source" validate:"in:card,tooltip,banner,teaser"`
}

type metricRequest struct {
	MetricID string `json:"metricId" validate:"required"`
	Source   string `json:"source" validate:"in:card,tooltip,banner,teaser"`
}

type trialRequest struct {
	MetricID   string      `json:"metricId" validate:"required"`
	DurationMs interface{} `json:"durationMs"`
}

type modalRequest struct {
	MetricID string `json:"metricId"`
}

type recordResponse struct {
	Recorded    bool                `json:"recorded"`
	Interaction *models.Interaction `json:"interaction,omitempty"`
}

type trialResponse struct {
	Started bool                `json:"started"`
	Trial   *models.TrialUnlock `json:"trial,omitempty"`
}

type trialStatusResponse struct {
	MetricID    models.MetricID `json:"metricId"`
	Active      bool            `json:"active"`
	RemainingMs *int64          `json:"remainingMs"`
}

type trialListResponse struct {
	Trials []models.TrialUnlock `json:"trials"`
}

type summaryResponse struct {
	models.InteractionSummary
	MostInteractedMetrics []models.MetricCount `json:"mostInteractedMetrics"`
	ActiveTrials          []models.TrialUnlock `json:"activeTrials"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set.
func decode(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return false
		}
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		http.Error(w, v.Errors.One(), http.StatusBadRequest)
		return false
	}
	return true
}

func (ac *ApiController) tracker(w http.ResponseWriter, r *http.Request) (*intent.Tracker, bool) {
	id := r.URL.Query().Get("s")
	if id == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return nil, false
	}
	t, err := ac.sessions.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return nil, false
		}
		ac.logger.Errorf(providers.TypeApp, "Session lookup %s failed: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return t, true
}

func metricParam(r *http.Request) models.MetricID {
	return models.MetricID(r.URL.Query().Get("m"))
}

func (ac *ApiController) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if !decode(w, r, &req, true) {
		return
	}
	id, t := ac.sessions.Open(r.Context(), req.SessionID)
	writeJSON(w, http.StatusCreated, openSessionResponse{
		SessionID:         id,
		SessionStart:      t.SessionStart(),
		TotalInteractions: t.Summary().TotalInteractions,
	})
}

func (ac *ApiController) CloseSession(w http.ResponseWriter, r *http.Request) {
	err := ac.sessions.Close(r.Context(), r.URL.Query().Get("s"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	var req interactionRequest
	if !decode(w, r, &req, false) {
		return
	}
	i, recorded := t.RecordInteraction(r.Context(), models.InteractionInput{
		MetricID:        models.MetricID(req.MetricID),
		InteractionType: models.InteractionType(req.InteractionType),
		Duration:        req.Duration,
		Source:          models.Source(req.Source),
	})
	ac.writeRecord(w, i, recorded)
}

func (ac *ApiController) writeRecord(w http.ResponseWriter, i models.Interaction, recorded bool) {
	if !recorded {
		writeJSON(w, http.StatusOK, recordResponse{})
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Recorded: true, Interaction: &i})
}

func (ac *ApiController) HoverStart(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	var req metricRequest
	if !decode(w, r, &req, false) {
		return
	}
	t.BeginHover(models.MetricID(req.MetricID), models.Source(req.Source))
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) HoverEnd(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	var req metricRequest
	if !decode(w, r, &req, false) {
		return
	}
	i, recorded := t.EndHover(r.Context(), models.MetricID(req.MetricID))
	ac.writeRecord(w, i, recorded)
}

// parseDurationMs accepts a JSON number or numeric string of milliseconds
// that fits in a time.Duration.
func parseDurationMs(v interface{}) (int64, error) {
	if f, ok := v.(float64); ok && (f < 0 || f > float64(maxTrialMs)) {
		return 0, errInvalidDuration
	}
	ms, err := cast.ToInt64E(v)
	if err != nil || ms < 0 || ms > maxTrialMs {
		return 0, errInvalidDuration
	}
	return ms, nil
}

func (ac *ApiController) StartTrial(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	var req trialRequest
	if !decode(w, r, &req, false) {
		return
	}

	metric := models.MetricID(req.MetricID)
	var (
		trial   models.TrialUnlock
		started bool
	)
	if req.DurationMs == nil {
		trial, started = t.StartDefaultTrial(r.Context(), metric)
	} else {
		ms, err := parseDurationMs(req.DurationMs)
		if err != nil {
			http.Error(w, "invalid durationMs", http.StatusBadRequest)
			return
		}
		trial, started = t.StartTrial(r.Context(), metric, time.Duration(ms)*time.Millisecond)
	}
	if !started {
		writeJSON(w, http.StatusOK, trialResponse{})
		return
	}
	writeJSON(w, http.StatusCreated, trialResponse{Started: true, Trial: &trial})
}

// TrialStatus reports one metric's trial when m is set, otherwise every active trial.
func (ac *ApiController) TrialStatus(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	metric := metricParam(r)
	if metric == "" {
		writeJSON(w, http.StatusOK, trialListResponse{Trials: t.ActiveTrials()})
		return
	}

	resp := trialStatusResponse{MetricID: metric}
	if remaining, active := t.TrialTimeRemaining(metric); active {
		resp.Active = true
		resp.RemainingMs = &remaining
	}
	writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) Prompt(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t.PersonalizedPrompt(metricParam(r)))
}

func (ac *ApiController) Summary(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		InteractionSummary:    t.Summary(),
		MostInteractedMetrics: t.MostInteractedMetrics(),
		ActiveTrials:          t.ActiveTrials(),
	})
}

func (ac *ApiController) OpenModal(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	var req modalRequest
	if !decode(w, r, &req, true) {
		return
	}
	writeJSON(w, http.StatusOK, t.OpenUpgradeModal(r.Context(), models.MetricID(req.MetricID)))
}

func (ac *ApiController) CloseModal(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	t.CloseUpgradeModal()
	writeJSON(w, http.StatusOK, t.Modal())
}

func (ac *ApiController) Modal(w http.ResponseWriter, r *http.Request) {
	t, ok := ac.tracker(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t.Modal())
}
