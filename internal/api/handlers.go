// Package api exposes HTTP handlers for the energy budget service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/energy/internal/domain"
	"example.com/energy/internal/observability"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux. The paths are the ones the
// mobile front-end already speaks.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/add", h.createActivity)
	mux.HandleFunc("/activities/", h.activityByID)
	mux.HandleFunc("/contra-pro-pair-test", h.pairs)
	mux.HandleFunc("/contra-pro-pair-test/", h.pairByID)
	mux.HandleFunc("/todays-activities", h.todaysActivities)
	mux.HandleFunc("/todays-activities/", h.todaysActivityByID)
	mux.HandleFunc("/saved-todays-activities", h.saveDay)
	mux.HandleFunc("/saved-todays-activities/", h.snapshotByDate)
	mux.HandleFunc("/saved-todays-only-boost", h.todaysBoosts)
	mux.HandleFunc("/current-energy-level", h.energyLevel)
	mux.HandleFunc("/resources-distribution", h.distribution)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]ActivityView, 0, len(activities))
	for _, activity := range activities {
		items = append(items, toActivityView(activity))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), req.Name, req.Percentage, domain.Kind(req.Type))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	observability.RecordActivityCreated(string(activity.Kind))
	writeJSON(w, http.StatusCreated, toActivityView(*activity))
}

func (h *Handler) activityByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/activities/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateActivity(w, r, id)
	case http.MethodDelete:
		h.deleteActivity(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request, id string) {
	var req ActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	activity, err := h.service.UpdateActivity(r.Context(), id, req.Name, req.Percentage)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityView(*activity))
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteActivity(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	observability.RecordActivityDeleted()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pairs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPairs(w, r)
	case http.MethodPost:
		h.createPair(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.ListPairs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]PairView, 0, len(pairs))
	for _, pair := range pairs {
		items = append(items, toPairView(pair))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createPair(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	pair, err := h.service.CreatePair(r.Context(),
		domain.PairInput{Name: req.DrainActivity.Name, Percentage: req.DrainActivity.Percentage},
		domain.PairInput{Name: req.BoostActivity.Name, Percentage: req.BoostActivity.Percentage},
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	observability.RecordActivityCreated(string(domain.KindDrain))
	observability.RecordActivityCreated(string(domain.KindBoost))
	writeJSON(w, http.StatusCreated, toPairView(*pair))
}

func (h *Handler) pairByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/contra-pro-pair-test/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing pair id")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	if err := h.service.DeletePair(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) todaysActivities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPlan(w, r)
	case http.MethodPost:
		h.addToPlan(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listPlan(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListPlan(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]PlanEntryView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toPlanEntryView(entry))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addToPlan(w http.ResponseWriter, r *http.Request) {
	var req AddPlanEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "activityId is required")
		return
	}

	entry, err := h.service.AddToPlan(r.Context(), req.ActivityID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlanEntryView(*entry))
}

func (h *Handler) todaysActivityByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/todays-activities/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing entry id")
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	// DELETE /todays-activities/all empties the whole plan.
	if id == "all" {
		if err := h.service.ClearPlan(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.service.RemoveFromPlan(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	activities := make([]domain.Activity, 0, len(req.Activities))
	for _, view := range req.Activities {
		activities = append(activities, fromActivityView(view))
	}

	snapshot, err := h.service.SaveDay(r.Context(), req.Date, activities)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	observability.RecordSnapshotSaved()
	writeJSON(w, http.StatusCreated, toSnapshotView(*snapshot))
}

func (h *Handler) snapshotByDate(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/saved-todays-activities/")
	if date == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing date")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	snapshot, err := h.service.GetSnapshot(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotView(*snapshot))
}

func (h *Handler) todaysBoosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	boosts, err := h.service.TodaysBoosts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]ActivityView, 0, len(boosts))
	for _, activity := range boosts {
		items = append(items, toActivityView(activity))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) energyLevel(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		level, err := h.service.EnergyLevel(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, EnergyLevelView{Level: level})
	case http.MethodPost:
		var req EnergyLevelView
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := h.service.SetEnergyLevel(r.Context(), req.Level); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, EnergyLevelView{Level: req.Level})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) distribution(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		points, err := h.service.Distribution(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		items := make([]DistributionView, 0, len(points))
		for _, point := range points {
			items = append(items, DistributionView(point))
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var req DistributionView
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := h.service.SaveDistribution(r.Context(), domain.DistributionPoint(req)); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, req)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, "validation_failed", validation.Error())
	case errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrPairNotFound),
		errors.Is(err, domain.ErrPlanEntryNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
