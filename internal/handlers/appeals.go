package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/app"
	"github.com/shrimpsizemoose/pacekeeper/internal/metrics"
	"github.com/shrimpsizemoose/pacekeeper/internal/milestone"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type DeadlineHandler struct {
	service *app.Service
	now     func() time.Time
}

func NewDeadlineHandler(service *app.Service) *DeadlineHandler {
	return &DeadlineHandler{
		service: service,
		now:     time.Now,
	}
}

// Register mounts the API on mux.
func (h *DeadlineHandler) Register(mux *http.ServeMux) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /api/v1/terms/active", h.HandleActiveTerm},
		{"GET /api/v1/students/{stu}/appeals", h.HandleListAppeals},
		{"POST /api/v1/students/{stu}/appeals", h.HandleRecordAppeal},
		{"GET /api/v1/students/{stu}/deadlines", h.HandleDeadlines},
		{"POST /api/v1/students/{stu}/extensions", h.HandleExtension},
	}
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, Instrument(rt.pattern, rt.handler))
	}
}

func (h *DeadlineHandler) HandleActiveTerm(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	term, err := h.service.Logic.Term.QueryActive(r.Context(), h.service.Backend)
	if err != nil {
		logger.Error.Printf("Failed to fetch active term: %v", err)
		http.Error(w, "Failed to fetch active term", http.StatusInternalServerError)
		return
	}
	if term == nil {
		http.Error(w, "No active term", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, term)
}

func (h *DeadlineHandler) HandleListAppeals(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	stu := r.PathValue("stu")
	appeals, err := h.service.Logic.MilestoneAppeal.QueryByStudent(r.Context(), h.service.Backend, stu)
	if err != nil {
		logger.Error.Printf("Failed to fetch appeals for %s: %v", stu, err)
		http.Error(w, "Failed to fetch appeals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rows": milestone.Sorted(appeals),
	})
}

func (h *DeadlineHandler) HandleRecordAppeal(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	var appeal models.MilestoneAppeal
	if err := json.NewDecoder(r.Body).Decode(&appeal); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	stu := r.PathValue("stu")
	appeal.StuID = &stu
	if appeal.AppealDateTime == nil {
		now := h.now().UTC().Truncate(time.Second)
		appeal.AppealDateTime = &now
	}
	if appeal.AppealType != nil && !models.IsAppealType(*appeal.AppealType) {
		http.Error(w, "Unknown appeal type", http.StatusBadRequest)
		return
	}

	interviewer := ""
	if appeal.Interviewer != nil {
		interviewer = *appeal.Interviewer
	}
	if err := h.service.ValidateAuth(r, interviewer); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recorded, err := h.service.Logic.MilestoneAppeal.Insert(r.Context(), h.service.Backend, &appeal)
	if errors.Is(err, store.ErrRequiredField) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to record appeal for %s: %v", stu, err)
		http.Error(w, "Failed to record appeal", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if recorded {
		status = http.StatusCreated
		metrics.AppealsRecorded.WithLabelValues(*appeal.AppealType).Inc()
	}
	writeJSON(w, status, map[string]any{
		"recorded": recorded,
		"appeal":   appeal,
	})
}

type deadline struct {
	Milestone models.StuStandardMilestone `json:"milestone"`
	Effective *time.Time                  `json:"effective"`
}

func (h *DeadlineHandler) HandleDeadlines(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	stu := r.PathValue("stu")
	ctx := r.Context()
	active, err := h.service.Deadlines.ActiveTerm(ctx)
	if errors.Is(err, milestone.ErrNoActiveTerm) {
		http.Error(w, "No active term", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to fetch active term: %v", err)
		http.Error(w, "Failed to fetch active term", http.StatusInternalServerError)
		return
	}
	rows, err := h.service.Logic.StuStandardMilestone.QueryByStudent(ctx, h.service.Backend, stu)
	if err != nil {
		logger.Error.Printf("Failed to fetch milestones for %s: %v", stu, err)
		http.Error(w, "Failed to fetch milestones", http.StatusInternalServerError)
		return
	}

	out := make([]deadline, 0, len(rows))
	for _, row := range rows {
		effective, err := h.service.Deadlines.Effective(ctx, *active.Term, &row)
		if err != nil {
			logger.Error.Printf("Failed to resolve deadline for %s: %v", stu, err)
			http.Error(w, "Failed to resolve deadlines", http.StatusInternalServerError)
			return
		}
		out = append(out, deadline{Milestone: row, Effective: effective})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rows": out,
	})
}

type extensionRequest struct {
	AppealType string `json:"appeal_type"`
	PaceTrack  string `json:"pace_track"`
	Pace       int    `json:"pace"`
	Index      int    `json:"index"`
	Unit       int    `json:"unit"`
	Objective  int    `json:"objective"`
	MsType     string `json:"ms_type"`
}

func (h *DeadlineHandler) HandleExtension(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	var req extensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target := milestone.Target{
		StuID:     r.PathValue("stu"),
		PaceTrack: req.PaceTrack,
		Pace:      req.Pace,
		Index:     req.Index,
		Unit:      req.Unit,
		Objective: req.Objective,
		MsType:    req.MsType,
	}
	added, err := h.service.Deadlines.ApplyExtension(r.Context(), target, req.AppealType)
	if errors.Is(err, milestone.ErrInvalidTarget) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Error.Printf("Failed to apply extension for %s: %v", target.StuID, err)
		http.Error(w, "Failed to apply extension", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days_added": added,
	})
}
