package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pettabl/internal/domain/sessions"
	"pettabl/internal/middleware"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/assignments", assignmentsHandler(svc))
	r.Get("/sessions/{sessionID}/progress", progressHandler(svc))
}

type assignmentResponse struct {
	SessionID            string          `json:"session_id"`
	PetID                string          `json:"pet_id"`
	PetName              string          `json:"pet_name"`
	PetPhotoURL          *string         `json:"pet_photo_url"`
	StartDate            civil.Date      `json:"start_date"`
	EndDate              civil.Date      `json:"end_date"`
	Status               sessions.Status `json:"status"`
	ActivitiesToday      int             `json:"activities_today"`
	TotalActivitiesToday int             `json:"total_activities_today"`
	DayStatuses          []Day           `json:"day_statuses"`
	IsLastDayToday       bool            `json:"is_last_day_today"`
	IsUpcoming           bool            `json:"is_upcoming"`
}

// assignmentsHandler godoc
// @Summary Dashboard del agente
// @Description Sesiones asignadas al usuario con progreso de hoy y estado por día (future/none/partial/complete).
// @Tags dashboard
// @Produce json
// @Param tab query string false "current (default) | upcoming"
// @Success 200 {array} assignmentResponse
// @Failure 400 {string} string "tab must be current or upcoming"
// @Failure 401 {string} string "unauthorized"
// @Router /me/assignments [get]
func assignmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tab, err := ParseTab(r.URL.Query().Get("tab"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.AgentAssignments(r.Context(), claims.UserID, tab)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]assignmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssignmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// progressHandler godoc
// @Summary Progreso de una sesión
// @Tags dashboard
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} assignmentResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/progress [get]
func progressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Progress(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "session not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, toAssignmentResponse(a))
	}
}

func toAssignmentResponse(a Assignment) assignmentResponse {
	var photo *string
	if a.PetPhotoURL != "" {
		photo = &a.PetPhotoURL
	}
	days := a.Days
	if days == nil {
		days = []Day{}
	}
	return assignmentResponse{
		SessionID:            a.SessionID,
		PetID:                a.PetID,
		PetName:              a.PetName,
		PetPhotoURL:          photo,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		Status:               a.Status,
		ActivitiesToday:      a.ActivitiesToday,
		TotalActivitiesToday: a.TotalActivitiesToday,
		DayStatuses:          days,
		IsLastDayToday:       a.IsLastDayToday,
		IsUpcoming:           a.IsUpcoming,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
