package schedules

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pettabl/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/schedule", func(sr chi.Router) {
		sr.Get("/", getScheduleHandler(svc))
		sr.Put("/", replaceScheduleHandler(svc))
		sr.Post("/toggle", toggleSlotHandler(svc))
	})
}

type slotRequest struct {
	ActivityType string `json:"activity_type"` // feed | walk | letout
	TimePeriod   string `json:"time_period"`   // morning | afternoon | evening
}

type replaceScheduleRequest struct {
	Slots []slotRequest `json:"slots"`
}

type slotResponse struct {
	ID           string       `json:"id"`
	ActivityType ActivityType `json:"activity_type"`
	TimePeriod   TimePeriod   `json:"time_period"`
}

type scheduleResponse struct {
	ID        string         `json:"id,omitempty"`
	PetID     string         `json:"pet_id"`
	SessionID *string        `json:"session_id"`
	Times     []slotResponse `json:"schedule_times"`
}

// getScheduleHandler godoc
// @Summary Plan diario de la mascota
// @Description Devuelve el schedule estándar (session_id null). Si no existe, schedule_times viene vacío.
// @Tags schedules
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} scheduleResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/schedule [get]
func getScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sch, err := svc.GetStanding(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(sch))
	}
}

// replaceScheduleHandler godoc
// @Summary Reemplazar slots del plan
// @Tags schedules
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body replaceScheduleRequest true "Slots"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 403 {string} string "forbidden"
// @Router /pets/{petID}/schedule [put]
func replaceScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req replaceScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := make([]SlotInput, 0, len(req.Slots))
		for _, s := range req.Slots {
			in = append(in, SlotInput{ActivityType: s.ActivityType, TimePeriod: s.TimePeriod})
		}

		sch, err := svc.ReplaceStanding(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(sch))
	}
}

func toggleSlotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req slotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sch, err := svc.ToggleSlot(r.Context(), chi.URLParam(r, "petID"), claims.UserID, SlotInput{
			ActivityType: req.ActivityType,
			TimePeriod:   req.TimePeriod,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(sch))
	}
}

func toScheduleResponse(s Schedule) scheduleResponse {
	times := make([]slotResponse, 0, len(s.Times))
	for _, t := range s.Times {
		times = append(times, slotResponse{ID: t.ID, ActivityType: t.ActivityType, TimePeriod: t.TimePeriod})
	}
	return scheduleResponse{ID: s.ID, PetID: s.PetID, SessionID: s.SessionID, Times: times}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "activity_type must be feed|walk|letout and time_period morning|afternoon|evening", http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
