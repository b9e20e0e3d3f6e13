package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pettabl/internal/middleware"
	"pettabl/internal/platform/dates"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
)

// PetNamer y NameDirectory alimentan los joins de la respuesta (pets(name), profiles(name)).
type PetNamer interface {
	NameOf(ctx context.Context, petID string) (string, error)
}

type NameDirectory interface {
	NamesByID(ctx context.Context, ids []string) (map[string]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petNames PetNamer, people NameDirectory) {
	r.Route("/pets/{petID}/sessions", func(pr chi.Router) {
		pr.Post("/", createSessionHandler(svc, petNames, people))
		pr.Get("/", listPetSessionsHandler(svc, petNames, people))
	})

	// Dashboard del fur boss
	r.Get("/sessions", listMySessionsHandler(svc, petNames, people))

	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", getSessionHandler(svc, petNames, people))
		sr.Patch("/", updateSessionHandler(svc, petNames, people))
		sr.Delete("/", deleteSessionHandler(svc))
		sr.Put("/agents", replaceAgentsHandler(svc, petNames, people))
	})
}

type createSessionRequest struct {
	StartDate string   `json:"start_date"` // YYYY-MM-DD
	EndDate   string   `json:"end_date"`   // YYYY-MM-DD
	Notes     string   `json:"notes"`
	AgentIDs  []string `json:"agent_ids"`
}

type updateSessionRequest struct {
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	Notes     *string   `json:"notes"`
	AgentIDs  *[]string `json:"agent_ids"`
}

type replaceAgentsRequest struct {
	AgentIDs []string `json:"agent_ids"`
}

type agentRef struct {
	ID   string `json:"fur_agent_id"`
	Name string `json:"name"`
}

type sessionResponse struct {
	ID        string     `json:"id"`
	PetID     string     `json:"pet_id"`
	PetName   string     `json:"pet_name"`
	FurBossID string     `json:"fur_boss_id"`
	StartDate civil.Date `json:"start_date"`
	EndDate   civil.Date `json:"end_date"`
	Status    Status     `json:"status"`
	Notes     string     `json:"notes"`
	Agents    []agentRef `json:"agents"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// createSessionHandler godoc
// @Summary Crear sesión de cuidado
// @Description Crea una sesión para la mascota (solo el owner). El status se calcula comparando hoy con start_date/end_date. agent_ids deben ser profiles fur_agent.
// @Tags sessions
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createSessionRequest true "Fechas YYYY-MM-DD, notas y agentes"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "invalid json / fechas inválidas / agentes inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/sessions [post]
func createSessionHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := dates.Parse(req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := dates.Parse(req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		sess, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), claims.UserID, CreateInput{
			StartDate: start,
			EndDate:   end,
			Notes:     req.Notes,
			AgentIDs:  req.AgentIDs,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, buildResponse(r.Context(), sess, petNames, people))
	}
}

func listPetSessionsHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, buildResponses(r.Context(), items, petNames, people))
	}
}

func listMySessionsHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// status=active,planned (CSV opcional)
		if allowed := parseStatusFilter(r.URL.Query().Get("status")); len(allowed) > 0 {
			filtered := make([]Session, 0, len(items))
			for _, s := range items {
				if _, ok := allowed[s.Status]; ok {
					filtered = append(filtered, s)
				}
			}
			items = filtered
		}

		writeJSON(w, http.StatusOK, buildResponses(r.Context(), items, petNames, people))
	}
}

func getSessionHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sess, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, buildResponse(r.Context(), sess, petNames, people))
	}
}

func updateSessionHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateSessionRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Notes: req.Notes, AgentIDs: req.AgentIDs}
		if req.StartDate != nil {
			d, err := dates.Parse(*req.StartDate)
			if err != nil {
				http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.StartDate = &d
		}
		if req.EndDate != nil {
			d, err := dates.Parse(*req.EndDate)
			if err != nil {
				http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.EndDate = &d
		}

		sess, err := svc.Update(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, buildResponse(r.Context(), sess, petNames, people))
	}
}

func replaceAgentsHandler(svc *Service, petNames PetNamer, people NameDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req replaceAgentsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.ReplaceAgents(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID, req.AgentIDs)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, buildResponse(r.Context(), sess, petNames, people))
	}
}

func deleteSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func buildResponses(ctx context.Context, items []Session, petNames PetNamer, people NameDirectory) []sessionResponse {
	out := make([]sessionResponse, 0, len(items))
	for _, s := range items {
		out = append(out, buildResponse(ctx, s, petNames, people))
	}
	return out
}

// buildResponse hace los joins best-effort: si falla un nombre, se devuelve vacío.
func buildResponse(ctx context.Context, s Session, petNames PetNamer, people NameDirectory) sessionResponse {
	petName := ""
	if petNames != nil {
		petName, _ = petNames.NameOf(ctx, s.PetID)
	}

	names := map[string]string{}
	if people != nil && len(s.AgentIDs) > 0 {
		if m, err := people.NamesByID(ctx, s.AgentIDs); err == nil {
			names = m
		}
	}

	agents := make([]agentRef, 0, len(s.AgentIDs))
	for _, id := range s.AgentIDs {
		agents = append(agents, agentRef{ID: id, Name: names[id]})
	}

	return sessionResponse{
		ID:        s.ID,
		PetID:     s.PetID,
		PetName:   petName,
		FurBossID: s.OwnerID,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Status:    s.Status,
		Notes:     s.Notes,
		Agents:    agents,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func parseStatusFilter(raw string) map[Status]struct{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := map[Status]struct{}{}
	for _, p := range strings.Split(raw, ",") {
		s := Status(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		out[s] = struct{}{}
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAgent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
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
