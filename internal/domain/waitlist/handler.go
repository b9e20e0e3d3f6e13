package waitlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"pettabl/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	// RateLimit envuelve POST /waitlist (x/time/rate). Puede ser nil.
	RateLimit func(http.Handler) http.Handler
	Logger    logger.Logger
}

// RegisterRoutes: ruta pública, no requiere claims.
func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	join := http.Handler(joinHandler(svc, opts.Logger))
	if opts.RateLimit != nil {
		join = opts.RateLimit(join)
	}
	r.Method(http.MethodPost, "/waitlist", join)
}

type joinRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Context string `json:"context"`
}

type joinResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// joinHandler godoc
// @Summary Sumarse a la waitlist
// @Description Público. name y email obligatorios; el email se guarda en minúsculas.
// @Tags waitlist
// @Accept json
// @Produce json
// @Param payload body joinRequest true "Datos de contacto"
// @Success 201 {object} joinResponse
// @Failure 400 {string} string "name and a valid email are required"
// @Failure 409 {string} string "email already on the waitlist"
// @Failure 429 {string} string "too many requests"
// @Failure 502 {string} string "waitlist unavailable"
// @Router /waitlist [post]
func joinHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Join(r.Context(), JoinInput{
			Name:    req.Name,
			Email:   req.Email,
			Source:  req.Source,
			Context: req.Context,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrAlreadyJoined):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				log.Error("waitlist join failed", map[string]any{"err": err})
				http.Error(w, "waitlist unavailable", http.StatusBadGateway)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(joinResponse{Name: e.Name, Email: e.Email})
	}
}
