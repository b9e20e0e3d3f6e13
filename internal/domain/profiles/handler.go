package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pettabl/internal/middleware"
	"pettabl/internal/platform/upload"
	"pettabl/internal/ports/objectstore"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	Objects        objectstore.Store
	MaxUploadBytes int64

	// SearchCache envuelve GET /agents (go-cache). Puede ser nil.
	SearchCache func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	r.Get("/me", getMeHandler(svc))
	r.Patch("/me", updateMeHandler(svc))
	r.Post("/me/photo", uploadMyPhotoHandler(svc, opts))

	r.Get("/profiles/{profileID}", getProfileHandler(svc))

	search := http.Handler(searchAgentsHandler(svc))
	if opts.SearchCache != nil {
		search = opts.SearchCache(search)
	}
	r.Method(http.MethodGet, "/agents", search)
}

type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Bio       string    `json:"bio"`
	PhotoURL  string    `json:"photo_url"`
	PawPoints int       `json:"paw_points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

// agentSummary es lo mínimo que necesita el selector de agentes.
type agentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// getMeHandler godoc
// @Summary Perfil del usuario actual
// @Description Devuelve el profile del usuario autenticado. Si no existe, lo crea a partir de los claims (email, role, name).
// @Tags profiles
// @Produce json
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Ensure(r.Context(), EnsureInput{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Name:   claims.Name,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateProfileRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), claims.UserID, UpdateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Bio:     req.Bio,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func uploadMyPhotoHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if opts.Objects == nil {
			http.Error(w, "uploads not configured", http.StatusNotImplemented)
			return
		}

		// el profile tiene que existir antes de subir nada
		if _, err := svc.GetByID(r.Context(), claims.UserID); err != nil {
			writeError(w, err)
			return
		}

		img, err := upload.ReadImage(w, r, "photo", opts.MaxUploadBytes)
		if err != nil {
			writeUploadError(w, err)
			return
		}

		url, err := opts.Objects.Upload(r.Context(), objectstore.BucketProfilePhotos, img.ObjectName(claims.UserID), img.ContentType, img.Data)
		if err != nil {
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}

		p, err := svc.SetPhoto(r.Context(), claims.UserID, url)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// searchAgentsHandler godoc
// @Summary Buscar agentes por email
// @Description Lista profiles con role fur_agent cuyo email contiene el texto indicado (case-insensitive).
// @Tags profiles
// @Produce json
// @Param email query string false "Fragmento de email"
// @Param limit query int false "Máximo de resultados (1-50). Por defecto 20"
// @Success 200 {array} agentSummary
// @Failure 401 {string} string "unauthorized"
// @Router /agents [get]
func searchAgentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.SearchAgents(r.Context(), r.URL.Query().Get("email"), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]agentSummary, 0, len(items))
		for _, p := range items {
			out = append(out, agentSummary{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		Phone:     p.Phone,
		Address:   p.Address,
		Bio:       p.Bio,
		PhotoURL:  p.PhotoURL,
		PawPoints: p.PawPoints,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, upload.ErrMissingFile), errors.Is(err, upload.ErrNotImage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "invalid upload", http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
