package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pettabl/internal/domain/profiles"
	"pettabl/internal/middleware"
	"pettabl/internal/platform/upload"
	"pettabl/internal/ports/objectstore"

	"github.com/go-chi/chi/v5"
)

// AgentAccess evita importar sessions (rompe ciclos).
// Un agente asignado a cualquier sesión de la mascota puede verla.
type AgentAccess interface {
	IsAgentForPet(ctx context.Context, petID, agentID string) (bool, error)
}

// ProfileEnsurer lo implementa profiles.Service.
// POST /pets puede ser la primera llamada del usuario (sin /me previo).
type ProfileEnsurer interface {
	Ensure(ctx context.Context, in profiles.EnsureInput) (profiles.Profile, error)
}

type HandlerOptions struct {
	Objects        objectstore.Store
	MaxUploadBytes int64
	Profiles       ProfileEnsurer
}

func RegisterRoutes(r chi.Router, svc *Service, agents AgentAccess, opts HandlerOptions) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, opts))
		pr.Get("/", listPetsHandler(svc))

		// owner o agente asignado
		pr.Get("/{petID}", getPetHandler(svc, agents))

		// solo owner
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
		pr.Post("/{petID}/photo", uploadPetPhotoHandler(svc, opts))
	})
}

type createPetRequest struct {
	Name            string `json:"name"`
	PetType         string `json:"pet_type"`
	Breed           string `json:"breed"`
	Age             *int   `json:"age"`
	FoodPreferences string `json:"food_preferences"`
	MedicalInfo     string `json:"medical_info"`
	VetContact      string `json:"vet_contact"`
}

type petResponse struct {
	ID              string    `json:"id"`
	FurBossID       string    `json:"fur_boss_id"`
	Name            string    `json:"name"`
	PetType         PetType   `json:"pet_type"`
	Breed           string    `json:"breed"`
	Age             *int      `json:"age"`
	FoodPreferences string    `json:"food_preferences"`
	MedicalInfo     string    `json:"medical_info"`
	VetContact      string    `json:"vet_contact"`
	PhotoURL        string    `json:"photo_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type updatePetRequest struct {
	Name            *string `json:"name"`
	PetType         *string `json:"pet_type"`
	Breed           *string `json:"breed"`
	FoodPreferences *string `json:"food_preferences"`
	MedicalInfo     *string `json:"medical_info"`
	VetContact      *string `json:"vet_contact"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota cuyo owner (fur_boss_id) es el usuario autenticado.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if opts.Profiles != nil {
			if _, err := opts.Profiles.Ensure(r.Context(), profiles.EnsureInput{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
				Name:   claims.Name,
			}); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:            req.Name,
			PetType:         req.PetType,
			Breed:           req.Breed,
			Age:             req.Age,
			FoodPreferences: req.FoodPreferences,
			MedicalInfo:     req.MedicalInfo,
			VetContact:      req.VetContact,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Mis mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service, agents AgentAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			writeError(w, err)
			return
		}

		if p.OwnerID != claims.UserID {
			assigned, err := agents.IsAgentForPet(r.Context(), petID, claims.UserID)
			if err != nil || !assigned {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Decodificamos a map primero para detectar "age": null (limpiar) vs ausente.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		age := AgePatch{}
		if v, exists := raw["age"]; exists {
			age.Present = true
			if string(v) != "null" {
				var n int
				if err := json.Unmarshal(v, &n); err != nil {
					http.Error(w, "age must be an integer or null", http.StatusBadRequest)
					return
				}
				age.Value = &n
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:            req.Name,
			PetType:         req.PetType,
			Breed:           req.Breed,
			Age:             age,
			FoodPreferences: req.FoodPreferences,
			MedicalInfo:     req.MedicalInfo,
			VetContact:      req.VetContact,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func uploadPetPhotoHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
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

		petID := chi.URLParam(r, "petID")

		// permisos antes de leer el archivo
		if _, err := svc.ownedBy(r.Context(), petID, claims.UserID); err != nil {
			writeError(w, err)
			return
		}

		img, err := upload.ReadImage(w, r, "photo", opts.MaxUploadBytes)
		if err != nil {
			switch {
			case errors.Is(err, upload.ErrTooLarge):
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		url, err := opts.Objects.Upload(r.Context(), objectstore.BucketPetPhotos, img.ObjectName(claims.UserID+"/"+petID), img.ContentType, img.Data)
		if err != nil {
			http.Error(w, "upload failed", http.StatusBadGateway)
			return
		}

		p, err := svc.SetPhoto(r.Context(), petID, claims.UserID, url)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:              p.ID,
		FurBossID:       p.OwnerID,
		Name:            p.Name,
		PetType:         p.PetType,
		Breed:           p.Breed,
		Age:             p.Age,
		FoodPreferences: p.FoodPreferences,
		MedicalInfo:     p.MedicalInfo,
		VetContact:      p.VetContact,
		PhotoURL:        p.PhotoURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrOwnerNotFound):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
