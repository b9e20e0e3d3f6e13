package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pettabl/internal/domain/schedules"
	"pettabl/internal/middleware"
	"pettabl/internal/platform/dates"
	"pettabl/internal/platform/logger"
	"pettabl/internal/platform/upload"
	"pettabl/internal/ports/objectstore"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
)

// NameDirectory resuelve caretaker_id -> nombre (profiles.Service).
type NameDirectory interface {
	NamesByID(ctx context.Context, ids []string) (map[string]string, error)
}

type HandlerOptions struct {
	Objects        objectstore.Store
	MaxUploadBytes int64
	People         NameDirectory
	Logger         logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	r.Route("/sessions/{sessionID}/activities", func(ar chi.Router) {
		ar.Post("/", logActivityHandler(svc, opts))
		ar.Get("/", listActivitiesHandler(svc, opts))
		ar.Delete("/{activityID}", deleteActivityHandler(svc, opts))
	})

	r.Get("/pets/{petID}/photos", listPetPhotosHandler(svc))
}

type logActivityRequest struct {
	ActivityType string `json:"activity_type"` // feed | walk | letout
	TimePeriod   string `json:"time_period"`   // morning | afternoon | evening
	Date         string `json:"date"`          // YYYY-MM-DD, opcional (hoy)
}

type activityResponse struct {
	ID            string                 `json:"id"`
	SessionID     string                 `json:"session_id"`
	PetID         string                 `json:"pet_id"`
	CaretakerID   string                 `json:"caretaker_id"`
	CaretakerName string                 `json:"caretaker_name,omitempty"`
	ActivityType  schedules.ActivityType `json:"activity_type"`
	TimePeriod    schedules.TimePeriod   `json:"time_period"`
	Date          civil.Date             `json:"date"`
	PhotoURL      string                 `json:"photo_url"`
	CreatedAt     time.Time              `json:"created_at"`
}

// logActivityHandler godoc
// @Summary Registrar actividad completada
// @Description Acepta JSON o multipart/form-data (campos activity_type, time_period, date y photo opcional). Solo agentes asignados a la sesión. La fecha por defecto es hoy y debe caer dentro de la sesión.
// @Tags activities
// @Accept json
// @Accept mpfd
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body logActivityRequest false "Actividad (JSON)"
// @Success 201 {object} activityResponse
// @Failure 400 {string} string "invalid input / date outside session range"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "activity already logged"
// @Router /sessions/{sessionID}/activities [post]
func logActivityHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sessionID := chi.URLParam(r, "sessionID")

		// permisos antes de leer/subir el archivo
		if _, err := svc.CheckCaretaker(r.Context(), sessionID, claims.UserID); err != nil {
			writeError(w, err)
			return
		}

		var (
			req      logActivityRequest
			photoURL string
		)

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			img, err := upload.ReadImage(w, r, "photo", opts.MaxUploadBytes)
			switch {
			case err == nil:
				if opts.Objects == nil {
					http.Error(w, "uploads not configured", http.StatusNotImplemented)
					return
				}
				url, err := opts.Objects.Upload(r.Context(), objectstore.BucketActivityPhotos, img.ObjectName(sessionID), img.ContentType, img.Data)
				if err != nil {
					opts.Logger.Error("activity photo upload failed", map[string]any{"session_id": sessionID, "err": err})
					http.Error(w, "upload failed", http.StatusBadGateway)
					return
				}
				photoURL = url
			case errors.Is(err, upload.ErrMissingFile):
				// foto opcional
			case errors.Is(err, upload.ErrTooLarge):
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			req.ActivityType = r.FormValue("activity_type")
			req.TimePeriod = r.FormValue("time_period")
			req.Date = r.FormValue("date")
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := LogInput{
			ActivityType: req.ActivityType,
			TimePeriod:   req.TimePeriod,
			PhotoURL:     photoURL,
		}
		if strings.TrimSpace(req.Date) != "" {
			d, err := dates.Parse(req.Date)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Date = &d
		}

		a, err := svc.Log(r.Context(), sessionID, claims.UserID, in)
		if err != nil {
			if photoURL != "" {
				// la fila no se creó: la foto queda huérfana
				if derr := opts.Objects.Delete(r.Context(), objectstore.BucketActivityPhotos, photoURL); derr != nil {
					opts.Logger.Warn("orphan activity photo", map[string]any{"url": photoURL, "err": derr})
				}
			}
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toActivityResponse(a, ""))
	}
}

// listActivitiesHandler godoc
// @Summary Actividades de la sesión
// @Tags activities
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} activityResponse
// @Router /sessions/{sessionID}/activities [get]
func listActivitiesHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var date *civil.Date
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			d, err := dates.Parse(v)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			date = &d
		}

		items, err := svc.ListBySession(r.Context(), chi.URLParam(r, "sessionID"), claims.UserID, date)
		if err != nil {
			writeError(w, err)
			return
		}

		names := caretakerNames(r.Context(), opts.People, items)
		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a, names[a.CaretakerID]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteActivityHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Delete(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "activityID"), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		if a.PhotoURL != "" && opts.Objects != nil {
			if err := opts.Objects.Delete(r.Context(), objectstore.BucketActivityPhotos, a.PhotoURL); err != nil {
				opts.Logger.Warn("activity photo cleanup failed", map[string]any{"activity_id": a.ID, "err": err})
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listPetPhotosHandler godoc
// @Summary Fotos recientes de la mascota
// @Description Actividades con foto de cualquier sesión de la mascota, más nuevas primero.
// @Tags activities
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "1-100, por defecto 30"
// @Success 200 {array} activityResponse
// @Router /pets/{petID}/photos [get]
func listPetPhotosHandler(svc *Service) http.HandlerFunc {
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

		items, err := svc.ListPhotosByPet(r.Context(), chi.URLParam(r, "petID"), claims.UserID, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a, ""))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func caretakerNames(ctx context.Context, people NameDirectory, items []Activity) map[string]string {
	if people == nil || len(items) == 0 {
		return map[string]string{}
	}
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.CaretakerID)
	}
	names, err := people.NamesByID(ctx, ids)
	if err != nil {
		return map[string]string{}
	}
	return names
}

func toActivityResponse(a Activity, caretakerName string) activityResponse {
	return activityResponse{
		ID:            a.ID,
		SessionID:     a.SessionID,
		PetID:         a.PetID,
		CaretakerID:   a.CaretakerID,
		CaretakerName: caretakerName,
		ActivityType:  a.ActivityType,
		TimePeriod:    a.TimePeriod,
		Date:          a.Date,
		PhotoURL:      a.PhotoURL,
		CreatedAt:     a.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "activity not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
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
