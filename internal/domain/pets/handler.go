package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		// Historial de vacunas: reemplazo completo, solo el lister.
		pr.Put("/{petID}/vaccinations", replaceVaccinationsHandler(svc))
	})
}

type vaccinationPayload struct {
	VaccineType string `json:"vaccine_type"`
	Date        string `json:"date"` // YYYY-MM-DD; no se valida al escribir
}

type createPetRequest struct {
	Name         string               `json:"name"`
	Species      string               `json:"species"`
	Breed        string               `json:"breed"`
	Sex          string               `json:"sex"`
	BirthDate    string               `json:"birth_date"` // YYYY-MM-DD opcional
	Notes        string               `json:"notes"`
	Vaccinations []vaccinationPayload `json:"vaccinations"`
}

type petResponse struct {
	ID           string               `json:"id"`
	ListerUserID string               `json:"lister_user_id"`
	Name         string               `json:"name"`
	Species      string               `json:"species"`
	Breed        string               `json:"breed"`
	Sex          string               `json:"sex"`
	BirthDate    *time.Time           `json:"birth_date,omitempty"`
	Notes        string               `json:"notes"`
	Status       string               `json:"status"`
	Vaccinations []vaccinationPayload `json:"vaccinations"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
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

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Sex:          req.Sex,
			BirthDate:    bd,
			Notes:        req.Notes,
			Vaccinations: fromVaccinationPayload(req.Vaccinations),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	// Solo listings propios (lister)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByLister(r.Context(), claims.UserID)
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

func getPetHandler(svc *Service) http.HandlerFunc {
	// Perfil público del listing (cualquier usuario autenticado)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func replaceVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if current.ListerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req struct {
			Vaccinations []vaccinationPayload `json:"vaccinations"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.ReplaceVaccinations(r.Context(), petID, fromVaccinationPayload(req.Vaccinations))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func fromVaccinationPayload(in []vaccinationPayload) []VaccinationRecord {
	out := make([]VaccinationRecord, 0, len(in))
	for _, v := range in {
		out = append(out, VaccinationRecord{VaccineType: v.VaccineType, Date: v.Date})
	}
	return out
}

func toVaccinationPayload(in []VaccinationRecord) []vaccinationPayload {
	out := make([]vaccinationPayload, 0, len(in))
	for _, v := range in {
		out = append(out, vaccinationPayload{VaccineType: v.VaccineType, Date: v.Date})
	}
	return out
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		ListerUserID: p.ListerUserID,
		Name:         p.Name,
		Species:      string(p.Species),
		Breed:        p.Breed,
		Sex:          string(p.Sex),
		BirthDate:    p.BirthDate,
		Notes:        p.Notes,
		Status:       string(p.Status),
		Vaccinations: toVaccinationPayload(p.Vaccinations),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (pets/adoptions/purchases) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
