package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	// Solicitudes colgadas de la mascota
	r.Post("/pets/{petID}/adoptions", requestAdoptionHandler(svc, petsSvc))
	r.Get("/pets/{petID}/adoptions", listAdoptionsHandler(svc, petsSvc))

	// Decisión del lister
	r.Post("/adoptions/{adoptionID}/accept", decideAdoptionHandler(svc, decisionAccept))
	r.Post("/adoptions/{adoptionID}/reject", decideAdoptionHandler(svc, decisionReject))
}

type requestAdoptionRequest struct {
	AdopterEmail string `json:"adopter_email"`
	Message      string `json:"message"`
}

type adoptionResponse struct {
	ID            string     `json:"id"`
	PetID         string     `json:"pet_id"`
	OwnerUserID   string     `json:"owner_user_id"`
	AdopterUserID string     `json:"adopter_user_id"`
	AdopterEmail  string     `json:"adopter_email"`
	Message       string     `json:"message,omitempty"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

func requestAdoptionHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		ownerID, err := petsSvc.ListerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var req requestAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Si no mandan email explícito, usamos el del token.
		email := strings.TrimSpace(req.AdopterEmail)
		if email == "" {
			email = strings.TrimSpace(claims.Email)
		}

		a, err := svc.Request(r.Context(), RequestInput{
			PetID:         petID,
			OwnerUserID:   ownerID,
			AdopterUserID: claims.UserID,
			AdopterEmail:  email,
			Message:       req.Message,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

func listAdoptionsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	// Solo el lister ve las solicitudes de su mascota
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		ownerID, err := petsSvc.ListerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if ownerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdoptionResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

type decision int

const (
	decisionAccept decision = iota
	decisionReject
)

func decideAdoptionHandler(svc *Service, d decision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		adoptionID := chi.URLParam(r, "adoptionID")

		var (
			a   Adoption
			err error
		)
		switch d {
		case decisionAccept:
			a, err = svc.Accept(r.Context(), adoptionID, claims.UserID)
		default:
			a, err = svc.Reject(r.Context(), adoptionID, claims.UserID)
		}

		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "adoption not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, ErrBadState):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:            a.ID,
		PetID:         a.PetID,
		OwnerUserID:   a.OwnerUserID,
		AdopterUserID: a.AdopterUserID,
		AdopterEmail:  a.AdopterEmail,
		Message:       a.Message,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		DecidedAt:     a.DecidedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
