package purchases

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
	// Registrar venta: solo el lister de la mascota
	r.Post("/pets/{petID}/purchases", recordPurchaseHandler(svc, petsSvc))
	r.Get("/pets/{petID}/purchase", getPurchaseHandler(svc, petsSvc))
}

type recordPurchaseRequest struct {
	BuyerUserID string `json:"buyer_user_id"`
	BuyerEmail  string `json:"buyer_email"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type purchaseResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	SellerUserID string    `json:"seller_user_id"`
	BuyerUserID  string    `json:"buyer_user_id,omitempty"`
	BuyerEmail   string    `json:"buyer_email"`
	AmountCents  int64     `json:"amount_cents"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
}

func recordPurchaseHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req recordPurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Record(r.Context(), RecordInput{
			PetID:        petID,
			SellerUserID: claims.UserID,
			BuyerUserID:  req.BuyerUserID,
			BuyerEmail:   req.BuyerEmail,
			AmountCents:  req.AmountCents,
			Currency:     req.Currency,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPurchaseResponse(p))
	}
}

func getPurchaseHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		p, err := svc.ByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "purchase not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPurchaseResponse(p))
	}
}

func toPurchaseResponse(p Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		PetID:        p.PetID,
		SellerUserID: p.SellerUserID,
		BuyerUserID:  p.BuyerUserID,
		BuyerEmail:   p.BuyerEmail,
		AmountCents:  p.AmountCents,
		Currency:     p.Currency,
		CreatedAt:    p.CreatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
