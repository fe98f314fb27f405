package reminders

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Trigger manual para operación/pruebas. Acepta ?as_of=YYYY-MM-DD.
	r.Post("/reminders/run", runPassHandler(svc))
}

type runResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func runPassHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		asOf := svc.now()
		if raw := strings.TrimSpace(r.URL.Query().Get("as_of")); raw != "" {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, runResponse{
					Success: false,
					Message: "as_of must be YYYY-MM-DD",
				})
				return
			}
			asOf = t
		}

		sum, err := svc.RunPassAsOf(r.Context(), asOf)
		if err != nil {
			if errors.Is(err, ErrPassInFlight) {
				writeJSON(w, http.StatusConflict, runResponse{
					Success: false,
					Message: "a reminder pass is already running",
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, runResponse{
				Success: false,
				Message: "reminder pass failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, runResponse{
			Success: true,
			Message: fmt.Sprintf(
				"pass completed as of %s: %d pets scanned, %d due, %d emails queued",
				sum.AsOf, sum.PetsScanned, sum.EventsDue, sum.EmailsQueued,
			),
		})
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
