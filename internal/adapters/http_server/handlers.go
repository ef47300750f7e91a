package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"carvalue/internal/app"
	"carvalue/internal/domain"
	"carvalue/internal/pricing"
)

const (
	errInternal    = "internal server error"
	errInvalidBody = "invalid request body"
)

type Handlers struct {
	V            *app.ValuationService
	MaxBodyBytes int64
}

// valuationResponse is the only body shape the valuation endpoint emits.
type valuationResponse struct {
	Success   bool               `json:"success"`
	Valuation *domain.PriceRange `json:"valuation,omitempty"`
	Error     string             `json:"error,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/pricing/version", h.pricingVersion)
	s.mux.Post("/api/valuation", h.valuate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, valuationResponse{Success: false, Error: msg})
}

func (h *Handlers) valuate(w http.ResponseWriter, r *http.Request) {
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}
	var in domain.ValuationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Warn().Err(err).Msg("valuation body rejected")
		writeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	rng, err := h.V.PredictPrice(r.Context(), in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		log.Error().Err(err).Msg("valuation failed")
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}
	writeJSON(w, http.StatusOK, valuationResponse{Success: true, Valuation: &rng})
}

func (h *Handlers) pricingVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": pricing.TableVersion})
}
