package http

import (
	"encoding/json"
	"net/http"

	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	service ports.ExchangeService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.ExchangeService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

// ListExchangesHandler returns a bare JSON array: the map UI consumes it as is.
func (h *Handler) ListExchangesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.metrics.ExchangesRequestsTotal.Inc()

	exchanges := h.service.ListExchanges(r.Context())
	h.writeJSON(w, http.StatusOK, exchanges)
}

// GetRatesHandler resolves a single exchange. A missing name is reported
// through the status, not as a client error.
func (h *Handler) GetRatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.metrics.RateRequestsTotal.Inc()

	name := r.URL.Query().Get("exchange")
	result := h.service.GetRates(r.Context(), name)

	h.sendSuccessResponse(w, result)
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, Response{
		Success: false,
		Error:   message,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}
