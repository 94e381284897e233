package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gigBoard/internal/handlers/dto"
	"gigBoard/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "gigboard"

type GigHandler struct {
	GigService GigService
}

func NewGigHandler(gigService GigService) GigHandler {
	return GigHandler{
		GigService: gigService,
	}
}

func (h *GigHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.GigService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", serviceName),
			toPayload("error", err.Error()),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", serviceName),
	)
}

// ListGigs - GET /gigs, гиги в порядке показа
func (h *GigHandler) ListGigs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status, err := statusFilter(r)
	if err != nil {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "status"),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное значение status: "+err.Error())
		return
	}

	ranked, err := h.GigService.ListRanked(r.Context(), status)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_gigs"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP: Гиги получены",
		zap.Int("count", len(ranked)),
		zap.Duration("ms", time.Since(start)))

	responseWithBody(w, http.StatusOK, dto.FromRankedList(ranked))
}

func (h *GigHandler) PostGig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateGigRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	ranked, err := h.GigService.CreateGig(r.Context(), request.ToGig())
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_gig"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP: Гиг создан",
		zap.String("gig_id", ranked.Gig.ID),
		zap.String("status", ranked.Info.Status.String()),
		zap.Duration("ms", time.Since(start)))

	w.Header().Set("Location", "/gigs/"+ranked.Gig.ID)
	responseWithBody(w, http.StatusCreated, dto.FromRanked(ranked))
}

func (h *GigHandler) GetGigByID(w http.ResponseWriter, r *http.Request) {
	id, ok := gigID(w, r)
	if !ok {
		return
	}

	ranked, err := h.GigService.GetGig(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка в Service", err,
			zap.String("operation", "get_gig"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromRanked(ranked))
}

func (h *GigHandler) DeleteGigByID(w http.ResponseWriter, r *http.Request) {
	id, ok := gigID(w, r)
	if !ok {
		return
	}

	if err := h.GigService.DeleteGig(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_gig"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GigHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.GigService.Summary(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "summary"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	responseWithBody(w, http.StatusOK, summary)
}

func (h *GigHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.GigService.Notifications(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "notifications"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	responseWithBody(w, http.StatusOK, notifications)
}

func gigID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "empty id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return "", false
	}
	return id, true
}
