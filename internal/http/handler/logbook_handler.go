package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type LogbookHandler struct {
	logbookService *service.LogbookService
	logger         *zap.Logger
}

func NewLogbookHandler(logbookService *service.LogbookService, logger *zap.Logger) *LogbookHandler {
	return &LogbookHandler{
		logbookService: logbookService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Log hours on a task
// @Tags Logbook
// @Accept json
// @Produce json
// @Param request body domain.CreateLoggedHoursRequest true "Logged hours data"
// @Success 201 {object} domain.LoggedHoursDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /logged-hours [post]
func (h *LogbookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLoggedHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.logbookService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to log hours", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// GetByID godoc
// @Summary Get logged hours entry by ID
// @Tags Logbook
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} domain.LoggedHoursDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /logged-hours/{id} [get]
func (h *LogbookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.logbookService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Update godoc
// @Summary Update logged hours entry
// @Tags Logbook
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body domain.UpdateLoggedHoursRequest true "Logged hours data"
// @Success 200 {object} domain.LoggedHoursDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /logged-hours/{id} [put]
func (h *LogbookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateLoggedHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.logbookService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete logged hours entry
// @Tags Logbook
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /logged-hours/{id} [delete]
func (h *LogbookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.logbookService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
