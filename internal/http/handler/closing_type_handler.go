package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type ClosingTypeHandler struct {
	closingTypeService *service.ClosingTypeService
	logger             *zap.Logger
}

func NewClosingTypeHandler(closingTypeService *service.ClosingTypeService, logger *zap.Logger) *ClosingTypeHandler {
	return &ClosingTypeHandler{
		closingTypeService: closingTypeService,
		logger:             logger,
	}
}

// List godoc
// @Summary List deal closing types
// @Tags Closing Types
// @Accept json
// @Produce json
// @Success 200 {array} domain.ClosingTypeDTO
// @Failure 500 {object} domain.APIError
// @Router /closing-types [get]
func (h *ClosingTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.closingTypeService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list closing types", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, types)
}

// Create godoc
// @Summary Create deal closing type
// @Tags Closing Types
// @Accept json
// @Produce json
// @Param request body domain.CreateClosingTypeRequest true "Closing type data"
// @Success 201 {object} domain.ClosingTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /closing-types [post]
func (h *ClosingTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClosingTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	ct, err := h.closingTypeService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create closing type", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ct)
}

// Update godoc
// @Summary Update deal closing type
// @Tags Closing Types
// @Accept json
// @Produce json
// @Param id path int true "Closing type ID"
// @Param request body domain.UpdateClosingTypeRequest true "Closing type data"
// @Success 200 {object} domain.ClosingTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /closing-types/{id} [put]
func (h *ClosingTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateClosingTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	ct, err := h.closingTypeService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ct)
}

// Delete godoc
// @Summary Delete deal closing type
// @Description Delete a closing type. Types referenced by closed deals cannot be deleted.
// @Tags Closing Types
// @Accept json
// @Produce json
// @Param id path int true "Closing type ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Closing type is still referenced"
// @Router /closing-types/{id} [delete]
func (h *ClosingTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.closingTypeService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
