package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type ValueTypeHandler struct {
	valueTypeService *service.ValueTypeService
	logger           *zap.Logger
}

func NewValueTypeHandler(valueTypeService *service.ValueTypeService, logger *zap.Logger) *ValueTypeHandler {
	return &ValueTypeHandler{
		valueTypeService: valueTypeService,
		logger:           logger,
	}
}

// List godoc
// @Summary List deal value types
// @Tags Value Types
// @Accept json
// @Produce json
// @Param includeArchived query bool false "Include archived value types"
// @Success 200 {array} domain.ValueTypeDTO
// @Failure 500 {object} domain.APIError
// @Router /value-types [get]
func (h *ValueTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	types, err := h.valueTypeService.List(r.Context(), includeArchived)
	if err != nil {
		h.logger.Error("failed to list value types", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, types)
}

// Create godoc
// @Summary Create deal value type
// @Tags Value Types
// @Accept json
// @Produce json
// @Param request body domain.CreateValueTypeRequest true "Value type data"
// @Success 201 {object} domain.ValueTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /value-types [post]
func (h *ValueTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateValueTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	vt, err := h.valueTypeService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create value type", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, vt)
}

// Update godoc
// @Summary Update deal value type
// @Description Update a value type, including archiving it so it no longer appears in pickers
// @Tags Value Types
// @Accept json
// @Produce json
// @Param id path int true "Value type ID"
// @Param request body domain.UpdateValueTypeRequest true "Value type data"
// @Success 200 {object} domain.ValueTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /value-types/{id} [put]
func (h *ValueTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateValueTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	vt, err := h.valueTypeService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, vt)
}

// Delete godoc
// @Summary Delete deal value type
// @Description Delete a value type. Types referenced by deal values cannot be deleted, archive them instead.
// @Tags Value Types
// @Accept json
// @Produce json
// @Param id path int true "Value type ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Value type is still referenced"
// @Router /value-types/{id} [delete]
func (h *ValueTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.valueTypeService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
