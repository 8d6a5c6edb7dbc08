package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type AttributeHandler struct {
	attributeService *service.AttributeService
	logger           *zap.Logger
}

func NewAttributeHandler(attributeService *service.AttributeService, logger *zap.Logger) *AttributeHandler {
	return &AttributeHandler{
		attributeService: attributeService,
		logger:           logger,
	}
}

// ListGroups godoc
// @Summary List attribute groups with their attributes
// @Tags Attributes
// @Accept json
// @Produce json
// @Param includeArchived query bool false "Include archived groups and attributes"
// @Success 200 {array} domain.AttributeGroupDTO
// @Failure 500 {object} domain.APIError
// @Router /attribute-groups [get]
func (h *AttributeHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	groups, err := h.attributeService.ListGroups(r.Context(), includeArchived)
	if err != nil {
		h.logger.Error("failed to list attribute groups", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, groups)
}

// GetGroup godoc
// @Summary Get attribute group by ID
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute group ID"
// @Success 200 {object} domain.AttributeGroupDTO
// @Failure 404 {object} domain.APIError
// @Router /attribute-groups/{id} [get]
func (h *AttributeHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.attributeService.GetGroupByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// CreateGroup godoc
// @Summary Create attribute group
// @Tags Attributes
// @Accept json
// @Produce json
// @Param request body domain.CreateAttributeGroupRequest true "Attribute group data"
// @Success 201 {object} domain.AttributeGroupDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /attribute-groups [post]
func (h *AttributeHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAttributeGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	group, err := h.attributeService.CreateGroup(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create attribute group", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, group)
}

// UpdateGroup godoc
// @Summary Update attribute group
// @Description Update a group, including archiving it so it is no longer offered or enforced
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute group ID"
// @Param request body domain.UpdateAttributeGroupRequest true "Attribute group data"
// @Success 200 {object} domain.AttributeGroupDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /attribute-groups/{id} [put]
func (h *AttributeHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateAttributeGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	group, err := h.attributeService.UpdateGroup(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, group)
}

// DeleteGroup godoc
// @Summary Delete attribute group
// @Description Delete a group and its attributes. Groups whose attributes are attached to deals cannot be deleted, archive them instead.
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute group ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Attribute group is still referenced"
// @Router /attribute-groups/{id} [delete]
func (h *AttributeHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.attributeService.DeleteGroup(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateAttribute godoc
// @Summary Create attribute within a group
// @Tags Attributes
// @Accept json
// @Produce json
// @Param request body domain.CreateAttributeRequest true "Attribute data"
// @Success 201 {object} domain.AttributeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /attributes [post]
func (h *AttributeHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	attr, err := h.attributeService.CreateAttribute(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create attribute", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, attr)
}

// UpdateAttribute godoc
// @Summary Update attribute
// @Description Update an attribute, including archiving it so it is no longer offered for new selections
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Param request body domain.UpdateAttributeRequest true "Attribute data"
// @Success 200 {object} domain.AttributeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /attributes/{id} [put]
func (h *AttributeHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	attr, err := h.attributeService.UpdateAttribute(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, attr)
}

// DeleteAttribute godoc
// @Summary Delete attribute
// @Description Delete an attribute. Attributes attached to deals cannot be deleted, archive them instead.
// @Tags Attributes
// @Accept json
// @Produce json
// @Param id path int true "Attribute ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Attribute is still referenced"
// @Router /attributes/{id} [delete]
func (h *AttributeHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.attributeService.DeleteAttribute(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
