package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type DealHandler struct {
	dealService *service.DealService
	logger      *zap.Logger
}

func NewDealHandler(dealService *service.DealService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		logger:      logger,
	}
}

// List godoc
// @Summary List deals
// @Description Get paginated list of deals with optional filters
// @Tags Deals
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query int false "Filter by status" Enums(10, 20, 30)
// @Param customerId query int false "Filter by customer"
// @Param ownerId query string false "Filter by owner"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.DealDTO}
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /deals [get]
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filters := repository.DealFilters{
		CustomerID: queryUint(r, "customerId"),
		OwnerID:    r.URL.Query().Get("ownerId"),
	}
	if v := queryInt(r, "status"); v != 0 {
		s := domain.DealStatus(v)
		filters.Status = &s
	}

	deals, total, err := h.dealService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list deals", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(deals, total, page, pageSize))
}

// Pipeline godoc
// @Summary Deal pipeline overview
// @Description Get all open deals bucketed by urgency, most urgent group first
// @Tags Deals
// @Accept json
// @Produce json
// @Success 200 {array} service.DealGroupDTO
// @Failure 500 {object} domain.APIError
// @Router /deals/pipeline [get]
func (h *DealHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	groups, err := h.dealService.Pipeline(r.Context())
	if err != nil {
		h.logger.Error("failed to build deal pipeline", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, groups)
}

// GetByID godoc
// @Summary Get deal by ID
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Success 200 {object} domain.DealDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /deals/{id} [get]
func (h *DealHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	deal, err := h.dealService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// Create godoc
// @Summary Create deal
// @Tags Deals
// @Accept json
// @Produce json
// @Param request body domain.CreateDealRequest true "Deal data"
// @Success 201 {object} domain.DealDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /deals [post]
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	deal, err := h.dealService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create deal", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, deal)
}

// Update godoc
// @Summary Update deal
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param request body domain.UpdateDealRequest true "Deal data"
// @Success 200 {object} domain.DealDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /deals/{id} [put]
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	deal, err := h.dealService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// UpdateStatus godoc
// @Summary Update deal status
// @Description Close or reopen a deal. Closing requires a closing type; the final status is derived from whether that type represents a win.
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Param request body domain.UpdateDealStatusRequest true "Status change"
// @Success 200 {object} domain.DealDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /deals/{id}/status [put]
func (h *DealHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateDealStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	deal, err := h.dealService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, deal)
}

// Delete godoc
// @Summary Delete deal
// @Tags Deals
// @Accept json
// @Produce json
// @Param id path int true "Deal ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /deals/{id} [delete]
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dealService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
