package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/service"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	offerService   *service.OfferService
	taskService    *service.TaskService
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewProjectHandler(
	projectService *service.ProjectService,
	offerService *service.OfferService,
	taskService *service.TaskService,
	invoiceService *service.InvoiceService,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		offerService:   offerService,
		taskService:    taskService,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Description Get paginated list of projects with optional filters
// @Tags Projects
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query int false "Filter by status" Enums(10, 20, 30, 40)
// @Param customerId query int false "Filter by customer"
// @Param ownerId query string false "Filter by owner"
// @Param search query string false "Search by title"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	filters := repository.ProjectFilters{
		CustomerID: queryUint(r, "customerId"),
		OwnerID:    r.URL.Query().Get("ownerId"),
		Search:     r.URL.Query().Get("search"),
	}
	if v := queryInt(r, "status"); v != 0 {
		s := domain.ProjectStatus(v)
		filters.Status = &s
	}

	projects, total, err := h.projectService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(projects, total, page, pageSize))
}

// GetByID godoc
// @Summary Get project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Create godoc
// @Summary Create project
// @Description Create a project. A sequential code within the current year is assigned on creation.
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.CreateProjectRequest true "Project data"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body domain.UpdateProjectRequest true "Project data"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req domain.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete project
// @Description Delete a project. Projects with tasks or offers cannot be deleted.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Project is still referenced"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Overview godoc
// @Summary Project hours overview
// @Description Get total logged hours versus approved hours for a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} domain.ProjectOverviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/overview [get]
func (h *ProjectHandler) Overview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	overview, err := h.projectService.Overview(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}

// ListOffers godoc
// @Summary List project offers
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} domain.OfferDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/offers [get]
func (h *ProjectHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	offers, err := h.offerService.ListByProject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, offers)
}

// ListTasks godoc
// @Summary List project tasks
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query int false "Filter by status" Enums(10, 20, 30, 40, 50)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.TaskDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.projectService.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := pagination(r)
	filters := repository.TaskFilters{ProjectID: &id}
	if v := queryInt(r, "status"); v != 0 {
		s := domain.TaskStatus(v)
		filters.Status = &s
	}

	tasks, total, err := h.taskService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list project tasks", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(tasks, total, page, pageSize))
}

// ListInvoices godoc
// @Summary List project invoices
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query int false "Filter by status" Enums(10, 20, 30, 40, 50)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InvoiceDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /projects/{id}/invoices [get]
func (h *ProjectHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.projectService.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := pagination(r)
	filters := repository.InvoiceFilters{ProjectID: &id}
	if v := queryInt(r, "status"); v != 0 {
		s := domain.InvoiceStatus(v)
		filters.Status = &s
	}

	invoices, total, err := h.invoiceService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		h.logger.Error("failed to list project invoices", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(invoices, total, page, pageSize))
}
