package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaultsAndCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")

	dto, err := env.projectService.Create(ctx, &domain.CreateProjectRequest{
		CustomerID: customer.ID,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectAcquisition, dto.Status)
	assert.True(t, dto.Invoicing)
	assert.False(t, dto.Maintenance)
	assert.Equal(t, "Acme AG", dto.CustomerName)
	assert.Equal(t, fmt.Sprintf("%d-0001", time.Now().Year()), dto.Code)

	second, err := env.projectService.Create(ctx, &domain.CreateProjectRequest{
		CustomerID: customer.ID,
		Title:      "App prototype",
		OwnerID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-0002", time.Now().Year()), second.Code)
}

func TestProjectService_CreateUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projectService.Create(context.Background(), &domain.CreateProjectRequest{
		CustomerID: 999,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestProjectService_UpdateValidatesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")

	_, err := env.projectService.Update(ctx, project.ID, &domain.UpdateProjectRequest{
		Title:   "Website relaunch",
		OwnerID: "user-1",
		Status:  domain.ProjectStatus(99),
	})
	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Invalid status.", fieldErrs["status"])

	dto, err := env.projectService.Update(ctx, project.ID, &domain.UpdateProjectRequest{
		Title:       "Website relaunch",
		OwnerID:     "user-1",
		Status:      domain.ProjectFinished,
		Invoicing:   boolPtr(false),
		Maintenance: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectFinished, dto.Status)
	assert.False(t, dto.Invoicing)
	assert.True(t, dto.Maintenance)
}

func TestProjectService_DeleteProtectedByReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	task := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")

	err := env.projectService.Delete(ctx, project.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	require.NoError(t, env.taskService.Delete(ctx, task.ID))
	require.NoError(t, env.projectService.Delete(ctx, project.ID))

	_, err = env.projectService.GetByID(ctx, project.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestProjectService_OverviewAggregatesHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	offer := testutil.CreateTestOffer(t, env.db, project.ID, "Phase 1")

	svc := testutil.CreateTestService(t, env.db, offer.ID, "Design", "200.00")
	svc.ApprovedHours = decimal.RequireFromString("40")
	require.NoError(t, env.db.Save(svc).Error)

	taskA := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")
	taskB := testutil.CreateTestTask(t, env.db, project.ID, "Content entry")
	for _, entry := range []struct {
		taskID uint
		hours  string
	}{
		{taskA.ID, "2.50"},
		{taskA.ID, "1.25"},
		{taskB.ID, "4.00"},
	} {
		_, err := env.logbookService.Create(ctx, &domain.CreateLoggedHoursRequest{
			TaskID:       entry.taskID,
			RenderedByID: "user-1",
			RenderedOn:   "2026-08-01",
			Hours:        decimal.RequireFromString(entry.hours),
		})
		require.NoError(t, err)
	}

	overview, err := env.projectService.Overview(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, overview.ProjectID)
	assert.True(t, overview.HoursLogged.Equal(decimal.RequireFromString("7.75")),
		"logged %s", overview.HoursLogged)
	assert.True(t, overview.HoursApproved.Equal(decimal.RequireFromString("40")),
		"approved %s", overview.HoursApproved)
}
