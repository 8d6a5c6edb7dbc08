package service_test

import (
	"context"
	"testing"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogbookService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	task := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")

	dto, err := env.logbookService.Create(ctx, &domain.CreateLoggedHoursRequest{
		TaskID:       task.ID,
		RenderedByID: "user-1",
		RenderedBy:   "Test User",
		RenderedOn:   "2026-08-01",
		Hours:        decimal.RequireFromString("2.50"),
		Description:  "Wireframes",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", dto.RenderedOn)
	assert.True(t, dto.Hours.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, "#1", dto.TaskCode)
}

func TestLogbookService_HoursMustBePositive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	task := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")

	for _, hours := range []string{"0", "-1.5"} {
		_, err := env.logbookService.Create(ctx, &domain.CreateLoggedHoursRequest{
			TaskID:       task.ID,
			RenderedByID: "user-1",
			RenderedOn:   "2026-08-01",
			Hours:        decimal.RequireFromString(hours),
		})
		require.Error(t, err, "hours %s", hours)

		var fieldErrs domain.ValidationErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "Must be greater than zero.", fieldErrs["hours"])
	}
}

func TestLogbookService_CreateUnknownTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.logbookService.Create(context.Background(), &domain.CreateLoggedHoursRequest{
		TaskID:       999,
		RenderedByID: "user-1",
		RenderedOn:   "2026-08-01",
		Hours:        decimal.RequireFromString("1.00"),
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestLogbookService_UpdateRevalidatesHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	task := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")

	dto, err := env.logbookService.Create(ctx, &domain.CreateLoggedHoursRequest{
		TaskID:       task.ID,
		RenderedByID: "user-1",
		RenderedOn:   "2026-08-01",
		Hours:        decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)

	_, err = env.logbookService.Update(ctx, dto.ID, &domain.UpdateLoggedHoursRequest{
		RenderedOn: "2026-08-02",
		Hours:      decimal.Zero,
	})
	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Must be greater than zero.", fieldErrs["hours"])

	updated, err := env.logbookService.Update(ctx, dto.ID, &domain.UpdateLoggedHoursRequest{
		RenderedOn: "2026-08-02",
		Hours:      decimal.RequireFromString("3.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-02", updated.RenderedOn)
	assert.True(t, updated.Hours.Equal(decimal.RequireFromString("3.00")))
}
