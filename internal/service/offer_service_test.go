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

func TestOfferService_CreateComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")

	dto, err := env.offerService.Create(ctx, &domain.CreateOfferRequest{
		ProjectID: project.ID,
		Title:     "Phase 1",
		OwnerID:   "user-1",
		Services: []domain.ServiceInput{
			{Title: "Design", Cost: decimal.RequireFromString("100.00")},
			{Title: "Programming", Cost: decimal.RequireFromString("250.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OfferInPreparation, dto.Status)
	assert.True(t, dto.Subtotal.Equal(decimal.RequireFromString("350.50")), "got %s", dto.Subtotal)
	assert.True(t, dto.TotalExclTax.Equal(decimal.RequireFromString("350.50")))
	// 350.50 * 0.077 = 26.9885 rounds to 26.99
	assert.True(t, dto.TotalInclTax.Equal(decimal.RequireFromString("377.49")), "got %s", dto.TotalInclTax)
	assert.Contains(t, dto.Code, "-o01")
	require.Len(t, dto.Services, 2)
}

func TestOfferService_DiscountAndVATExemption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")

	dto, err := env.offerService.Create(ctx, &domain.CreateOfferRequest{
		ProjectID:   project.ID,
		Title:       "Phase 1",
		OwnerID:     "user-1",
		Discount:    decimal.RequireFromString("50.00"),
		LiableToVAT: boolPtr(false),
		Services: []domain.ServiceInput{
			{Title: "Design", Cost: decimal.RequireFromString("1000.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, dto.TotalExclTax.Equal(decimal.RequireFromString("950.00")))
	assert.True(t, dto.TotalInclTax.Equal(decimal.RequireFromString("950.00")))
}

func TestOfferService_StatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	offer := testutil.CreateTestOffer(t, env.db, project.ID, "Phase 1")

	// Offered without a date is rejected
	_, err := env.offerService.UpdateStatus(ctx, offer.ID, &domain.UpdateOfferStatusRequest{
		Status: domain.OfferOffered,
	})
	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Offered on date missing for selected state.", fieldErrs["status"])

	dto, err := env.offerService.UpdateStatus(ctx, offer.ID, &domain.UpdateOfferStatusRequest{
		Status:    domain.OfferOffered,
		OfferedOn: strPtr("2026-05-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferOffered, dto.Status)
	require.NotNil(t, dto.OfferedOn)
	assert.Equal(t, "2026-05-10", *dto.OfferedOn)

	// Accepting stamps the closing date
	dto, err = env.offerService.UpdateStatus(ctx, offer.ID, &domain.UpdateOfferStatusRequest{
		Status:   domain.OfferAccepted,
		ClosedOn: strPtr("2026-05-20"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferAccepted, dto.Status)
	require.NotNil(t, dto.ClosedOn)
	assert.Equal(t, "2026-05-20", *dto.ClosedOn)

	// Back to preparation clears both dates
	dto, err = env.offerService.UpdateStatus(ctx, offer.ID, &domain.UpdateOfferStatusRequest{
		Status: domain.OfferInPreparation,
	})
	require.NoError(t, err)
	assert.Nil(t, dto.OfferedOn)
	assert.Nil(t, dto.ClosedOn)
}

func TestOfferService_DeleteProtectedByTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	offer := testutil.CreateTestOffer(t, env.db, project.ID, "Phase 1")
	svc := testutil.CreateTestService(t, env.db, offer.ID, "Design", "1000.00")

	task := testutil.CreateTestTask(t, env.db, project.ID, "Design homepage")
	task.ServiceID = &svc.ID
	require.NoError(t, env.db.Save(task).Error)

	err := env.offerService.Delete(ctx, offer.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	err = env.offerService.DeleteService(ctx, svc.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	// Unassigning the task frees both up
	task.ServiceID = nil
	require.NoError(t, env.db.Save(task).Error)

	require.NoError(t, env.offerService.DeleteService(ctx, svc.ID))
	require.NoError(t, env.offerService.Delete(ctx, offer.ID))
}

func TestOfferService_AddAndUpdateService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	project := testutil.CreateTestProject(t, env.db, customer.ID, "Website relaunch")
	offer := testutil.CreateTestOffer(t, env.db, project.ID, "Phase 1")

	svc, err := env.offerService.AddService(ctx, offer.ID, &domain.ServiceInput{
		Title:         "Design",
		Cost:          decimal.RequireFromString("800.00"),
		ApprovedHours: decimal.RequireFromString("16"),
	})
	require.NoError(t, err)
	assert.Equal(t, offer.ID, svc.OfferID)

	svc, err = env.offerService.UpdateService(ctx, svc.ID, &domain.ServiceInput{
		Title: "Design and concept",
		Cost:  decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Design and concept", svc.Title)
	assert.True(t, svc.Cost.Equal(decimal.RequireFromString("900.00")))

	dto, err := env.offerService.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.True(t, dto.Subtotal.Equal(decimal.RequireFromString("900.00")), "got %s", dto.Subtotal)
}
