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

func TestDealService_CreateComputesValueTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	design := testutil.CreateTestValueType(t, env.db, "Design")
	dev := testutil.CreateTestValueType(t, env.db, "Programming")

	dto, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID: customer.ID,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
		Values: []domain.DealValueInput{
			{TypeID: design.ID, Value: decimal.RequireFromString("5000.00")},
			{TypeID: dev.ID, Value: decimal.RequireFromString("12000.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DealOpen, dto.Status)
	assert.Equal(t, domain.ProbabilityUnknown, dto.Probability)
	assert.True(t, dto.Value.Equal(decimal.RequireFromString("17000.00")), "got %s", dto.Value)
	require.Len(t, dto.Values, 2)
	assert.Equal(t, "Acme AG", dto.CustomerName)
}

func TestDealService_CreateUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.dealService.Create(context.Background(), &domain.CreateDealRequest{
		CustomerID: 999,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestDealService_CloseDerivesStatusFromClosingType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	win := testutil.CreateTestClosingType(t, env.db, "Award of contract", true)
	loss := testutil.CreateTestClosingType(t, env.db, "Competitor chosen", false)

	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Website relaunch")

	// The client never decides won or lost; the closing type does
	dto, err := env.dealService.UpdateStatus(ctx, deal.ID, &domain.UpdateDealStatusRequest{
		Status:        domain.DealDeclined,
		ClosingTypeID: &win.ID,
		ClosedOn:      strPtr("2026-08-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DealAccepted, dto.Status)
	require.NotNil(t, dto.ClosedOn)
	assert.Equal(t, "2026-08-01", *dto.ClosedOn)
	assert.Equal(t, "Award of contract", dto.ClosingTypeTitle)

	other := testutil.CreateTestDeal(t, env.db, customer.ID, "Intranet portal")
	dto, err = env.dealService.UpdateStatus(ctx, other.ID, &domain.UpdateDealStatusRequest{
		Status:        domain.DealAccepted,
		ClosingTypeID: &loss.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DealDeclined, dto.Status)
	// Closing date defaults to today
	assert.NotNil(t, dto.ClosedOn)
}

func TestDealService_CloseWithoutClosingType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Website relaunch")

	_, err := env.dealService.UpdateStatus(ctx, deal.ID, &domain.UpdateDealStatusRequest{
		Status: domain.DealAccepted,
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "This field is required when closing a deal.", fieldErrs["closing_type"])
}

func TestDealService_ReopenClearsClosingFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	win := testutil.CreateTestClosingType(t, env.db, "Award of contract", true)
	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Website relaunch")

	_, err := env.dealService.UpdateStatus(ctx, deal.ID, &domain.UpdateDealStatusRequest{
		Status:        domain.DealAccepted,
		ClosingTypeID: &win.ID,
		ClosingNotice: "Won on price",
	})
	require.NoError(t, err)

	dto, err := env.dealService.UpdateStatus(ctx, deal.ID, &domain.UpdateDealStatusRequest{
		Status: domain.DealOpen,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DealOpen, dto.Status)
	assert.Nil(t, dto.ClosedOn)
	assert.Nil(t, dto.ClosingTypeID)
	assert.Empty(t, dto.ClosingNotice)
}

func TestDealService_UpdateHighProbabilityNeedsDecisionDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Website relaunch")

	_, err := env.dealService.Update(ctx, deal.ID, &domain.UpdateDealRequest{
		Title:       deal.Title,
		OwnerID:     deal.OwnerID,
		Probability: domain.ProbabilityHigh,
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "decision_expected_on")

	dto, err := env.dealService.Update(ctx, deal.ID, &domain.UpdateDealRequest{
		Title:              deal.Title,
		OwnerID:            deal.OwnerID,
		Probability:        domain.ProbabilityHigh,
		DecisionExpectedOn: strPtr("2026-12-24"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProbabilityHigh, dto.Probability)
}

func TestDealService_PipelineGroupsByUrgency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")

	urgent := testutil.CreateTestDeal(t, env.db, customer.ID, "Urgent deal")
	decisionSoon := daysAgo(-10)
	urgent.DecisionExpectedOn = &decisionSoon
	require.NoError(t, env.db.Save(urgent).Error)

	someday := testutil.CreateTestDeal(t, env.db, customer.ID, "Someday deal")
	_ = someday

	closed := testutil.CreateTestDeal(t, env.db, customer.ID, "Closed deal")
	closed.Status = domain.DealAccepted
	require.NoError(t, env.db.Save(closed).Error)

	groups, err := env.dealService.Pipeline(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, domain.DealGroupUrgent, groups[0].Group)
	assert.Equal(t, "Decision imminent", groups[0].Title)
	require.Len(t, groups[0].Deals, 1)
	assert.Equal(t, "Urgent deal", groups[0].Deals[0].Title)

	assert.Equal(t, domain.DealGroupSomeday, groups[1].Group)
	require.Len(t, groups[1].Deals, 1)
	assert.Equal(t, "Someday deal", groups[1].Deals[0].Title)
}

func TestDealService_UpdateReplacesValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	design := testutil.CreateTestValueType(t, env.db, "Design")
	dev := testutil.CreateTestValueType(t, env.db, "Programming")

	dto, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID: customer.ID,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
		Values: []domain.DealValueInput{
			{TypeID: design.ID, Value: decimal.RequireFromString("5000.00")},
		},
	})
	require.NoError(t, err)

	dto, err = env.dealService.Update(ctx, dto.ID, &domain.UpdateDealRequest{
		Title:   "Website relaunch",
		OwnerID: "user-1",
		Values: []domain.DealValueInput{
			{TypeID: design.ID, Value: decimal.RequireFromString("6000.00")},
			{TypeID: dev.ID, Value: decimal.RequireFromString("4000.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, dto.Value.Equal(decimal.RequireFromString("10000.00")), "got %s", dto.Value)
	assert.Len(t, dto.Values, 2)
}
