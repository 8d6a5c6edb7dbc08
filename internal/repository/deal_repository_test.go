package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDealTestDB(t *testing.T) (*gorm.DB, *repository.DealRepository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, repository.NewDealRepository(db)
}

func TestDealRepository_CreateWithValues(t *testing.T) {
	db, repo := setupDealTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	design := testutil.CreateTestValueType(t, db, "Design")
	dev := testutil.CreateTestValueType(t, db, "Programming")

	deal := &domain.Deal{
		CustomerID:  customer.ID,
		Title:       "Website relaunch",
		OwnerID:     "user-1",
		Status:      domain.DealOpen,
		Probability: domain.ProbabilityNormal,
		Values: []domain.DealValue{
			{TypeID: design.ID, Value: decimal.RequireFromString("5000.00")},
			{TypeID: dev.ID, Value: decimal.RequireFromString("12000.00")},
		},
	}
	require.NoError(t, repo.Create(ctx, deal))

	found, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	require.Len(t, found.Values, 2)
	require.NotNil(t, found.Values[0].Type)

	total, err := repo.SumValues(ctx, deal.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("17000.00")), "got %s", total)
}

func TestDealRepository_ReplaceValues(t *testing.T) {
	db, repo := setupDealTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	design := testutil.CreateTestValueType(t, db, "Design")
	dev := testutil.CreateTestValueType(t, db, "Programming")

	deal := testutil.CreateTestDeal(t, db, customer.ID, "Website relaunch")
	require.NoError(t, repo.ReplaceValues(ctx, deal.ID, []domain.DealValue{
		{TypeID: design.ID, Value: decimal.RequireFromString("5000.00")},
	}))

	require.NoError(t, repo.ReplaceValues(ctx, deal.ID, []domain.DealValue{
		{TypeID: design.ID, Value: decimal.RequireFromString("6000.00")},
		{TypeID: dev.ID, Value: decimal.RequireFromString("4000.00")},
	}))

	total, err := repo.SumValues(ctx, deal.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("10000.00")), "got %s", total)

	// Empty set wipes all values
	require.NoError(t, repo.ReplaceValues(ctx, deal.ID, nil))
	total, err = repo.SumValues(ctx, deal.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestDealRepository_ListFilters(t *testing.T) {
	db, repo := setupDealTestDB(t)
	ctx := context.Background()
	acme := testutil.CreateTestCustomer(t, db, "Acme AG")
	globex := testutil.CreateTestCustomer(t, db, "Globex GmbH")

	open := testutil.CreateTestDeal(t, db, acme.ID, "Open deal")
	_ = open

	accepted := testutil.CreateTestDeal(t, db, acme.ID, "Accepted deal")
	accepted.Status = domain.DealAccepted
	require.NoError(t, db.Save(accepted).Error)

	other := testutil.CreateTestDeal(t, db, globex.ID, "Other deal")
	other.OwnerID = "user-2"
	require.NoError(t, db.Save(other).Error)

	_, total, err := repo.List(ctx, 1, 20, repository.DealFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	openStatus := domain.DealOpen
	deals, total, err := repo.List(ctx, 1, 20, repository.DealFilters{Status: &openStatus})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, d := range deals {
		assert.Equal(t, domain.DealOpen, d.Status)
	}

	_, total, err = repo.List(ctx, 1, 20, repository.DealFilters{CustomerID: &acme.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	deals, total, err = repo.List(ctx, 1, 20, repository.DealFilters{OwnerID: "user-2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Other deal", deals[0].Title)
}

func TestDealRepository_ListOpenOrdersByDecisionDate(t *testing.T) {
	db, repo := setupDealTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")

	noDate := testutil.CreateTestDeal(t, db, customer.ID, "No date")

	late := testutil.CreateTestDeal(t, db, customer.ID, "Late decision")
	lateOn := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	late.DecisionExpectedOn = &lateOn
	require.NoError(t, db.Save(late).Error)

	soon := testutil.CreateTestDeal(t, db, customer.ID, "Soon decision")
	soonOn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	soon.DecisionExpectedOn = &soonOn
	require.NoError(t, db.Save(soon).Error)

	closed := testutil.CreateTestDeal(t, db, customer.ID, "Closed")
	closed.Status = domain.DealDeclined
	require.NoError(t, db.Save(closed).Error)

	deals, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 3)
	assert.Equal(t, "Soon decision", deals[0].Title)
	assert.Equal(t, "Late decision", deals[1].Title)
	assert.Equal(t, noDate.Title, deals[2].Title)
}

func TestDealRepository_DeleteRemovesValues(t *testing.T) {
	db, repo := setupDealTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	design := testutil.CreateTestValueType(t, db, "Design")

	deal := testutil.CreateTestDeal(t, db, customer.ID, "Website relaunch")
	require.NoError(t, repo.ReplaceValues(ctx, deal.ID, []domain.DealValue{
		{TypeID: design.ID, Value: decimal.RequireFromString("5000.00")},
	}))

	require.NoError(t, repo.Delete(ctx, deal.ID))

	var values int64
	require.NoError(t, db.Model(&domain.DealValue{}).Where("deal_id = ?", deal.ID).Count(&values).Error)
	assert.EqualValues(t, 0, values)
}
