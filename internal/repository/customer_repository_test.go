package repository_test

import (
	"context"
	"testing"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_ListSearchesNameAndOrgNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Acme AG", OrgNumber: "CHE-123.456.789"}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Globex GmbH", OrgNumber: "CHE-987.654.321"}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Beispiel & Co"}))

	customers, total, err := repo.List(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	// Ordered by name
	assert.Equal(t, "Acme AG", customers[0].Name)

	_, total, err = repo.List(ctx, 1, 20, "acme")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	customers, total, err = repo.List(ctx, 1, 20, "987.654")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Globex GmbH", customers[0].Name)
}

func TestCustomerRepository_ListPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		require.NoError(t, repo.Create(ctx, &domain.Customer{Name: name}))
	}

	customers, total, err := repo.List(ctx, 2, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, customers, 2)
	assert.Equal(t, "Charlie", customers[0].Name)
	assert.Equal(t, "Delta", customers[1].Name)
}

func TestCustomerRepository_CountReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Acme AG")

	count, err := repo.CountReferences(ctx, customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	testutil.CreateTestDeal(t, db, customer.ID, "Website relaunch")
	testutil.CreateTestProject(t, db, customer.ID, "Website relaunch")

	count, err = repo.CountReferences(ctx, customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestValueTypeRepository_ListHidesArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewValueTypeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.ValueType{Title: "Design", Position: 2}))
	require.NoError(t, repo.Create(ctx, &domain.ValueType{Title: "Programming", Position: 1}))
	require.NoError(t, repo.Create(ctx, &domain.ValueType{Title: "Retired", Position: 3, IsArchived: true}))

	types, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Programming", types[0].Title)
	assert.Equal(t, "Design", types[1].Title)

	types, err = repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, types, 3)
}

func TestValueTypeRepository_CountReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewValueTypeRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	deal := testutil.CreateTestDeal(t, db, customer.ID, "Website relaunch")
	vt := testutil.CreateTestValueType(t, db, "Design")

	count, err := repo.CountReferences(ctx, vt.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, db.Create(&domain.DealValue{DealID: deal.ID, TypeID: vt.ID}).Error)

	count, err = repo.CountReferences(ctx, vt.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestClosingTypeRepository_CountReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewClosingTypeRepository(db)
	ctx := context.Background()

	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	ct := testutil.CreateTestClosingType(t, db, "Award of contract", true)

	count, err := repo.CountReferences(ctx, ct.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	deal := testutil.CreateTestDeal(t, db, customer.ID, "Website relaunch")
	deal.Status = domain.DealAccepted
	deal.ClosingTypeID = &ct.ID
	closedOn := testutil.Date(2026, 8, 1)
	deal.ClosedOn = &closedOn
	require.NoError(t, db.Save(deal).Error)

	count, err = repo.CountReferences(ctx, ct.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
