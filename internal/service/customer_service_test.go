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

func TestCustomerService_CreateAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dto, err := env.customerService.Create(ctx, &domain.CreateCustomerRequest{
		Name:      "Acme AG",
		OrgNumber: "CHE-123.456.789",
		Email:     "hello@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme AG", dto.Name)
	assert.Equal(t, "CHE-123.456.789", dto.OrgNumber)

	updated, err := env.customerService.Update(ctx, dto.ID, &domain.UpdateCustomerRequest{
		Name:  "Acme Holding AG",
		Phone: "0441234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holding AG", updated.Name)
	assert.Equal(t, "0441234567", updated.Phone)
	assert.Empty(t, updated.Email)
}

func TestCustomerService_DeleteProtectedByHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Relaunch 2027")

	err := env.customerService.Delete(ctx, customer.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	require.NoError(t, env.dealService.Delete(ctx, deal.ID))
	require.NoError(t, env.customerService.Delete(ctx, customer.ID))

	_, err = env.customerService.GetByID(ctx, customer.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCustomerService_Contacts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")

	dto, err := env.customerService.CreateContact(ctx, &domain.CreateContactRequest{
		CustomerID: customer.ID,
		FirstName:  "Vera",
		LastName:   "Beispiel",
		Email:      "vera@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vera Beispiel", dto.FullName)

	updated, err := env.customerService.UpdateContact(ctx, dto.ID, &domain.UpdateContactRequest{
		FirstName: "Vera",
		LastName:  "Muster",
		Title:     "CTO",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vera Muster", updated.FullName)
	assert.Equal(t, "CTO", updated.Title)

	contacts, err := env.customerService.ListContacts(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	require.NoError(t, env.customerService.DeleteContact(ctx, dto.ID))
	_, err = env.customerService.GetContactByID(ctx, dto.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCustomerService_ContactForUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.customerService.CreateContact(context.Background(), &domain.CreateContactRequest{
		CustomerID: 999,
		FirstName:  "Vera",
		LastName:   "Beispiel",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestValueTypeService_DeleteProtectedByDealValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	valueType := testutil.CreateTestValueType(t, env.db, "Licenses")

	_, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID: customer.ID,
		Title:      "Relaunch 2027",
		OwnerID:    "user-1",
		Values: []domain.DealValueInput{
			{TypeID: valueType.ID, Value: decimal.RequireFromString("5000")},
		},
	})
	require.NoError(t, err)

	err = env.valueTypeService.Delete(ctx, valueType.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	// Archiving hides the type from pickers instead
	archived, err := env.valueTypeService.Update(ctx, valueType.ID, &domain.UpdateValueTypeRequest{
		Title:      "Licenses",
		IsArchived: true,
	})
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	visible, err := env.valueTypeService.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := env.valueTypeService.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestValueTypeService_DeleteUnused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dto, err := env.valueTypeService.Create(ctx, &domain.CreateValueTypeRequest{Title: "Licenses"})
	require.NoError(t, err)
	require.NoError(t, env.valueTypeService.Delete(ctx, dto.ID))
}

func TestClosingTypeService_DeleteProtectedByClosedDeals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	closingType := testutil.CreateTestClosingType(t, env.db, "Won on price", true)
	deal := testutil.CreateTestDeal(t, env.db, customer.ID, "Relaunch 2027")

	_, err := env.dealService.UpdateStatus(ctx, deal.ID, &domain.UpdateDealStatusRequest{
		Status:        domain.DealAccepted,
		ClosingTypeID: &closingType.ID,
	})
	require.NoError(t, err)

	err = env.closingTypeService.Delete(ctx, closingType.ID)
	require.ErrorIs(t, err, service.ErrProtected)

	unused, err := env.closingTypeService.Create(ctx, &domain.CreateClosingTypeRequest{
		Title:          "Lost to competitor",
		RepresentsAWin: false,
	})
	require.NoError(t, err)
	require.NoError(t, env.closingTypeService.Delete(ctx, unused.ID))
}
