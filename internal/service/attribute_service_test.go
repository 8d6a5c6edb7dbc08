package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/service"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeService_GroupsAndAttributes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group, err := env.attributeService.CreateGroup(ctx, &domain.CreateAttributeGroupRequest{
		Title: "Lead source",
	})
	require.NoError(t, err)
	assert.True(t, group.IsRequired, "groups are required unless opted out")

	optional, err := env.attributeService.CreateGroup(ctx, &domain.CreateAttributeGroupRequest{
		Title:      "Region",
		IsRequired: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, optional.IsRequired)

	attr, err := env.attributeService.CreateAttribute(ctx, &domain.CreateAttributeRequest{
		GroupID: group.ID,
		Title:   "Referral",
	})
	require.NoError(t, err)
	assert.Equal(t, group.ID, attr.GroupID)
	assert.Equal(t, "Lead source", attr.GroupTitle)

	_, err = env.attributeService.CreateAttribute(ctx, &domain.CreateAttributeRequest{
		GroupID: 999,
		Title:   "Orphan",
	})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestAttributeService_ListHidesArchived(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", true)
	testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")
	archived := testutil.CreateTestAttribute(t, env.db, group.ID, "Cold call")
	_, err := env.attributeService.UpdateAttribute(ctx, archived.ID, &domain.UpdateAttributeRequest{
		Title:      "Cold call",
		IsArchived: true,
	})
	require.NoError(t, err)

	archivedGroup := testutil.CreateTestAttributeGroup(t, env.db, "Old facet", true)
	testutil.CreateTestAttribute(t, env.db, archivedGroup.ID, "Legacy")
	_, err = env.attributeService.UpdateGroup(ctx, archivedGroup.ID, &domain.UpdateAttributeGroupRequest{
		Title:      "Old facet",
		IsRequired: true,
		IsArchived: true,
	})
	require.NoError(t, err)

	groups, err := env.attributeService.ListGroups(ctx, false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Attributes, 1)
	assert.Equal(t, "Referral", groups[0].Attributes[0].Title)

	all, err := env.attributeService.ListGroups(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all[0].Attributes, 2)
}

func TestDealService_RequiredAttributeGroupEnforced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", true)
	attr := testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")

	_, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID: customer.ID,
		Title:      "New website",
		OwnerID:    "user-1",
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	field := fmt.Sprintf("attribute_%d", group.ID)
	assert.Equal(t, "This field is required.", fieldErrs[field])

	dto, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "New website",
		OwnerID:      "user-1",
		AttributeIDs: []uint{attr.ID},
	})
	require.NoError(t, err)
	require.Len(t, dto.Attributes, 1)
	assert.Equal(t, "Referral", dto.Attributes[0].Title)
	assert.Equal(t, "Lead source", dto.Attributes[0].GroupTitle)
}

func TestDealService_OneAttributePerGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", true)
	first := testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")
	second := testutil.CreateTestAttribute(t, env.db, group.ID, "Cold call")

	_, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "New website",
		OwnerID:      "user-1",
		AttributeIDs: []uint{first.ID, second.ID},
	})
	require.Error(t, err)

	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	field := fmt.Sprintf("attribute_%d", group.ID)
	assert.Equal(t, "Only one selection per group is allowed.", fieldErrs[field])
}

func TestDealService_ArchivedAttributeNotSelectable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", false)
	attr := testutil.CreateTestAttribute(t, env.db, group.ID, "Cold call")

	deal, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "Old campaign",
		OwnerID:      "user-1",
		AttributeIDs: []uint{attr.ID},
	})
	require.NoError(t, err)

	_, err = env.attributeService.UpdateAttribute(ctx, attr.ID, &domain.UpdateAttributeRequest{
		Title:      "Cold call",
		IsArchived: true,
	})
	require.NoError(t, err)

	// New deals cannot pick the archived attribute
	_, err = env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "New campaign",
		OwnerID:      "user-1",
		AttributeIDs: []uint{attr.ID},
	})
	var fieldErrs domain.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	field := fmt.Sprintf("attribute_%d", group.ID)
	assert.Equal(t, "This attribute is archived.", fieldErrs[field])

	// The deal that already carries it keeps it through edits
	updated, err := env.dealService.Update(ctx, deal.ID, &domain.UpdateDealRequest{
		Title:        "Old campaign, renamed",
		OwnerID:      "user-1",
		AttributeIDs: []uint{attr.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Attributes, 1)
}

func TestDealService_UpdateReplacesAttributes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", true)
	referral := testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")
	coldCall := testutil.CreateTestAttribute(t, env.db, group.ID, "Cold call")

	deal, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "New website",
		OwnerID:      "user-1",
		AttributeIDs: []uint{referral.ID},
	})
	require.NoError(t, err)

	// Leaving the selection out keeps it
	updated, err := env.dealService.Update(ctx, deal.ID, &domain.UpdateDealRequest{
		Title:   "New website, phase 2",
		OwnerID: "user-1",
	})
	require.NoError(t, err)
	require.Len(t, updated.Attributes, 1)
	assert.Equal(t, referral.ID, updated.Attributes[0].ID)

	updated, err = env.dealService.Update(ctx, deal.ID, &domain.UpdateDealRequest{
		Title:        "New website, phase 2",
		OwnerID:      "user-1",
		AttributeIDs: []uint{coldCall.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Attributes, 1)
	assert.Equal(t, coldCall.ID, updated.Attributes[0].ID)
}

func TestAttributeService_DeleteProtectedByDeals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, env.db, "Acme AG")
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", true)
	attr := testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")

	deal, err := env.dealService.Create(ctx, &domain.CreateDealRequest{
		CustomerID:   customer.ID,
		Title:        "New website",
		OwnerID:      "user-1",
		AttributeIDs: []uint{attr.ID},
	})
	require.NoError(t, err)

	require.ErrorIs(t, env.attributeService.DeleteAttribute(ctx, attr.ID), service.ErrProtected)
	require.ErrorIs(t, env.attributeService.DeleteGroup(ctx, group.ID), service.ErrProtected)

	require.NoError(t, env.dealService.Delete(ctx, deal.ID))
	require.NoError(t, env.attributeService.DeleteGroup(ctx, group.ID))

	groups, err := env.attributeService.ListGroups(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestAttributeService_DeleteUnusedAttribute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	group := testutil.CreateTestAttributeGroup(t, env.db, "Lead source", false)
	attr := testutil.CreateTestAttribute(t, env.db, group.ID, "Referral")

	require.NoError(t, env.attributeService.DeleteAttribute(ctx, attr.ID))
	require.ErrorIs(t, env.attributeService.DeleteAttribute(ctx, attr.ID), service.ErrNotFound)
}
