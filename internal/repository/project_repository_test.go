package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjectTestDB(t *testing.T) (*gorm.DB, *repository.ProjectRepository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, repository.NewProjectRepository(db, repository.NewCodeSequenceRepository(db))
}

func TestProjectRepository_CreateAssignsSequentialCodes(t *testing.T) {
	db, repo := setupProjectTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")

	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		project := &domain.Project{
			CustomerID: customer.ID,
			Title:      fmt.Sprintf("Project %d", i),
			OwnerID:    "user-1",
			Status:     domain.ProjectAcquisition,
			Invoicing:  true,
		}
		require.NoError(t, repo.Create(ctx, project))
		assert.Equal(t, i, project.CodeNumber)
		assert.Equal(t, fmt.Sprintf("%d-%04d", year, i), project.Code())
	}
}

func TestProjectRepository_GetByIDPreloadsCustomer(t *testing.T) {
	db, repo := setupProjectTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")

	project := &domain.Project{
		CustomerID: customer.ID,
		Title:      "Website relaunch",
		OwnerID:    "user-1",
		Status:     domain.ProjectWorkInProgress,
		Invoicing:  true,
	}
	require.NoError(t, repo.Create(ctx, project))

	found, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "Acme AG", found.Customer.Name)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db, repo := setupProjectTestDB(t)
	ctx := context.Background()
	acme := testutil.CreateTestCustomer(t, db, "Acme AG")
	globex := testutil.CreateTestCustomer(t, db, "Globex GmbH")

	fixtures := []struct {
		title    string
		customer uint
		owner    string
		status   domain.ProjectStatus
	}{
		{"Website relaunch", acme.ID, "user-1", domain.ProjectWorkInProgress},
		{"Intranet portal", acme.ID, "user-2", domain.ProjectAcquisition},
		{"App maintenance", globex.ID, "user-1", domain.ProjectWorkInProgress},
	}
	for _, f := range fixtures {
		require.NoError(t, repo.Create(ctx, &domain.Project{
			CustomerID: f.customer,
			Title:      f.title,
			OwnerID:    f.owner,
			Status:     f.status,
			Invoicing:  true,
		}))
	}

	projects, total, err := repo.List(ctx, 1, 20, repository.ProjectFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, projects, 3)

	wip := domain.ProjectWorkInProgress
	projects, total, err = repo.List(ctx, 1, 20, repository.ProjectFilters{Status: &wip})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	projects, total, err = repo.List(ctx, 1, 20, repository.ProjectFilters{CustomerID: &acme.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	projects, total, err = repo.List(ctx, 1, 20, repository.ProjectFilters{OwnerID: "user-2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Intranet portal", projects[0].Title)

	projects, total, err = repo.List(ctx, 1, 20, repository.ProjectFilters{Search: "RELAUNCH"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Website relaunch", projects[0].Title)
}

func TestProjectRepository_CountReferences(t *testing.T) {
	db, repo := setupProjectTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	project := testutil.CreateTestProject(t, db, customer.ID, "Website relaunch")

	count, err := repo.CountReferences(ctx, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	testutil.CreateTestTask(t, db, project.ID, "Design homepage")
	testutil.CreateTestOffer(t, db, project.ID, "Phase 1")

	count, err = repo.CountReferences(ctx, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
