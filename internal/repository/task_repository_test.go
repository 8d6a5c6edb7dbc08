package repository_test

import (
	"context"
	"testing"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTaskTestDB(t *testing.T) (*gorm.DB, *repository.TaskRepository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, repository.NewTaskRepository(db, repository.NewCodeSequenceRepository(db))
}

func newTask(projectID uint, title string) *domain.Task {
	return &domain.Task{
		ProjectID: projectID,
		Title:     title,
		Type:      domain.TaskTypeTask,
		Priority:  domain.PriorityNormal,
		Status:    domain.TaskInbox,
	}
}

func TestTaskRepository_CodesCountPerProject(t *testing.T) {
	db, repo := setupTaskTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	projectA := testutil.CreateTestProject(t, db, customer.ID, "Project A")
	projectB := testutil.CreateTestProject(t, db, customer.ID, "Project B")

	first := newTask(projectA.ID, "First")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "#1", first.Code())

	second := newTask(projectA.ID, "Second")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "#2", second.Code())

	// The other project's count is unaffected
	other := newTask(projectB.ID, "Other")
	require.NoError(t, repo.Create(ctx, other))
	assert.Equal(t, "#1", other.Code())
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db, repo := setupTaskTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	project := testutil.CreateTestProject(t, db, customer.ID, "Project A")
	offer := testutil.CreateTestOffer(t, db, project.ID, "Phase 1")
	service := testutil.CreateTestService(t, db, offer.ID, "Design", "1000.00")

	design := newTask(project.ID, "Design homepage")
	design.ServiceID = &service.ID
	design.OwnerID = "user-1"
	require.NoError(t, repo.Create(ctx, design))

	build := newTask(project.ID, "Build homepage")
	build.Status = domain.TaskInProgress
	build.OwnerID = "user-2"
	require.NoError(t, repo.Create(ctx, build))

	tasks, total, err := repo.List(ctx, 1, 20, repository.TaskFilters{ProjectID: &project.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, tasks, 2)

	tasks, total, err = repo.List(ctx, 1, 20, repository.TaskFilters{ServiceID: &service.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Design homepage", tasks[0].Title)

	inProgress := domain.TaskInProgress
	tasks, total, err = repo.List(ctx, 1, 20, repository.TaskFilters{Status: &inProgress})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Build homepage", tasks[0].Title)

	tasks, total, err = repo.List(ctx, 1, 20, repository.TaskFilters{OwnerID: "user-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestTaskRepository_CountLoggedHours(t *testing.T) {
	db, repo := setupTaskTestDB(t)
	ctx := context.Background()
	customer := testutil.CreateTestCustomer(t, db, "Acme AG")
	project := testutil.CreateTestProject(t, db, customer.ID, "Project A")
	task := testutil.CreateTestTask(t, db, project.ID, "Design homepage")

	count, err := repo.CountLoggedHours(ctx, task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, db.Create(&domain.LoggedHours{
		TaskID:       task.ID,
		RenderedByID: "user-1",
		RenderedOn:   testutil.Date(2026, 8, 1),
		Hours:        decimal.RequireFromString("2.50"),
	}).Error)

	count, err = repo.CountLoggedHours(ctx, task.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
