package repository_test

import (
	"context"
	"testing"

	"github.com/feinwerk/workbench-api/internal/repository"
	"github.com/feinwerk/workbench-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeSequence_GapFreePerScope(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeSequenceRepository(db)
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		got, err := repo.NextValue(ctx, db, repository.ScopeProject, "2026")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCodeSequence_ScopesAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeSequenceRepository(db)
	ctx := context.Background()

	n, err := repo.NextValue(ctx, db, repository.ScopeProject, "2026")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.NextValue(ctx, db, repository.ScopeProject, "2026")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A different year starts its own count
	n, err = repo.NextValue(ctx, db, repository.ScopeProject, "2027")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Same key under a different scope type is also independent
	n, err = repo.NextValue(ctx, db, repository.ScopeTask, "2026")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
