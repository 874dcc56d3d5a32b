package task

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoForTests(t *testing.T) *SQLRepo {
	t.Helper()

	db, err := sql.Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	// Every sqlite :memory: connection is its own database; keep the
	// pool at one so all queries see the same tables.
	db.SetMaxOpenConns(1)

	repo := NewSQLRepo(db, DriverSQLite)
	require.NoError(t, repo.CreateSchema(context.Background()))
	return repo
}

func sampleTask(title string) Task {
	return Task{
		Title:       title,
		Description: "",
		Status:      StatusPending,
		CreatedAt:   "2026-08-29T10:00:00.000Z",
		UpdatedAt:   "2026-08-29T10:00:00.000Z",
	}
}

func TestSQLRepo_InsertAssignsSequentialIDs(t *testing.T) {
	repo := newRepoForTests(t)
	ctx := context.Background()

	id1, err := repo.Insert(ctx, sampleTask("primera"))
	require.NoError(t, err)
	id2, err := repo.Insert(ctx, sampleTask("segunda"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestSQLRepo_ListReturnsInsertionOrder(t *testing.T) {
	repo := newRepoForTests(t)
	ctx := context.Background()

	for _, title := range []string{"uno", "dos", "tres"} {
		_, err := repo.Insert(ctx, sampleTask(title))
		require.NoError(t, err)
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "uno", tasks[0].Title)
	assert.Equal(t, "dos", tasks[1].Title)
	assert.Equal(t, "tres", tasks[2].Title)
}

func TestSQLRepo_UpdateStatusReportsAffectedCount(t *testing.T) {
	repo := newRepoForTests(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, sampleTask("a actualizar"))
	require.NoError(t, err)

	affected, err := repo.UpdateStatus(ctx, id, "completed", "2026-08-29T11:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateStatus(ctx, 999, "completed", "2026-08-29T11:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "completed", tasks[0].Status)
	assert.Equal(t, "2026-08-29T11:00:00.000Z", tasks[0].UpdatedAt)
	assert.Equal(t, "2026-08-29T10:00:00.000Z", tasks[0].CreatedAt)
}

func TestSQLRepo_DeleteReportsAffectedCount(t *testing.T) {
	repo := newRepoForTests(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, sampleTask("a borrar"))
	require.NoError(t, err)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSQLRepo_IDsAreNeverReused(t *testing.T) {
	repo := newRepoForTests(t)
	ctx := context.Background()

	id1, err := repo.Insert(ctx, sampleTask("efimera"))
	require.NoError(t, err)
	_, err = repo.Delete(ctx, id1)
	require.NoError(t, err)

	id2, err := repo.Insert(ctx, sampleTask("siguiente"))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestSQLRepo_RebindForPostgres(t *testing.T) {
	repo := &SQLRepo{driver: DriverPostgres}
	got := repo.rebind("UPDATE tasks SET status = ?, fechaActualizacion = ? WHERE id = ?")
	assert.Equal(t, "UPDATE tasks SET status = $1, fechaActualizacion = $2 WHERE id = $3", got)

	repo = &SQLRepo{driver: DriverSQLite}
	assert.Equal(t, "WHERE id = ?", repo.rebind("WHERE id = ?"))
}
