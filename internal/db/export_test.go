package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSnapshot(t *testing.T, pdb *PlannerDB) (annID, bobID, launchID int64) {
	t.Helper()

	var err error
	annID, err = pdb.InsertUser("Ann", "+1-000")
	require.NoError(t, err)
	bobID, err = pdb.InsertUser("Bob", "+1-111")
	require.NoError(t, err)
	launchID, err = pdb.AddProject("Launch")
	require.NoError(t, err)

	_, err = pdb.AddTask("Buy milk", annID)
	require.NoError(t, err)
	require.NoError(t, pdb.AddUserToProject(annID, launchID))
	require.NoError(t, pdb.AddUserToProject(bobID, launchID))
	return annID, bobID, launchID
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := NewTestDB(t)
	annID, _, launchID := seedSnapshot(t, src)

	snap, err := src.Export()
	require.NoError(t, err)
	require.Len(t, snap.Users, 2)
	require.Len(t, snap.Tasks, 1)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Memberships, 2)

	dst := NewTestDB(t)
	require.NoError(t, dst.Import(context.Background(), snap))

	users, err := dst.FetchUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, annID, users[0].ID, "ids survive the round trip")

	tasks, err := dst.FetchUserTasks(annID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	roster, err := dst.FetchProjectUsers(launchID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestImportReplacesExistingData(t *testing.T) {
	t.Parallel()
	src := NewTestDB(t)
	seedSnapshot(t, src)
	snap, err := src.Export()
	require.NoError(t, err)

	dst := NewTestDB(t)
	staleID, err := dst.InsertUser("Stale", "+9-999")
	require.NoError(t, err)

	require.NoError(t, dst.Import(context.Background(), snap))

	users, err := dst.FetchUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, staleID, u.ID, "pre-import rows must be gone")
	}
}

func TestImportBadSnapshotRollsBack(t *testing.T) {
	t.Parallel()
	src := NewTestDB(t)
	seedSnapshot(t, src)
	snap, err := src.Export()
	require.NoError(t, err)

	// A task pointing at a user that is not in the snapshot violates the FK
	// and must abort the whole import.
	snap.Tasks = append(snap.Tasks, TaskRecord{ID: 99, Title: "Orphan", UserID: 12345})

	dst := NewTestDB(t)
	keepID, err := dst.InsertUser("Keep", "+9-999")
	require.NoError(t, err)

	err = dst.Import(context.Background(), snap)
	require.Error(t, err)

	// Existing data is untouched after the rollback.
	u, err := dst.GetUser(keepID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Keep", u.Name)
}
