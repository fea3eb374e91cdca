package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

func TestProjects_CRUD(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	t.Run("add and fetch", func(t *testing.T) {
		launchID, err := pdb.AddProject("Launch")
		require.NoError(t, err)
		require.NotZero(t, launchID)

		cleanupID, err := pdb.AddProject("Spring cleanup")
		require.NoError(t, err)

		projects, err := pdb.FetchProjects()
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, launchID, projects[0].ID)
		assert.Equal(t, "Launch", projects[0].Title)
		assert.Equal(t, cleanupID, projects[1].ID)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := pdb.AddProject("")
		assert.True(t, planerrors.IsCode(err, planerrors.CodeInvalidArgument))
	})

	t.Run("delete absent is noop", func(t *testing.T) {
		assert.NoError(t, pdb.DeleteProject(9999))
	})
}

func TestMembership_Idempotent(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	bobID, err := pdb.InsertUser("Bob", "+1-111")
	require.NoError(t, err)
	launchID, err := pdb.AddProject("Launch")
	require.NoError(t, err)

	require.NoError(t, pdb.AddUserToProject(bobID, launchID))
	// Second add of the same pair is a silent no-op.
	require.NoError(t, pdb.AddUserToProject(bobID, launchID))

	users, err := pdb.FetchProjectUsers(launchID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)

	count, err := pdb.CountProjectMembers(launchID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMembership_InvalidReference(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	bobID, err := pdb.InsertUser("Bob", "+1-111")
	require.NoError(t, err)
	launchID, err := pdb.AddProject("Launch")
	require.NoError(t, err)

	err = pdb.AddUserToProject(9999, launchID)
	assert.True(t, planerrors.IsCode(err, planerrors.CodeInvalidReference), "missing user: got %v", err)

	err = pdb.AddUserToProject(bobID, 9999)
	assert.True(t, planerrors.IsCode(err, planerrors.CodeInvalidReference), "missing project: got %v", err)

	count, err := pdb.CountProjectMembers(launchID)
	require.NoError(t, err)
	assert.Zero(t, count, "rejected memberships must not leave rows")
}

func TestMembership_CascadeOnUserDelete(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	annID, err := pdb.InsertUser("Ann", "+1-000")
	require.NoError(t, err)
	bobID, err := pdb.InsertUser("Bob", "+1-111")
	require.NoError(t, err)
	launchID, err := pdb.AddProject("Launch")
	require.NoError(t, err)

	require.NoError(t, pdb.AddUserToProject(annID, launchID))
	require.NoError(t, pdb.AddUserToProject(bobID, launchID))

	require.NoError(t, pdb.DeleteUser(annID))

	users, err := pdb.FetchProjectUsers(launchID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bobID, users[0].ID)

	// The project itself survives.
	projects, err := pdb.FetchProjects()
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestMembership_CascadeOnProjectDelete(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	annID, err := pdb.InsertUser("Ann", "+1-000")
	require.NoError(t, err)
	launchID, err := pdb.AddProject("Launch")
	require.NoError(t, err)
	keepID, err := pdb.AddProject("Keep me")
	require.NoError(t, err)

	require.NoError(t, pdb.AddUserToProject(annID, launchID))
	require.NoError(t, pdb.AddUserToProject(annID, keepID))

	require.NoError(t, pdb.DeleteProject(launchID))

	// Membership rows for the deleted project are gone; the user is not.
	projects, err := pdb.FetchUserProjects(annID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, keepID, projects[0].ID)

	u, err := pdb.GetUser(annID)
	require.NoError(t, err)
	require.NotNil(t, u)
}

// Create a project, assign Bob twice, and confirm the roster lists him once.
func TestProjectRosterScenario(t *testing.T) {
	t.Parallel()
	pdb := NewTestDB(t)

	bobID, err := pdb.InsertUser("Bob", "+1-111")
	require.NoError(t, err)
	launchID, err := pdb.AddProject("Launch")
	require.NoError(t, err)

	require.NoError(t, pdb.AddUserToProject(bobID, launchID))
	require.NoError(t, pdb.AddUserToProject(bobID, launchID))

	users, err := pdb.FetchProjectUsers(launchID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Name)
}
