package db

import (
	"testing"

	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

func TestAddAndFetchTasks(t *testing.T) {
	pdb := NewTestDB(t)

	userID, err := pdb.InsertUser("Ann", "+1-000")
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	first, err := pdb.AddTask("Buy milk", userID)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	second, err := pdb.AddTask("Walk dog", userID)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if second <= first {
		t.Errorf("ids not increasing: %d then %d", first, second)
	}

	tasks, err := pdb.FetchUserTasks(userID)
	if err != nil {
		t.Fatalf("FetchUserTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("FetchUserTasks returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "Buy milk" || tasks[1].Title != "Walk dog" {
		t.Errorf("tasks out of order: %v", tasks)
	}
	for _, task := range tasks {
		if task.UserID != userID {
			t.Errorf("task %d has owner %d, want %d", task.ID, task.UserID, userID)
		}
	}
}

func TestAddTaskInvalidReference(t *testing.T) {
	pdb := NewTestDB(t)

	_, err := pdb.AddTask("Orphan", 9999)
	if !planerrors.IsCode(err, planerrors.CodeInvalidReference) {
		t.Fatalf("error code = %s, want %s", planerrors.GetCode(err), planerrors.CodeInvalidReference)
	}

	// The rejected insert must not create a row.
	var count int
	if err := pdb.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count); err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("tasks table has %d rows after rejected insert, want 0", count)
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	pdb := NewTestDB(t)

	userID, err := pdb.InsertUser("Ann", "+1-000")
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	_, err = pdb.AddTask("", userID)
	if !planerrors.IsCode(err, planerrors.CodeInvalidArgument) {
		t.Errorf("error code = %s, want %s", planerrors.GetCode(err), planerrors.CodeInvalidArgument)
	}
}

func TestDeleteTask(t *testing.T) {
	pdb := NewTestDB(t)

	userID, err := pdb.InsertUser("Ann", "+1-000")
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	taskID, err := pdb.AddTask("Buy milk", userID)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := pdb.DeleteTask(taskID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	tasks, err := pdb.FetchUserTasks(userID)
	if err != nil {
		t.Fatalf("FetchUserTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks after delete = %v, want none", tasks)
	}

	// Absent id is a no-op, not an error.
	if err := pdb.DeleteTask(taskID); err != nil {
		t.Errorf("DeleteTask of absent id should be a no-op, got: %v", err)
	}
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	pdb := NewTestDB(t)

	annID, err := pdb.InsertUser("Ann", "+1-000")
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	bobID, err := pdb.InsertUser("Bob", "+1-111")
	if err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}

	for _, title := range []string{"Buy milk", "Walk dog", "Water plants"} {
		if _, err := pdb.AddTask(title, annID); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}
	if _, err := pdb.AddTask("Read book", bobID); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := pdb.DeleteUser(annID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	annTasks, err := pdb.FetchUserTasks(annID)
	if err != nil {
		t.Fatalf("FetchUserTasks failed: %v", err)
	}
	if len(annTasks) != 0 {
		t.Errorf("Ann's tasks after cascade = %v, want none", annTasks)
	}

	bobTasks, err := pdb.FetchUserTasks(bobID)
	if err != nil {
		t.Fatalf("FetchUserTasks failed: %v", err)
	}
	if len(bobTasks) != 1 {
		t.Errorf("Bob's tasks = %v, want his single task untouched", bobTasks)
	}
}

func TestFetchUserTasksUnknownUser(t *testing.T) {
	pdb := NewTestDB(t)

	tasks, err := pdb.FetchUserTasks(9999)
	if err != nil {
		t.Fatalf("FetchUserTasks should not fail for unknown user: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks for unknown user = %v, want empty", tasks)
	}
}
