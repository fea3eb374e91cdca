package db

import (
	"fmt"

	"github.com/tinyplan/tinyplan/internal/db/driver"
	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

// Task represents a to-do item owned by exactly one user.
type Task struct {
	ID     int64
	Title  string
	UserID int64
}

// AddTask creates a task bound to the given user and returns the new id.
// The owner must exist; a missing user fails with INVALID_REFERENCE rather
// than relying on the engine's cascade behavior alone.
func (p *PlannerDB) AddTask(title string, userID int64) (int64, error) {
	if title == "" {
		return 0, planerrors.ErrInvalidArgument("title")
	}

	exists, err := p.userExists(userID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, planerrors.ErrInvalidReference("user", userID)
	}

	if p.Dialect() == driver.DialectPostgres {
		var id int64
		err := p.QueryRow(`INSERT INTO tasks (title, user_id) VALUES (?, ?) RETURNING id`, title, userID).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("add task: %w", err)
		}
		return id, nil
	}

	result, err := p.Exec(`INSERT INTO tasks (title, user_id) VALUES (?, ?)`, title, userID)
	if err != nil {
		return 0, fmt.Errorf("add task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add task id: %w", err)
	}
	return id, nil
}

// FetchUserTasks returns all tasks owned by the user, ordered by id.
// An unknown user yields an empty list, not an error.
func (p *PlannerDB) FetchUserTasks(userID int64) ([]Task, error) {
	rows, err := p.Query(`SELECT id, title, user_id FROM tasks WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks for user %d: %w", userID, err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// DeleteTask removes a task. Deleting an absent id is a no-op.
func (p *PlannerDB) DeleteTask(id int64) error {
	if _, err := p.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}
