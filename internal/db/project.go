package db

import (
	"fmt"

	"github.com/tinyplan/tinyplan/internal/db/driver"
	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

// Project represents a shared collaborative effort. Projects have no owner;
// users participate through the user_projects membership relation.
type Project struct {
	ID    int64
	Title string
}

// AddProject creates a project and returns the new id.
func (p *PlannerDB) AddProject(title string) (int64, error) {
	if title == "" {
		return 0, planerrors.ErrInvalidArgument("title")
	}

	if p.Dialect() == driver.DialectPostgres {
		var id int64
		err := p.QueryRow(`INSERT INTO projects (title) VALUES (?) RETURNING id`, title).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("add project: %w", err)
		}
		return id, nil
	}

	result, err := p.Exec(`INSERT INTO projects (title) VALUES (?)`, title)
	if err != nil {
		return 0, fmt.Errorf("add project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add project id: %w", err)
	}
	return id, nil
}

// FetchProjects returns all projects ordered by id.
func (p *PlannerDB) FetchProjects() ([]Project, error) {
	rows, err := p.Query(`SELECT id, title FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var pr Project
		if err := rows.Scan(&pr.ID, &pr.Title); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// DeleteProject removes a project. The FK cascade removes its memberships.
// Deleting an absent id is a no-op.
func (p *PlannerDB) DeleteProject(id int64) error {
	if _, err := p.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}

// AddUserToProject records that the user participates in the project.
// Both rows must exist; adding an existing membership is a silent no-op.
func (p *PlannerDB) AddUserToProject(userID, projectID int64) error {
	exists, err := p.userExists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return planerrors.ErrInvalidReference("user", userID)
	}

	exists, err = p.projectExists(projectID)
	if err != nil {
		return err
	}
	if !exists {
		return planerrors.ErrInvalidReference("project", projectID)
	}

	var query string
	if p.Dialect() == driver.DialectSQLite {
		query = `INSERT OR IGNORE INTO user_projects (user_id, project_id) VALUES (?, ?)`
	} else {
		query = `INSERT INTO user_projects (user_id, project_id) VALUES (?, ?) ON CONFLICT DO NOTHING`
	}
	if _, err := p.Exec(query, userID, projectID); err != nil {
		return fmt.Errorf("add user %d to project %d: %w", userID, projectID, err)
	}
	return nil
}

// projectExists reports whether a project row with the given id is live.
func (p *PlannerDB) projectExists(id int64) (bool, error) {
	var count int
	err := p.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check project %d: %w", id, err)
	}
	return count > 0, nil
}
