package db

import "fmt"

// Composed read operations that join across tables. These never fail on
// absent ids; an unknown user or project simply yields an empty list.

// FetchUserProjects returns all projects the user participates in, ordered by id.
func (p *PlannerDB) FetchUserProjects(userID int64) ([]Project, error) {
	rows, err := p.Query(`
		SELECT p.id, p.title FROM projects p
		JOIN user_projects up ON p.id = up.project_id
		WHERE up.user_id = ?
		ORDER BY p.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch projects for user %d: %w", userID, err)
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

// FetchProjectUsers returns all users participating in the project, ordered by id.
func (p *PlannerDB) FetchProjectUsers(projectID int64) ([]User, error) {
	rows, err := p.Query(`
		SELECT u.id, u.name, u.phone FROM users u
		JOIN user_projects up ON u.id = up.user_id
		WHERE up.project_id = ?
		ORDER BY u.id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch users for project %d: %w", projectID, err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// CountProjectMembers returns the number of memberships for a project.
func (p *PlannerDB) CountProjectMembers(projectID int64) (int, error) {
	var count int
	err := p.QueryRow(`SELECT COUNT(*) FROM user_projects WHERE project_id = ?`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members of project %d: %w", projectID, err)
	}
	return count, nil
}
