package db

import (
	"context"
	"fmt"
)

// Snapshot is a full copy of the database contents, suitable for YAML
// serialization by the export/import commands. Row ids are preserved so
// task ownership and memberships survive a round trip.
type Snapshot struct {
	Users       []UserRecord       `yaml:"users"`
	Tasks       []TaskRecord       `yaml:"tasks"`
	Projects    []ProjectRecord    `yaml:"projects"`
	Memberships []MembershipRecord `yaml:"memberships"`
}

// UserRecord is the serialized form of a User row.
type UserRecord struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

// TaskRecord is the serialized form of a Task row.
type TaskRecord struct {
	ID     int64  `yaml:"id"`
	Title  string `yaml:"title"`
	UserID int64  `yaml:"user_id"`
}

// ProjectRecord is the serialized form of a Project row.
type ProjectRecord struct {
	ID    int64  `yaml:"id"`
	Title string `yaml:"title"`
}

// MembershipRecord is the serialized form of a user_projects row.
type MembershipRecord struct {
	UserID    int64 `yaml:"user_id"`
	ProjectID int64 `yaml:"project_id"`
}

// Export reads the full database contents in id order.
func (p *PlannerDB) Export() (*Snapshot, error) {
	snap := &Snapshot{}

	users, err := p.FetchUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		snap.Users = append(snap.Users, UserRecord{ID: u.ID, Name: u.Name, Phone: u.Phone})
	}

	projects, err := p.FetchProjects()
	if err != nil {
		return nil, err
	}
	for _, pr := range projects {
		snap.Projects = append(snap.Projects, ProjectRecord{ID: pr.ID, Title: pr.Title})
	}

	rows, err := p.Query(`SELECT id, title, user_id FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t TaskRecord
		if err := rows.Scan(&t.ID, &t.Title, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		snap.Tasks = append(snap.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	mrows, err := p.Query(`SELECT user_id, project_id FROM user_projects ORDER BY user_id, project_id`)
	if err != nil {
		return nil, fmt.Errorf("export memberships: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m MembershipRecord
		if err := mrows.Scan(&m.UserID, &m.ProjectID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		snap.Memberships = append(snap.Memberships, m)
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	return snap, nil
}

// Import replaces the database contents with the snapshot, preserving ids.
// The whole restore runs in one transaction: a malformed snapshot leaves the
// existing data untouched.
func (p *PlannerDB) Import(ctx context.Context, snap *Snapshot) error {
	return p.RunInTx(ctx, func(tx *TxOps) error {
		// Children first so FK checks stay satisfied during the wipe.
		for _, table := range []string{"user_projects", "tasks", "projects", "users"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, u := range snap.Users {
			if _, err := tx.Exec(`INSERT INTO users (id, name, phone) VALUES (?, ?, ?)`, u.ID, u.Name, u.Phone); err != nil {
				return fmt.Errorf("import user %d: %w", u.ID, err)
			}
		}
		for _, pr := range snap.Projects {
			if _, err := tx.Exec(`INSERT INTO projects (id, title) VALUES (?, ?)`, pr.ID, pr.Title); err != nil {
				return fmt.Errorf("import project %d: %w", pr.ID, err)
			}
		}
		for _, t := range snap.Tasks {
			if _, err := tx.Exec(`INSERT INTO tasks (id, title, user_id) VALUES (?, ?, ?)`, t.ID, t.Title, t.UserID); err != nil {
				return fmt.Errorf("import task %d: %w", t.ID, err)
			}
		}
		for _, m := range snap.Memberships {
			if _, err := tx.Exec(`INSERT INTO user_projects (user_id, project_id) VALUES (?, ?)`, m.UserID, m.ProjectID); err != nil {
				return fmt.Errorf("import membership (%d,%d): %w", m.UserID, m.ProjectID, err)
			}
		}

		return nil
	})
}
