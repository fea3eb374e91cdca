package db

import (
	"database/sql"
	"fmt"

	"github.com/tinyplan/tinyplan/internal/db/driver"
	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

// User represents a person tracked by tinyplan.
type User struct {
	ID    int64
	Name  string
	Phone string
}

// InsertUser creates a user and returns the new id.
// The phone number must be unique across all live users.
func (p *PlannerDB) InsertUser(name, phone string) (int64, error) {
	if name == "" {
		return 0, planerrors.ErrInvalidArgument("name")
	}
	if phone == "" {
		return 0, planerrors.ErrInvalidArgument("phone")
	}

	taken, err := p.phoneTaken(phone, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, planerrors.ErrDuplicatePhone(phone)
	}

	if p.Dialect() == driver.DialectPostgres {
		var id int64
		err := p.QueryRow(`INSERT INTO users (name, phone) VALUES (?, ?) RETURNING id`, name, phone).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert user: %w", err)
		}
		return id, nil
	}

	result, err := p.Exec(`INSERT INTO users (name, phone) VALUES (?, ?)`, name, phone)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert user id: %w", err)
	}
	return id, nil
}

// UpdateUser changes a user's name and phone.
// Fails with NOT_FOUND when the id does not exist, and with DUPLICATE_PHONE
// when another user already holds the phone number.
func (p *PlannerDB) UpdateUser(id int64, name, phone string) error {
	if name == "" {
		return planerrors.ErrInvalidArgument("name")
	}
	if phone == "" {
		return planerrors.ErrInvalidArgument("phone")
	}

	exists, err := p.userExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return planerrors.ErrNotFound("user", id)
	}

	taken, err := p.phoneTaken(phone, id)
	if err != nil {
		return err
	}
	if taken {
		return planerrors.ErrDuplicatePhone(phone)
	}

	if _, err := p.Exec(`UPDATE users SET name = ?, phone = ? WHERE id = ?`, name, phone, id); err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

// DeleteUser removes a user. The FK cascade removes the user's tasks and
// project memberships in the same statement. Deleting an absent id is a no-op.
func (p *PlannerDB) DeleteUser(id int64) error {
	if _, err := p.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// GetUser retrieves a user by id. Returns nil when the user does not exist.
func (p *PlannerDB) GetUser(id int64) (*User, error) {
	row := p.QueryRow(`SELECT id, name, phone FROM users WHERE id = ?`, id)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Phone); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// FetchUsers returns all users ordered by id.
func (p *PlannerDB) FetchUsers() ([]User, error) {
	rows, err := p.Query(`SELECT id, name, phone FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
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

// phoneTaken reports whether a user other than excludeID holds the phone.
func (p *PlannerDB) phoneTaken(phone string, excludeID int64) (bool, error) {
	var count int
	err := p.QueryRow(`SELECT COUNT(*) FROM users WHERE phone = ? AND id != ?`, phone, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check phone: %w", err)
	}
	return count > 0, nil
}

// userExists reports whether a user row with the given id is live.
func (p *PlannerDB) userExists(id int64) (bool, error) {
	var count int
	err := p.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", id, err)
	}
	return count > 0, nil
}
