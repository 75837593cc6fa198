package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	"schooltrip/internal/domain"
)

// User is an account that may sign in and invoke role-gated actions.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin matches either email or username and returns the stored hash
// alongside the profile.
func (r UserRepository) GetByLogin(login string) (User, string, error) {
	var (
		u    User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, password_hash, role, status
		FROM users
		WHERE email = ? OR username = ?
	`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "user"}
	}
	return u, hash, err
}

func (r UserRepository) Create(u *User, passwordHash string) error {
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Name, u.Username, u.Email, u.Phone, passwordHash, u.Role, u.Status)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}
