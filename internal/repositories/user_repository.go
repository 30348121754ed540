package repositories

import (
	"database/sql"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
)

// UserRepository backs the account service with the users table.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) EnsureSchema() error {
	ddl := `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := r.DB.Exec(ddl)
	return err
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, phone, password_hash)
		VALUES (?,?,?,?)`,
		u.Name, u.Email, u.Phone, u.PasswordHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?`, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?`, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
