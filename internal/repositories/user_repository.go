package repositories

import (
	"database/sql"

	"notedesk/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)

	// credential helpers
	UpdatePassword(userID int, passwordHash string) error
	MarkVerified(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, username, email, password_hash,
	is_verified, verified_at, created_at, updated_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (username, email, password_hash, is_verified, verified_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsVerified,
		user.VerifiedAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		isVerified sql.NullBool
		verifiedAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&isVerified, &verifiedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if isVerified.Valid {
		u.IsVerified = isVerified.Bool
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	return u, nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.DB.QueryRow(q, email))
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.DB.QueryRow(q, username))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET username = $1, email = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.DB.Exec(q, user.Username, user.Email, user.ID)
	return err
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		var (
			isVerified sql.NullBool
			verifiedAt sql.NullTime
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&isVerified, &verifiedAt, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if isVerified.Valid {
			u.IsVerified = isVerified.Bool
		}
		if verifiedAt.Valid {
			t := verifiedAt.Time
			u.VerifiedAt = &t
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`
	_, err := r.DB.Exec(q, passwordHash, userID)
	return err
}

func (r *userRepository) MarkVerified(userID int) error {
	const q = `
		UPDATE users SET is_verified = TRUE, verified_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, userID)
	return err
}
