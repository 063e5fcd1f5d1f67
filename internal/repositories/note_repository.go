package repositories

import (
	"database/sql"

	"notedesk/internal/models"
)

type NoteRepository interface {
	Create(note *models.Note) error
	GetByID(id int) (*models.Note, error)
	Update(note *models.Note) error
	Delete(id int) error

	// List returns notes filtered by a case-insensitive substring over label
	// and content, newest first, plus the total matching count for pagination.
	List(query string, limit, offset int) ([]*models.Note, int, error)
}

type noteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{DB: db}
}

func (r *noteRepository) Create(note *models.Note) error {
	const q = `
		INSERT INTO notes (owner_id, label, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q, note.OwnerID, note.Label, note.Content).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepository) GetByID(id int) (*models.Note, error) {
	const q = `
		SELECT id, owner_id, label, content, created_at, updated_at
		FROM notes
		WHERE id = $1
	`
	n := &models.Note{}
	err := r.DB.QueryRow(q, id).Scan(
		&n.ID, &n.OwnerID, &n.Label, &n.Content, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

func (r *noteRepository) Update(note *models.Note) error {
	const q = `
		UPDATE notes SET label = $1, content = $2, updated_at = NOW() WHERE id = $3
	`
	_, err := r.DB.Exec(q, note.Label, note.Content, note.ID)
	return err
}

func (r *noteRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM notes WHERE id = $1`, id)
	return err
}

func (r *noteRepository) List(query string, limit, offset int) ([]*models.Note, int, error) {
	pattern := "%" + query + "%"

	var total int
	const countQ = `
		SELECT COUNT(*) FROM notes
		WHERE label ILIKE $1 OR content ILIKE $1
	`
	if err := r.DB.QueryRow(countQ, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT id, owner_id, label, content, created_at, updated_at
		FROM notes
		WHERE label ILIKE $1 OR content ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		n := &models.Note{}
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Label, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	return notes, total, rows.Err()
}
