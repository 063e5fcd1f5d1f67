package services

import (
	"notedesk/internal/models"
	"notedesk/internal/repositories"
)

type NoteService interface {
	Create(ownerID int, req *models.CreateNoteRequest) (*models.Note, error)
	Get(id int) (*models.Note, error)
	List(page, limit int, query string) (*models.NotePage, error)
	Update(id, ownerID int, req *models.UpdateNoteRequest) error
	Delete(id, ownerID int) error
}

type noteService struct {
	repo  repositories.NoteRepository
	users repositories.UserRepository
}

func NewNoteService(repo repositories.NoteRepository, users repositories.UserRepository) NoteService {
	return &noteService{repo: repo, users: users}
}

func (s *noteService) Create(ownerID int, req *models.CreateNoteRequest) (*models.Note, error) {
	owner, err := s.users.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	note := &models.Note{
		OwnerID: ownerID,
		Label:   req.Label,
		Content: req.Content,
	}
	if err := s.repo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Get(id int) (*models.Note, error) {
	note, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *noteService) List(page, limit int, query string) (*models.NotePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	notes, total, err := s.repo.List(query, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return &models.NotePage{Data: notes, Total: total, Page: page, Limit: limit}, nil
}

// Update is owner-checked: only the author may change a note. Empty fields
// keep their current value.
func (s *noteService) Update(id, ownerID int, req *models.UpdateNoteRequest) error {
	note, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.OwnerID != ownerID {
		return ErrNoteAccessDenied
	}

	if req.Label != "" {
		note.Label = req.Label
	}
	if req.Content != "" {
		note.Content = req.Content
	}
	return s.repo.Update(note)
}

func (s *noteService) Delete(id, ownerID int) error {
	note, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.OwnerID != ownerID {
		return ErrNoteAccessDenied
	}
	return s.repo.Delete(id)
}
