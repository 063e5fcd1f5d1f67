package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"notedesk/internal/models"
)

func newTestNoteService(t *testing.T) (NoteService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	require.NoError(t, users.Create(&models.User{Username: "alice", Email: "alice@example.com"}))
	require.NoError(t, users.Create(&models.User{Username: "bob", Email: "bob@example.com"}))
	return NewNoteService(newFakeNoteRepo(), users), users
}

func TestNoteCreate(t *testing.T) {
	svc, _ := newTestNoteService(t)

	note, err := svc.Create(1, &models.CreateNoteRequest{Label: "todo", Content: "buy milk"})
	require.NoError(t, err)
	require.Equal(t, 1, note.OwnerID)
	require.NotZero(t, note.ID)

	_, err = svc.Create(99, &models.CreateNoteRequest{Label: "x", Content: "y"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestNoteGet(t *testing.T) {
	svc, _ := newTestNoteService(t)

	_, err := svc.Get(404)
	require.ErrorIs(t, err, ErrNoteNotFound)

	created, err := svc.Create(1, &models.CreateNoteRequest{Label: "todo", Content: "buy milk"})
	require.NoError(t, err)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "todo", got.Label)
}

func TestNoteListSearchAndPagination(t *testing.T) {
	svc, _ := newTestNoteService(t)

	for _, label := range []string{"groceries", "work log", "grocery run"} {
		_, err := svc.Create(1, &models.CreateNoteRequest{Label: label, Content: "content"})
		require.NoError(t, err)
	}

	page, err := svc.List(1, 10, "grocer")
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.Len(t, page.Data, 2)

	page, err = svc.List(2, 2, "")
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Data, 1)
	require.Equal(t, 2, page.Page)

	// out-of-range page collapses to defaults, not an error
	page, err = svc.List(0, 0, "")
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 10, page.Limit)
}

func TestNoteUpdateOwnership(t *testing.T) {
	svc, _ := newTestNoteService(t)

	note, err := svc.Create(1, &models.CreateNoteRequest{Label: "todo", Content: "buy milk"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update(note.ID, 2, &models.UpdateNoteRequest{Label: "hacked"}), ErrNoteAccessDenied)
	require.ErrorIs(t, svc.Update(404, 1, &models.UpdateNoteRequest{Label: "x"}), ErrNoteNotFound)

	require.NoError(t, svc.Update(note.ID, 1, &models.UpdateNoteRequest{Label: "done"}))
	got, err := svc.Get(note.ID)
	require.NoError(t, err)
	require.Equal(t, "done", got.Label)
	require.Equal(t, "buy milk", got.Content, "empty fields keep their value")
}

func TestNoteDeleteOwnership(t *testing.T) {
	svc, _ := newTestNoteService(t)

	note, err := svc.Create(1, &models.CreateNoteRequest{Label: "todo", Content: "buy milk"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(note.ID, 2), ErrNoteAccessDenied)
	require.NoError(t, svc.Delete(note.ID, 1))
	require.ErrorIs(t, svc.Delete(note.ID, 1), ErrNoteNotFound)
}
