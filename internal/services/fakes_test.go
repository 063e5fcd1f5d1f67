package services

import (
	"strings"
	"sync"
	"time"

	"notedesk/internal/models"
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeClock hands out a controllable "now" for lockout-transition tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeHasher is a transparent stand-in for bcrypt so tests can assert that
// secrets are stored hashed without paying the hashing cost.
type fakeHasher struct{}

func (fakeHasher) HashSecret(plain string) (string, error) { return "h:" + plain, nil }
func (fakeHasher) CompareSecret(plain, digest string) bool { return digest == "h:"+plain }
func (fakeHasher) HashPassword(password string) (string, error) {
	return "h:" + password, nil
}
func (fakeHasher) CheckPassword(password, hash string) error {
	if hash != "h:"+password {
		return ErrInvalidPassword
	}
	return nil
}

// fakeRecordRepo is an in-memory ThrottledRecordRepository. Reads return
// copies so services can only mutate state through UpdateReissue, and the
// conditional-update guard behaves like the SQL one.
type fakeRecordRepo struct {
	records map[string]*models.ThrottledRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]*models.ThrottledRecord{}}
}

func copyRecord(rec *models.ThrottledRecord) *models.ThrottledRecord {
	cp := *rec
	if rec.LockoutUntil != nil {
		t := *rec.LockoutUntil
		cp.LockoutUntil = &t
	}
	return &cp
}

func (f *fakeRecordRepo) FindActiveByOwner(ownerID int, kind string) (*models.ThrottledRecord, error) {
	for _, rec := range f.records {
		if rec.OwnerID == ownerID && rec.Kind == kind {
			return copyRecord(rec), nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) FindByID(id string) (*models.ThrottledRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (f *fakeRecordRepo) Create(rec *models.ThrottledRecord) error {
	f.records[rec.ID] = copyRecord(rec)
	return nil
}

func (f *fakeRecordRepo) UpdateReissue(id string, prevAttempts int, secretHash string, expiresAt time.Time, attempts int, lockoutUntil *time.Time) (bool, error) {
	rec, ok := f.records[id]
	if !ok || rec.AttemptCount != prevAttempts {
		return false, nil
	}
	rec.SecretHash = secretHash
	rec.ExpiresAt = expiresAt
	rec.AttemptCount = attempts
	rec.LockoutUntil = lockoutUntil
	return true, nil
}

func (f *fakeRecordRepo) DeleteByOwner(ownerID int, kind string) error {
	for id, rec := range f.records {
		if rec.OwnerID == ownerID && rec.Kind == kind {
			delete(f.records, id)
		}
	}
	return nil
}

// fakeUserRepo covers the UserRepository surface the services touch.
type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]*models.User{}}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	if u, ok := f.users[user.ID]; ok {
		u.Username = user.Username
		u.Email = user.Email
	}
	return nil
}

func (f *fakeUserRepo) Delete(id int) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) GetCount() (int, error) { return len(f.users), nil }

func (f *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) MarkVerified(userID int) error {
	if u, ok := f.users[userID]; ok {
		u.IsVerified = true
	}
	return nil
}

// fakeEmailService records sends; safe for the fire-and-forget goroutines.
type fakeEmailService struct {
	mu    sync.Mutex
	codes []string
	links []string
}

func (f *fakeEmailService) SendWelcomeEmail(email, username string) error { return nil }

func (f *fakeEmailService) SendVerificationCode(email, username, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeEmailService) SendPasswordResetEmail(email, username, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, link)
	return nil
}

func (f *fakeEmailService) sentCodes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.codes)
}

// fakeNoteRepo is an in-memory NoteRepository.
type fakeNoteRepo struct {
	nextID int
	notes  map[int]*models.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{nextID: 1, notes: map[int]*models.Note{}}
}

func (f *fakeNoteRepo) Create(note *models.Note) error {
	note.ID = f.nextID
	f.nextID++
	cp := *note
	f.notes[note.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) GetByID(id int) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoteRepo) Update(note *models.Note) error {
	if n, ok := f.notes[note.ID]; ok {
		n.Label = note.Label
		n.Content = note.Content
	}
	return nil
}

func (f *fakeNoteRepo) Delete(id int) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteRepo) List(query string, limit, offset int) ([]*models.Note, int, error) {
	var matched []*models.Note
	for _, n := range f.notes {
		if query == "" || containsFold(n.Label, query) || containsFold(n.Content, query) {
			cp := *n
			matched = append(matched, &cp)
		}
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}
