package service

import (
	"context"
	"sync"
	"time"

	"github.com/taskhub/backend/internal/domain"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
	// writeErr fails the next update once
	writeErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uuid.UUID]domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEntry
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := f.GetByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (f *fakeUsers) GetByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetManyByIDs(_ context.Context, ids []uuid.UUID) ([]domain.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.UserSummary
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (f *fakeUsers) update(id uuid.UUID, fn func(u *domain.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.writeErr; err != nil {
		f.writeErr = nil
		return err
	}

	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(&u)
	f.users[id] = u
	return nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return f.update(id, func(u *domain.User) { u.LastLoginAt = &at })
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeUsers) stored(email string) domain.User {
	u, _ := f.GetByEmailWithPassword(context.Background(), email)
	return *u
}

type fakeTokens struct {
	mu      sync.Mutex
	records []domain.VerificationToken
	users   *fakeUsers
}

func (f *fakeTokens) Create(_ context.Context, token *domain.VerificationToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records = append(f.records, *token)
	return nil
}

func (f *fakeTokens) GetByUserAndToken(_ context.Context, userID uuid.UUID, token string) (*domain.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.records {
		if r.UserID == userID && r.Token == token {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTokens) HasActive(_ context.Context, userID uuid.UUID, purpose domain.TokenPurpose, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.records {
		if r.UserID == userID && r.Purpose == purpose && !r.Expired(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTokens) ConsumeAndVerifyEmail(_ context.Context, tokenID, userID uuid.UUID) error {
	return f.consume(tokenID, func() error {
		return f.users.update(userID, func(u *domain.User) { u.IsEmailVerified = true })
	})
}

func (f *fakeTokens) ConsumeAndSetPassword(_ context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	return f.consume(tokenID, func() error {
		return f.users.update(userID, func(u *domain.User) { u.PasswordHash = passwordHash })
	})
}

// consume keeps the record when write fails, like a rolled back transaction.
func (f *fakeTokens) consume(id uuid.UUID, write func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.records {
		if r.ID == id {
			if err := write(); err != nil {
				return err
			}
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (f *fakeTokens) DeleteByUserAndPurpose(_ context.Context, userID uuid.UUID, purpose domain.TokenPurpose) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.UserID == userID && r.Purpose == purpose {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return n, nil
}

func (f *fakeTokens) byPurpose(userID uuid.UUID, purpose domain.TokenPurpose) []domain.VerificationToken {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.VerificationToken
	for _, r := range f.records {
		if r.UserID == userID && r.Purpose == purpose {
			out = append(out, r)
		}
	}
	return out
}

type fakeNotifier struct {
	mu           sync.Mutex
	verification []LinkEmailInput
	reset        []LinkEmailInput
	err          error
}

func (f *fakeNotifier) SendVerificationEmail(input LinkEmailInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.verification = append(f.verification, input)
	return nil
}

func (f *fakeNotifier) SendPasswordResetEmail(input LinkEmailInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.reset = append(f.reset, input)
	return nil
}

func (f *fakeNotifier) lastVerification() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verification[len(f.verification)-1].Token
}

func (f *fakeNotifier) lastReset() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reset[len(f.reset)-1].Token
}

type fakeWorkspaces struct {
	workspaces map[uuid.UUID]*domain.Workspace
}

func (f *fakeWorkspaces) Create(_ context.Context, w *domain.Workspace) error {
	if f.workspaces == nil {
		f.workspaces = map[uuid.UUID]*domain.Workspace{}
	}
	f.workspaces[w.ID] = w
	return nil
}

func (f *fakeWorkspaces) GetByID(_ context.Context, id uuid.UUID) (*domain.Workspace, error) {
	w, ok := f.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWorkspaces) ListByMember(_ context.Context, userID uuid.UUID) ([]*domain.Workspace, error) {
	var out []*domain.Workspace
	for _, w := range f.workspaces {
		if w.HasMember(userID) {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeProjects struct {
	projects map[uuid.UUID]*domain.Project
	progress map[uuid.UUID]int
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) error {
	if f.projects == nil {
		f.projects = map[uuid.UUID]*domain.Project{}
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]*domain.Project, error) {
	out := []*domain.Project{}
	for _, p := range f.projects {
		if p.WorkspaceID == workspaceID && !p.IsArchived {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) UpdateProgress(_ context.Context, id uuid.UUID, progress int) error {
	if f.progress == nil {
		f.progress = map[uuid.UUID]int{}
	}
	f.progress[id] = progress
	return nil
}

type fakeTasks struct {
	tasks []*domain.Task
}

func (f *fakeTasks) Create(_ context.Context, t *domain.Task) error {
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeTasks) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	out := []*domain.Task{}
	for _, t := range f.tasks {
		if t.ProjectID == projectID && !t.IsArchived {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
