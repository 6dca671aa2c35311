package yoga_test

import (
	"context"
	"sort"
	"sync"

	"github.com/goliatone/go-yoga"
)

// memoryStore backs the store interfaces with maps. Session saves follow
// the same optimistic version check as the SQL store.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*yoga.User
	teachers map[int64]*yoga.Teacher
	sessions map[int64]*yoga.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[int64]*yoga.User{},
		teachers: map[int64]*yoga.Teacher{},
		sessions: map[int64]*yoga.Session{},
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) Users() *memoryUsers       { return &memoryUsers{m} }
func (m *memoryStore) Teachers() *memoryTeachers { return &memoryTeachers{m} }
func (m *memoryStore) Sessions() *memorySessions { return &memorySessions{m} }

func (m *memoryStore) addTeacher(first, last string) *yoga.Teacher {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &yoga.Teacher{ID: m.id(), FirstName: first, LastName: last}
	m.teachers[t.ID] = t
	cp := *t
	return &cp
}

type memoryUsers struct{ *memoryStore }

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*yoga.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, yoga.ErrRecordNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id int64) (*yoga.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, yoga.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) Save(_ context.Context, user *yoga.User) (*yoga.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email && u.ID != user.ID {
			return nil, yoga.ErrUsernameTaken
		}
	}
	cp := *user
	if cp.ID == 0 {
		cp.ID = m.id()
	}
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memoryUsers) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return yoga.ErrRecordNotFound
	}
	delete(m.users, id)
	for _, s := range m.sessions {
		s.RemoveMember(id)
	}
	return nil
}

func (m *memoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	if yoga.IsRecordNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

type memoryTeachers struct{ *memoryStore }

func (m *memoryTeachers) FindByID(_ context.Context, id int64) (*yoga.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teachers[id]
	if !ok {
		return nil, yoga.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memoryTeachers) FindAll(_ context.Context) ([]*yoga.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*yoga.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memorySessions struct{ *memoryStore }

func (m *memorySessions) FindByID(_ context.Context, id int64) (*yoga.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, yoga.ErrRecordNotFound
	}
	return s.Clone(), nil
}

func (m *memorySessions) Save(_ context.Context, session *yoga.Session) (*yoga.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := session.Clone()
	if cp.ID == 0 {
		cp.ID = m.id()
		cp.Version = 0
		m.sessions[cp.ID] = cp
		return cp.Clone(), nil
	}
	stored, ok := m.sessions[cp.ID]
	if !ok {
		return nil, yoga.ErrRecordNotFound
	}
	if stored.Version != cp.Version {
		return nil, yoga.ErrSessionConflict
	}
	cp.Version++
	m.sessions[cp.ID] = cp
	return cp.Clone(), nil
}

func (m *memorySessions) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return yoga.ErrRecordNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) FindAll(_ context.Context) ([]*yoga.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*yoga.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
