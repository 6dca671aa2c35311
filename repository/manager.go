package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// Manager exposes all stores over one database
type Manager struct {
	db       *bun.DB
	users    *Users
	teachers *Teachers
	sessions *Sessions
}

func NewManager(db *bun.DB) *Manager {
	return &Manager{
		db:       db,
		users:    NewUsers(db),
		teachers: NewTeachers(db),
		sessions: NewSessions(db),
	}
}

func (m *Manager) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil || m.teachers == nil || m.sessions == nil {
		return errors.New("repositories should be initialized")
	}

	return nil
}

func (m *Manager) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *Manager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *Manager) DB() *bun.DB {
	return m.db
}

func (m *Manager) Users() *Users {
	return m.users
}

func (m *Manager) Teachers() *Teachers {
	return m.teachers
}

func (m *Manager) Sessions() *Sessions {
	return m.sessions
}

func (m *Manager) Close() error {
	return m.db.Close()
}
