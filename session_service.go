package yoga

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// SessionService handles session CRUD
type SessionService struct {
	sessions SessionStore
	teachers TeacherStore
	users    PrincipalStore
	logger   Logger
}

// NewSessionService returns a SessionService
func NewSessionService(sessions SessionStore, teachers TeacherStore, users PrincipalStore) *SessionService {
	return &SessionService{
		sessions: sessions,
		teachers: teachers,
		users:    users,
		logger:   defLogger{},
	}
}

func (s *SessionService) WithLogger(l Logger) *SessionService {
	s.logger = normalizeLogger(l)
	return s
}

func (s *SessionService) FindAll(ctx context.Context) ([]*Session, error) {
	sessions, err := s.sessions.FindAll(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list sessions")
	}
	return sessions, nil
}

func (s *SessionService) FindByID(ctx context.Context, id int64) (*Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve session")
	}
	return session, nil
}

// Create stores a new session. The teacher and every listed member must exist.
func (s *SessionService) Create(ctx context.Context, session *Session) (*Session, error) {
	if err := s.checkReferences(ctx, session); err != nil {
		return nil, err
	}

	session.ID = 0
	session.Version = 0
	session.SetMembers(session.Members)

	created, err := s.sessions.Save(ctx, session)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create session")
	}

	s.logger.Info("session created", "session", created.ID, "teacher", created.TeacherID)
	return created, nil
}

// Update replaces the session stored under id
func (s *SessionService) Update(ctx context.Context, id int64, session *Session) (*Session, error) {
	stored, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, session); err != nil {
		return nil, err
	}

	session.ID = stored.ID
	session.Version = stored.Version
	session.CreatedAt = stored.CreatedAt
	session.SetMembers(session.Members)

	updated, err := s.sessions.Save(ctx, session)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryConflict {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update session")
	}
	return updated, nil
}

// Delete removes the session and its participants
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.sessions.DeleteByID(ctx, id); err != nil {
		if IsRecordNotFound(err) {
			return ErrSessionNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete session")
	}

	s.logger.Info("session deleted", "session", id)
	return nil
}

func (s *SessionService) checkReferences(ctx context.Context, session *Session) error {
	if _, err := s.teachers.FindByID(ctx, session.TeacherID); err != nil {
		if IsRecordNotFound(err) {
			return ErrTeacherNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve teacher")
	}

	for _, userID := range session.Members {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if IsRecordNotFound(err) {
				return ErrUserNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user")
		}
	}
	return nil
}
