package yoga

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UserService reads and deletes accounts
type UserService struct {
	users        PrincipalStore
	logger       Logger
	activitySink ActivitySink
}

func NewUserService(users PrincipalStore) *UserService {
	return &UserService{
		users:        users,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	s.logger = normalizeLogger(l)
	return s
}

func (s *UserService) WithActivitySink(sink ActivitySink) *UserService {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user")
	}
	return user, nil
}

// Delete removes the account id on behalf of principal. Only the owner of
// the account, matched by username, may delete it.
func (s *UserService) Delete(ctx context.Context, principal *User, id int64) error {
	target, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if principal == nil || principal.Email != target.Email {
		s.logger.Warn("user delete rejected", "target", id)
		return ErrNotOwner
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		if IsRecordNotFound(err) {
			return ErrUserNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	recordActivity(ctx, s.activitySink, s.logger, ActivityEvent{
		EventType: ActivityEventUserDeleted,
		UserID:    target.ID,
		Username:  target.Email,
	})
	return nil
}
