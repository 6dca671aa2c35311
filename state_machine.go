package yoga

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// MaxParticipationRetries bounds how many times a participation change is
// retried after a concurrent modification of the session.
const MaxParticipationRetries = 3

// ParticipationState is the membership of a user in a session
type ParticipationState string

const (
	StateNotParticipating ParticipationState = "not_participating"
	StateParticipating    ParticipationState = "participating"
)

// ParticipationStateMachine moves users in and out of sessions.
type ParticipationStateMachine interface {
	Participate(ctx context.Context, sessionID, userID int64) (*Session, error)
	NoLongerParticipate(ctx context.Context, sessionID, userID int64) (*Session, error)
	CurrentState(session *Session, userID int64) ParticipationState
}

// ParticipationContext is passed into hooks
type ParticipationContext struct {
	Session *Session
	UserID  int64
	From    ParticipationState
	To      ParticipationState
}

// ParticipationHook runs before the session is saved or after it was saved.
// A before hook error aborts the change.
type ParticipationHook func(ctx context.Context, pc ParticipationContext) error

// StateMachineOption customizes state machine construction.
type StateMachineOption func(*participationStateMachine)

// WithStateMachineClock injects a custom clock (useful for tests).
func WithStateMachineClock(clock func() time.Time) StateMachineOption {
	return func(sm *participationStateMachine) {
		if clock != nil {
			sm.now = clock
		}
	}
}

// WithStateMachineActivitySink sets the ActivitySink used to publish participation events.
func WithStateMachineActivitySink(sink ActivitySink) StateMachineOption {
	return func(sm *participationStateMachine) {
		sm.activitySink = normalizeActivitySink(sink)
	}
}

// WithStateMachineLogger overrides the logger used for sink failures and retries.
func WithStateMachineLogger(logger Logger) StateMachineOption {
	return func(sm *participationStateMachine) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// WithStateMachineRetries overrides MaxParticipationRetries
func WithStateMachineRetries(n int) StateMachineOption {
	return func(sm *participationStateMachine) {
		if n > 0 {
			sm.maxRetries = n
		}
	}
}

// WithBeforeParticipationHook adds a hook executed before the session is saved.
func WithBeforeParticipationHook(h ParticipationHook) StateMachineOption {
	return func(sm *participationStateMachine) {
		if h != nil {
			sm.beforeHooks = append(sm.beforeHooks, h)
		}
	}
}

// WithAfterParticipationHook adds a hook executed after the session was saved.
// After hook errors are logged, the change is already persisted.
func WithAfterParticipationHook(h ParticipationHook) StateMachineOption {
	return func(sm *participationStateMachine) {
		if h != nil {
			sm.afterHooks = append(sm.afterHooks, h)
		}
	}
}

// NewParticipationStateMachine returns the default implementation backed by
// the provided stores.
func NewParticipationStateMachine(sessions SessionStore, users PrincipalStore, opts ...StateMachineOption) ParticipationStateMachine {
	sm := &participationStateMachine{
		sessions:     sessions,
		users:        users,
		maxRetries:   MaxParticipationRetries,
		now:          time.Now,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

type participationStateMachine struct {
	sessions     SessionStore
	users        PrincipalStore
	maxRetries   int
	now          func() time.Time
	activitySink ActivitySink
	logger       Logger
	beforeHooks  []ParticipationHook
	afterHooks   []ParticipationHook
}

// Participate adds userID to the session. Checks run in order: session
// exists, user exists, user is not already a member.
func (sm *participationStateMachine) Participate(ctx context.Context, sessionID, userID int64) (*Session, error) {
	return sm.transition(ctx, sessionID, userID, StateParticipating, func(ctx context.Context, session *Session) error {
		if _, err := sm.users.FindByID(ctx, userID); err != nil {
			if IsRecordNotFound(err) {
				return ErrUserNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user")
		}
		if session.HasMember(userID) {
			return ErrAlreadyParticipating
		}
		return nil
	})
}

// NoLongerParticipate removes userID from the session. Checks run in order:
// session exists, user is a member. The user itself is not looked up.
func (sm *participationStateMachine) NoLongerParticipate(ctx context.Context, sessionID, userID int64) (*Session, error) {
	return sm.transition(ctx, sessionID, userID, StateNotParticipating, func(_ context.Context, session *Session) error {
		if !session.HasMember(userID) {
			return ErrNotParticipating
		}
		return nil
	})
}

func (sm *participationStateMachine) CurrentState(session *Session, userID int64) ParticipationState {
	if session != nil && session.HasMember(userID) {
		return StateParticipating
	}
	return StateNotParticipating
}

type participationGuard func(ctx context.Context, session *Session) error

func (sm *participationStateMachine) transition(ctx context.Context, sessionID, userID int64, target ParticipationState, guard participationGuard) (*Session, error) {
	for attempt := 1; attempt <= sm.maxRetries; attempt++ {
		stored, err := sm.sessions.FindByID(ctx, sessionID)
		if err != nil {
			if IsRecordNotFound(err) {
				return nil, ErrSessionNotFound
			}
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve session")
		}

		if err := guard(ctx, stored); err != nil {
			return nil, err
		}

		session := stored.Clone()
		pc := ParticipationContext{
			Session: session,
			UserID:  userID,
			From:    sm.CurrentState(session, userID),
			To:      target,
		}

		if target == StateParticipating {
			session.AddMember(userID)
		} else {
			session.RemoveMember(userID)
		}

		if err := sm.runHooks(ctx, sm.beforeHooks, pc); err != nil {
			return nil, err
		}

		saved, err := sm.sessions.Save(ctx, session)
		if err != nil {
			if errors.Is(err, ErrSessionConflict) {
				sm.logger.Debug("participation conflict, retrying",
					"session", sessionID, "user", userID, "attempt", attempt)
				continue
			}
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save session")
		}

		pc.Session = saved
		if err := sm.runHooks(ctx, sm.afterHooks, pc); err != nil {
			sm.logger.Warn("participation after hook error", "session", sessionID, "error", err)
		}

		sm.recordActivity(ctx, target, sessionID, userID)
		return saved, nil
	}

	sm.logger.Warn("participation gave up after retries", "session", sessionID, "user", userID, "retries", sm.maxRetries)
	return nil, ErrSessionConflict
}

func (sm *participationStateMachine) runHooks(ctx context.Context, hooks []ParticipationHook, pc ParticipationContext) error {
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, pc); err != nil {
			return err
		}
	}
	return nil
}

func (sm *participationStateMachine) recordActivity(ctx context.Context, target ParticipationState, sessionID, userID int64) {
	eventType := ActivityEventParticipationLeft
	if target == StateParticipating {
		eventType = ActivityEventParticipationJoined
	}

	recordActivity(ctx, sm.activitySink, sm.logger, ActivityEvent{
		EventType:  eventType,
		SessionID:  sessionID,
		UserID:     userID,
		OccurredAt: sm.now(),
	})
}
