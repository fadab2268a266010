// Package store holds the signed-in operator of one workspace.
package store

import (
	"context"
	"errors"
	"hotelops/infras/gateway"
	"hotelops/infras/otel"
	userModel "hotelops/internal/domains/user/model"
	"hotelops/shared/constant"
	"hotelops/shared/dto"
	"hotelops/shared/failure"
	"sync"

	"github.com/rs/zerolog/log"
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

const (
	MessageInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	MessageProfileFetchFailed = "Failed to fetch user profile. Please contact support."
	MessageProfileNotFound    = "User profile not found. Please contact support."
	MessageLoginFailed        = "Failed to login. Please try again later."
	MessageInitializeFailed   = "Failed to initialize authentication"
	MessageLogoutFailed       = "Failed to logout"
)

var (
	errProfileNotFound = failure.Unauthorized(MessageProfileNotFound)
	errInvalidLogin    = failure.Unauthorized(MessageInvalidCredentials)
)

// Snapshot is a copy of the store state.
type Snapshot struct {
	State   State
	Session *gateway.Session
	User    *userModel.User
	Loading bool
	Error   string
}

// Authenticated reports whether the snapshot carries both a session and a profile.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.Session != nil && s.User != nil
}

type Store struct {
	mu      sync.RWMutex
	gateway gateway.Gateway
	otel    otel.Otel

	state   State
	session *gateway.Session
	user    *userModel.User
	loading bool
	err     string
}

func New(gw gateway.Gateway, ot otel.Otel) *Store {
	return &Store{
		gateway: gw,
		otel:    ot,
		state:   StateUninitialized,
	}
}

// Initialize resolves an existing gateway session. Any failure leaves the store anonymous.
func (s *Store) Initialize(ctx context.Context, accessToken string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".session.Initialize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	s.state = StateInitializing
	s.loading = true
	s.mu.Unlock()

	session, err := s.gateway.GetSession(ctx, accessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve session")
		s.settle(StateAnonymous, nil, nil, MessageInitializeFailed)

		return failure.InternalErrorFromString(MessageInitializeFailed) // nolint:wrapcheck
	}

	if session == nil {
		s.settle(StateAnonymous, nil, nil, "")

		return nil
	}

	return s.resume(ctx, session)
}

// Resume loads the operator profile of a session that was resolved elsewhere.
func (s *Store) Resume(ctx context.Context, session *gateway.Session) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".session.Resume")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	s.state = StateInitializing
	s.loading = true
	s.mu.Unlock()

	return s.resume(ctx, session)
}

func (s *Store) resume(ctx context.Context, session *gateway.Session) error {
	user, err := s.fetchProfile(ctx, session.UserID)
	if err != nil {
		s.settle(StateAnonymous, nil, nil, MessageInitializeFailed)

		return failure.Unauthorized(MessageInitializeFailed) // nolint:wrapcheck
	}

	s.settle(StateAuthenticated, session, user, "")

	return nil
}

// Login exchanges credentials for a session and loads the operator profile.
// A session without a profile is signed out again and the store stays anonymous.
func (s *Store) Login(ctx context.Context, email, password string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".session.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	session, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			s.settle(StateAnonymous, nil, nil, MessageInvalidCredentials)

			return errInvalidLogin
		}

		log.Error().Err(err).Msg("failed to sign in")
		s.settle(StateAnonymous, nil, nil, MessageLoginFailed)

		return failure.InternalErrorFromString(MessageLoginFailed) // nolint:wrapcheck
	}

	user, err := s.fetchProfile(ctx, session.UserID)
	if err != nil {
		if signOutErr := s.gateway.SignOut(context.WithoutCancel(ctx), session); signOutErr != nil {
			log.Warn().Err(signOutErr).Msg("failed to revoke session without profile")
		}

		s.settle(StateAnonymous, nil, nil, failure.Message(err, MessageLoginFailed))

		return err
	}

	s.settle(StateAuthenticated, session, user, "")

	return nil
}

// Logout ends the gateway session. On failure the store keeps its state and records the message.
func (s *Store) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".session.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	s.loading = true
	session := s.session
	s.mu.Unlock()

	if err = s.gateway.SignOut(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to sign out")

		s.mu.Lock()
		s.loading = false
		s.err = MessageLogoutFailed
		s.mu.Unlock()

		return failure.InternalErrorFromString(MessageLogoutFailed) // nolint:wrapcheck
	}

	s.settle(StateAnonymous, nil, nil, "")

	return nil
}

// Restore marks the store authenticated with an already resolved session and profile.
func (s *Store) Restore(session *gateway.Session, user *userModel.User) {
	s.settle(StateAuthenticated, session, user, "")
}

// RefreshTokens swaps the tokens of the current session.
func (s *Store) RefreshTokens(session *gateway.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || session == nil || s.session.ID != session.ID {
		return
	}

	refreshed := *session
	s.session = &refreshed
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		State:   s.state,
		Loading: s.loading,
		Error:   s.err,
	}

	if s.session != nil {
		session := *s.session
		snap.Session = &session
	}

	if s.user != nil {
		user := *s.user
		snap.User = &user
	}

	return snap
}

func (s *Store) fetchProfile(ctx context.Context, authID string) (*userModel.User, error) {
	var users []userModel.User

	err := s.gateway.Select(ctx, userModel.TableName,
		dto.And(dto.Eq(userModel.FieldAuthID, authID)),
		dto.QueryParams{Limit: 1},
		&users,
	)
	if err != nil {
		log.Error().Err(err).Str("auth_id", authID).Msg("failed to fetch user profile")

		return nil, failure.Internal(MessageProfileFetchFailed, err) // nolint:wrapcheck
	}

	if len(users) == 0 {
		log.Warn().Str("auth_id", authID).Msg("session has no user profile")

		return nil, errProfileNotFound
	}

	return &users[0], nil
}

func (s *Store) settle(state State, session *gateway.Session, user *userModel.User, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.session = session
	s.user = user
	s.loading = false
	s.err = message
}
