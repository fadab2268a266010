package workspace

import (
	"context"
	"errors"
	"hotelops/infras/gateway"
	sessionStore "hotelops/internal/domains/session/store"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Registry keeps one workspace per gateway session. A workspace lives from login
// (or the first request of a resumed session) until logout or until it sits idle
// longer than the configured limit.
type Registry struct {
	mu         sync.Mutex
	deps       Deps
	maxIdle    time.Duration
	workspaces map[string]*Workspace
}

func NewRegistry(deps Deps) *Registry {
	if deps.Clock == nil {
		deps.Clock = timezone.Now
	}

	return &Registry{
		deps:       deps,
		maxIdle:    time.Duration(deps.Config.Session.MaxIdleHours) * time.Hour,
		workspaces: map[string]*Workspace{},
	}
}

// Open returns the workspace of the session behind accessToken, creating it for a
// session that was signed in before this process started.
func (r *Registry) Open(ctx context.Context, accessToken string) (*Workspace, error) {
	session, err := r.deps.Gateway.GetSession(ctx, accessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve session")

		return nil, failure.Internal(sessionStore.MessageInitializeFailed, err) // nolint:wrapcheck
	}

	if session == nil {
		return nil, failure.SessionExpired
	}

	now := r.deps.Clock()
	r.Prune(now)

	if ws, ok := r.Get(session.ID); ok {
		ws.Session.RefreshTokens(session)
		ws.touch(now)

		return ws, nil
	}

	ws := New(r.deps)
	if err = ws.Session.Resume(ctx, session); err != nil {
		return nil, err
	}

	return r.put(session.ID, ws, now), nil
}

// Login signs in and registers a fresh workspace for the new session.
func (r *Registry) Login(ctx context.Context, email, password string) (*Workspace, error) {
	ws := New(r.deps)

	if err := ws.Session.Login(ctx, email, password); err != nil {
		return nil, err
	}

	session := ws.Session.Snapshot().Session

	return r.put(session.ID, ws, r.deps.Clock()), nil
}

// Logout signs the workspace out and forgets it. A failed sign-out keeps it registered.
func (r *Registry) Logout(ctx context.Context, ws *Workspace) error {
	session := ws.Session.Snapshot().Session

	if err := ws.Session.Logout(ctx); err != nil {
		return err
	}

	if session != nil {
		r.remove(session.ID)
	}

	return nil
}

// Refresh rotates the tokens of a session and hands them to its workspace, if any.
func (r *Registry) Refresh(ctx context.Context, refreshToken string) (*gateway.Session, error) {
	session, err := r.deps.Gateway.RefreshSession(ctx, refreshToken)
	if errors.Is(err, gateway.ErrInvalidCredentials) {
		return nil, failure.SessionExpired
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to refresh session")

		return nil, failure.Internal(sessionStore.MessageInitializeFailed, err) // nolint:wrapcheck
	}

	if ws, ok := r.Get(session.ID); ok {
		ws.Session.RefreshTokens(session)
		ws.touch(r.deps.Clock())
	}

	return session, nil
}

func (r *Registry) Get(sessionID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.workspaces[sessionID]

	return ws, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.workspaces)
}

// Prune drops workspaces idle for longer than the limit and returns how many went.
func (r *Registry) Prune(now time.Time) int {
	if r.maxIdle <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0

	for id, ws := range r.workspaces {
		if ws.idleSince(now) > r.maxIdle {
			delete(r.workspaces, id)
			pruned++
		}
	}

	if pruned > 0 {
		log.Debug().Int("count", pruned).Msg("pruned idle workspaces")
	}

	return pruned
}

// put registers ws unless another request registered the same session first.
func (r *Registry) put(sessionID string, ws *Workspace, now time.Time) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.workspaces[sessionID]; ok && sessionID != constant.Empty {
		existing.touch(now)

		return existing
	}

	ws.touch(now)
	r.workspaces[sessionID] = ws

	return ws
}

func (r *Registry) remove(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.workspaces, sessionID)
}

// WithContext stores ws in ctx for the handlers of one request.
func WithContext(ctx context.Context, ws *Workspace) context.Context {
	return context.WithValue(ctx, constant.ContextKeyWorkspace, ws)
}

func FromContext(ctx context.Context) (*Workspace, bool) {
	ws, ok := ctx.Value(constant.ContextKeyWorkspace).(*Workspace)

	return ws, ok && ws != nil
}

// Require is FromContext for handlers behind the auth middleware.
func Require(ctx context.Context) (*Workspace, error) {
	ws, ok := FromContext(ctx)
	if !ok {
		return nil, failure.SessionExpired
	}

	return ws, nil
}
