package auth

import (
	"context"

	autherrors "github.com/apper-canvas/staffsync-program-correct/internal/auth/errors"
	"github.com/apper-canvas/staffsync-program-correct/internal/employee"
	"github.com/apper-canvas/staffsync-program-correct/internal/session"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"
	"github.com/apper-canvas/staffsync-program-correct/internal/workspace"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	HandleCallback(ctx context.Context, sessionID string, req CallbackRequest) (CallbackResult, error)
	Fail(ctx context.Context, sessionID string, message string) NextResponse
	Logout(ctx context.Context, sessionID string) NextResponse
	Me(ctx context.Context, sessionID string) (MeResponse, error)
}

// Workspaces is the part of the workspace registry the auth flow needs.
type Workspaces interface {
	Open() *workspace.Workspace
	Get(id string) (*workspace.Workspace, error)
	Close(id string)
}

type service struct {
	verifier   TokenVerifier
	workspaces Workspaces
	pageSize   int
	logger     *zap.Logger
}

// NewService wires the auth callback. pageSize is the size of the employee
// page fetched as soon as a user signs in.
func NewService(verifier TokenVerifier, workspaces Workspaces, pageSize int, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		verifier:   verifier,
		workspaces: workspaces,
		pageSize:   pageSize,
		logger:     l,
	}
}

func (s *service) HandleCallback(ctx context.Context, sessionID string, req CallbackRequest) (CallbackResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if req.Token == nil {
		if sessionID != "" {
			s.workspaces.Close(sessionID)
		}
		return CallbackResult{Next: session.ResolveNext(req.CurrentPath, false)}, nil
	}

	user, err := s.verifier.Verify(*req.Token)
	if err != nil {
		log.Warn("auth callback rejected", zap.Error(err))
		if sessionID != "" {
			s.workspaces.Close(sessionID)
		}
		return CallbackResult{}, err
	}

	ws, err := s.workspaces.Get(sessionID)
	if err != nil {
		ws = s.workspaces.Open()
	}
	if err := ws.Session.SetUser(user); err != nil {
		s.workspaces.Close(ws.ID)
		return CallbackResult{}, apperror.Wrap(err, autherrors.ErrMissingUser.Code, autherrors.ErrMissingUser.Message, autherrors.ErrMissingUser.HTTPStatus)
	}

	s.prefetch(ctx, ws, user.ID())

	log.Info("user signed in", zap.String("session_id", ws.ID), zap.String("user_id", user.ID()))
	return CallbackResult{
		SessionID: ws.ID,
		Next:      session.ResolveNext(req.CurrentPath, true),
	}, nil
}

// prefetch loads the first employee page in the background. It runs under
// the workspace context so it stops when the session ends, not when the
// callback request returns.
func (s *service) prefetch(ctx context.Context, ws *workspace.Workspace, userID string) {
	fetchCtx := contextutil.WithRequestID(ws.Context(), contextutil.GetRequestID(ctx))
	fetchCtx = contextutil.WithUserID(fetchCtx, userID)

	go func() {
		if _, err := ws.Employees.FetchEmployees(fetchCtx, employee.ListOptions{Limit: s.pageSize}); err != nil {
			s.logger.Debug("initial employee fetch failed", zap.String("session_id", ws.ID), zap.Error(err))
		}
	}()
}

// Fail ends the session after the provider reported an authentication
// failure and points the browser at the error page.
func (s *service) Fail(ctx context.Context, sessionID string, message string) NextResponse {
	if sessionID != "" {
		s.workspaces.Close(sessionID)
		contextutil.GetLogger(ctx, s.logger).Warn("auth provider failure", zap.String("session_id", sessionID), zap.String("message", message))
	}
	return NextResponse{Next: session.ErrorPath(message)}
}

func (s *service) Logout(ctx context.Context, sessionID string) NextResponse {
	if sessionID != "" {
		s.workspaces.Close(sessionID)
		contextutil.GetLogger(ctx, s.logger).Info("user signed out", zap.String("session_id", sessionID))
	}
	return NextResponse{Next: session.PathLogin}
}

func (s *service) Me(ctx context.Context, sessionID string) (MeResponse, error) {
	ws, err := s.workspaces.Get(sessionID)
	if err != nil {
		return MeResponse{}, autherrors.ErrNotAuthenticated
	}
	user, ok := ws.Session.Snapshot()
	if !ok {
		return MeResponse{}, autherrors.ErrNotAuthenticated
	}
	return MeResponse{User: user, IsAuthenticated: true}, nil
}
