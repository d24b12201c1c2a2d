// Package preference stores per-user UI preferences. Only the colour theme
// exists today.
package preference

import (
	"context"
	"net/http"
	"strings"

	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"go.uber.org/zap"
)

// HeaderPrefersColorScheme is the client hint browsers send once the server
// asks for it with Accept-CH.
const HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

//go:generate mockgen -source=preference_service.go -destination=mock/preference_service_mock.go -package=mock
type Service interface {
	GetTheme(ctx context.Context, userID, clientHint string) (ThemeResponse, error)
	SetTheme(ctx context.Context, userID string, darkMode bool) (ThemeResponse, error)
}

type service struct {
	repo            Repository
	defaultDarkMode bool
	logger          *zap.Logger
}

func NewService(repo Repository, defaultDarkMode bool, logger ...*zap.Logger) Service {
	l := zap.L().Named("preference.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("preference.service")
	}
	return &service{repo: repo, defaultDarkMode: defaultDarkMode, logger: l}
}

// GetTheme returns the saved theme, else the browser's colour-scheme hint,
// else the configured default. A storage failure degrades to the fallbacks.
func (s *service) GetTheme(ctx context.Context, userID, clientHint string) (ThemeResponse, error) {
	if userID == "" {
		return ThemeResponse{}, apperror.ErrUnauthorized
	}

	darkMode, found, err := s.repo.GetDarkMode(ctx, userID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("load theme preference failed", zap.String("user_id", userID), zap.Error(err))
	}
	if err == nil && found {
		return ThemeResponse{DarkMode: darkMode, Source: SourceSaved}, nil
	}

	switch strings.ToLower(strings.Trim(clientHint, `" `)) {
	case "dark":
		return ThemeResponse{DarkMode: true, Source: SourceClientHint}, nil
	case "light":
		return ThemeResponse{DarkMode: false, Source: SourceClientHint}, nil
	}
	return ThemeResponse{DarkMode: s.defaultDarkMode, Source: SourceDefault}, nil
}

func (s *service) SetTheme(ctx context.Context, userID string, darkMode bool) (ThemeResponse, error) {
	if userID == "" {
		return ThemeResponse{}, apperror.ErrUnauthorized
	}
	if err := s.repo.SetDarkMode(ctx, userID, darkMode); err != nil {
		return ThemeResponse{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Could not save the theme preference", http.StatusServiceUnavailable)
	}
	return ThemeResponse{DarkMode: darkMode, Source: SourceSaved}, nil
}
