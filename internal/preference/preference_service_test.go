package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/apper-canvas/staffsync-program-correct/internal/preference"
	prefMock "github.com/apper-canvas/staffsync-program-correct/internal/preference/mock"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestService_GetTheme(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		saved     bool
		found     bool
		repoErr   error
		hint      string
		wantDark  bool
		wantSrc   string
		defaultOn bool
	}{
		{name: "saved wins over hint", saved: false, found: true, hint: "dark", wantDark: false, wantSrc: preference.SourceSaved},
		{name: "dark hint", hint: "dark", wantDark: true, wantSrc: preference.SourceClientHint},
		{name: "quoted light hint", hint: `"light"`, defaultOn: true, wantDark: false, wantSrc: preference.SourceClientHint},
		{name: "no hint uses default", defaultOn: true, wantDark: true, wantSrc: preference.SourceDefault},
		{name: "storage failure falls back", repoErr: errors.New("down"), hint: "dark", wantDark: true, wantSrc: preference.SourceClientHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := prefMock.NewMockRepository(ctrl)
			svc := preference.NewService(repo, tt.defaultOn, zap.NewNop())

			repo.EXPECT().GetDarkMode(ctx, "u-1").Return(tt.saved, tt.found, tt.repoErr)

			res, err := svc.GetTheme(ctx, "u-1", tt.hint)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDark, res.DarkMode)
			assert.Equal(t, tt.wantSrc, res.Source)
		})
	}
}

func TestService_SetTheme(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := prefMock.NewMockRepository(ctrl)
	svc := preference.NewService(repo, false, zap.NewNop())

	t.Run("saved", func(t *testing.T) {
		repo.EXPECT().SetDarkMode(ctx, "u-1", true).Return(nil)

		res, err := svc.SetTheme(ctx, "u-1", true)

		assert.NoError(t, err)
		assert.Equal(t, preference.ThemeResponse{DarkMode: true, Source: preference.SourceSaved}, res)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo.EXPECT().SetDarkMode(ctx, "u-1", true).Return(errors.New("down"))

		_, err := svc.SetTheme(ctx, "u-1", true)

		assert.Equal(t, 503, apperror.ToHTTP(err).Status)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.SetTheme(ctx, "", true)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}
