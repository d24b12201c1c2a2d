package preference

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=preference_repo.go -destination=mock/preference_repo_mock.go -package=mock
type Repository interface {
	// GetDarkMode reports the saved choice and whether one was saved.
	GetDarkMode(ctx context.Context, userID string) (darkMode bool, found bool, err error)
	SetDarkMode(ctx context.Context, userID string, darkMode bool) error
}

type redisRepository struct {
	rdb redis.Cmdable
}

func NewRedisRepository(rdb redis.Cmdable) Repository {
	return &redisRepository{rdb: rdb}
}

func DarkModeKey(userID string) string {
	return fmt.Sprintf("preferences:%s:darkMode", userID)
}

func (r *redisRepository) GetDarkMode(ctx context.Context, userID string) (bool, bool, error) {
	val, err := r.rdb.Get(ctx, DarkModeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	darkMode, err := strconv.ParseBool(val)
	if err != nil {
		return false, false, nil
	}
	return darkMode, true, nil
}

func (r *redisRepository) SetDarkMode(ctx context.Context, userID string, darkMode bool) error {
	return r.rdb.Set(ctx, DarkModeKey(userID), strconv.FormatBool(darkMode), 0).Err()
}
