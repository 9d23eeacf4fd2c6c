package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/player-api/internal/repository/state"
)

type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getStateKey(playerID string) string {
	return "player:" + playerID + ":state"
}

func (r repo) getQualitiesKey(playerID string) string {
	return "player:" + playerID + ":qualities"
}

func (r repo) getSubtitlesKey(playerID string) string {
	return "player:" + playerID + ":subtitles"
}

func (r repo) SetState(ctx context.Context, params *state.SetStateParams) error {
	stateKey := r.getStateKey(params.PlayerID)
	qualitiesKey := r.getQualitiesKey(params.PlayerID)
	subtitlesKey := r.getSubtitlesKey(params.PlayerID)

	controls := ""
	if params.Controls != nil {
		controls = strconv.FormatBool(*params.Controls)
	}

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, stateKey, map[string]any{
		"ready":         params.Ready,
		"current_time":  params.CurrentTime,
		"buffered_time": params.BufferedTime,
		"duration":      params.Duration,
		"seeking":       params.Seeking,
		"ended":         params.Ended,
		"muted":         params.Muted,
		"volume":        params.Volume,
		"paused":        params.Paused,
		"fullscreen":    params.Fullscreen,
		"controls":      controls,
		"rebuffering":   params.Rebuffering,
		"quality":       params.Quality,
		"subtitle":      params.Subtitle,
		"error_code":    params.ErrorCode,
		"error_title":   params.ErrorTitle,
		"error_message": params.ErrorMessage,
		"last_event":    params.LastEvent,
		"updated_at":    params.UpdatedAt,
	})
	r.replaceList(ctx, pipe, qualitiesKey, params.Qualities)
	r.replaceList(ctx, pipe, subtitlesKey, params.Subtitles)
	pipe.Expire(ctx, stateKey, r.expireDuration)
	pipe.Expire(ctx, qualitiesKey, r.expireDuration)
	pipe.Expire(ctx, subtitlesKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to set state: %w", err)
	}

	return nil
}

func (r repo) GetState(ctx context.Context, playerID string) (state.State, error) {
	stateKey := r.getStateKey(playerID)
	cmd := r.rc.HGetAll(ctx, stateKey)
	if err := cmd.Err(); err != nil {
		return state.State{}, fmt.Errorf("failed to get state: %w", err)
	}

	if len(cmd.Val()) == 0 {
		return state.State{}, state.ErrStateNotFound
	}

	var s state.State
	if err := cmd.Scan(&s); err != nil {
		return state.State{}, fmt.Errorf("failed to scan state: %w", err)
	}

	qualities, err := r.rc.LRange(ctx, r.getQualitiesKey(playerID), 0, -1).Result()
	if err != nil {
		return state.State{}, fmt.Errorf("failed to get qualities: %w", err)
	}
	subtitles, err := r.rc.LRange(ctx, r.getSubtitlesKey(playerID), 0, -1).Result()
	if err != nil {
		return state.State{}, fmt.Errorf("failed to get subtitles: %w", err)
	}
	s.Qualities = qualities
	s.Subtitles = subtitles

	return s, nil
}

func (r repo) RemoveState(ctx context.Context, playerID string) error {
	res, err := r.rc.Del(ctx,
		r.getStateKey(playerID),
		r.getQualitiesKey(playerID),
		r.getSubtitlesKey(playerID),
	).Result()
	if err != nil {
		return fmt.Errorf("failed to remove state: %w", err)
	}

	if res == 0 {
		return state.ErrStateNotFound
	}

	return nil
}

func (r repo) replaceList(ctx context.Context, pipe redis.Pipeliner, key string, values []string) {
	pipe.Del(ctx, key)
	if len(values) == 0 {
		return
	}

	args := make([]any, 0, len(values))
	for _, v := range values {
		args = append(args, v)
	}
	pipe.RPush(ctx, key, args...)
}

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}
