package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"process-maps-backend/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	contentKeyPrefix = "board:content:"
	versionKeyPrefix = "board:version:"
)

var errStaleRead = errors.New("board content changed during load")

// ContentCache keeps loaded board content in Redis. Writes go to the base repository first
// and evict the cached entry afterwards, so a failed save never drops a valid cache entry.
// Every write also bumps a per-board version; a read only fills the cache if the version it
// saw before loading is still current.
type ContentCache struct {
	base  BoardContentRepoInterface
	redis *redis.Client
	ttl   time.Duration
}

// NewContentCache wraps base with a Redis read-through cache.
func NewContentCache(base BoardContentRepoInterface, client *redis.Client, ttl time.Duration) *ContentCache {
	if base == nil {
		panic("repo.NewContentCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &ContentCache{base: base, redis: client, ttl: ttl}
}

func (c *ContentCache) GetBoardContent(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	if board, ok := c.load(ctx, boardID); ok {
		return board, nil
	}

	version, versionOK := c.version(ctx, boardID)
	board, err := c.base.GetBoardContent(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if versionOK {
		c.store(ctx, board, version)
	}
	return board, nil
}

func (c *ContentCache) ReplaceBoardContent(ctx context.Context, boardID uuid.UUID, shapes []models.Shape, connections []models.Connection) error {
	if err := c.base.ReplaceBoardContent(ctx, boardID, shapes, connections); err != nil {
		return err
	}
	c.invalidate(ctx, boardID)
	return nil
}

func (c *ContentCache) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	if err := c.base.DeleteBoard(ctx, boardID); err != nil {
		return err
	}
	c.invalidate(ctx, boardID)
	return nil
}

func (c *ContentCache) load(ctx context.Context, boardID uuid.UUID) (*models.Board, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, contentKey(boardID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).WithField("board_id", boardID).Warn("board cache read failed")
		}
		return nil, false
	}

	var board models.Board
	if err := json.Unmarshal(data, &board); err != nil {
		log.WithError(err).WithField("board_id", boardID).Warn("board cache entry corrupt")
		c.evict(ctx, boardID)
		return nil, false
	}
	return &board, true
}

// version returns the board's write counter. A missing key counts as zero.
func (c *ContentCache) version(ctx context.Context, boardID uuid.UUID) (int64, bool) {
	if c.redis == nil || c.ttl == 0 {
		return 0, false
	}
	v, err := c.redis.Get(ctx, versionKey(boardID)).Int64()
	if err != nil && err != redis.Nil {
		log.WithError(err).WithField("board_id", boardID).Warn("board cache version read failed")
		return 0, false
	}
	return v, true
}

// store caches board unless a write bumped the version since seen was read.
func (c *ContentCache) store(ctx context.Context, board *models.Board, seen int64) {
	data, err := json.Marshal(board)
	if err != nil {
		log.WithError(err).WithField("board_id", board.ID).Warn("board cache encode failed")
		return
	}

	vKey := versionKey(board.ID)
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != seen {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, contentKey(board.ID), data, c.ttl)
			return nil
		})
		return err
	}, vKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		log.WithField("board_id", board.ID).Debug("board changed while loading, not caching")
	default:
		log.WithError(err).WithField("board_id", board.ID).Warn("board cache write failed")
	}
}

// invalidate bumps the board version before evicting, so in-flight reads cannot refill
// the cache with content loaded before the write.
func (c *ContentCache) invalidate(ctx context.Context, boardID uuid.UUID) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Incr(ctx, versionKey(boardID)).Err(); err != nil {
		log.WithError(err).WithField("board_id", boardID).Warn("board cache version bump failed")
	}
	c.evict(ctx, boardID)
}

func (c *ContentCache) evict(ctx context.Context, boardID uuid.UUID) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, contentKey(boardID)).Err(); err != nil {
		log.WithError(err).WithField("board_id", boardID).Warn("board cache evict failed")
	}
}

func contentKey(boardID uuid.UUID) string {
	return contentKeyPrefix + boardID.String()
}

func versionKey(boardID uuid.UUID) string {
	return versionKeyPrefix + boardID.String()
}
