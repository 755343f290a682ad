package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultQuizCacheTTL = time.Hour

// QuizRecordCache is a read-through cache in front of QuizRepository.GetByID.
// Records never change after creation, so entries are never invalidated.
type QuizRecordCache interface {
	GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error)
	Put(ctx context.Context, record *domain.QuizRecord)
}

type quizRecordCache struct {
	cache   domain.Cache
	repo    domain.QuizRepository
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewQuizRecordCache wraps repo with cache. A nil cache disables caching
// but keeps singleflight coalescing of concurrent loads.
func NewQuizRecordCache(c domain.Cache, repo domain.QuizRepository, ttl time.Duration) QuizRecordCache {
	if c == nil {
		c = cache.NoopCache{}
	}
	if ttl <= 0 {
		ttl = DefaultQuizCacheTTL
	}
	return &quizRecordCache{cache: c, repo: repo, ttl: ttl}
}

func (s *quizRecordCache) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	key := cache.QuizRecordKey(id)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var record domain.QuizRecord
		errDecode := json.Unmarshal([]byte(cached), &record)
		if errDecode == nil {
			logger.Get().Debug("Quiz cache hit", zap.Int64("quiz_id", id))
			return &record, nil
		}
		logger.Get().Warn("Discarding undecodable cached quiz", zap.String("cacheKey", key), zap.Error(errDecode))
	case errors.Is(err, domain.ErrCacheMiss):
		logger.Get().Debug("Quiz cache miss", zap.Int64("quiz_id", id))
	default:
		logger.Get().Warn("Quiz cache read failed", zap.String("cacheKey", key), zap.Error(err))
	}

	res, err, _ := s.sfGroup.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		record, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.Put(ctx, record)
		return record, nil
	})
	if err != nil {
		return nil, err
	}

	record, ok := res.(*domain.QuizRecord)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for quiz %d: %T", id, res)
	}
	return record, nil
}

// Put stores record. Failures are logged and otherwise ignored.
func (s *quizRecordCache) Put(ctx context.Context, record *domain.QuizRecord) {
	if record == nil {
		return
	}
	key := cache.QuizRecordKey(record.ID)

	data, err := json.Marshal(record)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for caching", zap.String("cacheKey", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.String("cacheKey", key), zap.Error(err))
	}
}
