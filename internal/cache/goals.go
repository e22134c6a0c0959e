package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/tinysteps/tutor-scheduler/internal/models"
)

const goalsKey = "tinysteps:goals:nav"

// Goals serves the goal list shown in every page's navigation. Reads go
// through redis when a client is configured and fall through to the
// database; a nil client disables caching.
type Goals struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewGoals(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *Goals {
	return &Goals{db: db, rdb: rdb, ttl: ttl}
}

func (g *Goals) List(ctx context.Context) ([]models.Goal, error) {
	if g.rdb != nil {
		if raw, err := g.rdb.Get(ctx, goalsKey).Bytes(); err == nil {
			var goals []models.Goal
			if err := json.Unmarshal(raw, &goals); err == nil {
				return goals, nil
			}
		}
	}

	var goals []models.Goal
	if err := g.db.WithContext(ctx).Order("name ASC").Find(&goals).Error; err != nil {
		return nil, err
	}

	if g.rdb != nil {
		if raw, err := json.Marshal(goals); err == nil {
			g.rdb.Set(ctx, goalsKey, raw, g.ttl)
		}
	}

	return goals, nil
}

// Invalidate drops the cached list. Only the seed step writes goals today.
func (g *Goals) Invalidate(ctx context.Context) {
	if g.rdb != nil {
		g.rdb.Del(ctx, goalsKey)
	}
}
