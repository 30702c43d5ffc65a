// Package sequence allocates named, strictly increasing counters.
// Each call to Next returns a value no other caller has received,
// even across processes sharing the same backend.
package sequence

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

const (
	BackendRedis    = "redis"
	BackendDatabase = "database"
)

// New picks the allocator for backend. Redis is required for BackendRedis.
func New(backend string, db *gorm.DB, redisClient *redis.Client, log logger.Interface) (complaint.SequenceAllocator, error) {
	switch backend {
	case BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("sequence backend %q requires redis to be enabled", backend)
		}
		log.Infow("using redis sequence allocator")
		return NewRedisAllocator(redisClient), nil
	case BackendDatabase, "":
		log.Infow("using database sequence allocator")
		return NewDatabaseAllocator(db), nil
	default:
		return nil, fmt.Errorf("unknown sequence backend: %s", backend)
	}
}
