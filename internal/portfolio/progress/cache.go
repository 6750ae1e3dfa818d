package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	"github.com/batoulgheleb/crisiszone/internal/sentinel"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
)

const (
	epochKey        = "progress:epoch"
	genKeyPrefix    = "progress:gen:"
	reportKeyPrefix = "progress:report:"
	defaultCacheTTL = 30 * time.Second
)

// setIfCurrent stores ARGV[2] under KEYS[3] only while the epoch and
// generation counters still read ARGV[1]. Missing counters read as 0.
var setIfCurrent = redis.NewScript(`
local epoch = redis.call("GET", KEYS[1]) or "0"
local gen = redis.call("GET", KEYS[2]) or "0"
if epoch .. "." .. gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[3], ARGV[1] .. "\n" .. ARGV[2], "PX", ARGV[3])
return 1
`)

// RedisCache keeps progress reports stamped with the generation they were
// computed under. progress:epoch is bumped when reference data changes,
// progress:gen:<doctorID> when one doctor's inputs change; a report whose
// stamp no longer matches both counters is treated as absent.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache uses a 30s TTL when ttl is not positive.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func genKey(doctorID id.DoctorID) string    { return genKeyPrefix + doctorID.String() }
func reportKey(doctorID id.DoctorID) string { return reportKeyPrefix + doctorID.String() }

func counter(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "0"
}

func (c *RedisCache) Stamp(ctx context.Context, doctorID id.DoctorID) (string, error) {
	vals, err := c.client.MGet(ctx, epochKey, genKey(doctorID)).Result()
	if err != nil {
		return "", fmt.Errorf("read progress generation: %w", err)
	}
	return counter(vals[0]) + "." + counter(vals[1]), nil
}

func (c *RedisCache) Get(ctx context.Context, doctorID id.DoctorID) (*models.ProgressReport, error) {
	vals, err := c.client.MGet(ctx, epochKey, genKey(doctorID), reportKey(doctorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	raw, ok := vals[2].(string)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	stamp, body, found := strings.Cut(raw, "\n")
	if !found {
		return nil, fmt.Errorf("decode progress: missing stamp")
	}
	if stamp != counter(vals[0])+"."+counter(vals[1]) {
		return nil, sentinel.ErrNotFound
	}
	var report models.ProgressReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &report, nil
}

// Set stores report unless an invalidation landed after stamp was taken. It
// reports whether the report was stored.
func (c *RedisCache) Set(ctx context.Context, report *models.ProgressReport, stamp string) (bool, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return false, fmt.Errorf("encode progress: %w", err)
	}
	keys := []string{epochKey, genKey(report.DoctorID), reportKey(report.DoctorID)}
	stored, err := setIfCurrent.Run(ctx, c.client, keys, stamp, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("set progress: %w", err)
	}
	return stored == 1, nil
}

// Invalidate retires every report computed for doctorID so far, including
// ones still being computed.
func (c *RedisCache) Invalidate(ctx context.Context, doctorID id.DoctorID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(doctorID))
		pipe.Del(ctx, reportKey(doctorID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate progress: %w", err)
	}
	return nil
}

// InvalidateAll retires every cached report.
func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("invalidate all progress: %w", err)
	}
	return nil
}

// Invalidator turns committed repository changes into cache invalidations.
// Register it with store.WithChangeListener.
type Invalidator struct {
	cache  Cache
	logger *slog.Logger
}

func NewInvalidator(cache Cache, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Invalidator{cache: cache, logger: logger}
}

func (i *Invalidator) DoctorChanged(ctx context.Context, doctorID id.DoctorID) {
	if err := i.cache.Invalidate(ctx, doctorID); err != nil {
		i.logger.WarnContext(ctx, "progress_cache_invalidate_failed",
			"doctor_id", doctorID.String(),
			"error", err,
		)
	}
}

func (i *Invalidator) ReferenceDataChanged(ctx context.Context) {
	if err := i.cache.InvalidateAll(ctx); err != nil {
		i.logger.WarnContext(ctx, "progress_cache_invalidate_all_failed", "error", err)
	}
}
