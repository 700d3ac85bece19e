package score

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/errors"
	redisclient "github.com/tomz197/invaders/internal/redis"
)

const (
	recordKeyPrefix = "score:record:"
	leaderboardKey  = "score:leaderboard"
	cosmeticKey     = "cosmetic:equipped"
)

// RedisConfig contains configuration for the Redis score store.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	NewID  func() string
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// RedisStore keeps records as JSON under score:record:{id}, ranks them in
// the score:leaderboard sorted set and keeps equipped colours in the
// cosmetic:equipped hash.
type RedisStore struct {
	client redisclient.Client
	clock  clock.Clock
	newID  func() string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &RedisStore{
		client: cfg.Client,
		clock:  c,
		newID:  newID,
	}, nil
}

// SubmitScore validates the username, clamps the score and stores a new record.
func (s *RedisStore) SubmitScore(ctx context.Context, identity string, points int) (*Record, error) {
	username, err := NormalizeUsername(identity)
	if err != nil {
		return nil, err
	}
	points = ClampScore(points)

	rec := &Record{
		ID:        s.newID(),
		Username:  username,
		Score:     points,
		Coins:     CoinsFor(points),
		CreatedAt: s.clock.Now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal record")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKeyPrefix+rec.ID, data, 0)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(rec.Score), Member: rec.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save score")
	}

	return rec, nil
}

// Top returns up to n records ranked by score, earliest first among ties.
// n <= 0 means DefaultTopN.
func (s *RedisStore) Top(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	// The nth best score is the cutoff; everything at or above it is fetched
	// so ties at the cutoff can be ordered by submission time.
	ranked, err := s.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read leaderboard")
	}
	if len(ranked) == 0 {
		return []Record{}, nil
	}
	cutoff := ranked[len(ranked)-1].Score

	ids, err := s.client.ZRevRangeByScore(ctx, leaderboardKey, &redis.ZRangeBy{
		Min: strconv.FormatFloat(cutoff, 'f', -1, 64),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read leaderboard")
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read records")
	}

	records := make([]Record, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Ranked id without a record; skip rather than fail the whole board.
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal record %s", ids[i])
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}

// Equipped returns the identity's colour, or CosmeticDefault when nothing
// valid is stored.
func (s *RedisStore) Equipped(ctx context.Context, identity string) (Cosmetic, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return CosmeticDefault, nil
	}
	v, err := s.client.HGet(ctx, cosmeticKey, identity).Result()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return CosmeticDefault, nil
		}
		return CosmeticDefault, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read cosmetic")
	}
	c := Cosmetic(v)
	if !c.Valid() {
		return CosmeticDefault, nil
	}
	return c, nil
}

// Equip stores the identity's colour.
func (s *RedisStore) Equip(ctx context.Context, identity string, c Cosmetic) error {
	username, err := NormalizeUsername(identity)
	if err != nil {
		return err
	}
	if !c.Valid() {
		return errors.InvalidArgumentf("unknown cosmetic %q", string(c))
	}
	if err := s.client.HSet(ctx, cosmeticKey, username, string(c)).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save cosmetic")
	}
	return nil
}

// Dial connects to the Redis server at addr and returns a store backed by it.
// The server must answer a ping within the context's deadline. The returned
// close function releases the connection pool.
func Dial(ctx context.Context, addr string) (*RedisStore, func() error, error) {
	client, err := redisclient.NewClient(addr, &redisclient.Options{MaxRetries: 1})
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis address")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
	}
	store, err := NewRedisStore(&RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client.Close, nil
}
