package identity

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// CodeStore keeps one-time login codes in redis, keyed by email. Expiry is
// recorded in the payload and checked at read time; the redis TTL is only a
// hygiene bound so abandoned keys do not accumulate.
type CodeStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	clock clock.Clock
}

type codeRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewCodeStore(rdb *redis.Client, ttl time.Duration, clk clock.Clock) *CodeStore {
	return &CodeStore{rdb: rdb, ttl: ttl, clock: clk}
}

func codeKey(email string) string {
	return "login_code:" + email
}

// Issue generates a fresh 6-digit code, replacing any outstanding one.
func (s *CodeStore) Issue(ctx context.Context, email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errs.Wrap(err, "failed to generate login code")
	}
	code := fmt.Sprintf("%06d", n.Int64())

	record := codeRecord{
		Code:      code,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", errs.Wrap(err, "failed to marshal login code record")
	}

	if err := s.rdb.Set(ctx, codeKey(email), payload, 2*s.ttl).Err(); err != nil {
		return "", errs.Wrap(err, "failed to store login code")
	}

	return code, nil
}

// Verify consumes the code: a match deletes it so it cannot be replayed,
// and an expired record is deleted on read.
func (s *CodeStore) Verify(ctx context.Context, email, code string) (bool, error) {
	key := codeKey(email)

	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, errs.Wrap(err, "failed to read login code")
	}

	var record codeRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return false, errs.Wrap(err, "failed to unmarshal login code record")
	}

	if s.clock.Now().After(record.ExpiresAt) {
		s.rdb.Del(ctx, key)
		return false, nil
	}
	if record.Code != code {
		return false, nil
	}

	s.rdb.Del(ctx, key)
	return true, nil
}
