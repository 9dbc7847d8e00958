package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using
// Redis. Each live token is a key mapping its hash to the owning account,
// plus a per-account set of hashes for revoke-all. Redeem uses GETDEL so a
// token can never be redeemed twice: the second caller sees redis.Nil.
type RefreshTokenRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenRepository creates a new refresh token ledger. The TTL
// bounds how long an unused record survives; regular lifetime control is
// rotation and revocation.
func NewRefreshTokenRepository(client *redis.Client, ttl time.Duration) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{
		client: client,
		ttl:    ttl,
	}
}

func tokenKey(hash string) string {
	return "refresh:tok:" + hash
}

func accountKey(accountID uint) string {
	return fmt.Sprintf("refresh:acct:%d", accountID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Save implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) Save(ctx context.Context, accountID uint, token string) error {
	hash := hashToken(token)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tokenKey(hash), strconv.FormatUint(uint64(accountID), 10), r.ttl)
	pipe.SAdd(ctx, accountKey(accountID), hash)
	pipe.Expire(ctx, accountKey(accountID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Redeem implements domain.RefreshTokenRepository. A signature-valid token
// with no ledger record means it was already rotated or revoked; reuse is a
// hard failure.
func (r *RefreshTokenRepositoryImpl) Redeem(ctx context.Context, token string) (uint, error) {
	hash := hashToken(token)

	val, err := r.client.GetDel(ctx, tokenKey(hash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrTokenInvalid
		}
		return 0, fmt.Errorf("failed to redeem refresh token: %w", err)
	}

	accountID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token record: %w", err)
	}

	// Membership set cleanup is best-effort; a stale member only costs an
	// extra DEL on revoke-all.
	r.client.SRem(ctx, accountKey(uint(accountID)), hash)

	return uint(accountID), nil
}

// RevokeAll implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) RevokeAll(ctx context.Context, accountID uint) error {
	key := accountKey(accountID)

	hashes, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, tokenKey(h))
	}
	keys = append(keys, key)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
