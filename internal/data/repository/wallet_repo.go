package repository

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/pkg/database"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WalletRepository interface {
	// FindAddress returns the configured receiving address for a network,
	// served from the redis cache when warm.
	FindAddress(ctx context.Context, network entity.Network) (string, error)
	Upsert(ctx context.Context, wallet *entity.Wallet) error
}

type walletRepository struct {
	db       database.PgxIface
	cache    *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewWalletRepository(db database.PgxIface, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("repository", "wallet")),
	}
}

func cacheKey(network entity.Network) string {
	return "wallet:address:" + string(network)
}

func (r *walletRepository) FindAddress(ctx context.Context, network entity.Network) (string, error) {
	if r.cache != nil {
		address, err := r.cache.Get(ctx, cacheKey(network)).Result()
		if err == nil && address != "" {
			return address, nil
		}
		if err != nil && err != redis.Nil {
			// Cache trouble must not block reconciliation
			r.log.Warn("Wallet address cache read failed",
				zap.Error(err),
				zap.String("network", string(network)),
			)
		}
	}

	query := `SELECT address FROM wallets WHERE network = $1`

	var address string
	err := r.db.QueryRow(ctx, query, network).Scan(&address)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet address",
			zap.Error(err),
			zap.String("network", string(network)),
		)
		return "", fmt.Errorf("find wallet address for %s: %w", string(network), err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey(network), address, r.cacheTTL).Err(); err != nil {
			r.log.Warn("Wallet address cache write failed",
				zap.Error(err),
				zap.String("network", string(network)),
			)
		}
	}

	return address, nil
}

func (r *walletRepository) Upsert(ctx context.Context, wallet *entity.Wallet) error {
	query := `
		INSERT INTO wallets (id, network, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (network)
		DO UPDATE SET address = EXCLUDED.address, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		wallet.ID,
		wallet.Network,
		wallet.Address,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert wallet",
			zap.Error(err),
			zap.String("network", string(wallet.Network)),
		)
		return fmt.Errorf("upsert wallet for %s: %w", string(wallet.Network), err)
	}

	if r.cache != nil {
		if err := r.cache.Del(ctx, cacheKey(wallet.Network)).Err(); err != nil {
			r.log.Warn("Wallet address cache invalidation failed",
				zap.Error(err),
				zap.String("network", string(wallet.Network)),
			)
		}
	}

	return nil
}
