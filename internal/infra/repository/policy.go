package repository

import (
	"context"
	"log/slog"

	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/infra"
	"transfer-portal/internal/infra/cache"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PolicyRepository struct {
	pool  *pgxpool.Pool
	cache *cache.PolicyCache
}

func NewPolicyRepository(pool *pgxpool.Pool, policyCache *cache.PolicyCache) *PolicyRepository {
	return &PolicyRepository{pool: pool, cache: policyCache}
}

// FindAll returns the active policy table, cache-first. Cache failures fall
// back to the database silently; the table is small.
func (r *PolicyRepository) FindAll(ctx context.Context) ([]cancellation.Policy, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx)
		if err != nil {
			slog.Warn("policy cache read failed", "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, hours_required, refund_percent
		FROM cancellation_policies
		ORDER BY hours_required DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cancellation policies", err)
	}
	defer rows.Close()

	var policies []cancellation.Policy
	for rows.Next() {
		var p cancellation.Policy
		if err := rows.Scan(&p.ID, &p.Name, &p.HoursRequired, &p.RefundPercent); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cancellation policy", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cancellation policies", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, policies); err != nil {
			slog.Warn("policy cache write failed", "error", err.Error())
		}
	}
	return policies, nil
}
