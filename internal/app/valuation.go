package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"carvalue/internal/adapters/observability"
	"carvalue/internal/domain"
	"carvalue/internal/pricing"
)

// ValuationService is the one place valuation requests enter the estimator.
// A nil cache disables caching; cache failures are logged and ignored.
type ValuationService struct {
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewValuationService(c domain.Cache, ttl time.Duration) *ValuationService {
	return &ValuationService{cache: c, cacheTTL: ttl}
}

func (s *ValuationService) Estimate(ctx context.Context, in domain.ValuationInput) (domain.Estimate, error) {
	// validate before touching the cache so bad input is never cached or served
	if err := pricing.Validate(in); err != nil {
		observability.ObserveValuation("none", "rejected")
		log.Warn().Err(err).Msg("valuation rejected")
		return domain.Estimate{}, err
	}

	key := pricing.CacheKey(in)
	if s.cache != nil {
		var est domain.Estimate
		ok, err := s.cache.Get(ctx, key, &est)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("valuation cache read failed")
		}
		if ok {
			observability.ObserveValuation(string(est.Tier), "cached")
			return est, nil
		}
	}

	est, err := pricing.Predict(in)
	if err != nil {
		return domain.Estimate{}, err
	}
	observability.ObserveValuation(string(est.Tier), "computed")
	log.Debug().
		Str("tier", string(est.Tier)).
		Int64("base", est.Base).
		Float64("adjusted", est.Adjusted).
		Msg("valuation computed")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, est, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("valuation cache write failed")
		}
	}
	return est, nil
}

// PredictPrice returns only the price band.
func (s *ValuationService) PredictPrice(ctx context.Context, in domain.ValuationInput) (domain.PriceRange, error) {
	est, err := s.Estimate(ctx, in)
	if err != nil {
		return domain.PriceRange{}, err
	}
	return est.Range, nil
}
