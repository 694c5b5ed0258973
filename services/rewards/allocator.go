package rewards

import (
	session_constants "Perkdraft/constants/session"
	"Perkdraft/models"
	"Perkdraft/utils/apperrors"
	"log"
	"math"
)

// LuckPolicy tunes the per-player luck target and the acceptance window.
// Standard deviation and tolerance are fractions of the expected total.
type LuckPolicy struct {
	Variance          float64
	MinMultiplier     float64
	MaxMultiplier     float64
	Tolerance         float64
	AttemptMultiplier int
}

func DefaultLuckPolicy() LuckPolicy {
	return LuckPolicy{
		Variance:          session_constants.LUCK_VARIANCE,
		MinMultiplier:     session_constants.LUCK_MIN_MULTIPLIER,
		MaxMultiplier:     session_constants.LUCK_MAX_MULTIPLIER,
		Tolerance:         session_constants.LUCK_TOLERANCE,
		AttemptMultiplier: session_constants.LUCK_ATTEMPT_MULTIPLIER,
	}
}

// Validate checks the policy for values that would make targets unreachable
func (p LuckPolicy) Validate() error {
	switch {
	case p.Variance < 0:
		return apperrors.Invalid("luck variance must be >= 0")
	case p.MinMultiplier <= 0:
		return apperrors.Invalid("luck min multiplier must be > 0")
	case p.MaxMultiplier < p.MinMultiplier:
		return apperrors.Invalid("luck max multiplier must be >= min multiplier")
	case p.Tolerance < 0:
		return apperrors.Invalid("luck tolerance must be >= 0")
	case p.AttemptMultiplier < 1:
		return apperrors.Invalid("luck attempt multiplier must be >= 1")
	}
	return nil
}

// Allocation is the outcome of one player's roll
type Allocation struct {
	Rewards  []models.RewardItem
	Target   float64
	Total    float64
	Expected float64
	Accepted bool
	Attempts int
}

// Allocator assigns N deduplicated rewards per player, pulling each player's
// total value toward a normally distributed luck target.
type Allocator struct {
	catalog *Catalog
	sampler *Sampler
	rng     RandomSource
	policy  LuckPolicy
}

func NewAllocator(catalog *Catalog, rng RandomSource, policy LuckPolicy) (*Allocator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Allocator{
		catalog: catalog,
		sampler: NewSampler(catalog, rng),
		rng:     rng,
		policy:  policy,
	}, nil
}

func (a *Allocator) Catalog() *Catalog { return a.catalog }

// ExpectedTotal is n times the expected value of one draw
func (a *Allocator) ExpectedTotal(n int) float64 {
	return float64(n) * a.catalog.ExpectedValuePerDraw()
}

// LuckTarget samples Normal(expected, expected*variance) clamped into
// [expected*min, expected*max].
func (a *Allocator) LuckTarget(expectedTotal float64) float64 {
	target := expectedTotal + a.rng.NormFloat64()*expectedTotal*a.policy.Variance
	lo := expectedTotal * a.policy.MinMultiplier
	hi := expectedTotal * a.policy.MaxMultiplier
	return math.Min(math.Max(target, lo), hi)
}

// Allocate draws n rewards for one player. Every returned set is free of
// repeated ids and types; when no attempt lands inside the tolerance window
// the closest complete candidate is returned.
func (a *Allocator) Allocate(n int) (*Allocation, error) {
	if n <= 0 {
		return nil, apperrors.Invalid("reward count must be positive, got %d", n)
	}
	if types := a.catalog.DistinctTypes(); types < n {
		return nil, apperrors.InsufficientCatalog("catalog has %d distinct reward types, %d required", types, n)
	}

	expected := a.ExpectedTotal(n)
	target := a.LuckTarget(expected)
	tolerance := expected * a.policy.Tolerance
	budget := n * a.policy.AttemptMultiplier * 10

	var best []models.RewardItem
	bestDistance := math.Inf(1)
	bestTotal := 0.0

	for attempt := 1; attempt <= budget; attempt++ {
		candidate, ok := a.drawSet(n)
		if !ok {
			continue
		}
		total := a.catalog.TotalValue(candidate)
		distance := math.Abs(total - target)
		if distance <= tolerance {
			return &Allocation{
				Rewards:  candidate,
				Target:   target,
				Total:    total,
				Expected: expected,
				Accepted: true,
				Attempts: attempt,
			}, nil
		}
		if distance < bestDistance {
			best, bestDistance, bestTotal = candidate, distance, total
		}
	}

	if best == nil {
		return nil, apperrors.InsufficientCatalog("could not assemble %d distinct rewards in %d attempts", n, budget)
	}
	log.Printf("[ROLL] No candidate within tolerance %.2f of target %.2f, using closest (total %.2f)",
		tolerance, target, bestTotal)
	return &Allocation{
		Rewards:  best,
		Target:   target,
		Total:    bestTotal,
		Expected: expected,
		Accepted: false,
		Attempts: budget,
	}, nil
}

// drawSet draws n items with running id/type exclusions. ok is false when
// the sampler ran dry before n items were drawn.
func (a *Allocator) drawSet(n int) ([]models.RewardItem, bool) {
	usedIDs := make(map[string]bool, n)
	usedTypes := make(map[string]bool, n)
	set := make([]models.RewardItem, 0, n)
	for len(set) < n {
		item, ok := a.sampler.Draw(usedIDs, usedTypes, "")
		if !ok {
			return nil, false
		}
		usedIDs[item.ID] = true
		usedTypes[item.Type] = true
		set = append(set, item)
	}
	return set, true
}
