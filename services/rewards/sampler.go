package rewards

import "Perkdraft/models"

// Sampler draws single rewards: first a tier by rarity weight, then an item
// within the tier by weight multiplier.
type Sampler struct {
	catalog *Catalog
	rng     RandomSource
}

func NewSampler(catalog *Catalog, rng RandomSource) *Sampler {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Sampler{catalog: catalog, rng: rng}
}

// Draw returns a random eligible item. Items whose id is in excludeIDs or whose
// type is in excludeTypes are ineligible, as are zero-weight items. When
// preferredTier has eligible items the draw is restricted to it. The second
// return value is false when nothing is eligible.
func (s *Sampler) Draw(excludeIDs, excludeTypes map[string]bool, preferredTier string) (models.RewardItem, bool) {
	eligible := make(map[string][]int, len(s.catalog.tiers))
	for _, tier := range s.catalog.tiers {
		for _, idx := range s.catalog.byTier[tier] {
			item := s.catalog.items[idx]
			if item.Weight() <= 0 || excludeIDs[item.ID] || excludeTypes[item.Type] {
				continue
			}
			eligible[tier] = append(eligible[tier], idx)
		}
	}

	tier := preferredTier
	if len(eligible[tier]) == 0 {
		tiers := make([]string, 0, len(eligible))
		tierWeights := make([]float64, 0, len(eligible))
		for _, t := range s.catalog.tiers {
			if len(eligible[t]) == 0 {
				continue
			}
			tiers = append(tiers, t)
			tierWeights = append(tierWeights, float64(s.catalog.weights[t]))
		}
		i := weightedIndex(s.rng, tierWeights)
		if i < 0 {
			return models.RewardItem{}, false
		}
		tier = tiers[i]
	}

	candidates := eligible[tier]
	itemWeights := make([]float64, len(candidates))
	for i, idx := range candidates {
		itemWeights[i] = s.catalog.items[idx].Weight()
	}
	i := weightedIndex(s.rng, itemWeights)
	if i < 0 {
		return models.RewardItem{}, false
	}
	return s.catalog.items[candidates[i]], true
}
