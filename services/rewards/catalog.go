package rewards

import (
	"Perkdraft/models"
	"Perkdraft/utils/apperrors"
	"fmt"
	"log"
	"sort"
	"strings"
)

// DefaultRarityWeights is used when a catalog document omits rarityWeights
var DefaultRarityWeights = map[string]int{
	models.RarityCommon:   44,
	models.RarityUncommon: 29,
	models.RarityRare:     17,
	models.RarityMythic:   8,
}

// Catalog is the indexed, immutable universe of reward items
type Catalog struct {
	version       string
	items         []models.RewardItem
	byID          map[string]int
	byTier        map[string][]int
	weights       map[string]int
	tiers         []string
	values        map[string]float64
	expectedValue float64
	types         map[string]struct{}
}

// NewCatalog normalizes a document into a Catalog. Items with a missing id, a
// duplicate id, an unknown rarity or a negative weight multiplier are dropped
// and logged. An empty result or invalid rarity weights yield a catalog error.
func NewCatalog(doc models.CatalogDocument) (*Catalog, error) {
	weights, err := normalizeWeights(doc.RarityWeights)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		version: doc.Version,
		byID:    make(map[string]int),
		byTier:  make(map[string][]int),
		weights: weights,
		values:  make(map[string]float64, len(weights)),
		types:   make(map[string]struct{}),
	}

	for tier := range weights {
		c.tiers = append(c.tiers, tier)
	}
	sort.Slice(c.tiers, func(i, j int) bool {
		wi, wj := weights[c.tiers[i]], weights[c.tiers[j]]
		if wi != wj {
			return wi > wj
		}
		return c.tiers[i] < c.tiers[j]
	})

	// common is the baseline; without it the most frequent tier is
	baseline, ok := weights[models.RarityCommon]
	if !ok {
		baseline = weights[c.tiers[0]]
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	for _, tier := range c.tiers {
		w := weights[tier]
		c.values[tier] = float64(baseline) / float64(w)
		c.expectedValue += float64(w) / float64(total) * c.values[tier]
	}

	for _, group := range doc.PerkTypes {
		for _, item := range group.Perks {
			if item.Type == "" {
				item.Type = strings.TrimSpace(group.Type)
			}
			c.add(item)
		}
	}
	for _, item := range doc.Perks {
		c.add(item)
	}

	if len(c.items) == 0 {
		return nil, apperrors.Catalog("catalog has no usable items")
	}
	log.Printf("[CATALOG] Loaded %d items (%d types), version %q, EV per draw %.3f",
		len(c.items), len(c.types), c.version, c.expectedValue)
	return c, nil
}

func normalizeWeights(raw map[string]int) (map[string]int, error) {
	if len(raw) == 0 {
		weights := make(map[string]int, len(DefaultRarityWeights))
		for k, v := range DefaultRarityWeights {
			weights[k] = v
		}
		return weights, nil
	}

	var errs []string
	weights := make(map[string]int, len(raw))
	for tier, w := range raw {
		name := strings.ToLower(strings.TrimSpace(tier))
		if name == "" {
			errs = append(errs, "rarity tier name must not be empty")
			continue
		}
		if w <= 0 {
			errs = append(errs, fmt.Sprintf("rarityWeights.%s must be > 0", tier))
			continue
		}
		weights[name] = w
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, apperrors.Catalog("invalid rarity weights: %s", strings.Join(errs, "; "))
	}
	return weights, nil
}

func (c *Catalog) add(item models.RewardItem) {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		log.Printf("[CATALOG] Skipping item %q without id", item.Name)
		return
	}
	if _, dup := c.byID[item.ID]; dup {
		log.Printf("[CATALOG] Skipping duplicate item id %s", item.ID)
		return
	}
	item.Rarity = strings.ToLower(strings.TrimSpace(item.Rarity))
	if item.Rarity == "" {
		item.Rarity = models.RarityCommon
	}
	if _, ok := c.weights[item.Rarity]; !ok {
		log.Printf("[CATALOG] Skipping item %s with unknown rarity %q", item.ID, item.Rarity)
		return
	}
	if item.Weight() < 0 {
		log.Printf("[CATALOG] Skipping item %s with negative weightMultiplier", item.ID)
		return
	}
	if item.Name == "" {
		item.Name = item.ID
	}
	item.Type = InferType(item)

	idx := len(c.items)
	c.items = append(c.items, item)
	c.byID[item.ID] = idx
	c.byTier[item.Rarity] = append(c.byTier[item.Rarity], idx)
	if item.Weight() > 0 {
		c.types[item.Type] = struct{}{}
	}
}

// InferType resolves the deduplication type of an item
func InferType(item models.RewardItem) string {
	if t := strings.TrimSpace(item.Type); t != "" {
		return t
	}
	e := item.Effects
	switch {
	case e.CommanderQuantity != 0:
		return "commander_quantity"
	case e.ColorFilterMode != "":
		return "color_filter"
	case len(e.DistributionShift) > 0:
		return "distribution_shift"
	case e.SaltMode:
		return "salt_mode"
	}
	if item.PerkPhase == "drafting" {
		packType := e.PackType
		if packType == "" {
			packType = "generic_pack"
		}
		return "pack_" + packType
	}
	return "unique_" + item.ID
}

func (c *Catalog) Version() string { return c.version }

// Items returns a copy of the normalized items in document order
func (c *Catalog) Items() []models.RewardItem {
	out := make([]models.RewardItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Item(id string) (models.RewardItem, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.RewardItem{}, false
	}
	return c.items[idx], true
}

// Tiers returns the rarity tiers ordered from most to least frequent
func (c *Catalog) Tiers() []string {
	out := make([]string, len(c.tiers))
	copy(out, c.tiers)
	return out
}

func (c *Catalog) Weight(tier string) int { return c.weights[tier] }

// Value returns weight(common) / weight(tier); unknown tiers are worth 1
func (c *Catalog) Value(tier string) float64 {
	if v, ok := c.values[tier]; ok {
		return v
	}
	return 1.0
}

// ExpectedValuePerDraw is the weighted mean tier value of one draw
func (c *Catalog) ExpectedValuePerDraw() float64 { return c.expectedValue }

// DistinctTypes counts the types that can actually be drawn
func (c *Catalog) DistinctTypes() int { return len(c.types) }

// TotalValue sums the tier values of the given items
func (c *Catalog) TotalValue(items []models.RewardItem) float64 {
	total := 0.0
	for _, item := range items {
		total += c.Value(item.Rarity)
	}
	return total
}
