package models

// Rarity tiers understood by the catalog
const (
	RarityCommon   = "common"
	RarityUncommon = "uncommon"
	RarityRare     = "rare"
	RarityMythic   = "mythic"
)

// CatalogDocument is the on-disk shape of a reward catalog (JSON or YAML).
// Items may be listed flat under Perks, or grouped under PerkTypes where the
// bucket's Type applies to every item that does not set its own.
type CatalogDocument struct {
	Version       string         `json:"version,omitempty" yaml:"version,omitempty"`
	RarityWeights map[string]int `json:"rarityWeights,omitempty" yaml:"rarityWeights,omitempty"`
	Perks         []RewardItem   `json:"perks,omitempty" yaml:"perks,omitempty"`
	PerkTypes     []RewardGroup  `json:"perkTypes,omitempty" yaml:"perkTypes,omitempty"`
}

type RewardGroup struct {
	Type  string       `json:"type" yaml:"type"`
	Name  string       `json:"name,omitempty" yaml:"name,omitempty"`
	Perks []RewardItem `json:"perks" yaml:"perks"`
}

// RewardItem is a single catalog entry
type RewardItem struct {
	ID               string        `json:"id" yaml:"id"`
	Name             string        `json:"name" yaml:"name"`
	Rarity           string        `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Type             string        `json:"type,omitempty" yaml:"type,omitempty"`
	WeightMultiplier *float64      `json:"weightMultiplier,omitempty" yaml:"weightMultiplier,omitempty"`
	Description      string        `json:"description,omitempty" yaml:"description,omitempty"`
	PerkPhase        string        `json:"perkPhase,omitempty" yaml:"perkPhase,omitempty"`
	Effects          RewardEffects `json:"effects" yaml:"effects"`
}

// Weight returns the item's weight multiplier, 1.0 when unset
func (r RewardItem) Weight() float64 {
	if r.WeightMultiplier == nil {
		return 1.0
	}
	return *r.WeightMultiplier
}

// RewardEffects is the sparse effect map of an item. Field names are the ones
// the downstream pack generator keys off.
type RewardEffects struct {
	// Additive counters
	PackQuantity        int `json:"packQuantity,omitempty" yaml:"packQuantity,omitempty"`
	BudgetUpgradePacks  int `json:"budgetUpgradePacks,omitempty" yaml:"budgetUpgradePacks,omitempty"`
	FullExpensivePacks  int `json:"fullExpensivePacks,omitempty" yaml:"fullExpensivePacks,omitempty"`
	BracketUpgradePacks int `json:"bracketUpgradePacks,omitempty" yaml:"bracketUpgradePacks,omitempty"`
	CommanderQuantity   int `json:"commanderQuantity,omitempty" yaml:"commanderQuantity,omitempty"`

	// Highest wins
	BracketUpgrade int `json:"bracketUpgrade,omitempty" yaml:"bracketUpgrade,omitempty"`

	// One special group per item that sets SpecialPack
	SpecialPack      string `json:"specialPack,omitempty" yaml:"specialPack,omitempty"`
	SpecialPackCount int    `json:"specialPackCount,omitempty" yaml:"specialPackCount,omitempty"`
	MoxfieldDeck     string `json:"moxfieldDeck,omitempty" yaml:"moxfieldDeck,omitempty"`

	// First wins
	BudgetUpgradeType string   `json:"budgetUpgradeType,omitempty" yaml:"budgetUpgradeType,omitempty"`
	ColorFilterMode   string   `json:"colorFilterMode,omitempty" yaml:"colorFilterMode,omitempty"`
	AllowedColors     []string `json:"allowedColors,omitempty" yaml:"allowedColors,omitempty"`
	IncludeColorless  *bool    `json:"includeColorless,omitempty" yaml:"includeColorless,omitempty"`

	// Only used for type inference
	DistributionShift map[string]float64 `json:"distributionShift,omitempty" yaml:"distributionShift,omitempty"`
	SaltMode          bool               `json:"saltMode,omitempty" yaml:"saltMode,omitempty"`
	PackType          string             `json:"packType,omitempty" yaml:"packType,omitempty"`
}
