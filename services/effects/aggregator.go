package effects

import (
	session_constants "Perkdraft/constants/session"
	"Perkdraft/models"
)

// SpecialEntry is one concatenated special group request
type SpecialEntry struct {
	Name         string
	Count        int
	MoxfieldDeck string
}

// Combined holds a player's merged effects
type Combined struct {
	PackQuantity        int
	BudgetUpgradePacks  int
	FullExpensivePacks  int
	BracketUpgradePacks int
	CommanderQuantity   int

	BracketUpgrade int

	SpecialPacks []SpecialEntry

	BudgetUpgradeType string
	ColorFilter       *models.ColorFilter
}

// Combine merges effects in assignment order: counters add, bracketUpgrade
// keeps the maximum, special packs concatenate and the filter fields keep the
// first value set.
func Combine(effects []models.RewardEffects) Combined {
	var c Combined
	for _, e := range effects {
		c.PackQuantity += e.PackQuantity
		c.BudgetUpgradePacks += e.BudgetUpgradePacks
		c.FullExpensivePacks += e.FullExpensivePacks
		c.BracketUpgradePacks += e.BracketUpgradePacks
		c.CommanderQuantity += e.CommanderQuantity

		if e.BracketUpgrade > c.BracketUpgrade {
			c.BracketUpgrade = e.BracketUpgrade
		}

		if e.SpecialPack != "" {
			count := e.SpecialPackCount
			if count <= 0 {
				count = 1
			}
			c.SpecialPacks = append(c.SpecialPacks, SpecialEntry{
				Name:         e.SpecialPack,
				Count:        count,
				MoxfieldDeck: e.MoxfieldDeck,
			})
		}

		if c.BudgetUpgradeType == "" && e.BudgetUpgradeType != "" {
			c.BudgetUpgradeType = e.BudgetUpgradeType
		}
		if c.ColorFilter == nil && e.ColorFilterMode != "" {
			includeColorless := true
			if e.IncludeColorless != nil {
				includeColorless = *e.IncludeColorless
			}
			c.ColorFilter = &models.ColorFilter{
				Mode:             e.ColorFilterMode,
				AllowedColors:    append([]string(nil), e.AllowedColors...),
				IncludeColorless: includeColorless,
			}
		}
	}
	return c
}

// Build projects combined effects onto a bundle. Groups are emitted in the
// order normal, Budget Upgraded, Full Expensive, Bracket N, specials; empty
// groups are omitted.
func Build(c Combined) models.BundleConfig {
	base := max(session_constants.BASE_BUNDLE_COUNT+c.PackQuantity, 0)

	budget := clamp(c.BudgetUpgradePacks, 0, base)
	full := clamp(c.FullExpensivePacks, 0, base-budget)
	bracket := 0
	if c.BracketUpgrade > 0 {
		bracket = clamp(c.BracketUpgradePacks, 0, base-budget-full)
	}
	normal := base - budget - full - bracket

	bundle := models.BundleConfig{
		PackTypes:         []models.PackGroup{},
		CommanderQuantity: c.CommanderQuantity,
		ColorFilter:       c.ColorFilter,
	}
	if normal > 0 {
		bundle.PackTypes = append(bundle.PackTypes, models.PackGroup{Count: normal, Slots: baseSlots()})
	}
	if budget > 0 {
		bundle.PackTypes = append(bundle.PackTypes, models.PackGroup{
			Name:  GroupBudgetUpgraded,
			Count: budget,
			Slots: budgetUpgradedSlots(c.BudgetUpgradeType),
		})
	}
	if full > 0 {
		bundle.PackTypes = append(bundle.PackTypes, models.PackGroup{
			Name:  GroupFullExpensive,
			Count: full,
			Slots: fullExpensiveSlots(),
		})
	}
	if bracket > 0 {
		bundle.PackTypes = append(bundle.PackTypes, models.PackGroup{
			Name:  bracketGroupName(c.BracketUpgrade),
			Count: bracket,
			Slots: bracketSlots(c.BracketUpgrade),
		})
	}
	for _, entry := range c.SpecialPacks {
		bundle.PackTypes = append(bundle.PackTypes, specialGroup(entry))
	}
	return bundle
}

// Aggregate is Build(Combine(effects))
func Aggregate(effects []models.RewardEffects) models.BundleConfig {
	return Build(Combine(effects))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
