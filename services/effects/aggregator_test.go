package effects

import (
	"Perkdraft/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestAggregateEmptyIsBaseBundle(t *testing.T) {
	bundle := Aggregate(nil)

	require.Len(t, bundle.PackTypes, 1)
	group := bundle.PackTypes[0]
	assert.Empty(t, group.Name)
	assert.Equal(t, 5, group.Count)
	assert.Equal(t, []models.PackSlot{
		{CardType: "weighted", Budget: "expensive", Bracket: "any", Count: 1},
		{CardType: "weighted", Budget: "budget", Bracket: "any", Count: 11},
		{CardType: "lands", Budget: "any", Bracket: "any", Count: 3},
	}, group.Slots)
	assert.Nil(t, bundle.ColorFilter)
	assert.Zero(t, bundle.CommanderQuantity)
}

func TestAggregateExtraPacksAndSpecial(t *testing.T) {
	bundle := Aggregate([]models.RewardEffects{
		{PackQuantity: 1},
		{SpecialPack: "gamechanger", SpecialPackCount: 2},
		{PackQuantity: 1},
	})

	require.Len(t, bundle.PackTypes, 2)
	assert.Equal(t, 7, bundle.PackTypes[0].Count)
	special := bundle.PackTypes[1]
	assert.Equal(t, "Game Changer", special.Name)
	assert.Equal(t, 1, special.Count)
	assert.Equal(t, 2, special.Slots[0].Count)
	assert.Equal(t, 8, bundle.TotalPacks())
}

func TestCombineAdditiveFieldsCommute(t *testing.T) {
	r1 := models.RewardEffects{PackQuantity: 2, BudgetUpgradePacks: 1, CommanderQuantity: 1}
	r2 := models.RewardEffects{PackQuantity: 1, FullExpensivePacks: 2, BracketUpgradePacks: 1}

	a := Combine([]models.RewardEffects{r1, r2})
	b := Combine([]models.RewardEffects{r2, r1})
	assert.Equal(t, a.PackQuantity, b.PackQuantity)
	assert.Equal(t, a.BudgetUpgradePacks, b.BudgetUpgradePacks)
	assert.Equal(t, a.FullExpensivePacks, b.FullExpensivePacks)
	assert.Equal(t, a.BracketUpgradePacks, b.BracketUpgradePacks)
	assert.Equal(t, a.CommanderQuantity, b.CommanderQuantity)
	assert.Equal(t, Build(a), Build(b))
	assert.Equal(t, 3, a.PackQuantity)
}

func TestCombineMaxAndFirstWins(t *testing.T) {
	c := Combine([]models.RewardEffects{
		{BracketUpgrade: 3},
		{ColorFilterMode: "exact", AllowedColors: []string{"W", "U"}},
		{BracketUpgrade: 4, ColorFilterMode: "subset", IncludeColorless: boolPtr(false)},
		{BracketUpgrade: 2, BudgetUpgradeType: "any"},
		{BudgetUpgradeType: "expensive"},
	})

	assert.Equal(t, 4, c.BracketUpgrade)
	require.NotNil(t, c.ColorFilter)
	assert.Equal(t, "exact", c.ColorFilter.Mode)
	assert.Equal(t, []string{"W", "U"}, c.ColorFilter.AllowedColors)
	assert.True(t, c.ColorFilter.IncludeColorless)
	assert.Equal(t, "any", c.BudgetUpgradeType)
}

func TestBuildGroupOrderAndCaps(t *testing.T) {
	bundle := Aggregate([]models.RewardEffects{
		{SpecialPack: "test_cards", MoxfieldDeck: "S-Pxf1bY5kmaHlWiKN1Wug"},
		{BudgetUpgradePacks: 2, BudgetUpgradeType: "expensive"},
		{FullExpensivePacks: 2},
		{BracketUpgradePacks: 4, BracketUpgrade: 3},
		{SpecialPack: "mystery_box", SpecialPackCount: 3},
	})

	names := []string{}
	counts := []int{}
	for _, g := range bundle.PackTypes {
		names = append(names, g.Name)
		counts = append(counts, g.Count)
	}
	// budget 2 + full 2 leaves 1 of 5 packs for the bracket group
	assert.Equal(t, []string{"Budget Upgraded", "Full Expensive", "Bracket 3", "Test Cards", "mystery_box"}, names)
	assert.Equal(t, []int{2, 2, 1, 1, 1}, counts)

	assert.Equal(t, "expensive", bundle.PackTypes[0].Slots[1].Budget)
	assert.Equal(t, 12, bundle.PackTypes[1].Slots[0].Count)
	assert.Equal(t, "3", bundle.PackTypes[2].Slots[0].Bracket)
	assert.Equal(t, "3", bundle.PackTypes[2].Slots[1].Bracket)
	assert.Equal(t, "any", bundle.PackTypes[2].Slots[2].Bracket)

	moxfield := bundle.PackTypes[3]
	assert.Equal(t, "moxfield", moxfield.Source)
	assert.Equal(t, "S-Pxf1bY5kmaHlWiKN1Wug", moxfield.MoxfieldDeck)
	assert.Equal(t, 1, moxfield.Slots[0].Count)

	assert.Equal(t, 3, bundle.PackTypes[4].Slots[0].Count)
}

func TestBuildBracketPacksNeedLevel(t *testing.T) {
	bundle := Aggregate([]models.RewardEffects{{BracketUpgradePacks: 2}})
	require.Len(t, bundle.PackTypes, 1)
	assert.Equal(t, 5, bundle.PackTypes[0].Count)
}

func TestSpecialTemplatesAreNotShared(t *testing.T) {
	first := Aggregate([]models.RewardEffects{{SpecialPack: "banned", SpecialPackCount: 4}})
	second := Aggregate([]models.RewardEffects{{SpecialPack: "banned"}})
	assert.Equal(t, 4, first.PackTypes[1].Slots[0].Count)
	assert.Equal(t, 1, second.PackTypes[1].Slots[0].Count)
	assert.Equal(t, 1, specialTemplates["banned"].Slots[0].Count)
}
