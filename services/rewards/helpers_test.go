package rewards

import (
	"Perkdraft/models"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

// testDocument builds perTier distinct-type items for each default tier
func testDocument(perTier int) models.CatalogDocument {
	doc := models.CatalogDocument{
		Version:       "test",
		RarityWeights: map[string]int{"common": 44, "uncommon": 29, "rare": 17, "mythic": 8},
	}
	for _, tier := range []string{"common", "uncommon", "rare", "mythic"} {
		for i := 0; i < perTier; i++ {
			doc.Perks = append(doc.Perks, models.RewardItem{
				ID:     fmt.Sprintf("%s_%d", tier, i),
				Name:   fmt.Sprintf("%s perk %d", tier, i),
				Rarity: tier,
			})
		}
	}
	return doc
}

func testCatalog(t *testing.T, perTier int) *Catalog {
	t.Helper()
	c, err := NewCatalog(testDocument(perTier))
	require.NoError(t, err)
	return c
}
