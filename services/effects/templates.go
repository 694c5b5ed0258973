package effects

import (
	"Perkdraft/models"
	"strconv"
)

// Group names the pack generator matches on
const (
	GroupBudgetUpgraded = "Budget Upgraded"
	GroupFullExpensive  = "Full Expensive"
	groupBracketPrefix  = "Bracket "
)

func baseSlots() []models.PackSlot {
	return []models.PackSlot{
		{CardType: "weighted", Budget: "expensive", Bracket: "any", Count: 1},
		{CardType: "weighted", Budget: "budget", Bracket: "any", Count: 11},
		{CardType: "lands", Budget: "any", Bracket: "any", Count: 3},
	}
}

func budgetUpgradedSlots(upgradeType string) []models.PackSlot {
	budget := "any"
	if upgradeType != "" && upgradeType != "any" {
		budget = "expensive"
	}
	return []models.PackSlot{
		{CardType: "weighted", Budget: "expensive", Bracket: "any", Count: 1},
		{CardType: "weighted", Budget: budget, Bracket: "any", Count: 11},
		{CardType: "lands", Budget: "any", Bracket: "any", Count: 3},
	}
}

func fullExpensiveSlots() []models.PackSlot {
	return []models.PackSlot{
		{CardType: "weighted", Budget: "expensive", Bracket: "any", Count: 12},
		{CardType: "lands", Budget: "any", Bracket: "any", Count: 3},
	}
}

func bracketSlots(level int) []models.PackSlot {
	bracket := strconv.Itoa(level)
	return []models.PackSlot{
		{CardType: "weighted", Budget: "expensive", Bracket: bracket, Count: 1},
		{CardType: "weighted", Budget: "budget", Bracket: bracket, Count: 11},
		{CardType: "lands", Budget: "any", Bracket: "any", Count: 3},
	}
}

func bracketGroupName(level int) string {
	return groupBracketPrefix + strconv.Itoa(level)
}

var specialTemplates = map[string]models.PackGroup{
	"gamechanger": {
		Name:  "Game Changer",
		Count: 1,
		Slots: []models.PackSlot{{CardType: "gamechangers", Budget: "any", Bracket: "any", Count: 1}},
	},
	"conspiracy": {
		Name:                      "Conspiracy",
		Source:                    "scryfall",
		Count:                     1,
		UseCommanderColorIdentity: true,
		Slots: []models.PackSlot{{
			Query: "https://scryfall.com/search?q=%28t%3Aconspiracy+-is%3Aplaytest%29+OR+%28set%3Amb2+name%3A%22Marchesa%27s+Surprise+Party%22%29+OR+%28set%3Amb2+name%3A%22Rule+with+an+Even+Hand%22%29&unique=cards&as=grid&order=name",
			Count: 1,
		}},
	},
	"banned": {
		Name:                      "Banned Card",
		Source:                    "scryfall",
		Count:                     1,
		UseCommanderColorIdentity: true,
		Slots: []models.PackSlot{{
			Query: "https://scryfall.com/search?q=banned%3Acommander+-f%3Aduel&unique=cards&as=grid&order=name",
			Count: 1,
		}},
	},
	"expensive_lands": {
		Name:                      "Expensive Lands",
		Source:                    "scryfall",
		Count:                     1,
		UseCommanderColorIdentity: true,
		Slots: []models.PackSlot{{
			Query: "https://scryfall.com/search?q=t%3Aland+%28o%3A%22add+%7B%22+OR+o%3A%22mana+of+any%22%29+usd%3E10&unique=cards&as=grid&order=usd",
			Count: 1,
		}},
	},
	"any_cost_lands": {
		Name:                      "Any Cost Lands",
		Source:                    "scryfall",
		Count:                     1,
		UseCommanderColorIdentity: true,
		Slots: []models.PackSlot{{
			Query: "https://scryfall.com/search?q=t%3Aland+%28o%3A%22add+%7B%22+OR+o%3A%22mana+of+any%22%29&unique=cards&as=grid&order=usd",
			Count: 1,
		}},
	},
	"test_cards": {
		Name:   "Test Cards",
		Source: "moxfield",
		Count:  1,
		Slots:  []models.PackSlot{{Count: 1}},
	},
	"silly_cards": {
		Name:   "Silly Cards",
		Source: "moxfield",
		Count:  1,
		Slots:  []models.PackSlot{{Count: 1}},
	},
}

// specialGroup builds the group for one special entry. Unknown names yield a
// generic single-slot group named after the entry.
func specialGroup(entry SpecialEntry) models.PackGroup {
	tmpl, ok := specialTemplates[entry.Name]
	if !ok {
		tmpl = models.PackGroup{Name: entry.Name, Count: 1, Slots: []models.PackSlot{{}}}
	}
	group := tmpl
	group.Slots = append([]models.PackSlot(nil), tmpl.Slots...)
	group.Slots[0].Count = entry.Count
	if entry.MoxfieldDeck != "" {
		group.MoxfieldDeck = entry.MoxfieldDeck
		if group.Source == "" {
			group.Source = "moxfield"
		}
	}
	return group
}
