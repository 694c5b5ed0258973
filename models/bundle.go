package models

// BundleConfig is the generation bundle handed to the pack generator.
// Group order in PackTypes is significant.
type BundleConfig struct {
	PackTypes         []PackGroup  `json:"packTypes"`
	CommanderQuantity int          `json:"commanderQuantity,omitempty"`
	ColorFilter       *ColorFilter `json:"colorFilter,omitempty"`
}

type PackGroup struct {
	Name                      string     `json:"name,omitempty"`
	Count                     int        `json:"count"`
	Source                    string     `json:"source,omitempty"`
	UseCommanderColorIdentity bool       `json:"useCommanderColorIdentity,omitempty"`
	MoxfieldDeck              string     `json:"moxfieldDeck,omitempty"`
	Slots                     []PackSlot `json:"slots"`
}

type PackSlot struct {
	CardType string `json:"cardType,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Bracket  string `json:"bracket,omitempty"`
	Query    string `json:"query,omitempty"`
	Count    int    `json:"count"`
}

type ColorFilter struct {
	Mode             string   `json:"colorFilterMode"`
	AllowedColors    []string `json:"allowedColors,omitempty"`
	IncludeColorless bool     `json:"includeColorless"`
}

// TotalPacks sums the counts of every group
func (b BundleConfig) TotalPacks() int {
	total := 0
	for _, g := range b.PackTypes {
		total += g.Count
	}
	return total
}
