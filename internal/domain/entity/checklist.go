package entity

// ChecklistItem is a static catalog entry describing one document an operator must supply
type ChecklistItem struct {
	Category    Category    `json:"category"`
	Subcategory string      `json:"subcategory"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Regimes     []TaxRegime `json:"regimes"`
	Frequency   Frequency   `json:"frequency"`
}

// AppliesTo reports whether the item is part of the regime's checklist
func (i ChecklistItem) AppliesTo(regime TaxRegime) bool {
	if regime == RegimeAll {
		return true
	}
	for _, r := range i.Regimes {
		if r == regime || r == RegimeAll {
			return true
		}
	}
	return false
}

// Key identifies the item within the catalog
func (i ChecklistItem) Key() string {
	return string(i.Category) + ":" + i.Subcategory
}

// ChecklistItemState is a catalog item joined with the documents supplied for it
type ChecklistItemState struct {
	ChecklistItem
	Documents  []*FiscalDocument `json:"documents"`
	IsComplete bool              `json:"is_complete"`
}

// ChecklistSection groups the item states of one category
type ChecklistSection struct {
	Category       Category             `json:"category"`
	Label          string               `json:"label"`
	Icon           string               `json:"icon"`
	Items          []ChecklistItemState `json:"items"`
	CompletedCount int                  `json:"completed_count"`
	TotalCount     int                  `json:"total_count"`
}

// ChecklistReport is the evaluated checklist of a clinic for one regime and fiscal year
type ChecklistReport struct {
	Sections   []ChecklistSection `json:"sections"`
	Completed  int                `json:"completed"`
	Total      int                `json:"total"`
	Percentage int                `json:"percentage"`
}
