package entity

// TaxRegime is the fiscal classification of a clinic
type TaxRegime string

// Tax regime constants
const (
	RegimePF             TaxRegime = "pf"              // Pessoa Física
	RegimeSimples        TaxRegime = "simples"         // Simples Nacional
	RegimeLucroPresumido TaxRegime = "lucro_presumido" // Lucro Presumido
	RegimeLucroReal      TaxRegime = "lucro_real"      // Lucro Real
	RegimeAll            TaxRegime = "all"             // applies to every regime
)

// Regimes lists the concrete regimes a clinic can be filed under
var Regimes = []TaxRegime{RegimePF, RegimeSimples, RegimeLucroPresumido, RegimeLucroReal}

// Valid reports whether r is a known regime (including the "all" sentinel)
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimePF, RegimeSimples, RegimeLucroPresumido, RegimeLucroReal, RegimeAll:
		return true
	}
	return false
}

// Category is a fiscal document category
type Category string

// Category constants, in section display order
const (
	CategoryIdentificacao  Category = "identificacao"   // Identification documents
	CategoryRendimentos    Category = "rendimentos"     // Income/revenue
	CategoryDespesas       Category = "despesas"        // Expenses
	CategoryFolhaPagamento Category = "folha_pagamento" // Payroll
	CategoryImpostos       Category = "impostos"        // Tax payments
	CategoryBensDireitos   Category = "bens_direitos"   // Assets and rights
	CategoryDividas        Category = "dividas"         // Debts and financing
	CategoryDependentes    Category = "dependentes"     // Dependents (PF only)
	CategoryEspecificos    Category = "especificos"     // Regime-specific documents
)

// Categories lists every category in declaration order
var Categories = []Category{
	CategoryIdentificacao,
	CategoryRendimentos,
	CategoryDespesas,
	CategoryFolhaPagamento,
	CategoryImpostos,
	CategoryBensDireitos,
	CategoryDividas,
	CategoryDependentes,
	CategoryEspecificos,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Frequency is how often a checklist item must be supplied
type Frequency string

// Frequency constants
const (
	FrequencyOnce      Frequency = "once"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// frequencyAnnually is the spelling used by stored reminders
const frequencyAnnually Frequency = "annually"

// Normalize maps stored spellings onto the canonical constants
func (f Frequency) Normalize() Frequency {
	if f == frequencyAnnually {
		return FrequencyAnnual
	}
	return f
}

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	switch f.Normalize() {
	case FrequencyOnce, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// File type constants for stored documents
const (
	FileTypeImage    = "image"
	FileTypePDF      = "pdf"
	FileTypeDocument = "document"
)

// DateLayout is the wire format for date-only values
const DateLayout = "2006-01-02"
