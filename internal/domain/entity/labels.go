package entity

var categoryLabels = map[Category]string{
	CategoryIdentificacao:  "Identificação",
	CategoryRendimentos:    "Rendimentos / Faturamento",
	CategoryDespesas:       "Despesas",
	CategoryFolhaPagamento: "Folha de Pagamento",
	CategoryImpostos:       "Impostos Pagos",
	CategoryBensDireitos:   "Bens e Direitos",
	CategoryDividas:        "Dívidas",
	CategoryDependentes:    "Dependentes",
	CategoryEspecificos:    "Documentos Específicos",
}

var categoryIcons = map[Category]string{
	CategoryIdentificacao:  "id-card",
	CategoryRendimentos:    "trending-up",
	CategoryDespesas:       "receipt",
	CategoryFolhaPagamento: "users",
	CategoryImpostos:       "file-text",
	CategoryBensDireitos:   "home",
	CategoryDividas:        "credit-card",
	CategoryDependentes:    "user-plus",
	CategoryEspecificos:    "folder",
}

var regimeLabels = map[TaxRegime]string{
	RegimePF:             "Pessoa Física",
	RegimeSimples:        "Simples Nacional",
	RegimeLucroPresumido: "Lucro Presumido",
	RegimeLucroReal:      "Lucro Real",
	RegimeAll:            "Todos os Regimes",
}

// Label returns the display label of the category, or its raw value when unknown
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Icon returns the icon name used for the category section
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "folder"
}

// HasLabel reports whether a label entry exists for the category
func (c Category) HasLabel() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label of the regime
func (r TaxRegime) Label() string {
	if label, ok := regimeLabels[r]; ok {
		return label
	}
	return string(r)
}
