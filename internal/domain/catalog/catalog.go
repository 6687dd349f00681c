// Package catalog holds the static checklist of fiscal documents each tax regime requires.
// The checklist is plain data: adding a regime or an item is a table edit.
package catalog

import "github.com/garyjia/fiscal-compliance/internal/domain/entity"

// Short aliases keep the table readable
const (
	pf = entity.RegimePF
	sn = entity.RegimeSimples
	lp = entity.RegimeLucroPresumido
	lr = entity.RegimeLucroReal

	once      = entity.FrequencyOnce
	monthly   = entity.FrequencyMonthly
	quarterly = entity.FrequencyQuarterly
	annual    = entity.FrequencyAnnual
)

func regimes(r ...entity.TaxRegime) []entity.TaxRegime { return r }

var (
	pfOnly   = regimes(pf)
	pjOnly   = regimes(sn, lp, lr)
	everyone = regimes(pf, sn, lp, lr)
)

// items is the checklist in declaration order. Section order follows the first
// appearance of each category.
var items = []entity.ChecklistItem{
	// Identificação: PF
	{Category: entity.CategoryIdentificacao, Subcategory: "cpf_rg", Label: "CPF e RG", Description: "Documentos de identificação pessoal", Required: true, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "comprovante_endereco", Label: "Comprovante de Endereço", Description: "Comprovante de endereço atualizado", Required: true, Regimes: everyone, Frequency: annual},
	{Category: entity.CategoryIdentificacao, Subcategory: "dados_bancarios", Label: "Dados Bancários", Description: "Dados da conta para restituição", Required: true, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "titulo_eleitor", Label: "Título de Eleitor", Description: "Exigido pela Receita Federal", Required: false, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "cro_pf", Label: "Registro CRO", Description: "Registro no Conselho Regional de Odontologia", Required: true, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "certificado_digital", Label: "Certificado Digital (e-CPF)", Description: "Para acesso ao e-CAC", Required: true, Regimes: pfOnly, Frequency: annual},

	// Identificação: PJ
	{Category: entity.CategoryIdentificacao, Subcategory: "cnpj", Label: "Cartão CNPJ", Description: "Comprovante de inscrição CNPJ", Required: true, Regimes: pjOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "contrato_social", Label: "Contrato Social", Description: "Contrato social consolidado", Required: true, Regimes: pjOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "alteracoes_contrato", Label: "Alterações Contratuais", Description: "Alterações do contrato social", Required: false, Regimes: pjOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "alvara", Label: "Alvará de Funcionamento", Description: "Alvará municipal de funcionamento", Required: true, Regimes: pjOnly, Frequency: annual},
	{Category: entity.CategoryIdentificacao, Subcategory: "inscricao_municipal", Label: "Inscrição Municipal", Description: "Comprovante de inscrição municipal", Required: true, Regimes: pjOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "licenca_vigilancia", Label: "Licença Vigilância Sanitária", Description: "Licença da vigilância sanitária", Required: true, Regimes: pjOnly, Frequency: annual},
	{Category: entity.CategoryIdentificacao, Subcategory: "cro_pj", Label: "Registro CRO-PJ", Description: "Registro da clínica no CRO", Required: true, Regimes: pjOnly, Frequency: once},
	{Category: entity.CategoryIdentificacao, Subcategory: "certificado_digital", Label: "Certificado Digital (e-CNPJ)", Description: "Para emissão de NFS-e e acesso ao e-CAC", Required: true, Regimes: pjOnly, Frequency: annual},

	// Rendimentos
	{Category: entity.CategoryRendimentos, Subcategory: "livro_caixa", Label: "Livro-Caixa", Description: "Relatório do Livro-Caixa com receitas de pacientes PF", Required: true, Regimes: pfOnly, Frequency: monthly},
	{Category: entity.CategoryRendimentos, Subcategory: "informes_convenios", Label: "Informes de Convênios", Description: "Informes de rendimentos de clínicas/convênios", Required: true, Regimes: everyone, Frequency: annual},
	{Category: entity.CategoryRendimentos, Subcategory: "rpas_emitidos", Label: "RPAs Emitidos", Description: "Recibos de Pagamento a Autônomo", Required: false, Regimes: pfOnly, Frequency: monthly},
	{Category: entity.CategoryRendimentos, Subcategory: "informes_aplicacoes", Label: "Informes de Aplicações", Description: "Informes de rendimentos de aplicações financeiras", Required: false, Regimes: everyone, Frequency: annual},
	{Category: entity.CategoryRendimentos, Subcategory: "informes_alugueis", Label: "Rendimentos de Aluguel", Description: "Comprovantes de rendimentos de aluguéis", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryRendimentos, Subcategory: "notas_fiscais_emitidas", Label: "Notas Fiscais Emitidas", Description: "XMLs ou relatório de NFS-e emitidas", Required: true, Regimes: pjOnly, Frequency: monthly},
	{Category: entity.CategoryRendimentos, Subcategory: "relatorios_maquininha", Label: "Relatórios de Maquininha", Description: "Extratos de vendas por cartão (crédito, débito, Pix)", Required: true, Regimes: everyone, Frequency: monthly},

	// Despesas
	{Category: entity.CategoryDespesas, Subcategory: "aluguel_consultorio", Label: "Aluguel do Consultório", Description: "Recibos de aluguel do consultório", Required: true, Regimes: pfOnly, Frequency: monthly},
	{Category: entity.CategoryDespesas, Subcategory: "agua_luz_internet", Label: "Água, Luz, Internet", Description: "Contas de consumo do consultório", Required: true, Regimes: regimes(pf, lr), Frequency: monthly},
	{Category: entity.CategoryDespesas, Subcategory: "material_odontologico", Label: "Material Odontológico", Description: "Notas fiscais de materiais de consumo", Required: true, Regimes: regimes(pf, lr), Frequency: monthly},
	{Category: entity.CategoryDespesas, Subcategory: "manutencao_equipamentos", Label: "Manutenção de Equipamentos", Description: "Notas de manutenção e reparos", Required: false, Regimes: regimes(pf, lr), Frequency: monthly},
	{Category: entity.CategoryDespesas, Subcategory: "cursos_congressos", Label: "Cursos e Congressos", Description: "Comprovantes de cursos e especializações", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "anuidade_cro", Label: "Anuidade CRO", Description: "Comprovante de pagamento da anuidade", Required: true, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "notas_compras_insumos", Label: "Notas de Compras", Description: "Notas fiscais de compras e insumos", Required: true, Regimes: pjOnly, Frequency: monthly},
	{Category: entity.CategoryDespesas, Subcategory: "contratos_servicos", Label: "Contratos de Serviços", Description: "Contratos de prestação de serviços", Required: true, Regimes: regimes(lp, lr), Frequency: once},
	{Category: entity.CategoryDespesas, Subcategory: "seguros", Label: "Apólices de Seguro", Description: "Seguros da clínica e equipamentos", Required: false, Regimes: regimes(lp, lr), Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "despesas_medicas", Label: "Despesas Médicas", Description: "Recibos de despesas médicas (titular e dependentes)", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "despesas_educacao", Label: "Despesas com Educação", Description: "Comprovantes de despesas educacionais", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "previdencia_privada", Label: "Previdência Privada (PGBL)", Description: "Informe de previdência privada", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDespesas, Subcategory: "doacoes_incentivadas", Label: "Doações Incentivadas", Description: "Comprovantes de doações dedutíveis", Required: false, Regimes: pfOnly, Frequency: annual},

	// Folha de pagamento
	{Category: entity.CategoryFolhaPagamento, Subcategory: "holerites", Label: "Holerites / Recibos", Description: "Recibos de pagamento de funcionários", Required: true, Regimes: everyone, Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "guias_fgts", Label: "Guias FGTS", Description: "Guias de recolhimento do FGTS", Required: true, Regimes: everyone, Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "guias_gps_inss", Label: "Guias GPS/INSS", Description: "Guias de recolhimento previdenciário", Required: true, Regimes: everyone, Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "guias_irrf", Label: "Guias IRRF Salários", Description: "Imposto retido na fonte sobre salários", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "recibos_prolabore", Label: "Recibos de Pró-labore", Description: "Recibos de pró-labore dos sócios", Required: true, Regimes: pjOnly, Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "distribuicao_lucros", Label: "Distribuição de Lucros", Description: "Comprovantes de distribuição de lucros", Required: true, Regimes: pjOnly, Frequency: monthly},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "rescisoes", Label: "Rescisões", Description: "Termos de rescisão contratual", Required: false, Regimes: everyone, Frequency: once},
	{Category: entity.CategoryFolhaPagamento, Subcategory: "contratos_trabalho", Label: "Contratos de Trabalho", Description: "Contratos de trabalho dos funcionários", Required: true, Regimes: regimes(lr), Frequency: once},

	// Impostos pagos
	{Category: entity.CategoryImpostos, Subcategory: "carne_leao", Label: "Carnê-Leão", Description: "DARFs do carnê-leão mensal", Required: true, Regimes: pfOnly, Frequency: monthly},
	{Category: entity.CategoryImpostos, Subcategory: "inss_autonomo", Label: "INSS Autônomo", Description: "Guias de INSS como contribuinte individual", Required: true, Regimes: pfOnly, Frequency: monthly},
	{Category: entity.CategoryImpostos, Subcategory: "das_simples", Label: "DAS - Simples Nacional", Description: "Guias do DAS pagas", Required: true, Regimes: regimes(sn), Frequency: monthly},
	{Category: entity.CategoryImpostos, Subcategory: "darf_irpj", Label: "DARF IRPJ", Description: "Guias de IRPJ trimestrais", Required: true, Regimes: regimes(lp, lr), Frequency: quarterly},
	{Category: entity.CategoryImpostos, Subcategory: "darf_csll", Label: "DARF CSLL", Description: "Guias de CSLL trimestrais", Required: true, Regimes: regimes(lp, lr), Frequency: quarterly},
	{Category: entity.CategoryImpostos, Subcategory: "darf_pis", Label: "DARF PIS", Description: "Guias de PIS mensais", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},
	{Category: entity.CategoryImpostos, Subcategory: "darf_cofins", Label: "DARF COFINS", Description: "Guias de COFINS mensais", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},
	{Category: entity.CategoryImpostos, Subcategory: "guia_iss", Label: "Guia ISS", Description: "Guias de ISS municipal", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},

	// Bens e direitos
	{Category: entity.CategoryBensDireitos, Subcategory: "imoveis_escritura", Label: "Imóveis - Escritura", Description: "Escrituras de imóveis", Required: false, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryBensDireitos, Subcategory: "imoveis_matricula", Label: "Imóveis - Matrícula", Description: "Matrículas atualizadas dos imóveis", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryBensDireitos, Subcategory: "veiculos_crlv", Label: "Veículos - CRLV", Description: "CRLV dos veículos", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryBensDireitos, Subcategory: "equipamentos_nf", Label: "Equipamentos - NF", Description: "Notas fiscais de equipamentos odontológicos", Required: false, Regimes: regimes(pf, lr), Frequency: once},
	{Category: entity.CategoryBensDireitos, Subcategory: "investimentos_extrato", Label: "Investimentos - Extrato 31/12", Description: "Extratos de investimentos em 31/12", Required: true, Regimes: everyone, Frequency: annual},
	{Category: entity.CategoryBensDireitos, Subcategory: "saldo_bancario", Label: "Saldo Bancário 31/12", Description: "Saldos em conta corrente e poupança em 31/12", Required: true, Regimes: everyone, Frequency: annual},

	// Dívidas
	{Category: entity.CategoryDividas, Subcategory: "financiamento_imovel", Label: "Financiamento Imóvel", Description: "Contrato e saldo devedor de financiamento imobiliário", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDividas, Subcategory: "financiamento_veiculo", Label: "Financiamento Veículo", Description: "Contrato e saldo devedor de financiamento de veículo", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDividas, Subcategory: "financiamento_equipamentos", Label: "Financiamento Equipamentos", Description: "Contrato e saldo devedor de equipamentos", Required: false, Regimes: regimes(pf, lp, lr), Frequency: annual},
	{Category: entity.CategoryDividas, Subcategory: "emprestimos_bancarios", Label: "Empréstimos Bancários", Description: "Contratos de empréstimos", Required: false, Regimes: everyone, Frequency: annual},

	// Dependentes (PF)
	{Category: entity.CategoryDependentes, Subcategory: "cpf_dependentes", Label: "CPF dos Dependentes", Description: "CPF de todos os dependentes", Required: false, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryDependentes, Subcategory: "certidao_nascimento", Label: "Certidão de Nascimento", Description: "Certidões de nascimento dos filhos", Required: false, Regimes: pfOnly, Frequency: once},
	{Category: entity.CategoryDependentes, Subcategory: "despesas_medicas_dep", Label: "Despesas Médicas Dependentes", Description: "Recibos de despesas médicas dos dependentes", Required: false, Regimes: pfOnly, Frequency: annual},
	{Category: entity.CategoryDependentes, Subcategory: "despesas_educacao_dep", Label: "Despesas Educação Dependentes", Description: "Comprovantes de despesas educacionais dos dependentes", Required: false, Regimes: pfOnly, Frequency: annual},

	// Específicos: Simples Nacional
	{Category: entity.CategoryEspecificos, Subcategory: "faturamento_mensal", Label: "Faturamento Mensal (12 meses)", Description: "Relatório de faturamento mês a mês", Required: true, Regimes: regimes(sn), Frequency: monthly},
	{Category: entity.CategoryEspecificos, Subcategory: "fator_r_calculo", Label: "Cálculo Fator R", Description: "Demonstrativo do Fator R (Folha/Faturamento)", Required: true, Regimes: regimes(sn), Frequency: monthly},
	{Category: entity.CategoryEspecificos, Subcategory: "defis", Label: "DEFIS", Description: "Declaração de Informações Socioeconômicas e Fiscais", Required: true, Regimes: regimes(sn), Frequency: annual},

	// Específicos: Lucro Presumido
	{Category: entity.CategoryEspecificos, Subcategory: "balancete_trimestral", Label: "Balancete Trimestral", Description: "Balancete contábil trimestral", Required: true, Regimes: regimes(lp), Frequency: quarterly},
	{Category: entity.CategoryEspecificos, Subcategory: "retencoes_fonte_pcc", Label: "Retenções na Fonte (PCC)", Description: "Comprovantes de PIS/COFINS/CSLL retidos", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},
	{Category: entity.CategoryEspecificos, Subcategory: "retencoes_fonte_irrf", Label: "Retenções na Fonte (IRRF)", Description: "Comprovantes de IRRF retido por convênios", Required: true, Regimes: regimes(lp, lr), Frequency: monthly},
	{Category: entity.CategoryEspecificos, Subcategory: "dre", Label: "DRE", Description: "Demonstração do Resultado do Exercício", Required: true, Regimes: regimes(lp, lr), Frequency: annual},

	// Específicos: Lucro Real
	{Category: entity.CategoryEspecificos, Subcategory: "livro_diario", Label: "Livro Diário", Description: "Livro Diário da escrituração contábil", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "livro_razao", Label: "Livro Razão", Description: "Livro Razão da escrituração contábil", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "lalur", Label: "LALUR", Description: "Livro de Apuração do Lucro Real", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "lacs", Label: "LACS", Description: "Livro de Apuração da CSLL", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "balanco_patrimonial", Label: "Balanço Patrimonial", Description: "Balanço Patrimonial anual", Required: true, Regimes: regimes(lp, lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "controle_estoque", Label: "Controle de Estoque", Description: "Controle de estoque de materiais", Required: true, Regimes: regimes(lr), Frequency: monthly},
	{Category: entity.CategoryEspecificos, Subcategory: "inventario", Label: "Inventário 31/12", Description: "Inventário físico em 31/12", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "depreciacao_ativos", Label: "Depreciação de Ativos", Description: "Laudos de depreciação de equipamentos", Required: true, Regimes: regimes(lr), Frequency: annual},
	{Category: entity.CategoryEspecificos, Subcategory: "creditos_pis_cofins", Label: "Créditos PIS/COFINS", Description: "Notas para apropriação de créditos (regime não-cumulativo)", Required: true, Regimes: regimes(lr), Frequency: monthly},
}

// All returns a copy of the full catalog in declaration order
func All() []entity.ChecklistItem {
	out := make([]entity.ChecklistItem, len(items))
	copy(out, items)
	return out
}

// ByRegime returns the catalog items that apply to the regime, in catalog order.
// The "all" sentinel returns every item.
func ByRegime(regime entity.TaxRegime) []entity.ChecklistItem {
	if regime == entity.RegimeAll {
		return All()
	}
	out := make([]entity.ChecklistItem, 0, len(items))
	for _, item := range items {
		if item.AppliesTo(regime) {
			out = append(out, item)
		}
	}
	return out
}

// GroupByCategory groups item states into sections. Sections appear in the order
// their category first appears in states; items keep their relative order.
func GroupByCategory(states []entity.ChecklistItemState) []entity.ChecklistSection {
	index := make(map[entity.Category]int)
	var sections []entity.ChecklistSection

	for _, state := range states {
		i, ok := index[state.Category]
		if !ok {
			i = len(sections)
			index[state.Category] = i
			sections = append(sections, entity.ChecklistSection{
				Category: state.Category,
				Label:    state.Category.Label(),
				Icon:     state.Category.Icon(),
			})
		}

		section := &sections[i]
		section.Items = append(section.Items, state)
		section.TotalCount++
		if state.IsComplete {
			section.CompletedCount++
		}
	}

	return sections
}

// Group wraps plain catalog items into incomplete states and groups them
func Group(items []entity.ChecklistItem) []entity.ChecklistSection {
	states := make([]entity.ChecklistItemState, len(items))
	for i, item := range items {
		states[i] = entity.ChecklistItemState{ChecklistItem: item}
	}
	return GroupByCategory(states)
}
