// package domain/models.go
package domain

import "time"

// Debito representa uma linha normalizada da planilha de Débitos.
type Debito struct {
	Data       time.Time `json:"data"`
	Fornecedor string    `json:"fornecedor"`
	CNPJ       string    `json:"cnpj"`
	Valor      float64   `json:"valor"`
	Secretaria string    `json:"secretaria"`
}

// Saldo representa uma linha normalizada da planilha de Saldos bancários.
type Saldo struct {
	Conta       string  `json:"conta"`
	NomeConta   string  `json:"nome_da_conta"`
	Secretaria  string  `json:"secretaria"`
	Banco       string  `json:"banco"`
	TipoRecurso string  `json:"tipo_de_recurso"`
	Valor       float64 `json:"saldo_bancario"`
}

// RecursoLivre é o tipo de recurso elegível para rateio por padrão.
const RecursoLivre = "LIVRE"

// MotivoRejeicao tags a rejected input row with the reason it was dropped.
type MotivoRejeicao string

// Reasons for dropping a row during normalization.
const (
	MotivoDataInvalida    MotivoRejeicao = "invalid_date"
	MotivoValorInvalido   MotivoRejeicao = "invalid_amount"
	MotivoFornecedorVazio MotivoRejeicao = "empty_vendor"
	MotivoSecretariaVazia MotivoRejeicao = "empty_department"
	MotivoContaVazia      MotivoRejeicao = "empty_account"
)

// LinhaRejeitada carries a dropped raw row for the diagnostic table.
type LinhaRejeitada struct {
	Linha  int            `json:"linha"`
	Motivo MotivoRejeicao `json:"motivo"`
	Campos []string       `json:"campos"`
}

// Tabela is the loader's output: upper-trimmed headers plus raw string rows.
type Tabela struct {
	Colunas []string
	Linhas  [][]string
}

// IndiceColunas maps each header to its position. Later duplicates lose.
func (t Tabela) IndiceColunas() map[string]int {
	idx := make(map[string]int, len(t.Colunas))
	for i := len(t.Colunas) - 1; i >= 0; i-- {
		idx[t.Colunas[i]] = i
	}
	return idx
}

// ChaveFornecedor identifies a vendor in a demand vector: CNPJ when present,
// vendor name otherwise, optionally scoped to one secretaria.
type ChaveFornecedor struct {
	ID         string `json:"id"`
	Secretaria string `json:"secretaria,omitempty"`
}

// PagamentoFornecedor is one vendor-level row of an allocation result.
type PagamentoFornecedor struct {
	Secretaria string  `json:"secretaria"`
	Fornecedor string  `json:"fornecedor"`
	CNPJ       string  `json:"cnpj"`
	Divida     float64 `json:"divida"`
	Pagavel    float64 `json:"pagavel"`
	Restante   float64 `json:"restante"`
}

// PlanoSecretaria is one department-level row of the rateio plan.
type PlanoSecretaria struct {
	Secretaria    string  `json:"secretaria"`
	TotalDebitos  float64 `json:"total_debitos"`
	SaldoLivre    float64 `json:"saldo_livre"`
	TotalPagavel  float64 `json:"total_pagavel"`
	TotalRestante float64 `json:"total_restante"`
}

// PlanoRateio is the full plan report consumed by the export layer.
type PlanoRateio struct {
	Secretarias   []PlanoSecretaria     `json:"secretarias"`
	Pagamentos    []PagamentoFornecedor `json:"pagamentos"`
	TotalDebitos  float64               `json:"total_debitos"`
	TotalSaldos   float64               `json:"total_saldos"`
	TotalPagavel  float64               `json:"total_pagavel"`
	TotalRestante float64               `json:"total_restante"`
}

// TotalSecretaria is a per-department sum used by the summary tables.
type TotalSecretaria struct {
	Secretaria string  `json:"secretaria"`
	Valor      float64 `json:"valor"`
}

// TotalFornecedor is one row of the top-N vendor ranking.
type TotalFornecedor struct {
	Fornecedor string  `json:"fornecedor"`
	CNPJ       string  `json:"cnpj"`
	Valor      float64 `json:"valor"`
}

// ResumoDebitos mirrors the dashboard KPIs and chart tables for Débitos.
type ResumoDebitos struct {
	ValorTotal      float64           `json:"valor_total"`
	Registros       int               `json:"registros"`
	Fornecedores    int               `json:"fornecedores"`
	Secretarias     int               `json:"secretarias"`
	PorSecretaria   []TotalSecretaria `json:"por_secretaria"`
	TopFornecedores []TotalFornecedor `json:"top_fornecedores"`
}

// ResumoSaldos mirrors the dashboard KPIs and chart tables for Saldos.
type ResumoSaldos struct {
	SaldoTotal    float64           `json:"saldo_total"`
	Contas        int               `json:"contas"`
	Secretarias   int               `json:"secretarias"`
	PorSecretaria []TotalSecretaria `json:"por_secretaria"`
}
