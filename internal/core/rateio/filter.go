package rateio

import (
	"sort"
	"strings"
	"time"

	"rateio-service/internal/domain"
)

// FiltroDebitos são os filtros da barra lateral do painel, como parâmetros
// explícitos em vez de estado de sessão.
type FiltroDebitos struct {
	DataInicial      *time.Time
	DataFinal        *time.Time
	Secretarias      []string
	Fornecedores     []string
	CNPJs            []string
	FornecedorContem string
	ValorMinimo      *float64
	ValorMaximo      *float64
}

// FiltroSaldos filtra os registros de Saldos.
type FiltroSaldos struct {
	Secretarias  []string
	Bancos       []string
	TiposRecurso []string
}

func contem(valores []string, v string) bool {
	for _, x := range valores {
		if x == v {
			return true
		}
	}
	return false
}

// FiltrarDebitos aplica o filtro e devolve um novo slice.
func FiltrarDebitos(debitos []domain.Debito, f FiltroDebitos) []domain.Debito {
	busca := strings.ToUpper(strings.TrimSpace(f.FornecedorContem))
	var out []domain.Debito
	for _, d := range debitos {
		if f.DataInicial != nil && d.Data.Before(*f.DataInicial) {
			continue
		}
		if f.DataFinal != nil && d.Data.After(*f.DataFinal) {
			continue
		}
		if len(f.Secretarias) > 0 && !contem(f.Secretarias, d.Secretaria) {
			continue
		}
		if len(f.Fornecedores) > 0 && !contem(f.Fornecedores, d.Fornecedor) {
			continue
		}
		if len(f.CNPJs) > 0 && !contem(f.CNPJs, d.CNPJ) {
			continue
		}
		if busca != "" && !strings.Contains(strings.ToUpper(d.Fornecedor), busca) {
			continue
		}
		if f.ValorMinimo != nil && d.Valor < *f.ValorMinimo {
			continue
		}
		if f.ValorMaximo != nil && d.Valor > *f.ValorMaximo {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FiltrarSaldos aplica o filtro e devolve um novo slice.
func FiltrarSaldos(saldos []domain.Saldo, f FiltroSaldos) []domain.Saldo {
	var tipos []string
	for _, t := range f.TiposRecurso {
		tipos = append(tipos, strings.ToUpper(strings.TrimSpace(t)))
	}
	var out []domain.Saldo
	for _, s := range saldos {
		if len(f.Secretarias) > 0 && !contem(f.Secretarias, s.Secretaria) {
			continue
		}
		if len(f.Bancos) > 0 && !contem(f.Bancos, s.Banco) {
			continue
		}
		if len(tipos) > 0 && !contem(tipos, s.TipoRecurso) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ResumirDebitos produz os KPIs e as tabelas dos gráficos do painel de
// Débitos: totais, soma por secretaria e ranking de fornecedores.
func ResumirDebitos(debitos []domain.Debito, topN int) domain.ResumoDebitos {
	resumo := domain.ResumoDebitos{Registros: len(debitos)}

	porSecretaria := make(map[string]float64)
	type fornecedorChave struct{ fornecedor, cnpj string }
	porFornecedor := make(map[fornecedorChave]float64)

	for _, d := range debitos {
		resumo.ValorTotal += d.Valor
		porSecretaria[d.Secretaria] += d.Valor
		porFornecedor[fornecedorChave{d.Fornecedor, d.CNPJ}] += d.Valor
	}
	resumo.ValorTotal = arredondar(resumo.ValorTotal, 2)
	resumo.Fornecedores = len(porFornecedor)
	resumo.Secretarias = len(porSecretaria)

	for sec, v := range porSecretaria {
		resumo.PorSecretaria = append(resumo.PorSecretaria, domain.TotalSecretaria{Secretaria: sec, Valor: arredondar(v, 2)})
	}
	sort.Slice(resumo.PorSecretaria, func(i, j int) bool {
		if resumo.PorSecretaria[i].Valor != resumo.PorSecretaria[j].Valor {
			return resumo.PorSecretaria[i].Valor > resumo.PorSecretaria[j].Valor
		}
		return resumo.PorSecretaria[i].Secretaria < resumo.PorSecretaria[j].Secretaria
	})

	for chave, v := range porFornecedor {
		resumo.TopFornecedores = append(resumo.TopFornecedores, domain.TotalFornecedor{
			Fornecedor: chave.fornecedor,
			CNPJ:       chave.cnpj,
			Valor:      arredondar(v, 2),
		})
	}
	sort.Slice(resumo.TopFornecedores, func(i, j int) bool {
		if resumo.TopFornecedores[i].Valor != resumo.TopFornecedores[j].Valor {
			return resumo.TopFornecedores[i].Valor > resumo.TopFornecedores[j].Valor
		}
		return resumo.TopFornecedores[i].Fornecedor < resumo.TopFornecedores[j].Fornecedor
	})
	if topN > 0 && topN < len(resumo.TopFornecedores) {
		resumo.TopFornecedores = resumo.TopFornecedores[:topN]
	}

	return resumo
}

// ResumirSaldos produz os KPIs e a soma por secretaria do painel de Saldos.
func ResumirSaldos(saldos []domain.Saldo) domain.ResumoSaldos {
	resumo := domain.ResumoSaldos{Contas: len(saldos)}

	porSecretaria := make(map[string]float64)
	for _, s := range saldos {
		resumo.SaldoTotal += s.Valor
		porSecretaria[s.Secretaria] += s.Valor
	}
	resumo.SaldoTotal = arredondar(resumo.SaldoTotal, 2)
	resumo.Secretarias = len(porSecretaria)

	for sec, v := range porSecretaria {
		resumo.PorSecretaria = append(resumo.PorSecretaria, domain.TotalSecretaria{Secretaria: sec, Valor: arredondar(v, 2)})
	}
	sort.Slice(resumo.PorSecretaria, func(i, j int) bool {
		if resumo.PorSecretaria[i].Valor != resumo.PorSecretaria[j].Valor {
			return resumo.PorSecretaria[i].Valor > resumo.PorSecretaria[j].Valor
		}
		return resumo.PorSecretaria[i].Secretaria < resumo.PorSecretaria[j].Secretaria
	})

	return resumo
}
