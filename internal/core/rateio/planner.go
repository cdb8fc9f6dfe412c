package rateio

import (
	"sort"
	"strings"

	"rateio-service/internal/domain"

	"github.com/schollz/closestmatch"
)

// OpcoesPlano configura a montagem do plano de rateio.
type OpcoesPlano struct {
	// TipoRecurso restringe os saldos considerados ("LIVRE" por padrão nos
	// handlers); vazio considera todos.
	TipoRecurso string
	// AproximarSecretarias liga o casamento aproximado entre os nomes de
	// secretaria das duas planilhas quando o casamento exato (sem acentos,
	// maiúsculas) falha. Um casamento aproximado só é aceito quando os dois
	// nomes compartilham ao menos uma palavra significativa; sem contraparte
	// plausível o saldo permanece na própria secretaria.
	AproximarSecretarias bool
	Rateio               OpcoesRateio
}

// fornecedorInfo guarda nome e CNPJ de exibição de uma chave da demanda.
type fornecedorInfo struct {
	fornecedor string
	cnpj       string
}

// MontarPlano combina o vetor de demanda por secretaria com os saldos por
// secretaria e produz o resumo por secretaria mais o detalhamento por
// fornecedor, invocando o rateio uma vez por secretaria com saldo livre
// positivo.
func MontarPlano(debitos []domain.Debito, saldos []domain.Saldo, op OpcoesPlano) (*domain.PlanoRateio, error) {
	nomeSec := make(map[string]string)
	registrarSec := func(nome string) string {
		chave := normalizarTexto(nome)
		if chave == "" {
			chave = nome
		}
		if _, ok := nomeSec[chave]; !ok {
			nomeSec[chave] = nome
		}
		return chave
	}

	// débitos com a secretaria canonicalizada, para agregação por chave
	canon := make([]domain.Debito, len(debitos))
	for i, d := range debitos {
		d.Secretaria = registrarSec(d.Secretaria)
		canon[i] = d
	}

	demanda := AgregarDemanda(canon, true)

	demandaSec := make(map[string]map[string]float64)
	for chave, divida := range demanda {
		porFornecedor := demandaSec[chave.Secretaria]
		if porFornecedor == nil {
			porFornecedor = make(map[string]float64)
			demandaSec[chave.Secretaria] = porFornecedor
		}
		porFornecedor[chave.ID] = divida
	}

	info := make(map[domain.ChaveFornecedor]fornecedorInfo)
	for _, d := range canon {
		if d.Valor <= 0 {
			continue
		}
		chave := domain.ChaveFornecedor{ID: chaveDeDebito(d), Secretaria: d.Secretaria}
		if _, ok := info[chave]; !ok {
			info[chave] = fornecedorInfo{fornecedor: d.Fornecedor, cnpj: d.CNPJ}
		}
	}

	var cm *closestmatch.ClosestMatch
	if op.AproximarSecretarias && len(demandaSec) > 0 {
		chavesDemanda := make([]string, 0, len(demandaSec))
		for sec := range demandaSec {
			chavesDemanda = append(chavesDemanda, sec)
		}
		cm = closestmatch.New(chavesDemanda, []int{3, 4})
	}

	// saldos com a secretaria canonicalizada (e aproximada, quando ligado)
	saldosCanon := make([]domain.Saldo, 0, len(saldos))
	for _, s := range saldos {
		if op.TipoRecurso != "" && s.TipoRecurso != op.TipoRecurso {
			continue
		}
		sec := registrarSec(s.Secretaria)
		if _, temDemanda := demandaSec[sec]; !temDemanda && cm != nil {
			if match := cm.Closest(sec); match != "" && compartilhamPalavra(sec, match) {
				sec = match
			}
		}
		s.Secretaria = sec
		saldosCanon = append(saldosCanon, s)
	}

	secretarias := make(map[string]bool, len(demandaSec)+len(saldosCanon))
	for sec := range demandaSec {
		secretarias[sec] = true
	}
	for _, s := range saldosCanon {
		secretarias[s.Secretaria] = true
	}
	ordenadas := make([]string, 0, len(secretarias))
	for sec := range secretarias {
		ordenadas = append(ordenadas, sec)
	}
	sort.Slice(ordenadas, func(i, j int) bool { return nomeSec[ordenadas[i]] < nomeSec[ordenadas[j]] })

	plano := &domain.PlanoRateio{}
	tol := op.Rateio.Tolerancia
	if tol <= 0 {
		tol = ToleranciaPadrao
	}

	for _, sec := range ordenadas {
		porFornecedor := demandaSec[sec]

		totalDebitos := arredondar(somaValores(porFornecedor), 2)
		saldoLivre := AgregarSaldos(saldosCanon, op.TipoRecurso, sec)

		disponivel := saldoLivre
		if disponivel < 0 {
			disponivel = 0
		}
		pagavel := totalDebitos
		if disponivel < pagavel {
			pagavel = disponivel
		}
		restante := arredondar(totalDebitos-pagavel, 2)
		if restante < 0 {
			restante = 0
		}

		plano.Secretarias = append(plano.Secretarias, domain.PlanoSecretaria{
			Secretaria:    nomeSec[sec],
			TotalDebitos:  totalDebitos,
			SaldoLivre:    saldoLivre,
			TotalPagavel:  pagavel,
			TotalRestante: restante,
		})
		plano.TotalDebitos = arredondar(plano.TotalDebitos+totalDebitos, 2)
		plano.TotalSaldos = arredondar(plano.TotalSaldos+saldoLivre, 2)
		plano.TotalPagavel = arredondar(plano.TotalPagavel+pagavel, 2)
		plano.TotalRestante = arredondar(plano.TotalRestante+restante, 2)

		if len(porFornecedor) == 0 {
			continue
		}

		var pago, emAberto map[string]float64
		if disponivel > tol {
			var err error
			pago, emAberto, err = RatearComOpcoes(disponivel, porFornecedor, op.Rateio)
			if err != nil {
				return nil, err
			}
		}

		ids := make([]string, 0, len(porFornecedor))
		for id := range porFornecedor {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			fi := info[domain.ChaveFornecedor{ID: ids[i], Secretaria: sec}]
			fj := info[domain.ChaveFornecedor{ID: ids[j], Secretaria: sec}]
			if fi.fornecedor != fj.fornecedor {
				return fi.fornecedor < fj.fornecedor
			}
			return fi.cnpj < fj.cnpj
		})

		for _, id := range ids {
			f := info[domain.ChaveFornecedor{ID: id, Secretaria: sec}]
			divida := porFornecedor[id]
			pagamento := domain.PagamentoFornecedor{
				Secretaria: nomeSec[sec],
				Fornecedor: f.fornecedor,
				CNPJ:       f.cnpj,
				Divida:     divida,
				Pagavel:    0,
				Restante:   divida,
			}
			if pago != nil {
				pagamento.Pagavel = pago[id]
				pagamento.Restante = emAberto[id]
			}
			plano.Pagamentos = append(plano.Pagamentos, pagamento)
		}
	}

	return plano, nil
}

// compartilhamPalavra exige uma palavra significativa (4+ letras) em comum
// entre os dois nomes, para não reatribuir um saldo a uma secretaria sem
// relação com a original.
func compartilhamPalavra(a, b string) bool {
	palavras := make(map[string]bool)
	for _, p := range strings.Fields(a) {
		if len(p) >= 4 {
			palavras[p] = true
		}
	}
	for _, p := range strings.Fields(b) {
		if len(p) >= 4 && palavras[p] {
			return true
		}
	}
	return false
}
