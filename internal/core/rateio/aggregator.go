package rateio

import (
	"sort"
	"strings"

	"rateio-service/internal/domain"
)

// chaveDeDebito deriva a identidade estável do fornecedor: CNPJ quando
// presente, senão o próprio nome.
func chaveDeDebito(d domain.Debito) string {
	if d.CNPJ != "" {
		return d.CNPJ
	}
	return d.Fornecedor
}

// AgregarDemanda agrupa os débitos num vetor de demanda por fornecedor,
// opcionalmente escopado por secretaria. Fornecedores com dívida zero nunca
// entram como chave.
func AgregarDemanda(debitos []domain.Debito, porSecretaria bool) map[domain.ChaveFornecedor]float64 {
	demanda := make(map[domain.ChaveFornecedor]float64)
	for _, d := range debitos {
		if d.Valor <= 0 {
			continue
		}
		chave := domain.ChaveFornecedor{ID: chaveDeDebito(d)}
		if porSecretaria {
			chave.Secretaria = d.Secretaria
		}
		demanda[chave] += d.Valor
	}
	for chave, v := range demanda {
		demanda[chave] = arredondar(v, 2)
	}
	return demanda
}

// AgregarSaldos soma os saldos que passam nos filtros opcionais de tipo de
// recurso e de secretaria. Retorna 0 quando nada casa.
func AgregarSaldos(saldos []domain.Saldo, tipoRecurso, secretaria string) float64 {
	var total float64
	tipo := strings.ToUpper(strings.TrimSpace(tipoRecurso))
	for _, s := range saldos {
		if tipo != "" && s.TipoRecurso != tipo {
			continue
		}
		if secretaria != "" && s.Secretaria != secretaria {
			continue
		}
		total += s.Valor
	}
	return arredondar(total, 2)
}

// ChavesOrdenadas devolve as chaves do vetor de demanda em ordem estável
// (secretaria, depois id), para iteração determinística.
func ChavesOrdenadas(demanda map[domain.ChaveFornecedor]float64) []domain.ChaveFornecedor {
	chaves := make([]domain.ChaveFornecedor, 0, len(demanda))
	for chave := range demanda {
		chaves = append(chaves, chave)
	}
	sort.Slice(chaves, func(i, j int) bool {
		if chaves[i].Secretaria != chaves[j].Secretaria {
			return chaves[i].Secretaria < chaves[j].Secretaria
		}
		return chaves[i].ID < chaves[j].ID
	})
	return chaves
}
