package rateio

import (
	"fmt"

	"rateio-service/internal/domain"
)

// ToleranciaPadrao é a tolerância, em unidades de moeda, usada nas
// comparações de ponto flutuante do rateio.
const ToleranciaPadrao = 1e-4

// OpcoesRateio parametriza o laço de redistribuição. O zero value usa a
// tolerância padrão e limita as rodadas pelo número de chaves da demanda,
// o que garante conservação total dentro da tolerância.
type OpcoesRateio struct {
	Tolerancia float64
	MaxRodadas int
}

// Ratear distribui o valor disponível entre os fornecedores na proporção da
// dívida de cada um, sem nunca pagar mais do que o devido. Sobras causadas
// pelo teto por fornecedor são redistribuídas entre os que ainda têm dívida
// em aberto até esgotar o disponível ou não restar fornecedor elegível.
//
// Retorna o vetor de pagamentos e o vetor de restantes, ambos com as mesmas
// chaves da demanda e arredondados a 2 casas apenas no final.
func Ratear(disponivel float64, demanda map[string]float64) (map[string]float64, map[string]float64, error) {
	return RatearComOpcoes(disponivel, demanda, OpcoesRateio{})
}

// RatearComOpcoes é a variante parametrizada de Ratear.
func RatearComOpcoes(disponivel float64, demanda map[string]float64, op OpcoesRateio) (map[string]float64, map[string]float64, error) {
	tol := op.Tolerancia
	if tol <= 0 {
		tol = ToleranciaPadrao
	}

	if disponivel < 0 {
		return nil, nil, &domain.InvalidInputError{Msg: fmt.Sprintf("valor disponível negativo no rateio: %.2f", disponivel)}
	}
	total := 0.0
	for chave, divida := range demanda {
		if divida < 0 {
			return nil, nil, &domain.InvalidInputError{Msg: fmt.Sprintf("dívida negativa no rateio para %q: %.2f", chave, divida)}
		}
		total += divida
	}

	pago := make(map[string]float64, len(demanda))

	if disponivel <= tol || total <= tol {
		for chave := range demanda {
			pago[chave] = 0
		}
		return pago, restantes(demanda, pago), nil
	}

	// Passada proporcional inicial seguida do teto por fornecedor.
	for chave, divida := range demanda {
		base := disponivel * divida / total
		if base > divida {
			base = divida
		}
		pago[chave] = base
	}

	maxRodadas := op.MaxRodadas
	if maxRodadas <= 0 {
		maxRodadas = len(demanda)
	}

	sobra := disponivel - somaValores(pago)
	for rodada := 0; rodada < maxRodadas && sobra > tol; rodada++ {
		pendenteTotal := 0.0
		for chave, divida := range demanda {
			if p := divida - pago[chave]; p > tol {
				pendenteTotal += p
			}
		}
		if pendenteTotal <= tol {
			break
		}
		for chave, divida := range demanda {
			pendente := divida - pago[chave]
			if pendente <= tol {
				continue
			}
			novo := pago[chave] + sobra*pendente/pendenteTotal
			if novo > divida {
				novo = divida
			}
			pago[chave] = novo
		}
		sobra = disponivel - somaValores(pago)
	}

	for chave := range pago {
		pago[chave] = arredondar(pago[chave], 2)
	}
	return pago, restantes(demanda, pago), nil
}

func restantes(demanda, pago map[string]float64) map[string]float64 {
	restante := make(map[string]float64, len(demanda))
	for chave, divida := range demanda {
		r := arredondar(divida-pago[chave], 2)
		if r < 0 {
			r = 0
		}
		restante[chave] = r
	}
	return restante
}

func somaValores(valores map[string]float64) float64 {
	var total float64
	for _, v := range valores {
		total += v
	}
	return total
}
