package rateio

import (
	"strconv"
	"strings"
	"time"

	"rateio-service/internal/domain"
)

// Conjuntos fixos de colunas obrigatórias das planilhas.
var (
	ColunasDebitos = []string{"DATA", "FORNECEDOR", "CNPJ", "VALOR", "SECRETARIA"}
	ColunasSaldos  = []string{"CONTA", "NOME DA CONTA", "SECRETARIA", "BANCO", "TIPO DE RECURSO", "SALDO BANCARIO"}
)

// validarColunas confere o conjunto de colunas obrigatórias da planilha.
func validarColunas(t domain.Tabela, obrigatorias []string, planilha string) error {
	idx := t.IndiceColunas()
	var faltam []string
	for _, c := range obrigatorias {
		if _, ok := idx[c]; !ok {
			faltam = append(faltam, c)
		}
	}
	if len(faltam) > 0 {
		return &domain.MissingColumnsError{Planilha: planilha, Colunas: faltam}
	}
	return nil
}

// NormalizarDebitos converte as linhas brutas da planilha de Débitos em
// registros tipados. Linhas individualmente inválidas são descartadas e
// reportadas; apenas a ausência de colunas obrigatórias é fatal.
func NormalizarDebitos(t domain.Tabela) ([]domain.Debito, []domain.LinhaRejeitada, error) {
	if err := validarColunas(t, ColunasDebitos, "Débitos"); err != nil {
		return nil, nil, err
	}
	idx := t.IndiceColunas()

	var debitos []domain.Debito
	var rejeitadas []domain.LinhaRejeitada

	rejeitar := func(linha int, campos []string, motivo domain.MotivoRejeicao) {
		rejeitadas = append(rejeitadas, domain.LinhaRejeitada{Linha: linha, Motivo: motivo, Campos: campos})
	}

	for i, campos := range t.Linhas {
		linha := i + 2 // linha 1 é o cabeçalho

		data, ok := parseData(celula(campos, idx["DATA"]))
		if !ok {
			rejeitar(linha, campos, domain.MotivoDataInvalida)
			continue
		}
		valor, ok := parseValor(celula(campos, idx["VALOR"]))
		if !ok {
			rejeitar(linha, campos, domain.MotivoValorInvalido)
			continue
		}
		fornecedor := celula(campos, idx["FORNECEDOR"])
		if fornecedor == "" {
			rejeitar(linha, campos, domain.MotivoFornecedorVazio)
			continue
		}
		secretaria := celula(campos, idx["SECRETARIA"])
		if secretaria == "" {
			rejeitar(linha, campos, domain.MotivoSecretariaVazia)
			continue
		}

		if valor < 0 {
			valor = 0
		}

		debitos = append(debitos, domain.Debito{
			Data:       data,
			Fornecedor: fornecedor,
			CNPJ:       normalizarCNPJ(celula(campos, idx["CNPJ"])),
			Valor:      arredondar(valor, 2),
			Secretaria: secretaria,
		})
	}

	return debitos, rejeitadas, nil
}

// NormalizarSaldos converte as linhas brutas da planilha de Saldos em
// registros tipados, com o mesmo contrato de rejeição por linha.
func NormalizarSaldos(t domain.Tabela) ([]domain.Saldo, []domain.LinhaRejeitada, error) {
	if err := validarColunas(t, ColunasSaldos, "Saldos"); err != nil {
		return nil, nil, err
	}
	idx := t.IndiceColunas()

	var saldos []domain.Saldo
	var rejeitadas []domain.LinhaRejeitada

	for i, campos := range t.Linhas {
		linha := i + 2

		conta := celula(campos, idx["CONTA"])
		if conta == "" {
			rejeitadas = append(rejeitadas, domain.LinhaRejeitada{Linha: linha, Motivo: domain.MotivoContaVazia, Campos: campos})
			continue
		}
		secretaria := celula(campos, idx["SECRETARIA"])
		if secretaria == "" {
			rejeitadas = append(rejeitadas, domain.LinhaRejeitada{Linha: linha, Motivo: domain.MotivoSecretariaVazia, Campos: campos})
			continue
		}
		valor, ok := parseValor(celula(campos, idx["SALDO BANCARIO"]))
		if !ok {
			rejeitadas = append(rejeitadas, domain.LinhaRejeitada{Linha: linha, Motivo: domain.MotivoValorInvalido, Campos: campos})
			continue
		}

		saldos = append(saldos, domain.Saldo{
			Conta:       conta,
			NomeConta:   celula(campos, idx["NOME DA CONTA"]),
			Secretaria:  secretaria,
			Banco:       celula(campos, idx["BANCO"]),
			TipoRecurso: strings.ToUpper(celula(campos, idx["TIPO DE RECURSO"])),
			Valor:       arredondar(valor, 2),
		})
	}

	return saldos, rejeitadas, nil
}

func celula(campos []string, idx int) string {
	if idx < 0 || idx >= len(campos) {
		return ""
	}
	return strings.TrimSpace(campos[idx])
}

var formatosISO = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var formatosDiaPrimeiro = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2/1/2006",
}

// parseData tenta primeiro os formatos ISO, depois dia-primeiro (padrão
// brasileiro) e por fim o serial do Excel num intervalo plausível
// (35000≈1995 a 47000≈2028, como no conversor de planilhas).
func parseData(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	for _, layout := range formatosISO {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	for _, layout := range formatosDiaPrimeiro {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil && f > 35000 && f < 47000 {
		return excelSerialParaData(f), true
	}
	return time.Time{}, false
}

func excelSerialParaData(serial float64) time.Time {
	// base do serial Excel: 1899-12-30
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}

// parseValor tenta o parse numérico direto; se falhar e a string contiver
// separadores, aplica o formato brasileiro (milhar "." e decimal ",").
func parseValor(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	if !strings.ContainsAny(s, ".,") {
		return 0, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizarCNPJ mantém apenas dígitos e completa com zeros à esquerda até
// 14 posições, para casamento estável de identidade.
func normalizarCNPJ(val string) string {
	var b strings.Builder
	for _, r := range val {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digitos := b.String()
	if digitos == "" {
		return ""
	}
	for len(digitos) < 14 {
		digitos = "0" + digitos
	}
	return digitos
}

// arredondar arredonda para o número de casas decimais indicado.
func arredondar(val float64, casas int) float64 {
	pow := 1.0
	for i := 0; i < casas; i++ {
		pow *= 10
	}
	if val >= 0 {
		return float64(int64(val*pow+0.5)) / pow
	}
	return float64(int64(val*pow-0.5)) / pow
}
