package relatorio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"rateio-service/internal/domain"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CSVPlano gera o plano de rateio em CSV com ';' e Windows-1252, o formato
// aceito pelos sistemas contábeis das prefeituras.
func CSVPlano(plano *domain.PlanoRateio) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	header := []string{"Secretaria", "Fornecedor", "CNPJ", "Dívida", "Pagável", "Restante"}
	for i := range header {
		header[i] = sanitizarCSV(header[i])
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, p := range plano.Pagamentos {
		record := []string{
			sanitizarCSV(p.Secretaria),
			sanitizarCSV(p.Fornecedor),
			sanitizarCSV(p.CNPJ),
			formatarValor(p.Divida),
			formatarValor(p.Pagavel),
			formatarValor(p.Restante),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}

// formatarValor escreve o valor com vírgula decimal, duas casas.
func formatarValor(val float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", val), ".", ",", 1)
}

// sanitizarCSV remove quebras de linha e caracteres de controle embutidos.
func sanitizarCSV(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' || r == '\t' {
			return -1
		}
		if r < 32 || unicode.Is(unicode.Cc, r) {
			return ' '
		}
		return r
	}, s)
}

func juntarCampos(campos []string) string {
	limpos := make([]string, 0, len(campos))
	for _, c := range campos {
		limpos = append(limpos, sanitizarCSV(c))
	}
	return strings.Join(limpos, " | ")
}
