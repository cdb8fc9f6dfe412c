package domain

import (
	"fmt"
	"strings"
)

// MissingColumnsError indica que a planilha enviada não possui todas as
// colunas obrigatórias. Fatal para o lote: o chamador não deve prosseguir
// para a agregação.
type MissingColumnsError struct {
	Planilha string
	Colunas  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("faltam colunas em %s: %s", e.Planilha, strings.Join(e.Colunas, ", "))
}

// InvalidInputError indica um erro de programação do chamador (entrada
// negativa no rateio). Falha rápida em vez de saturar silenciosamente.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return e.Msg
}
