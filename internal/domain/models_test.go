package domain

import (
	"strings"
	"testing"
)

func TestIndiceColunas(t *testing.T) {
	tabela := Tabela{Colunas: []string{"DATA", "VALOR", "DATA"}}

	idx := tabela.IndiceColunas()

	if idx["DATA"] != 0 {
		t.Errorf("coluna duplicada deveria manter a primeira posição, obtido %d", idx["DATA"])
	}
	if idx["VALOR"] != 1 {
		t.Errorf("posição de VALOR incorreta: %d", idx["VALOR"])
	}
}

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{Planilha: "Débitos", Colunas: []string{"VALOR", "SECRETARIA"}}

	msg := err.Error()
	if !strings.Contains(msg, "Débitos") || !strings.Contains(msg, "VALOR, SECRETARIA") {
		t.Errorf("mensagem incompleta: %q", msg)
	}
}
