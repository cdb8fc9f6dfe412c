package rateio

import (
	"errors"
	"testing"

	"rateio-service/internal/domain"
)

func TestServiceMontarPlanoRateio(t *testing.T) {
	svc := NewService()

	debitos := tabelaDebitos(
		[]string{"2024-01-10", "V1", "", "1.000,00", "SAUDE"},
		[]string{"2024-01-11", "V2", "", "500,00", "SAUDE"},
		[]string{"data ruim", "V3", "", "100,00", "SAUDE"},
	)
	saldos := tabelaSaldos(
		[]string{"1", "Conta Movimento", "SAUDE", "BB", "LIVRE", "300,00"},
	)

	resultado, err := svc.MontarPlanoRateio(debitos, saldos, FiltroDebitos{}, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlanoRateio retornou erro: %v", err)
	}

	if len(resultado.RejeitadosDebitos) != 1 || resultado.RejeitadosDebitos[0].Motivo != domain.MotivoDataInvalida {
		t.Errorf("linha com data inválida deveria ser reportada: %+v", resultado.RejeitadosDebitos)
	}

	saude := buscarSecretaria(t, resultado.Plano, "SAUDE")
	if saude.TotalDebitos != 1500.00 || saude.TotalPagavel != 300.00 {
		t.Errorf("plano incorreto: %+v", saude)
	}

	if len(resultado.Demanda) != 2 {
		t.Fatalf("vetor de demanda esperado com 2 entradas, obtido %+v", resultado.Demanda)
	}
	if resultado.Demanda[0].Chave != (domain.ChaveFornecedor{ID: "V1", Secretaria: "SAUDE"}) || resultado.Demanda[0].Divida != 1000.00 {
		t.Errorf("primeira entrada da demanda incorreta: %+v", resultado.Demanda[0])
	}
	if resultado.Demanda[1].Chave.ID != "V2" || resultado.Demanda[1].Divida != 500.00 {
		t.Errorf("segunda entrada da demanda incorreta: %+v", resultado.Demanda[1])
	}

	for _, p := range resultado.Plano.Pagamentos {
		switch p.Fornecedor {
		case "V1":
			if !quaseIgual(p.Pagavel, 200.00, 0.01) {
				t.Errorf("pagamento de V1 incorreto: %+v", p)
			}
		case "V2":
			if !quaseIgual(p.Pagavel, 100.00, 0.01) {
				t.Errorf("pagamento de V2 incorreto: %+v", p)
			}
		default:
			t.Errorf("fornecedor inesperado no plano: %+v", p)
		}
	}
}

func TestServiceColunasAusentes(t *testing.T) {
	svc := NewService()

	saldos := tabelaSaldos([]string{"1", "Conta", "SAUDE", "BB", "LIVRE", "100"})
	semSecretaria := domain.Tabela{
		Colunas: []string{"DATA", "FORNECEDOR", "CNPJ", "VALOR"},
		Linhas:  [][]string{{"2024-01-10", "ACME", "", "100"}},
	}

	var faltando *domain.MissingColumnsError

	_, err := svc.MontarPlanoRateio(semSecretaria, saldos, FiltroDebitos{}, OpcoesPlano{})
	if !errors.As(err, &faltando) {
		t.Errorf("esperado MissingColumnsError nos débitos, obtido %v", err)
	}

	_, err = svc.ResumoDebitos(semSecretaria, FiltroDebitos{}, 10)
	if !errors.As(err, &faltando) {
		t.Errorf("esperado MissingColumnsError no resumo, obtido %v", err)
	}
}

func TestServiceResumoSaldos(t *testing.T) {
	svc := NewService()

	saldos := tabelaSaldos(
		[]string{"1", "Conta A", "SAUDE", "BB", "LIVRE", "100,00"},
		[]string{"2", "Conta B", "SAUDE", "BB", "VINCULADO", "900,00"},
	)

	resultado, err := svc.ResumoSaldos(saldos, FiltroSaldos{TiposRecurso: []string{domain.RecursoLivre}})
	if err != nil {
		t.Fatalf("ResumoSaldos retornou erro: %v", err)
	}
	if resultado.Resumo.SaldoTotal != 100.00 || resultado.Resumo.Contas != 1 {
		t.Errorf("resumo incorreto: %+v", resultado.Resumo)
	}
}
