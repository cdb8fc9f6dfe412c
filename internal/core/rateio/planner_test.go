package rateio

import (
	"testing"

	"rateio-service/internal/domain"
)

func saldoLivre(secretaria string, valor float64) domain.Saldo {
	return domain.Saldo{Conta: "1", Secretaria: secretaria, TipoRecurso: domain.RecursoLivre, Valor: valor}
}

func buscarSecretaria(t *testing.T, plano *domain.PlanoRateio, nome string) domain.PlanoSecretaria {
	t.Helper()
	for _, s := range plano.Secretarias {
		if s.Secretaria == nome {
			return s
		}
	}
	t.Fatalf("secretaria %q ausente do plano: %+v", nome, plano.Secretarias)
	return domain.PlanoSecretaria{}
}

func TestMontarPlanoRateioPorSecretaria(t *testing.T) {
	debitos := []domain.Debito{
		debito("V1", "", 1000.00, "SAUDE"),
		debito("V2", "", 500.00, "SAUDE"),
		debito("V3", "", 100.00, "EDUCACAO"),
	}
	saldos := []domain.Saldo{
		saldoLivre("SAUDE", 300.00),
		saldoLivre("EDUCACAO", 100.00),
	}

	plano, err := MontarPlano(debitos, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	saude := buscarSecretaria(t, plano, "SAUDE")
	if saude.TotalDebitos != 1500.00 || saude.SaldoLivre != 300.00 {
		t.Errorf("totais de SAUDE incorretos: %+v", saude)
	}
	if saude.TotalPagavel != 300.00 || saude.TotalRestante != 1200.00 {
		t.Errorf("pagável/restante de SAUDE incorretos: %+v", saude)
	}

	educacao := buscarSecretaria(t, plano, "EDUCACAO")
	if educacao.TotalPagavel != 100.00 || educacao.TotalRestante != 0 {
		t.Errorf("EDUCACAO deveria quitar a dívida, obtido %+v", educacao)
	}

	if len(plano.Pagamentos) != 3 {
		t.Fatalf("esperados 3 pagamentos, obtidos %d", len(plano.Pagamentos))
	}
	for _, p := range plano.Pagamentos {
		switch {
		case p.Secretaria == "SAUDE" && p.Fornecedor == "V1":
			if !quaseIgual(p.Pagavel, 200.00, 0.01) || !quaseIgual(p.Restante, 800.00, 0.01) {
				t.Errorf("rateio de V1 incorreto: %+v", p)
			}
		case p.Secretaria == "SAUDE" && p.Fornecedor == "V2":
			if !quaseIgual(p.Pagavel, 100.00, 0.01) || !quaseIgual(p.Restante, 400.00, 0.01) {
				t.Errorf("rateio de V2 incorreto: %+v", p)
			}
		case p.Secretaria == "EDUCACAO" && p.Fornecedor == "V3":
			if !quaseIgual(p.Pagavel, 100.00, 0.01) || !quaseIgual(p.Restante, 0, 0.01) {
				t.Errorf("rateio de V3 incorreto: %+v", p)
			}
		default:
			t.Errorf("pagamento inesperado: %+v", p)
		}
	}

	if plano.TotalDebitos != 1600.00 || plano.TotalSaldos != 400.00 {
		t.Errorf("totais gerais incorretos: %+v", plano)
	}
	if plano.TotalPagavel != 400.00 || plano.TotalRestante != 1200.00 {
		t.Errorf("pagável/restante gerais incorretos: %+v", plano)
	}
}

func TestMontarPlanoSecretariaSemSaldo(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "OBRAS")}

	plano, err := MontarPlano(debitos, nil, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	obras := buscarSecretaria(t, plano, "OBRAS")
	if obras.SaldoLivre != 0 || obras.TotalPagavel != 0 || obras.TotalRestante != 100.00 {
		t.Errorf("secretaria sem saldo deveria manter tudo em aberto: %+v", obras)
	}
	if len(plano.Pagamentos) != 1 || plano.Pagamentos[0].Pagavel != 0 || plano.Pagamentos[0].Restante != 100.00 {
		t.Errorf("pagamento incorreto: %+v", plano.Pagamentos)
	}
}

func TestMontarPlanoSecretariaSemDebitos(t *testing.T) {
	saldos := []domain.Saldo{saldoLivre("FAZENDA", 500.00)}

	plano, err := MontarPlano(nil, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	fazenda := buscarSecretaria(t, plano, "FAZENDA")
	if fazenda.TotalDebitos != 0 || fazenda.SaldoLivre != 500.00 || fazenda.TotalPagavel != 0 {
		t.Errorf("secretaria sem débitos incorreta: %+v", fazenda)
	}
	if len(plano.Pagamentos) != 0 {
		t.Errorf("não deveria haver pagamentos, obtidos %+v", plano.Pagamentos)
	}
}

func TestMontarPlanoSaldoNegativo(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "SAUDE")}
	saldos := []domain.Saldo{saldoLivre("SAUDE", -50.00)}

	plano, err := MontarPlano(debitos, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	saude := buscarSecretaria(t, plano, "SAUDE")
	if saude.SaldoLivre != -50.00 {
		t.Errorf("saldo negativo deveria ser reportado como está, obtido %.2f", saude.SaldoLivre)
	}
	if saude.TotalPagavel != 0 || saude.TotalRestante != 100.00 {
		t.Errorf("saldo negativo não deveria pagar nada: %+v", saude)
	}
}

func TestMontarPlanoIgnoraRecursoVinculado(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "SAUDE")}
	saldos := []domain.Saldo{
		saldoLivre("SAUDE", 20.00),
		{Conta: "2", Secretaria: "SAUDE", TipoRecurso: "VINCULADO", Valor: 9999.00},
	}

	plano, err := MontarPlano(debitos, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	saude := buscarSecretaria(t, plano, "SAUDE")
	if saude.SaldoLivre != 20.00 {
		t.Errorf("saldo vinculado não deveria entrar no cálculo, obtido %.2f", saude.SaldoLivre)
	}
}

func TestMontarPlanoNomesComAcento(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "Secretaria de Saúde")}
	saldos := []domain.Saldo{saldoLivre("SECRETARIA DE SAUDE  ", 100.00)}

	plano, err := MontarPlano(debitos, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	if len(plano.Secretarias) != 1 {
		t.Fatalf("acentos e caixa não deveriam separar a secretaria: %+v", plano.Secretarias)
	}
	if plano.Secretarias[0].TotalPagavel != 100.00 {
		t.Errorf("dívida deveria ser quitada após o casamento de nomes: %+v", plano.Secretarias[0])
	}
}

func TestMontarPlanoAproximarSecretarias(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "SECRETARIA MUNICIPAL DE EDUCACAO")}
	saldos := []domain.Saldo{saldoLivre("SEC MUNICIPAL DE EDUCACAO", 100.00)}

	exato, err := MontarPlano(debitos, saldos, OpcoesPlano{TipoRecurso: domain.RecursoLivre})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}
	if len(exato.Secretarias) != 2 {
		t.Fatalf("sem aproximação os nomes deveriam ficar separados: %+v", exato.Secretarias)
	}

	aproximado, err := MontarPlano(debitos, saldos, OpcoesPlano{
		TipoRecurso:          domain.RecursoLivre,
		AproximarSecretarias: true,
	})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}
	if len(aproximado.Secretarias) != 1 {
		t.Fatalf("com aproximação os nomes deveriam casar: %+v", aproximado.Secretarias)
	}
	if aproximado.Secretarias[0].TotalPagavel != 100.00 {
		t.Errorf("dívida deveria ser quitada após a aproximação: %+v", aproximado.Secretarias[0])
	}
}

func TestMontarPlanoAproximacaoSemContraparte(t *testing.T) {
	debitos := []domain.Debito{debito("V1", "", 100.00, "SECRETARIA DE SAUDE")}
	saldos := []domain.Saldo{saldoLivre("FUNDO ROTATIVO", 500.00)}

	plano, err := MontarPlano(debitos, saldos, OpcoesPlano{
		TipoRecurso:          domain.RecursoLivre,
		AproximarSecretarias: true,
	})
	if err != nil {
		t.Fatalf("MontarPlano retornou erro: %v", err)
	}

	if len(plano.Secretarias) != 2 {
		t.Fatalf("nomes sem palavra em comum não deveriam casar: %+v", plano.Secretarias)
	}
	saude := buscarSecretaria(t, plano, "SECRETARIA DE SAUDE")
	if saude.TotalPagavel != 0 || saude.TotalRestante != 100.00 {
		t.Errorf("o saldo de outra secretaria não deveria pagar esta dívida: %+v", saude)
	}
	fundo := buscarSecretaria(t, plano, "FUNDO ROTATIVO")
	if fundo.SaldoLivre != 500.00 {
		t.Errorf("o saldo deveria permanecer na secretaria original: %+v", fundo)
	}
}
