// Package relatorio serializa os resultados do rateio e os dados filtrados
// em planilhas e CSV, no formato consumido pela tesouraria.
package relatorio

import (
	"fmt"

	"rateio-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExcelPlano gera uma pasta de trabalho com o resumo por secretaria, o
// detalhamento dos pagamentos por fornecedor e as linhas rejeitadas.
func ExcelPlano(plano *domain.PlanoRateio, rejeitadas []domain.LinhaRejeitada) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const abaSecretarias = "Resumo por Secretaria"
	f.SetSheetName("Sheet1", abaSecretarias)

	if err := escreverLinha(f, abaSecretarias, 1, []interface{}{"SECRETARIA", "TOTAL DEBITOS", "SALDO LIVRE", "TOTAL PAGAVEL", "TOTAL RESTANTE"}); err != nil {
		return nil, err
	}
	for i, sec := range plano.Secretarias {
		err := escreverLinha(f, abaSecretarias, i+2, []interface{}{sec.Secretaria, sec.TotalDebitos, sec.SaldoLivre, sec.TotalPagavel, sec.TotalRestante})
		if err != nil {
			return nil, err
		}
	}
	totais := []interface{}{"TOTAL", plano.TotalDebitos, plano.TotalSaldos, plano.TotalPagavel, plano.TotalRestante}
	if err := escreverLinha(f, abaSecretarias, len(plano.Secretarias)+2, totais); err != nil {
		return nil, err
	}

	const abaPagamentos = "Pagamentos"
	if _, err := f.NewSheet(abaPagamentos); err != nil {
		return nil, err
	}
	if err := escreverLinha(f, abaPagamentos, 1, []interface{}{"SECRETARIA", "FORNECEDOR", "CNPJ", "DIVIDA", "PAGAVEL", "RESTANTE"}); err != nil {
		return nil, err
	}
	for i, p := range plano.Pagamentos {
		err := escreverLinha(f, abaPagamentos, i+2, []interface{}{p.Secretaria, p.Fornecedor, p.CNPJ, p.Divida, p.Pagavel, p.Restante})
		if err != nil {
			return nil, err
		}
	}

	if len(rejeitadas) > 0 {
		const abaRejeitadas = "Rejeitadas"
		if _, err := f.NewSheet(abaRejeitadas); err != nil {
			return nil, err
		}
		if err := escreverLinha(f, abaRejeitadas, 1, []interface{}{"LINHA", "MOTIVO", "CONTEUDO"}); err != nil {
			return nil, err
		}
		for i, r := range rejeitadas {
			err := escreverLinha(f, abaRejeitadas, i+2, []interface{}{r.Linha, string(r.Motivo), juntarCampos(r.Campos)})
			if err != nil {
				return nil, err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha do plano: %w", err)
	}
	return buffer.Bytes(), nil
}

// ExcelDebitos gera a planilha "dados filtrados" do painel de Débitos.
func ExcelDebitos(debitos []domain.Debito) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const aba = "Debitos"
	f.SetSheetName("Sheet1", aba)

	if err := escreverLinha(f, aba, 1, []interface{}{"DATA", "FORNECEDOR", "CNPJ", "VALOR", "SECRETARIA"}); err != nil {
		return nil, err
	}
	for i, d := range debitos {
		err := escreverLinha(f, aba, i+2, []interface{}{d.Data.Format("02/01/2006"), d.Fornecedor, d.CNPJ, d.Valor, d.Secretaria})
		if err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha de débitos: %w", err)
	}
	return buffer.Bytes(), nil
}

func escreverLinha(f *excelize.File, aba string, linha int, valores []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	return f.SetSheetRow(aba, cell, &valores)
}
