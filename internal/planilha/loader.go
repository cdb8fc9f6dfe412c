// Package planilha carrega planilhas enviadas (.xlsx, .xls, .csv) como
// tabelas de texto com cabeçalho normalizado, prontas para o núcleo.
package planilha

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"rateio-service/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CarregarTabela lê o arquivo pelo sufixo do nome e devolve a tabela com os
// cabeçalhos em maiúsculas e sem espaços nas bordas.
func CarregarTabela(file io.Reader, nomeArquivo string) (domain.Tabela, error) {
	ext := strings.ToLower(filepath.Ext(nomeArquivo))
	switch ext {
	case ".xlsx":
		return carregarXLSX(file)
	case ".xls":
		return carregarXLS(file)
	case ".csv":
		return carregarCSV(file)
	default:
		return domain.Tabela{}, fmt.Errorf("formato de arquivo não suportado: %s (envie .xlsx, .xls ou .csv)", ext)
	}
}

func carregarXLSX(file io.Reader) (domain.Tabela, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return domain.Tabela{}, fmt.Errorf("erro ao abrir arquivo .xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Tabela{}, fmt.Errorf("o arquivo .xlsx não contém planilhas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Tabela{}, fmt.Errorf("erro ao ler planilha: %w", err)
	}
	return montarTabela(rows)
}

func carregarXLS(file io.Reader) (domain.Tabela, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Tabela{}, err
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// talvez seja xlsx com extensão .xls; tentar excelize
		if _, errX := excelize.OpenReader(bytes.NewReader(data)); errX == nil {
			return carregarXLSX(bytes.NewReader(data))
		}
		return domain.Tabela{}, fmt.Errorf("erro ao abrir arquivo .xls: %w", err)
	}
	if len(workbook.GetSheets()) == 0 {
		return domain.Tabela{}, fmt.Errorf("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return domain.Tabela{}, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return montarTabela(rows)
}

func carregarCSV(file io.Reader) (domain.Tabela, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Tabela{}, err
	}
	if !utf8.Valid(data) {
		decoder := charmap.ISO8859_1.NewDecoder()
		if convertido, _, err := transform.Bytes(decoder, data); err == nil {
			data = convertido
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectarSeparador(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Tabela{}, fmt.Errorf("erro ao ler arquivo .csv: %w", err)
	}
	return montarTabela(rows)
}

// detectarSeparador decide entre ';' e ',' contando as ocorrências na
// primeira linha não vazia do arquivo.
func detectarSeparador(data []byte) rune {
	for _, linha := range bytes.Split(data, []byte{'\n'}) {
		if len(bytes.TrimSpace(bytes.Trim(linha, ";,"))) == 0 {
			continue
		}
		if bytes.Count(linha, []byte{';'}) >= bytes.Count(linha, []byte{','}) && bytes.Contains(linha, []byte{';'}) {
			return ';'
		}
		return ','
	}
	return ','
}

func montarTabela(rows [][]string) (domain.Tabela, error) {
	inicio := -1
	for i, row := range rows {
		if !linhaVazia(row) {
			inicio = i
			break
		}
	}
	if inicio == -1 {
		return domain.Tabela{}, fmt.Errorf("a planilha está vazia")
	}

	colunas := make([]string, len(rows[inicio]))
	for i, c := range rows[inicio] {
		colunas[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	var linhas [][]string
	for _, row := range rows[inicio+1:] {
		if linhaVazia(row) {
			continue
		}
		linhas = append(linhas, row)
	}

	return domain.Tabela{Colunas: colunas, Linhas: linhas}, nil
}

func linhaVazia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
