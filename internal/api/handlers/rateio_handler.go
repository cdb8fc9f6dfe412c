package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rateio-service/internal/api/responses"
	"rateio-service/internal/core/rateio"
	"rateio-service/internal/domain"
	"rateio-service/internal/planilha"
	"rateio-service/internal/relatorio"

	"github.com/gin-gonic/gin"
)

// RateioHandler lida com as requisições da API de análise e rateio.
type RateioHandler struct {
	service rateio.Service
}

// NewRateioHandler cria um novo handler de rateio.
func NewRateioHandler(service rateio.Service) *RateioHandler {
	return &RateioHandler{
		service: service,
	}
}

// getListaFromForm extrai e limpa uma lista separada por vírgulas de um
// campo de formulário.
func getListaFromForm(c *gin.Context, formKey string) []string {
	valor := c.PostForm(formKey)
	if valor == "" {
		return nil
	}
	parts := strings.Split(valor, ",")
	var lista []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			lista = append(lista, trimmed)
		}
	}
	return lista
}

func parseDataForm(valor string) (time.Time, error) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, valor); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %s", valor)
}

// filtroDebitosDoForm monta o filtro de débitos a partir dos campos do
// formulário (os filtros da barra lateral do painel original).
func filtroDebitosDoForm(c *gin.Context) (rateio.FiltroDebitos, error) {
	var filtro rateio.FiltroDebitos

	if v := c.PostForm("dataInicial"); v != "" {
		t, err := parseDataForm(v)
		if err != nil {
			return filtro, err
		}
		filtro.DataInicial = &t
	}
	if v := c.PostForm("dataFinal"); v != "" {
		t, err := parseDataForm(v)
		if err != nil {
			return filtro, err
		}
		filtro.DataFinal = &t
	}
	if filtro.DataInicial != nil && filtro.DataFinal != nil && filtro.DataInicial.After(*filtro.DataFinal) {
		return filtro, fmt.Errorf("data inicial posterior à data final")
	}

	filtro.Secretarias = getListaFromForm(c, "secretarias")
	filtro.Fornecedores = getListaFromForm(c, "fornecedores")
	filtro.CNPJs = getListaFromForm(c, "cnpjs")
	filtro.FornecedorContem = c.PostForm("fornecedorContem")

	if v := c.PostForm("valorMinimo"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filtro, fmt.Errorf("valor mínimo inválido: %s", v)
		}
		filtro.ValorMinimo = &f
	}
	if v := c.PostForm("valorMaximo"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filtro, fmt.Errorf("valor máximo inválido: %s", v)
		}
		filtro.ValorMaximo = &f
	}

	return filtro, nil
}

func opcoesPlanoDoForm(c *gin.Context) rateio.OpcoesPlano {
	op := rateio.OpcoesPlano{TipoRecurso: domain.RecursoLivre}
	if c.PostForm("apenasLivre") == "false" {
		op.TipoRecurso = ""
	}
	if v := c.PostForm("tipoRecurso"); v != "" {
		op.TipoRecurso = strings.ToUpper(strings.TrimSpace(v))
	}
	op.AproximarSecretarias = c.PostForm("aproximarSecretarias") == "true"
	return op
}

// carregarTabelaDoForm abre o arquivo enviado no campo indicado e o carrega
// como tabela.
func carregarTabelaDoForm(c *gin.Context, campo string) (domain.Tabela, int, error) {
	fileHeader, err := c.FormFile(campo)
	if err != nil {
		return domain.Tabela{}, http.StatusBadRequest, fmt.Errorf("arquivo %q (.csv, .xls, .xlsx) não encontrado ou inválido", campo)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".xls" && ext != ".xlsx" {
		return domain.Tabela{}, http.StatusBadRequest, fmt.Errorf("extensão de arquivo não suportada em %q: %s", campo, ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.Tabela{}, http.StatusInternalServerError, fmt.Errorf("não foi possível abrir o arquivo %q", campo)
	}
	defer func(f multipart.File) { f.Close() }(file)

	tabela, err := planilha.CarregarTabela(file, fileHeader.Filename)
	if err != nil {
		return domain.Tabela{}, http.StatusBadRequest, err
	}
	return tabela, http.StatusOK, nil
}

func responderErroServico(c *gin.Context, err error, contexto string) {
	var colErr *domain.MissingColumnsError
	if errors.As(err, &colErr) {
		responses.Error(c, http.StatusUnprocessableEntity, "Planilha com colunas obrigatórias ausentes", colErr.Error())
		return
	}
	responses.Error(c, http.StatusInternalServerError, contexto, err.Error())
}

// montarPlano concentra o fluxo comum dos endpoints de plano.
func (h *RateioHandler) montarPlano(c *gin.Context) (*rateio.ResultadoPlano, bool) {
	debitos, status, err := carregarTabelaDoForm(c, "debitosFile")
	if err != nil {
		responses.Error(c, status, err.Error())
		return nil, false
	}
	saldos, status, err := carregarTabelaDoForm(c, "saldosFile")
	if err != nil {
		responses.Error(c, status, err.Error())
		return nil, false
	}

	filtro, err := filtroDebitosDoForm(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	resultado, err := h.service.MontarPlanoRateio(debitos, saldos, filtro, opcoesPlanoDoForm(c))
	if err != nil {
		responderErroServico(c, err, "Erro ao montar o plano de rateio")
		return nil, false
	}
	return resultado, true
}

// HandlePlanoRateio monta o plano de rateio e o devolve como JSON, com as
// linhas rejeitadas das duas planilhas no envelope.
func (h *RateioHandler) HandlePlanoRateio(c *gin.Context) {
	resultado, ok := h.montarPlano(c)
	if !ok {
		return
	}
	rejeitadas := append([]domain.LinhaRejeitada{}, resultado.RejeitadosDebitos...)
	rejeitadas = append(rejeitadas, resultado.RejeitadosSaldos...)
	responses.SuccessComRejeitadas(c, resultado, "Plano de rateio montado com sucesso", rejeitadas)
}

// HandlePlanoRateioExcel monta o plano de rateio e o devolve como .xlsx.
func (h *RateioHandler) HandlePlanoRateioExcel(c *gin.Context) {
	resultado, ok := h.montarPlano(c)
	if !ok {
		return
	}

	rejeitadas := append([]domain.LinhaRejeitada{}, resultado.RejeitadosDebitos...)
	rejeitadas = append(rejeitadas, resultado.RejeitadosSaldos...)
	conteudo, err := relatorio.ExcelPlano(resultado.Plano, rejeitadas)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha do plano", err.Error())
		return
	}

	fileName := fmt.Sprintf("PlanoRateio_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", conteudo)
}

// HandlePlanoRateioCSV monta o plano de rateio e devolve o detalhamento por
// fornecedor como CSV (';', Windows-1252).
func (h *RateioHandler) HandlePlanoRateioCSV(c *gin.Context) {
	resultado, ok := h.montarPlano(c)
	if !ok {
		return
	}

	conteudo, err := relatorio.CSVPlano(resultado.Plano)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o CSV do plano", err.Error())
		return
	}

	fileName := fmt.Sprintf("PlanoRateio_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv; charset=windows-1252", conteudo)
}

// HandleResumoDebitos devolve os KPIs e tabelas do painel de Débitos.
func (h *RateioHandler) HandleResumoDebitos(c *gin.Context) {
	debitos, status, err := carregarTabelaDoForm(c, "debitosFile")
	if err != nil {
		responses.Error(c, status, err.Error())
		return
	}

	filtro, err := filtroDebitosDoForm(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	topN := 10
	if v := c.PostForm("topN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			responses.Error(c, http.StatusBadRequest, fmt.Sprintf("topN inválido: %s", v))
			return
		}
		topN = n
	}

	resultado, err := h.service.ResumoDebitos(debitos, filtro, topN)
	if err != nil {
		responderErroServico(c, err, "Erro ao resumir a planilha de Débitos")
		return
	}
	responses.SuccessComRejeitadas(c, resultado, "Resumo de Débitos concluído com sucesso", resultado.Rejeitados)
}

// HandleExportarDebitos devolve os débitos filtrados como .xlsx ("dados
// filtrados" do painel original).
func (h *RateioHandler) HandleExportarDebitos(c *gin.Context) {
	tabela, status, err := carregarTabelaDoForm(c, "debitosFile")
	if err != nil {
		responses.Error(c, status, err.Error())
		return
	}

	filtro, err := filtroDebitosDoForm(c)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	registros, _, err := rateio.NormalizarDebitos(tabela)
	if err != nil {
		responderErroServico(c, err, "Erro ao normalizar a planilha de Débitos")
		return
	}

	conteudo, err := relatorio.ExcelDebitos(rateio.FiltrarDebitos(registros, filtro))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar a planilha de débitos filtrados", err.Error())
		return
	}

	fileName := fmt.Sprintf("DebitosFiltrados_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", conteudo)
}

// HandleResumoSaldos devolve os KPIs e a soma por secretaria dos Saldos.
func (h *RateioHandler) HandleResumoSaldos(c *gin.Context) {
	saldos, status, err := carregarTabelaDoForm(c, "saldosFile")
	if err != nil {
		responses.Error(c, status, err.Error())
		return
	}

	filtro := rateio.FiltroSaldos{
		Secretarias:  getListaFromForm(c, "secretarias"),
		Bancos:       getListaFromForm(c, "bancos"),
		TiposRecurso: getListaFromForm(c, "tiposRecurso"),
	}
	if c.PostForm("apenasLivre") == "true" && len(filtro.TiposRecurso) == 0 {
		filtro.TiposRecurso = []string{domain.RecursoLivre}
	}

	resultado, err := h.service.ResumoSaldos(saldos, filtro)
	if err != nil {
		responderErroServico(c, err, "Erro ao resumir a planilha de Saldos")
		return
	}
	responses.SuccessComRejeitadas(c, resultado, "Resumo de Saldos concluído com sucesso", resultado.Rejeitados)
}
