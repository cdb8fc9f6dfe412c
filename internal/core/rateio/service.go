// package rateio/service.go
package rateio

import (
	"rateio-service/internal/domain"
)

// DemandaFornecedor é uma entrada do vetor de demanda em ordem estável.
type DemandaFornecedor struct {
	Chave  domain.ChaveFornecedor `json:"chave"`
	Divida float64                `json:"divida"`
}

// ResultadoPlano é o plano de rateio acompanhado do vetor de demanda que o
// alimentou. As linhas rejeitadas na normalização seguem no envelope da
// resposta, não no payload.
type ResultadoPlano struct {
	Plano             *domain.PlanoRateio     `json:"plano"`
	Demanda           []DemandaFornecedor     `json:"demanda,omitempty"`
	RejeitadosDebitos []domain.LinhaRejeitada `json:"-"`
	RejeitadosSaldos  []domain.LinhaRejeitada `json:"-"`
}

// ResultadoDebitos é o resumo de Débitos mais as linhas rejeitadas.
type ResultadoDebitos struct {
	Resumo     domain.ResumoDebitos    `json:"resumo"`
	Rejeitados []domain.LinhaRejeitada `json:"-"`
}

// ResultadoSaldos é o resumo de Saldos mais as linhas rejeitadas.
type ResultadoSaldos struct {
	Resumo     domain.ResumoSaldos     `json:"resumo"`
	Rejeitados []domain.LinhaRejeitada `json:"-"`
}

// Service define a interface do serviço de análise e rateio de planilhas.
type Service interface {
	MontarPlanoRateio(debitos, saldos domain.Tabela, filtro FiltroDebitos, op OpcoesPlano) (*ResultadoPlano, error)
	ResumoDebitos(debitos domain.Tabela, filtro FiltroDebitos, topN int) (*ResultadoDebitos, error)
	ResumoSaldos(saldos domain.Tabela, filtro FiltroSaldos) (*ResultadoSaldos, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de rateio.
func NewService() Service {
	return &service{}
}

// MontarPlanoRateio normaliza as duas planilhas, aplica o filtro de débitos
// e monta o plano por secretaria com o detalhamento por fornecedor.
func (s *service) MontarPlanoRateio(debitos, saldos domain.Tabela, filtro FiltroDebitos, op OpcoesPlano) (*ResultadoPlano, error) {
	registrosDebitos, rejeitadosDebitos, err := NormalizarDebitos(debitos)
	if err != nil {
		return nil, err
	}
	registrosSaldos, rejeitadosSaldos, err := NormalizarSaldos(saldos)
	if err != nil {
		return nil, err
	}

	filtrados := FiltrarDebitos(registrosDebitos, filtro)
	plano, err := MontarPlano(filtrados, registrosSaldos, op)
	if err != nil {
		return nil, err
	}

	demanda := AgregarDemanda(filtrados, true)
	linhas := make([]DemandaFornecedor, 0, len(demanda))
	for _, chave := range ChavesOrdenadas(demanda) {
		linhas = append(linhas, DemandaFornecedor{Chave: chave, Divida: demanda[chave]})
	}

	return &ResultadoPlano{
		Plano:             plano,
		Demanda:           linhas,
		RejeitadosDebitos: rejeitadosDebitos,
		RejeitadosSaldos:  rejeitadosSaldos,
	}, nil
}

// ResumoDebitos normaliza e filtra a planilha de Débitos e devolve os KPIs
// e as tabelas dos gráficos.
func (s *service) ResumoDebitos(debitos domain.Tabela, filtro FiltroDebitos, topN int) (*ResultadoDebitos, error) {
	registros, rejeitados, err := NormalizarDebitos(debitos)
	if err != nil {
		return nil, err
	}
	return &ResultadoDebitos{
		Resumo:     ResumirDebitos(FiltrarDebitos(registros, filtro), topN),
		Rejeitados: rejeitados,
	}, nil
}

// ResumoSaldos normaliza e filtra a planilha de Saldos e devolve os KPIs.
func (s *service) ResumoSaldos(saldos domain.Tabela, filtro FiltroSaldos) (*ResultadoSaldos, error) {
	registros, rejeitados, err := NormalizarSaldos(saldos)
	if err != nil {
		return nil, err
	}
	return &ResultadoSaldos{
		Resumo:     ResumirSaldos(FiltrarSaldos(registros, filtro)),
		Rejeitados: rejeitados,
	}, nil
}
