// internal/api/responses/responses.go
package responses

import (
	"net/http"

	"rateio-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var logger *zap.Logger

// APIResponse é o envelope padrão das respostas JSON do serviço de rateio.
// As linhas descartadas na normalização viajam no envelope, separadas do
// payload, para alimentar a tabela de diagnóstico do painel.
type APIResponse struct {
	Status     string                  `json:"status"` // "success" ou "error"
	Data       interface{}             `json:"data,omitempty"`
	Message    string                  `json:"message,omitempty"`
	Errors     []string                `json:"errors,omitempty"`
	Rejeitadas []domain.LinhaRejeitada `json:"rejeitadas,omitempty"`
}

// InitLogger inicializa o logger estruturado das respostas da API.
func InitLogger() {
	base, _ := zap.NewProduction()
	logger = base.Named("rateio-service")
}

// Success envia uma resposta de sucesso com os dados e a mensagem informados.
func Success(c *gin.Context, data interface{}, message string) {
	SuccessComRejeitadas(c, data, message, nil)
}

// SuccessComRejeitadas envia uma resposta de sucesso carregando também as
// linhas rejeitadas pela normalização das planilhas.
func SuccessComRejeitadas(c *gin.Context, data interface{}, message string, rejeitadas []domain.LinhaRejeitada) {
	resp := APIResponse{Status: "success", Data: data, Message: message, Rejeitadas: rejeitadas}
	c.JSON(http.StatusOK, resp)
	logger.Info("resposta enviada",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", http.StatusOK),
		zap.Int("linhas_rejeitadas", len(rejeitadas)))
}

// Error envia uma resposta de erro com o código, a mensagem e os detalhes.
func Error(c *gin.Context, code int, message string, errs ...string) {
	resp := APIResponse{Status: "error", Message: message, Errors: errs}
	c.JSON(code, resp)
	logger.Error("erro na requisição",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", code),
		zap.Strings("errors", errs))
}
