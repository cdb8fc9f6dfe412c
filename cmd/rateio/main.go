// cmd/rateio/main.go
package main

import (
	"log"

	"rateio-service/internal/api/handlers"
	"rateio-service/internal/api/responses"
	"rateio-service/internal/core/rateio"

	"github.com/gin-gonic/gin"
)

func main() {
	responses.InitLogger()

	rateioService := rateio.NewService()
	rateioHandler := handlers.NewRateioHandler(rateioService)

	router := gin.Default()

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/rateio/plano", rateioHandler.HandlePlanoRateio)
		apiV1.POST("/rateio/plano/excel", rateioHandler.HandlePlanoRateioExcel)
		apiV1.POST("/rateio/plano/csv", rateioHandler.HandlePlanoRateioCSV)
		apiV1.POST("/debitos/resumo", rateioHandler.HandleResumoDebitos)
		apiV1.POST("/debitos/exportar", rateioHandler.HandleExportarDebitos)
		apiV1.POST("/saldos/resumo", rateioHandler.HandleResumoSaldos)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "rateio-service"})
	})

	const port = "8084"
	log.Printf("🚀 Rateio Service (Go) iniciado e escutando na porta %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Falha ao iniciar o servidor de rateio: ", err)
	}
}
