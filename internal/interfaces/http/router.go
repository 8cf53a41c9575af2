package httpinterface

import (
	"net/http"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = 1 << 20

// NewRouter returns the gin engine serving the wallet connector API.
func NewRouter(walletSvc application.WalletService) *gin.Engine {
	r := gin.New()

	r.Use(recovery())
	r.Use(requestLogger())
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &walletHandler{walletSvc}
	v1 := r.Group("/v1")
	{
		v1.GET("/info", h.getInfo)
		v1.GET("/balance", h.getBalance)
		v1.GET("/addresses", h.getAddresses)
		v1.GET("/shielded-addresses", h.getShieldedAddresses)
		v1.GET("/transfers", h.listTransfers)
		v1.POST("/transfer", h.transfer)
		v1.POST("/balance-transaction", h.balanceTransaction)
		v1.POST("/submit-transaction", h.submitTransaction)
	}

	return r
}
