package payment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	// Provider webhook, reached from the provider's own subnets
	r.Any("/payment/notify/:driver", h.Notify)

	group := r.Group("/payment")
	{
		group.GET("/methods", h.Methods)
		group.POST("/link", h.CreateLink)
		group.POST("/recurring", h.RecurringCharge)
	}
}
