package routes

import (
	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathRequests = "/requests"
)

func addClientRoutes(rg *gin.RouterGroup, h Handlers) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/active", h.Quotes.GetActiveQuote)
		quotes.GET("/mine", h.Quotes.ListMyQuotes)
		quotes.POST("/:id/accept", h.Quotes.AcceptQuote)
		quotes.POST("/:id/reject", h.Quotes.RejectQuote)
		quotes.POST("/:id/requests", h.Requests.OpenFromQuote)
	}

	requests := rg.Group(PathRequests)
	{
		requests.POST("", h.Requests.CreateRequest)
		requests.GET("/mine", h.Requests.ListMyRequests)
		requests.GET("/:id", h.Requests.GetRequest)
		requests.POST("/:id/payments", h.Payments.CreatePayment)
		requests.GET("/:id/payments", h.Payments.ListPayments)
	}
}
