package routes

import (
	"github.com/gin-gonic/gin"
)

const PathAdmin = "/admin"

func addAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.Quotes.CreateQuote)
		quotes.POST("/sweep", h.Quotes.SweepExpired)
		quotes.GET("/stats", h.Quotes.GetQuoteStats)
		quotes.GET("/:id", h.Quotes.GetQuote)
		quotes.PATCH("/:id", h.Quotes.UpdateQuote)
	}

	requests := rg.Group(PathRequests)
	{
		requests.GET("", h.Requests.ListForAdmin)
		requests.GET("/pending-counts", h.Requests.PendingCounts)
		requests.PATCH("/:id/status", h.Requests.TransitionStatus)
		requests.PATCH("/:id/assign", h.Requests.Assign)
		requests.PATCH("/:id/priority", h.Requests.SetPriority)
		requests.PATCH("/:id/notes", h.Requests.SetAdminNotes)
		requests.PATCH("/:id/schedule", h.Requests.SetSchedule)
		requests.PATCH("/:id/tags", h.Requests.SetTags)
		requests.PATCH("/:id/payment", h.Requests.AttachPayment)

		// ritual progress
		requests.POST("/:id/steps", h.Requests.AddStep)
		requests.PATCH("/:id/steps/:step/toggle", h.Requests.ToggleStep)
		requests.POST("/:id/steps/:step/evidence", h.Requests.AttachEvidence)
	}

	rg.GET("/analytics", h.Analytics.Summary)
}
