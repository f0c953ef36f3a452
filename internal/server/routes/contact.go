package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/handlers"
)

// ContactPath is the public submission endpoint
const ContactPath = "/api/contact"

// SetupContactRoutes configures the contact form route
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler) {
	// Public endpoint; rate limited by the gatekeeper and again inside the service
	router.POST(ContactPath, contact.Submit)
}
