package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/handlers"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains route-scoped middleware
type Middleware struct {
	// Gatekeeper runs ahead of the contact handler; nil skips it
	Gatekeeper gin.HandlerFunc
}
