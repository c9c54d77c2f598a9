// Package numbers provides the phone-number pool bounded context module.
// This file defines the module that encapsulates setup and route registration.
package numbers

import (
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the numbers bounded context module implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates and initializes the numbers module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	service := NewService(NewRepository(pool))
	return &Module{
		service: service,
		handler: NewHandler(service, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "numbers"
}

// Service exposes tenant resolution for the SMS pipeline.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts pool management on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/numbers")
	group.POST("", m.handler.HandleAddNumbers)
	group.GET("", m.handler.HandleListNumbers)
	group.PUT("/:number/assign", m.handler.HandleAssignNumber)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
