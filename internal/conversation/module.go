// Package conversation provides the conversation store bounded context module.
// This file defines the module that encapsulates setup and route registration.
package conversation

import (
	apphttp "leadflow_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the conversation bounded context module implementing http.Module.
type Module struct {
	repo    *Repository
	handler *Handler
}

// NewModule creates and initializes the conversation module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := NewRepository(pool)
	return &Module{
		repo:    repo,
		handler: NewHandler(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "conversation"
}

// Repository exposes the store for the SMS pipeline.
func (m *Module) Repository() *Repository {
	return m.repo
}

// RegisterRoutes mounts the dashboard read API on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/leads", m.handler.HandleListLeads)
	ctx.Admin.GET("/conversations", m.handler.HandleListConversations)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
