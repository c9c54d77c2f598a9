// Package sms module wiring: composes the dialogue engine, extractor and
// pipeline service and mounts the webhook route.
package sms

import (
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/logger"
)

// Module is the SMS bounded context module implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates and initializes the SMS module.
func NewModule(
	store Store,
	resolver TenantResolver,
	transport Transport,
	completer Completer,
	queue QualificationQueue,
	bus events.Bus,
	log *logger.Logger,
) *Module {
	service := NewService(
		store,
		resolver,
		transport,
		NewDialogueEngine(completer),
		NewExtractor(completer),
		queue,
		bus,
		log,
	)
	return &Module{
		service: service,
		handler: NewHandler(service, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "sms"
}

// Service exposes the pipeline for the background worker.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the provider webhook on the public v1 group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/sms/incoming", m.handler.HandleIncoming)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
