package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/teploservice/lead-api/src/api/auditlog"
	"github.com/teploservice/lead-api/src/api/storage"
	"github.com/teploservice/lead-api/src/api/types"
)

// Notifier dispatches a lead summary to one external channel. Send reports
// success as a bare bool; it must never panic or block past its own timeout.
type Notifier interface {
	Send(lead types.Lead) bool
}

// Deps carries everything the lead endpoint needs; all of it is constructed
// once at startup and passed in explicitly.
type Deps struct {
	Store    *storage.Store
	Audit    *auditlog.Logger
	Email    Notifier
	Telegram Notifier
	Throttle Throttle
}

func New(deps Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, deps)
	return g
}
