package handler

import (
	"github.com/go-telegram/bot"

	"github.com/SD-18/TeaGuard/internal/config"
	"github.com/SD-18/TeaGuard/internal/guide"
	"github.com/SD-18/TeaGuard/internal/repository"
	"github.com/SD-18/TeaGuard/internal/service"
	"github.com/SD-18/TeaGuard/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	analyzer  *service.Analyzer
	assistant *service.Assistant
	guides    *guide.Service
	growers   *repository.Growers
	diagnoses *repository.Diagnoses
	evLog     *telegram.EventLogger
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Analyzer  *service.Analyzer
	Assistant *service.Assistant
	Guides    *guide.Service
	Growers   *repository.Growers
	Diagnoses *repository.Diagnoses
	EvLog     *telegram.EventLogger
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		analyzer:  deps.Analyzer,
		assistant: deps.Assistant,
		guides:    deps.Guides,
		growers:   deps.Growers,
		diagnoses: deps.Diagnoses,
		evLog:     deps.EvLog,
	}
}
