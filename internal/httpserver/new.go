package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	chatRepo "conversational-task-assistant/internal/chat/repository"
	chatUC "conversational-task-assistant/internal/chat/usecase"
	"conversational-task-assistant/internal/middleware"
	"conversational-task-assistant/pkg/datemath"
	"conversational-task-assistant/pkg/log"
	pkgTelegram "conversational-task-assistant/pkg/telegram"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Infrastructure
	db            *sql.DB
	conversations chatRepo.Repository
	fallback      chatUC.Fallback
	dates         *datemath.Parser
	assistant     AssistantConfig
	middleware    middleware.Config

	// Telegram transport, optional
	telegramBot    *pkgTelegram.Bot
	telegramSecret string
	telegramWait   func()
}

// AssistantConfig tunes the chat engine.
type AssistantConfig struct {
	PairCount     int
	MaxCandidates int
	ListLimit     int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	DB            *sql.DB
	Conversations chatRepo.Repository
	// Fallback answers utterances no rule matched. Nil gives a canned reply.
	Fallback   chatUC.Fallback
	Dates      *datemath.Parser
	Assistant  AssistantConfig
	Middleware middleware.Config

	TelegramBot    *pkgTelegram.Bot
	TelegramSecret string
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: timeout,
		db:              cfg.DB,
		conversations:   cfg.Conversations,
		fallback:        cfg.Fallback,
		dates:           cfg.Dates,
		assistant:       cfg.Assistant,
		middleware:      cfg.Middleware,
		telegramBot:     cfg.TelegramBot,
		telegramSecret:  cfg.TelegramSecret,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.conversations == nil {
		return errors.New("conversation store is required")
	}
	if srv.dates == nil {
		return errors.New("date parser is required")
	}
	return nil
}
