package middleware

import (
	"time"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/database"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	rdb *database.Redis
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		rdb: rdb,
		log: log,
		cfg: cfg,
	}
}

// SendLimit returns the configured per-app send rate limit
func (m *Middleware) SendLimit() int {
	return m.cfg.RateLimit.SendLimit
}

// SendWindow returns the configured send rate limit window
func (m *Middleware) SendWindow() time.Duration {
	return m.cfg.RateLimit.SendWindow
}
