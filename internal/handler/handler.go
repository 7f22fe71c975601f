package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shamanic-technologies/email-sending-service/internal/config"
	"github.com/shamanic-technologies/email-sending-service/internal/database"
	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	rdb       *database.Redis
	log       *logger.Logger
	cfg       *config.Config
	sendSvc   *service.SendService
	statsSvc  *service.StatsService
	statusSvc *service.StatusService
}

// New creates a new Handler instance
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config, sendSvc *service.SendService, statsSvc *service.StatsService, statusSvc *service.StatusService) *Handler {
	return &Handler{
		rdb:       rdb,
		log:       log,
		cfg:       cfg,
		sendSvc:   sendSvc,
		statsSvc:  statsSvc,
		statusSvc: statusSvc,
	}
}

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
