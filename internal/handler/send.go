package handler

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/shamanic-technologies/email-sending-service/internal/middleware"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
)

// Send accepts a SendRequest and dispatches it through the matching
// provider. Responds 200 on success, 409 on a provider-confirmed duplicate
// rejection, 502 on upstream failure.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body: "+err.Error())
		return
	}

	// The authenticated token, not the body, decides the caller identity
	if appID := middleware.GetAppID(r.Context()); appID != "" {
		req.AppID = appID
	}

	if err := validateSendRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	status, result := h.sendSvc.Send(r.Context(), req)
	writeJSON(w, status, result)
}

func validateSendRequest(req model.SendRequest) error {
	if !req.Channel.Valid() {
		return fmt.Errorf("channel must be %q or %q", model.ChannelTransactional, model.ChannelBroadcast)
	}
	if req.To == "" {
		return fmt.Errorf("to is required")
	}
	if _, err := mail.ParseAddress(req.To); err != nil {
		return fmt.Errorf("to is not a valid email address")
	}

	switch req.Channel {
	case model.ChannelTransactional:
		if req.Broadcast != nil {
			return fmt.Errorf("broadcast payload not allowed on the transactional channel")
		}
		msg := req.Transactional
		if msg == nil {
			return fmt.Errorf("transactional payload is required")
		}
		if msg.Subject == "" {
			return fmt.Errorf("transactional.subject is required")
		}
		if msg.HTMLBody == "" && msg.TextBody == "" {
			return fmt.Errorf("transactional message needs an HTML or text body")
		}
	case model.ChannelBroadcast:
		if req.Transactional != nil {
			return fmt.Errorf("transactional payload not allowed on the broadcast channel")
		}
		seq := req.Broadcast
		if seq == nil {
			return fmt.Errorf("broadcast payload is required")
		}
		if seq.Subject == "" {
			return fmt.Errorf("broadcast.subject is required")
		}
		if len(seq.Steps) == 0 {
			return fmt.Errorf("broadcast.steps must contain at least one step")
		}
		for i, step := range seq.Steps {
			if step.Step != i+1 {
				return fmt.Errorf("broadcast.steps[%d].step must be %d (ordinals are 1-based and contiguous)", i, i+1)
			}
			if step.DelayDays < 0 {
				return fmt.Errorf("broadcast.steps[%d].delayDays must not be negative", i)
			}
			if step.HTMLBody == "" && step.TextBody == "" {
				return fmt.Errorf("broadcast.steps[%d] needs an HTML or text body", i)
			}
		}
	}

	return nil
}
