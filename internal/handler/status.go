package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/service"
)

// StatusRequest asks for merged per-recipient status within a campaign
type StatusRequest struct {
	CampaignID string             `json:"campaignId"`
	Items      []model.StatusItem `json:"items"`
}

// StatusResponse carries the merged per-recipient records
type StatusResponse struct {
	Results []model.RecipientStatus `json:"results"`
}

// Status merges per-recipient delivery state from both providers
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body: "+err.Error())
		return
	}

	if err := validateStatusRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	results, err := h.statusSvc.Merge(r.Context(), req.CampaignID, req.Items)
	if err != nil {
		if errors.Is(err, service.ErrBothProvidersFailed) {
			writeError(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to merge status")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Results: results})
}

func validateStatusRequest(req StatusRequest) error {
	if req.CampaignID == "" {
		return fmt.Errorf("campaignId is required")
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("items must contain at least one recipient")
	}
	for i, item := range req.Items {
		if item.Email == "" {
			return fmt.Errorf("items[%d].email is required", i)
		}
		if _, err := mail.ParseAddress(item.Email); err != nil {
			return fmt.Errorf("items[%d].email is not a valid email address", i)
		}
	}
	return nil
}
