package handler

import (
	"fmt"
	"net/http"

	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/service"
)

// Stats aggregates provider metrics, flat or grouped by a dimension
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var req service.StatsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body: "+err.Error())
		return
	}

	if req.Channel != "" && !req.Channel.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("channel must be %q or %q", model.ChannelTransactional, model.ChannelBroadcast))
		return
	}
	if req.GroupBy != "" && !req.GroupBy.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("groupBy must be one of %q, %q, %q, %q",
				model.GroupByBrand, model.GroupByCampaign, model.GroupByWorkflow, model.GroupByEmail))
		return
	}

	if req.GroupBy != "" {
		writeJSON(w, http.StatusOK, h.statsSvc.Grouped(r.Context(), req))
		return
	}
	writeJSON(w, http.StatusOK, h.statsSvc.Aggregate(r.Context(), req))
}
