package httpserver

import (
	"encoding/json"
	"net/http"

	"topichat/internal/domain"
	"topichat/internal/service"
)

type reportSubmitRequest struct {
	Type      string `json:"type" validate:"required,oneof=topic message"`
	TargetID  string `json:"targetId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

func handleSubmitReport(reports *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "invalid JSON body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "all fields are required"})
			return
		}

		_, err := reports.Submit(r.Context(), service.ReportSubmitInput{
			Type:      domain.ReportType(req.Type),
			TargetID:  req.TargetID,
			Reason:    req.Reason,
			SessionID: req.SessionID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "Report submitted",
		})
	}
}
