package http

import (
	"encoding/json"
	"net/http"

	"sketchroom/internal/ranking"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	OnlineUsers int `json:"onlineUsers"`
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		OnlineUsers: s.coord.OnlineCount(),
	})
}

// handleRanking handles GET /api/ranking?period=live|daily|weekly|monthly
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	period := ranking.ParsePeriod(r.URL.Query().Get("period"))

	entries, err := s.ranking.Ranking(r.Context(), period)
	if err != nil {
		s.logger.Error("ranking query failed", "period", period, "error", err)
		s.sendError(w, http.StatusInternalServerError, "RANKING_FAILED", "Failed to build ranking")
		return
	}

	s.sendSuccess(w, entries)
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
