package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

type RefreshStatsResponse struct {
	Message string         `json:"message"`
	Stats   *StatsResponse `json:"stats"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
