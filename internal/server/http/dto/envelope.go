package dto

// MessageResponse is the envelope for replies without a payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Fail builds an unsuccessful reply.
func Fail(message string) MessageResponse {
	return MessageResponse{Success: false, Message: message}
}

// OK builds a successful reply.
func OK(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// HealthResponse reports document store reachability.
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
