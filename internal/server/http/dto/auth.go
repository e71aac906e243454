package dto

// LoginRequest carries the operator password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns an issued operator token.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
