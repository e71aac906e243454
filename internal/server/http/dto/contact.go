package dto

// ContactRequest is a storefront contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message" binding:"required"`
}
