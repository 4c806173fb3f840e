package dto

type ContactRequest struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Phone   string `form:"phone"`
	Subject string `form:"subject" validate:"required"`
	Message string `form:"message" validate:"required"`
}
