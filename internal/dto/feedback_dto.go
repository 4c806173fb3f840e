package dto

type FeedbackRequest struct {
	Feedback string `form:"feedback" validate:"required"`
	Rating   string `form:"rating"`
}
