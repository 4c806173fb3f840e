package dto

import "portfolio-web/internal/entity"

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Remember string `form:"remember"` // any non-empty value, browsers send "on"
}

type DashboardResponse struct {
	User          string
	Visits        int
	Contacts      []entity.ContactMessage
	Feedbacks     []entity.FeedbackEntry
	UploadedFiles []entity.FileRecord
}
