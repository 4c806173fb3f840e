package entity

// Records appended to the visitor session. They are serialized into the
// session payload, so keep field names short and stable.

type ContactMessage struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type FeedbackEntry struct {
	Feedback   string `json:"feedback"`
	Rating     string `json:"rating,omitempty"`
	Timestamp  string `json:"timestamp"`
	Attachment string `json:"attachment,omitempty"`
}

type FileRecord struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	UploadTime   string `json:"upload_time"`
}
