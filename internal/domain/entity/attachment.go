package entity

import "time"

// Attachment mirrors the metadata of a supporting document uploaded to the
// M-Files document management system.
type Attachment struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transaction_id"`
	DotsNumber    string    `json:"dots_number"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	ContentType   string    `json:"content_type"`
	MFilesID      string    `json:"mfiles_id,omitempty"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	UploadedBy    string    `json:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Attachment status constants.
const (
	AttachmentStatusPending   = "PENDING"
	AttachmentStatusUploaded  = "UPLOADED"
	AttachmentStatusFailed    = "FAILED"
)
