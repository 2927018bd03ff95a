package tfmodel

import "time"

// Attachment records a file attached to a task. Only the metadata lives here;
// the file itself sits on disk at FilePath.
type Attachment struct {
	ID         int       `json:"id"`
	UUID       string    `json:"uuid"`
	TaskID     int       `json:"task_id"`
	Task       *Task     `json:"task,omitempty" gorm:"foreignKey:TaskID;references:ID"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
