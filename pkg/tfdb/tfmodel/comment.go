package tfmodel

import "time"

type Comment struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	TaskID    int       `json:"task_id"`
	Task      *Task     `json:"task,omitempty" gorm:"foreignKey:TaskID;references:ID"`
	AuthorID  int       `json:"author_id"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
