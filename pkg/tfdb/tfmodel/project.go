package tfmodel

import (
	"time"
)

type Project struct {
	ID        int       `json:"id"`
	UUID      string    `json:"uuid"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	TeamID    *int      `json:"team_id"`
	Team      *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID;references:ID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
