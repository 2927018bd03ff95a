package tfmodel

import "time"

type User struct {
	ID        int    `json:"id"`
	UUID      string `json:"uuid"`
	Slug      string `json:"slug"`
	Username  string `json:"username" gorm:"uniqueIndex"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	ApiToken  string `json:"-"`
	Password  string `json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
