package model

import (
	"time"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"type:varchar(64);uniqueIndex:uk_username;not null" json:"username"`
	Email            string    `gorm:"type:varchar(128)" json:"email"`
	PasswordHash     string    `gorm:"type:varchar(128);not null" json:"-"`
	Age              int       `gorm:"not null" json:"age"`
	ContactConsent   bool      `gorm:"default:false" json:"contact_consent"`
	DataShareConsent bool      `gorm:"default:false" json:"data_share_consent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username}
}
