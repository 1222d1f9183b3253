package model

import (
	"time"
)

// Project types, mirroring the platform targets a team can track.
const (
	ProjectTypeBackend  = "backend"
	ProjectTypeFrontend = "frontend"
	ProjectTypeIOS      = "ios"
	ProjectTypeAndroid  = "android"
)

var ProjectTypes = []string{ProjectTypeBackend, ProjectTypeFrontend, ProjectTypeIOS, ProjectTypeAndroid}

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(128);not null;uniqueIndex:uk_owner_name_type" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"type:varchar(16);not null;uniqueIndex:uk_owner_name_type" json:"type"`
	OwnerID     uint      `gorm:"not null;index:idx_owner_id;uniqueIndex:uk_owner_name_type" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Project) TableName() string { return "projects" }

func ValidProjectType(t string) bool {
	for _, v := range ProjectTypes {
		if t == v {
			return true
		}
	}
	return false
}
