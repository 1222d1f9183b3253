package model

import "time"

// Contributor is a (project, user) membership row. The project owner is
// materialized as a contributor at project creation, so membership checks
// reduce to a single lookup on this table.
type Contributor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_project_user;index:idx_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Contributor) TableName() string { return "contributors" }
