package model

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IssueID   uint      `gorm:"not null;index:idx_issue_id" json:"issue_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index:idx_comment_author_id" json:"author_id"`
	IssueURL  string    `gorm:"type:varchar(256)" json:"issue_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Issue  *Issue `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
	Author *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
