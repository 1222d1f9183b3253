package model

import "time"

// Issue tags.
const (
	IssueTagBug     = "bug"
	IssueTagFeature = "feature"
	IssueTagTask    = "task"
)

// Issue priorities.
const (
	IssuePriorityLow    = "low"
	IssuePriorityMedium = "medium"
	IssuePriorityHigh   = "high"
)

// Issue statuses.
const (
	IssueStatusTodo       = "todo"
	IssueStatusInProgress = "in_progress"
	IssueStatusFinished   = "finished"
)

var (
	IssueTags       = []string{IssueTagBug, IssueTagFeature, IssueTagTask}
	IssuePriorities = []string{IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh}
	IssueStatuses   = []string{IssueStatusTodo, IssueStatusInProgress, IssueStatusFinished}
)

type Issue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index:idx_project_id" json:"project_id"`
	Title       string    `gorm:"type:varchar(128);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Tag         string    `gorm:"type:varchar(16);not null" json:"tag"`
	Priority    string    `gorm:"type:varchar(16);not null" json:"priority"`
	Status      string    `gorm:"type:varchar(16);not null;default:todo" json:"status"`
	AuthorID    uint      `gorm:"not null;index:idx_author_id" json:"author_id"`
	AssigneeID  uint      `gorm:"not null" json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Author   *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignee *User    `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (Issue) TableName() string { return "issues" }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func ValidIssueTag(v string) bool      { return contains(IssueTags, v) }
func ValidIssuePriority(v string) bool { return contains(IssuePriorities, v) }
func ValidIssueStatus(v string) bool   { return contains(IssueStatuses, v) }
