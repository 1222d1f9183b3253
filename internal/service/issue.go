package service

import (
	"errors"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"gorm.io/gorm"
)

type IssueService struct {
	db    *gorm.DB
	graph *authz.Graph
	authz *authz.Engine
}

func NewIssueService(db *gorm.DB, graph *authz.Graph, engine *authz.Engine) *IssueService {
	return &IssueService{db: db, graph: graph, authz: engine}
}

// getIssue loads an issue and rejects path/id mismatches: an issue id that
// exists but belongs to another project is treated as not found.
func getIssue(db *gorm.DB, projectID, issueID uint) (*model.Issue, error) {
	var issue model.Issue
	if err := db.First(&issue, issueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("issue not found")
		}
		return nil, apperr.Internal(err)
	}
	if issue.ProjectID != projectID {
		return nil, apperr.NotFound("issue not found in this project")
	}
	return &issue, nil
}

func (s *IssueService) gate(principal uint, action authz.Action, scope authz.Scope) error {
	decision, err := s.authz.Decide(principal, action, authz.KindIssue, scope)
	if err != nil {
		return apperr.Internal(err)
	}
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}
	return nil
}

type IssueInput struct {
	Title       string
	Description string
	Tag         string
	Priority    string
	Status      string
	AssigneeID  uint
}

func (s *IssueService) validateEnums(tag, priority, status string) error {
	if !model.ValidIssueTag(tag) {
		return apperr.Validation("tag", "tag must be one of bug, feature, task")
	}
	if !model.ValidIssuePriority(priority) {
		return apperr.Validation("priority", "priority must be one of low, medium, high")
	}
	if !model.ValidIssueStatus(status) {
		return apperr.Validation("status", "status must be one of todo, in_progress, finished")
	}
	return nil
}

func (s *IssueService) checkAssignee(projectID, assigneeID uint) error {
	ok, err := s.graph.IsContributor(projectID, assigneeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.Validation("assignee_id", "assignee must be a contributor of the project")
	}
	return nil
}

// Create files an issue. The author is always the principal; the payload
// carries no author field to bind. Assignee defaults to the author.
func (s *IssueService) Create(principal, projectID uint, in IssueInput) (*model.Issue, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionCreate, scope); err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = model.IssueStatusTodo
	}
	if err := s.validateEnums(in.Tag, in.Priority, in.Status); err != nil {
		return nil, err
	}
	if in.AssigneeID == 0 {
		in.AssigneeID = principal
	}
	if err := s.checkAssignee(projectID, in.AssigneeID); err != nil {
		return nil, err
	}

	issue := &model.Issue{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         in.Tag,
		Priority:    in.Priority,
		Status:      in.Status,
		AuthorID:    principal,
		AssigneeID:  in.AssigneeID,
	}
	if err := s.db.Create(issue).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.db.Preload("Author").Preload("Assignee").First(issue, issue.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return issue, nil
}

func (s *IssueService) List(principal, projectID uint) ([]model.Issue, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}

	var issues []model.Issue
	err = s.db.Preload("Author").Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&issues).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return issues, nil
}

func (s *IssueService) Get(principal, projectID, issueID uint) (*model.Issue, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	issue, err := getIssue(s.db, projectID, issueID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: issue.AuthorID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").Preload("Assignee").First(issue, issueID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return issue, nil
}

type IssueUpdate struct {
	Title       *string
	Description *string
	Tag         *string
	Priority    *string
	Status      *string
	AssigneeID  *uint
}

func (s *IssueService) Update(principal, projectID, issueID uint, in IssueUpdate) (*model.Issue, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	issue, err := getIssue(s.db, projectID, issueID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: issue.AuthorID}
	if err := s.gate(principal, authz.ActionUpdate, scope); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.Validation("title", "title must not be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Tag != nil {
		if !model.ValidIssueTag(*in.Tag) {
			return nil, apperr.Validation("tag", "tag must be one of bug, feature, task")
		}
		updates["tag"] = *in.Tag
	}
	if in.Priority != nil {
		if !model.ValidIssuePriority(*in.Priority) {
			return nil, apperr.Validation("priority", "priority must be one of low, medium, high")
		}
		updates["priority"] = *in.Priority
	}
	if in.Status != nil {
		if !model.ValidIssueStatus(*in.Status) {
			return nil, apperr.Validation("status", "status must be one of todo, in_progress, finished")
		}
		updates["status"] = *in.Status
	}
	if in.AssigneeID != nil {
		if err := s.checkAssignee(projectID, *in.AssigneeID); err != nil {
			return nil, err
		}
		updates["assignee_id"] = *in.AssigneeID
	}
	if len(updates) > 0 {
		if err := s.db.Model(issue).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	if err := s.db.Preload("Author").Preload("Assignee").First(issue, issueID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return issue, nil
}

// Delete removes the issue and its comments in one transaction.
func (s *IssueService) Delete(principal, projectID, issueID uint) error {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return err
	}
	issue, err := getIssue(s.db, projectID, issueID)
	if err != nil {
		return err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: issue.AuthorID}
	if err := s.gate(principal, authz.ActionDelete, scope); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", issueID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Issue{}, issueID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
