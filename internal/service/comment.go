package service

import (
	"errors"
	"fmt"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"gorm.io/gorm"
)

type CommentService struct {
	db      *gorm.DB
	authz   *authz.Engine
	baseURL string
}

func NewCommentService(db *gorm.DB, engine *authz.Engine, baseURL string) *CommentService {
	return &CommentService{db: db, authz: engine, baseURL: baseURL}
}

func getComment(db *gorm.DB, issueID, commentID uint) (*model.Comment, error) {
	var comment model.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Internal(err)
	}
	if comment.IssueID != issueID {
		return nil, apperr.NotFound("comment not found on this issue")
	}
	return &comment, nil
}

func (s *CommentService) gate(principal uint, action authz.Action, scope authz.Scope) error {
	decision, err := s.authz.Decide(principal, action, authz.KindComment, scope)
	if err != nil {
		return apperr.Internal(err)
	}
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}
	return nil
}

// resolve walks the containment chain comment → issue → project so the read
// rule always checks membership on the project, never the comment's own
// author field.
func (s *CommentService) resolve(projectID, issueID uint) (*model.Project, *model.Issue, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, nil, err
	}
	issue, err := getIssue(s.db, projectID, issueID)
	if err != nil {
		return nil, nil, err
	}
	return project, issue, nil
}

func (s *CommentService) Create(principal, projectID, issueID uint, body string) (*model.Comment, error) {
	project, issue, err := s.resolve(projectID, issueID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionCreate, scope); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, apperr.Validation("body", "body must not be empty")
	}

	comment := &model.Comment{
		IssueID:  issue.ID,
		Body:     body,
		AuthorID: principal,
		IssueURL: fmt.Sprintf("%s/api/v1/projects/%d/issues/%d", s.baseURL, projectID, issueID),
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.db.Preload("Author").First(comment, comment.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (s *CommentService) List(principal, projectID, issueID uint) ([]model.Comment, error) {
	project, _, err := s.resolve(projectID, issueID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}

	var comments []model.Comment
	err = s.db.Preload("Author").
		Where("issue_id = ?", issueID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

func (s *CommentService) Get(principal, projectID, issueID, commentID uint) (*model.Comment, error) {
	project, _, err := s.resolve(projectID, issueID)
	if err != nil {
		return nil, err
	}
	comment, err := getComment(s.db, issueID, commentID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: comment.AuthorID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(comment, commentID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (s *CommentService) Update(principal, projectID, issueID, commentID uint, body string) (*model.Comment, error) {
	project, _, err := s.resolve(projectID, issueID)
	if err != nil {
		return nil, err
	}
	comment, err := getComment(s.db, issueID, commentID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: comment.AuthorID}
	if err := s.gate(principal, authz.ActionUpdate, scope); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, apperr.Validation("body", "body must not be empty")
	}

	if err := s.db.Model(comment).Update("body", body).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.db.Preload("Author").First(comment, commentID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return comment, nil
}

func (s *CommentService) Delete(principal, projectID, issueID, commentID uint) error {
	project, _, err := s.resolve(projectID, issueID)
	if err != nil {
		return err
	}
	comment, err := getComment(s.db, issueID, commentID)
	if err != nil {
		return err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID, AuthorID: comment.AuthorID}
	if err := s.gate(principal, authz.ActionDelete, scope); err != nil {
		return err
	}

	if err := s.db.Delete(&model.Comment{}, commentID).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}
