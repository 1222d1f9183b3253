package service

import (
	"errors"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"gorm.io/gorm"
)

type ContributorService struct {
	db    *gorm.DB
	authz *authz.Engine
}

func NewContributorService(db *gorm.DB, engine *authz.Engine) *ContributorService {
	return &ContributorService{db: db, authz: engine}
}

func (s *ContributorService) gate(principal uint, action authz.Action, scope authz.Scope) error {
	decision, err := s.authz.Decide(principal, action, authz.KindContributor, scope)
	if err != nil {
		return apperr.Internal(err)
	}
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}
	return nil
}

// Add registers a user as contributor of the project. A concurrent duplicate
// loses to the uk_project_user index and surfaces as Conflict.
func (s *ContributorService) Add(principal, projectID, userID uint) (*model.Contributor, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionCreate, scope); err != nil {
		return nil, err
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("user_id", "no user with this id exists")
		}
		return nil, apperr.Internal(err)
	}

	contributor := &model.Contributor{ProjectID: projectID, UserID: userID}
	if err := s.db.Create(contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("user is already a contributor of this project")
		}
		return nil, apperr.Internal(err)
	}
	contributor.User = &user
	return contributor, nil
}

func (s *ContributorService) List(principal, projectID uint) ([]model.Contributor, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}

	var contributors []model.Contributor
	err = s.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&contributors).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return contributors, nil
}

func (s *ContributorService) Get(principal, projectID, userID uint) (*model.Contributor, error) {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionRead, scope); err != nil {
		return nil, err
	}

	var contributor model.Contributor
	err = s.db.Preload("User").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&contributor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user is not a contributor of this project")
		}
		return nil, apperr.Internal(err)
	}
	return &contributor, nil
}

// Remove drops a contributor. Issues and comments the user authored keep their
// author reference; only membership is revoked.
func (s *ContributorService) Remove(principal, projectID, userID uint) error {
	project, err := getProject(s.db, projectID)
	if err != nil {
		return err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionDelete, scope); err != nil {
		return err
	}

	if userID == project.OwnerID {
		return apperr.Validation("user_id", "the project owner cannot be removed from the project")
	}

	result := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.Contributor{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user is not a contributor of this project")
	}
	return nil
}
