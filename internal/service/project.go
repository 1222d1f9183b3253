package service

import (
	"errors"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"gorm.io/gorm"
)

type ProjectService struct {
	db    *gorm.DB
	authz *authz.Engine
}

func NewProjectService(db *gorm.DB, engine *authz.Engine) *ProjectService {
	return &ProjectService{db: db, authz: engine}
}

// getProject loads a project or classifies the failure.
func getProject(db *gorm.DB, id uint) (*model.Project, error) {
	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, apperr.Internal(err)
	}
	return &project, nil
}

func (s *ProjectService) gate(principal uint, action authz.Action, kind authz.Kind, scope authz.Scope) error {
	decision, err := s.authz.Decide(principal, action, kind, scope)
	if err != nil {
		return apperr.Internal(err)
	}
	if !decision.Allowed {
		return apperr.Forbidden(decision.Reason)
	}
	return nil
}

type ProjectInput struct {
	Name        string
	Description string
	Type        string
}

// Create makes the principal the project owner and materializes them as the
// first contributor in the same transaction.
func (s *ProjectService) Create(principal uint, in ProjectInput) (*model.Project, error) {
	if err := s.gate(principal, authz.ActionCreate, authz.KindProject, authz.Scope{}); err != nil {
		return nil, err
	}
	if !model.ValidProjectType(in.Type) {
		return nil, apperr.Validation("type", "type must be one of backend, frontend, ios, android")
	}

	project := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		OwnerID:     principal,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner := &model.Contributor{ProjectID: project.ID, UserID: principal}
		return tx.Create(owner).Error
	})
	if err != nil {
		// uk_owner_name_type: duplicates lose at the index, even under races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("you already own a project with this name and type")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.db.Preload("Owner").First(project, project.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return project, nil
}

// List returns the projects the principal belongs to. Ownership is covered by
// the materialized contributor row.
func (s *ProjectService) List(principal uint) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.Preload("Owner").
		Where("id IN (SELECT project_id FROM contributors WHERE user_id = ?)", principal).
		Order("created_at").
		Find(&projects).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return projects, nil
}

func (s *ProjectService) Get(principal, id uint) (*model.Project, error) {
	project, err := getProject(s.db, id)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionRead, authz.KindProject, scope); err != nil {
		return nil, err
	}
	if err := s.db.Preload("Owner").First(project, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return project, nil
}

type ProjectUpdate struct {
	Name        *string
	Description *string
	Type        *string
}

func (s *ProjectService) Update(principal, id uint, in ProjectUpdate) (*model.Project, error) {
	project, err := getProject(s.db, id)
	if err != nil {
		return nil, err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionUpdate, authz.KindProject, scope); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validation("name", "name must not be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Type != nil {
		if !model.ValidProjectType(*in.Type) {
			return nil, apperr.Validation("type", "type must be one of backend, frontend, ios, android")
		}
		updates["type"] = *in.Type
	}
	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("you already own a project with this name and type")
			}
			return nil, apperr.Internal(err)
		}
	}
	if err := s.db.Preload("Owner").First(project, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return project, nil
}

// Delete removes the project and everything it contains in one transaction:
// comments, then issues, then contributors, then the project row itself.
func (s *ProjectService) Delete(principal, id uint) error {
	project, err := getProject(s.db, id)
	if err != nil {
		return err
	}
	scope := authz.Scope{ProjectID: project.ID, ProjectOwnerID: project.OwnerID}
	if err := s.gate(principal, authz.ActionDelete, authz.KindProject, scope); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id IN (SELECT id FROM issues WHERE project_id = ?)", id).
			Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Issue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Contributor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
