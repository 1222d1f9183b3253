package service

import (
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List is visible to any authenticated user but only exposes briefs.
func (s *UserService) List() ([]model.UserBrief, error) {
	var users []model.User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	briefs := make([]model.UserBrief, 0, len(users))
	for _, u := range users {
		briefs = append(briefs, u.Brief())
	}
	return briefs, nil
}

// Get returns the full profile, restricted to the account owner.
func (s *UserService) Get(principal, id uint) (*model.User, error) {
	if principal != id {
		return nil, apperr.Forbidden("you may only view your own account")
	}
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return &user, nil
}

type UserUpdate struct {
	Email            *string
	Password         *string
	ContactConsent   *bool
	DataShareConsent *bool
}

func (s *UserService) Update(principal, id uint, in UserUpdate) (*model.User, error) {
	if principal != id {
		return nil, apperr.Forbidden("you may only modify your own account")
	}
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}

	updates := make(map[string]interface{})
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, apperr.Validation("password", "password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		updates["password_hash"] = string(hash)
	}
	if in.ContactConsent != nil {
		updates["contact_consent"] = *in.ContactConsent
	}
	if in.DataShareConsent != nil {
		updates["data_share_consent"] = *in.DataShareConsent
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return &user, nil
}
