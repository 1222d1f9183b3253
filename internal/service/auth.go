package service

import (
	"context"
	"errors"
	"time"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	jwtpkg "github.com/Fatimata-sang/OC-S.F-Project10/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinSignupAge is the legal minimum for registration.
const MinSignupAge = 16

type AuthService struct {
	db        *gorm.DB
	denylist  *TokenDenylist
	jwtSecret string
	jwtExpire int
}

func NewAuthService(db *gorm.DB, denylist *TokenDenylist, jwtSecret string, jwtExpire int) *AuthService {
	return &AuthService{
		db:        db,
		denylist:  denylist,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

type SignupInput struct {
	Username         string
	Email            string
	Password         string
	Age              int
	ContactConsent   bool
	DataShareConsent bool
}

func (s *AuthService) Signup(in SignupInput) (*model.User, error) {
	if in.Age < MinSignupAge {
		return nil, apperr.Validation("age", "you must be at least 16 years old to sign up")
	}
	if len(in.Password) < 8 {
		return nil, apperr.Validation("password", "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Username:         in.Username,
		Email:            in.Email,
		PasswordHash:     string(hash),
		Age:              in.Age,
		ContactConsent:   in.ContactConsent,
		DataShareConsent: in.DataShareConsent,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("username already taken")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *AuthService) Login(username, password string) (*model.User, string, time.Time, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, apperr.Unauthorized("invalid username or password")
		}
		return nil, "", time.Time{}, apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, apperr.Unauthorized("invalid username or password")
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Username, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, apperr.Internal(err)
	}
	return &user, token, expireAt, nil
}

func (s *AuthService) RefreshToken(userID uint) (string, time.Time, error) {
	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", time.Time{}, apperr.Internal(err)
	}
	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Username, s.jwtExpire)
	if err != nil {
		return "", time.Time{}, apperr.Internal(err)
	}
	return token, expireAt, nil
}

// Logout revokes the presented token until its natural expiry. Without a
// configured denylist the token simply ages out.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := jwtpkg.ParseToken(s.jwtSecret, tokenStr)
	if err != nil {
		return apperr.Unauthorized("invalid token")
	}
	if err := s.denylist.Revoke(ctx, tokenStr, claims.ExpiresAt.Time); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}
