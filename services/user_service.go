package services

import (
	"errors"

	"gorm.io/gorm"

	"shortlink/auth"
	"shortlink/models"
)

type UserService struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
}

func NewUserService(db *gorm.DB, tokens *auth.TokenIssuer) *UserService {
	return &UserService{db: db, tokens: tokens}
}

// AuthResult is what signup and signin hand back to the gateway.
type AuthResult struct {
	User  models.User
	Token string
}

// Signup registers a new account. The email pre-check gives a friendly
// error on the common path; the unique constraint is the source of truth
// under concurrent signups.
func (s *UserService) Signup(email, name, password, phone string) (*AuthResult, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Email: email,
		Name:  name,
		Phone: phone,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Signin checks credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Signin(email, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrBadCredentials
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// UpdateProfile overwrites only the fields that were supplied, so a
// partial update never nulls out the other one.
func (s *UserService) UpdateProfile(id uint, email, name string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}
