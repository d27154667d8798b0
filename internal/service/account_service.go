package service

import (
	"context"

	"scribe/internal/models"
	"scribe/internal/repository"
	"scribe/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// AccountService registers and authenticates users.
type AccountService struct {
	users repository.UserRepository
	cost  int
}

// NewAccountService returns an AccountService hashing with bcrypt.DefaultCost.
func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, used by tests and the seeder.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.cost = cost
	return s
}

// HashPassword returns the bcrypt hash of password.
func (s *AccountService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// Signup validates the form and creates the account.
func (s *AccountService) Signup(ctx context.Context, form validation.SignupForm) (*models.User, error) {
	form.Normalize()
	fields, err := validation.Struct(form)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	hashed, err := s.HashPassword(form.Password1)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  form.Username,
		Email:     form.Email,
		Password:  hashed,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials. Unknown users and wrong passwords fail alike.
func (s *AccountService) Login(ctx context.Context, form validation.LoginForm) (*models.User, error) {
	form.Normalize()
	fields, err := validation.Struct(form)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	user, err := s.users.GetByUsername(ctx, form.Username)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthenticatedError(invalidLogin)
		}
		return nil, err
	}
	// Malformed stored hashes are treated as a failed login.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return nil, models.NewUnauthenticatedError(invalidLogin)
	}
	return user, nil
}

// CurrentUser loads the authenticated user.
func (s *AccountService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
