package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
	"busbook/internal/repositories"
	"busbook/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login when the email or password is
// wrong. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AccountService handles registration, login and the contact-details
// prefill for the booking form.
type AccountService struct {
	Users     repositories.UserRepository
	JWTSecret []byte
	TokenTTL  time.Duration
	RequestID string
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s AccountService) Register(in RegisterInput) (models.PublicUser, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "invalid email address", Err: err}
	}
	if len(in.Password) < 8 {
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"}
	}

	if _, err := s.Users.GetByEmail(email); err == nil {
		return models.PublicUser{}, domain.ConflictError{Resource: "user", Msg: "email is already registered"}
	} else if !domain.IsNotFound(err) {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to check existing user", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
	}
	id, err := s.Users.Create(u)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to create user", Err: err}
	}
	u.ID = id

	utils.LogEvent(s.RequestID, "account", "register", "email="+email)
	return u.ToPublic(), nil
}

// Login verifies the credentials and issues a signed token.
func (s AccountService) Login(email, password string) (string, models.PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.PublicUser{}, ErrInvalidCredentials
		}
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	utils.LogEvent(s.RequestID, "account", "login", "email="+email)
	return signed, u.ToPublic(), nil
}

// Profile returns the account used to prefill contact details.
func (s AccountService) Profile(userID int64) (models.PublicUser, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.PublicUser{}, err
		}
		return models.PublicUser{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return u.ToPublic(), nil
}
