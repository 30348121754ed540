package services

import (
	"errors"
	"testing"
	"time"

	"busbook/internal/domain"
	"busbook/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(t *testing.T) (AccountService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := AccountService{
		Users:     repositories.UserRepository{DB: db},
		JWTSecret: []byte("test-secret"),
	}
	return svc, mock
}

func TestRegisterNewAccount(t *testing.T) {
	svc, mock := newAccountService(t)

	mock.ExpectQuery("FROM users").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(7, 1))

	user, err := svc.Register(RegisterInput{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Phone:    "9876543210",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != 7 || user.Email != "jane@example.com" {
		t.Fatalf("registered user = %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock := newAccountService(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "Jane", "jane@example.com", "", "hash", time.Now(), time.Now())
	mock.ExpectQuery("FROM users").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	_, err := svc.Register(RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "correct horse",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAccountService(t)

	cases := []RegisterInput{
		{Name: "", Email: "a@b.com", Password: "long enough"},
		{Name: "Jane", Email: "not-an-email", Password: "long enough"},
		{Name: "Jane", Email: "a@b.com", Password: "short"},
	}
	for i, in := range cases {
		if _, err := svc.Register(in); !domain.IsValidation(err) {
			t.Fatalf("case %d should fail validation, got %v", i, err)
		}
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, mock := newAccountService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "Jane", "jane@example.com", "", string(hash), time.Now(), time.Now())
	mock.ExpectQuery("FROM users").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	token, user, err := svc.Login("jane@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("login issued no token")
	}
	if user.ID != 1 {
		t.Fatalf("user = %+v", user)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newAccountService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "password_hash", "created_at", "updated_at"}).
		AddRow(1, "Jane", "jane@example.com", "", string(hash), time.Now(), time.Now())
	mock.ExpectQuery("FROM users").
		WithArgs("jane@example.com").
		WillReturnRows(rows)

	if _, _, err := svc.Login("jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should be invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newAccountService(t)

	mock.ExpectQuery("FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should be invalid credentials, got %v", err)
	}
}
