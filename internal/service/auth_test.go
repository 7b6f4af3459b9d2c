package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/devgear/devgear-go/internal/model"
	"github.com/devgear/devgear-go/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewAuthService(repository.NewUserRepository(db)), mock
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()

	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("error %v is not a *service.Error", err)
	}
	return svcErr.Kind
}

func TestSignupValidation(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(nil))

	tests := []struct {
		name    string
		req     model.SignupRequest
		message string
	}{
		{
			name:    "short name",
			req:     model.SignupRequest{Name: "A", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1"},
			message: "Name must be at least 2 characters",
		},
		{
			name:    "bad email",
			req:     model.SignupRequest{Name: "Al", Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret1"},
			message: "Invalid email address",
		},
		{
			name:    "short password",
			req:     model.SignupRequest{Name: "Al", Email: "a@x.com", Password: "abc", ConfirmPassword: "abc"},
			message: "Password must be at least 6 characters",
		},
		{
			name:    "confirmation mismatch",
			req:     model.SignupRequest{Name: "Al", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret2"},
			message: "Passwords don't match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req)
			if kindOf(t, err) != KindValidation {
				t.Fatalf("Signup() error kind = %v, want KindValidation", kindOf(t, err))
			}
			var svcErr *Error
			errors.As(err, &svcErr)
			if svcErr.Message != tt.message {
				t.Errorf("Signup() message = %q, want %q", svcErr.Message, tt.message)
			}
		})
	}
}

func TestSignupHashesPassword(t *testing.T) {
	svc, mock := newTestAuthService(t)

	var insertedHash string
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "a@x.com", "Al", hashCapture{&insertedHash}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.Signup(context.Background(), model.SignupRequest{
		Name: "Al", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}

	if user.PasswordHash != "" {
		t.Error("Signup() returned a user carrying the password hash")
	}
	if user.ID == "" {
		t.Error("Signup() returned a user without an ID")
	}
	if insertedHash == "secret1" {
		t.Error("Signup() stored the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(insertedHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, mock := newTestAuthService(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com' for key 'users.email'"))

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Name: "Al", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	if kindOf(t, err) != KindConflict {
		t.Fatalf("Signup() error kind = %v, want KindConflict", kindOf(t, err))
	}
	var svcErr *Error
	errors.As(err, &svcErr)
	if svcErr.Message != "A user with this email already exists" {
		t.Errorf("Signup() message = %q", svcErr.Message)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(nil))

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "nope", Password: "secret1"})
	if kindOf(t, err) != KindValidation {
		t.Fatalf("Login() error kind = %v, want KindValidation", kindOf(t, err))
	}

	_, err = svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "abc"})
	if kindOf(t, err) != KindValidation {
		t.Fatalf("Login() error kind = %v, want KindValidation", kindOf(t, err))
	}
}

func TestLoginUnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	svc, mock := newTestAuthService(t)

	userColumns := []string{"id", "email", "name", "password_hash", "created_at"}
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?").
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, errUnknown := svc.Login(context.Background(), model.LoginRequest{Email: "missing@x.com", Password: "whatever1"})

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "a@x.com", "Al", string(hash), time.Now()))

	_, errWrong := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "wrong-password"})

	if kindOf(t, errUnknown) != KindAuthentication || kindOf(t, errWrong) != KindAuthentication {
		t.Fatalf("errors = %v / %v, want both KindAuthentication", errUnknown, errWrong)
	}

	var e1, e2 *Error
	errors.As(errUnknown, &e1)
	errors.As(errWrong, &e2)
	if e1.Message != e2.Message {
		t.Errorf("messages differ: %q vs %q", e1.Message, e2.Message)
	}
	if e1.Message != "Invalid email or password" {
		t.Errorf("message = %q, want %q", e1.Message, "Invalid email or password")
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, mock := newTestAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery("SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow("u-1", "a@x.com", "Al", string(hash), time.Now()))

	user, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if user.ID != "u-1" {
		t.Errorf("Login() user ID = %q, want u-1", user.ID)
	}
	if user.PasswordHash != "" {
		t.Error("Login() returned a user carrying the password hash")
	}
}

// hashCapture is a sqlmock argument matcher that records the bound value.
type hashCapture struct {
	dst *string
}

func (h hashCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	*h.dst = s
	return true
}
