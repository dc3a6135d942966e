package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"evolve-coach/internal/domain"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) ListByReminderFrequency(_ context.Context, frequency string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.usersByID {
		if user.Preferences.ReminderFrequency == frequency {
			out = append(out, user)
		}
	}
	return out, nil
}

func TestUserServiceCreateUser_DefaultsPreferences(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:       "  User@Example.com ",
		DisplayName: "Test",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password123" {
		t.Fatalf("expected hashed password")
	}
	if user.Preferences.CoachingStyle != domain.CoachingStyleBalanced {
		t.Fatalf("expected balanced coaching style, got %q", user.Preferences.CoachingStyle)
	}
	if user.Preferences.SessionLength != 15 {
		t.Fatalf("expected default session length, got %d", user.Preferences.SessionLength)
	}
	if user.Preferences.ReminderFrequency != "daily" {
		t.Fatalf("expected daily reminders, got %q", user.Preferences.ReminderFrequency)
	}
}

func TestUserServiceCreateUser_RejectsDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	input := CreateUserInput{Email: "user@example.com", Password: "password123"}
	if _, err := svc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserServiceCreateUser_RejectsWeakPassword(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "user@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUserServiceCreateUser_RejectsInvalidEmail(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "not-an-email",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "user@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "User@Example.com", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %q, got %q", created.ID, user.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "user@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserServiceGetByID_NotFound(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
