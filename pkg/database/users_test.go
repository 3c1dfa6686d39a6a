package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/agrovista/agrovista/pkg/models"
)

// randomEmail creates a unique test email address
func randomEmail(t *testing.T) string {
	t.Helper()
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		t.Fatalf("Failed to generate random email: %v", err)
	}
	return fmt.Sprintf("test_%s@example.com", hex.EncodeToString(bytes))
}

func TestCreateUser(t *testing.T) {
	dm := setupTestManager(t)
	if dm == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer dm.Close()

	ctx := context.Background()
	email := randomEmail(t)
	password := "SecurePassword123!"

	user, err := dm.CreateUser(ctx, email, password)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected user ID to be set")
	}
	if user.Email != email {
		t.Errorf("Expected email=%s, got %s", email, user.Email)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	// Password must validate (stored hashed, never plain)
	validated, err := dm.ValidateUser(ctx, email, password)
	if err != nil {
		t.Fatalf("Failed to validate user: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("Expected validated user ID=%s, got %s", user.ID, validated.ID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	dm := setupTestManager(t)
	if dm == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer dm.Close()

	ctx := context.Background()
	email := randomEmail(t)
	password := "SecurePassword123!"

	if _, err := dm.CreateUser(ctx, email, password); err != nil {
		t.Fatalf("Failed to create first user: %v", err)
	}

	_, err := dm.CreateUser(ctx, email, password)
	if models.CodeOf(err) != models.ErrConflict {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}
}

func TestCreateUser_EmptyEmail(t *testing.T) {
	dm := setupTestManager(t)
	if dm == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer dm.Close()

	_, err := dm.CreateUser(context.Background(), "", "SecurePassword123!")
	if err == nil {
		t.Error("Expected error when creating user with empty email")
	}
}

func TestValidateUser_WrongPassword(t *testing.T) {
	dm := setupTestManager(t)
	if dm == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer dm.Close()

	ctx := context.Background()
	email := randomEmail(t)

	if _, err := dm.CreateUser(ctx, email, "CorrectPassword123!"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	_, err := dm.ValidateUser(ctx, email, "WrongPassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateUser_UnknownEmail(t *testing.T) {
	dm := setupTestManager(t)
	if dm == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	defer dm.Close()

	_, err := dm.ValidateUser(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}
