package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		if !models.ValidStatus(status) {
			t.Errorf("Expected %q to be a valid status", status)
		}
	}
	for _, status := range []string{"", "done", "archived", "PENDING"} {
		if models.ValidStatus(status) {
			t.Errorf("Expected %q to be rejected", status)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := models.User{Role: models.RoleAdmin}
	user := models.User{Role: models.RoleUser}

	if !admin.IsAdmin() {
		t.Error("Expected admin role to report IsAdmin")
	}
	if user.IsAdmin() {
		t.Error("Expected user role not to report IsAdmin")
	}
}

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "alice",
		Email:    "a@x.com",
		Password: "bcrypt-hash-here",
		Role:     models.RoleUser,
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "bcrypt-hash-here") {
		t.Error("serialized user must not contain the password hash")
	}
	if strings.Contains(string(data), "password") {
		t.Error("serialized user must not have a password field")
	}
}

func TestUserSummary(t *testing.T) {
	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "alice",
		Email:    "a@x.com",
		Password: "hash",
	}

	summary := user.Summary()
	if summary.Username != "alice" || summary.Email != "a@x.com" {
		t.Errorf("unexpected summary %+v", summary)
	}
}
