package main

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetPassword clears the password variable for the test and restores it after.
func unsetPassword(t *testing.T) {
	t.Helper()
	t.Setenv("FINTRACK_SUPERUSER_PASSWORD", "")
	if err := os.Unsetenv("FINTRACK_SUPERUSER_PASSWORD"); err != nil {
		t.Fatalf("failed to unset password: %v", err)
	}
}

// chdir changes the working directory for the test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}

func TestLoadSettings(t *testing.T) {
	t.Run("password from .env", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FINTRACK_SUPERUSER_PASSWORD=from-dotenv\n"), 0o600); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		chdir(t, dir)
		unsetPassword(t)

		_, secrets, err := loadSettings()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if secrets.Password != "from-dotenv" {
			t.Errorf("expected password from .env, got %q", secrets.Password)
		}
	})

	t.Run("password from environment", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("FINTRACK_SUPERUSER_PASSWORD", "from-env")

		_, secrets, err := loadSettings()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if secrets.Password != "from-env" {
			t.Errorf("expected password from environment, got %q", secrets.Password)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		chdir(t, t.TempDir())
		unsetPassword(t)

		if _, _, err := loadSettings(); err == nil {
			t.Error("expected an error when no password is configured")
		}
	})
}
