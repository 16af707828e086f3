package cliconfig

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if _, err := cfg.GetCredential("http://127.0.0.1:8000"); !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("GetCredential() error = %v, want ErrCredentialNotFound", err)
	}

	if err := cfg.SetCredential("http://127.0.0.1:8000/v1/token", "admin-jwt"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cred, err := loaded.GetCredential("http://127.0.0.1:8000")
	if err != nil {
		t.Fatalf("GetCredential() error = %v", err)
	}
	if cred.Token != "admin-jwt" {
		t.Errorf("Token = %q", cred.Token)
	}

	removed, err := loaded.RemoveCredential("http://127.0.0.1:8000")
	if err != nil || !removed {
		t.Errorf("RemoveCredential() = %v, %v", removed, err)
	}

	if err := loaded.SetCredential("not a url", "x"); err == nil {
		t.Error("expected error for URL without host")
	}
}
