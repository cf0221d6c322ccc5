package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("Failed to get config path: %v", err)
	}
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("Expected file name %s, got: %s", ConfigFileName, path)
	}
	if filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("Expected parent dir %s, got: %s", AppDirName, path)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", ConfigFileName)
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("Config dir missing: %v", err)
	}
}

func TestValidateExternalURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"https maps link", "https://maps.google.com/?q=Tiger+Leaping+Gorge", false},
		{"http", "http://example.com/place", false},
		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no host", "https:///path", true},
		{"relative", "/locations/1", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ValidateExternalURL(test.raw)
			if (err != nil) != test.wantErr {
				t.Errorf("ValidateExternalURL(%q) error = %v, wantErr %v", test.raw, err, test.wantErr)
			}
		})
	}
}

func TestOpenURL_RejectsInvalid(t *testing.T) {
	if err := OpenURL("javascript:alert(1)"); err == nil {
		t.Error("Expected error for non-http url")
	}
}
