package api

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("TEMP_DIR", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != DefaultPort {
		t.Errorf("port = %q, want %q", config.Port, DefaultPort)
	}
	if config.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("max file size = %d, want %d", config.MaxFileSize, DefaultMaxFileSize)
	}
	if config.TempDir != DefaultTempDir {
		t.Errorf("temp dir = %q, want %q", config.TempDir, DefaultTempDir)
	}
}

func TestLoadConfigYAMLAndEnvLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: \"9090\"\nmax_file_size: 1048576\ntemp_dir: /tmp/pdfwork\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070") // env wins over file
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("TEMP_DIR", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != "7070" {
		t.Errorf("port = %q, want env override %q", config.Port, "7070")
	}
	if config.MaxFileSize != 1048576 {
		t.Errorf("max file size = %d, want file value %d", config.MaxFileSize, 1048576)
	}
	if config.TempDir != "/tmp/pdfwork" {
		t.Errorf("temp dir = %q, want file value %q", config.TempDir, "/tmp/pdfwork")
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Error("missing config file did not fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [not: a: string"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := LoadConfig(); err == nil {
		t.Error("malformed config file did not fail")
	}
}

func TestLoadConfigRejectsNonPositiveMaxFileSize(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("TEMP_DIR", "")
	t.Setenv("MAX_FILE_SIZE", "-1")

	if _, err := LoadConfig(); err == nil {
		t.Error("negative max file size did not fail")
	}
}
