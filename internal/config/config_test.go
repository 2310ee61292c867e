package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.AdminToken != "" {
		t.Errorf("expected no default admin token, got %q", cfg.AdminToken)
	}
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"config.yaml", "port: 8080\nadmin_token: s3cret\nseed_file: seed.json\nverbose: true\n"},
		{"config.yml", "port: 8080\nadmin_token: s3cret\nseed_file: seed.json\nverbose: true\n"},
		{"config.toml", "port = 8080\nadmin_token = \"s3cret\"\nseed_file = \"seed.json\"\nverbose = true\n"},
		{"config.json", `{"port":8080,"admin_token":"s3cret","seed_file":"seed.json","verbose":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			want := Config{Port: 8080, AdminToken: "s3cret", SeedFile: "seed.json", Verbose: true}
			if *cfg != want {
				t.Errorf("got %+v, want %+v", *cfg, want)
			}
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", "admin_token: s3cret\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_TOKEN", "from-env")
	t.Setenv("KENZIE_VERBOSE", "true")

	cfg, err := Load(writeConfig(t, "config.yaml", "port: 8080\nadmin_token: from-file\nseed_file: seed.json\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 9090 || cfg.AdminToken != "from-env" || !cfg.Verbose {
		t.Errorf("expected env to win, got %+v", cfg)
	}
	if cfg.SeedFile != "seed.json" {
		t.Errorf("expected seed file from file, got %q", cfg.SeedFile)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }, "reading config"},
		{"unsupported extension", func(t *testing.T) string { return writeConfig(t, "config.ini", "port=1") }, "unsupported format"},
		{"bad yaml", func(t *testing.T) string { return writeConfig(t, "config.yaml", "port: [") }, "parsing config"},
		{"bad toml", func(t *testing.T) string { return writeConfig(t, "config.toml", "port = ") }, "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Errorf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: 3000, AdminToken: "t"}, false},
		{"missing token", Config{Port: 3000}, true},
		{"port zero", Config{Port: 0, AdminToken: "t"}, true},
		{"port too high", Config{Port: 70000, AdminToken: "t"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := (&Config{Port: 3000}).Validate(); !errors.Is(err, ErrMissingAdminToken) {
		t.Errorf("expected ErrMissingAdminToken, got %v", err)
	}
}
