package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()
	if cfg == nil {
		t.Fatal("New() returned nil")
	}
	if cfg.Env == nil {
		t.Fatal("New() did not initialize Env map")
	}
	if len(cfg.Env) != 0 {
		t.Errorf("New() Env map should be empty, got %d entries", len(cfg.Env))
	}
}

func TestLoadEnvFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        map[string]string
		wantErr     bool
	}{
		{
			name: "simple key-value pairs",
			fileContent: `DOCKER_HOST=unix:///run/user/1000/docker.sock
LEOSAC_API_URL=ws://127.0.0.1:8888/websocket`,
			want: map[string]string{
				"DOCKER_HOST":    "unix:///run/user/1000/docker.sock",
				"LEOSAC_API_URL": "ws://127.0.0.1:8888/websocket",
			},
			wantErr: false,
		},
		{
			name: "with comments and empty lines",
			fileContent: `# daemon settings
DOCKER_HOST=tcp://127.0.0.1:2375

# api settings
LEOSAC_API_URL=ws://127.0.0.1:8888/websocket
`,
			want: map[string]string{
				"DOCKER_HOST":    "tcp://127.0.0.1:2375",
				"LEOSAC_API_URL": "ws://127.0.0.1:8888/websocket",
			},
			wantErr: false,
		},
		{
			name: "with whitespace",
			fileContent: `  KEY1  =  value1
KEY2=value2`,
			want: map[string]string{
				"KEY1": "value1",
				"KEY2": "value2",
			},
			wantErr: false,
		},
		{
			name: "with variable expansion",
			fileContent: `RUNTIME_DIR=/run/user/1000
DOCKER_HOST=unix://${RUNTIME_DIR}/docker.sock`,
			want: map[string]string{
				"RUNTIME_DIR": "/run/user/1000",
				"DOCKER_HOST": "unix:///run/user/1000/docker.sock",
			},
			wantErr: false,
		},
		{
			name: "malformed lines are skipped",
			fileContent: `KEY1=value1
INVALID_LINE_NO_EQUALS
KEY2=value2`,
			want: map[string]string{
				"KEY1": "value1",
				"KEY2": "value2",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "test.env")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create temp file: %v", err)
			}

			cfg := New()
			err := cfg.LoadEnvFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadEnvFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			for k, v := range tt.want {
				if got := cfg.Get(k); got != v {
					t.Errorf("Get(%q) = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestLoadEnvFile_MissingFileIsNotAnError(t *testing.T) {
	cfg := New()
	if err := cfg.LoadEnvFile(filepath.Join(t.TempDir(), "does-not-exist.env")); err != nil {
		t.Errorf("LoadEnvFile() on a missing file = %v, want nil", err)
	}
}

func TestPrecedence(t *testing.T) {
	// flags > env-file > process environment.
	t.Setenv("DEVKIT_TEST_KEY", "from-environment")

	envFile := filepath.Join(t.TempDir(), "devkit.env")
	if err := os.WriteFile(envFile, []byte("DEVKIT_TEST_KEY=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := New()
	cfg.LoadFromEnvironment()
	if got := cfg.Get("DEVKIT_TEST_KEY"); got != "from-environment" {
		t.Fatalf("after LoadFromEnvironment, Get() = %q, want %q", got, "from-environment")
	}

	if err := cfg.LoadEnvFile(envFile); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Get("DEVKIT_TEST_KEY"); got != "from-file" {
		t.Fatalf("env file did not override environment, Get() = %q", got)
	}

	cfg.SetFlag("DEVKIT_TEST_KEY", "from-flag")
	if got := cfg.Get("DEVKIT_TEST_KEY"); got != "from-flag" {
		t.Fatalf("flag did not override env file, Get() = %q", got)
	}
}

func TestDaemonHost(t *testing.T) {
	cfg := New()
	if got := cfg.DaemonHost(); got != DefaultDaemonHost {
		t.Errorf("DaemonHost() = %q, want default %q", got, DefaultDaemonHost)
	}

	cfg.SetFlag(EnvDaemonHost, "tcp://127.0.0.1:2375")
	if got := cfg.DaemonHost(); got != "tcp://127.0.0.1:2375" {
		t.Errorf("DaemonHost() = %q, want override", got)
	}
}

func TestAPIEndpoint(t *testing.T) {
	cfg := New()
	if got := cfg.APIEndpoint(); got != DefaultAPIEndpoint {
		t.Errorf("APIEndpoint() = %q, want default %q", got, DefaultAPIEndpoint)
	}

	cfg.SetFlag(EnvAPIEndpoint, "ws://devbox:9999/websocket")
	if got := cfg.APIEndpoint(); got != "ws://devbox:9999/websocket" {
		t.Errorf("APIEndpoint() = %q, want override", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			set:     nil,
			wantErr: false,
		},
		{
			name:    "valid overrides",
			set:     map[string]string{EnvDaemonHost: "tcp://127.0.0.1:2375", EnvAPIEndpoint: "ws://devbox:8888/ws"},
			wantErr: false,
		},
		{
			name:    "bad daemon host",
			set:     map[string]string{EnvDaemonHost: "/var/run/docker.sock"},
			wantErr: true,
		},
		{
			name:    "bad api endpoint",
			set:     map[string]string{EnvAPIEndpoint: "not a url"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			for k, v := range tt.set {
				cfg.SetFlag(k, v)
			}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("Validate() error = %v, want aggregated validation error", err)
			}
		})
	}
}
