package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "invalid http port",
			config: &Config{
				Server:   ServerConfig{HTTPPort: 0},
				Logging:  DefaultConfig().Logging,
				Dispatch: DefaultConfig().Dispatch,
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			config: &Config{
				Server: DefaultConfig().Server,
				Logging: LoggingConfig{
					Level:  "invalid",
					Format: "json",
				},
				Dispatch: DefaultConfig().Dispatch,
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			config: &Config{
				Server: DefaultConfig().Server,
				Logging: LoggingConfig{
					Level:  "info",
					Format: "xml",
				},
				Dispatch: DefaultConfig().Dispatch,
			},
			wantErr: true,
		},
		{
			name: "enabled dispatch without url",
			config: &Config{
				Server:  DefaultConfig().Server,
				Logging: DefaultConfig().Logging,
				Dispatch: DispatchConfig{
					Enabled: true,
					Type:    "nats",
					Subject: "alerts.generated",
				},
			},
			wantErr: true,
		},
		{
			name: "enabled dispatch without subject",
			config: &Config{
				Server:  DefaultConfig().Server,
				Logging: DefaultConfig().Logging,
				Dispatch: DispatchConfig{
					Enabled: true,
					Type:    "nats",
					URL:     "nats://localhost:4222",
				},
			},
			wantErr: true,
		},
		{
			name: "enabled kafka dispatch without brokers",
			config: &Config{
				Server:  DefaultConfig().Server,
				Logging: DefaultConfig().Logging,
				Dispatch: DispatchConfig{
					Enabled: true,
					Type:    "kafka",
					Subject: "alerts.generated",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown dispatch type",
			config: &Config{
				Server:  DefaultConfig().Server,
				Logging: DefaultConfig().Logging,
				Dispatch: DispatchConfig{
					Enabled: true,
					Type:    "rabbitmq",
					URL:     "amqp://localhost",
					Subject: "alerts.generated",
				},
			},
			wantErr: true,
		},
		{
			name: "disabled dispatch needs no broker settings",
			config: &Config{
				Server:   DefaultConfig().Server,
				Logging:  DefaultConfig().Logging,
				Dispatch: DispatchConfig{Enabled: false},
			},
			wantErr: false,
		},
		{
			name: "memory dispatch needs no url",
			config: &Config{
				Server:  DefaultConfig().Server,
				Logging: DefaultConfig().Logging,
				Dispatch: DispatchConfig{
					Enabled: true,
					Type:    "memory",
					Subject: "alerts.generated",
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.HTTPPort != 8000 {
		t.Errorf("expected HTTPPort 8000, got %d", cfg.Server.HTTPPort)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if cfg.Dispatch.Enabled {
		t.Error("dispatch should be disabled by default")
	}

	if cfg.Dispatch.Subject != "alerts.generated" {
		t.Errorf("expected default subject alerts.generated, got %q", cfg.Dispatch.Subject)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  host: 127.0.0.1
  http_port: 9100
logging:
  level: debug
  format: console
dispatch:
  enabled: true
  type: memory
  subject: alerts.test
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.HTTPPort != 9100 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if !cfg.Dispatch.Enabled || cfg.Dispatch.Type != "memory" {
		t.Errorf("unexpected dispatch config: %+v", cfg.Dispatch)
	}
	if cfg.ListenAddress() != "127.0.0.1:9100" {
		t.Errorf("unexpected listen address %q", cfg.ListenAddress())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Server.HTTPPort != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.HTTPPort)
	}
}
