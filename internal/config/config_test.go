package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "STORAGE_DRIVER", "TOKEN_CACHE_TTL", "MAIL_WORKERS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.URI != "" {
		t.Errorf("expected empty mongo uri, got %q", cfg.Database.URI)
	}
	if cfg.Storage.Driver != StorageLocal {
		t.Errorf("expected local storage driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Redis.TokenTTL != 5*time.Minute {
		t.Errorf("expected 5m token ttl, got %s", cfg.Redis.TokenTTL)
	}
	if cfg.Server.BodyLimit < 500*1024*1024 {
		t.Errorf("body limit %d is below the course video ceiling", cfg.Server.BodyLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("TOKEN_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.URI != "mongodb://db:27017" {
		t.Errorf("unexpected mongo uri %q", cfg.Database.URI)
	}
	if cfg.Storage.Driver != StorageMinio || !cfg.Storage.MinioUseSSL {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Redis.TokenTTL != 30*time.Second {
		t.Errorf("expected 30s token ttl, got %s", cfg.Redis.TokenTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "s3" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:  ServerConfig{Port: 8080},
				Storage: StorageConfig{Driver: StorageLocal},
				Mail:    MailConfig{Workers: 1},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
