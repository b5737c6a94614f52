package config

import "testing"

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8080",
			MaxUploadSize: 10 * 1024 * 1024,
			TLS:           TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "missing port",
			mutate:      func(c *Config) { c.Server.Port = "" },
			expectError: true,
		},
		{
			name:        "zero upload size",
			mutate:      func(c *Config) { c.Server.MaxUploadSize = 0 },
			expectError: true,
		},
		{
			name:        "default format not in supported formats",
			mutate:      func(c *Config) { c.App.DefaultFormat = "xml" },
			expectError: true,
		},
		{
			name:        "bad tls mode",
			mutate:      func(c *Config) { c.Server.TLS.Mode = "always" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError && err == nil {
				t.Error("Validate() expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestApplyFallbacksAPIKeysFromEnv(t *testing.T) {
	t.Setenv("RESUMELENS_SERVER_APIKEYS", "key-one, key-two ,key-three")

	cfg := validConfig()
	cfg.applyFallbacks()

	if len(cfg.Server.APIKeys) != 3 {
		t.Fatalf("expected 3 API keys, got %d", len(cfg.Server.APIKeys))
	}
	for i, want := range []string{"key-one", "key-two", "key-three"} {
		if cfg.Server.APIKeys[i] != want {
			t.Errorf("API key %d = %q, want %q", i, cfg.Server.APIKeys[i], want)
		}
	}
}

func TestApplyFallbacksTLSDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Server.TLS = TLSConfig{Mode: "mutual", CertFile: "c", KeyFile: "k", CAFile: "ca"}
	cfg.applyFallbacks()

	if cfg.Server.TLS.ClientAuthPolicy != "require" {
		t.Errorf("ClientAuthPolicy = %q, want require", cfg.Server.TLS.ClientAuthPolicy)
	}
	if cfg.Server.TLS.MinVersion != "1.2" {
		t.Errorf("MinVersion = %q, want 1.2", cfg.Server.TLS.MinVersion)
	}
}

func TestApplyFallbacksServiceInstance(t *testing.T) {
	cfg := validConfig()
	cfg.Observability.ServiceName = "resumelens"
	cfg.applyFallbacks()

	if cfg.Observability.ServiceInstance == "" {
		t.Error("ServiceInstance not generated")
	}
}
