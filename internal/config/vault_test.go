package config

import (
	"strings"
	"testing"
)

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewVaultClient() error: %v", err)
	}
	if client != nil {
		t.Error("NewVaultClient() returned a client for disabled config")
	}
}

func TestResolveVaultToken(t *testing.T) {
	tests := []struct {
		name        string
		config      VaultConfig
		expectError bool
		expected    string
	}{
		{
			name:     "token from config",
			config:   VaultConfig{Token: "test-token"},
			expected: "test-token",
		},
		{
			name:        "missing token",
			config:      VaultConfig{},
			expectError: true,
		},
		{
			name:        "missing token file",
			config:      VaultConfig{TokenFile: "/nonexistent/token"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := resolveVaultToken(tt.config, nil)
			if tt.expectError {
				if err == nil {
					t.Error("resolveVaultToken() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveVaultToken() error: %v", err)
			}
			if token != tt.expected {
				t.Errorf("resolveVaultToken() = %q, want %q", token, tt.expected)
			}
		})
	}
}

func TestGetSecretV2NilClient(t *testing.T) {
	var vc *VaultClient
	_, err := vc.GetSecretV2("secret/data/resumelens/api-keys")
	if err == nil {
		t.Fatal("GetSecretV2() expected error for nil client")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("GetSecretV2() error = %v, want mention of uninitialized client", err)
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{}
	if err := ApplyVaultSecrets(cfg, nil); err != nil {
		t.Errorf("ApplyVaultSecrets() error for disabled vault: %v", err)
	}
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		raw         any
		expected    int64
		expectError bool
	}{
		{name: "int64", raw: int64(3), expected: 3},
		{name: "float64", raw: float64(7), expected: 7},
		{name: "numeric string", raw: "12", expected: 12},
		{name: "bad string", raw: "abc", expectError: true},
		{name: "unexpected type", raw: []int{1}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.raw, "secret/test")
			if tt.expectError {
				if err == nil {
					t.Error("parseVersionValue() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVersionValue() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("parseVersionValue() = %d, want %d", got, tt.expected)
			}
		})
	}
}
