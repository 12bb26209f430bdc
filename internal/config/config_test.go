package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Fatalf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
	if cfg.StorageDriver != "file" {
		t.Fatalf("StorageDriver = %s, want file", cfg.StorageDriver)
	}
	if cfg.StorageFile != "barber_assist_data.json" {
		t.Fatalf("StorageFile = %s", cfg.StorageFile)
	}
	if cfg.GeminiModel == "" {
		t.Fatal("GeminiModel default must not be empty")
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr = %s, want :8080", cfg.Addr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("OPERATOR_EMAIL", "dono@barbearia.com")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Fatalf("ServerPort = %s, want 9090", cfg.ServerPort)
	}
	if cfg.StorageDriver != "redis" {
		t.Fatalf("StorageDriver = %s, want redis", cfg.StorageDriver)
	}
	if cfg.OperatorEmail != "dono@barbearia.com" {
		t.Fatalf("OperatorEmail = %s", cfg.OperatorEmail)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("Addr = %s, want :9090", cfg.Addr())
	}
}
