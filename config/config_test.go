package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort == "" {
		t.Fatal("expected a default server port")
	}
	if cfg.DBPort != "3306" {
		t.Fatalf("unexpected default DB port: %s", cfg.DBPort)
	}
	if cfg.RedisPort != "6379" {
		t.Fatalf("unexpected default Redis port: %s", cfg.RedisPort)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CRATEFM_TEST_KEY", "value")

	if got := getEnv("CRATEFM_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("getEnv returned %q, want %q", got, "value")
	}
	if got := getEnv("CRATEFM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("getEnv returned %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("CRATEFM_TEST_INT", "5")
	t.Setenv("CRATEFM_TEST_BAD_INT", "five")

	if got := getEnvInt("CRATEFM_TEST_INT", 0); got != 5 {
		t.Fatalf("getEnvInt returned %d, want 5", got)
	}
	if got := getEnvInt("CRATEFM_TEST_BAD_INT", 3); got != 3 {
		t.Fatalf("getEnvInt returned %d, want fallback 3", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("CRATEFM_TEST_BOOL", "true")

	if got := getEnvBool("CRATEFM_TEST_BOOL", false); !got {
		t.Fatal("getEnvBool returned false, want true")
	}
	if got := getEnvBool("CRATEFM_TEST_MISSING_BOOL", true); !got {
		t.Fatal("getEnvBool returned false, want fallback true")
	}
}
