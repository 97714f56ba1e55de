package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("RABBIT_URL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("port default: %q", cfg.Port)
	}
	// без адреса Redis троттлинг кодов отключается, пустая строка и есть сигнал
	if cfg.RedisAddr != "" {
		t.Errorf("redis must default to empty, got %q", cfg.RedisAddr)
	}
	if cfg.RabbitURL != "" {
		t.Errorf("rabbit must default to empty, got %q", cfg.RabbitURL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ACCESS_TTL_MINS", "15")

	cfg := Load()
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("redis addr: %q", cfg.RedisAddr)
	}
	if cfg.AccessTTLMins != 15 {
		t.Errorf("access ttl: %d", cfg.AccessTTLMins)
	}
}
