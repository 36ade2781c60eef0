package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tunebox?sslmode=disable")
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Loadが失敗: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPortのデフォルトが8080ではなく%s", cfg.ServerPort)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddrのデフォルトが期待値でない: %s", cfg.RedisAddr)
	}
	if cfg.AccessTokenAge != 24*time.Hour {
		t.Errorf("AccessTokenAgeのデフォルトが24hではなく%v", cfg.AccessTokenAge)
	}
	if cfg.LikesCacheTTL != 30*time.Minute {
		t.Errorf("LikesCacheTTLのデフォルトが30mではなく%v", cfg.LikesCacheTTL)
	}
	if !cfg.AllowDuplicatePlaylistSongs {
		t.Error("AllowDuplicatePlaylistSongsのデフォルトがtrueでない")
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneralのデフォルトが120ではなく%d", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitMutation != 30 {
		t.Errorf("RateLimitMutationのデフォルトが30ではなく%d", cfg.RateLimitMutation)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOriginのデフォルトが期待値でない: %s", cfg.CORSAllowedOrigin)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("DATABASE_URL未設定でもエラーが返らない")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("エラーメッセージに欠落した変数名が含まれない: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LIKES_CACHE_TTL", "5m")
	t.Setenv("ALLOW_DUPLICATE_PLAYLIST_SONGS", "false")
	t.Setenv("RATE_LIMIT_MUTATION", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Loadが失敗: %v", err)
	}

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPortが9000ではなく%s", cfg.ServerPort)
	}
	if cfg.LikesCacheTTL != 5*time.Minute {
		t.Errorf("LikesCacheTTLが5mではなく%v", cfg.LikesCacheTTL)
	}
	if cfg.AllowDuplicatePlaylistSongs {
		t.Error("AllowDuplicatePlaylistSongsがfalseに上書きされない")
	}
	if cfg.RateLimitMutation != 10 {
		t.Errorf("RateLimitMutationが10ではなく%d", cfg.RateLimitMutation)
	}
}

func TestLoadInvalidValuesFallBackToDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LIKES_CACHE_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_GENERAL", "many")
	t.Setenv("ALLOW_DUPLICATE_PLAYLIST_SONGS", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Loadが失敗: %v", err)
	}

	if cfg.LikesCacheTTL != 30*time.Minute {
		t.Errorf("不正値のLIKES_CACHE_TTLがデフォルトに戻らない: %v", cfg.LikesCacheTTL)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("不正値のRATE_LIMIT_GENERALがデフォルトに戻らない: %d", cfg.RateLimitGeneral)
	}
	if !cfg.AllowDuplicatePlaylistSongs {
		t.Error("不正値のALLOW_DUPLICATE_PLAYLIST_SONGSがデフォルトに戻らない")
	}
}
