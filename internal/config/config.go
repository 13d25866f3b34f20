package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

func init() {
	// Best effort: absent .env is the normal case in containers.
	_ = godotenv.Load()
}

// Config is the explicit configuration value object, built once at startup
// and passed down. No component reads the environment on its own.
//
// Environment names are lowercase to keep the contract of the deployed
// bot images (wanaplay_login, wanaplay_password, fake_date, ...).
type Config struct {
	Login    string
	Password string
	Endpoint string

	ListenAddr      string
	ComposeFilePath string
	BookerImage     string

	BotToken string
	ChatID   string

	LogLevel string

	// FakeDate, when set, pins the scheduler's clock for testing.
	FakeDate *time.Time
}

func FromEnv() (Config, error) {
	cfg := Config{
		Login:           os.Getenv("wanaplay_login"),
		Password:        os.Getenv("wanaplay_password"),
		Endpoint:        getenv("wanaplay_endpoint", wanaplay.DefaultEndpoint),
		ListenAddr:      getenv("listen_addr", ":8000"),
		ComposeFilePath: os.Getenv("compose_file_path"),
		BookerImage:     getenv("booker_image", "touplitoui/wanaplay-booker-bot"),
		BotToken:        os.Getenv("bot_token"),
		ChatID:          os.Getenv("chat_id"),
		LogLevel:        getenv("log_level", "info"),
	}

	if raw := os.Getenv("fake_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid fake_date (want RFC3339): %w", err)
		}
		cfg.FakeDate = &t
	}

	return cfg, nil
}

// RequireCredentials rejects startup before the loop when the login pair is
// missing.
func (c Config) RequireCredentials() error {
	if c.Login == "" || c.Password == "" {
		return fmt.Errorf("environment variables wanaplay_login and wanaplay_password should be set")
	}
	return nil
}

func (c Config) RequireCompose() error {
	if c.ComposeFilePath == "" {
		return fmt.Errorf("environment variable compose_file_path should be set")
	}
	return nil
}

func (c Config) RequireTelegram() error {
	if c.BotToken == "" || c.ChatID == "" {
		return fmt.Errorf("environment variables bot_token and chat_id should be set")
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
