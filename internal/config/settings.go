// Package config loads katasync settings from config.yaml, KATASYNC_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/inovacc/katasync/internal/application"
	"github.com/inovacc/katasync/internal/model"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "KATASYNC"
)

// Setting keys.
const (
	KeyStorageDriver  = "storage.driver"
	KeyStorageDir     = "storage.dir"
	KeyCaptureDir     = "capture.dir"
	KeySyncRoot       = "sync.root"
	KeyReadmePath     = "sync.readme_path"
	KeyHistoryLimit   = "sync.history_limit"
	KeySettleDelay    = "sync.settle_delay"
	KeyUseGitAuthor   = "sync.use_git_author"
	KeyGitHubAPIURL   = "github.api_url"
	KeyCodewarsAPIURL = "codewars.api_url"
	KeyOAuthClientID  = "oauth.client_id"
	KeyOAuthSecret    = "oauth.client_secret"
	KeyOAuthPort      = "oauth.port"
	KeyServerAddr     = "server.addr"
	KeyServerOrigins  = "server.allowed_origins"
	KeySlackWebhook   = "notify.slack_webhook"
	KeyWatchSettle    = "watch.settle_delay"
)

// DefaultCodewarsURL is the public Codewars site and API host.
const DefaultCodewarsURL = "https://www.codewars.com"

// Settings is the resolved application settings.
type Settings struct {
	StorageDriver string
	StorageDir    string
	CaptureDir    string

	SyncRoot     string
	ReadmePath   string
	HistoryLimit int
	SettleDelay  time.Duration
	UseGitAuthor bool

	GitHubAPIURL   string
	CodewarsAPIURL string

	OAuthClientID     string
	OAuthClientSecret string
	OAuthPort         int

	ServerAddr     string
	AllowedOrigins []string
	SlackWebhook   string
	WatchSettle    time.Duration
}

// Load reads settings using v. A nil v gets a fresh viper instance.
// A missing config file is not an error.
func Load(v *viper.Viper, dir string) (*Settings, error) {
	if v == nil {
		v = viper.New()
	}

	if dir == "" {
		appDir, err := application.GetApplicationDirectory()
		if err != nil {
			return nil, err
		}

		dir = appDir
	}

	setDefaults(v, dir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	s := &Settings{
		StorageDriver:     v.GetString(KeyStorageDriver),
		StorageDir:        v.GetString(KeyStorageDir),
		CaptureDir:        v.GetString(KeyCaptureDir),
		SyncRoot:          v.GetString(KeySyncRoot),
		ReadmePath:        v.GetString(KeyReadmePath),
		HistoryLimit:      v.GetInt(KeyHistoryLimit),
		SettleDelay:       v.GetDuration(KeySettleDelay),
		UseGitAuthor:      v.GetBool(KeyUseGitAuthor),
		GitHubAPIURL:      v.GetString(KeyGitHubAPIURL),
		CodewarsAPIURL:    v.GetString(KeyCodewarsAPIURL),
		OAuthClientID:     v.GetString(KeyOAuthClientID),
		OAuthClientSecret: v.GetString(KeyOAuthSecret),
		OAuthPort:         v.GetInt(KeyOAuthPort),
		ServerAddr:        v.GetString(KeyServerAddr),
		AllowedOrigins:    v.GetStringSlice(KeyServerOrigins),
		SlackWebhook:      v.GetString(KeySlackWebhook),
		WatchSettle:       v.GetDuration(KeyWatchSettle),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyStorageDriver, "sqlite")
	v.SetDefault(KeyStorageDir, dir)
	v.SetDefault(KeyCaptureDir, filepath.Join(dir, "captures"))
	v.SetDefault(KeySyncRoot, "codewars")
	v.SetDefault(KeyReadmePath, "README.md")
	v.SetDefault(KeyHistoryLimit, model.HistoryLimit)
	v.SetDefault(KeySettleDelay, 100*time.Millisecond)
	v.SetDefault(KeyUseGitAuthor, false)
	v.SetDefault(KeyGitHubAPIURL, "")
	v.SetDefault(KeyCodewarsAPIURL, DefaultCodewarsURL)
	v.SetDefault(KeyOAuthClientID, "")
	v.SetDefault(KeyOAuthSecret, "")
	v.SetDefault(KeyOAuthPort, 8341)
	v.SetDefault(KeyServerAddr, "127.0.0.1:8342")
	v.SetDefault(KeyServerOrigins, []string{})
	v.SetDefault(KeySlackWebhook, "")
	v.SetDefault(KeyWatchSettle, 50*time.Millisecond)
}

func (s *Settings) validate() error {
	if s.HistoryLimit <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyHistoryLimit, s.HistoryLimit)
	}

	if strings.Trim(s.SyncRoot, "/") == "" {
		return fmt.Errorf("%s must not be empty", KeySyncRoot)
	}

	if s.ReadmePath == "" {
		return fmt.Errorf("%s must not be empty", KeyReadmePath)
	}

	return nil
}
