package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Settings holds the persisted application configuration.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	Providers ProviderSettings  `json:"providers"`
	Discovery DiscoverySettings `json:"discovery"`
	View      ViewSettings      `json:"view"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	ListenAddr string `json:"listenAddr"`
	// AllowedOrigin scopes the CORS allow header to a single client
	// origin. Empty means the permissive wildcard variant.
	AllowedOrigin string `json:"allowedOrigin,omitempty"`
	DatabasePath  string `json:"databasePath"`
	LogPath       string `json:"logPath,omitempty"`
}

// ProviderSettings points at the two upstream movie-data providers.
// API keys are deliberately not part of the settings file; they come
// from the environment so they never land on disk.
type ProviderSettings struct {
	CatalogBaseURL string `json:"catalogBaseUrl"`
	RecordBaseURL  string `json:"recordBaseUrl"`
	ImageBaseURL   string `json:"imageBaseUrl"`
}

// DiscoverySettings bounds the listing and enrichment flows.
type DiscoverySettings struct {
	BannerLimit  int `json:"bannerLimit"`
	PopularLimit int `json:"popularLimit"`
	SearchLimit  int `json:"searchLimit"`
}

// ViewSettings carries presentation timing handed to the client.
type ViewSettings struct {
	BannerIntervalSeconds int `json:"bannerIntervalSeconds"`
	ToastDurationSeconds  int `json:"toastDurationSeconds"`
	SkeletonCards         int `json:"skeletonCards"`
}

// Credentials are the upstream API keys, sourced from the environment.
type Credentials struct {
	CatalogAPIKey string
	RecordAPIKey  string
}

// Configured reports whether both provider keys are present.
func (c Credentials) Configured() bool {
	return c.CatalogAPIKey != "" && c.RecordAPIKey != ""
}

// CredentialsFromEnv reads the two provider keys from the process
// environment. Absence is reported per request by the proxy handler and
// at startup by main; it is never a silent degraded mode.
func CredentialsFromEnv() Credentials {
	return Credentials{
		CatalogAPIKey: os.Getenv("TMDB_API_KEY"),
		RecordAPIKey:  os.Getenv("OMDB_API_KEY"),
	}
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			ListenAddr:   ":8080",
			DatabasePath: "data/filmera.db",
		},
		Providers: ProviderSettings{
			CatalogBaseURL: "https://api.themoviedb.org/3",
			RecordBaseURL:  "https://www.omdbapi.com",
			ImageBaseURL:   "https://image.tmdb.org/t/p/",
		},
		Discovery: DiscoverySettings{
			BannerLimit:  18,
			PopularLimit: 15,
			SearchLimit:  8,
		},
		View: ViewSettings{
			BannerIntervalSeconds: 5,
			ToastDurationSeconds:  3,
			SkeletonCards:         6,
		},
	}
}

// Manager loads and saves the settings file. The filesystem is
// abstracted so tests run against an in-memory fs.
type Manager struct {
	fs   afero.Fs
	path string
	mu   sync.RWMutex
}

// NewManager creates a settings manager backed by the OS filesystem.
func NewManager(path string) *Manager {
	return NewManagerWithFs(afero.NewOsFs(), path)
}

// NewManagerWithFs creates a settings manager on an explicit filesystem.
func NewManagerWithFs(fs afero.Fs, path string) *Manager {
	return &Manager{fs: fs, path: path}
}

// Load reads the settings file. A missing file yields the defaults
// without creating it.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

// Save writes the settings file, creating parent directories as needed.
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(m.path)
	if dir != "" && dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := afero.WriteFile(m.fs, m.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
