package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultCatalogURL is the product feed read by the catalog screen.
const DefaultCatalogURL = "https://fakestoreapi.com/products"

// StorageBackend selects the task repository implementation.
type StorageBackend string

const (
	StorageMemory StorageBackend = "memory"
	StorageSQLite StorageBackend = "sqlite"
)

// Screen names accepted by ui.start_screen.
const (
	ScreenTodo    = "todo"
	ScreenCatalog = "catalog"
	ScreenSearch  = "search"
	ScreenToggle  = "toggle"
)

var screens = []string{ScreenTodo, ScreenCatalog, ScreenSearch, ScreenToggle}

// Config is the full runtime configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Storage StorageConfig `toml:"storage"`
	Todo    TodoConfig    `toml:"todo"`
	Search  SearchConfig  `toml:"search"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type CatalogConfig struct {
	URL       string `toml:"url"`
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
}

type TodoConfig struct {
	Tasks []TaskSeed `toml:"tasks"`
}

// TaskSeed is one initial to-do entry.
type TaskSeed struct {
	Title     string `toml:"title"`
	Completed bool   `toml:"completed"`
}

type SearchConfig struct {
	Items []string `toml:"items"`
}

type UIConfig struct {
	StartScreen string `toml:"start_screen"`
}

// LoggingConfig controls runtime log level and the optional dev log file.
type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			URL:       DefaultCatalogURL,
			Timeout:   "10s",
			UserAgent: "widgets",
		},
		Storage: StorageConfig{
			Backend: StorageMemory,
		},
		Todo: TodoConfig{
			Tasks: []TaskSeed{
				{Title: "Buy groceries", Completed: true},
				{Title: "Walk the dog"},
			},
		},
		Search: SearchConfig{
			Items: []string{"coconut", "apple", "banana", "orange", "date", "grapes", "mango"},
		},
		UI: UIConfig{
			StartScreen: ScreenTodo,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".widgets/log",
			},
		},
	}
}

// Load reads path over defaults. A missing or empty file yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	// List sections replace the defaults instead of extending them.
	cfg.Todo.Tasks = nil
	cfg.Search.Items = nil
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if cfg.Todo.Tasks == nil {
		cfg.Todo.Tasks = slices.Clone(defaults.Todo.Tasks)
	}
	if cfg.Search.Items == nil {
		cfg.Search.Items = slices.Clone(defaults.Search.Items)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	rawURL := strings.TrimSpace(c.Catalog.URL)
	if rawURL == "" {
		return errors.New("catalog.url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid catalog.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("catalog.url must use http or https: %q", rawURL)
	}
	if _, err := c.CatalogTimeout(); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	for idx, task := range c.Todo.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			return fmt.Errorf("todo.tasks[%d].title is required", idx)
		}
	}

	if !slices.Contains(screens, NormalizeScreen(c.UI.StartScreen)) {
		return fmt.Errorf("invalid ui.start_screen: %q", c.UI.StartScreen)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when enabled")
	}

	return nil
}

// CatalogTimeout parses catalog.timeout. Empty or "0" disables the deadline.
func (c Config) CatalogTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Catalog.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid catalog.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("catalog.timeout must be >= 0: %q", raw)
	}
	return d, nil
}

// SearchItems returns a copy of the search source list.
func (c Config) SearchItems() []string {
	return slices.Clone(c.Search.Items)
}

// NormalizeScreen lowercases and trims a screen name; empty means todo.
func NormalizeScreen(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return ScreenTodo
	}
	return name
}

// IsValidScreen reports whether name is a known screen.
func IsValidScreen(name string) bool {
	return slices.Contains(screens, NormalizeScreen(name))
}

// ErrConfigExists is returned by Save when path exists and overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// Save writes cfg as TOML to path, creating the parent directory.
func Save(path string, cfg Config, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureConfigDir creates the directory that holds path.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
