package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/widgets/internal/adapters/catalog"
	"github.com/evanschultz/widgets/internal/adapters/storage/memory"
	"github.com/evanschultz/widgets/internal/adapters/storage/sqlite"
	"github.com/evanschultz/widgets/internal/app"
	"github.com/evanschultz/widgets/internal/config"
	"github.com/evanschultz/widgets/internal/domain"
	"github.com/evanschultz/widgets/internal/platform"
	"github.com/evanschultz/widgets/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// errCatalogUnavailable reports a headless catalog load that produced nothing to show.
var errCatalogUnavailable = errors.New("catalog unavailable")

// main handles main.
func main() {
	root := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree against args; tests drive the CLI through it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// cliOptions holds the flag values shared by every command.
type cliOptions struct {
	configPath string
	appName    string
	devMode    bool
	screen     string
	catalogURL string
}

// newRootCommand builds the command tree. The root command runs the TUI.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := cliOptions{appName: "widgets", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("WIDGETS_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("WIDGETS_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:           "widgets",
		Short:         "A terminal showcase of small interactive widgets",
		Long:          "widgets runs a to-do list, a remote product catalog, a live search filter, and a toggle switch in one terminal app.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts, stderr)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")
	flags.StringVar(&opts.catalogURL, "catalog-url", "", "override the product catalog URL")
	root.Flags().StringVar(&opts.screen, "screen", "", "start screen: todo, catalog, search, or toggle")

	root.AddCommand(
		&cobra.Command{
			Use:   "paths",
			Short: "Print resolved config and data paths",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runPaths(opts, stdout)
			},
		},
		newConfigCommand(&opts, stdout),
		&cobra.Command{
			Use:   "catalog",
			Short: "Load the product catalog once and print it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCatalog(cmd.Context(), opts, stdout, stderr)
			},
		},
	)
	return root
}

// newConfigCommand groups config file helpers.
func newConfigCommand(opts *cliOptions, stdout io.Writer) *cobra.Command {
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(*opts, force, stdout)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the widgets config file",
	}
	cmd.AddCommand(initCmd)
	return cmd
}

// runtimeEnv is the resolved state every command flow starts from.
type runtimeEnv struct {
	appName    string
	devMode    bool
	paths      platform.Paths
	configPath string
	cfg        config.Config
}

// resolveRuntime resolves paths and loads config, applying flag and env overrides.
func resolveRuntime(opts cliOptions) (runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return runtimeEnv{}, err
	}

	configPath := configPathFor(opts, paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("load config %q: %w", configPath, err)
	}

	catalogURL := strings.TrimSpace(opts.catalogURL)
	if catalogURL == "" {
		catalogURL = strings.TrimSpace(os.Getenv("WIDGETS_CATALOG_URL"))
	}
	if catalogURL != "" {
		cfg.Catalog.URL = catalogURL
	}
	if screen := strings.TrimSpace(opts.screen); screen != "" {
		cfg.UI.StartScreen = config.NormalizeScreen(screen)
	}
	if err := cfg.Validate(); err != nil {
		return runtimeEnv{}, err
	}

	return runtimeEnv{
		appName:    opts.appName,
		devMode:    opts.devMode,
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
	}, nil
}

// configPathFor picks the config file: flag, then WIDGETS_CONFIG, then the platform default.
func configPathFor(opts cliOptions, paths platform.Paths) string {
	if configPath := strings.TrimSpace(opts.configPath); configPath != "" {
		return configPath
	}
	if envPath := strings.TrimSpace(os.Getenv("WIDGETS_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// runPaths prints resolved runtime paths without touching config.
func runPaths(opts cliOptions, stdout io.Writer) error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
	_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
	_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
	_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
	return nil
}

// runConfigInit writes config.Default() to the resolved config path.
func runConfigInit(opts cliOptions, force bool, stdout io.Writer) error {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return err
	}
	configPath := configPathFor(opts, paths)
	if err := config.Save(configPath, config.Default(), force); err != nil {
		return fmt.Errorf("write config %q: %w", configPath, err)
	}
	_, _ = fmt.Fprintf(stdout, "wrote %s\n", configPath)
	return nil
}

// runTUI wires storage, the catalog loader, and the Bubble Tea program.
func runTUI(ctx context.Context, opts cliOptions, stderr io.Writer) error {
	env, err := resolveRuntime(opts)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, env.appName, env.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// Runtime logs stay in the dev-file sink while the alt screen is active.
	logger.SetConsoleEnabled(false)
	defer func() {
		_ = logger.Close()
	}()
	logStartup(logger, env, "tui")

	repo, closeRepo, err := openTaskRepository(env.cfg.Storage.Backend, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	store := app.NewTaskStore(repo, uuid.NewString)
	if err := store.Seed(ctx, seedTasks(env.cfg.Todo.Tasks)); err != nil {
		logger.Error("task seed failed", "err", err)
		return fmt.Errorf("seed tasks: %w", err)
	}
	logger.Debug("task store seeded", "tasks", len(env.cfg.Todo.Tasks))

	loader, err := newCatalogLoader(env.cfg, logger)
	if err != nil {
		return err
	}
	defer loader.Close()

	m := tui.NewModel(
		store,
		loader,
		tui.WithStartScreen(env.cfg.UI.StartScreen),
		tui.WithSearchItems(env.cfg.SearchItems()),
	)
	logger.Info("starting tui program loop", "start_screen", env.cfg.UI.StartScreen)
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// runCatalog loads the catalog once and prints one row per product.
func runCatalog(ctx context.Context, opts cliOptions, stdout, stderr io.Writer) error {
	env, err := resolveRuntime(opts)
	if err != nil {
		return err
	}

	logger, err := newRuntimeLogger(stderr, env.appName, env.devMode, env.cfg.Logging, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()
	logStartup(logger, env, "catalog")

	loader, err := newCatalogLoader(env.cfg, logger)
	if err != nil {
		return err
	}
	defer loader.Close()

	snap, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if snap.State != app.LoadStateReady || len(snap.Items) == 0 {
		_, _ = fmt.Fprintln(stdout, tui.CatalogFallbackText)
		if snap.Err != nil {
			return fmt.Errorf("%w: %w", errCatalogUnavailable, snap.Err)
		}
		return errCatalogUnavailable
	}
	return writeCatalogTable(stdout, snap.Items)
}

// writeCatalogTable writes aligned id/title/price rows.
func writeCatalogTable(out io.Writer, items []domain.RemoteItem) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tPRICE")
	for _, item := range items {
		price := "-"
		if item.Price != nil {
			price = strconv.FormatFloat(*item.Price, 'f', 2, 64)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", item.ID, item.Title, price)
	}
	return tw.Flush()
}

// openTaskRepository returns the configured task repository and its release func.
func openTaskRepository(backend config.StorageBackend, logger *runtimeLogger) (app.TaskRepository, func(), error) {
	switch backend {
	case config.StorageSQLite:
		logger.Info("opening sqlite repository", "mode", "memory")
		repo, err := sqlite.OpenInMemory()
		if err != nil {
			logger.Error("sqlite open failed", "err", err)
			return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
		}
		return repo, func() {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("sqlite close failed", "err", closeErr)
			}
		}, nil
	default:
		logger.Info("using memory repository")
		return memory.New(), func() {}, nil
	}
}

// newCatalogLoader builds the HTTP client and single-shot loader from config.
func newCatalogLoader(cfg config.Config, logger *runtimeLogger) (*app.CatalogLoader, error) {
	timeout, err := cfg.CatalogTimeout()
	if err != nil {
		return nil, err
	}
	client, err := catalog.NewClient(cfg.Catalog.URL, catalog.WithUserAgent(cfg.Catalog.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("configure catalog client: %w", err)
	}
	logger.Debug("catalog client ready", "url", client.URL(), "timeout", timeout)
	return app.NewCatalogLoader(client, app.LoaderConfig{Timeout: timeout, Logger: logger}), nil
}

// seedTasks converts configured tasks into store seeds.
func seedTasks(in []config.TaskSeed) []app.SeedTask {
	out := make([]app.SeedTask, 0, len(in))
	for _, task := range in {
		out = append(out, app.SeedTask{Title: task.Title, Completed: task.Completed})
	}
	return out
}

// logStartup records the resolved runtime state.
func logStartup(logger *runtimeLogger, env runtimeEnv, command string) {
	logger.Info("startup configuration resolved", "app", env.appName, "dev_mode", env.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", env.configPath, "data_dir", env.paths.DataDir)
	logger.Info("configuration loaded", "config_path", env.configPath, "backend", env.cfg.Storage.Backend, "log_level", env.cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
