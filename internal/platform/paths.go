package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultAppName names the per-user config and data directories.
const defaultAppName = "widgets"

// Paths holds the per-user locations the CLI resolves.
type Paths struct {
	ConfigPath string
	DataDir    string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// dirName returns the directory segment for opts; dev mode gets a -dev suffix.
func (o Options) dirName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = defaultAppName
	}
	if o.DevMode {
		name += "-dev"
	}
	return name
}

// Env is the slice of the host environment path resolution reads.
type Env struct {
	GOOS      string
	ConfigDir string
	HomeDir   string
	Getenv    func(string) string
}

func (e Env) lookup(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return strings.TrimSpace(e.Getenv(key))
}

// HostEnv captures the running process environment.
func HostEnv() (Env, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Env{}, fmt.Errorf("user config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Env{}, fmt.Errorf("user home dir: %w", err)
	}
	return Env{
		GOOS:      runtime.GOOS,
		ConfigDir: configDir,
		HomeDir:   home,
		Getenv:    os.Getenv,
	}, nil
}

// DefaultPathsWithOptions resolves paths against the host environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	env, err := HostEnv()
	if err != nil {
		return Paths{}, err
	}
	return Resolve(opts, env)
}

// Resolve maps opts onto env. Linux honours XDG_CONFIG_HOME and XDG_DATA_HOME,
// Windows honours APPDATA and LOCALAPPDATA, and every other OS keeps both
// files under the user config dir.
func Resolve(opts Options, env Env) (Paths, error) {
	if strings.TrimSpace(env.ConfigDir) == "" {
		return Paths{}, errors.New("empty user config dir")
	}

	configBase := env.ConfigDir
	dataBase := env.ConfigDir
	switch env.GOOS {
	case "linux":
		if v := env.lookup("XDG_CONFIG_HOME"); v != "" {
			configBase = v
		}
		switch v := env.lookup("XDG_DATA_HOME"); {
		case v != "":
			dataBase = v
		case env.HomeDir != "":
			dataBase = filepath.Join(env.HomeDir, ".local", "share")
		}
	case "windows":
		if v := env.lookup("APPDATA"); v != "" {
			configBase = v
		}
		if v := env.lookup("LOCALAPPDATA"); v != "" {
			dataBase = v
		}
	}

	dir := opts.dirName()
	return Paths{
		ConfigPath: filepath.Join(configBase, dir, "config.toml"),
		DataDir:    filepath.Join(dataBase, dir),
	}, nil
}
