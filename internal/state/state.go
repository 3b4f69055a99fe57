package state

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/Paintersrp/colecto/internal/bridge"
	"github.com/Paintersrp/colecto/internal/config"
	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/logging"
	"github.com/Paintersrp/colecto/internal/store"
)

type State struct {
	Config *config.Config
	Home   string
	Logger zerolog.Logger
	Store  *store.Store
	Bridge *bridge.Bridge

	logCloser io.Closer
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level: viper.GetString("log.level"),
		File:  viper.GetString("log.file"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	s := New(cfg, home, afero.NewOsFs(), logger)
	s.logCloser = closer
	return s, nil
}

// New wires a State over fsys. Tests pass an in-memory file system.
func New(cfg *config.Config, home string, fsys afero.Fs, logger zerolog.Logger) *State {
	st := store.New(fsys, logger)
	return &State{
		Config: cfg,
		Home:   home,
		Logger: logger,
		Store:  st,
		Bridge: bridge.New(st, logger),
	}
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Folder returns the folder for this invocation: the --folder flag, then
// COLECTO_FOLDER, then the last folder saved in the config file.
func (s *State) Folder() string {
	if folder := strings.TrimSpace(viper.GetString("folder")); folder != "" {
		return folder
	}
	if s.Config != nil {
		return s.Config.Folder
	}
	return ""
}

// RequireFolder is Folder with an error when nothing was ever selected.
func (s *State) RequireFolder() (string, error) {
	folder := s.Folder()
	if err := config.RequireFolder(folder); err != nil {
		return "", err
	}
	return folder, nil
}

// Close flushes and releases the log file.
func (s *State) Close() error {
	if s == nil || s.logCloser == nil {
		return nil
	}

	err := s.logCloser.Close()
	s.logCloser = nil
	return err
}
