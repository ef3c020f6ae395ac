package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "TOCBZ"

var (
	ErrInvalidWorkers   = errors.New("количество воркеров должно быть больше нуля")
	ErrInvalidMaxHeight = errors.New("максимальная высота изображения должна быть больше нуля")
	ErrEmptySuffix      = errors.New("суффикс для разрешения коллизий имен не может быть пустым")
	ErrInvalidOldDir    = errors.New("некорректное имя директории для обработанных файлов")
	ErrInvalidLevel     = errors.New("уровень сжатия должен быть в диапазоне от -1 до 9")
	ErrInvalidLogLevel  = errors.New("неизвестный уровень логирования")
)

type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat        string `envconfig:"LOG_FORMAT" default:"json"`
	Workers          int    `envconfig:"WORKERS" default:"0"`
	Resize           bool   `envconfig:"RESIZE" default:"false"`
	MaxHeight        int    `envconfig:"MAX_HEIGHT" default:"2560"`
	CollisionSuffix  string `envconfig:"COLLISION_SUFFIX" default:"_new"`
	OldDir           string `envconfig:"OLD_DIR" default:"old"`
	CompressionLevel int    `envconfig:"COMPRESSION_LEVEL" default:"6"`
}

// Load reads an optional .env file and then the TOCBZ_* environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// .env is optional, missing files are ignored
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфигурацию: %w", err)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	if c.MaxHeight < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxHeight, c.MaxHeight)
	}
	if c.CollisionSuffix == "" {
		return ErrEmptySuffix
	}
	if c.OldDir == "" || c.OldDir == "." || c.OldDir == ".." || containsSeparator(c.OldDir) {
		return fmt.Errorf("%w: %q", ErrInvalidOldDir, c.OldDir)
	}
	if c.CompressionLevel < -1 || c.CompressionLevel > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.CompressionLevel)
	}
	return nil
}

func containsSeparator(name string) bool {
	for _, r := range name {
		if r == '/' || r == '\\' {
			return true
		}
	}
	return false
}
