package shape

import (
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/shapekit/pkg/config"
	"github.com/dmitrymomot/shapekit/pkg/logger"
)

// Settings holds process-wide defaults. Field tags are read by LoadSettings
// with the SHAPE_ prefix, e.g. SHAPE_DEFAULT_MODE=exact.
type Settings struct {
	DefaultMode Mode          `env:"DEFAULT_MODE" envDefault:"loose"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat   logger.Format `env:"LOG_FORMAT" envDefault:"text"`
}

var (
	defaultMode atomic.Uint32
	diagnostics atomic.Pointer[slog.Logger]
)

func init() {
	diagnostics.Store(logger.Discard())
}

// LoadSettings reads Settings from the environment and optional .env files.
func LoadSettings(opts ...config.Option) (Settings, error) {
	var s Settings
	opts = append([]config.Option{config.WithPrefix("SHAPE_")}, opts...)
	if err := config.Load(&s, opts...); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Configure applies s: the mode used by Validate and a logger for
// construction diagnostics written to stderr.
func Configure(s Settings) {
	defaultMode.Store(uint32(s.DefaultMode))
	SetLogger(logger.New(
		logger.WithLevel(s.LogLevel),
		logger.WithFormat(s.LogFormat),
		logger.WithAttr(logger.Component("shape")),
	))
	log().Debug("shape configured", logger.Mode(s.DefaultMode.String()))
}

// DefaultMode is the mode used by Validate.
func DefaultMode() Mode {
	return Mode(defaultMode.Load())
}

// SetLogger installs the logger for construction-time diagnostics. Validation never logs.
func SetLogger(l *slog.Logger) {
	if l != nil {
		diagnostics.Store(l)
	}
}

func log() *slog.Logger {
	return diagnostics.Load()
}
