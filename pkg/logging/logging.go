package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger

// level is shared by every logger built by Setup so --verbose can be applied
// after the command line has been parsed.
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Setup builds a human-readable console logger on stderr and installs it as
// the zap global.
func Setup(debug bool, appName, appVersion string) error {
	var err error

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	SetDebug(debug)

	cfg := zap.Config{
		Level:             level,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !debug,
		DisableStacktrace: !debug,
	}

	// Add default fields
	if debug {
		cfg.InitialFields = map[string]interface{}{
			"appName":    appName,
			"appVersion": appVersion,
		}
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// SetDebug switches every logger built by Setup between debug and info level.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zap.DebugLevel)
	} else {
		level.SetLevel(zap.InfoLevel)
	}
}

// DebugEnabled reports whether debug output is currently enabled.
func DebugEnabled() bool {
	return level.Enabled(zap.DebugLevel)
}
