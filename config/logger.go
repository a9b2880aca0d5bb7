package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type LoggingConfig struct {
	ConsoleLogger LoggerConfig `yaml:"console"`
}

func (conf *LoggingConfig) validate() error {
	switch conf.ConsoleLogger.Level {
	case "", "none", "normal", "debug":
		return nil
	}
	return fmt.Errorf("%w: console log level %q", ErrInvalid, conf.ConsoleLogger.Level)
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// Prepare returns the program logger: info and debug go to stdout, errors
// to stderr.
func (conf *LoggingConfig) Prepare(name string) *zap.Logger {
	return conf.prepare(name, os.Stdout, os.Stderr, EnableColorOutput(os.Stdout), EnableColorOutput(os.Stderr))
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func (conf *LoggingConfig) prepare(name string, stdout, stderr io.Writer, colorOut, colorErr bool) *zap.Logger {
	lowest := zapcore.InfoLevel
	switch conf.ConsoleLogger.Level {
	case "normal":
	case "debug":
		lowest = zapcore.DebugLevel
	default:
		return zap.NewNop()
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(colorOut)), zapcore.AddSync(stdout), lowPriority),
		zapcore.NewCore(newEncoder(encoderConfig(colorErr)), zapcore.AddSync(stderr), highPriority),
	)
	return zap.New(core).Named(name)
}

// When logging errors to the console do not output the verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	var newFields []zapcore.Field
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
