package config

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none debug normal"`
}

type LoggingConfig struct {
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// EnableColorOutput reports whether stream is a terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// Prepare returns our standard logger writing to w. Rendered HTML goes to
// stdout, so callers pass stderr. Levels are colored when w is a terminal.
func (conf *LoggingConfig) Prepare(w io.Writer) (*zap.Logger, error) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = EnableColorOutput(f)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	enc := newEncoder(ec) // filter errorVerbose
	sink := zapcore.Lock(zapcore.AddSync(w))

	var core zapcore.Core
	switch conf.ConsoleLogger.Level {
	case "normal":
		core = zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(zapcore.InfoLevel))
	case "debug":
		core = zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(zapcore.DebugLevel))
	case "none", "":
		core = zapcore.NewNopCore()
	default:
		return nil, errors.New("unknown console log level " + conf.ConsoleLogger.Level)
	}
	return zap.New(core), nil
}

// When logging error to console - do not output verbose message.

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
