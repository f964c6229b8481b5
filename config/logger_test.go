package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(newLevelFilter(core, map[string]string{
		"paginator": "none",
		"flow":      "normal",
		"scheduler": "debug",
	})).Named("tpager")

	tests := []struct {
		name   string
		logger *zap.Logger
		level  zapcore.Level
		want   bool
	}{
		{"not configured", log.Named("source"), zapcore.DebugLevel, true},
		{"quiet", log.Named("paginator"), zapcore.ErrorLevel, false},
		{"normal drops debug", log.Named("flow"), zapcore.DebugLevel, false},
		{"normal keeps info", log.Named("flow"), zapcore.InfoLevel, true},
		{"child inherits", log.Named("paginator").Named("host"), zapcore.WarnLevel, false},
		{"most specific wins", log.Named("paginator").Named("scheduler"), zapcore.DebugLevel, true},
		{"with fields", log.Named("paginator").With(zap.Int("page", 1)), zapcore.InfoLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := logs.Len()
			if ce := tt.logger.Check(tt.level, tt.name); ce != nil {
				ce.Write()
			}
			if got := logs.Len() > before; got != tt.want {
				t.Errorf("%s logged = %v, want %v", tt.logger.Name(), got, tt.want)
			}
		})
	}
}

func TestNewLevelFilter_NoLevels(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	if got := newLevelFilter(core, nil); got != core {
		t.Errorf("newLevelFilter() wrapped core without levels")
	}
}

type verboseError struct{}

func (verboseError) Error() string { return "page is gone" }

func (e verboseError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if s.Flag('+') {
		fmt.Fprint(s, "\nstack of page")
	}
}

func TestBriefEncoder(t *testing.T) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = zapcore.OmitKey
	enc := briefEncoder{zapcore.NewConsoleEncoder(ec)}

	fields := []zapcore.Field{zap.Int("page", 3), zap.Error(verboseError{})}
	buf, err := enc.Clone().EncodeEntry(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "lost"}, fields)
	if err != nil {
		t.Fatalf("EncodeEntry() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"error": "page is gone"`) || strings.Contains(out, "stack of page") {
		t.Errorf("EncodeEntry() = %q", out)
	}
	if fields[1].Type != zapcore.ErrorType {
		t.Errorf("EncodeEntry() modified caller fields")
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "tpager.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
		Levels:        map[string]string{"throttle": "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Name() != "tpager" {
		t.Errorf("Name() = %q", log.Name())
	}
	log.Debug("formatting page")
	log.Info("document paginated")
	log.Named("throttle").Warn("window exceeded")
	log.Named("engine").Error("line does not fit", zap.Error(errors.New("too wide")))
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("log not written: %v", err)
	}
	out := string(data)
	for _, want := range []string{"document paginated", "tpager.engine", "too wide"} {
		if !strings.Contains(out, want) {
			t.Errorf("log does not contain %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"formatting page", "window exceeded"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("log contains %q:\n%s", unwanted, out)
		}
	}
}

func TestLoggingConfig_PrepareNone(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(t.TempDir(), "tpager.log")},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Errorf("logger without destinations is enabled")
	}
	if _, err := os.Stat(conf.FileLogger.Destination); !os.IsNotExist(err) {
		t.Errorf("log file created: %v", err)
	}
}
