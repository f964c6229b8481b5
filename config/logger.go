package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"textpager/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
	// Levels quiets individual components, keys are logger name segments
	// ("paginator", "flow", "scheduler"...). They cannot make output more
	// verbose than destination level allows.
	Levels map[string]string `yaml:"levels,omitempty" validate:"omitempty,dive,keys,required,endkeys,oneof=none debug normal"`
}

// levelOf maps configured level name to minimal enabled level.
func levelOf(name string) (zapcore.Level, bool) {
	switch name {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.InfoLevel, true
	default:
		return zapcore.FatalLevel + 1, false
	}
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	cores := conf.consoleCores()

	file, redirected, err := conf.fileCore(rpt)
	if err != nil {
		return nil, err
	}
	cores = append(cores, file)

	log := zap.New(newLevelFilter(zapcore.NewTee(cores...), conf.Levels), zap.AddCaller())
	if len(redirected) != 0 {
		// log was redirected - we need to report this
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// consoleCores splits console output: errors go to stderr without verbose
// details, everything below to stdout.
func (conf *LoggingConfig) consoleCores() []zapcore.Core {
	low, ok := levelOf(conf.ConsoleLogger.Level)
	if !ok {
		return nil
	}
	return []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return low <= lvl && lvl < zapcore.ErrorLevel
			})),
		zapcore.NewCore(briefEncoder{zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stderr))}, zapcore.Lock(os.Stderr),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= zapcore.ErrorLevel
			})),
	}
}

func openLog(name, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(name, flags, 0644)
}

// fileCore opens file log, falling back to temporary file when destination
// is not accessible, in which case new location is returned. Debug report
// always gets complete fresh log.
func (conf *LoggingConfig) fileCore(rpt *Report) (zapcore.Core, string, error) {
	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = "debug", "overwrite"
	}
	floor, ok := levelOf(level)
	if !ok {
		return zapcore.NewNopCore(), "", nil
	}

	capturePanics(filepath.Dir(conf.FileLogger.Destination), mode, rpt)

	var redirected string
	f, err := openLog(conf.FileLogger.Destination, mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(enc, zapcore.Lock(f), zap.NewAtomicLevelAt(floor)), redirected, nil
}

// capturePanics sends runtime crash output next to the log if possible.
func capturePanics(dir, mode string, rpt *Report) {
	f, err := openLog(filepath.Join(dir, misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log"); err != nil {
			// just quietly ignore
			return
		}
	}
	defer f.Close()
	if debug.SetCrashOutput(f, debug.CrashOptions{}) == nil {
		rpt.Store("panic.log", f.Name())
	}
}

// levelFilter drops entries of loggers quieted by name. The most specific
// (rightmost) configured segment of logger name wins.
type levelFilter struct {
	zapcore.Core
	levels map[string]zapcore.Level
}

func newLevelFilter(core zapcore.Core, levels map[string]string) zapcore.Core {
	if len(levels) == 0 {
		return core
	}
	lf := levelFilter{Core: core, levels: make(map[string]zapcore.Level, len(levels))}
	for name, level := range levels {
		lf.levels[name], _ = levelOf(level)
	}
	return lf
}

func (lf levelFilter) minLevel(name string) (zapcore.Level, bool) {
	for len(name) > 0 {
		segment := name
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			segment, name = name[i+1:], name[:i]
		} else {
			name = ""
		}
		if lvl, ok := lf.levels[segment]; ok {
			return lvl, true
		}
	}
	return zapcore.DebugLevel, false
}

func (lf levelFilter) With(fields []zapcore.Field) zapcore.Core {
	return levelFilter{Core: lf.Core.With(fields), levels: lf.levels}
}

func (lf levelFilter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if floor, ok := lf.minLevel(ent.LoggerName); ok && ent.Level < floor {
		return ce
	}
	return lf.Core.Check(ent, ce)
}

// briefEncoder prints errors to console as plain messages, without verbose
// part (stack traces and wrapped details) which only goes to file log.
type briefEncoder struct {
	zapcore.Encoder
}

func (b briefEncoder) Clone() zapcore.Encoder {
	return briefEncoder{b.Encoder.Clone()}
}

func (b briefEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out, copied := fields, false
	for i, f := range fields {
		if f.Type != zapcore.ErrorType {
			continue
		}
		if !copied {
			out, copied = append([]zapcore.Field(nil), fields...), true
		}
		out[i] = zap.String(f.Key, f.Interface.(error).Error())
	}
	return b.Encoder.EncodeEntry(ent, out)
}
