// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"textpager/common"
	"textpager/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by paginate and edit subcommands
	Format    common.ReportFormat
	Overwrite bool
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// SetFormat selects report format by name, unknown names leave yaml selected.
func (e *LocalEnv) SetFormat(name string) error {
	format, err := common.ParseReportFormat(name)
	if err != nil {
		e.Format = common.ReportFormatYaml
		return err
	}
	e.Format = format
	return nil
}

// SetCodePage selects encoding used for non UTF-8 file names in archives and
// returns its canonical name. Since zip "standard" does not define file name
// encoding we may need to force archaic code page for old archives. Empty
// name means no forced encoding.
func (e *LocalEnv) SetCodePage(name string) (string, error) {
	e.CodePage = nil
	if len(name) == 0 {
		return "", nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return "", fmt.Errorf("character set %q is not supported", name)
	}
	e.CodePage = enc
	canonical, _ := ianaindex.IANA.Name(enc)
	return canonical, nil
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
