// Package paginate implements paginate and edit commands: it loads flow
// document, paginates it and writes page report.
package paginate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"textpager/config"
	"textpager/document"
	"textpager/source"
	"textpager/state"
)

// prepare handles options shared by commands and loads document.
func prepare(ctx context.Context, cmd *cli.Command, log *zap.Logger) (*Session, string, error) {
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, "", errors.New("no input source has been specified")
	}

	if err := env.SetFormat(cmd.String("format")); err != nil {
		log.Warn("Unknown report format requested, switching to yaml", zap.Error(err))
	}
	env.Overwrite = cmd.Bool("overwrite")

	if cp, err := env.SetCodePage(cmd.String("force-zip-cp")); err != nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.Error(err))
	} else if len(cp) > 0 {
		log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", cp))
	}

	doc, name, err := source.Load(ctx, src, env.CodePage, document.NewLoader(env.Cfg.Layout.FontSize, log), log)
	if err != nil {
		return nil, "", err
	}
	return NewSession(doc, env.Cfg, log), name, nil
}

// write stores report and, when debugging, page dump and its copy in the
// debug report.
func write(ctx context.Context, s *Session, r *Report, out string) error {
	env := state.EnvFromContext(ctx)

	data, err := s.Encode(r, env.Format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.Store("result"+filepath.Ext(out), out)
		return storeDumps(env.Rpt, s, "final", true)
	}
	return nil
}

// storeDumps puts layout state into debug report. Document wide dumps
// (elements and styles) are only needed once.
func storeDumps(rpt *config.Report, s *Session, label string, whole bool) error {
	pages, err := s.PagesDump()
	if err != nil {
		return err
	}
	errs := multierr.Combine(
		rpt.StoreDump(config.DumpKindPages, label, pages),
		rpt.StoreDump(config.DumpKindDirty, label, s.DirtyDump()),
	)
	if !whole {
		return errs
	}
	multierr.AppendInto(&errs, rpt.StoreDump(config.DumpKindElements, label, s.ElementsDump()))
	if s.Doc.Stylesheet != nil {
		multierr.AppendInto(&errs, rpt.StoreDump(config.DumpKindStyles, label, s.Doc.Stylesheet))
	}
	return errs
}

// Run is paginate command: SOURCE [DESTINATION].
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("paginate")
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	s, name, err := prepare(ctx, cmd, log)
	if err != nil {
		return err
	}
	defer func() {
		multierr.AppendInto(&err, s.Close())
	}()

	log.Info("Pagination starting", zap.String("source", name))
	defer func(start time.Time) {
		log.Info("Pagination completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := s.Paginate(ctx); err != nil {
		return err
	}
	out, err := destination(ctx, cmd.Args().Get(1), name, s)
	if err != nil {
		return err
	}
	r, err := s.Report(name, nil)
	if err != nil {
		return err
	}
	log.Info("Document paginated", zap.Int("pages", len(r.Pages)), zap.Bool("complete", r.Complete), zap.String("report", out))
	return write(ctx, s, r, out)
}

// Edit is edit command: SOURCE SCRIPT [DESTINATION].
func Edit(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	scriptPath := cmd.Args().Get(1)
	if len(scriptPath) == 0 {
		return errors.New("no edit script has been specified")
	}
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("unable to open edit script: %w", err)
	}
	script, err := ReadScript(f)
	f.Close()
	if err != nil {
		return err
	}
	env.Rpt.Store("script"+filepath.Ext(scriptPath), scriptPath)

	s, name, err := prepare(ctx, cmd, log)
	if err != nil {
		return err
	}
	defer func() {
		multierr.AppendInto(&err, s.Close())
	}()

	if err := s.Paginate(ctx); err != nil {
		return err
	}
	if env.Rpt != nil {
		if err := storeDumps(env.Rpt, s, "initial", false); err != nil {
			return err
		}
	}
	log.Info("Applying edit script", zap.String("source", name), zap.Int("steps", len(script.Steps)), zap.Int("pages", s.Pager.Table().Count()))

	steps := make([]StepInfo, 0, len(script.Steps))
	for i := range script.Steps {
		step := &script.Steps[i]
		changed, err := s.ApplyStep(ctx, step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		info := StepInfo{Step: i, Op: step.String(), Changed: changed, Pages: s.Pager.Table().Count()}
		log.Info("Step applied", zap.Int("step", i), zap.Stringer("op", step), zap.Any("changed", changed), zap.Int("pages", info.Pages))
		steps = append(steps, info)
		if env.Rpt != nil {
			if err := storeDumps(env.Rpt, s, fmt.Sprintf("step %d", i), false); err != nil {
				return err
			}
		}
	}

	out, err := destination(ctx, cmd.Args().Get(2), name, s)
	if err != nil {
		return err
	}
	r, err := s.Report(name, steps)
	if err != nil {
		return err
	}
	return write(ctx, s, r, out)
}
