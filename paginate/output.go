package paginate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"textpager/config"
	"textpager/state"
)

// NameValues are available to report name template.
type NameValues struct {
	SourceFile string
	Format     string
	Pages      int
	Complete   bool
	Session    string
}

func expandNameTemplate(field string, v NameValues) (string, error) {
	tmpl, err := template.New("name_template").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse report name template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, v); err != nil {
		return "", fmt.Errorf("unable to expand report name template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func cleanSegment(segment string, cfg *config.OutputConfig) string {
	if cfg.Transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// reportName builds relative report path, template may produce
// subdirectories. Empty or failed expansion falls back to default name.
func reportName(v NameValues, ext string, cfg *config.OutputConfig, log *zap.Logger) string {
	def := cleanSegment(v.SourceFile+"-pages", cfg) + ext
	if cfg.NameTemplate == "" {
		return def
	}
	name, err := expandNameTemplate(cfg.NameTemplate, v)
	if err != nil {
		log.Warn("Unable to prepare report name", zap.Error(err))
		return def
	}

	var parts []string
	for seg := range strings.SplitSeq(filepath.ToSlash(name), "/") {
		if seg = strings.TrimSpace(seg); seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, cleanSegment(seg, cfg))
	}
	if len(parts) == 0 {
		return def
	}
	parts[len(parts)-1] += ext
	return filepath.Join(parts...)
}

// destination builds report file path for session s and checks that it could
// be written.
func destination(ctx context.Context, dst, name string, s *Session) (string, error) {
	env := state.EnvFromContext(ctx)

	var err error
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return "", err
	}
	base := filepath.Base(filepath.FromSlash(name))
	v := NameValues{
		SourceFile: strings.TrimSuffix(base, filepath.Ext(base)),
		Format:     env.Format.String(),
		Pages:      s.Pager.Table().Count(),
		Complete:   s.Pager.Table().IsClean(),
		Session:    s.Pager.Cache().Session().String(),
	}
	out := filepath.Join(dst, reportName(v, env.Format.Ext(), &env.Cfg.Output, env.Log))

	if _, err := os.Stat(out); err == nil {
		if !env.Overwrite {
			return "", fmt.Errorf("output file already exists: %s", out)
		}
		env.Log.Warn("Overwriting existing file", zap.String("file", out))
	} else if !os.IsNotExist(err) {
		return "", err
	} else if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	return out, nil
}
