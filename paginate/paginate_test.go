package paginate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap/zaptest"
	yaml "gopkg.in/yaml.v3"

	"textpager/common"
	"textpager/config"
	"textpager/document"
	"textpager/state"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// testDocument has six paragraphs of four lines each, pages hold ten lines.
func testDocument() string {
	var sb strings.Builder
	sb.WriteString("<FlowDocument>")
	for i := range 6 {
		fmt.Fprintf(&sb, `<Paragraph id="p%d">%s</Paragraph>`, i+1, words(80))
	}
	sb.WriteString("</FlowDocument>")
	return sb.String()
}

func testConfig() *config.Config {
	return &config.Config{
		Version: 1,
		Layout: config.LayoutConfig{
			PageWidth:  100,
			PageHeight: 100,
			Mode:       common.FormatModeFinite,
			Columns:    1,
			FontSize:   10,
			LineHeight: 10,
			CharWidth:  1,
		},
		Pagination: config.PaginationConfig{
			CacheSize:      4,
			ThrottleWindow: time.Hour,
			StopTimeDelta:  time.Hour,
		},
	}
}

func newSession(t *testing.T) *Session {
	t.Helper()
	log := zaptest.NewLogger(t)
	doc, err := document.NewLoader(10, log).Read(strings.NewReader(testDocument()))
	if err != nil {
		t.Fatalf("unable to load document: %v", err)
	}
	s := NewSession(doc, testConfig(), log)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	if err := s.Paginate(context.Background()); err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	return s
}

const script = `
steps:
  - op: insertText
    target: p6
    offset: 399
    text: " %s"
  - op: highlight
    target: p4
    count: 10
  - op: removeElement
    target: p1
  - op: insertElement
    target: root
    index: 0
    xml: '<Paragraph id="new">%s</Paragraph>'
  - op: setProps
    target: new
    props:
      break_before: true
  - op: deleteText
    target: new
    offset: 0
    count: 5
`

func TestReadScript(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		steps   int
		wantErr string
	}{
		{"full script", fmt.Sprintf(script, words(200), words(20)), 6, ""},
		{"empty", "", 0, ""},
		{"unknown field", "steps:\n  - op: highlight\n    color: red\n", 0, "color"},
		{"unknown op", "steps:\n  - op: paint\n", 0, "not a valid Op"},
		{"missing target", "steps:\n  - op: removeElement\n", 0, "requires target"},
		{"missing props", "steps:\n  - op: setProps\n    target: p1\n", 0, "requires props"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ReadScript(strings.NewReader(tt.data))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadScript() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadScript() error = %v", err)
			}
			if len(s.Steps) != tt.steps {
				t.Errorf("steps = %d, want %d", len(s.Steps), tt.steps)
			}
		})
	}
}

func TestSession_ApplySteps(t *testing.T) {
	s := newSession(t)
	if got := s.Pager.Table().Count(); got != 3 {
		t.Fatalf("pages = %d, want 3", got)
	}
	// root element gets id for insertElement step
	s.Doc.Root().ID = "root"

	sc, err := ReadScript(strings.NewReader(fmt.Sprintf(script, words(200), words(20))))
	if err != nil {
		t.Fatalf("ReadScript() error = %v", err)
	}
	want := []struct {
		changed []PageRange
		pages   int
	}{
		{[]PageRange{{2, 1}}, 4},
		{[]PageRange{{1, 1}}, 4},
		{[]PageRange{{0, 4}}, 3},
		{[]PageRange{{0, 3}}, 4},
		{[]PageRange{{0, 4}}, 4},
		{[]PageRange{{0, 4}}, 4},
	}
	for i := range sc.Steps {
		changed, err := s.ApplyStep(context.Background(), &sc.Steps[i])
		if err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
		if fmt.Sprint(changed) != fmt.Sprint(want[i].changed) {
			t.Errorf("step %d changed = %v, want %v", i, changed, want[i].changed)
		}
		if got := s.Pager.Table().Count(); got != want[i].pages || !s.Pager.Table().IsClean() {
			t.Errorf("step %d pages = %d, want %d", i, got, want[i].pages)
		}
	}

	bad := Step{Op: OpRemoveElement, Target: "missing"}
	if _, err := s.ApplyStep(context.Background(), &bad); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("ApplyStep() error = %v, want not found", err)
	}
}

func TestSession_Report(t *testing.T) {
	s := newSession(t)

	r, err := s.Report("book.xml", nil)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(r.Pages) != 3 || !r.Complete || r.Length != s.Doc.Len() {
		t.Fatalf("report = %+v", r)
	}
	lines := []int{10, 10, 4}
	for i, p := range r.Pages {
		if p.Lines != lines[i] {
			t.Errorf("page %d lines = %d, want %d", i, p.Lines, lines[i])
		}
		if (p.Break == "") != (i == 2) {
			t.Errorf("page %d break = %q", i, p.Break)
		}
		if i > 0 && p.Start >= p.End {
			t.Errorf("page %d covers [%d,%d)", i, p.Start, p.End)
		}
	}

	data, err := s.Encode(r, common.ReportFormatYaml)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var back Report
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("report is not valid yaml: %v", err)
	}
	if back.Session != r.Session || len(back.Pages) != 3 {
		t.Errorf("decoded report = %+v", back)
	}

	text, err := s.Encode(r, common.ReportFormatText)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, want := range []string{"pages: 3 complete: true", "page 2 ", "elements:", "p6 paragraph"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("text report misses %q", want)
		}
	}
}

func testCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: common.ReportFormatYaml.String()},
			&cli.BoolFlag{Name: "overwrite"},
			&cli.StringFlag{Name: "force-zip-cp"},
		},
		Action: action,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = testConfig()
	env.Log = zaptest.NewLogger(t)
	return ctx
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "book.xml")
	if err := os.WriteFile(src, []byte(testDocument()), 0644); err != nil {
		t.Fatalf("unable to write document: %v", err)
	}
	out := filepath.Join(dir, "out")

	if err := testCommand(Run).Run(testContext(t), []string{"test", src, out}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "book-pages.yaml"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil || len(r.Pages) != 3 {
		t.Errorf("report = %+v error = %v", r, err)
	}

	// existing report is kept unless overwrite is requested
	if err := testCommand(Run).Run(testContext(t), []string{"test", src, out}); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Run() error = %v, want already exists", err)
	}
	if err := testCommand(Run).Run(testContext(t), []string{"test", "--overwrite", "--format", "text", src, out}); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "book-pages.txt")); err != nil {
		t.Errorf("text report not written: %v", err)
	}
}

func TestEdit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "book.xml")
	if err := os.WriteFile(src, []byte(testDocument()), 0644); err != nil {
		t.Fatalf("unable to write document: %v", err)
	}
	scriptPath := filepath.Join(dir, "edit.yaml")
	steps := "steps:\n  - op: deleteText\n    target: p1\n    offset: 0\n    count: 200\n"
	if err := os.WriteFile(scriptPath, []byte(steps), 0644); err != nil {
		t.Fatalf("unable to write script: %v", err)
	}

	if err := testCommand(Edit).Run(testContext(t), []string{"test", src, scriptPath, dir}); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "book-pages.yaml"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		t.Fatalf("report is not valid yaml: %v", err)
	}
	if len(r.Steps) != 1 || r.Steps[0].Op != "deleteText #p1" || len(r.Steps[0].Changed) != 1 || r.Steps[0].Changed[0].Start != 0 {
		t.Errorf("steps = %+v", r.Steps)
	}
	if len(r.Pages) != 3 {
		t.Errorf("pages = %d, want 3", len(r.Pages))
	}

	if err := testCommand(Edit).Run(testContext(t), []string{"test", src}); err == nil {
		t.Errorf("Edit() without script succeeded")
	}
}

func TestEdit_DebugReport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "book.xml")
	if err := os.WriteFile(src, []byte(testDocument()), 0644); err != nil {
		t.Fatalf("unable to write document: %v", err)
	}
	scriptPath := filepath.Join(dir, "edit.yaml")
	steps := "steps:\n  - op: deleteText\n    target: p1\n    offset: 0\n    count: 200\n  - op: highlight\n    target: p2\n    count: 10\n"
	if err := os.WriteFile(scriptPath, []byte(steps), 0644); err != nil {
		t.Fatalf("unable to write script: %v", err)
	}

	ctx := testContext(t)
	env := state.EnvFromContext(ctx)
	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("unable to prepare report: %v", err)
	}
	env.Rpt = rpt
	defer rpt.Close()

	if err := testCommand(Edit).Run(ctx, []string{"test", src, scriptPath, dir}); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	// initial, one per step and final
	want := map[config.DumpKind]int{
		config.DumpKindPages:    4,
		config.DumpKindDirty:    4,
		config.DumpKindElements: 1,
		config.DumpKindStyles:   1,
	}
	for kind, n := range want {
		if got := rpt.Dumps(kind); got != n {
			t.Errorf("Dumps(%s) = %d, want %d", kind, got, n)
		}
	}
}
