package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"textpager/document"
)

const flowDoc = `<FlowDocument><Paragraph id="p1">%s</Paragraph></FlowDocument>`

func docText(text string) string {
	return strings.Replace(flowDoc, "%s", text, 1)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.xml")
	if err := os.WriteFile(plain, []byte(docText("plain")), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	archive := filepath.Join(dir, "book.zip")
	writeZip(t, archive, entry{name: "chapters/one.xml", content: docText("one")})

	tests := []struct {
		name    string
		src     string
		want    Source
		wantErr bool
	}{
		{"plain file", plain, Source{Path: plain}, false},
		{"archive", archive, Source{Path: archive, Archive: true}, false},
		{"path in archive", filepath.Join(archive, "chapters", "one.xml"), Source{Path: archive, Inner: "chapters/one.xml", Archive: true}, false},
		{"tail after plain file", filepath.Join(plain, "more"), Source{}, true},
		{"directory", dir, Source{}, true},
		{"missing", filepath.Join(dir, "missing.xml"), Source{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpen_NaturalOrder(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "book.zip")
	writeZip(t, archive,
		entry{name: "ch10.xml", content: "ten"},
		entry{name: "ch2.xml", content: "two"},
		entry{name: "cover.jpg", content: "jpeg"},
	)

	s, err := Resolve(archive)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	r, name, err := s.Open(nil, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	if name != "ch2.xml" || string(data) != "two" {
		t.Errorf("Open() = %q %q, want ch2.xml", name, data)
	}

	empty := Source{Path: archive, Inner: "images/", Archive: true}
	if _, _, err := empty.Open(nil, zaptest.NewLogger(t)); err == nil {
		t.Errorf("Open() found document in empty prefix")
	}
}

func TestLoad(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "book.zip")
	writeZip(t, archive, entry{name: "text/chapter.xml", content: docText("hello world")})
	log := zaptest.NewLogger(t)

	doc, name, err := Load(context.Background(), filepath.Join(archive, "text"), nil, document.NewLoader(16, log), log)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if name != "text/chapter.xml" {
		t.Errorf("name = %q", name)
	}
	if p := doc.ElementByID("p1"); p == nil || p.Text() != "hello world" {
		t.Errorf("paragraph not loaded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Load(ctx, archive, nil, document.NewLoader(16, log), log); err == nil {
		t.Errorf("Load() ignored cancelled context")
	}
}
