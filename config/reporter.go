package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"

	"textpager/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report archive at configured destination, or in
// temporary directory when destination cannot be created.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry), dumps: make(map[DumpKind]int)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

// entry is either file on disk (path) or data captured at the time of the
// call.
type entry struct {
	path  string
	stamp time.Time
	data  []byte
}

// Report collects logs, configuration, input and layout dumps of a single
// run into debug archive. Nil report accepts everything and stores nothing,
// so callers never check whether debugging was requested.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	dumps   map[DumpKind]int // dumps stored so far per kind
	file    *os.File
}

// Close writes the archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

func (r *Report) add(name string, e entry) {
	if _, exists := r.entries[name]; exists {
		// this should never happen
		panic(fmt.Sprintf("report entry [%s] stored twice", name))
	}
	r.entries[name] = e
}

// Store remembers file to be archived under name when report is closed, so
// it gets file content as of that moment (logs are complete by then).
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}
	r.add(name, entry{path: path})
}

// StoreData archives data under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if data == nil {
		data = []byte{}
	}
	r.add(name, entry{data: data, stamp: time.Now()})
}

// StoreDump renders layout dump of given kind and archives it as
// "layout/<kind>/<n>-<label>.txt" where n counts dumps of that kind, so
// consecutive states (after every edit step for example) are kept apart.
func (r *Report) StoreDump(kind DumpKind, label string, d io.WriterTo) error {
	if r == nil {
		return nil
	}
	buf := new(bytes.Buffer)
	if _, err := d.WriteTo(buf); err != nil {
		return fmt.Errorf("unable to render %s dump: %w", kind, err)
	}
	r.dumps[kind]++
	name := fmt.Sprintf("layout/%s/%d-%s.txt", kind, r.dumps[kind], CleanFileName(label))
	r.add(name, entry{data: buf.Bytes(), stamp: time.Now()})
	return nil
}

// Dumps returns number of dumps of kind stored so far.
func (r *Report) Dumps(kind DumpKind) int {
	if r == nil {
		return 0
	}
	return r.dumps[kind]
}

// finalize writes manifest followed by every entry. Files which disappeared
// are listed in manifest only.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names := r.names()
	if err := saveFile(arc, "MANIFEST", time.Now(), r.manifest(names)); err != nil {
		return err
	}
	for _, name := range names {
		e := r.entries[name]
		if e.data != nil {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		if err := saveDiskFile(arc, name, e.path); err != nil {
			return err
		}
	}
	return arc.Close()
}

// names returns entry names in natural order, numbered dumps follow each
// other as they were taken.
func (r *Report) names() []string {
	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

func (r *Report) manifest(names []string) io.Reader {
	buf := new(bytes.Buffer)
	for _, name := range names {
		e := r.entries[name]
		switch {
		case e.data != nil:
			fmt.Fprintf(buf, "%s\t%s\t%d bytes\n", e.stamp.UTC().Format(time.RFC3339), name, len(e.data))
		default:
			state := "missing"
			if info, err := os.Stat(e.path); err == nil && info.Mode().IsRegular() {
				state = info.ModTime().UTC().Format(time.RFC3339)
			}
			fmt.Fprintf(buf, "%s\t%s\t%s\n", state, name, e.path)
		}
	}
	return buf
}

func saveDiskFile(dst *zip.Writer, name, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, info.ModTime(), f)
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
