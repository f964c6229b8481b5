// Package source locates flow documents. Document is either a plain XML
// file or a file inside zip archive, addressed as if archive was a
// directory: "book.zip/chapters/one.xml".
package source

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"textpager/document"
)

// Source is resolved document location.
type Source struct {
	// Path of existing file on disk.
	Path string
	// Inner is path prefix inside archive, empty for plain files and for
	// archives searched from the top.
	Inner   string
	Archive bool
}

func (s Source) String() string {
	if !s.Archive || len(s.Inner) == 0 {
		return s.Path
	}
	return s.Path + string(filepath.Separator) + s.Inner
}

// Resolve walks src up until it finds existing file. The rest of the path
// has to be inside archive.
func Resolve(src string) (Source, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return Source{}, err
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}
		if fi.Mode().IsDir() {
			return Source{}, fmt.Errorf("input source is a directory (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if !fi.Mode().IsRegular() {
			return Source{}, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		archive, err := IsArchive(head)
		if err != nil {
			return Source{}, fmt.Errorf("unable to check archive type: %w", err)
		}
		if archive {
			inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return Source{Path: head, Inner: filepath.ToSlash(inner), Archive: true}, nil
		}
		if len(tail) != 0 {
			// plain file cannot have tail
			return Source{}, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		return Source{Path: head}, nil
	}
	return Source{}, fmt.Errorf("input source was not found (%s)", src)
}

// IsArchive checks file signature.
func IsArchive(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, 262)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(header[:n], "zip"), nil
}

func isDocumentName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xml")
}

// Open returns document content and its name. For archives the first XML
// file under Inner in natural order is selected. Names in archives which do
// not use UTF-8 are decoded with cp when it is given.
func (s Source) Open(cp encoding.Encoding, log *zap.Logger) (io.ReadCloser, string, error) {
	if !s.Archive {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, "", err
		}
		return f, filepath.Base(s.Path), nil
	}

	var (
		names []string
		data  = make(map[string][]byte)
	)
	err := Walk(s.Path, s.Inner, cp, func(name string, f *zip.File) error {
		if !isDocumentName(name) {
			log.Debug("Skipping file in archive, not a document", zap.String("archive", s.Path), zap.String("file", name))
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %q in archive: %w", name, err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read %q in archive: %w", name, err)
		}
		names = append(names, name)
		data[name] = b
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("unable to process archive: %w", err)
	}
	if len(names) == 0 {
		return nil, "", fmt.Errorf("no documents found in archive (%s)", s)
	}
	sort.Sort(natural.StringSlice(names))
	if len(names) > 1 {
		log.Warn("Several documents found in archive, using the first one",
			zap.String("archive", s.Path), zap.Strings("documents", names))
	}
	return io.NopCloser(bytes.NewReader(data[names[0]])), names[0], nil
}

// Load resolves src and parses document it points to.
func Load(ctx context.Context, src string, cp encoding.Encoding, loader *document.Loader, log *zap.Logger) (*document.Document, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	s, err := Resolve(src)
	if err != nil {
		return nil, "", err
	}
	r, name, err := s.Open(cp, log)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	doc, err := loader.Read(r)
	if err != nil {
		return nil, "", fmt.Errorf("unable to load document (%s): %w", name, err)
	}
	log.Debug("Document loaded", zap.Stringer("source", s), zap.String("name", name), zap.Int("length", doc.Len()))
	return doc, name, nil
}
