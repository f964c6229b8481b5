package paginate

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"textpager/config"
	"textpager/document"
	"textpager/engine/basic"
	"textpager/paginator"
)

// PageRange is run of pages reported by paginator.
type PageRange struct {
	Start int `yaml:"start"`
	Count int `yaml:"count"`
}

// tracker is paginator host of a command line session: there is no idle
// loop, scheduler is drained explicitly.
type tracker struct {
	log       *zap.Logger
	changed   []PageRange
	added     int
	completed int
	slices    int
}

func (t *tracker) OnPagesChanged(start, count int) {
	t.changed = append(t.changed, PageRange{Start: start, Count: count})
}

func (t *tracker) OnPaginationProgress(page, added int) {
	t.added += added
	t.log.Debug("Pages added", zap.Int("page", page), zap.Int("added", added))
}

func (t *tracker) OnPaginationCompleted() {
	t.completed++
	t.log.Debug("Pagination completed")
}

func (t *tracker) InitiateNextAsyncOperation() {
	t.slices++
}

// takeChanged returns page ranges reported since previous call.
func (t *tracker) takeChanged() []PageRange {
	ch := t.changed
	t.changed = nil
	return ch
}

// Session is paginated document together with everything paginating it.
type Session struct {
	Doc    *document.Document
	Loader *document.Loader
	Pager  *paginator.Paginator

	cfg     *config.Config
	log     *zap.Logger
	queue   *paginator.Queue
	tracker *tracker
}

// NewSession creates paginator for doc using reference engine.
func NewSession(doc *document.Document, cfg *config.Config, log *zap.Logger, opts ...paginator.Option) *Session {
	s := &Session{
		Doc:     doc,
		Loader:  document.NewLoader(cfg.Layout.FontSize, log),
		cfg:     cfg,
		log:     log,
		queue:   paginator.NewQueue(log),
		tracker: &tracker{log: log.Named("host")},
	}
	s.Pager = paginator.New(doc, basic.New(cfg.Layout.CharWidth, log), cfg, log, s.tracker, s.queue, opts...)
	return s
}

// Paginate runs background pagination to the end.
func (s *Session) Paginate(ctx context.Context) error {
	if err := s.Pager.Run(ctx); err != nil {
		return fmt.Errorf("unable to paginate document: %w", err)
	}
	s.log.Debug("Document paginated",
		zap.Int("pages", s.Pager.Table().Count()),
		zap.Int("slices", s.tracker.slices+1),
		zap.Bool("complete", s.Pager.Table().IsClean()))
	return nil
}

// ApplyStep applies single edit and paginates again. It returns pages the
// edit invalidated.
func (s *Session) ApplyStep(ctx context.Context, step *Step) ([]PageRange, error) {
	s.tracker.takeChanged()
	if err := step.Apply(s.Doc, s.Loader); err != nil {
		return nil, err
	}
	changed := s.tracker.takeChanged()
	if err := s.Paginate(ctx); err != nil {
		return changed, err
	}
	return changed, nil
}

// Close releases paginator.
func (s *Session) Close() (err error) {
	multierr.AppendInto(&err, s.Pager.Close())
	// throttle tasks left in the queue are no-ops now
	s.queue.RunPending()
	return err
}
