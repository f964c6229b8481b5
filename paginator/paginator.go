// Package paginator drives incremental pagination of a flow document. It
// owns structural cache and page table, applies document edits to both and
// formats pages either on request or in bounded background slices.
package paginator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"textpager/common"
	"textpager/config"
	"textpager/document"
	"textpager/engine"
	"textpager/flow"
	"textpager/pages"
)

// Host receives pagination notifications.
type Host interface {
	pages.Observer
	// InitiateNextAsyncOperation is called when background slice ran out of
	// time and next slice has been queued.
	InitiateNextAsyncOperation()
}

var (
	ErrPageOutOfRange = errors.New("page is out of range")
	ErrClosed         = errors.New("paginator is closed")
)

// Option changes paginator defaults.
type Option func(*Paginator)

// WithClock replaces system clock used for throttling and slice budgets.
func WithClock(clock Clock) Option {
	return func(p *Paginator) {
		p.clock = clock
	}
}

// Paginator is not safe for concurrent use, everything but throttle timer
// runs on the goroutine which calls its methods and runs the scheduler.
type Paginator struct {
	doc   *document.Document
	eng   engine.Engine
	cfg   config.PaginationConfig
	log   *zap.Logger
	host  Host
	sched Scheduler
	clock Clock

	cache       *flow.Cache
	table       *pages.Table
	throttle    *Throttle
	unsubscribe func()

	ctx         context.Context
	slicePosted bool
	err         error
	closed      bool
}

// New creates paginator for doc. Background pagination is requested right
// away, it happens when sched runs its tasks.
func New(doc *document.Document, eng engine.Engine, cfg *config.Config, log *zap.Logger, host Host, sched Scheduler, opts ...Option) *Paginator {
	p := &Paginator{
		doc:   doc,
		eng:   eng,
		cfg:   cfg.Pagination,
		log:   log.Named("paginator"),
		host:  host,
		sched: sched,
		clock: SystemClock,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache = flow.New(doc, eng, cfg.Layout, log)
	p.table = pages.New(eng, cfg.Pagination.CacheSize, host, log)
	p.throttle = NewThrottle(sched, cfg.Pagination.ThrottleWindow, p.clock, log)
	p.unsubscribe = doc.Subscribe(p.onChange)
	p.throttle.BackgroundFormat(p.requestSlice, false)
	return p
}

func (p *Paginator) onChange(ch document.Change) {
	p.err = nil
	if ch.Highlight {
		p.table.OnInvalidateRender(ch.Offset, ch.Offset+ch.Added)
	} else {
		p.table.OnInvalidateLayout(ch.Offset, ch.Offset+max(ch.Added, ch.Removed))
	}
	p.throttle.BackgroundFormat(p.requestSlice, false)
}

func (p *Paginator) mustBeOpen() {
	if p.closed {
		// this should never happen
		panic("paginator used after Close")
	}
}

// Cache returns structural cache.
func (p *Paginator) Cache() *flow.Cache {
	return p.cache
}

// Table returns page table.
func (p *Paginator) Table() *pages.Table {
	return p.table
}

// Throttle returns background request throttle.
func (p *Paginator) Throttle() *Throttle {
	return p.throttle
}

// Err returns error which stopped background pagination.
func (p *Paginator) Err() error {
	return p.err
}

// Done reports whether there is nothing left to paginate.
func (p *Paginator) Done() bool {
	return p.table.IsClean() || p.limitReached()
}

func (p *Paginator) limitReached() bool {
	return p.cfg.MaxPages > 0 && p.table.Count() >= p.cfg.MaxPages
}

// SetPageSize changes page geometry, every page has to be formatted again.
func (p *Paginator) SetPageSize(width, height int, margins config.MarginsConfig, mode common.FormatMode) {
	p.mustBeOpen()
	layout := p.cache.Layout()
	layout.PageWidth, layout.PageHeight = width, height
	layout.Margins = margins
	layout.Mode = mode
	p.cache.SetLayout(layout)
	p.table.InvalidateAll()
	p.err = nil
	p.log.Debug("Page size changed", zap.Int("width", width), zap.Int("height", height), zap.Stringer("mode", mode))
	p.throttle.BackgroundFormat(p.requestSlice, true)
}

// FormatPage returns page n, formatting it and every missing page before it
// when necessary.
func (p *Paginator) FormatPage(n int) (*flow.Page, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if n < 0 {
		return nil, fmt.Errorf("page %d: %w", n, ErrPageOutOfRange)
	}
	if page, ok := p.table.GetCachedPage(n); ok {
		return page, nil
	}
	for p.table.Count() < n {
		if p.table.IsClean() {
			return nil, fmt.Errorf("page %d of %d: %w", n, p.table.Count(), ErrPageOutOfRange)
		}
		if _, err := p.formatAt(p.table.Count()); err != nil {
			return nil, err
		}
	}
	if n == p.table.Count() && p.table.IsClean() {
		return nil, fmt.Errorf("page %d of %d: %w", n, p.table.Count(), ErrPageOutOfRange)
	}
	return p.formatAt(n)
}

// formatAt formats page n, n is either known page or the next one.
func (p *Paginator) formatAt(n int) (*flow.Page, error) {
	page, err := p.cache.FormatPage(p.table.GetPageBreakRecord(n))
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}
	p.cache.ArrangePage(page)

	if n < p.table.Count() {
		// entry is still valid, so is the record page ends with
		if err := page.Break.Dispose(p.eng); err != nil {
			p.log.Warn("Unable to release break record", zap.Error(err))
		}
		page.Break = p.table.Entry(n).Break
		p.table.CachePage(n, page)
		return page, nil
	}
	p.table.UpdateEntry(n, page, page.Break, page.DependentMax, page.Segments)
	return page, nil
}

// requestSlice queues background slice unless one is queued already.
func (p *Paginator) requestSlice() {
	if p.closed || p.slicePosted || p.Done() {
		return
	}
	p.slicePosted = true
	p.sched.Post(PriorityBackground, "pagination slice", p.slice)
}

// slice formats pages until its time budget is spent.
func (p *Paginator) slice() {
	p.slicePosted = false
	if p.closed || p.err != nil || p.ctx.Err() != nil {
		return
	}
	bg := p.cache.Background()
	bg.Start(p.clock.Now(), p.cfg.StopTimeDelta)
	for !p.Done() {
		n := p.table.Count()
		page, err := p.formatAt(n)
		if err != nil {
			p.err = err
			p.log.Error("Background pagination stopped", zap.Int("page", n), zap.Error(err))
			return
		}
		bg.PageFormatted(p.clock.Now(), covered(page.Segments))
		if bg.Interrupted {
			break
		}
	}
	p.log.Debug("Pagination slice finished",
		zap.Int("pages", bg.Pages),
		zap.Int("chars", bg.CharsFormatted),
		zap.Int("total", p.table.Count()),
		zap.Bool("interrupted", bg.Interrupted))
	if p.Done() {
		return
	}
	p.requestSlice()
	p.host.InitiateNextAsyncOperation()
}

func covered(segs []flow.Segment) int {
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].End - segs[0].Start
}

// Run paginates document in background slices until it is done, ctx is
// cancelled or formatting fails.
func (p *Paginator) Run(ctx context.Context) error {
	if p.closed {
		return ErrClosed
	}
	p.ctx = ctx
	defer func() { p.ctx = context.Background() }()

	p.requestSlice()
	p.sched.RunPending()
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.err
}

// Close releases cache, table and every page and record they hold.
func (p *Paginator) Close() (err error) {
	if p.closed {
		return nil
	}
	multierr.AppendInto(&err, p.throttle.Close())
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.closed = true
	multierr.AppendInto(&err, p.table.Dispose())
	multierr.AppendInto(&err, p.cache.Close())
	return err
}
