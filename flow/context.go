package flow

import (
	"time"

	"textpager/common"
	"textpager/document"
	"textpager/engine"
)

// FormatContext describes (sub)page being formatted. Tables and figures push
// smaller contexts for their content.
type FormatContext struct {
	Size      engine.Size
	Margin    document.Insets
	Mode      common.FormatMode
	Columns   int
	ColumnGap int
	Direction common.FlowDirection

	// DependentMax is the furthest position decisions made in this context
	// depend on, -1 when none.
	DependentMax int
}

// ArrangeContext is coordinate system children of the client being arranged
// are placed in.
type ArrangeContext struct {
	System engine.CoordinateSystem
}

// PushFormatContext makes ctx current.
func (c *Cache) PushFormatContext(ctx FormatContext) {
	c.fmtStack = append(c.fmtStack, &ctx)
}

// PopFormatContext removes current context and returns it. Dependency
// boundary found while it was current carries over to the parent context.
func (c *Cache) PopFormatContext() FormatContext {
	n := len(c.fmtStack)
	if n == 0 {
		panic("format context stack is empty")
	}
	ctx := c.fmtStack[n-1]
	c.fmtStack = c.fmtStack[:n-1]
	if n > 1 {
		parent := c.fmtStack[n-2]
		parent.DependentMax = max(parent.DependentMax, ctx.DependentMax)
	}
	return *ctx
}

// CurrentFormatContext returns context on top of the stack.
func (c *Cache) CurrentFormatContext() *FormatContext {
	n := len(c.fmtStack)
	if n == 0 {
		panic("format context stack is empty")
	}
	return c.fmtStack[n-1]
}

// PushArrangeContext makes ctx current.
func (c *Cache) PushArrangeContext(ctx ArrangeContext) {
	c.arrStack = append(c.arrStack, ctx)
}

// PopArrangeContext removes current arrange context.
func (c *Cache) PopArrangeContext() ArrangeContext {
	n := len(c.arrStack)
	if n == 0 {
		panic("arrange context stack is empty")
	}
	ctx := c.arrStack[n-1]
	c.arrStack = c.arrStack[:n-1]
	return ctx
}

// CurrentArrangeContext returns arrange context on top of the stack.
func (c *Cache) CurrentArrangeContext() ArrangeContext {
	n := len(c.arrStack)
	if n == 0 {
		panic("arrange context stack is empty")
	}
	return c.arrStack[n-1]
}

// dependOn records that current formatting decision has to be redone when
// anything before pos changes.
func (c *Cache) dependOn(pos int) {
	ctx := c.CurrentFormatContext()
	ctx.DependentMax = max(ctx.DependentMax, pos)
}

// BackgroundFormatInfo tracks single background formatting slice.
type BackgroundFormatInfo struct {
	// StopTime is when the current slice has to yield.
	StopTime time.Time
	// Interrupted is set when the slice ran out of time with work left.
	Interrupted bool
	// CharsFormatted is amount of document positions covered by the slice.
	CharsFormatted int
	// Pages formatted by the slice.
	Pages int
}

// Start begins new slice at now, lasting delta.
func (b *BackgroundFormatInfo) Start(now time.Time, delta time.Duration) {
	*b = BackgroundFormatInfo{StopTime: now.Add(delta)}
}

// PageFormatted accounts for a page covering chars positions.
func (b *BackgroundFormatInfo) PageFormatted(now time.Time, chars int) {
	b.Pages++
	b.CharsFormatted += max(chars, 0)
	if b.Expired(now) {
		b.Interrupted = true
	}
}

// Expired reports whether the slice has to yield.
func (b *BackgroundFormatInfo) Expired(now time.Time) bool {
	return !now.Before(b.StopTime)
}
