package flow

import (
	"textpager/engine"
)

// ArrangePage assigns page coordinates to every client of the page. Each
// track is its own coordinate system, children are placed inside content
// box of their parent in parent direction.
func (c *Cache) ArrangePage(p *Page) {
	c.mustBeOpen()
	m := c.layout.Margins
	for i, cl := range p.Clients {
		tr := p.Tracks[i]
		c.PushArrangeContext(ArrangeContext{System: engine.CoordinateSystem{
			X:         m.Left + tr.X,
			Y:         m.Top + tr.Y,
			Width:     tr.W,
			Direction: c.layout.Direction,
		}})
		c.arrange(cl)
		c.PopArrangeContext()
	}
}

func (c *Cache) arrange(cl *ParaClient) {
	parent := c.CurrentArrangeContext().System
	cl.Rect = c.eng.TransformRectangle(parent, engine.CoordinateSystem{}, cl.Local)
	if len(cl.Children) == 0 {
		return
	}
	c.PushArrangeContext(ArrangeContext{System: engine.CoordinateSystem{
		X:         cl.Rect.X + cl.Content.X,
		Y:         cl.Rect.Y + cl.Content.Y,
		Width:     cl.Content.W,
		Direction: cl.Direction,
	}})
	defer c.PopArrangeContext()
	for _, ch := range cl.Children {
		c.arrange(ch)
	}
}
