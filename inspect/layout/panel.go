package layout

// Panel is a vertical container. A panel with a Title renders a header row
// and can be collapsed; an untitled panel only groups its children.
type Panel struct {
	base
	Title     string
	Collapsed bool

	self     Container
	children []Element
	locks    int
}

// NewPanel returns an untitled panel.
func NewPanel() *Panel {
	p := &Panel{}
	p.self = p
	return p
}

// NewGroup returns a titled, expanded panel.
func NewGroup(title string) *Panel {
	p := NewPanel()
	p.Title = title
	return p
}

func (p *Panel) Children() []Element {
	out := make([]Element, len(p.children))
	copy(out, p.children)
	return out
}

func (p *Panel) Add(e Element) {
	if old := e.Parent(); old != nil && old != p.self {
		old.Remove(e)
	}
	e.SetParent(p.self)
	p.children = append(p.children, e)
	p.layoutIfUnlocked()
}

func (p *Panel) Remove(e Element) {
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			e.SetParent(nil)
			p.layoutIfUnlocked()
			return
		}
	}
}

func (p *Panel) DisposeChildren() {
	children := p.children
	p.children = nil
	for _, c := range children {
		c.Dispose()
		c.SetParent(nil)
	}
	p.layoutIfUnlocked()
}

func (p *Panel) Dispose() {
	if p.disposed {
		return
	}
	p.DisposeChildren()
	p.disposed = true
}

func (p *Panel) LockChildren() { p.locks++ }

func (p *Panel) UnlockChildren() {
	if p.locks == 0 {
		return
	}
	p.locks--
	p.layoutIfUnlocked()
}

// IsLocked reports whether p or any ancestor has locked its children.
func (p *Panel) IsLocked() bool {
	if p.locks > 0 {
		return true
	}
	if p.parent != nil {
		return p.parent.IsLocked()
	}
	return false
}

// Toggle flips the collapsed state of a titled panel.
func (p *Panel) Toggle() {
	if p.Title == "" {
		return
	}
	p.Collapsed = !p.Collapsed
	p.layoutIfUnlocked()
}

func (p *Panel) PerformLayout() {
	row := p.row
	if p.Title != "" {
		row++
	}
	for _, c := range p.children {
		c.setRow(row)
		if sub, ok := c.(Container); ok {
			sub.PerformLayout()
		}
		if !p.Collapsed {
			row += rowsOf(c)
		}
	}
}

// layoutIfUnlocked lays out the whole tree p belongs to: a change in one
// group moves the rows of everything after it.
func (p *Panel) layoutIfUnlocked() {
	if p.IsLocked() {
		return
	}
	top := p.self
	for top.Parent() != nil {
		top = top.Parent()
	}
	top.PerformLayout()
}

// Scroll is the top-level scrollable panel of an inspector. Height is the
// number of visible rows; the offset is clamped to the content.
type Scroll struct {
	*Panel
	Height int
	offset float64
}

// NewScroll returns a scroll panel showing height rows.
func NewScroll(height int) *Scroll {
	s := &Scroll{Panel: NewPanel(), Height: height}
	s.Panel.self = s
	return s
}

// ContentRows returns the number of rows of the scroll panel's content.
func (s *Scroll) ContentRows() int {
	rows := 0
	for _, c := range s.children {
		rows += rowsOf(c)
	}
	return rows
}

func (s *Scroll) ScrollOffset() float64 { return s.offset }

func (s *Scroll) SetScrollOffset(off float64) {
	maxOff := float64(s.ContentRows() - s.Height)
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	s.offset = off
}

// ScrollToRow adjusts the offset so that row is visible.
func (s *Scroll) ScrollToRow(row int) {
	switch {
	case float64(row) < s.offset:
		s.SetScrollOffset(float64(row))
	case s.Height > 0 && float64(row) >= s.offset+float64(s.Height):
		s.SetScrollOffset(float64(row - s.Height + 1))
	}
}
