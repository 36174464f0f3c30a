package dashboard

import (
	"strings"
	"sync"
)

// Element is one node of the dashboard display tree. The tree stands in
// for the browser document: loaders address elements by id and by class,
// and the renderer snapshots the whole thing.
type Element struct {
	ID       string
	Class    string
	Text     string
	Color    string
	Children []*Element
}

// HasClass matches against the element's space-separated class list.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Class) {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) findByClass(class string) *Element {
	for _, child := range e.Children {
		if child.HasClass(class) {
			return child
		}
		if found := child.findByClass(class); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) clone() *Element {
	cp := &Element{ID: e.ID, Class: e.Class, Text: e.Text, Color: e.Color}
	for _, child := range e.Children {
		cp.Children = append(cp.Children, child.clone())
	}
	return cp
}

// Page is a concurrency-safe display tree. The two loaders write to
// disjoint ids but run concurrently, and notifications attach and detach
// on timers, so every access goes through the lock.
type Page struct {
	mu   sync.RWMutex
	root *Element
	byID map[string]*Element
}

func NewPage() *Page {
	return &Page{
		root: &Element{},
		byID: make(map[string]*Element),
	}
}

// Placeholder shown until a loader overwrites it.
const Placeholder = "–"

// Display target ids, the implicit contract with the loaders.
const (
	ElemTotalRecords = "totalRecords"
	ElemCurrencies   = "currencies"
	ElemLatestDate   = "latestDate"
)

// ClassMarketRate marks the rate sub-element inside a currency card.
const ClassMarketRate = "market-rate"

// NewDashboardPage builds the standard dashboard layout: three
// statistics fields and one card per tracked currency, all holding
// placeholder text.
func NewDashboardPage() *Page {
	p := NewPage()
	p.Append(&Element{ID: ElemTotalRecords, Text: Placeholder})
	p.Append(&Element{ID: ElemCurrencies, Text: Placeholder})
	p.Append(&Element{ID: ElemLatestDate, Text: Placeholder})
	for _, spec := range DefaultCards() {
		p.Append(&Element{
			ID:    spec.CardID,
			Class: "currency-card",
			Children: []*Element{
				{Class: ClassMarketRate, Text: Placeholder},
			},
		})
	}
	return p
}

// Append attaches an element (and its subtree) to the page root.
func (p *Page) Append(e *Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.root.Children = append(p.root.Children, e)
	p.register(e)
}

func (p *Page) register(e *Element) {
	if e.ID != "" {
		p.byID[e.ID] = e
	}
	for _, child := range e.Children {
		p.register(child)
	}
}

// Remove detaches a previously appended element from the page root.
func (p *Page) Remove(e *Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, child := range p.root.Children {
		if child == e {
			p.root.Children = append(p.root.Children[:i], p.root.Children[i+1:]...)
			break
		}
	}
	if e.ID != "" {
		delete(p.byID, e.ID)
	}
}

// SetText overwrites the text of the element with the given id and
// reports whether the target existed. Missing targets are a no-op.
func (p *Page) SetText(id, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.byID[id]
	if !ok {
		return false
	}
	e.Text = text
	return true
}

// Text reads the text of the element with the given id.
func (p *Page) Text(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.byID[id]
	if !ok {
		return "", false
	}
	return e.Text, true
}

// SetDescendantText writes into the first descendant of id matching the
// class. Both the element and the descendant must exist for the write to
// land; otherwise it is a no-op.
func (p *Page) SetDescendantText(id, class, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.byID[id]
	if !ok {
		return false
	}
	target := e.findByClass(class)
	if target == nil {
		return false
	}
	target.Text = text
	return true
}

// DescendantText reads the first descendant of id matching the class.
func (p *Page) DescendantText(id, class string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.byID[id]
	if !ok {
		return "", false
	}
	target := e.findByClass(class)
	if target == nil {
		return "", false
	}
	return target.Text, true
}

// ByClass returns the currently attached top-level elements with the
// given class, in attach order.
func (p *Page) ByClass(class string) []*Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*Element
	for _, child := range p.root.Children {
		if child.HasClass(class) {
			out = append(out, child)
		}
	}
	return out
}

// SetClass replaces the class list of an attached element.
func (p *Page) SetClass(e *Element, class string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e.Class = class
}

// Snapshot deep-copies the tree for rendering.
func (p *Page) Snapshot() *Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.root.clone()
}
