// Package ordering implements fractional sort keys for tasks and sections.
//
// Items in a scope (one section, the backlog, or the section list) are totally
// ordered by (SortOrder, CreatedAt, ID). Inserting between two neighbours takes
// their midpoint; when the midpoint is no longer strictly between them, or the
// neighbours are closer than MinGap, the whole scope is renormalized to evenly
// spaced integer keys.
package ordering

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrAnchorNotInScope  = errors.New("anchor not in scope")
	ErrConflictingAnchor = errors.New("after and before anchors are exclusive")
)

const (
	DefaultGap     = 1000.0
	DefaultSpacing = 1000.0
	DefaultMinGap  = 1e-6
)

type Item struct {
	ID        string
	SortOrder float64
	CreatedAt time.Time
}

// Anchor selects the insertion point. The zero value means the tail.
type Anchor struct {
	After  string
	Before string
	Head   bool
}

// Placement is the outcome of Place. Renormalized holds the new key of every
// other item in the scope when the scope had to be respaced, nil otherwise.
type Placement struct {
	SortOrder    float64
	Renormalized map[string]float64
}

type Config struct {
	// Gap is added to the tail or subtracted from the head when only one
	// neighbour exists.
	Gap float64
	// Spacing is the distance between keys after renormalization.
	Spacing float64
	// MinGap is the smallest neighbour distance still split by midpoint. It
	// bounds insertion depth to about log2(Spacing/MinGap).
	MinGap float64
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Gap <= 0 {
		cfg.Gap = DefaultGap
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = DefaultSpacing
	}
	if cfg.MinGap <= 0 {
		cfg.MinGap = DefaultMinGap
	}
	return &Engine{cfg: cfg}
}

// Less is the deterministic read order, including ties on SortOrder.
func Less(a, b Item) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return Less(items[i], items[j]) })
}

// Place computes the key of a new or moved item. items is the destination
// scope without the moving item; it is sorted in place.
func (e *Engine) Place(items []Item, anchor Anchor) (Placement, error) {
	if anchor.After != "" && anchor.Before != "" {
		return Placement{}, ErrConflictingAnchor
	}
	Sort(items)

	idx, err := insertionIndex(items, anchor)
	if err != nil {
		return Placement{}, err
	}

	if order, ok := e.between(items, idx); ok {
		return Placement{SortOrder: order}, nil
	}
	return e.renormalize(items, idx), nil
}

// Append places an item after every item in the scope.
func (e *Engine) Append(items []Item) float64 {
	p, _ := e.Place(items, Anchor{})
	return p.SortOrder
}

// Sequence assigns evenly spaced keys to ids in the given order.
func (e *Engine) Sequence(ids []string) map[string]float64 {
	orders := make(map[string]float64, len(ids))
	for i, id := range ids {
		orders[id] = float64(i+1) * e.cfg.Spacing
	}
	return orders
}

func insertionIndex(items []Item, anchor Anchor) (int, error) {
	switch {
	case anchor.After != "":
		i := indexOf(items, anchor.After)
		if i < 0 {
			return 0, ErrAnchorNotInScope
		}
		return i + 1, nil
	case anchor.Before != "":
		i := indexOf(items, anchor.Before)
		if i < 0 {
			return 0, ErrAnchorNotInScope
		}
		return i, nil
	case anchor.Head:
		return 0, nil
	default:
		return len(items), nil
	}
}

func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// between returns the key for position idx, or false when the neighbours are
// too close to split.
func (e *Engine) between(items []Item, idx int) (float64, bool) {
	hasPrev := idx > 0
	hasNext := idx < len(items)

	switch {
	case !hasPrev && !hasNext:
		return e.cfg.Spacing, true
	case !hasPrev:
		return items[idx].SortOrder - e.cfg.Gap, true
	case !hasNext:
		return items[idx-1].SortOrder + e.cfg.Gap, true
	}

	prev := items[idx-1].SortOrder
	next := items[idx].SortOrder
	if next-prev < 2*e.cfg.MinGap {
		return 0, false
	}
	mid := prev + (next-prev)/2
	if !(prev < mid && mid < next) {
		return 0, false
	}
	return mid, true
}

func (e *Engine) renormalize(items []Item, idx int) Placement {
	renormalized := make(map[string]float64, len(items))
	slot := 1
	var order float64
	for i := 0; i <= len(items); i++ {
		if i == idx {
			order = float64(slot) * e.cfg.Spacing
			slot++
		}
		if i < len(items) {
			renormalized[items[i].ID] = float64(slot) * e.cfg.Spacing
			slot++
		}
	}
	return Placement{SortOrder: order, Renormalized: renormalized}
}
