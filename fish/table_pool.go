package fish

import "sync"

// TablePool recycles Table allocations for code paths, such as the
// solver's move search, that speculatively clone a table many times per
// decision. It mirrors the darwindeck engine's StatePool/NodePool: a
// sync.Pool of pointers, a typed Get that resets before handing the value
// back out, and a Put that returns the table to the pool as it is.
type TablePool struct {
	pool sync.Pool
}

// NewTablePool returns a pool whose tables are dealt with numPlayers
// seats.
func NewTablePool(numPlayers int) *TablePool {
	return &TablePool{
		pool: sync.Pool{
			New: func() any {
				return NewTable(numPlayers)
			},
		},
	}
}

// Get returns a table dealt with fresh hands, reused from the pool when
// possible.
func (p *TablePool) Get(numPlayers int) *Table {
	t := p.pool.Get().(*Table)
	t.Reset(numPlayers)
	return t
}

// Put returns a table to the pool for reuse.
func (p *TablePool) Put(t *Table) {
	p.pool.Put(t)
}

// CloneInto deep-copies src into a table drawn from the pool.
func (p *TablePool) CloneInto(src *Table) *Table {
	dst := p.Get(len(src.hands))
	for i, h := range src.hands {
		dst.hands[i].known = cloneIntMap(h.known)
		dst.hands[i].voids = cloneSuitSet(h.voids)
		dst.hands[i].unknown = h.unknown
	}
	return dst
}

func cloneIntMap(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSuitSet(m map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
