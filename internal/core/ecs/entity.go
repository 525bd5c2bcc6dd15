package ecs

import "fmt"

// EntityID is a non-owning handle into a scene's entity table. The lower 32
// bits hold the slot index, the upper 32 bits the slot generation. Generation
// increments on destroy so stale handles stop resolving. The zero ID never
// refers to a live entity because generations start at 1.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

func (id EntityID) String() string {
	if id.IsZero() {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%d:%d)", id.Index(), id.Generation())
}

// EntityPool allocates generational handles and recycles destroyed slots.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	alive       int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *EntityPool) Create() EntityID {
	p.alive++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return NewEntityID(idx, 1)
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if id.IsZero() || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates id. Destroying a stale or unknown handle is a no-op and
// reports false.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		// wrapped; skip the zero generation so IsZero stays unambiguous
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	p.alive--
	return true
}

func (p *EntityPool) Len() int { return p.alive }
