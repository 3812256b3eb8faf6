package model

import "sync"

// candidatePool recycles the scratch sets built by NextGeneration
var candidatePool = newSetPool()

// setPool for memory efficiency across generations
type setPool struct {
	pool sync.Pool
}

func newSetPool() *setPool {
	return &setPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(map[Position]struct{})
			},
		},
	}
}

// Get retrieves an empty set from the pool
func (p *setPool) Get() map[Position]struct{} {
	return p.pool.Get().(map[Position]struct{})
}

// Put returns a set to the pool, clearing its contents
func (p *setPool) Put(s map[Position]struct{}) {
	clear(s)
	p.pool.Put(s)
}
