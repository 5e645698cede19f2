package gadfly

import "sync"

// A StringPool interns strings so that categorical data can live in
// float64 channels: a channel stores the pool index of each value and
// the pool turns indices back into display strings.
type StringPool struct {
	sync.Mutex
	pool  []string
	index map[string]int
}

func NewStringPool() *StringPool {
	return &StringPool{
		pool:  make([]string, 0, 64),
		index: make(map[string]int),
	}
}

// Add interns s and returns its index. Adding a known string returns
// the existing index.
func (sp *StringPool) Add(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	sp.pool = append(sp.pool, s)
	sp.index[s] = len(sp.pool) - 1
	return len(sp.pool) - 1
}

// Find returns the index of s or -1 if s was never added.
func (sp *StringPool) Find(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	return -1
}

// Get returns the string interned at i.
func (sp *StringPool) Get(i int) string {
	sp.Lock()
	defer sp.Unlock()
	if i < 0 || i >= len(sp.pool) {
		return "--NA--"
	}
	return sp.pool[i]
}

func (sp *StringPool) Len() int {
	sp.Lock()
	defer sp.Unlock()
	return len(sp.pool)
}
