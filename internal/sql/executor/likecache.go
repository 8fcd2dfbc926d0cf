package executor

import (
	"container/list"
	"regexp"
	"sync"
)

// likeCache keeps recently compiled LIKE regexps, bounded by LRU
// eviction. Repeated scans with the same pattern skip recompilation.
type likeCache struct {
	mu      sync.Mutex
	cap     int
	lruList *list.List
	entries map[string]*list.Element
}

type likeEntry struct {
	pattern string
	re      *regexp.Regexp
}

func newLikeCache(capacity int) *likeCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &likeCache{
		cap:     capacity,
		lruList: list.New(),
		entries: make(map[string]*list.Element, capacity),
	}
}

func (c *likeCache) get(pattern string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[pattern]
	if !ok {
		return nil, false
	}
	c.lruList.MoveToFront(elem)
	return elem.Value.(*likeEntry).re, true
}

func (c *likeCache) put(pattern string, re *regexp.Regexp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[pattern]; ok {
		c.lruList.MoveToFront(elem)
		return
	}

	c.entries[pattern] = c.lruList.PushFront(&likeEntry{pattern: pattern, re: re})
	for c.lruList.Len() > c.cap {
		back := c.lruList.Back()
		c.lruList.Remove(back)
		delete(c.entries, back.Value.(*likeEntry).pattern)
	}
}

var likePatterns = newLikeCache(128)
