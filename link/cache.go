// Package link resolves free text, like a bank statement description, to the
// key of a known entity whose descriptors share a prefix with it.
//
// The right prefix length is not known in advance: short prefixes collide,
// long ones miss descriptors that are abbreviated in the text. A Cache
// therefore holds levels of increasing prefix length, built on demand. A text
// is looked up in each level, shortest first, until a level gives a unique
// answer.
package link

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrExhausted is returned when the cache cannot grow any further: the
	// text is still ambiguous at the maximum prefix length.
	ErrExhausted = errors.New("link cache exhausted")

	// ErrNoMatch is returned when no entity shares a prefix with the text.
	ErrNoMatch = errors.New("no matching descriptor")
)

// ShortDescriptorError is returned by Grow when an entity has no descriptor
// long enough for the level being built: it could never be found.
type ShortDescriptorError struct {
	Key         any
	Descriptors []string
	Len         int
}

func (e *ShortDescriptorError) Error() string {
	return fmt.Sprintf("entity %v has no descriptor of at least %d bytes: %q", e.Key, e.Len, e.Descriptors)
}

// Result qualifies the answer of a Lookup.
type Result int

const (
	// Unique means the returned key is the only entity matching the text.
	Unique Result = iota
	// NoCache means no level has been built yet.
	NoCache
	// NoMatch means no entity matches the text, growing will not help.
	NoMatch
	// Ambiguous means several entities match at every level built so far.
	Ambiguous
)

func (r Result) String() string {
	switch r {
	case Unique:
		return "unique"
	case NoCache:
		return "no cache"
	case NoMatch:
		return "no match"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Config sets the growth policy of a Cache.
type Config struct {
	MinLen int // prefix length of the first level
	MaxLen int // no level is built beyond this prefix length
	Step   int // prefix length increment between levels
}

// DefaultConfig is the growth policy used for bank descriptions.
var DefaultConfig = Config{MinLen: 6, MaxLen: 12, Step: 3}

// normalize returns a usable configuration.
func (c Config) normalize() Config {
	c.MinLen = max(c.MinLen, 1)
	c.Step = max(c.Step, 1)
	c.MaxLen = max(c.MaxLen, c.MinLen)
	return c
}

// match is the value of a prefix in a level: a key, or a collision.
type match[K comparable] struct {
	key       K
	ambiguous bool
}

// level maps every prefix of length n to its match.
type level[K comparable] struct {
	n        int
	prefixes map[string]match[K]
}

func (l *level[K]) insert(key K, descriptor string) {
	prefix := descriptor[:l.n]
	m, exists := l.prefixes[prefix]
	switch {
	case !exists:
		l.prefixes[prefix] = match[K]{key: key}
	case m.key != key:
		l.prefixes[prefix] = match[K]{key: m.key, ambiguous: true}
	}
}

// Cache is a progressive prefix cache over entities identified by keys of type K.
//
// Levels are append-only: a Cache never shrinks until Reset.
type Cache[K comparable] struct {
	config Config
	levels []*level[K]
}

// New creates an empty cache with the given growth policy.
func New[K comparable](config Config) *Cache[K] {
	return &Cache[K]{config: config.normalize()}
}

// Config returns the growth policy.
func (c *Cache[K]) Config() Config { return c.config }

// Len returns the number of levels built so far.
func (c *Cache[K]) Len() int { return len(c.levels) }

// Levels returns the prefix lengths of the levels built so far.
func (c *Cache[K]) Levels() []int {
	lens := make([]int, len(c.levels))
	for i, l := range c.levels {
		lens[i] = l.n
	}
	return lens
}

// Reset drops all levels.
func (c *Cache[K]) Reset() { c.levels = nil }

// Lookup looks text up in each level, shortest prefix first.
//
// The first level where the text's prefix is unique gives the answer. A level
// without the text's prefix (or a text shorter than the level) means NoMatch.
// A collision moves on to the next level, and a collision at every level is
// Ambiguous: the caller is expected to Grow and try again.
func (c *Cache[K]) Lookup(text string) (K, Result) {
	var zero K
	if len(c.levels) == 0 {
		return zero, NoCache
	}
	for _, l := range c.levels {
		if len(text) < l.n {
			return zero, NoMatch
		}
		m, ok := l.prefixes[text[:l.n]]
		if !ok {
			return zero, NoMatch
		}
		if !m.ambiguous {
			return m.key, Unique
		}
	}
	return zero, Ambiguous
}

// Grow builds the next level by scanning the descriptors of every key.
//
// The first level uses the minimum length, the following ones add one step,
// up to the maximum length. It returns ErrExhausted if the maximum length has
// already been built.
//
// Descriptors shorter than the level are ignored, unless none of the key's
// descriptors is long enough, then a *ShortDescriptorError is returned. Keys
// without descriptors are ignored. On error the cache is left unchanged.
func (c *Cache[K]) Grow(keys iter.Seq[K], descriptors func(K) []string) error {
	n := c.config.MinLen
	if len(c.levels) > 0 {
		last := c.levels[len(c.levels)-1].n
		if last >= c.config.MaxLen {
			return fmt.Errorf("cannot grow beyond prefix length %d: %w", last, ErrExhausted)
		}
		n = min(last+c.config.Step, c.config.MaxLen)
	}

	l := &level[K]{n: n, prefixes: make(map[string]match[K])}
	for key := range keys {
		descrs := descriptors(key)
		inserted := 0
		for _, d := range descrs {
			if len(d) < n {
				continue
			}
			l.insert(key, d)
			inserted++
		}
		if len(descrs) > 0 && inserted == 0 {
			return &ShortDescriptorError{Key: key, Descriptors: descrs, Len: n}
		}
	}
	c.levels = append(c.levels, l)
	return nil
}

// Resolve looks text up, growing the cache and retrying as long as the
// answer is ambiguous.
//
// keys is iterated once for every level built, it must be restartable. It
// returns ErrNoMatch when no entity matches, and ErrExhausted when the text is
// still ambiguous at the maximum prefix length.
func (c *Cache[K]) Resolve(text string, keys iter.Seq[K], descriptors func(K) []string) (K, error) {
	for {
		key, res := c.Lookup(text)
		switch res {
		case Unique:
			return key, nil
		case NoMatch:
			var zero K
			return zero, fmt.Errorf("cannot link %q: %w", text, ErrNoMatch)
		}
		if err := c.Grow(keys, descriptors); err != nil {
			var zero K
			return zero, fmt.Errorf("cannot link %q: %w", text, err)
		}
	}
}
