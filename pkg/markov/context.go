package markov

import "strings"

// DefaultContextSize is the number of preceding words a Context holds unless
// configured otherwise.
const DefaultContextSize = 3

// slot is one position of a Context. An unset slot never equals a set one,
// even when the set slot holds the empty string.
type slot struct {
	word string
	set  bool
}

// Context is a fixed-length sliding window over the most recent words. It is
// the state of the Markov chain: slots fill from the right as words are
// pushed, and the oldest word falls off the left once the window is full.
type Context struct {
	slots []slot
}

// NewContext returns an all-empty Context with the given number of slots.
// A size below 1 falls back to DefaultContextSize.
func NewContext(size int) *Context {
	if size < 1 {
		size = DefaultContextSize
	}
	return &Context{slots: make([]slot, size)}
}

// Push evicts the oldest word and appends word as the newest one. Calling
// Push on a nil Context creates a default-sized one first, so the result
// should always be used.
func (c *Context) Push(word string) *Context {
	if c == nil {
		c = NewContext(DefaultContextSize)
	}
	last := len(c.slots) - 1
	copy(c.slots, c.slots[1:])
	c.slots[last] = slot{word: strings.Clone(word), set: true}
	return c
}

// Reset clears every slot. A nil Context yields a new empty one.
func (c *Context) Reset() *Context {
	if c == nil {
		return NewContext(DefaultContextSize)
	}
	clear(c.slots)
	return c
}

// Size returns the number of slots.
func (c *Context) Size() int {
	if c == nil {
		return 0
	}
	return len(c.slots)
}

// Empty reports whether no slot holds a word.
func (c *Context) Empty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.slots {
		if s.set {
			return false
		}
	}
	return true
}

// Words returns the filled slots in order, oldest first.
func (c *Context) Words() []string {
	if c == nil {
		return nil
	}
	words := make([]string, 0, len(c.slots))
	for _, s := range c.slots {
		if s.set {
			words = append(words, s.word)
		}
	}
	return words
}

// Hash returns a djb2 hash over all slots. An empty slot still advances the
// hash by one multiply step so that position matters, but it adds no bytes;
// collisions are expected and resolved by Equal.
func (c *Context) Hash() uint64 {
	var h uint64 = 5381
	if c == nil {
		return h
	}
	for _, s := range c.slots {
		if !s.set {
			h = (h << 5) + h
			continue
		}
		for i := 0; i < len(s.word); i++ {
			h = (h << 5) + h + uint64(s.word[i])
		}
	}
	return h
}

// Equal reports whether both contexts have the same size and every slot
// matches: empty against empty, or identical words.
func (c *Context) Equal(other *Context) bool {
	if c.Size() != other.Size() {
		return false
	}
	for i := range c.Size() {
		a, b := c.slots[i], other.slots[i]
		if a.set != b.set {
			return false
		}
		if a.set && a.word != b.word {
			return false
		}
	}
	return true
}

// Copy returns a deep copy that shares no storage with c. Copying a nil
// Context returns an empty default-sized one.
func (c *Context) Copy() *Context {
	if c == nil {
		return NewContext(DefaultContextSize)
	}
	cp := &Context{slots: make([]slot, len(c.slots))}
	for i, s := range c.slots {
		if s.set {
			cp.slots[i] = slot{word: strings.Clone(s.word), set: true}
		}
	}
	return cp
}

// String renders the context as "[a, b, _]", with "_" for empty slots.
func (c *Context) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range c.Size() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s := c.slots[i]; s.set {
			sb.WriteString(s.word)
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
