package trie

// Builder accumulates words and produces an immutable Trie.
// It is meant for construction time only and is not safe for concurrent use.
type Builder[V any] struct {
	root *node[V]
}

// NewBuilder creates an empty builder.
func NewBuilder[V any]() *Builder[V] {
	return &Builder[V]{root: &node[V]{}}
}

// Add associates word with value, replacing any previous value.
// A word keeps the case it was first added with.
func (b *Builder[V]) Add(word string, value V) *Builder[V] {
	current := b.root
	for _, r := range word {
		key := fold(r)
		child, ok := current.children[key]
		if !ok {
			if current.children == nil {
				current.children = make(map[rune]*node[V], 1)
			}
			child = &node[V]{label: r}
			current.children[key] = child
		}
		current = child
	}
	current.value = value
	current.hasValue = true
	return b
}

// AddAll adds every word-value pair in m.
func (b *Builder[V]) AddAll(m map[string]V) *Builder[V] {
	for word, value := range m {
		b.Add(word, value)
	}
	return b
}

// Build returns a Trie holding the words added so far. The builder can keep
// being used afterwards without affecting the returned Trie.
func (b *Builder[V]) Build() *Trie[V] {
	return wrap(cloneCounted(b.root))
}

// cloneCounted deep-copies n and fills in the cached word counts.
func cloneCounted[V any](n *node[V]) *node[V] {
	c := &node[V]{label: n.label, value: n.value, hasValue: n.hasValue}
	if c.hasValue {
		c.words = 1
	}
	if len(n.children) > 0 {
		c.children = make(map[rune]*node[V], len(n.children))
		for key, child := range n.children {
			cc := cloneCounted(child)
			c.children[key] = cc
			c.words += cc.words
		}
	}
	return c
}

// FromWords builds a trie where only the words matter.
func FromWords(words ...string) *Trie[struct{}] {
	b := NewBuilder[struct{}]()
	for _, w := range words {
		b.Add(w, struct{}{})
	}
	return b.Build()
}

// FromMap builds a trie from a map of words to values.
func FromMap[V any](m map[string]V) *Trie[V] {
	return NewBuilder[V]().AddAll(m).Build()
}
