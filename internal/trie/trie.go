// Package trie implements an immutable, case-insensitive prefix tree.
//
// No operation mutates a published Trie. Every transformation (SubTrie,
// Map, Filter, Union) returns a new Trie that shares untouched branches with
// the original, so tries can be handed out freely and read concurrently.
package trie

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// node is a single character in the tree. Children are keyed by the folded
// (lower-case) rune, while label keeps the original case for display.
type node[V any] struct {
	label    rune
	value    V
	hasValue bool
	children map[rune]*node[V]
	words    int
}

// Trie is an immutable prefix tree mapping words to values.
// The zero value and a nil *Trie are both valid empty tries.
type Trie[V any] struct {
	root *node[V]
}

// Entry is a word and the value associated with it.
type Entry[V any] struct {
	Word  string
	Value V
}

// empties holds one empty *Trie per value type.
var empties sync.Map

// Empty returns the empty trie for V. Every call for the same V returns the
// same instance.
func Empty[V any]() *Trie[V] {
	key := reflect.TypeOf((*V)(nil)).Elem()
	if t, ok := empties.Load(key); ok {
		return t.(*Trie[V])
	}
	t, _ := empties.LoadOrStore(key, &Trie[V]{})
	return t.(*Trie[V])
}

func fold(r rune) rune {
	return unicode.ToLower(r)
}

func wrap[V any](root *node[V]) *Trie[V] {
	if root == nil || root.words == 0 {
		return Empty[V]()
	}
	return &Trie[V]{root: root}
}

// Size returns the number of words in the trie.
func (t *Trie[V]) Size() int {
	if t == nil || t.root == nil {
		return 0
	}
	return t.root.words
}

// IsEmpty returns true if the trie holds no words.
func (t *Trie[V]) IsEmpty() bool {
	return t.Size() == 0
}

// Contains returns true if word is in the trie.
func (t *Trie[V]) Contains(word string) bool {
	_, ok := t.Get(word)
	return ok
}

// Get returns the value stored for word.
func (t *Trie[V]) Get(word string) (V, bool) {
	var zero V
	n := t.find(word)
	if n == nil || !n.hasValue {
		return zero, false
	}
	return n.value, true
}

func (t *Trie[V]) find(prefix string) *node[V] {
	if t.IsEmpty() {
		return nil
	}
	current := t.root
	for _, r := range prefix {
		child, ok := current.children[fold(r)]
		if !ok {
			return nil
		}
		current = child
	}
	return current
}

// LongestPrefix returns the longest prefix shared by every word in the trie.
// For the words 'abc', 'abcd' and 'abcde' this is 'abc'.
func (t *Trie[V]) LongestPrefix() string {
	if t.IsEmpty() {
		return ""
	}

	var b strings.Builder
	current := t.root
	// Stop at the first branch or at the first complete word.
	for len(current.children) == 1 && !current.hasValue {
		for _, child := range current.children {
			current = child
		}
		b.WriteRune(current.label)
	}
	return b.String()
}

// SubTrie returns a trie restricted to the words starting with prefix.
// An empty prefix returns the receiver; an unmatched prefix returns an
// empty trie.
func (t *Trie[V]) SubTrie(prefix string) *Trie[V] {
	if prefix == "" || t.IsEmpty() {
		return t
	}

	runes := []rune(prefix)
	path := make([]*node[V], 0, len(runes))
	current := t.root
	for _, r := range runes {
		child, ok := current.children[fold(r)]
		if !ok {
			return Empty[V]()
		}
		path = append(path, child)
		current = child
	}

	// Rebuild the chain leading to the matched node, bottom-up. The matched
	// node itself (and everything under it) is shared.
	words := current.words
	below := current
	for i := len(path) - 2; i >= 0; i-- {
		below = &node[V]{
			label:    path[i].label,
			children: map[rune]*node[V]{fold(below.label): below},
			words:    words,
		}
	}
	root := &node[V]{
		children: map[rune]*node[V]{fold(below.label): below},
		words:    words,
	}
	return wrap(root)
}

// Map returns a trie in which every value has been transformed by f.
// Words for which f reports false are dropped, along with any node left
// without a value and without children.
func Map[V, W any](t *Trie[V], f func(V) (W, bool)) *Trie[W] {
	if t.IsEmpty() {
		return Empty[W]()
	}
	return wrap(mapNode(t.root, f))
}

func mapNode[V, W any](n *node[V], f func(V) (W, bool)) *node[W] {
	mapped := &node[W]{label: n.label}
	if n.hasValue {
		mapped.value, mapped.hasValue = f(n.value)
		if mapped.hasValue {
			mapped.words = 1
		}
	}

	for key, child := range n.children {
		c := mapNode(child, f)
		if c == nil {
			continue
		}
		if mapped.children == nil {
			mapped.children = make(map[rune]*node[W], len(n.children))
		}
		mapped.children[key] = c
		mapped.words += c.words
	}

	if !mapped.hasValue && len(mapped.children) == 0 {
		return nil
	}
	return mapped
}

// Filter returns a trie holding only the values for which keep returns true.
func (t *Trie[V]) Filter(keep func(V) bool) *Trie[V] {
	return Map(t, func(v V) (V, bool) {
		return v, keep(v)
	})
}

// Union returns a trie containing the words of both tries. When a word is
// present in both, the value from the receiver wins.
func (t *Trie[V]) Union(other *Trie[V]) *Trie[V] {
	if t == other || t.IsEmpty() {
		if other == nil {
			return Empty[V]()
		}
		return other
	}
	if other.IsEmpty() {
		return t
	}
	return wrap(unionNode(t.root, other.root))
}

func unionNode[V any](left, right *node[V]) *node[V] {
	if fold(left.label) != fold(right.label) {
		panic(fmt.Sprintf("trie: union of incompatible nodes %q and %q", left.label, right.label))
	}

	merged := &node[V]{
		label:    left.label,
		children: make(map[rune]*node[V], len(left.children)+len(right.children)),
	}
	switch {
	case left.hasValue:
		merged.value, merged.hasValue = left.value, true
	case right.hasValue:
		merged.value, merged.hasValue = right.value, true
	}
	if merged.hasValue {
		merged.words = 1
	}

	for key, child := range left.children {
		if other, ok := right.children[key]; ok {
			child = unionNode(child, other)
		}
		merged.children[key] = child
	}
	for key, child := range right.children {
		if _, ok := merged.children[key]; !ok {
			merged.children[key] = child
		}
	}
	for _, child := range merged.children {
		merged.words += child.words
	}
	return merged
}

// VisitWords calls visit for every word in the trie. Order is unspecified.
func (t *Trie[V]) VisitWords(visit func(word string, value V)) {
	if t.IsEmpty() {
		return
	}
	buf := make([]rune, 0, 16)
	visitNode(t.root, buf, visit)
}

func visitNode[V any](n *node[V], buf []rune, visit func(string, V)) {
	if n.hasValue {
		visit(string(buf), n.value)
	}
	for _, child := range n.children {
		visitNode(child, append(buf, child.label), visit)
	}
}

// Words returns every word in the trie, in unspecified order.
func (t *Trie[V]) Words() []string {
	words := make([]string, 0, t.Size())
	t.VisitWords(func(word string, _ V) {
		words = append(words, word)
	})
	return words
}

// SortedWords returns every word in the trie, sorted.
func (t *Trie[V]) SortedWords() []string {
	words := t.Words()
	slices.Sort(words)
	return words
}

// Values returns every value in the trie, in unspecified order.
func (t *Trie[V]) Values() []V {
	values := make([]V, 0, t.Size())
	t.VisitWords(func(_ string, v V) {
		values = append(values, v)
	})
	return values
}

// Entries returns every word-value pair in the trie, in unspecified order.
func (t *Trie[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, t.Size())
	t.VisitWords(func(word string, v V) {
		entries = append(entries, Entry[V]{Word: word, Value: v})
	})
	return entries
}

// ToMap returns the trie contents as a map.
func (t *Trie[V]) ToMap() map[string]V {
	m := make(map[string]V, t.Size())
	t.VisitWords(func(word string, v V) {
		m[word] = v
	})
	return m
}

func (t *Trie[V]) String() string {
	return fmt.Sprintf("%v", t.ToMap())
}
