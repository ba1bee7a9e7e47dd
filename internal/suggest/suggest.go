// Package suggest holds the autocompletion result shared by the resolver,
// the parameter manager and the pipeline.
package suggest

import (
	"slices"
	"unicode/utf8"

	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

// Type tags what a suggestion is, so renderers can group them.
type Type int

const (
	// Directory is a child directory.
	Directory Type = iota + 1
	// Command is a child command.
	Command
	// GlobalCommand is an entry of the global registry.
	GlobalCommand
	// ParamName is the name of a not-yet-bound parameter.
	ParamName
	// ParamValue is a value for the parameter being completed.
	ParamValue
)

func (t Type) String() string {
	switch t {
	case Directory:
		return "directory"
	case Command:
		return "command"
	case GlobalCommand:
		return "global command"
	case ParamName:
		return "parameter name"
	case ParamValue:
		return "parameter value"
	default:
		return "unknown"
	}
}

// Separator is appended to a lone directory suggestion.
const Separator = "/"

// AutoComplete is the set of completions for the token being typed.
type AutoComplete struct {
	// Prefix is the part of the token the suggestions extend.
	Prefix      string
	Suggestions *trie.Trie[Type]
}

// New creates an AutoComplete for prefix.
func New(prefix string, suggestions *trie.Trie[Type]) *AutoComplete {
	if suggestions == nil {
		suggestions = trie.Empty[Type]()
	}
	return &AutoComplete{Prefix: prefix, Suggestions: suggestions}
}

// None is a successful completion with nothing to suggest.
func None(prefix string) *AutoComplete {
	return New(prefix, nil)
}

// Tag maps every word of t to the constant type typ.
func Tag[V any](t *trie.Trie[V], typ Type) *trie.Trie[Type] {
	return trie.Map(t, func(V) (Type, bool) { return typ, true })
}

// Size returns the number of suggestions.
func (a *AutoComplete) Size() int {
	return a.Suggestions.Size()
}

// IsEmpty is true when there is nothing to suggest.
func (a *AutoComplete) IsEmpty() bool {
	return a.Suggestions.IsEmpty()
}

// LongestPrefix is the longest prefix shared by all suggestions.
func (a *AutoComplete) LongestPrefix() string {
	return a.Suggestions.LongestPrefix()
}

// Addition is the text to splice after the typed token. With a single
// suggestion it completes the word and appends a separator (for a
// directory) or a space. With several it extends up to the common prefix.
//
// The typed token is kept as typed: only the runes past its length come
// from the suggestion, so "PRE" completing "prefix" yields "fix". Lookups
// are case-insensitive, so the spliced token still resolves.
func (a *AutoComplete) Addition() string {
	if a.IsEmpty() {
		return ""
	}

	if a.Size() == 1 {
		entry := a.Suggestions.Entries()[0]
		suffix := " "
		if entry.Value == Directory {
			suffix = Separator
		}
		return remainder(entry.Word, a.Prefix) + suffix
	}
	return remainder(a.LongestPrefix(), a.Prefix)
}

func remainder(word, prefix string) string {
	n := utf8.RuneCountInString(prefix)
	runes := []rune(word)
	if n >= len(runes) {
		return ""
	}
	return string(runes[n:])
}

// Words returns the suggestions, sorted.
func (a *AutoComplete) Words() []string {
	return a.Suggestions.SortedWords()
}

// ByType groups the sorted suggestions by type.
func (a *AutoComplete) ByType() map[Type][]string {
	groups := make(map[Type][]string)
	a.Suggestions.VisitWords(func(word string, t Type) {
		groups[t] = append(groups[t], word)
	})
	for _, words := range groups {
		slices.Sort(words)
	}
	return groups
}

// Union merges the suggestions of two completions of the same prefix.
func (a *AutoComplete) Union(other *AutoComplete) *AutoComplete {
	return New(a.Prefix, a.Suggestions.Union(other.Suggestions))
}
