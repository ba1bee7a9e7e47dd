package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NikitaCOEUR/dirsh/internal/trie"
)

func typed(m map[string]Type) *trie.Trie[Type] {
	return trie.FromMap(m)
}

func TestAddition(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		suggestions map[string]Type
		want        string
	}{
		{
			name:        "single command gets a trailing space",
			prefix:      "pi",
			suggestions: map[string]Type{"ping": Command},
			want:        "ng ",
		},
		{
			name:        "single directory gets a separator",
			prefix:      "ne",
			suggestions: map[string]Type{"network": Directory},
			want:        "twork/",
		},
		{
			name:        "several extend to the common prefix",
			prefix:      "pre",
			suggestions: map[string]Type{"prefix1": Command, "prefix2": Directory},
			want:        "fix",
		},
		{
			name:        "nothing in common",
			prefix:      "",
			suggestions: map[string]Type{"a": Command, "b": Command},
			want:        "",
		},
		{
			name:        "fully typed lone word",
			prefix:      "ping",
			suggestions: map[string]Type{"ping": ParamValue},
			want:        " ",
		},
		{
			name:        "typed case is kept",
			prefix:      "PRE",
			suggestions: map[string]Type{"prefix": Command},
			want:        "fix ",
		},
		{
			name:        "empty",
			prefix:      "x",
			suggestions: map[string]Type{},
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := New(tt.prefix, typed(tt.suggestions))
			assert.Equal(t, tt.want, ac.Addition())
		})
	}
}

func TestByTypeAndWords(t *testing.T) {
	ac := New("", typed(map[string]Type{
		"zeta":  Command,
		"alpha": Command,
		"dir":   Directory,
	}))

	assert.Equal(t, []string{"alpha", "dir", "zeta"}, ac.Words())
	groups := ac.ByType()
	assert.Equal(t, []string{"alpha", "zeta"}, groups[Command])
	assert.Equal(t, []string{"dir"}, groups[Directory])
}

func TestNoneAndTag(t *testing.T) {
	none := None("abc")
	assert.True(t, none.IsEmpty())
	assert.Equal(t, "abc", none.Prefix)

	tagged := Tag(trie.FromWords("x", "y"), ParamName)
	v, ok := tagged.Get("x")
	assert.True(t, ok)
	assert.Equal(t, ParamName, v)
}

func TestUnion(t *testing.T) {
	a := New("p", typed(map[string]Type{"pa": Command}))
	b := New("p", typed(map[string]Type{"pb": Directory}))
	u := a.Union(b)
	assert.Equal(t, 2, u.Size())
	assert.Equal(t, "p", u.Prefix)
}
