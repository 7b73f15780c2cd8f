// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/essay-engine/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"keeps trailing punctuation", "This is a test sentence for the topic.", []string{"this", "test", "sentence", "topic."}},
		{"classic pangram", "The quick brown fox jumps over the lazy dog", []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}},
		{"only stop words", "the a an and of in on at to is for", nil},
		{"empty", "", nil},
		{"whitespace runs", "  Ocean \t\n  waves  ", []string{"ocean", "waves"}},
		{"uppercase stop words", "THE Cat IS Here", []string{"cat", "here"}},
		{"punctuated stop word survives", "the, end", []string{"the,", "end"}},
		{"unicode lowercasing", "Ÿ CAFÉ", []string{"ÿ", "café"}},
	}
	n := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeNeverEmitsStopWords(t *testing.T) {
	n := New(nil)
	got := n.Normalize("A tale of the sea and the sky is on display at the museum for all to see")
	for _, tok := range got {
		for _, sw := range types.DefaultStopWords {
			assert.NotEqual(t, sw, tok)
		}
	}
	assert.Equal(t, []string{"tale", "sea", "sky", "display", "museum", "all", "see"}, got)
}

func TestCustomStopWords(t *testing.T) {
	n := New([]string{"Ocean"})
	assert.Equal(t, []string{"the", "waves"}, n.Normalize("the ocean waves"))

	none := New([]string{})
	assert.Equal(t, []string{"the", "ocean"}, none.Normalize("The ocean"))
}
