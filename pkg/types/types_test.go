// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicSet(t *testing.T) {
	s := NewTopicSet("zoo", "animal", "", "  ", "animal")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("animal"))
	assert.False(t, s.Contains(""))

	assert.True(t, s.Add("cat"))
	assert.False(t, s.Add("cat"))
	assert.Equal(t, []Topic{"animal", "cat", "zoo"}, s.Sorted())
	assert.Equal(t, []string{"animal", "cat", "zoo"}, s.Strings())

	var other TopicSet
	assert.True(t, other.IsEmpty())
	other.Merge(s)
	other.Merge(NewTopicSet("dog"))
	assert.Equal(t, 4, other.Len())
}

func TestTopicSetZeroValue(t *testing.T) {
	var s TopicSet
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains("x"))
	assert.Empty(t, s.Sorted())
	assert.True(t, s.Add("x"))
	assert.Equal(t, 1, s.Len())
}

func TestPartOfSpeech(t *testing.T) {
	tests := []struct {
		pos   PartOfSpeech
		code  string
		label string
		name  string
		known bool
	}{
		{Noun, "n", "NOUN", "noun", true},
		{Verb, "v", "VERB", "verb", true},
		{Adjective, "adj", "ADJ", "adjective", true},
		{Adverb, "adv", "ADV", "adverb", true},
		{Unknown, "", "", "any", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.pos.Code())
			assert.Equal(t, tt.label, tt.pos.Label())
			assert.Equal(t, tt.name, tt.pos.String())
			assert.Equal(t, tt.known, tt.pos.Known())
			if tt.known {
				assert.Equal(t, tt.pos, ParseLabel(tt.label))
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	assert.Equal(t, Noun, ParseLabel(" noun "))
	assert.Equal(t, Adjective, ParseLabel("Adjective"))
	assert.Equal(t, Adverb, ParseLabel("adv"))
	assert.Equal(t, Unknown, ParseLabel("PRON"))
	assert.Equal(t, Unknown, ParseLabel(""))
}

func TestStrategy(t *testing.T) {
	assert.Equal(t, Concurrent, StrategyFor(true))
	assert.Equal(t, Sequential, StrategyFor(false))
	assert.Equal(t, "concurrent", Concurrent.String())
	assert.Equal(t, "sequential", Sequential.String())
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicySequential, false},
		{"sequential", PolicySequential, false},
		{"POP", PolicySequential, false},
		{"random", PolicyRandom, false},
		{" draw ", PolicyRandom, false},
		{"shuffle", PolicySequential, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestSentenceRange(t *testing.T) {
	assert.NoError(t, FixedSentences(2).Validate())
	assert.NoError(t, SentenceRange{Min: 2, Max: 3}.Validate())
	assert.Error(t, FixedSentences(0).Validate())
	assert.Error(t, SentenceRange{Min: 3, Max: 2}.Validate())
}

func TestParagraphText(t *testing.T) {
	p := Paragraph{Topic: "animal", Sentences: []string{"One.", "Two."}}
	assert.Equal(t, "One. Two.", p.Text())
	assert.Empty(t, Paragraph{}.Text())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://api.datamuse.com/words", cfg.Lexicon.BaseURL)
	assert.Equal(t, SentenceRange{Min: 2, Max: 3}, cfg.Generation.Range())
	assert.NoError(t, cfg.Generation.Range().Validate())
	assert.Equal(t, 5, cfg.Generation.Paragraphs)
	assert.Zero(t, cfg.Lexicon.MaxRetries, "429 responses are not retried unless configured")
	assert.False(t, cfg.Generation.Tagged)

	cfg.StopWords[0] = "changed"
	assert.Equal(t, "the", DefaultStopWords[0], "DefaultConfig must copy the stop words")
}

func TestVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, 10, v.LimitFor(Noun))
	assert.Equal(t, 10, v.LimitFor(Verb))
	assert.Equal(t, 5, v.LimitFor(Adjective))
	assert.Equal(t, 5, v.LimitFor(Adverb))

	assert.Equal(t, []string{"thing", "object", "item"}, v.Defaults.For(Noun))
	assert.Equal(t, []string{"does", "is"}, v.Defaults.For(Verb))
	assert.Equal(t, []string{"nice", "good"}, v.Defaults.For(Adjective))
	assert.Equal(t, []string{"quickly"}, v.Defaults.For(Adverb))
	assert.Nil(t, v.Defaults.For(Unknown))
}
