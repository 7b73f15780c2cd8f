// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/essay-engine/pkg/types"
)

func sampleRun() Run {
	paragraphs := []types.Paragraph{
		{Topic: "animal", Sentences: []string{"The furry dog runs.", "A cat sleeps."}},
		{Topic: "zoo", Sentences: []string{"Thing does."}},
	}
	return NewRun("The animal zoo", []string{"animal", "zoo"},
		types.NewTopicSet("zoo", "animal"), types.Concurrent, types.PolicyRandom, paragraphs)
}

func TestNewRun(t *testing.T) {
	run := sampleRun()
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, []string{"animal", "zoo"}, run.Topics)
	assert.Equal(t, "concurrent", run.Strategy)
	assert.Equal(t, "random", run.Policy)
	assert.False(t, run.Timestamp.IsZero())

	assert.NotEqual(t, run.ID, sampleRun().ID)
}

func TestWriteReadYAMLAndJSON(t *testing.T) {
	for _, name := range []string{"run.yaml", "run.yml", "run.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			run := sampleRun()
			require.NoError(t, Write(path, run))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, run.ID, got.ID)
			assert.Equal(t, run.Input, got.Input)
			assert.Equal(t, run.Topics, got.Topics)
			assert.Equal(t, run.Paragraphs, got.Paragraphs)
			assert.True(t, run.Timestamp.Equal(got.Timestamp))
		})
	}
}

func TestWriteJSONIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, Write(path, sampleRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "The animal zoo", m["input"])
}

func TestWriteUnsupportedExtension(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "run.txt"), sampleRun())
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "run.toml"))
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Read(path)
	assert.Error(t, err)
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatText(&buf, sampleRun().Paragraphs))

	want := "Paragraph 1:\nThe furry dog runs. A cat sleeps.\n\nParagraph 2:\nThing does.\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatText(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRun()
	require.NoError(t, FormatJSON(&buf, run))

	var got Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Paragraphs, got.Paragraphs)
}

func TestReadTemplates(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - \"The [NOUN] [VERB].\"\n  - \"[ADJ] [NOUN] [VERB] [ADV].\"\n"), 0o644))
	got, err := ReadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"The [NOUN] [VERB].", "[ADJ] [NOUN] [VERB] [ADV]."}, got)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("templates: []\n"), 0o644))
	_, err = ReadTemplates(empty)
	assert.Error(t, err)

	_, err = ReadTemplates(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
