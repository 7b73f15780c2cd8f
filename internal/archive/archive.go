// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive saves generation runs to disk and formats paragraphs for
// display. A saved run records the input phrase, the discovered topics, and
// the paragraphs, so output can be reviewed later without querying the
// lexical service again.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// Run is the on-disk representation of one generation.
type Run struct {
	ID         uuid.UUID         `json:"id" yaml:"id"`
	Input      string            `json:"input" yaml:"input"`
	Tokens     []string          `json:"tokens" yaml:"tokens"`
	Topics     []string          `json:"topics" yaml:"topics"`
	Strategy   string            `json:"strategy" yaml:"strategy"`
	Policy     string            `json:"policy" yaml:"policy"`
	Seed       uint64            `json:"seed,omitempty" yaml:"seed,omitempty"`
	Paragraphs []types.Paragraph `json:"paragraphs" yaml:"paragraphs"`
	Timestamp  time.Time         `json:"timestamp" yaml:"timestamp"`
}

// NewRun stamps a run with a fresh ID and the current time.
func NewRun(input string, tokens []string, topics types.TopicSet, strategy types.Strategy, policy types.Policy, paragraphs []types.Paragraph) Run {
	return Run{
		ID:         uuid.New(),
		Input:      input,
		Tokens:     tokens,
		Topics:     topics.Strings(),
		Strategy:   strategy.String(),
		Policy:     policy.String(),
		Paragraphs: paragraphs,
		Timestamp:  time.Now().UTC(),
	}
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported archive extension %q: use .yaml, .yml, or .json", filepath.Ext(path))
	}
}

// Write saves run to path as YAML or JSON, chosen by the file extension.
// Parent directories are created as needed.
func Write(path string, run Run) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(run, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(&run)
	}
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating archive directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a run previously saved with Write.
func Read(path string) (*Run, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run: %w", err)
	}

	var run Run
	switch f {
	case formatJSON:
		err = json.Unmarshal(data, &run)
	default:
		err = yaml.Unmarshal(data, &run)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing run: %w", err)
	}
	return &run, nil
}

// FormatText writes each paragraph under a "Paragraph N:" heading,
// separated by blank lines.
func FormatText(w io.Writer, paragraphs []types.Paragraph) error {
	for i, p := range paragraphs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Paragraph %d:\n%s\n", i+1, p.Text()); err != nil {
			return err
		}
	}
	return nil
}

// FormatJSON writes run as indented JSON.
func FormatJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// TemplateFile lists sentence templates, one per entry.
type TemplateFile struct {
	Templates []string `yaml:"templates"`
}

// ReadTemplates loads sentence templates from a YAML file.
func ReadTemplates(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}
	var tf TemplateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing template file: %w", err)
	}
	if len(tf.Templates) == 0 {
		return nil, fmt.Errorf("template file %s lists no templates", path)
	}
	return tf.Templates, nil
}
