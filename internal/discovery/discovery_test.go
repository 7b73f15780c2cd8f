// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/essay-engine/internal/lexicon"
	"github.com/pdiddy/essay-engine/internal/normalize"
	"github.com/pdiddy/essay-engine/pkg/types"
)

// --- fake source ---

type fakeSource struct {
	mu      sync.Mutex
	related map[types.Topic][]string
	calls   []types.Topic
}

func (f *fakeSource) FetchRelated(_ context.Context, topic types.Topic) []string {
	f.mu.Lock()
	f.calls = append(f.calls, topic)
	f.mu.Unlock()
	return f.related[topic]
}

var strategies = []types.Strategy{types.Sequential, types.Concurrent}

func TestDiscoverUnion(t *testing.T) {
	src := &fakeSource{related: map[types.Topic][]string{
		"ocean": {"wave", "tide", "salt"},
		"storm": {"wave", "thunder"},
	}}

	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			got := New(src).Discover(context.Background(), []string{"ocean", "storm"}, strategy)
			assert.Equal(t, []string{"salt", "thunder", "tide", "wave"}, got.Strings())
		})
	}
}

func TestDiscoverIsolatesFailures(t *testing.T) {
	src := &fakeSource{related: map[types.Topic][]string{
		"good": {"found"},
		// "bad" has no entry: the lookup failed.
	}}

	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			got := New(src).Discover(context.Background(), []string{"bad", "good", "bad"}, strategy)
			assert.Equal(t, []string{"found"}, got.Strings())
		})
	}
}

func TestDiscoverSequentialCallsInOrder(t *testing.T) {
	src := &fakeSource{related: map[types.Topic][]string{}}
	New(src).Discover(context.Background(), []string{"c", "a", "b"}, types.Sequential)
	assert.Equal(t, []types.Topic{"c", "a", "b"}, src.calls)
}

func TestDiscoverSkipsBlankTokensAndNormalizesWords(t *testing.T) {
	src := &fakeSource{related: map[types.Topic][]string{
		"x": {"  Mixed ", "", "the", "kept"},
	}}
	stop := normalize.New(nil)

	got := New(src, WithExclude(stop.IsStopWord)).
		Discover(context.Background(), []string{"", "  ", "x"}, types.Sequential)

	assert.Equal(t, []string{"kept", "mixed"}, got.Strings())
	assert.Equal(t, []types.Topic{"x"}, src.calls)
}

func TestDiscoverNoTokens(t *testing.T) {
	got := New(&fakeSource{}).Discover(context.Background(), nil, types.Concurrent)
	assert.True(t, got.IsEmpty())
}

// The lexical client against a stub service: every token yields topic1,
// and both strategies agree.
func TestDiscoverWithLexiconClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("rel_trg"))
		fmt.Fprint(w, `[{"word":"topic1"}]`)
	}))
	defer ts.Close()

	client := lexicon.New(types.LexiconConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		BaseURL:    ts.URL,
	}, lexicon.WithHTTPClient(ts.Client()))

	seq := New(client).Discover(context.Background(), []string{"word1", "word2"}, types.Sequential)
	con := New(client, WithWorkers(2)).Discover(context.Background(), []string{"word1", "word2"}, types.Concurrent)

	assert.True(t, seq.Contains("topic1"))
	assert.Equal(t, seq.Strings(), con.Strings())
}

func TestDiscoverWithLexiconClientFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := lexicon.New(types.LexiconConfig{BaseURL: ts.URL}, lexicon.WithHTTPClient(ts.Client()))

	for _, strategy := range strategies {
		got := New(client).Discover(context.Background(), []string{"word1", "word2"}, strategy)
		assert.True(t, got.IsEmpty(), strategy.String())
	}
}
