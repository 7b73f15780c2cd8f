// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters for lexical service traffic. A nil
// *Metrics records nothing.
type Metrics struct {
	Requests     *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
	Words        *prometheus.CounterVec
}

// NewMetrics creates the lexicon counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "essay_engine",
				Subsystem: "lexicon",
				Name:      "requests_total",
				Help:      "Lexical service requests by query kind and response status",
			},
			[]string{"kind", "status"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "essay_engine",
				Subsystem: "lexicon",
				Name:      "cache_lookups_total",
				Help:      "Lexical cache lookups by result (hit or miss)",
			},
			[]string{"result"},
		),
		Words: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "essay_engine",
				Subsystem: "lexicon",
				Name:      "records_total",
				Help:      "Records decoded from successful lexical responses",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.Requests, m.CacheLookups, m.Words} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering lexicon metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) request(kind, status string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) cacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) words(kind string, n int) {
	if m == nil {
		return
	}
	m.Words.WithLabelValues(kind).Add(float64(n))
}

// WriteSummary prints every counter gathered from g as "name{labels} value",
// sorted by name.
func WriteSummary(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g",
				mf.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
