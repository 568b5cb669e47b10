// Package workflow derives a workflow state from an issue's labels.
package workflow

import (
	"strings"
)

// StateLabels binds a workflow state to the labels that indicate it.
type StateLabels struct {
	State  string   `yaml:"state"`
	Labels []string `yaml:"labels"`
}

// Mapping is an ordered list of state-to-labels bindings. Order matters:
// classification returns the first state whose labels intersect the issue's
// labels, not the best match.
type Mapping []StateLabels

// Classifier resolves an issue's labels to a single workflow state.
type Classifier struct {
	mapping  []compiledState
	fallback string
	universe map[string]bool
}

type compiledState struct {
	state  string
	labels map[string]bool
}

// NewClassifier compiles a mapping. Label matching is case-insensitive.
// Issues whose labels match no configured state resolve to fallback, which
// may be empty if the caller wants unclassified issues to stand out.
func NewClassifier(mapping Mapping, fallback string) *Classifier {
	c := &Classifier{
		fallback: fallback,
		universe: map[string]bool{},
	}

	for _, entry := range mapping {
		compiled := compiledState{
			state:  entry.State,
			labels: map[string]bool{},
		}
		for _, label := range entry.Labels {
			key := strings.ToLower(label)
			compiled.labels[key] = true
			c.universe[key] = true
		}
		c.mapping = append(c.mapping, compiled)
	}

	return c
}

// Classify returns the first configured state (in declared order) whose label
// set intersects labels. If none intersects the fallback state is returned,
// whether or not any of the labels appear in the configured universe; use
// Applicable to distinguish the two cases when reporting.
func (c *Classifier) Classify(labels []string) string {
	for _, entry := range c.mapping {
		for _, label := range labels {
			if entry.labels[strings.ToLower(label)] {
				return entry.state
			}
		}
	}
	return c.fallback
}

// Applicable reports whether any of labels appears in the union of all
// configured label sets.
func (c *Classifier) Applicable(labels []string) bool {
	for _, label := range labels {
		if c.universe[strings.ToLower(label)] {
			return true
		}
	}
	return false
}

// States returns the configured state names in declared order, with the
// fallback state appended when one is configured.
func (c *Classifier) States() []string {
	var out []string
	for _, entry := range c.mapping {
		out = append(out, entry.state)
	}
	if c.fallback != "" {
		out = append(out, c.fallback)
	}
	return out
}
