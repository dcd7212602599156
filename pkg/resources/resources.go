// Package resources holds the help-menu texts behind the resource buttons.
// Topics ship as built-in defaults and can be overridden by a YAML file so
// community admins can edit copy without touching Go code.
package resources

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Topic is one help-menu entry keyed by the button's action name.
type Topic struct {
	Name string `yaml:"name"` // machine identifier, matches the button action name
	Text string `yaml:"text"` // markdown body rendered into the message
}

// Registry is a thread-safe store of loaded topics. It is populated once at
// startup; handlers only read.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]Topic
}

// NewRegistry creates a registry preloaded with the built-in topics.
func NewRegistry() *Registry {
	r := &Registry{topics: make(map[string]Topic)}
	for _, t := range builtins {
		r.topics[t.Name] = t
	}
	return r
}

// LoadFile merges topics from a YAML file over the built-ins. Topics with
// the same name replace their built-in counterpart.
func (r *Registry) LoadFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("resources: read %s: %w", path, err)
	}

	var doc struct {
		Topics []Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("resources: parse %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range doc.Topics {
		if t.Name == "" || t.Text == "" {
			return 0, fmt.Errorf("resources: %s: topic with empty name or text", path)
		}
		r.topics[t.Name] = t
	}
	return len(doc.Topics), nil
}

// Lookup returns the text for a topic name.
func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.topics[name]
	return t.Text, ok
}

// Names returns all registered topic names (for diagnostics).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.topics))
	for name := range r.topics {
		names = append(names, name)
	}
	return names
}

var builtins = []Topic{
	{
		Name: "slack",
		Text: "Slack is our main hangout. New here? Introduce yourself in #general and set up your profile so folks know who they're talking to.",
	},
	{
		Name: "coc",
		Text: "Our Code of Conduct applies in every channel: be welcoming, be patient, and assume good faith. Full text: https://operationcode.org/code-of-conduct",
	},
	{
		Name: "mentorship",
		Text: "Looking for a mentor? Head to https://operationcode.org/mentors and submit a request — a mentor will claim it from the #mentors channel.",
	},
	{
		Name: "javascript",
		Text: "JavaScript study group lives in #javascript. Start with freeCodeCamp's curriculum, then come ask questions — no question is too small.",
	},
	{
		Name: "python",
		Text: "Python questions go in #python. Automate the Boring Stuff and the official tutorial are the usual starting points.",
	},
	{
		Name: "git",
		Text: "Stuck on git? #git-help has you covered. Try `git status` first; it answers more questions than you'd think.",
	},
}
