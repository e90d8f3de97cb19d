package validator

import "sort"

// Registry maps rule keys to Rule implementations.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// NewDefaultRegistry creates a Registry holding every built-in rule.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range BuiltinRules() {
		r.Register(rule)
	}
	return r
}

// Register adds a rule to the registry, replacing any rule with the same key.
func (r *Registry) Register(rule Rule) {
	r.rules[rule.Key()] = rule
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.rules[key]
}

// All returns all registered rules ordered by key.
func (r *Registry) All() []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
