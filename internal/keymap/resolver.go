package keymap

import "slices"

// Resolver maps key names, as bubbletea and the raw key decoder report
// them, to actions. A key bound twice resolves to its last binding.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// InContexts returns a resolver for the bindings of several contexts.
func InContexts(contexts ...string) *Resolver {
	return NewResolver(ForContexts(contexts...))
}

// Playback returns the resolver used while a stream plays.
func Playback() *Resolver {
	return InContexts(ContextPlayback)
}

// Resolve returns the action for a key, or "" if the key is not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to an action in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}
