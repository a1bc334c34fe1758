package provider

import (
	"github.com/stonevault/svtk/asset"
)

// Registry holds, per asset kind, the ordered list of providers the
// resolver tries leftmost-first. It is rebuilt in place whenever an API key
// is set or cleared so that providers whose readiness depends on that key
// are reconsidered.
type Registry struct {
	byKind map[asset.Kind][]Provider
}

// NewRegistry builds a registry from the full candidate provider list,
// ordering each kind's slice in the order providers were supplied and
// keeping only providers that currently report Ready.
func NewRegistry(candidates []Provider) *Registry {
	r := &Registry{byKind: make(map[asset.Kind][]Provider)}
	r.Rebuild(candidates)
	return r
}

// Rebuild recomputes the per-kind ordering from the full candidate list,
// dropping any provider that is not currently Ready. Call this again after
// any API key change.
func (r *Registry) Rebuild(candidates []Provider) {
	r.byKind = make(map[asset.Kind][]Provider)
	for _, p := range candidates {
		if !p.Ready() {
			continue
		}
		for _, k := range p.SupportedKinds() {
			r.byKind[k] = append(r.byKind[k], p)
		}
	}
}

// For returns the ordered provider list for the given asset kind.
func (r *Registry) For(k asset.Kind) []Provider {
	return r.byKind[k]
}
