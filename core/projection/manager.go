package projection

import "sort"

// Manager holds one belief per recurring identity. It is process-wide state:
// the caller owns it, passes it into the engine, and persists it between runs.
type Manager struct {
	beliefs map[string]*Belief
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{beliefs: make(map[string]*Belief)}
}

// SetPrior registers an identity with a prior projection. Existing beliefs
// are left untouched so observed history is never silently discarded.
func (m *Manager) SetPrior(id string, priorMean, priorStd float64) {
	if _, ok := m.beliefs[id]; ok {
		return
	}
	m.beliefs[id] = NewBelief(priorMean, priorStd)
}

// Update folds a realized outcome into the identity's belief. Unknown
// identities are ignored; priors must be set explicitly.
func (m *Manager) Update(id string, points float64) {
	if b, ok := m.beliefs[id]; ok {
		b.Update(points)
	}
}

// Get returns the belief for an identity, or nil when none is registered.
func (m *Manager) Get(id string) *Belief {
	return m.beliefs[id]
}

// IDs returns the registered identities in sorted order.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.beliefs))
	for id := range m.beliefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset discards all beliefs. Only call at an explicit new-season boundary.
func (m *Manager) Reset() {
	m.beliefs = make(map[string]*Belief)
}

// Snapshot exports all beliefs for persistence.
func (m *Manager) Snapshot() map[string]Belief {
	out := make(map[string]Belief, len(m.beliefs))
	for id, b := range m.beliefs {
		out[id] = *b
	}
	return out
}

// RestoreManager rebuilds a manager from persisted beliefs.
func RestoreManager(beliefs map[string]Belief) *Manager {
	m := NewManager()
	for id, b := range beliefs {
		cp := b
		m.beliefs[id] = &cp
	}
	return m
}
