package content

import (
	"sync/atomic"

	"snowbird_docs/internal/domain"
)

// Store holds one compiled content snapshot. It is immutable after Compile;
// a rebuild produces a fresh Store that replaces the old one wholesale.
type Store struct {
	properties   []domain.Property
	houseRules   []domain.HouseRulesDoc
	instructions []domain.InstructionsDoc
	critical     []domain.CriticalInfoDoc
	guides       []domain.LocalGuideDoc
}

func (s *Store) PropertyBySlug(slug string) (domain.Property, error) {
	for _, p := range s.properties {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Property{}, domain.ErrNotFound
}

func (s *Store) Properties() []domain.Property {
	out := make([]domain.Property, len(s.properties))
	copy(out, s.properties)
	return out
}

func (s *Store) HouseRulesFor(propertySlug string) (domain.HouseRulesDoc, bool) {
	for _, d := range s.houseRules {
		if d.PropertySlug == propertySlug {
			return d, true
		}
	}
	return domain.HouseRulesDoc{}, false
}

func (s *Store) InstructionsFor(propertySlug string) (domain.InstructionsDoc, bool) {
	for _, d := range s.instructions {
		if d.PropertySlug == propertySlug {
			return d, true
		}
	}
	return domain.InstructionsDoc{}, false
}

func (s *Store) CriticalInfoFor(propertySlug string) (domain.CriticalInfoDoc, bool) {
	for _, d := range s.critical {
		if d.PropertySlug == propertySlug {
			return d, true
		}
	}
	return domain.CriticalInfoDoc{}, false
}

func (s *Store) GuideFor(locationSlug string) (domain.LocalGuideDoc, bool) {
	for _, d := range s.guides {
		if d.LocationSlug == locationSlug {
			return d, true
		}
	}
	return domain.LocalGuideDoc{}, false
}

// Counts reports compiled document totals per type, for the content gauge.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"property":      len(s.properties),
		"house_rules":   len(s.houseRules),
		"instructions":  len(s.instructions),
		"critical_info": len(s.critical),
		"local_guide":   len(s.guides),
	}
}

// Holder is the swappable reference to the current snapshot. Handlers read
// through it so a rebuild replaces content without restarting the server.
type Holder struct {
	cur atomic.Pointer[Store]
}

func NewHolder(s *Store) *Holder {
	h := &Holder{}
	h.cur.Store(s)
	return h
}

func (h *Holder) Load() *Store { return h.cur.Load() }

// Swap installs a new snapshot and returns the previous one.
func (h *Holder) Swap(s *Store) *Store { return h.cur.Swap(s) }

func (h *Holder) PropertyBySlug(slug string) (domain.Property, error) {
	return h.Load().PropertyBySlug(slug)
}
func (h *Holder) Properties() []domain.Property { return h.Load().Properties() }
func (h *Holder) HouseRulesFor(slug string) (domain.HouseRulesDoc, bool) {
	return h.Load().HouseRulesFor(slug)
}
func (h *Holder) InstructionsFor(slug string) (domain.InstructionsDoc, bool) {
	return h.Load().InstructionsFor(slug)
}
func (h *Holder) CriticalInfoFor(slug string) (domain.CriticalInfoDoc, bool) {
	return h.Load().CriticalInfoFor(slug)
}
func (h *Holder) GuideFor(locationSlug string) (domain.LocalGuideDoc, bool) {
	return h.Load().GuideFor(locationSlug)
}
