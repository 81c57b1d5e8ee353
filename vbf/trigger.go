package vbf

import (
	"errors"
	"fmt"
)

// ErrUnknownTrigger is returned when a trigger is not part of a menu.
var ErrUnknownTrigger = errors.New("vbf: unknown trigger")

// TriggerMenu assigns every trigger of interest a fixed slot in Event.Fired.
// Names are resolved once, when the menu is built.
type TriggerMenu struct {
	names []string
	slots map[string]int
}

// NewTriggerMenu builds a menu from trigger names. Duplicate names share a
// slot.
func NewTriggerMenu(names ...string) *TriggerMenu {
	m := &TriggerMenu{slots: make(map[string]int, len(names))}
	for _, name := range names {
		if _, dup := m.slots[name]; dup {
			continue
		}
		m.slots[name] = len(m.names)
		m.names = append(m.names, name)
	}
	return m
}

// Names returns the trigger names in slot order.
func (m *TriggerMenu) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of slots.
func (m *TriggerMenu) Len() int { return len(m.names) }

// Slot returns the slot of the named trigger.
func (m *TriggerMenu) Slot(name string) (int, error) {
	slot, ok := m.slots[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownTrigger, name)
	}
	return slot, nil
}

// Accessor returns a predicate reporting whether the named trigger fired in
// an event read with this menu.
func (m *TriggerMenu) Accessor(name string) (func(*Event) bool, error) {
	slot, err := m.Slot(name)
	if err != nil {
		return nil, err
	}
	return func(ev *Event) bool {
		return slot < len(ev.Fired) && ev.Fired[slot]
	}, nil
}

// AllFired returns a predicate reporting whether every named trigger fired.
// It is always true when no name is given.
func (m *TriggerMenu) AllFired(names ...string) (func(*Event) bool, error) {
	slots := make([]int, len(names))
	for i, name := range names {
		slot, err := m.Slot(name)
		if err != nil {
			return nil, err
		}
		slots[i] = slot
	}
	return func(ev *Event) bool {
		for _, slot := range slots {
			if slot >= len(ev.Fired) || !ev.Fired[slot] {
				return false
			}
		}
		return true
	}, nil
}

// L1Selection emulates the VBF L1 seed on the two leading L1 jets.
func L1Selection(jets []L1Jet, seed L1Seed) bool {
	if len(jets) < 2 {
		return false
	}
	if !(jets[0].Pt > seed.LeadJetPt && jets[1].Pt > seed.TrailJetPt) {
		return false
	}
	return L1Mjj(jets) > seed.Mjj
}

// L1Mjj returns the invariant mass of the two leading L1 jets, or 0 when
// there are fewer than two.
func L1Mjj(jets []L1Jet) float64 {
	if len(jets) < 2 {
		return 0
	}
	return pairMass(jets[0].P4(), jets[1].P4())
}

// HLTSelection returns a predicate requiring the L1 seed and the named HLT
// path.
func HLTSelection(m *TriggerMenu, name string, seed L1Seed) (func(*Event) bool, error) {
	fired, err := m.Accessor(name)
	if err != nil {
		return nil, err
	}
	return func(ev *Event) bool {
		return L1Selection(ev.L1Jets, seed) && fired(ev)
	}, nil
}
