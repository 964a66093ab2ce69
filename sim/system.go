package sim

import (
	"fmt"
	"math"
)

// ComponentID indexes a component within the System that owns it.
// IDs are assigned in group order at construction time.
type ComponentID int

// Group is an ordered set of interchangeable components.
// The group is down only while every member is failed.
type Group struct {
	Name       string
	Components []*Component
}

// System partitions components into redundancy groups and tracks which
// components are currently failed. The system is operational while every
// group has at least one working member.
//
// Thread-safety: NOT thread-safe. Concurrent trials must each use a Clone.
type System struct {
	Name                  string
	RevenuePenaltyPerHour float64

	groups     []Group
	components []*Component
	groupOf    []int
	byName     map[string]ComponentID

	failed        []bool
	failedInGroup []int
	numFailed     int
}

// NewSystem validates groups and builds a System with an empty failed set.
// Empty groups, a component listed twice, duplicate names and a system with
// no groups are rejected.
func NewSystem(name string, groups []Group, revenuePenaltyPerHour float64) (*System, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: system %q has no redundancy groups", ErrInvalidConfig, name)
	}
	if !(revenuePenaltyPerHour >= 0) || math.IsInf(revenuePenaltyPerHour, 0) {
		return nil, fmt.Errorf("%w: system %q: revenue penalty per hour must be a non-negative finite number, got %v",
			ErrInvalidConfig, name, revenuePenaltyPerHour)
	}

	s := &System{
		Name:                  name,
		RevenuePenaltyPerHour: revenuePenaltyPerHour,
		groups:                make([]Group, len(groups)),
		byName:                make(map[string]ComponentID),
		failedInGroup:         make([]int, len(groups)),
	}
	seen := make(map[*Component]bool)
	for g, group := range groups {
		if len(group.Components) == 0 {
			return nil, fmt.Errorf("%w: system %q: group %d (%q) has no components", ErrInvalidConfig, name, g, group.Name)
		}
		members := make([]*Component, len(group.Components))
		copy(members, group.Components)
		for _, c := range members {
			if c == nil {
				return nil, fmt.Errorf("%w: system %q: group %d (%q) contains a nil component", ErrInvalidConfig, name, g, group.Name)
			}
			if seen[c] {
				return nil, fmt.Errorf("%w: system %q: component %q belongs to more than one group", ErrInvalidConfig, name, c.Name)
			}
			if _, dup := s.byName[c.Name]; dup {
				return nil, fmt.Errorf("%w: system %q: duplicate component name %q", ErrInvalidConfig, name, c.Name)
			}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("system %q: %w", name, err)
			}
			seen[c] = true
			s.byName[c.Name] = ComponentID(len(s.components))
			s.components = append(s.components, c)
			s.groupOf = append(s.groupOf, g)
		}
		s.groups[g] = Group{Name: group.Name, Components: members}
	}
	s.failed = make([]bool, len(s.components))
	return s, nil
}

// NewFlatSystem builds a System without redundancy: each component forms its own group.
func NewFlatSystem(name string, components []*Component, revenuePenaltyPerHour float64) (*System, error) {
	groups := make([]Group, len(components))
	for i, c := range components {
		groups[i] = Group{Components: []*Component{c}}
		if c != nil {
			groups[i].Name = c.Name
		}
	}
	return NewSystem(name, groups, revenuePenaltyPerHour)
}

// Groups returns the redundancy groups in configuration order.
func (s *System) Groups() []Group { return s.groups }

// NumComponents returns the total number of components across all groups.
func (s *System) NumComponents() int { return len(s.components) }

// Component returns the component with the given ID.
func (s *System) Component(id ComponentID) *Component { return s.components[id] }

// GroupOf returns the index of the group containing the component.
func (s *System) GroupOf(id ComponentID) int { return s.groupOf[id] }

// Lookup finds a component ID by name.
func (s *System) Lookup(name string) (ComponentID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Reset clears the failed set. The engine calls it before every trial.
func (s *System) Reset() {
	for i := range s.failed {
		s.failed[i] = false
	}
	for g := range s.failedInGroup {
		s.failedInGroup[g] = 0
	}
	s.numFailed = 0
}

// MarkFailed adds the component to the failed set. Marking an already
// failed component is a no-op.
func (s *System) MarkFailed(id ComponentID) {
	if s.failed[id] {
		return
	}
	s.failed[id] = true
	s.failedInGroup[s.groupOf[id]]++
	s.numFailed++
}

// MarkRepaired removes the component from the failed set. Repairing a
// working component is a no-op.
func (s *System) MarkRepaired(id ComponentID) {
	if !s.failed[id] {
		return
	}
	s.failed[id] = false
	s.failedInGroup[s.groupOf[id]]--
	s.numFailed--
}

// IsFailed reports whether the component is in the failed set.
func (s *System) IsFailed(id ComponentID) bool { return s.failed[id] }

// NumFailed returns the size of the failed set.
func (s *System) NumFailed() int { return s.numFailed }

// IsOperational reports whether no group has all of its members failed.
// Runs in O(number of groups).
func (s *System) IsOperational() bool {
	if s.numFailed == 0 {
		return true
	}
	for g, n := range s.failedInGroup {
		if n == len(s.groups[g].Components) {
			return false
		}
	}
	return true
}

// DownGroups returns the indices of groups whose members are all failed.
func (s *System) DownGroups() []int {
	var down []int
	for g, n := range s.failedInGroup {
		if n == len(s.groups[g].Components) {
			down = append(down, g)
		}
	}
	return down
}

// Clone returns a System sharing the immutable components but owning a
// private, empty failed set.
func (s *System) Clone() *System {
	c := *s
	c.failed = make([]bool, len(s.failed))
	c.failedInGroup = make([]int, len(s.failedInGroup))
	c.numFailed = 0
	return &c
}
