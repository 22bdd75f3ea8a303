// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package svm

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NotActivated is the activation slot reported to the engine for features
// that are known but not active.
const NotActivated = ^uint64(0)

// FeatureSet is a collection of feature ids, each either active since a
// given slot or explicitly inactive. The adapter never interprets the ids.
type FeatureSet struct {
	active   map[Address]uint64
	inactive map[Address]struct{}
}

func NewFeatureSet() *FeatureSet {
	return &FeatureSet{
		active:   map[Address]uint64{},
		inactive: map[Address]struct{}{},
	}
}

// Activate marks the feature as active since the given slot.
func (s *FeatureSet) Activate(id Address, slot uint64) {
	delete(s.inactive, id)
	s.active[id] = slot
}

// Deactivate marks the feature as known but inactive.
func (s *FeatureSet) Deactivate(id Address) {
	delete(s.active, id)
	s.inactive[id] = struct{}{}
}

func (s *FeatureSet) IsActive(id Address) bool {
	_, found := s.active[id]
	return found
}

// ActivatedSlot returns the slot the feature got activated at.
func (s *FeatureSet) ActivatedSlot(id Address) (uint64, bool) {
	slot, found := s.active[id]
	return slot, found
}

// Active returns the ids of all active features in ascending order.
func (s *FeatureSet) Active() []Address {
	return sortedAddresses(maps.Keys(s.active))
}

// Inactive returns the ids of all inactive features in ascending order.
func (s *FeatureSet) Inactive() []Address {
	return sortedAddresses(maps.Keys(s.inactive))
}

func (s *FeatureSet) NumActive() int {
	return len(s.active)
}

func (s *FeatureSet) NumInactive() int {
	return len(s.inactive)
}

func (s *FeatureSet) Clone() *FeatureSet {
	return &FeatureSet{
		active:   maps.Clone(s.active),
		inactive: maps.Clone(s.inactive),
	}
}

func sortedAddresses(list []Address) []Address {
	slices.SortFunc(list, func(a, b Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return list
}

// ToActivationPairs converts a feature set into the paired list form accepted
// by the engine. Active features come first, followed by inactive ones
// carrying NotActivated as their slot.
func ToActivationPairs(set *FeatureSet) ([][]byte, []uint64) {
	if set == nil {
		return nil, nil
	}
	ids := make([][]byte, 0, set.NumActive()+set.NumInactive())
	slots := make([]uint64, 0, cap(ids))
	for _, id := range set.Active() {
		ids = append(ids, id.Bytes())
		slots = append(slots, set.active[id])
	}
	for _, id := range set.Inactive() {
		ids = append(ids, id.Bytes())
		slots = append(slots, NotActivated)
	}
	return ids, slots
}

// FromActivationPairs is the inverse of ToActivationPairs.
func FromActivationPairs(ids [][]byte, slots []uint64) (*FeatureSet, error) {
	if len(ids) != len(slots) {
		return nil, fmt.Errorf("mismatching number of feature ids (%d) and slots (%d)", len(ids), len(slots))
	}
	res := NewFeatureSet()
	for i, raw := range ids {
		id, err := AddressFromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid feature id at position %d: %w", i, err)
		}
		if slots[i] == NotActivated {
			res.Deactivate(id)
		} else {
			res.Activate(id, slots[i])
		}
	}
	return res, nil
}
