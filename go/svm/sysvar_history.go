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
	"sort"

	bin "github.com/gagliardetto/binary"
)

const (
	// MaxSlotHashes is the number of most recent slots tracked by SlotHashes.
	MaxSlotHashes = 512
	// MaxStakeHistoryEntries is the number of epochs tracked by StakeHistory.
	MaxStakeHistoryEntries = 512
	// SlotHistoryMaxEntries is the number of slots covered by SlotHistory.
	SlotHistoryMaxEntries = 1024 * 1024
)

type SlotHash struct {
	Slot uint64
	Hash Hash
}

// SlotHashes lists the hashes of recent slots, newest first.
type SlotHashes []SlotHash

// Get returns the hash recorded for the given slot.
func (s SlotHashes) Get(slot uint64) (Hash, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Slot <= slot })
	if i < len(s) && s[i].Slot == slot {
		return s[i].Hash, true
	}
	return Hash{}, false
}

// Add records a slot hash, keeping the list ordered and bounded.
func (s SlotHashes) Add(slot uint64, hash Hash) SlotHashes {
	i := sort.Search(len(s), func(i int) bool { return s[i].Slot <= slot })
	if i < len(s) && s[i].Slot == slot {
		s[i].Hash = hash
		return s
	}
	s = append(s, SlotHash{})
	copy(s[i+1:], s[i:])
	s[i] = SlotHash{Slot: slot, Hash: hash}
	if len(s) > MaxSlotHashes {
		s = s[:MaxSlotHashes]
	}
	return s
}

func (s SlotHashes) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	if err := enc.WriteUint64(uint64(len(s)), bin.LE); err != nil {
		return nil, err
	}
	for _, entry := range s {
		if err := firstError(
			enc.WriteUint64(entry.Slot, bin.LE),
			enc.WriteBytes(entry.Hash[:], false),
		); err != nil {
			return nil, err
		}
	}
	return buffer.Bytes(), nil
}

func (s *SlotHashes) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("slot hashes", data)
	n := r.length(8 + len(Hash{}))
	res := make(SlotHashes, n)
	for i := range res {
		res[i].Slot = r.uint64()
		res[i].Hash = r.hash()
	}
	if r.err != nil {
		return r.err
	}
	*s = res
	return nil
}

// SlotHistoryCheck is the result of looking up a slot in the SlotHistory.
type SlotHistoryCheck int

const (
	SlotFuture SlotHistoryCheck = iota
	SlotTooOld
	SlotFound
	SlotNotFound
)

func (c SlotHistoryCheck) String() string {
	switch c {
	case SlotFuture:
		return "Future"
	case SlotTooOld:
		return "TooOld"
	case SlotFound:
		return "Found"
	case SlotNotFound:
		return "NotFound"
	}
	return "Unknown"
}

// SlotHistory is a bit vector marking which of the most recent
// SlotHistoryMaxEntries slots have been produced.
type SlotHistory struct {
	Bits     []uint64
	NextSlot uint64
}

// DefaultSlotHistory returns a history in which only the genesis slot is
// present.
func DefaultSlotHistory() SlotHistory {
	res := SlotHistory{
		Bits:     make([]uint64, SlotHistoryMaxEntries/64),
		NextSlot: 1,
	}
	res.Bits[0] = 1
	return res
}

func (h *SlotHistory) set(slot uint64, value bool) {
	pos := slot % SlotHistoryMaxEntries
	word := pos / 64
	if word >= uint64(len(h.Bits)) {
		return
	}
	if value {
		h.Bits[word] |= 1 << (pos % 64)
	} else {
		h.Bits[word] &^= 1 << (pos % 64)
	}
}

func (h *SlotHistory) get(slot uint64) bool {
	pos := slot % SlotHistoryMaxEntries
	word := pos / 64
	if word >= uint64(len(h.Bits)) {
		return false
	}
	return h.Bits[word]&(1<<(pos%64)) != 0
}

// Add marks the slot as present and all slots skipped since the last added
// slot as missing.
func (h *SlotHistory) Add(slot uint64) {
	if slot > h.NextSlot && slot-h.NextSlot >= SlotHistoryMaxEntries {
		clear(h.Bits)
	} else {
		for skipped := h.NextSlot; skipped < slot; skipped++ {
			h.set(skipped, false)
		}
	}
	h.set(slot, true)
	h.NextSlot = slot + 1
}

func (h *SlotHistory) Check(slot uint64) SlotHistoryCheck {
	switch {
	case slot > h.Newest():
		return SlotFuture
	case slot < h.Oldest():
		return SlotTooOld
	case h.get(slot):
		return SlotFound
	}
	return SlotNotFound
}

func (h *SlotHistory) Oldest() uint64 {
	if h.NextSlot < SlotHistoryMaxEntries {
		return 0
	}
	return h.NextSlot - SlotHistoryMaxEntries
}

func (h *SlotHistory) Newest() uint64 {
	return h.NextSlot - 1
}

func (h SlotHistory) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	var err error
	if len(h.Bits) == 0 {
		err = enc.WriteUint8(0)
	} else {
		err = firstError(
			enc.WriteUint8(1),
			enc.WriteUint64(uint64(len(h.Bits)), bin.LE),
		)
		for _, word := range h.Bits {
			err = firstError(err, enc.WriteUint64(word, bin.LE))
		}
	}
	err = firstError(err,
		enc.WriteUint64(uint64(len(h.Bits))*64, bin.LE),
		enc.WriteUint64(h.NextSlot, bin.LE),
	)
	return buffer.Bytes(), err
}

func (h *SlotHistory) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("slot history", data)
	var words []uint64
	if r.bool() {
		words = make([]uint64, r.length(8))
		for i := range words {
			words[i] = r.uint64()
		}
	}
	bits := r.uint64()
	next := r.uint64()
	if r.err != nil {
		return r.err
	}
	if want := uint64(len(words)) * 64; bits != want {
		return fmt.Errorf("%w: slot history: %d bits for %d words", ErrMalformedSysvar, bits, len(words))
	}
	h.Bits = words
	h.NextSlot = next
	return nil
}

type StakeHistoryEntry struct {
	Effective    uint64
	Activating   uint64
	Deactivating uint64
}

type EpochStakeHistoryEntry struct {
	Epoch uint64
	StakeHistoryEntry
}

// StakeHistory lists the cluster-wide stake transitions per epoch, newest
// epoch first.
type StakeHistory []EpochStakeHistoryEntry

func (h StakeHistory) search(epoch uint64) int {
	return sort.Search(len(h), func(i int) bool { return h[i].Epoch <= epoch })
}

func (h StakeHistory) Get(epoch uint64) (StakeHistoryEntry, bool) {
	i := h.search(epoch)
	if i < len(h) && h[i].Epoch == epoch {
		return h[i].StakeHistoryEntry, true
	}
	return StakeHistoryEntry{}, false
}

// Add records the entry of an epoch, replacing a previous one.
func (h StakeHistory) Add(epoch uint64, entry StakeHistoryEntry) StakeHistory {
	i := h.search(epoch)
	if i < len(h) && h[i].Epoch == epoch {
		h[i].StakeHistoryEntry = entry
		return h
	}
	h = append(h, EpochStakeHistoryEntry{})
	copy(h[i+1:], h[i:])
	h[i] = EpochStakeHistoryEntry{Epoch: epoch, StakeHistoryEntry: entry}
	if len(h) > MaxStakeHistoryEntries {
		h = h[:MaxStakeHistoryEntries]
	}
	return h
}

func (h StakeHistory) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	err := enc.WriteUint64(uint64(len(h)), bin.LE)
	for _, entry := range h {
		err = firstError(err,
			enc.WriteUint64(entry.Epoch, bin.LE),
			enc.WriteUint64(entry.Effective, bin.LE),
			enc.WriteUint64(entry.Activating, bin.LE),
			enc.WriteUint64(entry.Deactivating, bin.LE),
		)
	}
	return buffer.Bytes(), err
}

func (h *StakeHistory) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("stake history", data)
	res := make(StakeHistory, r.length(32))
	for i := range res {
		res[i].Epoch = r.uint64()
		res[i].Effective = r.uint64()
		res[i].Activating = r.uint64()
		res[i].Deactivating = r.uint64()
	}
	if r.err != nil {
		return r.err
	}
	*h = res
	return nil
}
