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
	"math"
	"math/bits"

	bin "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
)

// Sysvar accounts are encoded in the little-endian bincode layout programs
// read them in. All types in this file implement encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler for that layout. Decoding ignores trailing bytes
// since several sysvar accounts are allocated with a fixed size.

// Clock is the runtime view of slot and wall-clock time.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

func (c Clock) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	err := firstError(
		enc.WriteUint64(c.Slot, bin.LE),
		enc.WriteInt64(c.EpochStartTimestamp, bin.LE),
		enc.WriteUint64(c.Epoch, bin.LE),
		enc.WriteUint64(c.LeaderScheduleEpoch, bin.LE),
		enc.WriteInt64(c.UnixTimestamp, bin.LE),
	)
	return buffer.Bytes(), err
}

func (c *Clock) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("clock", data)
	c.Slot = r.uint64()
	c.EpochStartTimestamp = r.int64()
	c.Epoch = r.uint64()
	c.LeaderScheduleEpoch = r.uint64()
	c.UnixTimestamp = r.int64()
	return r.err
}

const (
	DefaultLamportsPerByteYear = 1_000_000_000 / 100 * 365 / (1024 * 1024)
	DefaultExemptionThreshold  = 2.0
	DefaultBurnPercent         = 50
	// AccountStorageOverhead is the number of bytes every account is charged
	// for in addition to its data.
	AccountStorageOverhead = 128

	defaultSlotsPerEpoch = 432_000
)

// Rent holds the parameters of rent collection.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		BurnPercent:         DefaultBurnPercent,
	}
}

// FreeRent returns rent parameters that charge nothing.
func FreeRent() Rent {
	res := DefaultRent()
	res.LamportsPerByteYear = 0
	return res
}

// RentWithSlotsPerEpoch scales the default rent to an epoch length.
func RentWithSlotsPerEpoch(slotsPerEpoch uint64) Rent {
	ratio := float64(slotsPerEpoch) / defaultSlotsPerEpoch
	res := DefaultRent()
	res.ExemptionThreshold = DefaultExemptionThreshold * ratio
	res.LamportsPerByteYear = uint64(DefaultLamportsPerByteYear / ratio)
	return res
}

// MinimumBalance is the balance an account with the given data size needs to
// be exempt from rent.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	bytesYear := float64((AccountStorageOverhead + dataLen) * r.LamportsPerByteYear)
	return uint64(bytesYear * r.ExemptionThreshold)
}

func (r Rent) IsExempt(balance, dataLen uint64) bool {
	return balance >= r.MinimumBalance(dataLen)
}

// DueAmount is the rent owed by a non-exempt account over the given years.
func (r Rent) DueAmount(dataLen uint64, yearsElapsed float64) uint64 {
	bytesYear := float64((AccountStorageOverhead + dataLen) * r.LamportsPerByteYear)
	return uint64(bytesYear * yearsElapsed)
}

// Due returns the rent owed by an account. The second result is false if the
// account is exempt.
func (r Rent) Due(balance, dataLen uint64, yearsElapsed float64) (uint64, bool) {
	if r.IsExempt(balance, dataLen) {
		return 0, false
	}
	return r.DueAmount(dataLen, yearsElapsed), true
}

// CalculateBurn splits collected rent into the burned share and the share
// distributed to validators.
func (r Rent) CalculateBurn(collected uint64) (burned, distributed uint64) {
	burned = collected * uint64(r.BurnPercent) / 100
	return burned, collected - burned
}

func (r Rent) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	err := firstError(
		enc.WriteUint64(r.LamportsPerByteYear, bin.LE),
		enc.WriteFloat64(r.ExemptionThreshold, bin.LE),
		enc.WriteUint8(r.BurnPercent),
	)
	return buffer.Bytes(), err
}

func (r *Rent) UnmarshalBinary(data []byte) error {
	rd := newSysvarReader("rent", data)
	r.LamportsPerByteYear = rd.uint64()
	r.ExemptionThreshold = rd.float64()
	r.BurnPercent = rd.uint8()
	return rd.err
}

// minimumSlotsPerEpoch is the length of the first epoch during warmup.
const minimumSlotsPerEpoch = 32

// EpochSchedule describes how slots are grouped into epochs.
type EpochSchedule struct {
	SlotsPerEpoch            uint64
	LeaderScheduleSlotOffset uint64
	Warmup                   bool
	FirstNormalEpoch         uint64
	FirstNormalSlot          uint64
}

func DefaultEpochSchedule() EpochSchedule {
	return NewEpochSchedule(defaultSlotsPerEpoch, defaultSlotsPerEpoch, true)
}

// NewEpochSchedule derives the first normal epoch and slot from the epoch
// length. With warmup, epochs start at minimumSlotsPerEpoch slots and double
// in length until they reach slotsPerEpoch.
func NewEpochSchedule(slotsPerEpoch, leaderScheduleSlotOffset uint64, warmup bool) EpochSchedule {
	res := EpochSchedule{
		SlotsPerEpoch:            slotsPerEpoch,
		LeaderScheduleSlotOffset: leaderScheduleSlotOffset,
		Warmup:                   warmup,
	}
	if warmup && slotsPerEpoch > minimumSlotsPerEpoch {
		nextPowerOfTwo := uint64(1) << bits.Len64(slotsPerEpoch-1)
		res.FirstNormalEpoch = uint64(bits.TrailingZeros64(nextPowerOfTwo) - bits.TrailingZeros64(minimumSlotsPerEpoch))
		res.FirstNormalSlot = nextPowerOfTwo - minimumSlotsPerEpoch
	}
	return res
}

// EpochAndSlotIndex returns the epoch containing the slot and the position of
// the slot within it.
func (s EpochSchedule) EpochAndSlotIndex(slot uint64) (epoch, index uint64) {
	if slot < s.FirstNormalSlot {
		nextPowerOfTwo := uint64(1) << bits.Len64(slot+minimumSlotsPerEpoch)
		epoch = uint64(bits.TrailingZeros64(nextPowerOfTwo) - bits.TrailingZeros64(minimumSlotsPerEpoch) - 1)
		epochLen := uint64(1) << (epoch + uint64(bits.TrailingZeros64(minimumSlotsPerEpoch)))
		return epoch, slot - (epochLen - minimumSlotsPerEpoch)
	}
	if s.SlotsPerEpoch == 0 {
		return s.FirstNormalEpoch, 0
	}
	normal := slot - s.FirstNormalSlot
	return s.FirstNormalEpoch + normal/s.SlotsPerEpoch, normal % s.SlotsPerEpoch
}

func (s EpochSchedule) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	err := firstError(
		enc.WriteUint64(s.SlotsPerEpoch, bin.LE),
		enc.WriteUint64(s.LeaderScheduleSlotOffset, bin.LE),
		enc.WriteBool(s.Warmup),
		enc.WriteUint64(s.FirstNormalEpoch, bin.LE),
		enc.WriteUint64(s.FirstNormalSlot, bin.LE),
	)
	return buffer.Bytes(), err
}

func (s *EpochSchedule) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("epoch schedule", data)
	s.SlotsPerEpoch = r.uint64()
	s.LeaderScheduleSlotOffset = r.uint64()
	s.Warmup = r.bool()
	s.FirstNormalEpoch = r.uint64()
	s.FirstNormalSlot = r.uint64()
	return r.err
}

// EpochRewards tracks the progress of the partitioned reward distribution of
// the current epoch.
type EpochRewards struct {
	DistributionStartingBlockHeight uint64
	NumPartitions                   uint64
	ParentBlockhash                 Hash
	// TotalPoints is a 128-bit value on the ledger.
	TotalPoints        uint256.Int
	TotalRewards       uint64
	DistributedRewards uint64
	Active             bool
}

func (r EpochRewards) MarshalBinary() ([]byte, error) {
	if r.TotalPoints.BitLen() > 128 {
		return nil, fmt.Errorf("%w: total points exceed 128 bits", ErrOverflow)
	}
	var buffer bytes.Buffer
	enc := bin.NewBinEncoder(&buffer)
	err := firstError(
		enc.WriteUint64(r.DistributionStartingBlockHeight, bin.LE),
		enc.WriteUint64(r.NumPartitions, bin.LE),
		enc.WriteBytes(r.ParentBlockhash[:], false),
		enc.WriteUint64(r.TotalPoints[0], bin.LE),
		enc.WriteUint64(r.TotalPoints[1], bin.LE),
		enc.WriteUint64(r.TotalRewards, bin.LE),
		enc.WriteUint64(r.DistributedRewards, bin.LE),
		enc.WriteBool(r.Active),
	)
	return buffer.Bytes(), err
}

func (r *EpochRewards) UnmarshalBinary(data []byte) error {
	rd := newSysvarReader("epoch rewards", data)
	r.DistributionStartingBlockHeight = rd.uint64()
	r.NumPartitions = rd.uint64()
	r.ParentBlockhash = rd.hash()
	r.TotalPoints = uint256.Int{rd.uint64(), rd.uint64(), 0, 0}
	r.TotalRewards = rd.uint64()
	r.DistributedRewards = rd.uint64()
	r.Active = rd.bool()
	return rd.err
}

// LastRestartSlot is the slot of the most recent cluster restart.
type LastRestartSlot struct {
	LastRestartSlot uint64
}

func (s LastRestartSlot) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	err := bin.NewBinEncoder(&buffer).WriteUint64(s.LastRestartSlot, bin.LE)
	return buffer.Bytes(), err
}

func (s *LastRestartSlot) UnmarshalBinary(data []byte) error {
	r := newSysvarReader("last restart slot", data)
	s.LastRestartSlot = r.uint64()
	return r.err
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// sysvarReader decodes a sequence of values, remembering the first failure.
// Reads after a failure return zero values.
type sysvarReader struct {
	name string
	dec  *bin.Decoder
	err  error
}

func newSysvarReader(name string, data []byte) *sysvarReader {
	return &sysvarReader{name: name, dec: bin.NewBinDecoder(data)}
}

func (r *sysvarReader) fail(err error) {
	if r.err == nil && err != nil {
		r.err = fmt.Errorf("%w: %s: %v", ErrMalformedSysvar, r.name, err)
	}
}

func (r *sysvarReader) uint64() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint64(bin.LE)
	r.fail(err)
	return v
}

func (r *sysvarReader) int64() int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadInt64(bin.LE)
	r.fail(err)
	return v
}

func (r *sysvarReader) float64() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadFloat64(bin.LE)
	r.fail(err)
	return v
}

func (r *sysvarReader) uint8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.ReadUint8()
	r.fail(err)
	return v
}

func (r *sysvarReader) bool() bool {
	return r.uint8() != 0
}

func (r *sysvarReader) hash() Hash {
	var res Hash
	if r.err != nil {
		return res
	}
	raw, err := r.dec.ReadNBytes(len(res))
	r.fail(err)
	copy(res[:], raw)
	return res
}

// length reads a bincode collection length and checks that the remaining
// data can hold that many elements of the given size.
func (r *sysvarReader) length(elementSize int) int {
	n := r.uint64()
	if r.err != nil {
		return 0
	}
	if n > math.MaxInt32 || int(n)*elementSize > r.dec.Remaining() {
		r.fail(fmt.Errorf("length %d exceeds available data", n))
		return 0
	}
	return int(n)
}
