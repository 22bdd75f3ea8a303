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
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// Address is the 32-byte public key identifying an account.
type Address [32]byte

// Signature is a 64-byte ed25519 transaction signature.
type Signature [64]byte

// Hash is a 32-byte digest, used for blockhashes and slot hashes.
type Hash [32]byte

// Well-known addresses of the runtime.
var (
	SystemProgramID            = Address{}
	SysvarOwnerID              = MustAddressFromBase58("Sysvar1111111111111111111111111111111111111")
	ClockSysvarID              = MustAddressFromBase58("SysvarC1ock11111111111111111111111111111111")
	RentSysvarID               = MustAddressFromBase58("SysvarRent111111111111111111111111111111111")
	EpochScheduleSysvarID      = MustAddressFromBase58("SysvarEpochSchedu1e111111111111111111111111")
	EpochRewardsSysvarID       = MustAddressFromBase58("SysvarEpochRewards1111111111111111111111111")
	SlotHashesSysvarID         = MustAddressFromBase58("SysvarS1otHashes111111111111111111111111111")
	SlotHistorySysvarID        = MustAddressFromBase58("SysvarS1otHistory11111111111111111111111111")
	StakeHistorySysvarID       = MustAddressFromBase58("SysvarStakeHistory1111111111111111111111111")
	LastRestartSlotSysvarID    = MustAddressFromBase58("SysvarLastRestartS1ot1111111111111111111111")
	NativeLoaderID             = MustAddressFromBase58("NativeLoader1111111111111111111111111111111")
	BPFLoaderUpgradeableID     = MustAddressFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	ComputeBudgetProgramID     = MustAddressFromBase58("ComputeBudget111111111111111111111111111111")
	Ed25519PrecompileProgramID = MustAddressFromBase58("Ed25519SigVerify111111111111111111111111111")
)

// AddressFromBytes converts the raw engine representation of an address into
// an Address. The input must be exactly 32 bytes long.
func AddressFromBytes(data []byte) (Address, error) {
	var res Address
	if len(data) != len(res) {
		return res, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedAddress, len(res), len(data))
	}
	copy(res[:], data)
	return res, nil
}

// AddressFromBase58 parses the textual representation of an address.
func AddressFromBase58(text string) (Address, error) {
	var res Address
	if err := decodeBase58(res[:], text); err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrMalformedAddress, err)
	}
	return res, nil
}

// MustAddressFromBase58 is like AddressFromBase58 but panics on invalid input.
// It is intended for the initialization of constants.
func MustAddressFromBase58(text string) Address {
	res, err := AddressFromBase58(text)
	if err != nil {
		panic(err)
	}
	return res
}

// Bytes returns a fresh copy of the raw address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(data []byte) error {
	res, err := AddressFromBase58(string(data))
	if err != nil {
		return err
	}
	*a = res
	return nil
}

func SignatureFromBytes(data []byte) (Signature, error) {
	var res Signature
	if len(data) != len(res) {
		return res, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, len(res), len(data))
	}
	copy(res[:], data)
	return res, nil
}

func SignatureFromBase58(text string) (Signature, error) {
	var res Signature
	if err := decodeBase58(res[:], text); err != nil {
		return Signature{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return res, nil
}

func (s Signature) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// IsZero reports whether the signature is all zeros, which is how an
// unsigned signer slot is represented on the wire.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(data []byte) error {
	res, err := SignatureFromBase58(string(data))
	if err != nil {
		return err
	}
	*s = res
	return nil
}

func HashFromBytes(data []byte) (Hash, error) {
	var res Hash
	if len(data) != len(res) {
		return res, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedHash, len(res), len(data))
	}
	copy(res[:], data)
	return res, nil
}

func HashFromBase58(text string) (Hash, error) {
	var res Hash
	if err := decodeBase58(res[:], text); err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return res, nil
}

func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(data []byte) error {
	res, err := HashFromBase58(string(data))
	if err != nil {
		return err
	}
	*h = res
	return nil
}

// decodeBase58 decodes text into trg, requiring the decoded length to match
// the target length exactly.
func decodeBase58(trg []byte, text string) error {
	if len(text) == 0 {
		return fmt.Errorf("empty input")
	}
	// The decoder signals invalid characters by returning an empty result.
	data := base58.Decode(text)
	if len(data) == 0 {
		return fmt.Errorf("invalid base58 text %q", text)
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid length, wanted %d bytes, got %d", want, got)
	}
	copy(trg, data)
	return nil
}
