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
	"math/big"

	"github.com/holiman/uint256"
)

// Account represents the ledger state stored at one address.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      Address
	Executable bool
	RentEpoch  uint64 // legacy field, zero if unknown
}

// AccountRecord is the account layout exchanged with an Engine. All
// addresses are kept in their raw byte form.
type AccountRecord struct {
	Lamports   uint64
	Data       []byte
	Owner      []byte
	Executable bool
	RentEpoch  uint64
}

// EncodeAccount converts an account into its engine record. The result does
// not share any memory with the input.
func EncodeAccount(account Account) AccountRecord {
	return AccountRecord{
		Lamports:   account.Lamports,
		Data:       bytes.Clone(account.Data),
		Owner:      account.Owner.Bytes(),
		Executable: account.Executable,
		RentEpoch:  account.RentEpoch,
	}
}

// DecodeAccount converts an engine record into an Account. It fails if the
// owner is not a valid address.
func DecodeAccount(record AccountRecord) (Account, error) {
	owner, err := AddressFromBytes(record.Owner)
	if err != nil {
		return Account{}, fmt.Errorf("invalid account owner: %w", err)
	}
	return Account{
		Lamports:   record.Lamports,
		Data:       bytes.Clone(record.Data),
		Owner:      owner,
		Executable: record.Executable,
		RentEpoch:  record.RentEpoch,
	}, nil
}

func (a *Account) Equal(other *Account) bool {
	return a.Lamports == other.Lamports &&
		bytes.Equal(a.Data, other.Data) &&
		a.Owner == other.Owner &&
		a.Executable == other.Executable &&
		a.RentEpoch == other.RentEpoch
}

func (a *Account) Clone() Account {
	res := *a
	res.Data = bytes.Clone(a.Data)
	return res
}

// Diff lists the differences between two accounts in a human readable form.
func (a *Account) Diff(other *Account) []string {
	var res []string
	if a.Lamports != other.Lamports {
		res = append(res, fmt.Sprintf("different lamports: %d != %d", a.Lamports, other.Lamports))
	}
	if !bytes.Equal(a.Data, other.Data) {
		res = append(res, fmt.Sprintf("different data: 0x%x != 0x%x", a.Data, other.Data))
	}
	if a.Owner != other.Owner {
		res = append(res, fmt.Sprintf("different owner: %v != %v", a.Owner, other.Owner))
	}
	if a.Executable != other.Executable {
		res = append(res, fmt.Sprintf("different executable flag: %t != %t", a.Executable, other.Executable))
	}
	if a.RentEpoch != other.RentEpoch {
		res = append(res, fmt.Sprintf("different rent epoch: %d != %d", a.RentEpoch, other.RentEpoch))
	}
	return res
}

// Uint64FromBig converts an arbitrary-precision integer into the 64-bit form
// used by the engine. Negative values and values exceeding 2^64-1 fail with
// ErrOverflow. A nil input is treated as zero.
func Uint64FromBig(value *big.Int) (uint64, error) {
	if value == nil {
		return 0, nil
	}
	if value.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative value %v", ErrOverflow, value)
	}
	v, overflow := uint256.FromBig(value)
	if overflow || !v.IsUint64() {
		return 0, fmt.Errorf("%w: %v", ErrOverflow, value)
	}
	return v.Uint64(), nil
}

// BigFromUint64 is the lossless inverse of Uint64FromBig.
func BigFromUint64(value uint64) *big.Int {
	return new(big.Int).SetUint64(value)
}
