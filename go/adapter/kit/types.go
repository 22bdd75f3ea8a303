// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package kit

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
)

// Address is the base58 text form of an account address.
type Address string

func addressOf(address svm.Address) Address {
	return Address(address.String())
}

func (a Address) decode() (svm.Address, error) {
	return svm.AddressFromBase58(string(a))
}

// AccountInfo is an account together with its address. Amounts are
// arbitrary precision integers; values not fitting into 64 bits are
// rejected when handed to the engine.
type AccountInfo struct {
	Address    Address
	Lamports   *big.Int
	Owner      Address
	Executable bool
	Data       []byte
	// RentEpoch defaults to zero if nil.
	RentEpoch *big.Int
}

func accountFromNative(address svm.Address, account *svm.Account) *AccountInfo {
	if account == nil {
		return nil
	}
	return &AccountInfo{
		Address:    addressOf(address),
		Lamports:   svm.BigFromUint64(account.Lamports),
		Owner:      addressOf(account.Owner),
		Executable: account.Executable,
		Data:       append([]byte(nil), account.Data...),
		RentEpoch:  svm.BigFromUint64(account.RentEpoch),
	}
}

func accountToNative(account AccountInfo) (svm.Address, svm.Account, error) {
	address, err := account.Address.decode()
	if err != nil {
		return svm.Address{}, svm.Account{}, fmt.Errorf("account address: %w", err)
	}
	owner, err := account.Owner.decode()
	if err != nil {
		return svm.Address{}, svm.Account{}, fmt.Errorf("account owner: %w", err)
	}
	lamports, err := svm.Uint64FromBig(account.Lamports)
	if err != nil {
		return svm.Address{}, svm.Account{}, fmt.Errorf("account lamports: %w", err)
	}
	rentEpoch, err := svm.Uint64FromBig(account.RentEpoch)
	if err != nil {
		return svm.Address{}, svm.Account{}, fmt.Errorf("account rent epoch: %w", err)
	}
	return address, svm.Account{
		Lamports:   lamports,
		Owner:      owner,
		Executable: account.Executable,
		Data:       append([]byte(nil), account.Data...),
		RentEpoch:  rentEpoch,
	}, nil
}

// Transaction is a serialized message together with the signatures
// collected for it, keyed by the address of the signer.
type Transaction struct {
	MessageBytes []byte
	Signatures   map[Address][]byte
}

// wireTransaction orders the signatures by the signer positions of the
// message. Signers without an entry, or with a nil entry, are left unsigned.
func (tx Transaction) wireTransaction() (svm.WireTransaction, error) {
	header, err := svm.ParseMessageHeader(tx.MessageBytes)
	if err != nil {
		return svm.WireTransaction{}, err
	}
	keys, err := svm.StaticAccountKeys(tx.MessageBytes)
	if err != nil {
		return svm.WireTransaction{}, err
	}
	required := int(header.NumRequiredSignatures)
	if required > len(keys) {
		return svm.WireTransaction{}, fmt.Errorf("%w: %d signers but only %d account keys", svm.ErrMalformedMessage, required, len(keys))
	}
	signatures := make([]svm.Signature, required)
	for i := range signatures {
		raw := tx.Signatures[addressOf(keys[i])]
		if raw == nil {
			continue
		}
		if signatures[i], err = svm.SignatureFromBytes(raw); err != nil {
			return svm.WireTransaction{}, fmt.Errorf("signature of %v: %w", keys[i], err)
		}
	}
	return svm.WireTransaction{
		Signatures: signatures,
		Message:    append([]byte(nil), tx.MessageBytes...),
	}, nil
}

// InnerInstruction is an instruction issued by a program. Addresses are
// empty if the account index could not be resolved against the static
// account keys of the message.
type InnerInstruction struct {
	ProgramAddress      Address
	ProgramAddressIndex uint8
	Accounts            []Address
	AccountIndices      []uint8
	Data                []byte
	StackHeight         uint8
}

type ReturnData struct {
	ProgramAddress Address
	Data           []byte
}

// TransactionMetadata describes an executed transaction. Failed transactions
// carry a non-nil Err; their signature is empty if the engine did not
// attribute one.
type TransactionMetadata struct {
	Signature            string
	Logs                 []string
	InnerInstructions    [][]InnerInstruction
	ComputeUnitsConsumed *big.Int
	ReturnData           *ReturnData
	Fee                  *big.Int
	Err                  *svm.TransactionError
}

func (m *TransactionMetadata) IsSuccess() bool {
	return m.Err == nil
}

func (m *TransactionMetadata) PrettyLogs() string {
	return svm.PrettyLogs(m.Logs)
}

// SimulatedTransaction is the result of a simulation. PostAccounts is only
// set if the simulation succeeded.
type SimulatedTransaction struct {
	TransactionMetadata
	PostAccounts []AccountInfo
}

func resolved(ref adapter.AccountRef) Address {
	if !ref.Resolved {
		return ""
	}
	return addressOf(ref.Address)
}

func metadataFromOutcome(outcome *adapter.Outcome) *TransactionMetadata {
	res := &TransactionMetadata{
		Logs:                 append([]string(nil), outcome.Logs...),
		ComputeUnitsConsumed: svm.BigFromUint64(outcome.ComputeUnitsConsumed),
		Fee:                  svm.BigFromUint64(outcome.Fee),
	}
	if !outcome.Signature.IsZero() {
		res.Signature = outcome.Signature.String()
	}
	if outcome.Err != nil {
		err := *outcome.Err
		res.Err = &err
	}
	if outcome.ReturnData != nil {
		res.ReturnData = &ReturnData{
			ProgramAddress: addressOf(outcome.ReturnData.ProgramID),
			Data:           append([]byte(nil), outcome.ReturnData.Data...),
		}
	}
	if outcome.InnerInstructions != nil {
		res.InnerInstructions = make([][]InnerInstruction, len(outcome.InnerInstructions))
		for i, list := range outcome.InnerInstructions {
			res.InnerInstructions[i] = make([]InnerInstruction, len(list))
			for j, inner := range list {
				converted := InnerInstruction{
					ProgramAddress:      resolved(inner.Program),
					ProgramAddressIndex: inner.Program.Index,
					Accounts:            make([]Address, len(inner.Accounts)),
					AccountIndices:      make([]uint8, len(inner.Accounts)),
					Data:                append([]byte(nil), inner.Data...),
					StackHeight:         inner.StackHeight,
				}
				for k, account := range inner.Accounts {
					converted.Accounts[k] = resolved(account)
					converted.AccountIndices[k] = account.Index
				}
				res.InnerInstructions[i][j] = converted
			}
		}
	}
	return res
}

func simulationFromOutcome(outcome *adapter.SimulationOutcome) *SimulatedTransaction {
	res := &SimulatedTransaction{TransactionMetadata: *metadataFromOutcome(&outcome.Outcome)}
	for _, entry := range outcome.PostAccounts {
		res.PostAccounts = append(res.PostAccounts, *accountFromNative(entry.Address, &entry.Account))
	}
	return res
}
