// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package web3

import (
	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
)

// AccountInfo is the account representation of this front end.
type AccountInfo struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Executable bool
	Data       []byte
	RentEpoch  uint64
}

func accountFromNative(account *svm.Account) *AccountInfo {
	if account == nil {
		return nil
	}
	return &AccountInfo{
		Lamports:   account.Lamports,
		Owner:      solana.PublicKey(account.Owner),
		Executable: account.Executable,
		Data:       append([]byte(nil), account.Data...),
		RentEpoch:  account.RentEpoch,
	}
}

func accountToNative(account AccountInfo) svm.Account {
	return svm.Account{
		Lamports:   account.Lamports,
		Owner:      svm.Address(account.Owner),
		Executable: account.Executable,
		Data:       append([]byte(nil), account.Data...),
		RentEpoch:  account.RentEpoch,
	}
}

// InnerInstruction is an instruction issued by a program. Account indices
// refer to the account keys of the transaction message.
type InnerInstruction struct {
	Instruction solana.CompiledInstruction
	StackHeight uint8
}

type TransactionReturnData struct {
	ProgramID solana.PublicKey
	Data      []byte
}

type TransactionMetadata struct {
	Signature            solana.Signature
	Logs                 []string
	InnerInstructions    [][]InnerInstruction
	ComputeUnitsConsumed uint64
	ReturnData           TransactionReturnData
	Fee                  uint64
}

func (m *TransactionMetadata) PrettyLogs() string {
	return svm.PrettyLogs(m.Logs)
}

// FailedTransactionMetadata describes a transaction that failed on chain.
// The signature in Meta is zero if the engine rejected the transaction
// before attributing a signature to it.
type FailedTransactionMetadata struct {
	Err  svm.TransactionError
	Meta TransactionMetadata
}

// TransactionResult is either a *TransactionMetadata or a
// *FailedTransactionMetadata.
type TransactionResult interface {
	IsSuccess() bool
	Metadata() *TransactionMetadata
}

func (m *TransactionMetadata) IsSuccess() bool                { return true }
func (m *TransactionMetadata) Metadata() *TransactionMetadata { return m }

func (f *FailedTransactionMetadata) IsSuccess() bool                { return false }
func (f *FailedTransactionMetadata) Metadata() *TransactionMetadata { return &f.Meta }

type AccountEntry struct {
	Address solana.PublicKey
	Account AccountInfo
}

// SimulatedTransactionInfo is the outcome of a successful simulation,
// including the post-execution state of the writable accounts.
type SimulatedTransactionInfo struct {
	Meta         TransactionMetadata
	PostAccounts []AccountEntry
}

// SimulateResult is either a *SimulatedTransactionInfo or a
// *FailedTransactionMetadata.
type SimulateResult interface {
	IsSuccess() bool
	Metadata() *TransactionMetadata
}

func (s *SimulatedTransactionInfo) IsSuccess() bool                { return true }
func (s *SimulatedTransactionInfo) Metadata() *TransactionMetadata { return &s.Meta }

func metadataFromOutcome(outcome *adapter.Outcome) TransactionMetadata {
	res := TransactionMetadata{
		Signature:            solana.Signature(outcome.Signature),
		Logs:                 append([]string(nil), outcome.Logs...),
		ComputeUnitsConsumed: outcome.ComputeUnitsConsumed,
		Fee:                  outcome.Fee,
	}
	if outcome.ReturnData != nil {
		res.ReturnData = TransactionReturnData{
			ProgramID: solana.PublicKey(outcome.ReturnData.ProgramID),
			Data:      append([]byte(nil), outcome.ReturnData.Data...),
		}
	}
	if outcome.InnerInstructions != nil {
		res.InnerInstructions = make([][]InnerInstruction, len(outcome.InnerInstructions))
		for i, list := range outcome.InnerInstructions {
			res.InnerInstructions[i] = make([]InnerInstruction, len(list))
			for j, inner := range list {
				res.InnerInstructions[i][j] = innerFromOutcome(inner)
			}
		}
	}
	return res
}

func innerFromOutcome(inner adapter.InnerInstruction) InnerInstruction {
	accounts := make([]uint16, len(inner.Accounts))
	for i, account := range inner.Accounts {
		accounts[i] = uint16(account.Index)
	}
	return InnerInstruction{
		Instruction: solana.CompiledInstruction{
			ProgramIDIndex: uint16(inner.Program.Index),
			Accounts:       accounts,
			Data:           solana.Base58(append([]byte(nil), inner.Data...)),
		},
		StackHeight: inner.StackHeight,
	}
}

func resultFromOutcome(outcome *adapter.Outcome) TransactionResult {
	if outcome == nil {
		return nil
	}
	meta := metadataFromOutcome(outcome)
	if outcome.IsSuccess() {
		return &meta
	}
	return &FailedTransactionMetadata{Err: *outcome.Err, Meta: meta}
}

func simulationFromOutcome(outcome *adapter.SimulationOutcome) SimulateResult {
	meta := metadataFromOutcome(&outcome.Outcome)
	if !outcome.IsSuccess() {
		return &FailedTransactionMetadata{Err: *outcome.Err, Meta: meta}
	}
	res := &SimulatedTransactionInfo{Meta: meta}
	for _, entry := range outcome.PostAccounts {
		res.PostAccounts = append(res.PostAccounts, AccountEntry{
			Address: solana.PublicKey(entry.Address),
			Account: *accountFromNative(&entry.Account),
		})
	}
	return res
}

// wireTransaction converts a transaction into its wire form. Slots the
// transaction has not been signed for are zero.
func wireTransaction(tx *solana.Transaction) (svm.WireTransaction, error) {
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return svm.WireTransaction{}, err
	}
	signatures := make([]svm.Signature, max(len(tx.Signatures), int(tx.Message.Header.NumRequiredSignatures)))
	for i, sig := range tx.Signatures {
		signatures[i] = svm.Signature(sig)
	}
	return svm.WireTransaction{Signatures: signatures, Message: message}, nil
}
