// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package adapter

import (
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/svm"
)

// AccountRef is an account referenced by index into the account keys of a
// transaction message. Indices pointing beyond the static keys of the
// message, e.g. into address lookup tables, are not resolved.
type AccountRef struct {
	Index    uint8
	Address  svm.Address
	Resolved bool
}

type InnerInstruction struct {
	Program     AccountRef
	Accounts    []AccountRef
	Data        []byte
	StackHeight uint8
}

type ReturnData struct {
	ProgramID svm.Address
	Data      []byte
}

// Outcome is the result of executing a transaction. Failed transactions are
// recognized by a non-nil Err.
type Outcome struct {
	// Signature identifies the transaction. For failed transactions it is
	// best-effort: engines may not attribute a signature to transactions
	// rejected early, in which case it is zero.
	Signature            svm.Signature
	Logs                 []string
	InnerInstructions    [][]InnerInstruction
	ComputeUnitsConsumed uint64
	ReturnData           *ReturnData
	Fee                  uint64
	Err                  *svm.TransactionError
}

func (o *Outcome) IsSuccess() bool {
	return o.Err == nil
}

func (o *Outcome) PrettyLogs() string {
	return svm.PrettyLogs(o.Logs)
}

type AddressAndAccount struct {
	Address svm.Address
	Account svm.Account
}

// SimulationOutcome is the result of a simulation. PostAccounts is only
// populated for successful simulations.
type SimulationOutcome struct {
	Outcome
	PostAccounts []AddressAndAccount
}

func translateResult(result svm.TransactionResult, keys []svm.Address) (*Outcome, error) {
	switch {
	case result.Success != nil:
		return translateMetadata(result.Success, keys, true)
	case result.Failure != nil:
		return translateFailure(result.Failure, keys)
	}
	return nil, fmt.Errorf("engine returned an empty transaction result")
}

func translateSimulation(result svm.SimulateResult, keys []svm.Address) (*SimulationOutcome, error) {
	switch {
	case result.Success != nil:
		outcome, err := translateMetadata(&result.Success.Meta, keys, true)
		if err != nil {
			return nil, err
		}
		res := &SimulationOutcome{
			Outcome:      *outcome,
			PostAccounts: make([]AddressAndAccount, 0, len(result.Success.PostAccounts)),
		}
		for _, entry := range result.Success.PostAccounts {
			address, err := svm.AddressFromBytes(entry.Address)
			if err != nil {
				return nil, fmt.Errorf("invalid post account: %w", err)
			}
			account, err := svm.DecodeAccount(entry.Account)
			if err != nil {
				return nil, fmt.Errorf("invalid post account %v: %w", address, err)
			}
			res.PostAccounts = append(res.PostAccounts, AddressAndAccount{Address: address, Account: account})
		}
		return res, nil
	case result.Failure != nil:
		outcome, err := translateFailure(result.Failure, keys)
		if err != nil {
			return nil, err
		}
		return &SimulationOutcome{Outcome: *outcome}, nil
	}
	return nil, fmt.Errorf("engine returned an empty simulation result")
}

func translateFailure(failure *svm.FailedTransactionMetadata, keys []svm.Address) (*Outcome, error) {
	res, err := translateMetadata(&failure.Meta, keys, false)
	if err != nil {
		return nil, err
	}
	txErr := failure.Err
	if txErr.Instruction != nil {
		ixErr := *txErr.Instruction
		txErr.Instruction = &ixErr
	}
	res.Err = &txErr
	return res, nil
}

// translateMetadata converts engine metadata. Successful transactions must
// carry a valid signature; for failed ones a malformed or missing signature
// is replaced by the zero signature.
func translateMetadata(meta *svm.TransactionMetadata, keys []svm.Address, success bool) (*Outcome, error) {
	res := &Outcome{
		Logs:                 append([]string(nil), meta.Logs...),
		ComputeUnitsConsumed: meta.ComputeUnitsConsumed,
		Fee:                  meta.Fee,
	}

	signature, err := svm.SignatureFromBytes(meta.Signature)
	if err == nil {
		res.Signature = signature
	} else if success {
		return nil, fmt.Errorf("invalid transaction signature: %w", err)
	}

	if len(meta.ReturnData.ProgramID) > 0 || len(meta.ReturnData.Data) > 0 {
		programID, err := svm.AddressFromBytes(meta.ReturnData.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("invalid return data program: %w", err)
		}
		if !programID.IsZero() || len(meta.ReturnData.Data) > 0 {
			res.ReturnData = &ReturnData{
				ProgramID: programID,
				Data:      append([]byte(nil), meta.ReturnData.Data...),
			}
		}
	}

	if len(meta.InnerInstructions) > 0 {
		res.InnerInstructions = make([][]InnerInstruction, len(meta.InnerInstructions))
		for i, list := range meta.InnerInstructions {
			res.InnerInstructions[i] = make([]InnerInstruction, len(list))
			for j, inner := range list {
				res.InnerInstructions[i][j] = translateInnerInstruction(inner, keys)
			}
		}
	}
	return res, nil
}

func translateInnerInstruction(inner svm.InnerInstruction, keys []svm.Address) InnerInstruction {
	res := InnerInstruction{
		Program:     resolve(inner.Instruction.ProgramIDIndex, keys),
		Accounts:    make([]AccountRef, len(inner.Instruction.Accounts)),
		Data:        append([]byte(nil), inner.Instruction.Data...),
		StackHeight: inner.StackHeight,
	}
	for i, index := range inner.Instruction.Accounts {
		res.Accounts[i] = resolve(index, keys)
	}
	return res
}

func resolve(index uint8, keys []svm.Address) AccountRef {
	if int(index) >= len(keys) {
		return AccountRef{Index: index}
	}
	return AccountRef{Index: index, Address: keys[index], Resolved: true}
}
