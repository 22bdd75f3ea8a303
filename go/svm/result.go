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

import "strings"

// The types in this file are the result records exchanged with an engine.
// Addresses and signatures are kept in the raw byte form the engine produces;
// translating them is up to the caller.

type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// InnerInstruction is an instruction invoked by a program during the
// execution of a top-level instruction.
type InnerInstruction struct {
	Instruction CompiledInstruction
	StackHeight uint8
}

type ReturnData struct {
	ProgramID []byte
	Data      []byte
}

// TransactionMetadata summarizes the execution of a transaction.
type TransactionMetadata struct {
	Signature []byte
	Logs      []string
	// InnerInstructions holds one list per top-level instruction.
	InnerInstructions    [][]InnerInstruction
	ComputeUnitsConsumed uint64
	ReturnData           ReturnData
	Fee                  uint64
}

// PrettyLogs renders the logs one per line, indented.
func (m *TransactionMetadata) PrettyLogs() string {
	return PrettyLogs(m.Logs)
}

func PrettyLogs(logs []string) string {
	var builder strings.Builder
	for _, line := range logs {
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	return builder.String()
}

type FailedTransactionMetadata struct {
	Err  TransactionError
	Meta TransactionMetadata
}

// TransactionResult is the outcome of sending a transaction. Exactly one of
// the two fields is set.
type TransactionResult struct {
	Success *TransactionMetadata
	Failure *FailedTransactionMetadata
}

func (r TransactionResult) IsSuccess() bool {
	return r.Success != nil
}

// Meta returns the metadata of either variant.
func (r TransactionResult) Meta() *TransactionMetadata {
	if r.Success != nil {
		return r.Success
	}
	if r.Failure != nil {
		return &r.Failure.Meta
	}
	return nil
}

type AccountEntry struct {
	Address []byte
	Account AccountRecord
}

// SimulatedTransactionInfo is the outcome of a successful simulation. It
// contains the state of every account touched by the transaction.
type SimulatedTransactionInfo struct {
	Meta         TransactionMetadata
	PostAccounts []AccountEntry
}

// SimulateResult is the outcome of simulating a transaction. Exactly one of
// the two fields is set.
type SimulateResult struct {
	Success *SimulatedTransactionInfo
	Failure *FailedTransactionMetadata
}

func (r SimulateResult) IsSuccess() bool {
	return r.Success != nil
}
