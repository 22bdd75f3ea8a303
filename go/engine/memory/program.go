// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/svm"
)

// Program is an on-chain program implemented in Go. Programs are invoked
// with the accounts and data of an instruction and report failures through
// the returned instruction error.
type Program interface {
	Execute(ctx *InstructionContext) *svm.InstructionError
}

// ProgramFunc adapts a function to the Program interface.
type ProgramFunc func(ctx *InstructionContext) *svm.InstructionError

func (f ProgramFunc) Execute(ctx *InstructionContext) *svm.InstructionError {
	return f(ctx)
}

// InstructionAccount is an account passed to an instruction. Programs modify
// the ledger by modifying the referenced account; changes violating the
// ownership rules fail the instruction after the program returns.
type InstructionAccount struct {
	Address    svm.Address
	IsSigner   bool
	IsWritable bool
	Account    *svm.Account

	index int // position in the account keys of the transaction
}

// AccountMeta describes an account of an instruction issued through
// InstructionContext.Invoke.
type AccountMeta struct {
	Address    svm.Address
	IsSigner   bool
	IsWritable bool
}

type Instruction struct {
	ProgramID svm.Address
	Accounts  []AccountMeta
	Data      []byte
}

// InstructionContext is the view of a program on the instruction it executes.
type InstructionContext struct {
	ProgramID svm.Address
	Accounts  []*InstructionAccount
	Data      []byte

	exec  *execution
	depth int
	pre   map[int]svm.Account // accounts at the last verification
}

// Log appends a program log line, prefixed like logs issued by on-chain
// programs.
func (c *InstructionContext) Log(message string) {
	c.exec.logs.log("Program log: " + message)
}

// ConsumeUnits charges compute units to the transaction.
func (c *InstructionContext) ConsumeUnits(units uint64) *svm.InstructionError {
	return c.exec.consume(units)
}

// RemainingUnits returns the compute units left to the transaction.
func (c *InstructionContext) RemainingUnits() uint64 {
	return c.exec.limit - c.exec.consumed
}

// SetReturnData sets the return data of the transaction, replacing the data
// set by earlier instructions.
func (c *InstructionContext) SetReturnData(data []byte) {
	c.exec.returnData = svm.ReturnData{
		ProgramID: c.ProgramID.Bytes(),
		Data:      append([]byte(nil), data...),
	}
}

// Clock returns the clock sysvar of the ledger.
func (c *InstructionContext) Clock() (svm.Clock, error) {
	var clock svm.Clock
	account, found := c.exec.engine.accounts[svm.ClockSysvarID]
	if !found {
		return clock, svm.ErrMalformedSysvar
	}
	err := clock.UnmarshalBinary(account.Data)
	return clock, err
}

// Invoke executes a nested instruction. All accounts of the instruction,
// including the program, must be part of the transaction. Signer and
// writable privileges can only be passed on, not gained.
func (c *InstructionContext) Invoke(ix Instruction) *svm.InstructionError {
	return c.exec.invoke(c, ix)
}

// memoProgramID is the address of the memo program installed with the
// default programs.
var memoProgramID = svm.MustAddressFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// memoProgram logs the instruction data as text. All accounts passed to it
// must have signed the transaction.
func memoProgram(ctx *InstructionContext) *svm.InstructionError {
	for _, account := range ctx.Accounts {
		if !account.IsSigner {
			ctx.Log("Missing required signature for memo")
			return &svm.InstructionError{Kind: svm.IxMissingRequiredSignature}
		}
	}
	if err := ctx.ConsumeUnits(uint64(len(ctx.Data)) * 10); err != nil {
		return err
	}
	ctx.Log(memoLog(ctx.Data))
	return nil
}

func memoLog(data []byte) string {
	return fmt.Sprintf("Memo (len %d): %q", len(data), data)
}
