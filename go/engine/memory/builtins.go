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
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

// Instructions of the system program, identified by their position in the
// instruction enumeration of the program.
const (
	systemCreateAccount uint32 = 0
	systemAssign        uint32 = 1
	systemTransfer      uint32 = 2
	systemAllocate      uint32 = 8
)

// Custom errors of the system program.
const (
	systemErrAccountAlreadyInUse        uint32 = 0
	systemErrResultWithNegativeLamports uint32 = 1
	systemErrInvalidAccountDataLength   uint32 = 3
)

// MaxPermittedDataLength is the largest account the system program creates.
const MaxPermittedDataLength = 10 * 1024 * 1024

func invalidInstructionData() *svm.InstructionError {
	return &svm.InstructionError{Kind: svm.IxInvalidInstructionData}
}

func systemError(code uint32) *svm.InstructionError {
	err := svm.CustomError(code)
	return &err
}

func systemProgram(ctx *InstructionContext) *svm.InstructionError {
	dec := bin.NewBinDecoder(ctx.Data)
	if dec.Remaining() < 4 {
		return invalidInstructionData()
	}
	kind, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return invalidInstructionData()
	}
	switch kind {
	case systemCreateAccount:
		lamports, err1 := dec.ReadUint64(bin.LE)
		space, err2 := dec.ReadUint64(bin.LE)
		owner, err3 := readAddress(dec)
		if err1 != nil || err2 != nil || err3 != nil {
			return invalidInstructionData()
		}
		if len(ctx.Accounts) < 2 {
			return &svm.InstructionError{Kind: svm.IxNotEnoughAccountKeys}
		}
		return createAccount(ctx, ctx.Accounts[0], ctx.Accounts[1], lamports, space, owner)
	case systemAssign:
		owner, err := readAddress(dec)
		if err != nil {
			return invalidInstructionData()
		}
		if len(ctx.Accounts) < 1 {
			return &svm.InstructionError{Kind: svm.IxNotEnoughAccountKeys}
		}
		return assign(ctx, ctx.Accounts[0], owner)
	case systemTransfer:
		lamports, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return invalidInstructionData()
		}
		if len(ctx.Accounts) < 2 {
			return &svm.InstructionError{Kind: svm.IxNotEnoughAccountKeys}
		}
		return transfer(ctx, ctx.Accounts[0], ctx.Accounts[1], lamports)
	case systemAllocate:
		space, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return invalidInstructionData()
		}
		if len(ctx.Accounts) < 1 {
			return &svm.InstructionError{Kind: svm.IxNotEnoughAccountKeys}
		}
		return allocate(ctx, ctx.Accounts[0], space)
	}
	return invalidInstructionData()
}

func readAddress(dec *bin.Decoder) (svm.Address, error) {
	raw, err := dec.ReadNBytes(len(svm.Address{}))
	if err != nil {
		return svm.Address{}, err
	}
	return svm.AddressFromBytes(raw)
}

func createAccount(ctx *InstructionContext, from, to *InstructionAccount, lamports, space uint64, owner svm.Address) *svm.InstructionError {
	if to.Account.Lamports > 0 {
		ctx.Log(fmt.Sprintf("Create Account: account %v already in use", to.Address))
		return systemError(systemErrAccountAlreadyInUse)
	}
	if err := allocate(ctx, to, space); err != nil {
		return err
	}
	if err := assign(ctx, to, owner); err != nil {
		return err
	}
	return transfer(ctx, from, to, lamports)
}

func assign(ctx *InstructionContext, account *InstructionAccount, owner svm.Address) *svm.InstructionError {
	if account.Account.Owner == owner {
		return nil
	}
	if !account.IsSigner {
		ctx.Log(fmt.Sprintf("Assign: account %v must sign", account.Address))
		return &svm.InstructionError{Kind: svm.IxMissingRequiredSignature}
	}
	account.Account.Owner = owner
	return nil
}

func allocate(ctx *InstructionContext, account *InstructionAccount, space uint64) *svm.InstructionError {
	if !account.IsSigner {
		ctx.Log(fmt.Sprintf("Allocate: 'to' account %v must sign", account.Address))
		return &svm.InstructionError{Kind: svm.IxMissingRequiredSignature}
	}
	if len(account.Account.Data) > 0 || account.Account.Owner != svm.SystemProgramID {
		ctx.Log(fmt.Sprintf("Allocate: account %v already in use", account.Address))
		return systemError(systemErrAccountAlreadyInUse)
	}
	if space > MaxPermittedDataLength {
		ctx.Log(fmt.Sprintf("Allocate: requested %d, max allowed %d", space, MaxPermittedDataLength))
		return systemError(systemErrInvalidAccountDataLength)
	}
	account.Account.Data = make([]byte, space)
	return nil
}

func transfer(ctx *InstructionContext, from, to *InstructionAccount, lamports uint64) *svm.InstructionError {
	if !from.IsSigner {
		ctx.Log(fmt.Sprintf("Transfer: `from` account %v must sign", from.Address))
		return &svm.InstructionError{Kind: svm.IxMissingRequiredSignature}
	}
	if len(from.Account.Data) > 0 {
		ctx.Log("Transfer: `from` must not carry data")
		return &svm.InstructionError{Kind: svm.IxInvalidArgument}
	}
	if lamports > from.Account.Lamports {
		ctx.Log(fmt.Sprintf("Transfer: insufficient lamports %d, need %d", from.Account.Lamports, lamports))
		return systemError(systemErrResultWithNegativeLamports)
	}
	if to.Account.Lamports+lamports < lamports {
		return &svm.InstructionError{Kind: svm.IxArithmeticOverflow}
	}
	from.Account.Lamports -= lamports
	to.Account.Lamports += lamports
	return nil
}

// Instructions of the compute budget program.
const (
	budgetRequestHeapFrame               uint8 = 1
	budgetSetComputeUnitLimit            uint8 = 2
	budgetSetComputeUnitPrice            uint8 = 3
	budgetSetLoadedAccountsDataSizeLimit uint8 = 4
)

// MaxComputeUnitLimit bounds the compute units a transaction may request.
const MaxComputeUnitLimit = 1_400_000

// computeBudgetProgram does nothing when executed; its instructions are
// evaluated before the transaction runs.
func computeBudgetProgram(*InstructionContext) *svm.InstructionError {
	return nil
}

type computeLimits struct {
	units uint64
	price uint64 // micro-lamports per compute unit
}

// priorityFee is the fee paid on top of the signature fees, rounded up to
// full lamports.
func (l computeLimits) priorityFee() uint64 {
	fee := new(uint256.Int).Mul(uint256.NewInt(l.price), uint256.NewInt(l.units))
	fee.Add(fee, uint256.NewInt(999_999))
	fee.Div(fee, uint256.NewInt(1_000_000))
	if !fee.IsUint64() {
		return ^uint64(0)
	}
	return fee.Uint64()
}

// computeLimits evaluates the compute budget instructions of a message. A
// compute budget configured on the engine takes precedence over requested
// limits.
func (e *Engine) computeLimits(msg *solana.Message) (computeLimits, *svm.TransactionError) {
	var res computeLimits
	var requested *uint64
	seen := map[uint8]bool{}
	for i, ix := range msg.Instructions {
		if svm.Address(msg.AccountKeys[ix.ProgramIDIndex]) != svm.ComputeBudgetProgramID {
			continue
		}
		dec := bin.NewBinDecoder(ix.Data)
		if dec.Remaining() == 0 {
			return res, svm.NewInstructionError(uint8(i), *invalidInstructionData())
		}
		kind, _ := dec.ReadUint8()
		if seen[kind] {
			return res, &svm.TransactionError{Kind: svm.TxDuplicateInstruction, Index: uint8(i)}
		}
		seen[kind] = true

		var err error
		switch kind {
		case budgetRequestHeapFrame, budgetSetLoadedAccountsDataSizeLimit:
			_, err = dec.ReadUint32(bin.LE)
		case budgetSetComputeUnitLimit:
			var units uint32
			units, err = dec.ReadUint32(bin.LE)
			limit := uint64(units)
			requested = &limit
		case budgetSetComputeUnitPrice:
			res.price, err = dec.ReadUint64(bin.LE)
		default:
			err = fmt.Errorf("unknown compute budget instruction %d", kind)
		}
		if err != nil || dec.Remaining() != 0 {
			return res, svm.NewInstructionError(uint8(i), *invalidInstructionData())
		}
	}

	switch {
	case e.budget != nil:
		res.units = e.budget.ComputeUnitLimit
	case requested != nil:
		res.units = min(*requested, MaxComputeUnitLimit)
	default:
		res.units = min(uint64(len(msg.Instructions))*defaultUnitsPerInstruction, MaxComputeUnitLimit)
	}
	return res, nil
}
