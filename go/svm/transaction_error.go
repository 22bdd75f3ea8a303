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

import "fmt"

// TransactionErrorKind enumerates the reasons a transaction can fail on the
// ledger. Such failures are reported as part of a transaction result, not as
// Go errors.
type TransactionErrorKind int

const (
	TxAccountInUse TransactionErrorKind = iota
	TxAccountLoadedTwice
	TxAccountNotFound
	TxProgramAccountNotFound
	TxInsufficientFundsForFee
	TxInvalidAccountForFee
	TxAlreadyProcessed
	TxBlockhashNotFound
	TxCallChainTooDeep
	TxMissingSignatureForFee
	TxInvalidAccountIndex
	TxSignatureFailure
	TxInvalidProgramForExecution
	TxSanitizeFailure
	TxClusterMaintenance
	TxAccountBorrowOutstanding
	TxWouldExceedMaxBlockCostLimit
	TxUnsupportedVersion
	TxInvalidWritableAccount
	TxWouldExceedMaxAccountCostLimit
	TxWouldExceedAccountDataBlockLimit
	TxTooManyAccountLocks
	TxAddressLookupTableNotFound
	TxInvalidAddressLookupTableOwner
	TxInvalidAddressLookupTableData
	TxInvalidAddressLookupTableIndex
	TxInvalidRentPayingAccount
	TxWouldExceedMaxVoteCostLimit
	TxWouldExceedAccountDataTotalLimit
	TxMaxLoadedAccountsDataSizeExceeded
	TxResanitizationNeeded
	TxInvalidLoadedAccountsDataSizeLimit
	TxUnbalancedTransaction
	TxProgramCacheHitMaxLimit
	TxCommitCancelled
	TxInstructionError
	TxDuplicateInstruction
	TxInsufficientFundsForRent
	TxProgramExecutionTemporarilyRestricted
)

var transactionErrorNames = [...]string{
	TxAccountInUse:                          "AccountInUse",
	TxAccountLoadedTwice:                    "AccountLoadedTwice",
	TxAccountNotFound:                       "AccountNotFound",
	TxProgramAccountNotFound:                "ProgramAccountNotFound",
	TxInsufficientFundsForFee:               "InsufficientFundsForFee",
	TxInvalidAccountForFee:                  "InvalidAccountForFee",
	TxAlreadyProcessed:                      "AlreadyProcessed",
	TxBlockhashNotFound:                     "BlockhashNotFound",
	TxCallChainTooDeep:                      "CallChainTooDeep",
	TxMissingSignatureForFee:                "MissingSignatureForFee",
	TxInvalidAccountIndex:                   "InvalidAccountIndex",
	TxSignatureFailure:                      "SignatureFailure",
	TxInvalidProgramForExecution:            "InvalidProgramForExecution",
	TxSanitizeFailure:                       "SanitizeFailure",
	TxClusterMaintenance:                    "ClusterMaintenance",
	TxAccountBorrowOutstanding:              "AccountBorrowOutstanding",
	TxWouldExceedMaxBlockCostLimit:          "WouldExceedMaxBlockCostLimit",
	TxUnsupportedVersion:                    "UnsupportedVersion",
	TxInvalidWritableAccount:                "InvalidWritableAccount",
	TxWouldExceedMaxAccountCostLimit:        "WouldExceedMaxAccountCostLimit",
	TxWouldExceedAccountDataBlockLimit:      "WouldExceedAccountDataBlockLimit",
	TxTooManyAccountLocks:                   "TooManyAccountLocks",
	TxAddressLookupTableNotFound:            "AddressLookupTableNotFound",
	TxInvalidAddressLookupTableOwner:        "InvalidAddressLookupTableOwner",
	TxInvalidAddressLookupTableData:         "InvalidAddressLookupTableData",
	TxInvalidAddressLookupTableIndex:        "InvalidAddressLookupTableIndex",
	TxInvalidRentPayingAccount:              "InvalidRentPayingAccount",
	TxWouldExceedMaxVoteCostLimit:           "WouldExceedMaxVoteCostLimit",
	TxWouldExceedAccountDataTotalLimit:      "WouldExceedAccountDataTotalLimit",
	TxMaxLoadedAccountsDataSizeExceeded:     "MaxLoadedAccountsDataSizeExceeded",
	TxResanitizationNeeded:                  "ResanitizationNeeded",
	TxInvalidLoadedAccountsDataSizeLimit:    "InvalidLoadedAccountsDataSizeLimit",
	TxUnbalancedTransaction:                 "UnbalancedTransaction",
	TxProgramCacheHitMaxLimit:               "ProgramCacheHitMaxLimit",
	TxCommitCancelled:                       "CommitCancelled",
	TxInstructionError:                      "InstructionError",
	TxDuplicateInstruction:                  "DuplicateInstruction",
	TxInsufficientFundsForRent:              "InsufficientFundsForRent",
	TxProgramExecutionTemporarilyRestricted: "ProgramExecutionTemporarilyRestricted",
}

func (k TransactionErrorKind) String() string {
	if k < 0 || int(k) >= len(transactionErrorNames) {
		return fmt.Sprintf("TransactionErrorKind(%d)", int(k))
	}
	return transactionErrorNames[k]
}

// TransactionError is a failed transaction's structured error. Index is the
// instruction index for TxInstructionError and TxDuplicateInstruction and the
// account index for TxInsufficientFundsForRent and
// TxProgramExecutionTemporarilyRestricted. Instruction is only set for
// TxInstructionError.
type TransactionError struct {
	Kind        TransactionErrorKind
	Index       uint8
	Instruction *InstructionError
}

// NewInstructionError creates the error of a transaction failing in the
// instruction with the given index.
func NewInstructionError(index uint8, err InstructionError) *TransactionError {
	return &TransactionError{Kind: TxInstructionError, Index: index, Instruction: &err}
}

func (e *TransactionError) Equal(other *TransactionError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind || e.Index != other.Index {
		return false
	}
	if e.Instruction == nil || other.Instruction == nil {
		return e.Instruction == other.Instruction
	}
	return *e.Instruction == *other.Instruction
}

func (e *TransactionError) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case TxInstructionError:
		if e.Instruction == nil {
			return fmt.Sprintf("InstructionError(%d, <nil>)", e.Index)
		}
		return fmt.Sprintf("InstructionError(%d, %v)", e.Index, e.Instruction)
	case TxDuplicateInstruction:
		return fmt.Sprintf("DuplicateInstruction(%d)", e.Index)
	case TxInsufficientFundsForRent, TxProgramExecutionTemporarilyRestricted:
		return fmt.Sprintf("%v { account_index: %d }", e.Kind, e.Index)
	}
	return e.Kind.String()
}

// InstructionErrorKind enumerates the reasons a single instruction can fail.
type InstructionErrorKind int

const (
	IxGenericError InstructionErrorKind = iota
	IxInvalidArgument
	IxInvalidInstructionData
	IxInvalidAccountData
	IxAccountDataTooSmall
	IxInsufficientFunds
	IxIncorrectProgramId
	IxMissingRequiredSignature
	IxAccountAlreadyInitialized
	IxUninitializedAccount
	IxUnbalancedInstruction
	IxModifiedProgramId
	IxExternalAccountLamportSpend
	IxExternalAccountDataModified
	IxReadonlyLamportChange
	IxReadonlyDataModified
	IxDuplicateAccountIndex
	IxExecutableModified
	IxRentEpochModified
	IxNotEnoughAccountKeys
	IxAccountDataSizeChanged
	IxAccountNotExecutable
	IxAccountBorrowFailed
	IxAccountBorrowOutstanding
	IxDuplicateAccountOutOfSync
	IxCustom
	IxInvalidError
	IxExecutableDataModified
	IxExecutableLamportChange
	IxExecutableAccountNotRentExempt
	IxUnsupportedProgramId
	IxCallDepth
	IxMissingAccount
	IxReentrancyNotAllowed
	IxMaxSeedLengthExceeded
	IxInvalidSeeds
	IxInvalidRealloc
	IxComputationalBudgetExceeded
	IxPrivilegeEscalation
	IxProgramEnvironmentSetupFailure
	IxProgramFailedToComplete
	IxProgramFailedToCompile
	IxImmutable
	IxIncorrectAuthority
	IxBorshIoError
	IxAccountNotRentExempt
	IxInvalidAccountOwner
	IxArithmeticOverflow
	IxUnsupportedSysvar
	IxIllegalOwner
	IxMaxAccountsDataAllocationsExceeded
	IxMaxAccountsExceeded
	IxMaxInstructionTraceLengthExceeded
	IxBuiltinProgramsMustConsumeComputeUnits
)

var instructionErrorNames = [...]string{
	IxGenericError:                           "GenericError",
	IxInvalidArgument:                        "InvalidArgument",
	IxInvalidInstructionData:                 "InvalidInstructionData",
	IxInvalidAccountData:                     "InvalidAccountData",
	IxAccountDataTooSmall:                    "AccountDataTooSmall",
	IxInsufficientFunds:                      "InsufficientFunds",
	IxIncorrectProgramId:                     "IncorrectProgramId",
	IxMissingRequiredSignature:               "MissingRequiredSignature",
	IxAccountAlreadyInitialized:              "AccountAlreadyInitialized",
	IxUninitializedAccount:                   "UninitializedAccount",
	IxUnbalancedInstruction:                  "UnbalancedInstruction",
	IxModifiedProgramId:                      "ModifiedProgramId",
	IxExternalAccountLamportSpend:            "ExternalAccountLamportSpend",
	IxExternalAccountDataModified:            "ExternalAccountDataModified",
	IxReadonlyLamportChange:                  "ReadonlyLamportChange",
	IxReadonlyDataModified:                   "ReadonlyDataModified",
	IxDuplicateAccountIndex:                  "DuplicateAccountIndex",
	IxExecutableModified:                     "ExecutableModified",
	IxRentEpochModified:                      "RentEpochModified",
	IxNotEnoughAccountKeys:                   "NotEnoughAccountKeys",
	IxAccountDataSizeChanged:                 "AccountDataSizeChanged",
	IxAccountNotExecutable:                   "AccountNotExecutable",
	IxAccountBorrowFailed:                    "AccountBorrowFailed",
	IxAccountBorrowOutstanding:               "AccountBorrowOutstanding",
	IxDuplicateAccountOutOfSync:              "DuplicateAccountOutOfSync",
	IxCustom:                                 "Custom",
	IxInvalidError:                           "InvalidError",
	IxExecutableDataModified:                 "ExecutableDataModified",
	IxExecutableLamportChange:                "ExecutableLamportChange",
	IxExecutableAccountNotRentExempt:         "ExecutableAccountNotRentExempt",
	IxUnsupportedProgramId:                   "UnsupportedProgramId",
	IxCallDepth:                              "CallDepth",
	IxMissingAccount:                         "MissingAccount",
	IxReentrancyNotAllowed:                   "ReentrancyNotAllowed",
	IxMaxSeedLengthExceeded:                  "MaxSeedLengthExceeded",
	IxInvalidSeeds:                           "InvalidSeeds",
	IxInvalidRealloc:                         "InvalidRealloc",
	IxComputationalBudgetExceeded:            "ComputationalBudgetExceeded",
	IxPrivilegeEscalation:                    "PrivilegeEscalation",
	IxProgramEnvironmentSetupFailure:         "ProgramEnvironmentSetupFailure",
	IxProgramFailedToComplete:                "ProgramFailedToComplete",
	IxProgramFailedToCompile:                 "ProgramFailedToCompile",
	IxImmutable:                              "Immutable",
	IxIncorrectAuthority:                     "IncorrectAuthority",
	IxBorshIoError:                           "BorshIoError",
	IxAccountNotRentExempt:                   "AccountNotRentExempt",
	IxInvalidAccountOwner:                    "InvalidAccountOwner",
	IxArithmeticOverflow:                     "ArithmeticOverflow",
	IxUnsupportedSysvar:                      "UnsupportedSysvar",
	IxIllegalOwner:                           "IllegalOwner",
	IxMaxAccountsDataAllocationsExceeded:     "MaxAccountsDataAllocationsExceeded",
	IxMaxAccountsExceeded:                    "MaxAccountsExceeded",
	IxMaxInstructionTraceLengthExceeded:      "MaxInstructionTraceLengthExceeded",
	IxBuiltinProgramsMustConsumeComputeUnits: "BuiltinProgramsMustConsumeComputeUnits",
}

func (k InstructionErrorKind) String() string {
	if k < 0 || int(k) >= len(instructionErrorNames) {
		return fmt.Sprintf("InstructionErrorKind(%d)", int(k))
	}
	return instructionErrorNames[k]
}

// InstructionError is the error of a failed instruction. Code is only used
// by IxCustom, Message only by IxBorshIoError.
type InstructionError struct {
	Kind    InstructionErrorKind
	Code    uint32
	Message string
}

func CustomError(code uint32) InstructionError {
	return InstructionError{Kind: IxCustom, Code: code}
}

func (e InstructionError) String() string {
	switch e.Kind {
	case IxCustom:
		return fmt.Sprintf("Custom(%d)", e.Code)
	case IxBorshIoError:
		return fmt.Sprintf("BorshIoError(%q)", e.Message)
	}
	return e.Kind.String()
}
