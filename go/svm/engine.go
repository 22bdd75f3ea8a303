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

//go:generate mockgen -source engine.go -destination engine_mock.go -package svm

// Engine is the low-level contract of an embedded ledger-execution engine.
// Addresses, signatures and serialized transactions cross this boundary as
// raw bytes, configuration records as ordered scalars. An Engine is a single
// mutable ledger; implementations need not be safe for concurrent use.
type Engine interface {
	// SetComputeBudget installs a compute budget marshalled by
	// MarshalComputeBudget.
	SetComputeBudget(values []uint64) error
	// ComputeBudget returns the budget set by SetComputeBudget, if any.
	ComputeBudget() ([]uint64, bool)
	SetSigverify(enabled bool)
	Sigverify() bool
	SetBlockhashCheck(enabled bool)
	// SetSysvars resets all sysvars to their defaults.
	SetSysvars()
	SetFeatureSet(ids [][]byte, slots []uint64) error
	SetBuiltins(ids [][]byte, slots []uint64) error
	SetPrecompiles(ids [][]byte, slots []uint64) error
	// SetLamports sets the balance of the account funding airdrops.
	SetLamports(lamports uint64)
	// SetDefaultPrograms loads the programs bundled with the engine.
	SetDefaultPrograms()
	// SetTransactionHistory bounds the number of remembered transactions.
	// Zero disables the history and with it the duplicate check.
	SetTransactionHistory(capacity uint64)
	// SetLogBytesLimit bounds the size of the logs of a transaction. If
	// limited is false, logs are unbounded.
	SetLogBytesLimit(limit uint64, limited bool)

	MinimumBalanceForRentExemption(dataLen uint64) uint64
	GetAccount(address []byte) (AccountRecord, bool)
	SetAccount(address []byte, account AccountRecord) error
	GetBalance(address []byte) (uint64, bool)
	LatestBlockhash() []byte
	ExpireBlockhash()
	WarpToSlot(slot uint64)
	GetTransaction(signature []byte) (TransactionResult, bool)
	Airdrop(address []byte, lamports uint64) TransactionResult
	AddProgram(programID []byte, program []byte) error
	AddProgramFromFile(programID []byte, path string) error

	// The transaction entry points take transactions serialized by
	// EncodeLegacyTransaction or EncodeVersionedTransaction respectively.
	// On-chain failures are reported through the result.
	SendLegacyTransaction(tx []byte) TransactionResult
	SendVersionedTransaction(tx []byte) TransactionResult
	SimulateLegacyTransaction(tx []byte) SimulateResult
	SimulateVersionedTransaction(tx []byte) SimulateResult

	// GetSysvar returns the account data of the sysvar with the given id.
	GetSysvar(id []byte) ([]byte, bool)
	SetSysvar(id []byte, data []byte) error

	// Snapshot saves the current ledger state, Revert restores the most
	// recently saved one. Revert without a saved state has no effect.
	Snapshot()
	Revert()
}
