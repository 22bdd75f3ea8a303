// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package web3 exposes an engine through the types of the
// gagliardetto/solana-go client library.
package web3

import (
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
)

// LiteSVM is a ledger driven through solana-go transactions. The With*
// methods configure the engine and return the receiver for chaining; they
// panic if the engine rejects a value.
type LiteSVM struct {
	core *adapter.Core
}

func New(engine svm.Engine) *LiteSVM {
	return FromCore(adapter.NewCore(engine))
}

func FromCore(core *adapter.Core) *LiteSVM {
	return &LiteSVM{core: core}
}

// Open creates a ledger backed by the registered engine of the given name.
func Open(name string, config ...any) (*LiteSVM, error) {
	core, err := adapter.Open(name, config...)
	if err != nil {
		return nil, err
	}
	return FromCore(core), nil
}

// OpenConfig creates a ledger as described by a facade configuration.
func OpenConfig(config adapter.Config) (*LiteSVM, error) {
	core, err := adapter.OpenConfig(config)
	if err != nil {
		return nil, err
	}
	return FromCore(core), nil
}

func (s *LiteSVM) Core() *adapter.Core {
	return s.core
}

func must(what string, err error) {
	if err != nil {
		panic(fmt.Sprintf("engine rejected %s: %v", what, err))
	}
}

func (s *LiteSVM) WithComputeBudget(budget svm.ComputeBudget) *LiteSVM {
	must("compute budget", s.core.SetComputeBudget(budget))
	return s
}

func (s *LiteSVM) WithSigverify(enabled bool) *LiteSVM {
	s.core.SetSigverify(enabled)
	return s
}

func (s *LiteSVM) WithBlockhashCheck(enabled bool) *LiteSVM {
	s.core.SetBlockhashCheck(enabled)
	return s
}

func (s *LiteSVM) WithSysvars() *LiteSVM {
	s.core.SetSysvars()
	return s
}

func (s *LiteSVM) WithFeatureSet(features *svm.FeatureSet) *LiteSVM {
	must("feature set", s.core.SetFeatureSet(features))
	return s
}

// WithBuiltins installs the builtin programs, optionally replacing the
// feature set.
func (s *LiteSVM) WithBuiltins(features *svm.FeatureSet) *LiteSVM {
	must("builtins", s.core.SetBuiltins(features))
	return s
}

func (s *LiteSVM) WithPrecompiles(features *svm.FeatureSet) *LiteSVM {
	must("precompiles", s.core.SetPrecompiles(features))
	return s
}

// WithLamports sets the balance of the airdrop faucet.
func (s *LiteSVM) WithLamports(lamports uint64) *LiteSVM {
	s.core.SetLamports(lamports)
	return s
}

func (s *LiteSVM) WithDefaultPrograms() *LiteSVM {
	s.core.SetDefaultPrograms()
	return s
}

func (s *LiteSVM) WithTransactionHistory(capacity uint64) *LiteSVM {
	s.core.SetTransactionHistory(capacity)
	return s
}

// WithLogBytesLimit limits the log output of transactions; nil removes the
// limit.
func (s *LiteSVM) WithLogBytesLimit(limit *uint64) *LiteSVM {
	s.core.SetLogBytesLimit(limit)
	return s
}

func (s *LiteSVM) GetComputeBudget() (*svm.ComputeBudget, error) {
	return s.core.ComputeBudget()
}

func (s *LiteSVM) GetSigverify() bool {
	return s.core.Sigverify()
}

func (s *LiteSVM) MinimumBalanceForRentExemption(dataLen uint64) uint64 {
	return s.core.MinimumBalanceForRentExemption(dataLen)
}

// GetAccount returns nil without an error if the account does not exist.
func (s *LiteSVM) GetAccount(address solana.PublicKey) (*AccountInfo, error) {
	account, err := s.core.GetAccount(svm.Address(address))
	if err != nil {
		return nil, err
	}
	return accountFromNative(account), nil
}

func (s *LiteSVM) SetAccount(address solana.PublicKey, account AccountInfo) error {
	return s.core.SetAccount(svm.Address(address), accountToNative(account))
}

func (s *LiteSVM) GetBalance(address solana.PublicKey) (uint64, bool) {
	return s.core.GetBalance(svm.Address(address))
}

func (s *LiteSVM) LatestBlockhash() (solana.Hash, error) {
	hash, err := s.core.LatestBlockhash()
	return solana.Hash(hash), err
}

func (s *LiteSVM) ExpireBlockhash() {
	s.core.ExpireBlockhash()
}

func (s *LiteSVM) WarpToSlot(slot uint64) {
	s.core.WarpToSlot(slot)
}

func (s *LiteSVM) Airdrop(address solana.PublicKey, lamports uint64) (TransactionResult, error) {
	outcome, err := s.core.Airdrop(svm.Address(address), lamports)
	if err != nil {
		return nil, err
	}
	return resultFromOutcome(outcome), nil
}

// GetTransaction returns nil without an error for unknown signatures.
func (s *LiteSVM) GetTransaction(signature solana.Signature) (TransactionResult, error) {
	outcome, err := s.core.GetTransaction(svm.Signature(signature))
	if err != nil || outcome == nil {
		return nil, err
	}
	return resultFromOutcome(outcome), nil
}

func (s *LiteSVM) AddProgram(programID solana.PublicKey, program []byte) error {
	return s.core.AddProgram(svm.Address(programID), program)
}

func (s *LiteSVM) AddProgramFromFile(programID solana.PublicKey, path string) error {
	return s.core.AddProgramFromFile(svm.Address(programID), path)
}

// SendTransaction executes a transaction and commits its effects if it
// succeeds. On-chain failures are reported as *FailedTransactionMetadata,
// errors are returned only for transactions that never reached the engine.
func (s *LiteSVM) SendTransaction(tx *solana.Transaction) (TransactionResult, error) {
	wire, err := wireTransaction(tx)
	if err != nil {
		return nil, err
	}
	outcome, err := s.core.SendTransaction(wire)
	if err != nil {
		return nil, err
	}
	return resultFromOutcome(outcome), nil
}

func (s *LiteSVM) SimulateTransaction(tx *solana.Transaction) (SimulateResult, error) {
	wire, err := wireTransaction(tx)
	if err != nil {
		return nil, err
	}
	outcome, err := s.core.SimulateTransaction(wire)
	if err != nil {
		return nil, err
	}
	return simulationFromOutcome(outcome), nil
}

func (s *LiteSVM) Snapshot() {
	s.core.Snapshot()
}

func (s *LiteSVM) Revert() {
	s.core.Revert()
}

func (s *LiteSVM) GetClock() (svm.Clock, error) {
	return s.core.Clock()
}

func (s *LiteSVM) SetClock(clock svm.Clock) error {
	return s.core.SetClock(clock)
}

func (s *LiteSVM) GetRent() (svm.Rent, error) {
	return s.core.Rent()
}

func (s *LiteSVM) SetRent(rent svm.Rent) error {
	return s.core.SetRent(rent)
}

func (s *LiteSVM) GetEpochRewards() (svm.EpochRewards, error) {
	return s.core.EpochRewards()
}

func (s *LiteSVM) SetEpochRewards(rewards svm.EpochRewards) error {
	return s.core.SetEpochRewards(rewards)
}

func (s *LiteSVM) GetEpochSchedule() (svm.EpochSchedule, error) {
	return s.core.EpochSchedule()
}

func (s *LiteSVM) SetEpochSchedule(schedule svm.EpochSchedule) error {
	return s.core.SetEpochSchedule(schedule)
}

func (s *LiteSVM) GetLastRestartSlot() (uint64, error) {
	return s.core.LastRestartSlot()
}

func (s *LiteSVM) SetLastRestartSlot(slot uint64) error {
	return s.core.SetLastRestartSlot(slot)
}

func (s *LiteSVM) GetSlotHashes() (svm.SlotHashes, error) {
	return s.core.SlotHashes()
}

func (s *LiteSVM) SetSlotHashes(hashes svm.SlotHashes) error {
	return s.core.SetSlotHashes(hashes)
}

func (s *LiteSVM) GetSlotHistory() (svm.SlotHistory, error) {
	return s.core.SlotHistory()
}

func (s *LiteSVM) SetSlotHistory(history svm.SlotHistory) error {
	return s.core.SetSlotHistory(history)
}

func (s *LiteSVM) GetStakeHistory() (svm.StakeHistory, error) {
	return s.core.StakeHistory()
}

func (s *LiteSVM) SetStakeHistory(history svm.StakeHistory) error {
	return s.core.SetStakeHistory(history)
}
