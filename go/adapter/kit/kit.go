// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package kit exposes an engine through plain value types: base58 strings
// for addresses and signatures, arbitrary precision integers for amounts,
// and serialized messages with signatures keyed by signer.
package kit

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
)

// LiteSVM is a ledger driven through kit-style values. The With* methods
// configure the engine and return the receiver for chaining; they panic if
// the engine rejects a value.
type LiteSVM struct {
	core *adapter.Core
}

func New(engine svm.Engine) *LiteSVM {
	return FromCore(adapter.NewCore(engine))
}

func FromCore(core *adapter.Core) *LiteSVM {
	return &LiteSVM{core: core}
}

func Open(name string, config ...any) (*LiteSVM, error) {
	core, err := adapter.Open(name, config...)
	if err != nil {
		return nil, err
	}
	return FromCore(core), nil
}

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

func (s *LiteSVM) WithBuiltins(features *svm.FeatureSet) *LiteSVM {
	must("builtins", s.core.SetBuiltins(features))
	return s
}

func (s *LiteSVM) WithPrecompiles(features *svm.FeatureSet) *LiteSVM {
	must("precompiles", s.core.SetPrecompiles(features))
	return s
}

// WithLamports sets the balance of the airdrop faucet. It panics for
// amounts exceeding 64 bits.
func (s *LiteSVM) WithLamports(lamports *big.Int) *LiteSVM {
	value, err := svm.Uint64FromBig(lamports)
	must("lamports", err)
	s.core.SetLamports(value)
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

func (s *LiteSVM) MinimumBalanceForRentExemption(dataLen uint64) *big.Int {
	return svm.BigFromUint64(s.core.MinimumBalanceForRentExemption(dataLen))
}

// GetAccount returns nil without an error if the account does not exist.
func (s *LiteSVM) GetAccount(address Address) (*AccountInfo, error) {
	key, err := address.decode()
	if err != nil {
		return nil, err
	}
	account, err := s.core.GetAccount(key)
	if err != nil {
		return nil, err
	}
	return accountFromNative(key, account), nil
}

// SetAccount stores the account at its address.
func (s *LiteSVM) SetAccount(account AccountInfo) error {
	address, native, err := accountToNative(account)
	if err != nil {
		return err
	}
	return s.core.SetAccount(address, native)
}

// GetBalance returns nil without an error if the account does not exist.
func (s *LiteSVM) GetBalance(address Address) (*big.Int, error) {
	key, err := address.decode()
	if err != nil {
		return nil, err
	}
	lamports, found := s.core.GetBalance(key)
	if !found {
		return nil, nil
	}
	return svm.BigFromUint64(lamports), nil
}

func (s *LiteSVM) LatestBlockhash() (string, error) {
	hash, err := s.core.LatestBlockhash()
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func (s *LiteSVM) ExpireBlockhash() {
	s.core.ExpireBlockhash()
}

func (s *LiteSVM) WarpToSlot(slot *big.Int) error {
	value, err := svm.Uint64FromBig(slot)
	if err != nil {
		return err
	}
	s.core.WarpToSlot(value)
	return nil
}

func (s *LiteSVM) Airdrop(address Address, lamports *big.Int) (*TransactionMetadata, error) {
	key, err := address.decode()
	if err != nil {
		return nil, err
	}
	amount, err := svm.Uint64FromBig(lamports)
	if err != nil {
		return nil, err
	}
	outcome, err := s.core.Airdrop(key, amount)
	if err != nil {
		return nil, err
	}
	return metadataFromOutcome(outcome), nil
}

// GetTransaction returns nil without an error for unknown signatures.
func (s *LiteSVM) GetTransaction(signature string) (*TransactionMetadata, error) {
	sig, err := svm.SignatureFromBase58(signature)
	if err != nil {
		return nil, err
	}
	outcome, err := s.core.GetTransaction(sig)
	if err != nil || outcome == nil {
		return nil, err
	}
	return metadataFromOutcome(outcome), nil
}

func (s *LiteSVM) AddProgram(programAddress Address, program []byte) error {
	key, err := programAddress.decode()
	if err != nil {
		return err
	}
	return s.core.AddProgram(key, program)
}

func (s *LiteSVM) AddProgramFromFile(programAddress Address, path string) error {
	key, err := programAddress.decode()
	if err != nil {
		return err
	}
	return s.core.AddProgramFromFile(key, path)
}

// SendTransaction executes a transaction and commits its effects if it
// succeeds. On-chain failures are reported through the Err field of the
// result, errors are returned only for transactions that never reached the
// engine.
func (s *LiteSVM) SendTransaction(tx Transaction) (*TransactionMetadata, error) {
	wire, err := tx.wireTransaction()
	if err != nil {
		return nil, err
	}
	outcome, err := s.core.SendTransaction(wire)
	if err != nil {
		return nil, err
	}
	return metadataFromOutcome(outcome), nil
}

func (s *LiteSVM) SimulateTransaction(tx Transaction) (*SimulatedTransaction, error) {
	wire, err := tx.wireTransaction()
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

func (s *LiteSVM) GetLastRestartSlot() (*big.Int, error) {
	slot, err := s.core.LastRestartSlot()
	if err != nil {
		return nil, err
	}
	return svm.BigFromUint64(slot), nil
}

func (s *LiteSVM) SetLastRestartSlot(slot *big.Int) error {
	value, err := svm.Uint64FromBig(slot)
	if err != nil {
		return err
	}
	return s.core.SetLastRestartSlot(value)
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
