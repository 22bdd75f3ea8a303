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
	"encoding"
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"go.uber.org/zap"
)

// Core is the facade over an engine working with the native types of the svm
// package. The ecosystem specific front ends delegate to it. A Core holds no
// state besides the engine handle; like the engine it is not safe for
// concurrent use.
type Core struct {
	engine svm.Engine
	log    *zap.Logger
}

func NewCore(engine svm.Engine) *Core {
	return &Core{engine: engine, log: Logger()}
}

// Open creates a Core on top of a new instance of the engine registered under
// the given name.
func Open(name string, config ...any) (*Core, error) {
	engine, err := svm.NewEngine(name, config...)
	if err != nil {
		return nil, err
	}
	return NewCore(engine), nil
}

// Engine returns the engine handle this facade operates on.
func (c *Core) Engine() svm.Engine {
	return c.engine
}

// --- configuration ---

func (c *Core) SetComputeBudget(budget svm.ComputeBudget) error {
	return c.engine.SetComputeBudget(svm.MarshalComputeBudget(budget))
}

func (c *Core) SetSigverify(enabled bool) {
	c.engine.SetSigverify(enabled)
}

func (c *Core) SetBlockhashCheck(enabled bool) {
	c.engine.SetBlockhashCheck(enabled)
}

func (c *Core) SetSysvars() {
	c.engine.SetSysvars()
}

func (c *Core) SetFeatureSet(features *svm.FeatureSet) error {
	return c.engine.SetFeatureSet(svm.ToActivationPairs(features))
}

// SetBuiltins loads the builtin programs enabled by the given feature set.
// With a nil set the engine's current feature set decides.
func (c *Core) SetBuiltins(features *svm.FeatureSet) error {
	return c.engine.SetBuiltins(svm.ToActivationPairs(features))
}

// SetPrecompiles loads the precompiled programs enabled by the given feature
// set. With a nil set the engine's current feature set decides.
func (c *Core) SetPrecompiles(features *svm.FeatureSet) error {
	return c.engine.SetPrecompiles(svm.ToActivationPairs(features))
}

func (c *Core) SetLamports(lamports uint64) {
	c.engine.SetLamports(lamports)
}

func (c *Core) SetDefaultPrograms() {
	c.engine.SetDefaultPrograms()
}

func (c *Core) SetTransactionHistory(capacity uint64) {
	c.engine.SetTransactionHistory(capacity)
}

// SetLogBytesLimit bounds the log size of transactions, nil removes the
// bound.
func (c *Core) SetLogBytesLimit(limit *uint64) {
	if limit == nil {
		c.engine.SetLogBytesLimit(0, false)
		return
	}
	c.engine.SetLogBytesLimit(*limit, true)
}

// ComputeBudget returns the budget installed in the engine, nil if the engine
// uses its built-in defaults.
func (c *Core) ComputeBudget() (*svm.ComputeBudget, error) {
	values, found := c.engine.ComputeBudget()
	if !found {
		return nil, nil
	}
	budget, err := svm.UnmarshalComputeBudget(values)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (c *Core) Sigverify() bool {
	return c.engine.Sigverify()
}

// --- accounts and chain state ---

func (c *Core) MinimumBalanceForRentExemption(dataLen uint64) uint64 {
	return c.engine.MinimumBalanceForRentExemption(dataLen)
}

// GetAccount fetches the account stored at the given address. A missing
// account is reported as nil without an error.
func (c *Core) GetAccount(address svm.Address) (*svm.Account, error) {
	record, found := c.engine.GetAccount(address.Bytes())
	if !found {
		return nil, nil
	}
	account, err := svm.DecodeAccount(record)
	if err != nil {
		return nil, fmt.Errorf("account %v: %w", address, err)
	}
	return &account, nil
}

func (c *Core) SetAccount(address svm.Address, account svm.Account) error {
	return c.engine.SetAccount(address.Bytes(), svm.EncodeAccount(account))
}

func (c *Core) GetBalance(address svm.Address) (uint64, bool) {
	return c.engine.GetBalance(address.Bytes())
}

func (c *Core) LatestBlockhash() (svm.Hash, error) {
	return svm.HashFromBytes(c.engine.LatestBlockhash())
}

func (c *Core) ExpireBlockhash() {
	c.engine.ExpireBlockhash()
}

func (c *Core) WarpToSlot(slot uint64) {
	c.engine.WarpToSlot(slot)
}

// Airdrop transfers lamports from the engine's faucet to the given address.
func (c *Core) Airdrop(address svm.Address, lamports uint64) (*Outcome, error) {
	return translateResult(c.engine.Airdrop(address.Bytes(), lamports), nil)
}

// GetTransaction looks up a processed transaction in the engine's history.
// The inner instructions of the result are not resolved to addresses since
// the message of the transaction is not retained.
func (c *Core) GetTransaction(signature svm.Signature) (*Outcome, error) {
	result, found := c.engine.GetTransaction(signature.Bytes())
	if !found {
		return nil, nil
	}
	return translateResult(result, nil)
}

func (c *Core) AddProgram(programID svm.Address, program []byte) error {
	return c.engine.AddProgram(programID.Bytes(), program)
}

// AddProgramFromFile loads the program from the given path. Reading the
// file is left to the engine.
func (c *Core) AddProgramFromFile(programID svm.Address, path string) error {
	return c.engine.AddProgramFromFile(programID.Bytes(), path)
}

func (c *Core) Snapshot() {
	c.engine.Snapshot()
}

func (c *Core) Revert() {
	c.engine.Revert()
}

// --- sysvars ---

func (c *Core) Clock() (svm.Clock, error) {
	return getSysvar[svm.Clock](c, svm.ClockSysvarID)
}

func (c *Core) SetClock(clock svm.Clock) error {
	return c.setSysvar(svm.ClockSysvarID, clock)
}

func (c *Core) Rent() (svm.Rent, error) {
	return getSysvar[svm.Rent](c, svm.RentSysvarID)
}

func (c *Core) SetRent(rent svm.Rent) error {
	return c.setSysvar(svm.RentSysvarID, rent)
}

func (c *Core) EpochRewards() (svm.EpochRewards, error) {
	return getSysvar[svm.EpochRewards](c, svm.EpochRewardsSysvarID)
}

func (c *Core) SetEpochRewards(rewards svm.EpochRewards) error {
	return c.setSysvar(svm.EpochRewardsSysvarID, rewards)
}

func (c *Core) EpochSchedule() (svm.EpochSchedule, error) {
	return getSysvar[svm.EpochSchedule](c, svm.EpochScheduleSysvarID)
}

func (c *Core) SetEpochSchedule(schedule svm.EpochSchedule) error {
	return c.setSysvar(svm.EpochScheduleSysvarID, schedule)
}

func (c *Core) LastRestartSlot() (uint64, error) {
	res, err := getSysvar[svm.LastRestartSlot](c, svm.LastRestartSlotSysvarID)
	return res.LastRestartSlot, err
}

func (c *Core) SetLastRestartSlot(slot uint64) error {
	return c.setSysvar(svm.LastRestartSlotSysvarID, svm.LastRestartSlot{LastRestartSlot: slot})
}

func (c *Core) SlotHashes() (svm.SlotHashes, error) {
	return getSysvar[svm.SlotHashes](c, svm.SlotHashesSysvarID)
}

func (c *Core) SetSlotHashes(hashes svm.SlotHashes) error {
	return c.setSysvar(svm.SlotHashesSysvarID, hashes)
}

func (c *Core) SlotHistory() (svm.SlotHistory, error) {
	return getSysvar[svm.SlotHistory](c, svm.SlotHistorySysvarID)
}

func (c *Core) SetSlotHistory(history svm.SlotHistory) error {
	return c.setSysvar(svm.SlotHistorySysvarID, history)
}

func (c *Core) StakeHistory() (svm.StakeHistory, error) {
	return getSysvar[svm.StakeHistory](c, svm.StakeHistorySysvarID)
}

func (c *Core) SetStakeHistory(history svm.StakeHistory) error {
	return c.setSysvar(svm.StakeHistorySysvarID, history)
}

type sysvar[T any] interface {
	*T
	encoding.BinaryUnmarshaler
}

func getSysvar[T any, P sysvar[T]](c *Core, id svm.Address) (T, error) {
	var res T
	data, found := c.engine.GetSysvar(id.Bytes())
	if !found {
		return res, fmt.Errorf("sysvar %v not available", id)
	}
	err := P(&res).UnmarshalBinary(data)
	return res, err
}

func (c *Core) setSysvar(id svm.Address, value encoding.BinaryMarshaler) error {
	data, err := value.MarshalBinary()
	if err != nil {
		return err
	}
	return c.engine.SetSysvar(id.Bytes(), data)
}
