// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memory provides an engine keeping the complete ledger in memory.
// Programs are implemented in Go; compiled BPF programs can be stored but
// not executed.
package memory

import (
	"errors"
	"fmt"
	"os"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// DefaultLamports is the initial balance of the airdrop faucet.
	DefaultLamports = 1_000_000 * LamportsPerSol
	LamportsPerSol  = 1_000_000_000

	// DefaultTransactionHistory is the number of processed transactions kept
	// for duplicate detection and lookup.
	DefaultTransactionHistory = 500

	// DefaultLogBytesLimit is the number of log bytes a transaction may
	// produce before its logs are truncated.
	DefaultLogBytesLimit = 10_000

	LamportsPerSignature = 5000
)

var _ svm.Engine = (*Engine)(nil)

func init() {
	if err := svm.RegisterEngineFactory("memory", newEngineFromConfig); err != nil {
		panic(err)
	}
}

// Config customizes engines created by New.
type Config struct {
	// Bare creates an engine without sysvars, programs, faucet funds, or
	// signature and blockhash checks. All of them can be enabled through the
	// Engine interface later on.
	Bare bool

	// Programs are installed as executable accounts when the engine is
	// created.
	Programs map[svm.Address]Program

	Logger *zap.Logger
}

func newEngineFromConfig(config any) (svm.Engine, error) {
	switch c := config.(type) {
	case nil:
		return New(Config{})
	case Config:
		return New(c)
	case *Config:
		if c == nil {
			return New(Config{})
		}
		return New(*c)
	}
	return nil, fmt.Errorf("unsupported memory engine configuration of type %T", config)
}

// Engine is an svm.Engine keeping all accounts in memory. It is not safe for
// concurrent use.
type Engine struct {
	accounts  map[svm.Address]svm.Account
	blockhash svm.Hash
	snapshots []snapshot

	programs map[svm.Address]Program
	builtins map[svm.Address]Program

	budget         *svm.ComputeBudget
	features       *svm.FeatureSet
	sigverify      bool
	blockhashCheck bool
	logLimit       *uint64

	history         *lru.Cache[svm.Signature, svm.TransactionResult]
	historyCapacity uint64

	faucet solana.PrivateKey
	log    *zap.Logger
}

// New creates an engine. Unless configured otherwise, it is set up like a
// fresh local test validator: all sysvars, the system program, a funded
// faucet, and signature and blockhash verification enabled.
func New(config Config) (*Engine, error) {
	faucet, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to create faucet key: %w", err)
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		accounts:  map[svm.Address]svm.Account{},
		blockhash: genesisBlockhash(),
		programs:  map[svm.Address]Program{},
		builtins:  map[svm.Address]Program{},
		features:  svm.NewFeatureSet(),
		faucet:    faucet,
		log:       log,
	}
	e.installBuiltins()
	for id, program := range config.Programs {
		if program == nil {
			return nil, fmt.Errorf("program %v is nil", id)
		}
		e.programs[id] = program
		e.installNative(id)
	}
	if config.Bare {
		return e, nil
	}
	e.SetSysvars()
	e.SetLamports(DefaultLamports)
	e.SetDefaultPrograms()
	e.SetTransactionHistory(DefaultTransactionHistory)
	e.SetLogBytesLimit(DefaultLogBytesLimit, true)
	e.sigverify = true
	e.blockhashCheck = true
	return e, nil
}

func (e *Engine) SetComputeBudget(values []uint64) error {
	budget, err := svm.UnmarshalComputeBudget(values)
	if err != nil {
		return err
	}
	e.budget = &budget
	return nil
}

func (e *Engine) ComputeBudget() ([]uint64, bool) {
	if e.budget == nil {
		return nil, false
	}
	return svm.MarshalComputeBudget(*e.budget), true
}

func (e *Engine) computeBudget() svm.ComputeBudget {
	if e.budget == nil {
		return svm.DefaultComputeBudget()
	}
	return *e.budget
}

func (e *Engine) SetSigverify(enabled bool) {
	e.sigverify = enabled
}

func (e *Engine) Sigverify() bool {
	return e.sigverify
}

func (e *Engine) SetBlockhashCheck(enabled bool) {
	e.blockhashCheck = enabled
}

func (e *Engine) SetFeatureSet(ids [][]byte, slots []uint64) error {
	features, err := svm.FromActivationPairs(ids, slots)
	if err != nil {
		return err
	}
	e.features = features
	return nil
}

// SetBuiltins installs the builtin programs. The optional feature set
// replaces the one of the engine.
func (e *Engine) SetBuiltins(ids [][]byte, slots []uint64) error {
	if ids != nil || slots != nil {
		if err := e.SetFeatureSet(ids, slots); err != nil {
			return err
		}
	}
	e.installBuiltins()
	return nil
}

// SetPrecompiles installs the ed25519 signature verification precompile.
// Precompiles are present as executable accounts but cannot be invoked by
// this engine.
func (e *Engine) SetPrecompiles(ids [][]byte, slots []uint64) error {
	if ids != nil || slots != nil {
		if err := e.SetFeatureSet(ids, slots); err != nil {
			return err
		}
	}
	e.installNative(svm.Ed25519PrecompileProgramID)
	return nil
}

// SetLamports sets the balance of the airdrop faucet.
func (e *Engine) SetLamports(lamports uint64) {
	e.accounts[e.faucetAddress()] = svm.Account{
		Lamports: lamports,
		Owner:    svm.SystemProgramID,
	}
}

// SetDefaultPrograms installs the memo program.
func (e *Engine) SetDefaultPrograms() {
	e.programs[memoProgramID] = ProgramFunc(memoProgram)
	e.installNative(memoProgramID)
}

// SetTransactionHistory resizes the transaction history. A capacity of zero
// disables it, which also disables duplicate detection.
func (e *Engine) SetTransactionHistory(capacity uint64) {
	e.historyCapacity = capacity
	if capacity == 0 {
		e.history = nil
		return
	}
	size := int(min(capacity, uint64(maxInt)))
	if e.history != nil {
		e.history.Resize(size)
		return
	}
	history, err := lru.New[svm.Signature, svm.TransactionResult](size)
	if err != nil {
		// only fails for non-positive sizes
		panic(err)
	}
	e.history = history
}

const maxInt = int(^uint(0) >> 1)

func (e *Engine) SetLogBytesLimit(limit uint64, limited bool) {
	if !limited {
		e.logLimit = nil
		return
	}
	e.logLimit = &limit
}

func (e *Engine) MinimumBalanceForRentExemption(dataLen uint64) uint64 {
	return e.rent().MinimumBalance(dataLen)
}

func (e *Engine) rent() svm.Rent {
	if account, found := e.accounts[svm.RentSysvarID]; found {
		var rent svm.Rent
		if err := rent.UnmarshalBinary(account.Data); err == nil {
			return rent
		}
	}
	return svm.DefaultRent()
}

func (e *Engine) GetAccount(address []byte) (svm.AccountRecord, bool) {
	key, err := svm.AddressFromBytes(address)
	if err != nil {
		return svm.AccountRecord{}, false
	}
	account, found := e.accounts[key]
	if !found {
		return svm.AccountRecord{}, false
	}
	return svm.EncodeAccount(account), true
}

func (e *Engine) SetAccount(address []byte, record svm.AccountRecord) error {
	key, err := svm.AddressFromBytes(address)
	if err != nil {
		return err
	}
	account, err := svm.DecodeAccount(record)
	if err != nil {
		return err
	}
	e.accounts[key] = account
	return nil
}

func (e *Engine) GetBalance(address []byte) (uint64, bool) {
	key, err := svm.AddressFromBytes(address)
	if err != nil {
		return 0, false
	}
	account, found := e.accounts[key]
	return account.Lamports, found
}

func (e *Engine) LatestBlockhash() []byte {
	return e.blockhash.Bytes()
}

// ExpireBlockhash replaces the latest blockhash, invalidating transactions
// referencing the previous one.
func (e *Engine) ExpireBlockhash() {
	e.blockhash = nextBlockhash(e.blockhash)
}

// WarpToSlot moves the clock to the given slot.
func (e *Engine) WarpToSlot(slot uint64) {
	var clock svm.Clock
	if account, found := e.accounts[svm.ClockSysvarID]; found {
		if err := clock.UnmarshalBinary(account.Data); err != nil {
			e.log.Warn("replacing malformed clock sysvar", zap.Error(err))
			clock = svm.Clock{}
		}
	}
	clock.Slot = slot
	e.storeSysvar(svm.ClockSysvarID, clock)
}

func (e *Engine) GetTransaction(signature []byte) (svm.TransactionResult, bool) {
	sig, err := svm.SignatureFromBytes(signature)
	if err != nil || e.history == nil {
		return svm.TransactionResult{}, false
	}
	return e.history.Peek(sig)
}

func (e *Engine) AddProgram(id []byte, program []byte) error {
	key, err := svm.AddressFromBytes(id)
	if err != nil {
		return err
	}
	e.accounts[key] = svm.Account{
		Lamports:   e.MinimumBalanceForRentExemption(uint64(len(program))),
		Data:       append([]byte(nil), program...),
		Owner:      bpfLoaderID,
		Executable: true,
	}
	return nil
}

func (e *Engine) AddProgramFromFile(id []byte, path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.AddProgram(id, program)
}

func (e *Engine) SendLegacyTransaction(data []byte) svm.TransactionResult {
	return e.send(data, svm.Legacy)
}

func (e *Engine) SendVersionedTransaction(data []byte) svm.TransactionResult {
	return e.send(data, svm.Versioned(0))
}

func (e *Engine) SimulateLegacyTransaction(data []byte) svm.SimulateResult {
	return e.simulate(data, svm.Legacy)
}

func (e *Engine) SimulateVersionedTransaction(data []byte) svm.SimulateResult {
	return e.simulate(data, svm.Versioned(0))
}

func (e *Engine) GetSysvar(id []byte) ([]byte, bool) {
	key, err := svm.AddressFromBytes(id)
	if err != nil {
		return nil, false
	}
	account, found := e.accounts[key]
	if !found || account.Owner != svm.SysvarOwnerID {
		return nil, false
	}
	return append([]byte(nil), account.Data...), true
}

var errUnknownSysvar = errors.New("unknown sysvar")

func (e *Engine) SetSysvar(id []byte, data []byte) error {
	key, err := svm.AddressFromBytes(id)
	if err != nil {
		return err
	}
	if !isSysvar(key) {
		return fmt.Errorf("%w: %v", errUnknownSysvar, key)
	}
	e.storeSysvarData(key, append([]byte(nil), data...))
	return nil
}

// Snapshot saves the current ledger state. The saved state is restored and
// dropped by the next call to Revert.
func (e *Engine) Snapshot() {
	e.snapshots = append(e.snapshots, e.takeSnapshot())
}

// Revert restores the state saved by the latest Snapshot. Without a saved
// state, it is a no-op.
func (e *Engine) Revert() {
	if len(e.snapshots) == 0 {
		return
	}
	last := e.snapshots[len(e.snapshots)-1]
	e.snapshots = e.snapshots[:len(e.snapshots)-1]
	e.restoreSnapshot(last)
}

// FaucetAddress returns the address funding airdrops.
func (e *Engine) FaucetAddress() svm.Address {
	return e.faucetAddress()
}

func (e *Engine) faucetAddress() svm.Address {
	return svm.Address(e.faucet.PublicKey())
}
