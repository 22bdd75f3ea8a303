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
	"crypto/sha256"
	"encoding"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"
)

var bpfLoaderID = svm.MustAddressFromBase58("BPFLoader2111111111111111111111111111111111")

func genesisBlockhash() svm.Hash {
	return sha256.Sum256([]byte("genesis"))
}

func nextBlockhash(previous svm.Hash) svm.Hash {
	return sha256.Sum256(previous[:])
}

// installBuiltins registers the programs every ledger carries.
func (e *Engine) installBuiltins() {
	e.builtins[svm.SystemProgramID] = ProgramFunc(systemProgram)
	e.builtins[svm.ComputeBudgetProgramID] = ProgramFunc(computeBudgetProgram)
	e.installNative(svm.SystemProgramID)
	e.installNative(svm.ComputeBudgetProgramID)
}

// installNative creates the executable account of a program implemented by
// the engine itself.
func (e *Engine) installNative(id svm.Address) {
	e.accounts[id] = svm.Account{
		Lamports:   1,
		Data:       []byte(id.String()),
		Owner:      svm.NativeLoaderID,
		Executable: true,
	}
}

// program resolves the implementation of a program.
func (e *Engine) program(id svm.Address) (Program, bool) {
	if program, found := e.builtins[id]; found {
		return program, true
	}
	program, found := e.programs[id]
	return program, found
}

var sysvarIDs = []svm.Address{
	svm.ClockSysvarID,
	svm.RentSysvarID,
	svm.EpochScheduleSysvarID,
	svm.EpochRewardsSysvarID,
	svm.SlotHashesSysvarID,
	svm.SlotHistorySysvarID,
	svm.StakeHistorySysvarID,
	svm.LastRestartSlotSysvarID,
}

func isSysvar(id svm.Address) bool {
	for _, cur := range sysvarIDs {
		if cur == id {
			return true
		}
	}
	return false
}

// SetSysvars resets all sysvars to the state of a fresh ledger.
func (e *Engine) SetSysvars() {
	e.storeSysvar(svm.RentSysvarID, svm.DefaultRent())
	e.storeSysvar(svm.ClockSysvarID, svm.Clock{})
	e.storeSysvar(svm.EpochScheduleSysvarID, svm.DefaultEpochSchedule())
	e.storeSysvar(svm.EpochRewardsSysvarID, svm.EpochRewards{})
	e.storeSysvar(svm.SlotHashesSysvarID, svm.SlotHashes{}.Add(0, e.blockhash))
	e.storeSysvar(svm.SlotHistorySysvarID, svm.DefaultSlotHistory())
	e.storeSysvar(svm.StakeHistorySysvarID, svm.StakeHistory{})
	e.storeSysvar(svm.LastRestartSlotSysvarID, svm.LastRestartSlot{})
}

func (e *Engine) storeSysvar(id svm.Address, value encoding.BinaryMarshaler) {
	data, err := value.MarshalBinary()
	if err != nil {
		e.log.Error("failed to encode sysvar", zap.Stringer("sysvar", id), zap.Error(err))
		return
	}
	e.storeSysvarData(id, data)
}

func (e *Engine) storeSysvarData(id svm.Address, data []byte) {
	e.accounts[id] = svm.Account{
		Lamports: max(1, e.rent().MinimumBalance(uint64(len(data)))),
		Data:     data,
		Owner:    svm.SysvarOwnerID,
	}
}

// Airdrop transfers lamports from the faucet to the given address using a
// regular system transfer signed by the faucet. Repeating an airdrop of the
// same amount to the same address is rejected as a duplicate until the
// blockhash changes.
func (e *Engine) Airdrop(address []byte, lamports uint64) svm.TransactionResult {
	recipient, err := svm.AddressFromBytes(address)
	if err != nil {
		return sanitizeFailure()
	}
	payer := e.faucet.PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, payer, solana.PublicKey(recipient)).Build(),
		},
		solana.Hash(e.blockhash),
		solana.TransactionPayer(payer),
	)
	if err != nil {
		e.log.Error("failed to build airdrop", zap.Error(err))
		return sanitizeFailure()
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &e.faucet
		}
		return nil
	}); err != nil {
		e.log.Error("failed to sign airdrop", zap.Error(err))
		return sanitizeFailure()
	}
	data, err := tx.MarshalBinary()
	if err != nil {
		e.log.Error("failed to encode airdrop", zap.Error(err))
		return sanitizeFailure()
	}
	return e.SendLegacyTransaction(data)
}

type snapshot struct {
	accounts  map[svm.Address]svm.Account
	blockhash svm.Hash
	history   []historyEntry
}

type historyEntry struct {
	signature svm.Signature
	result    svm.TransactionResult
}

func (e *Engine) takeSnapshot() snapshot {
	res := snapshot{
		accounts:  make(map[svm.Address]svm.Account, len(e.accounts)),
		blockhash: e.blockhash,
	}
	for address, account := range e.accounts {
		res.accounts[address] = account.Clone()
	}
	if e.history != nil {
		for _, sig := range e.history.Keys() {
			if result, found := e.history.Peek(sig); found {
				res.history = append(res.history, historyEntry{sig, result})
			}
		}
	}
	return res
}

func (e *Engine) restoreSnapshot(s snapshot) {
	e.accounts = s.accounts
	e.blockhash = s.blockhash
	if e.history != nil {
		e.history.Purge()
		for _, entry := range s.history {
			e.history.Add(entry.signature, entry.result)
		}
	}
}
