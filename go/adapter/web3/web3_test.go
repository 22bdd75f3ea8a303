// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package web3

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Fantom-foundation/svmbridge/go/engine/memory"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/mock/gomock"
)

var counterProgramID = solana.PublicKey{0xc0, 0x01}

// counterProgram increments the first byte of its only account.
func counterProgram(ctx *memory.InstructionContext) *svm.InstructionError {
	if len(ctx.Accounts) != 1 || len(ctx.Accounts[0].Account.Data) == 0 {
		return &svm.InstructionError{Kind: svm.IxNotEnoughAccountKeys}
	}
	ctx.Accounts[0].Account.Data[0]++
	return nil
}

var echoProgramID = solana.PublicKey{0xc0, 0x03}

// echoProgram returns its instruction data after charging a few compute units.
func echoProgram(ctx *memory.InstructionContext) *svm.InstructionError {
	before := ctx.RemainingUnits()
	if err := ctx.ConsumeUnits(7); err != nil {
		return err
	}
	if before-ctx.RemainingUnits() != 7 {
		return &svm.InstructionError{Kind: svm.IxGenericError}
	}
	ctx.SetReturnData(ctx.Data)
	return nil
}

func newLedger(t *testing.T) *LiteSVM {
	t.Helper()
	engine, err := memory.New(memory.Config{
		Programs: map[svm.Address]memory.Program{
			svm.Address(counterProgramID): memory.ProgramFunc(counterProgram),
			svm.Address(echoProgramID):    memory.ProgramFunc(echoProgram),
		},
	})
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return New(engine)
}

func newKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatalf("failed to create key: %v", err)
	}
	return key
}

func newPayer(t *testing.T, ledger *LiteSVM) solana.PrivateKey {
	t.Helper()
	payer := newKey(t)
	result, err := ledger.Airdrop(payer.PublicKey(), 10*solana.LAMPORTS_PER_SOL)
	if err != nil {
		t.Fatalf("failed to airdrop: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("airdrop failed: %v", result.(*FailedTransactionMetadata).Err.String())
	}
	return payer
}

func newTransaction(t *testing.T, ledger *LiteSVM, signers []solana.PrivateKey, instructions ...solana.Instruction) *solana.Transaction {
	t.Helper()
	blockhash, err := ledger.LatestBlockhash()
	if err != nil {
		t.Fatalf("failed to get blockhash: %v", err)
	}
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(signers[0].PublicKey()))
	if err != nil {
		t.Fatalf("failed to build transaction: %v", err)
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to sign transaction: %v", err)
	}
	return tx
}

func TestLiteSVM_CounterProgramIncrementsAccountData(t *testing.T) {
	ledger := newLedger(t)
	payer := newPayer(t, ledger)
	counter := newKey(t).PublicKey()
	err := ledger.SetAccount(counter, AccountInfo{
		Lamports: ledger.MinimumBalanceForRentExemption(4),
		Owner:    counterProgramID,
		Data:     []byte{0, 0, 0, 0},
	})
	if err != nil {
		t.Fatalf("failed to set account: %v", err)
	}

	ix := solana.NewInstruction(counterProgramID, solana.AccountMetaSlice{solana.Meta(counter).WRITE()}, nil)
	result, err := ledger.SendTransaction(newTransaction(t, ledger, []solana.PrivateKey{payer}, ix))
	if err != nil {
		t.Fatalf("failed to send transaction: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("transaction failed:\n%s", result.Metadata().PrettyLogs())
	}

	account, err := ledger.GetAccount(counter)
	if err != nil || account == nil {
		t.Fatalf("failed to get counter: %v", err)
	}
	if want := []byte{1, 0, 0, 0}; !bytes.Equal(account.Data, want) {
		t.Errorf("unexpected counter data, wanted %v, got %v", want, account.Data)
	}
	if account.Owner != counterProgramID {
		t.Errorf("unexpected owner %v", account.Owner)
	}
}

func TestLiteSVM_ReturnDataOfProgramsIsReported(t *testing.T) {
	ledger := newLedger(t)
	payer := newPayer(t, ledger)
	ix := solana.NewInstruction(echoProgramID, solana.AccountMetaSlice{}, []byte{1, 2, 3})
	tx := newTransaction(t, ledger, []solana.PrivateKey{payer}, ix)

	simulated, err := ledger.SimulateTransaction(tx)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	sent, err := ledger.SendTransaction(tx)
	if err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	for name, result := range map[string]SimulateResult{"simulate": simulated, "send": sent} {
		if !result.IsSuccess() {
			t.Fatalf("%s failed:\n%s", name, result.Metadata().PrettyLogs())
		}
		meta := result.Metadata()
		if meta.ReturnData.ProgramID != echoProgramID {
			t.Errorf("%s: unexpected return data program %v", name, meta.ReturnData.ProgramID)
		}
		if want := []byte{1, 2, 3}; !bytes.Equal(meta.ReturnData.Data, want) {
			t.Errorf("%s: unexpected return data, wanted %v, got %v", name, want, meta.ReturnData.Data)
		}
		if meta.ComputeUnitsConsumed < 7 {
			t.Errorf("%s: consumed units not reported, got %d", name, meta.ComputeUnitsConsumed)
		}
	}
}

func TestLiteSVM_MissingAccountIsNil(t *testing.T) {
	ledger := newLedger(t)
	account, err := ledger.GetAccount(newKey(t).PublicKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account != nil {
		t.Errorf("expected nil for missing account, got %+v", account)
	}
	if _, found := ledger.GetBalance(newKey(t).PublicKey()); found {
		t.Errorf("missing account should have no balance")
	}
}

func TestLiteSVM_SimulateThenSendProduceSameLogs(t *testing.T) {
	ledger := newLedger(t)
	payer := newPayer(t, ledger)
	recipient := newKey(t).PublicKey()
	tx := newTransaction(t, ledger, []solana.PrivateKey{payer},
		system.NewTransferInstruction(solana.LAMPORTS_PER_SOL, payer.PublicKey(), recipient).Build(),
	)

	simulated, err := ledger.SimulateTransaction(tx)
	if err != nil {
		t.Fatalf("failed to simulate: %v", err)
	}
	info, ok := simulated.(*SimulatedTransactionInfo)
	if !ok {
		t.Fatalf("simulation failed:\n%s", simulated.Metadata().PrettyLogs())
	}
	if _, found := ledger.GetBalance(recipient); found {
		t.Errorf("simulation modified the ledger")
	}
	found := slices.ContainsFunc(info.PostAccounts, func(entry AccountEntry) bool {
		return entry.Address == recipient && entry.Account.Lamports == solana.LAMPORTS_PER_SOL
	})
	if !found {
		t.Errorf("recipient missing in post accounts %+v", info.PostAccounts)
	}

	sent, err := ledger.SendTransaction(tx)
	if err != nil {
		t.Fatalf("failed to send: %v", err)
	}
	if !sent.IsSuccess() {
		t.Fatalf("transaction failed")
	}
	if !slices.Equal(sent.Metadata().Logs, info.Meta.Logs) {
		t.Errorf("logs differ, simulated %v, sent %v", info.Meta.Logs, sent.Metadata().Logs)
	}
	if sent.Metadata().Signature != tx.Signatures[0] {
		t.Errorf("unexpected signature %v", sent.Metadata().Signature)
	}
	if balance, _ := ledger.GetBalance(recipient); balance != solana.LAMPORTS_PER_SOL {
		t.Errorf("unexpected recipient balance %d", balance)
	}

	recorded, err := ledger.GetTransaction(tx.Signatures[0])
	if err != nil || recorded == nil || !recorded.IsSuccess() {
		t.Errorf("transaction not recorded, got %v, %v", recorded, err)
	}
}

func TestLiteSVM_FailedTransactionIsAResultNotAnError(t *testing.T) {
	ledger := newLedger(t)
	payer := newPayer(t, ledger)
	tx := newTransaction(t, ledger, []solana.PrivateKey{payer},
		system.NewTransferInstruction(100*solana.LAMPORTS_PER_SOL, payer.PublicKey(), newKey(t).PublicKey()).Build(),
	)

	result, err := ledger.SendTransaction(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	failed, ok := result.(*FailedTransactionMetadata)
	if !ok {
		t.Fatalf("expected failure, got %T", result)
	}
	want := svm.NewInstructionError(0, svm.CustomError(1))
	if !failed.Err.Equal(want) {
		t.Errorf("unexpected error, wanted %v, got %v", want, &failed.Err)
	}
	if failed.Metadata().Signature != tx.Signatures[0] {
		t.Errorf("unexpected signature %v", failed.Meta.Signature)
	}
}

func TestLiteSVM_UnsignedTransactionIsRejectedBeforeReachingTheEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	engine.EXPECT().Sigverify().Return(true)

	payer := newKey(t).PublicKey()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, payer, newKey(t).PublicKey()).Build()},
		solana.Hash{},
		solana.TransactionPayer(payer),
	)
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(engine).SendTransaction(tx)
	if !errors.Is(err, svm.ErrMissingSignatures) {
		t.Errorf("expected missing signatures, got %v", err)
	}
}

func TestLiteSVM_UnsignedTransactionIsAcceptedWithoutSigverify(t *testing.T) {
	ledger := newLedger(t).WithSigverify(false)
	payer := newPayer(t, ledger)
	recipient := newKey(t).PublicKey()
	blockhash, err := ledger.LatestBlockhash()
	if err != nil {
		t.Fatal(err)
	}
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(solana.LAMPORTS_PER_SOL, payer.PublicKey(), recipient).Build()},
		blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := ledger.SendTransaction(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("transaction failed: %v", result.(*FailedTransactionMetadata).Err.String())
	}
	if ledger.GetSigverify() {
		t.Errorf("signature verification should be disabled")
	}
	if balance, _ := ledger.GetBalance(recipient); balance != solana.LAMPORTS_PER_SOL {
		t.Errorf("unexpected balance %d", balance)
	}
}

func TestLiteSVM_ConfigurationIsForwardedInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	limit := uint64(1024)
	gomock.InOrder(
		engine.EXPECT().SetComputeBudget(svm.MarshalComputeBudget(svm.DefaultComputeBudget())),
		engine.EXPECT().SetSigverify(false),
		engine.EXPECT().SetBlockhashCheck(true),
		engine.EXPECT().SetSysvars(),
		engine.EXPECT().SetBuiltins(gomock.Nil(), gomock.Nil()),
		engine.EXPECT().SetLamports(uint64(7)),
		engine.EXPECT().SetDefaultPrograms(),
		engine.EXPECT().SetTransactionHistory(uint64(0)),
		engine.EXPECT().SetLogBytesLimit(limit, true),
		engine.EXPECT().SetPrecompiles(gomock.Nil(), gomock.Nil()),
	)

	New(engine).
		WithComputeBudget(svm.DefaultComputeBudget()).
		WithSigverify(false).
		WithBlockhashCheck(true).
		WithSysvars().
		WithBuiltins(nil).
		WithLamports(7).
		WithDefaultPrograms().
		WithTransactionHistory(0).
		WithLogBytesLimit(&limit).
		WithPrecompiles(nil)
}

func TestLiteSVM_RejectedConfigurationPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	engine.EXPECT().SetFeatureSet(gomock.Any(), gomock.Any()).Return(errors.New("injected"))

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "injected") {
			t.Errorf("expected panic with engine error, got %v", r)
		}
	}()
	New(engine).WithFeatureSet(svm.NewFeatureSet())
}

func TestLiteSVM_InnerInstructionsKeepMessageIndices(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	payer := newKey(t)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, payer.PublicKey(), newKey(t).PublicKey()).Build()},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		t.Fatal(err)
	}
	engine.EXPECT().Sigverify().Return(false)
	engine.EXPECT().SendLegacyTransaction(gomock.Any()).Return(svm.TransactionResult{
		Success: &svm.TransactionMetadata{
			Signature: make([]byte, 64),
			InnerInstructions: [][]svm.InnerInstruction{{{
				Instruction: svm.CompiledInstruction{ProgramIDIndex: 2, Accounts: []uint8{0, 1}, Data: []byte{3}},
				StackHeight: 2,
			}}},
			ReturnData: svm.ReturnData{ProgramID: make([]byte, 32), Data: []byte{9}},
		},
	})

	result, err := New(engine).SendTransaction(tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := result.Metadata()
	if len(meta.InnerInstructions) != 1 || len(meta.InnerInstructions[0]) != 1 {
		t.Fatalf("unexpected inner instructions %+v", meta.InnerInstructions)
	}
	inner := meta.InnerInstructions[0][0]
	if inner.Instruction.ProgramIDIndex != 2 || !slices.Equal(inner.Instruction.Accounts, []uint16{0, 1}) || inner.StackHeight != 2 {
		t.Errorf("unexpected inner instruction %+v", inner)
	}
	if !bytes.Equal(inner.Instruction.Data, []byte{3}) {
		t.Errorf("unexpected data %v", inner.Instruction.Data)
	}
	if !bytes.Equal(meta.ReturnData.Data, []byte{9}) {
		t.Errorf("unexpected return data %+v", meta.ReturnData)
	}
}

func TestLiteSVM_UnknownTransactionIsNil(t *testing.T) {
	ledger := newLedger(t)
	result, err := ledger.GetTransaction(solana.Signature{1})
	if err != nil || result != nil {
		t.Errorf("expected nil result, got %v, %v", result, err)
	}
}

func TestLiteSVM_SysvarsRoundTrip(t *testing.T) {
	ledger := newLedger(t)
	ledger.WarpToSlot(99)
	clock, err := ledger.GetClock()
	if err != nil {
		t.Fatalf("failed to get clock: %v", err)
	}
	if clock.Slot != 99 {
		t.Errorf("unexpected slot %d", clock.Slot)
	}
	clock.UnixTimestamp = 1_700_000_000
	if err := ledger.SetClock(clock); err != nil {
		t.Fatalf("failed to set clock: %v", err)
	}
	restored, err := ledger.GetClock()
	if err != nil || restored != clock {
		t.Errorf("unexpected clock %+v, %v", restored, err)
	}

	if err := ledger.SetLastRestartSlot(12); err != nil {
		t.Fatalf("failed to set last restart slot: %v", err)
	}
	if slot, err := ledger.GetLastRestartSlot(); err != nil || slot != 12 {
		t.Errorf("unexpected last restart slot %d, %v", slot, err)
	}
}

func TestLiteSVM_SnapshotAndRevert(t *testing.T) {
	ledger := newLedger(t)
	address := newKey(t).PublicKey()
	ledger.Snapshot()
	if err := ledger.SetAccount(address, AccountInfo{Lamports: 1, Owner: solana.SystemProgramID}); err != nil {
		t.Fatal(err)
	}
	ledger.Revert()
	if account, err := ledger.GetAccount(address); err != nil || account != nil {
		t.Errorf("revert did not remove account: %+v, %v", account, err)
	}
}
