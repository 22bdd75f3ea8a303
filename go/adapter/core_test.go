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
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"go.uber.org/mock/gomock"
)

func TestCore_ComputeBudgetPositionsSurviveTheEngineBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	var budget svm.ComputeBudget
	for i, field := range svm.ComputeBudgetFields {
		field.Set(&budget, uint64(i+1)*7)
	}

	var received []uint64
	engine.EXPECT().SetComputeBudget(gomock.Any()).DoAndReturn(func(values []uint64) error {
		received = values
		return nil
	})
	if err := core.SetComputeBudget(budget); err != nil {
		t.Fatalf("failed to set budget: %v", err)
	}
	for i, field := range svm.ComputeBudgetFields {
		if want, got := uint64(i+1)*7, received[i]; want != got {
			t.Errorf("field %s at position %d: wanted %d, got %d", field.Name, i, want, got)
		}
	}

	engine.EXPECT().ComputeBudget().Return(received, true)
	restored, err := core.ComputeBudget()
	if err != nil {
		t.Fatalf("failed to get budget: %v", err)
	}
	if *restored != budget {
		t.Errorf("unexpected restored budget %+v", restored)
	}
}

func TestCore_MissingComputeBudgetIsNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	engine.EXPECT().ComputeBudget().Return(nil, false)
	budget, err := NewCore(engine).ComputeBudget()
	if budget != nil || err != nil {
		t.Errorf("unexpected result %v, %v", budget, err)
	}
}

func TestCore_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	present := svm.Address{1}
	missing := svm.Address{2}
	broken := svm.Address{3}
	engine.EXPECT().GetAccount(present.Bytes()).Return(svm.AccountRecord{
		Lamports: 10, Data: []byte{1, 2}, Owner: svm.Address{9}.Bytes(), RentEpoch: 3,
	}, true)
	engine.EXPECT().GetAccount(missing.Bytes()).Return(svm.AccountRecord{}, false)
	engine.EXPECT().GetAccount(broken.Bytes()).Return(svm.AccountRecord{Owner: []byte{1}}, true)

	account, err := core.GetAccount(present)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := svm.Account{Lamports: 10, Data: []byte{1, 2}, Owner: svm.Address{9}, RentEpoch: 3}
	if !account.Equal(&want) {
		t.Errorf("unexpected account: %v", account.Diff(&want))
	}

	account, err = core.GetAccount(missing)
	if account != nil || err != nil {
		t.Errorf("missing account should be nil without error, got %v, %v", account, err)
	}

	if _, err := core.GetAccount(broken); !errors.Is(err, svm.ErrMalformedAddress) {
		t.Errorf("expected malformed address error, got %v", err)
	}
}

func TestCore_SetAccountEncodesAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	account := svm.Account{Lamports: 5, Data: []byte{0, 0, 0, 0}, Owner: svm.Address{7}}
	engine.EXPECT().SetAccount(svm.Address{1}.Bytes(), svm.EncodeAccount(account)).Return(nil)
	if err := core.SetAccount(svm.Address{1}, account); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCore_FeatureConfigurationIsPassedAsPairs(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	features := svm.NewFeatureSet()
	features.Activate(svm.Address{1}, 4)
	features.Deactivate(svm.Address{2})
	ids, slots := svm.ToActivationPairs(features)

	gomock.InOrder(
		engine.EXPECT().SetFeatureSet(ids, slots).Return(nil),
		engine.EXPECT().SetBuiltins(gomock.Nil(), gomock.Nil()).Return(nil),
		engine.EXPECT().SetPrecompiles(ids, slots).Return(nil),
	)
	if err := core.SetFeatureSet(features); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := core.SetBuiltins(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := core.SetPrecompiles(features); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCore_LogBytesLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	limit := uint64(100)
	gomock.InOrder(
		engine.EXPECT().SetLogBytesLimit(uint64(100), true),
		engine.EXPECT().SetLogBytesLimit(uint64(0), false),
	)
	core.SetLogBytesLimit(&limit)
	core.SetLogBytesLimit(nil)
}

func TestCore_SysvarsAreEncodedForTheEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	clock := svm.Clock{Slot: 12, UnixTimestamp: 34}
	encoded, _ := clock.MarshalBinary()
	engine.EXPECT().SetSysvar(svm.ClockSysvarID.Bytes(), encoded).Return(nil)
	engine.EXPECT().GetSysvar(svm.ClockSysvarID.Bytes()).Return(encoded, true)
	engine.EXPECT().GetSysvar(svm.RentSysvarID.Bytes()).Return(nil, false)
	engine.EXPECT().GetSysvar(svm.LastRestartSlotSysvarID.Bytes()).Return([]byte{1, 2}, true)

	if err := core.SetClock(clock); err != nil {
		t.Fatalf("failed to set clock: %v", err)
	}
	restored, err := core.Clock()
	if err != nil || restored != clock {
		t.Errorf("unexpected clock %+v, %v", restored, err)
	}
	if _, err := core.Rent(); err == nil {
		t.Errorf("expected error for unavailable sysvar")
	}
	if _, err := core.LastRestartSlot(); !errors.Is(err, svm.ErrMalformedSysvar) {
		t.Errorf("expected malformed sysvar error, got %v", err)
	}
}

func TestCore_LatestBlockhash(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)
	core := NewCore(engine)

	engine.EXPECT().LatestBlockhash().Return(bytes.Repeat([]byte{5}, 32))
	engine.EXPECT().LatestBlockhash().Return([]byte{5})

	hash, err := core.LatestBlockhash()
	if err != nil || hash[31] != 5 {
		t.Errorf("unexpected blockhash %v, %v", hash, err)
	}
	if _, err := core.LatestBlockhash(); !errors.Is(err, svm.ErrMalformedHash) {
		t.Errorf("expected malformed hash error, got %v", err)
	}
}
