// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package svm is a generated GoMock package.
package svm

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockEngine is a mock of Engine interface.
type MockEngine struct {
	ctrl     *gomock.Controller
	recorder *MockEngineMockRecorder
}

// MockEngineMockRecorder is the mock recorder for MockEngine.
type MockEngineMockRecorder struct {
	mock *MockEngine
}

// NewMockEngine creates a new mock instance.
func NewMockEngine(ctrl *gomock.Controller) *MockEngine {
	mock := &MockEngine{ctrl: ctrl}
	mock.recorder = &MockEngineMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEngine) EXPECT() *MockEngineMockRecorder {
	return m.recorder
}

// AddProgram mocks base method.
func (m *MockEngine) AddProgram(arg0 []byte, arg1 []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddProgram", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddProgram indicates an expected call of AddProgram.
func (mr *MockEngineMockRecorder) AddProgram(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddProgram", reflect.TypeOf((*MockEngine)(nil).AddProgram), arg0, arg1)
}

// AddProgramFromFile mocks base method.
func (m *MockEngine) AddProgramFromFile(arg0 []byte, arg1 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddProgramFromFile", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddProgramFromFile indicates an expected call of AddProgramFromFile.
func (mr *MockEngineMockRecorder) AddProgramFromFile(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddProgramFromFile", reflect.TypeOf((*MockEngine)(nil).AddProgramFromFile), arg0, arg1)
}

// Airdrop mocks base method.
func (m *MockEngine) Airdrop(arg0 []byte, arg1 uint64) TransactionResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Airdrop", arg0, arg1)
	ret0, _ := ret[0].(TransactionResult)
	return ret0
}

// Airdrop indicates an expected call of Airdrop.
func (mr *MockEngineMockRecorder) Airdrop(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Airdrop", reflect.TypeOf((*MockEngine)(nil).Airdrop), arg0, arg1)
}

// ComputeBudget mocks base method.
func (m *MockEngine) ComputeBudget() ([]uint64, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ComputeBudget")
	ret0, _ := ret[0].([]uint64)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// ComputeBudget indicates an expected call of ComputeBudget.
func (mr *MockEngineMockRecorder) ComputeBudget() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ComputeBudget", reflect.TypeOf((*MockEngine)(nil).ComputeBudget))
}

// ExpireBlockhash mocks base method.
func (m *MockEngine) ExpireBlockhash() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ExpireBlockhash")
}

// ExpireBlockhash indicates an expected call of ExpireBlockhash.
func (mr *MockEngineMockRecorder) ExpireBlockhash() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExpireBlockhash", reflect.TypeOf((*MockEngine)(nil).ExpireBlockhash))
}

// GetAccount mocks base method.
func (m *MockEngine) GetAccount(arg0 []byte) (AccountRecord, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccount", arg0)
	ret0, _ := ret[0].(AccountRecord)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetAccount indicates an expected call of GetAccount.
func (mr *MockEngineMockRecorder) GetAccount(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccount", reflect.TypeOf((*MockEngine)(nil).GetAccount), arg0)
}

// GetBalance mocks base method.
func (m *MockEngine) GetBalance(arg0 []byte) (uint64, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBalance", arg0)
	ret0, _ := ret[0].(uint64)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetBalance indicates an expected call of GetBalance.
func (mr *MockEngineMockRecorder) GetBalance(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBalance", reflect.TypeOf((*MockEngine)(nil).GetBalance), arg0)
}

// GetSysvar mocks base method.
func (m *MockEngine) GetSysvar(arg0 []byte) ([]byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSysvar", arg0)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetSysvar indicates an expected call of GetSysvar.
func (mr *MockEngineMockRecorder) GetSysvar(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSysvar", reflect.TypeOf((*MockEngine)(nil).GetSysvar), arg0)
}

// GetTransaction mocks base method.
func (m *MockEngine) GetTransaction(arg0 []byte) (TransactionResult, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTransaction", arg0)
	ret0, _ := ret[0].(TransactionResult)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetTransaction indicates an expected call of GetTransaction.
func (mr *MockEngineMockRecorder) GetTransaction(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTransaction", reflect.TypeOf((*MockEngine)(nil).GetTransaction), arg0)
}

// LatestBlockhash mocks base method.
func (m *MockEngine) LatestBlockhash() []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LatestBlockhash")
	ret0, _ := ret[0].([]byte)
	return ret0
}

// LatestBlockhash indicates an expected call of LatestBlockhash.
func (mr *MockEngineMockRecorder) LatestBlockhash() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LatestBlockhash", reflect.TypeOf((*MockEngine)(nil).LatestBlockhash))
}

// MinimumBalanceForRentExemption mocks base method.
func (m *MockEngine) MinimumBalanceForRentExemption(arg0 uint64) uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MinimumBalanceForRentExemption", arg0)
	ret0, _ := ret[0].(uint64)
	return ret0
}

// MinimumBalanceForRentExemption indicates an expected call of MinimumBalanceForRentExemption.
func (mr *MockEngineMockRecorder) MinimumBalanceForRentExemption(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MinimumBalanceForRentExemption", reflect.TypeOf((*MockEngine)(nil).MinimumBalanceForRentExemption), arg0)
}

// Revert mocks base method.
func (m *MockEngine) Revert() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Revert")
}

// Revert indicates an expected call of Revert.
func (mr *MockEngineMockRecorder) Revert() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Revert", reflect.TypeOf((*MockEngine)(nil).Revert))
}

// SendLegacyTransaction mocks base method.
func (m *MockEngine) SendLegacyTransaction(arg0 []byte) TransactionResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendLegacyTransaction", arg0)
	ret0, _ := ret[0].(TransactionResult)
	return ret0
}

// SendLegacyTransaction indicates an expected call of SendLegacyTransaction.
func (mr *MockEngineMockRecorder) SendLegacyTransaction(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendLegacyTransaction", reflect.TypeOf((*MockEngine)(nil).SendLegacyTransaction), arg0)
}

// SendVersionedTransaction mocks base method.
func (m *MockEngine) SendVersionedTransaction(arg0 []byte) TransactionResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendVersionedTransaction", arg0)
	ret0, _ := ret[0].(TransactionResult)
	return ret0
}

// SendVersionedTransaction indicates an expected call of SendVersionedTransaction.
func (mr *MockEngineMockRecorder) SendVersionedTransaction(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendVersionedTransaction", reflect.TypeOf((*MockEngine)(nil).SendVersionedTransaction), arg0)
}

// SetAccount mocks base method.
func (m *MockEngine) SetAccount(arg0 []byte, arg1 AccountRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetAccount", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetAccount indicates an expected call of SetAccount.
func (mr *MockEngineMockRecorder) SetAccount(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetAccount", reflect.TypeOf((*MockEngine)(nil).SetAccount), arg0, arg1)
}

// SetBlockhashCheck mocks base method.
func (m *MockEngine) SetBlockhashCheck(arg0 bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetBlockhashCheck", arg0)
}

// SetBlockhashCheck indicates an expected call of SetBlockhashCheck.
func (mr *MockEngineMockRecorder) SetBlockhashCheck(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBlockhashCheck", reflect.TypeOf((*MockEngine)(nil).SetBlockhashCheck), arg0)
}

// SetBuiltins mocks base method.
func (m *MockEngine) SetBuiltins(arg0 [][]byte, arg1 []uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetBuiltins", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetBuiltins indicates an expected call of SetBuiltins.
func (mr *MockEngineMockRecorder) SetBuiltins(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetBuiltins", reflect.TypeOf((*MockEngine)(nil).SetBuiltins), arg0, arg1)
}

// SetComputeBudget mocks base method.
func (m *MockEngine) SetComputeBudget(arg0 []uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetComputeBudget", arg0)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetComputeBudget indicates an expected call of SetComputeBudget.
func (mr *MockEngineMockRecorder) SetComputeBudget(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetComputeBudget", reflect.TypeOf((*MockEngine)(nil).SetComputeBudget), arg0)
}

// SetDefaultPrograms mocks base method.
func (m *MockEngine) SetDefaultPrograms() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetDefaultPrograms")
}

// SetDefaultPrograms indicates an expected call of SetDefaultPrograms.
func (mr *MockEngineMockRecorder) SetDefaultPrograms() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetDefaultPrograms", reflect.TypeOf((*MockEngine)(nil).SetDefaultPrograms))
}

// SetFeatureSet mocks base method.
func (m *MockEngine) SetFeatureSet(arg0 [][]byte, arg1 []uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetFeatureSet", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetFeatureSet indicates an expected call of SetFeatureSet.
func (mr *MockEngineMockRecorder) SetFeatureSet(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetFeatureSet", reflect.TypeOf((*MockEngine)(nil).SetFeatureSet), arg0, arg1)
}

// SetLamports mocks base method.
func (m *MockEngine) SetLamports(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetLamports", arg0)
}

// SetLamports indicates an expected call of SetLamports.
func (mr *MockEngineMockRecorder) SetLamports(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetLamports", reflect.TypeOf((*MockEngine)(nil).SetLamports), arg0)
}

// SetLogBytesLimit mocks base method.
func (m *MockEngine) SetLogBytesLimit(arg0 uint64, arg1 bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetLogBytesLimit", arg0, arg1)
}

// SetLogBytesLimit indicates an expected call of SetLogBytesLimit.
func (mr *MockEngineMockRecorder) SetLogBytesLimit(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetLogBytesLimit", reflect.TypeOf((*MockEngine)(nil).SetLogBytesLimit), arg0, arg1)
}

// SetPrecompiles mocks base method.
func (m *MockEngine) SetPrecompiles(arg0 [][]byte, arg1 []uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPrecompiles", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetPrecompiles indicates an expected call of SetPrecompiles.
func (mr *MockEngineMockRecorder) SetPrecompiles(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPrecompiles", reflect.TypeOf((*MockEngine)(nil).SetPrecompiles), arg0, arg1)
}

// SetSigverify mocks base method.
func (m *MockEngine) SetSigverify(arg0 bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetSigverify", arg0)
}

// SetSigverify indicates an expected call of SetSigverify.
func (mr *MockEngineMockRecorder) SetSigverify(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetSigverify", reflect.TypeOf((*MockEngine)(nil).SetSigverify), arg0)
}

// SetSysvar mocks base method.
func (m *MockEngine) SetSysvar(arg0 []byte, arg1 []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetSysvar", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetSysvar indicates an expected call of SetSysvar.
func (mr *MockEngineMockRecorder) SetSysvar(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetSysvar", reflect.TypeOf((*MockEngine)(nil).SetSysvar), arg0, arg1)
}

// SetSysvars mocks base method.
func (m *MockEngine) SetSysvars() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetSysvars")
}

// SetSysvars indicates an expected call of SetSysvars.
func (mr *MockEngineMockRecorder) SetSysvars() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetSysvars", reflect.TypeOf((*MockEngine)(nil).SetSysvars))
}

// SetTransactionHistory mocks base method.
func (m *MockEngine) SetTransactionHistory(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetTransactionHistory", arg0)
}

// SetTransactionHistory indicates an expected call of SetTransactionHistory.
func (mr *MockEngineMockRecorder) SetTransactionHistory(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetTransactionHistory", reflect.TypeOf((*MockEngine)(nil).SetTransactionHistory), arg0)
}

// Sigverify mocks base method.
func (m *MockEngine) Sigverify() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sigverify")
	ret0, _ := ret[0].(bool)
	return ret0
}

// Sigverify indicates an expected call of Sigverify.
func (mr *MockEngineMockRecorder) Sigverify() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sigverify", reflect.TypeOf((*MockEngine)(nil).Sigverify))
}

// SimulateLegacyTransaction mocks base method.
func (m *MockEngine) SimulateLegacyTransaction(arg0 []byte) SimulateResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SimulateLegacyTransaction", arg0)
	ret0, _ := ret[0].(SimulateResult)
	return ret0
}

// SimulateLegacyTransaction indicates an expected call of SimulateLegacyTransaction.
func (mr *MockEngineMockRecorder) SimulateLegacyTransaction(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SimulateLegacyTransaction", reflect.TypeOf((*MockEngine)(nil).SimulateLegacyTransaction), arg0)
}

// SimulateVersionedTransaction mocks base method.
func (m *MockEngine) SimulateVersionedTransaction(arg0 []byte) SimulateResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SimulateVersionedTransaction", arg0)
	ret0, _ := ret[0].(SimulateResult)
	return ret0
}

// SimulateVersionedTransaction indicates an expected call of SimulateVersionedTransaction.
func (mr *MockEngineMockRecorder) SimulateVersionedTransaction(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SimulateVersionedTransaction", reflect.TypeOf((*MockEngine)(nil).SimulateVersionedTransaction), arg0)
}

// Snapshot mocks base method.
func (m *MockEngine) Snapshot() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Snapshot")
}

// Snapshot indicates an expected call of Snapshot.
func (mr *MockEngineMockRecorder) Snapshot() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Snapshot", reflect.TypeOf((*MockEngine)(nil).Snapshot))
}

// WarpToSlot mocks base method.
func (m *MockEngine) WarpToSlot(arg0 uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WarpToSlot", arg0)
}

// WarpToSlot indicates an expected call of WarpToSlot.
func (mr *MockEngineMockRecorder) WarpToSlot(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WarpToSlot", reflect.TypeOf((*MockEngine)(nil).WarpToSlot), arg0)
}
