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
	"os"
	"path/filepath"
	"testing"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"go.uber.org/mock/gomock"
)

const testConfig = `
engine = "Memory"
sigverify = false
sysvars = true
lamports = 1000000
transaction_history = 0
log_bytes_limit = 2048
inactive_features = ["Sysvar1111111111111111111111111111111111111"]

[compute_budget]
compute_unit_limit = 200000
heap_size = 65536

[features]
SysvarC1ock11111111111111111111111111111111 = 5
`

func TestConfig_ParseAndApply(t *testing.T) {
	config, err := ParseConfig([]byte(testConfig))
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if config.EngineName() != "Memory" {
		t.Errorf("unexpected engine %s", config.EngineName())
	}

	ctrl := gomock.NewController(t)
	engine := svm.NewMockEngine(ctrl)

	budget := svm.DefaultComputeBudget()
	budget.ComputeUnitLimit = 200_000
	budget.HeapSize = 65_536
	features := svm.NewFeatureSet()
	features.Activate(svm.ClockSysvarID, 5)
	features.Deactivate(svm.SysvarOwnerID)
	ids, slots := svm.ToActivationPairs(features)

	gomock.InOrder(
		engine.EXPECT().SetComputeBudget(svm.MarshalComputeBudget(budget)).Return(nil),
		engine.EXPECT().SetSigverify(false),
		engine.EXPECT().SetSysvars(),
		engine.EXPECT().SetFeatureSet(ids, slots).Return(nil),
		engine.EXPECT().SetLamports(uint64(1_000_000)),
		engine.EXPECT().SetTransactionHistory(uint64(0)),
		engine.EXPECT().SetLogBytesLimit(uint64(2048), true),
	)
	if err := config.Apply(NewCore(engine)); err != nil {
		t.Fatalf("failed to apply config: %v", err)
	}
}

func TestConfig_EmptyConfigUsesDefaults(t *testing.T) {
	config, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if config.EngineName() != DefaultEngine {
		t.Errorf("unexpected engine %s", config.EngineName())
	}
	ctrl := gomock.NewController(t)
	if err := config.Apply(NewCore(svm.NewMockEngine(ctrl))); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_InvalidConfigsAreRejected(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "colour = 'blue'",
		"syntax error":     "engine = ",
		"conflicting logs": "log_bytes_limit = 1\nunlimited_logs = true",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(text)); err == nil {
				t.Errorf("expected parsing to fail")
			}
		})
	}
}

func TestConfig_InvalidValuesFailBeforeReachingEngine(t *testing.T) {
	tests := map[string]Config{
		"unknown budget field": {ComputeBudget: map[string]uint64{"no_such_field": 1}},
		"invalid feature":      {Features: map[string]uint64{"not-base58!": 1}},
		"invalid inactive":     {InactiveFeatures: []string{"abc"}},
	}
	for name, config := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			if err := config.Apply(NewCore(svm.NewMockEngine(ctrl))); err == nil {
				t.Errorf("expected apply to fail")
			}
		})
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svm.toml")
	if err := os.WriteFile(path, []byte("sigverify = true\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if config.Sigverify == nil || !*config.Sigverify {
		t.Errorf("sigverify not loaded")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
