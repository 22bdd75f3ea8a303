// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/gagliardetto/solana-go"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"svmctl"}, args...))
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestAddress_ConvertsBetweenEncodings(t *testing.T) {
	zeroHex := "0x" + strings.Repeat("00", 32)
	tests := map[string]string{
		"base58": svm.SystemProgramID.String(),
		"hex":    zeroHex,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := runApp(t, "address", input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "base58: "+svm.SystemProgramID.String()) {
				t.Errorf("missing base58 form in %q", out)
			}
			if !strings.Contains(out, "hex:    "+zeroHex) {
				t.Errorf("missing hex form in %q", out)
			}
		})
	}
}

func TestAddress_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"0x1234", "0xzz", "not-base58"} {
		if _, err := runApp(t, "address", input); !errors.Is(err, svm.ErrMalformedAddress) {
			t.Errorf("expected malformed address for %q, got %v", input, err)
		}
	}
	if _, err := runApp(t, "address"); err == nil {
		t.Errorf("missing argument should be rejected")
	}
}

func TestBudget_PrintsDefaultsWithoutConfig(t *testing.T) {
	out, err := runApp(t, "budget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "built-in budget") {
		t.Errorf("missing defaults notice in %q", out)
	}
	for _, field := range svm.ComputeBudgetFields {
		if !strings.Contains(out, field.Name) {
			t.Errorf("missing field %s", field.Name)
		}
	}
}

func TestBudget_PrintsConfiguredBudget(t *testing.T) {
	path := writeConfig(t, "[compute_budget]\ncompute_unit_limit = 4242\n")
	out, err := runApp(t, "budget", "--config", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "built-in budget") {
		t.Errorf("configured budget reported as default")
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "compute_unit_limit" {
			if fields[1] != "4242" {
				t.Errorf("unexpected limit %v", fields[1])
			}
			return
		}
	}
	t.Errorf("compute_unit_limit missing in %q", out)
}

func TestBudget_RejectsUnknownConfigFields(t *testing.T) {
	path := writeConfig(t, "no_such_field = 1\n")
	if _, err := runApp(t, "budget", "--config", path); err == nil {
		t.Errorf("unknown config field should be rejected")
	}
}

func TestRun_TransfersLamports(t *testing.T) {
	var out bytes.Buffer
	err := runTransfer(&out, runParameters{
		airdrop:  10 * solana.LAMPORTS_PER_SOL,
		lamports: solana.LAMPORTS_PER_SOL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"recipient balance:", "Program 11111111111111111111111111111111 success"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in %q", want, out.String())
		}
	}
}

func TestRun_AttachesMemo(t *testing.T) {
	out, err := runApp(t, "run", "--memo", "0x616263")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `Memo (len 3): "abc"`; !strings.Contains(out, want) {
		t.Errorf("missing %q in %q", want, out)
	}
}

func TestRun_SimulationDoesNotCommit(t *testing.T) {
	out, err := runApp(t, "run", "--simulate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "recipient balance:") {
		t.Errorf("simulation funded the recipient: %q", out)
	}
}

func TestRun_ReportsFailedTransfers(t *testing.T) {
	var out bytes.Buffer
	err := runTransfer(&out, runParameters{
		config:   adapter.Config{},
		airdrop:  solana.LAMPORTS_PER_SOL,
		lamports: 2 * solana.LAMPORTS_PER_SOL,
	})
	if err == nil || !strings.Contains(err.Error(), "transaction failed") {
		t.Errorf("expected failed transfer, got %v", err)
	}
	if !strings.Contains(out.String(), "failed") {
		t.Errorf("logs of the failure missing in %q", out.String())
	}
}

func TestRun_RejectsInvalidMemo(t *testing.T) {
	if _, err := runApp(t, "run", "--memo", "abc"); err == nil {
		t.Errorf("memo without 0x prefix should be rejected")
	}
}
