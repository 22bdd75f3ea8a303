// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package svm

import (
	"errors"
	"reflect"
	"testing"
)

func sentinelComputeBudget() ComputeBudget {
	var res ComputeBudget
	for i, field := range ComputeBudgetFields {
		field.Set(&res, 1000+uint64(i))
	}
	return res
}

func TestComputeBudget_FieldTableCoversEveryField(t *testing.T) {
	budget := sentinelComputeBudget()
	value := reflect.ValueOf(budget)
	if want, got := value.NumField(), NumComputeBudgetFields; want != got {
		t.Fatalf("field table has %d entries, struct has %d fields", got, want)
	}
	seen := map[uint64]string{}
	for i := 0; i < value.NumField(); i++ {
		name := value.Type().Field(i).Name
		v := value.Field(i).Uint()
		if v < 1000 {
			t.Errorf("field %s is not covered by the field table", name)
		}
		if other, found := seen[v]; found {
			t.Errorf("fields %s and %s share the same table entry", other, name)
		}
		seen[v] = name
	}
}

func TestComputeBudget_FieldTableNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, field := range ComputeBudgetFields {
		if seen[field.Name] {
			t.Errorf("duplicate field name %s", field.Name)
		}
		seen[field.Name] = true
	}
}

func TestComputeBudget_FieldOrder(t *testing.T) {
	tests := map[int]string{
		0:  "compute_unit_limit",
		1:  "log_64_units",
		5:  "max_instruction_trace_length",
		9:  "max_call_depth",
		16: "syscall_base_cost",
		17: "curve25519_edwards_validate_point_cost",
		23: "curve25519_ristretto_validate_point_cost",
		29: "heap_size",
		32: "alt_bn128_addition_cost",
		36: "big_modular_exponentiation_base_cost",
		40: "get_remaining_compute_units_cost",
		44: "alt_bn128_g2_decompress",
	}
	for pos, want := range tests {
		if got := ComputeBudgetFields[pos].Name; want != got {
			t.Errorf("unexpected field at position %d, wanted %s, got %s", pos, want, got)
		}
	}
}

func TestComputeBudget_MarshalKeepsPositions(t *testing.T) {
	budget := sentinelComputeBudget()
	values := MarshalComputeBudget(budget)
	if len(values) != NumComputeBudgetFields {
		t.Fatalf("unexpected number of values, wanted %d, got %d", NumComputeBudgetFields, len(values))
	}
	for i, value := range values {
		if want := 1000 + uint64(i); value != want {
			t.Errorf("field %s at position %d: wanted %d, got %d", ComputeBudgetFields[i].Name, i, want, value)
		}
	}
	if budget.ComputeUnitLimit != values[0] || budget.HeapSize != values[29] || budget.AltBn128G2Decompress != values[44] {
		t.Errorf("struct fields and positions disagree")
	}
}

func TestComputeBudget_UnmarshalRestoresEveryField(t *testing.T) {
	budget := sentinelComputeBudget()
	restored, err := UnmarshalComputeBudget(MarshalComputeBudget(budget))
	if err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if restored != budget {
		t.Errorf("unexpected restored budget, wanted %+v, got %+v", budget, restored)
	}

	defaults := DefaultComputeBudget()
	restored, err = UnmarshalComputeBudget(MarshalComputeBudget(defaults))
	if err != nil || restored != defaults {
		t.Errorf("failed to restore default budget: %v", err)
	}
}

func TestComputeBudget_UnmarshalRejectsWrongLength(t *testing.T) {
	for _, size := range []int{0, NumComputeBudgetFields - 1, NumComputeBudgetFields + 1} {
		_, err := UnmarshalComputeBudget(make([]uint64, size))
		if !errors.Is(err, ErrComputeBudgetLength) {
			t.Errorf("expected length error for %d values, got %v", size, err)
		}
	}
}

func TestComputeBudget_Defaults(t *testing.T) {
	budget := DefaultComputeBudget()
	if want, got := uint64(1_400_000), budget.ComputeUnitLimit; want != got {
		t.Errorf("unexpected compute unit limit, wanted %d, got %d", want, got)
	}
	if want, got := uint64(32*1024), budget.HeapSize; want != got {
		t.Errorf("unexpected heap size, wanted %d, got %d", want, got)
	}
	for i, value := range MarshalComputeBudget(budget) {
		if value == 0 {
			t.Errorf("default of %s is zero", ComputeBudgetFields[i].Name)
		}
	}
}
