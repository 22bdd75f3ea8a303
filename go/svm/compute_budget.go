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

import "fmt"

// ComputeBudget summarizes the compute-cost coefficients of the engine.
// The engine boundary accepts these values only as an ordered list of
// scalars, see ComputeBudgetFields for the authoritative order.
type ComputeBudget struct {
	ComputeUnitLimit                      uint64
	Log64Units                            uint64
	CreateProgramAddressUnits             uint64
	InvokeUnits                           uint64
	MaxInstructionStackDepth              uint64
	MaxInstructionTraceLength             uint64
	Sha256BaseCost                        uint64
	Sha256ByteCost                        uint64
	Sha256MaxSlices                       uint64
	MaxCallDepth                          uint64
	StackFrameSize                        uint64
	LogPubkeyUnits                        uint64
	MaxCpiInstructionSize                 uint64
	CpiBytesPerUnit                       uint64
	SysvarBaseCost                        uint64
	Secp256k1RecoverCost                  uint64
	SyscallBaseCost                       uint64
	Curve25519EdwardsValidatePointCost    uint64
	Curve25519EdwardsAddCost              uint64
	Curve25519EdwardsSubtractCost         uint64
	Curve25519EdwardsMultiplyCost         uint64
	Curve25519EdwardsMsmBaseCost          uint64
	Curve25519EdwardsMsmIncrementalCost   uint64
	Curve25519RistrettoValidatePointCost  uint64
	Curve25519RistrettoAddCost            uint64
	Curve25519RistrettoSubtractCost       uint64
	Curve25519RistrettoMultiplyCost       uint64
	Curve25519RistrettoMsmBaseCost        uint64
	Curve25519RistrettoMsmIncrementalCost uint64
	HeapSize                              uint64
	HeapCost                              uint64
	MemOpBaseCost                         uint64
	AltBn128AdditionCost                  uint64
	AltBn128MultiplicationCost            uint64
	AltBn128PairingOnePairCostFirst       uint64
	AltBn128PairingOnePairCostOther       uint64
	BigModularExponentiationBaseCost      uint64
	BigModularExponentiationCostDivisor   uint64
	PoseidonCostCoefficientA              uint64
	PoseidonCostCoefficientC              uint64
	GetRemainingComputeUnitsCost          uint64
	AltBn128G1Compress                    uint64
	AltBn128G1Decompress                  uint64
	AltBn128G2Compress                    uint64
	AltBn128G2Decompress                  uint64
}

// ComputeBudgetField describes one position of the marshalled budget.
type ComputeBudgetField struct {
	Name  string
	field func(*ComputeBudget) *uint64
}

// Get returns the value of this field in the given budget.
func (f ComputeBudgetField) Get(b *ComputeBudget) uint64 {
	return *f.field(b)
}

// Set updates the value of this field in the given budget.
func (f ComputeBudgetField) Set(b *ComputeBudget, value uint64) {
	*f.field(b) = value
}

// ComputeBudgetFields lists the budget fields in the order the engine
// expects them. The engine has no way of detecting a reordered or missing
// entry; any change here must be mirrored by the engine.
var ComputeBudgetFields = [...]ComputeBudgetField{
	{"compute_unit_limit", func(b *ComputeBudget) *uint64 { return &b.ComputeUnitLimit }},
	{"log_64_units", func(b *ComputeBudget) *uint64 { return &b.Log64Units }},
	{"create_program_address_units", func(b *ComputeBudget) *uint64 { return &b.CreateProgramAddressUnits }},
	{"invoke_units", func(b *ComputeBudget) *uint64 { return &b.InvokeUnits }},
	{"max_instruction_stack_depth", func(b *ComputeBudget) *uint64 { return &b.MaxInstructionStackDepth }},
	{"max_instruction_trace_length", func(b *ComputeBudget) *uint64 { return &b.MaxInstructionTraceLength }},
	{"sha256_base_cost", func(b *ComputeBudget) *uint64 { return &b.Sha256BaseCost }},
	{"sha256_byte_cost", func(b *ComputeBudget) *uint64 { return &b.Sha256ByteCost }},
	{"sha256_max_slices", func(b *ComputeBudget) *uint64 { return &b.Sha256MaxSlices }},
	{"max_call_depth", func(b *ComputeBudget) *uint64 { return &b.MaxCallDepth }},
	{"stack_frame_size", func(b *ComputeBudget) *uint64 { return &b.StackFrameSize }},
	{"log_pubkey_units", func(b *ComputeBudget) *uint64 { return &b.LogPubkeyUnits }},
	{"max_cpi_instruction_size", func(b *ComputeBudget) *uint64 { return &b.MaxCpiInstructionSize }},
	{"cpi_bytes_per_unit", func(b *ComputeBudget) *uint64 { return &b.CpiBytesPerUnit }},
	{"sysvar_base_cost", func(b *ComputeBudget) *uint64 { return &b.SysvarBaseCost }},
	{"secp256k1_recover_cost", func(b *ComputeBudget) *uint64 { return &b.Secp256k1RecoverCost }},
	{"syscall_base_cost", func(b *ComputeBudget) *uint64 { return &b.SyscallBaseCost }},
	{"curve25519_edwards_validate_point_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsValidatePointCost }},
	{"curve25519_edwards_add_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsAddCost }},
	{"curve25519_edwards_subtract_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsSubtractCost }},
	{"curve25519_edwards_multiply_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsMultiplyCost }},
	{"curve25519_edwards_msm_base_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsMsmBaseCost }},
	{"curve25519_edwards_msm_incremental_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519EdwardsMsmIncrementalCost }},
	{"curve25519_ristretto_validate_point_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoValidatePointCost }},
	{"curve25519_ristretto_add_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoAddCost }},
	{"curve25519_ristretto_subtract_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoSubtractCost }},
	{"curve25519_ristretto_multiply_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoMultiplyCost }},
	{"curve25519_ristretto_msm_base_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoMsmBaseCost }},
	{"curve25519_ristretto_msm_incremental_cost", func(b *ComputeBudget) *uint64 { return &b.Curve25519RistrettoMsmIncrementalCost }},
	{"heap_size", func(b *ComputeBudget) *uint64 { return &b.HeapSize }},
	{"heap_cost", func(b *ComputeBudget) *uint64 { return &b.HeapCost }},
	{"mem_op_base_cost", func(b *ComputeBudget) *uint64 { return &b.MemOpBaseCost }},
	{"alt_bn128_addition_cost", func(b *ComputeBudget) *uint64 { return &b.AltBn128AdditionCost }},
	{"alt_bn128_multiplication_cost", func(b *ComputeBudget) *uint64 { return &b.AltBn128MultiplicationCost }},
	{"alt_bn128_pairing_one_pair_cost_first", func(b *ComputeBudget) *uint64 { return &b.AltBn128PairingOnePairCostFirst }},
	{"alt_bn128_pairing_one_pair_cost_other", func(b *ComputeBudget) *uint64 { return &b.AltBn128PairingOnePairCostOther }},
	{"big_modular_exponentiation_base_cost", func(b *ComputeBudget) *uint64 { return &b.BigModularExponentiationBaseCost }},
	{"big_modular_exponentiation_cost_divisor", func(b *ComputeBudget) *uint64 { return &b.BigModularExponentiationCostDivisor }},
	{"poseidon_cost_coefficient_a", func(b *ComputeBudget) *uint64 { return &b.PoseidonCostCoefficientA }},
	{"poseidon_cost_coefficient_c", func(b *ComputeBudget) *uint64 { return &b.PoseidonCostCoefficientC }},
	{"get_remaining_compute_units_cost", func(b *ComputeBudget) *uint64 { return &b.GetRemainingComputeUnitsCost }},
	{"alt_bn128_g1_compress", func(b *ComputeBudget) *uint64 { return &b.AltBn128G1Compress }},
	{"alt_bn128_g1_decompress", func(b *ComputeBudget) *uint64 { return &b.AltBn128G1Decompress }},
	{"alt_bn128_g2_compress", func(b *ComputeBudget) *uint64 { return &b.AltBn128G2Compress }},
	{"alt_bn128_g2_decompress", func(b *ComputeBudget) *uint64 { return &b.AltBn128G2Decompress }},
}

// NumComputeBudgetFields is the number of scalars in a marshalled budget.
const NumComputeBudgetFields = len(ComputeBudgetFields)

// DefaultComputeBudget returns the budget an engine uses if none is set.
func DefaultComputeBudget() ComputeBudget {
	return ComputeBudget{
		ComputeUnitLimit:                      1_400_000,
		Log64Units:                            100,
		CreateProgramAddressUnits:             1_500,
		InvokeUnits:                           1_000,
		MaxInstructionStackDepth:              5,
		MaxInstructionTraceLength:             64,
		Sha256BaseCost:                        85,
		Sha256ByteCost:                        1,
		Sha256MaxSlices:                       20_000,
		MaxCallDepth:                          64,
		StackFrameSize:                        4_096,
		LogPubkeyUnits:                        100,
		MaxCpiInstructionSize:                 1_280,
		CpiBytesPerUnit:                       250,
		SysvarBaseCost:                        100,
		Secp256k1RecoverCost:                  25_000,
		SyscallBaseCost:                       100,
		Curve25519EdwardsValidatePointCost:    159,
		Curve25519EdwardsAddCost:              473,
		Curve25519EdwardsSubtractCost:         475,
		Curve25519EdwardsMultiplyCost:         2_177,
		Curve25519EdwardsMsmBaseCost:          2_273,
		Curve25519EdwardsMsmIncrementalCost:   758,
		Curve25519RistrettoValidatePointCost:  169,
		Curve25519RistrettoAddCost:            521,
		Curve25519RistrettoSubtractCost:       519,
		Curve25519RistrettoMultiplyCost:       2_208,
		Curve25519RistrettoMsmBaseCost:        2_303,
		Curve25519RistrettoMsmIncrementalCost: 788,
		HeapSize:                              32 * 1024,
		HeapCost:                              8,
		MemOpBaseCost:                         10,
		AltBn128AdditionCost:                  334,
		AltBn128MultiplicationCost:            3_840,
		AltBn128PairingOnePairCostFirst:       36_364,
		AltBn128PairingOnePairCostOther:       12_121,
		BigModularExponentiationBaseCost:      190,
		BigModularExponentiationCostDivisor:   2,
		PoseidonCostCoefficientA:              61,
		PoseidonCostCoefficientC:              542,
		GetRemainingComputeUnitsCost:          100,
		AltBn128G1Compress:                    30,
		AltBn128G1Decompress:                  398,
		AltBn128G2Compress:                    86,
		AltBn128G2Decompress:                  13_610,
	}
}

// MarshalComputeBudget flattens the budget into the positional argument list
// accepted by the engine.
func MarshalComputeBudget(budget ComputeBudget) []uint64 {
	res := make([]uint64, 0, NumComputeBudgetFields)
	for _, field := range ComputeBudgetFields {
		res = append(res, field.Get(&budget))
	}
	return res
}

// UnmarshalComputeBudget is the inverse of MarshalComputeBudget.
func UnmarshalComputeBudget(values []uint64) (ComputeBudget, error) {
	var res ComputeBudget
	if len(values) != NumComputeBudgetFields {
		return res, fmt.Errorf("%w: wanted %d, got %d", ErrComputeBudgetLength, NumComputeBudgetFields, len(values))
	}
	for i, field := range ComputeBudgetFields {
		field.Set(&res, values[i])
	}
	return res, nil
}
