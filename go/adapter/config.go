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
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"golang.org/x/exp/maps"
)

// DefaultEngine is the engine used by configurations not naming one.
const DefaultEngine = "memory"

// Config is the file based configuration of a facade. Unset fields leave the
// engine defaults in place.
type Config struct {
	Engine             string  `toml:"engine"`
	Sigverify          *bool   `toml:"sigverify"`
	BlockhashCheck     *bool   `toml:"blockhash_check"`
	Sysvars            bool    `toml:"sysvars"`
	DefaultPrograms    bool    `toml:"default_programs"`
	Builtins           bool    `toml:"builtins"`
	Precompiles        bool    `toml:"precompiles"`
	Lamports           *uint64 `toml:"lamports"`
	TransactionHistory *uint64 `toml:"transaction_history"`
	LogBytesLimit      *uint64 `toml:"log_bytes_limit"`
	UnlimitedLogs      bool    `toml:"unlimited_logs"`

	// ComputeBudget overrides individual fields of the default budget,
	// keyed by the names listed in svm.ComputeBudgetFields.
	ComputeBudget map[string]uint64 `toml:"compute_budget"`

	// Features maps base58 feature ids to their activation slot.
	Features         map[string]uint64 `toml:"features"`
	InactiveFeatures []string          `toml:"inactive_features"`
}

// LoadConfig reads a TOML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var res Config
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&res)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config fields %v", undecoded)
	}
	if res.LogBytesLimit != nil && res.UnlimitedLogs {
		return Config{}, fmt.Errorf("log_bytes_limit and unlimited_logs are mutually exclusive")
	}
	return res, nil
}

// EngineName returns the configured engine, falling back to DefaultEngine.
func (c Config) EngineName() string {
	if c.Engine == "" {
		return DefaultEngine
	}
	return c.Engine
}

func (c Config) computeBudget() (*svm.ComputeBudget, error) {
	if len(c.ComputeBudget) == 0 {
		return nil, nil
	}
	budget := svm.DefaultComputeBudget()
	fields := map[string]svm.ComputeBudgetField{}
	for _, field := range svm.ComputeBudgetFields {
		fields[field.Name] = field
	}
	names := maps.Keys(c.ComputeBudget)
	sort.Strings(names)
	for _, name := range names {
		field, found := fields[name]
		if !found {
			return nil, fmt.Errorf("unknown compute budget field %q", name)
		}
		field.Set(&budget, c.ComputeBudget[name])
	}
	return &budget, nil
}

func (c Config) featureSet() (*svm.FeatureSet, error) {
	if len(c.Features) == 0 && len(c.InactiveFeatures) == 0 {
		return nil, nil
	}
	res := svm.NewFeatureSet()
	for text, slot := range c.Features {
		id, err := svm.AddressFromBase58(text)
		if err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", text, err)
		}
		res.Activate(id, slot)
	}
	for _, text := range c.InactiveFeatures {
		id, err := svm.AddressFromBase58(text)
		if err != nil {
			return nil, fmt.Errorf("invalid feature %q: %w", text, err)
		}
		res.Deactivate(id)
	}
	return res, nil
}

// Apply configures the engine of the given facade. The configuration is
// validated before the first engine call.
func (c Config) Apply(core *Core) error {
	budget, err := c.computeBudget()
	if err != nil {
		return err
	}
	features, err := c.featureSet()
	if err != nil {
		return err
	}

	if budget != nil {
		if err := core.SetComputeBudget(*budget); err != nil {
			return err
		}
	}
	if c.Sigverify != nil {
		core.SetSigverify(*c.Sigverify)
	}
	if c.BlockhashCheck != nil {
		core.SetBlockhashCheck(*c.BlockhashCheck)
	}
	if c.Sysvars {
		core.SetSysvars()
	}
	if features != nil {
		if err := core.SetFeatureSet(features); err != nil {
			return err
		}
	}
	if c.Builtins {
		if err := core.SetBuiltins(features); err != nil {
			return err
		}
	}
	if c.Precompiles {
		if err := core.SetPrecompiles(features); err != nil {
			return err
		}
	}
	if c.Lamports != nil {
		core.SetLamports(*c.Lamports)
	}
	if c.DefaultPrograms {
		core.SetDefaultPrograms()
	}
	if c.TransactionHistory != nil {
		core.SetTransactionHistory(*c.TransactionHistory)
	}
	if c.LogBytesLimit != nil || c.UnlimitedLogs {
		core.SetLogBytesLimit(c.LogBytesLimit)
	}
	return nil
}

// OpenConfig creates a facade on the configured engine and applies the
// configuration to it.
func OpenConfig(config Config) (*Core, error) {
	core, err := Open(config.EngineName())
	if err != nil {
		return nil, err
	}
	if err := config.Apply(core); err != nil {
		return nil, err
	}
	return core, nil
}
