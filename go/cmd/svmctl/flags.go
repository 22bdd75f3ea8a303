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
	"fmt"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type configFlagType struct {
	cli.StringFlag
}

var configFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "TOML file configuring the engine, defaults are used if omitted",
		TakesFile: true,
	},
}

// Fetch loads the configuration file named by the flag.
func (f *configFlagType) Fetch(context *cli.Context) (adapter.Config, error) {
	path := context.String(f.Name)
	if path == "" {
		return adapter.Config{}, nil
	}
	return adapter.LoadConfig(path)
}

type verboseFlagType struct {
	cli.BoolFlag
}

var verboseFlag = &verboseFlagType{
	cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log adapter decisions to stderr",
	},
}

// Install installs a development logger for the adapter if the flag is set.
func (f *verboseFlagType) Install(context *cli.Context) error {
	if !context.Bool(f.Name) {
		return nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	adapter.SetLogger(logger)
	return nil
}

type hexFlagType struct {
	cli.StringFlag
}

var memoFlag = &hexFlagType{
	cli.StringFlag{
		Name:  "memo",
		Usage: "0x-prefixed hex data attached to the transfer as a memo",
	},
}

func (f *hexFlagType) Fetch(context *cli.Context) ([]byte, error) {
	value := context.String(f.Name)
	if value == "" {
		return nil, nil
	}
	data, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", f.Name, err)
	}
	return data, nil
}
