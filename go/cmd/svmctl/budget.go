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
	"text/tabwriter"

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
)

var BudgetCmd = cli.Command{
	Action: doBudget,
	Name:   "budget",
	Usage:  "Prints the compute budget of the configured engine",
	Flags: []cli.Flag{
		configFlag,
		verboseFlag,
	},
}

func doBudget(context *cli.Context) error {
	if err := verboseFlag.Install(context); err != nil {
		return err
	}
	config, err := configFlag.Fetch(context)
	if err != nil {
		return err
	}
	core, err := adapter.OpenConfig(config)
	if err != nil {
		return err
	}
	budget, err := core.ComputeBudget()
	if err != nil {
		return err
	}
	if budget == nil {
		fmt.Fprintln(context.App.Writer, "engine uses its built-in budget, showing defaults")
		defaults := svm.DefaultComputeBudget()
		budget = &defaults
	}
	return printBudget(context, budget)
}

func printBudget(context *cli.Context, budget *svm.ComputeBudget) error {
	out := tabwriter.NewWriter(context.App.Writer, 0, 4, 2, ' ', 0)
	for _, field := range svm.ComputeBudgetFields {
		value := field.Get(budget)
		fmt.Fprintf(out, "%s\t%d\t%s\n", field.Name, value, unitconv.FormatPrefix(float64(value), unitconv.SI, 1))
	}
	return out.Flush()
}
