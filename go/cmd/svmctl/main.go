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
	"io"
	"os"

	"github.com/urfave/cli/v2"

	_ "github.com/Fantom-foundation/svmbridge/go/engine/memory"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "svmctl",
		Usage:     "Inspect and exercise SVM engines through the adapter",
		Copyright: "(c) 2024 Fantom Foundation",
		Writer:    out,
		Commands: []*cli.Command{
			&AddressCmd,
			&BudgetCmd,
			&RunCmd,
		},
	}
}
