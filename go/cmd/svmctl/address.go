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
	"strings"

	"github.com/Fantom-foundation/svmbridge/go/svm"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var AddressCmd = cli.Command{
	Action:    doAddress,
	Name:      "address",
	Usage:     "Converts addresses between base58 and 0x-prefixed hex",
	ArgsUsage: "<address>",
}

func doAddress(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one address, got %d", context.Args().Len())
	}
	address, err := parseAddress(context.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "base58: %v\nhex:    %s\n", address, hexutil.Encode(address.Bytes()))
	return nil
}

// parseAddress accepts base58 and 0x-prefixed hex encodings.
func parseAddress(text string) (svm.Address, error) {
	if !strings.HasPrefix(text, "0x") {
		return svm.AddressFromBase58(text)
	}
	data, err := hexutil.Decode(text)
	if err != nil {
		return svm.Address{}, fmt.Errorf("%w: %v", svm.ErrMalformedAddress, err)
	}
	return svm.AddressFromBytes(data)
}
