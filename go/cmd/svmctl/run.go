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

	"github.com/Fantom-foundation/svmbridge/go/adapter"
	"github.com/Fantom-foundation/svmbridge/go/adapter/web3"
	"github.com/dsnet/golib/unitconv"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action: doRun,
	Name:   "run",
	Usage:  "Funds a fresh account and sends a transfer through the configured engine",
	Flags: []cli.Flag{
		configFlag,
		verboseFlag,
		memoFlag,
		&cli.Uint64Flag{
			Name:  "airdrop",
			Usage: "lamports airdropped to the payer",
			Value: 10 * solana.LAMPORTS_PER_SOL,
		},
		&cli.Uint64Flag{
			Name:  "lamports",
			Usage: "lamports transferred to a fresh recipient",
			Value: solana.LAMPORTS_PER_SOL,
		},
		&cli.BoolFlag{
			Name:  "simulate",
			Usage: "simulate the transfer instead of committing it",
		},
	},
}

var memoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

type runParameters struct {
	config   adapter.Config
	airdrop  uint64
	lamports uint64
	memo     []byte
	simulate bool
}

func doRun(context *cli.Context) error {
	if err := verboseFlag.Install(context); err != nil {
		return err
	}
	config, err := configFlag.Fetch(context)
	if err != nil {
		return err
	}
	memo, err := memoFlag.Fetch(context)
	if err != nil {
		return err
	}
	return runTransfer(context.App.Writer, runParameters{
		config:   config,
		airdrop:  context.Uint64("airdrop"),
		lamports: context.Uint64("lamports"),
		memo:     memo,
		simulate: context.Bool("simulate"),
	})
}

func runTransfer(out io.Writer, params runParameters) error {
	ledger, err := web3.OpenConfig(params.config)
	if err != nil {
		return err
	}

	payer, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	recipient, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}

	funded, err := ledger.Airdrop(payer.PublicKey(), params.airdrop)
	if err != nil {
		return fmt.Errorf("airdrop failed: %w", err)
	}
	if !funded.IsSuccess() {
		return fmt.Errorf("airdrop failed: %v", funded.(*web3.FailedTransactionMetadata).Err)
	}
	fmt.Fprintf(out, "payer:     %v (%s lamports)\n", payer.PublicKey(), formatLamports(params.airdrop))

	instructions := []solana.Instruction{
		system.NewTransferInstruction(params.lamports, payer.PublicKey(), recipient.PublicKey()).Build(),
	}
	if params.memo != nil {
		instructions = append(instructions, solana.NewInstruction(
			memoProgramID,
			solana.AccountMetaSlice{solana.Meta(payer.PublicKey()).SIGNER()},
			params.memo,
		))
	}

	blockhash, err := ledger.LatestBlockhash()
	if err != nil {
		return err
	}
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer.PublicKey()))
	if err != nil {
		return fmt.Errorf("could not build transaction: %w", err)
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key == payer.PublicKey() {
			return &payer
		}
		return nil
	}); err != nil {
		return fmt.Errorf("could not sign transaction: %w", err)
	}

	var meta *web3.TransactionMetadata
	var failure error
	if params.simulate {
		res, err := ledger.SimulateTransaction(tx)
		if err != nil {
			return err
		}
		meta = res.Metadata()
		if failed, ok := res.(*web3.FailedTransactionMetadata); ok {
			failure = fmt.Errorf("simulation failed: %v", failed.Err)
		}
	} else {
		res, err := ledger.SendTransaction(tx)
		if err != nil {
			return err
		}
		meta = res.Metadata()
		if failed, ok := res.(*web3.FailedTransactionMetadata); ok {
			failure = fmt.Errorf("transaction failed: %v", failed.Err)
		}
	}

	fmt.Fprintf(out, "recipient: %v\n", recipient.PublicKey())
	fmt.Fprintf(out, "signature: %v\n", meta.Signature)
	fmt.Fprintf(out, "fee:       %s lamports\n", formatLamports(meta.Fee))
	fmt.Fprintf(out, "compute:   %d units\n", meta.ComputeUnitsConsumed)
	fmt.Fprintln(out, meta.PrettyLogs())
	if failure != nil {
		return failure
	}

	if balance, found := ledger.GetBalance(recipient.PublicKey()); found {
		fmt.Fprintf(out, "recipient balance: %s lamports\n", formatLamports(balance))
	}
	return nil
}

func formatLamports(lamports uint64) string {
	return unitconv.FormatPrefix(float64(lamports), unitconv.SI, 2)
}
