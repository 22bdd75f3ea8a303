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
	"github.com/Fantom-foundation/svmbridge/go/svm"
	"go.uber.org/zap"
)

// route is the engine entry point selected for a transaction.
type route int

const (
	legacyRoute route = iota
	versionedRoute
)

func (r route) String() string {
	if r == legacyRoute {
		return "legacy"
	}
	return "versioned"
}

// prepare picks the engine entry point for the given transaction and
// serializes it accordingly. Only legacy and version 0 messages are
// supported; everything else fails with an *svm.ErrUnsupportedVersion. If the
// engine verifies signatures, unsigned required slots fail the transaction
// here, before the engine is involved.
func (c *Core) prepare(tx svm.WireTransaction) (route, []byte, error) {
	version, err := tx.Version()
	if err != nil {
		return 0, nil, err
	}

	var selected route
	switch {
	case version.IsLegacy():
		selected = legacyRoute
	case version == svm.Versioned(0):
		selected = versionedRoute
	default:
		c.log.Debug("rejecting transaction", zap.Stringer("version", version))
		return 0, nil, &svm.ErrUnsupportedVersion{Version: version}
	}

	if c.engine.Sigverify() {
		if err := svm.CheckSignatures(tx); err != nil {
			c.log.Debug("rejecting unsigned transaction", zap.Error(err))
			return 0, nil, err
		}
	}

	var data []byte
	if selected == legacyRoute {
		data, err = svm.EncodeLegacyTransaction(tx)
	} else {
		data, err = svm.EncodeVersionedTransaction(tx)
	}
	if err != nil {
		return 0, nil, err
	}
	c.log.Debug("routing transaction",
		zap.Stringer("route", selected),
		zap.Stringer("version", version),
		zap.Int("size", len(data)),
	)
	return selected, data, nil
}

// SendTransaction executes the transaction and commits its effects if it
// succeeds. On-chain failures are reported through the Err field of the
// result; the returned error covers only transactions that could not be
// handed to the engine.
func (c *Core) SendTransaction(tx svm.WireTransaction) (*Outcome, error) {
	selected, data, err := c.prepare(tx)
	if err != nil {
		return nil, err
	}
	var result svm.TransactionResult
	if selected == legacyRoute {
		result = c.engine.SendLegacyTransaction(data)
	} else {
		result = c.engine.SendVersionedTransaction(data)
	}
	return translateResult(result, staticKeys(tx))
}

// SimulateTransaction executes the transaction without committing its
// effects.
func (c *Core) SimulateTransaction(tx svm.WireTransaction) (*SimulationOutcome, error) {
	selected, data, err := c.prepare(tx)
	if err != nil {
		return nil, err
	}
	var result svm.SimulateResult
	if selected == legacyRoute {
		result = c.engine.SimulateLegacyTransaction(data)
	} else {
		result = c.engine.SimulateVersionedTransaction(data)
	}
	return translateSimulation(result, staticKeys(tx))
}

// staticKeys returns the account keys inner instructions are resolved
// against. prepare has already validated the message header.
func staticKeys(tx svm.WireTransaction) []svm.Address {
	keys, err := svm.StaticAccountKeys(tx.Message)
	if err != nil {
		return nil
	}
	return keys
}
