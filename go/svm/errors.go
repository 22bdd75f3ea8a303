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

const (
	ErrMalformedAddress    = ConstError("malformed address")
	ErrMalformedSignature  = ConstError("malformed signature")
	ErrMalformedHash       = ConstError("malformed hash")
	ErrOverflow            = ConstError("value does not fit into 64 bits")
	ErrMissingSignatures   = ConstError("transaction is missing required signatures")
	ErrMalformedMessage    = ConstError("malformed transaction message")
	ErrComputeBudgetLength = ConstError("invalid number of compute budget values")
	ErrMalformedSysvar     = ConstError("malformed sysvar data")
)

// ConstError is a error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// ErrUnsupportedVersion is returned for transactions whose message carries a
// wire version no engine entry point exists for.
type ErrUnsupportedVersion struct {
	Version MessageVersion
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported transaction version %v", e.Version)
}
