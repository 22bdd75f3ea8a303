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
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// MessageVersion is the wire version of a transaction message. It is either
// the legacy format or a numbered versioned format.
type MessageVersion struct {
	versioned bool
	number    uint8
}

// Legacy is the version of messages predating the versioned wire format.
var Legacy = MessageVersion{}

// Versioned returns the version tag of a versioned message with the given
// version number.
func Versioned(number uint8) MessageVersion {
	return MessageVersion{versioned: true, number: number}
}

func (v MessageVersion) IsLegacy() bool {
	return !v.versioned
}

// Number returns the version number of a versioned message. The second result
// is false for legacy messages.
func (v MessageVersion) Number() (uint8, bool) {
	return v.number, v.versioned
}

func (v MessageVersion) String() string {
	if !v.versioned {
		return "legacy"
	}
	return fmt.Sprintf("v%d", v.number)
}

// messageVersionPrefix is set in the first byte of versioned messages. Legacy
// messages start with the number of required signatures which never has this
// bit set.
const messageVersionPrefix = 0x80

// DecodeMessageVersion determines the wire version of a serialized message by
// inspecting its first byte only.
func DecodeMessageVersion(message []byte) (MessageVersion, error) {
	if len(message) == 0 {
		return Legacy, fmt.Errorf("%w: empty message", ErrMalformedMessage)
	}
	if message[0]&messageVersionPrefix == 0 {
		return Legacy, nil
	}
	return Versioned(message[0] &^ messageVersionPrefix), nil
}

// MessageHeader is the fixed size header at the start of every message body.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

const messageHeaderSize = 3

func messageBody(message []byte) ([]byte, error) {
	version, err := DecodeMessageVersion(message)
	if err != nil {
		return nil, err
	}
	if version.IsLegacy() {
		return message, nil
	}
	return message[1:], nil
}

// ParseMessageHeader reads the header of a legacy or versioned message.
func ParseMessageHeader(message []byte) (MessageHeader, error) {
	body, err := messageBody(message)
	if err != nil {
		return MessageHeader{}, err
	}
	if len(body) < messageHeaderSize {
		return MessageHeader{}, fmt.Errorf("%w: truncated header", ErrMalformedMessage)
	}
	return MessageHeader{
		NumRequiredSignatures:       body[0],
		NumReadonlySignedAccounts:   body[1],
		NumReadonlyUnsignedAccounts: body[2],
	}, nil
}

// StaticAccountKeys returns the account keys listed directly in the message.
// Accounts loaded through address lookup tables of versioned messages are
// not included.
func StaticAccountKeys(message []byte) ([]Address, error) {
	body, err := messageBody(message)
	if err != nil {
		return nil, err
	}
	if len(body) < messageHeaderSize {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedMessage)
	}
	dec := bin.NewBinDecoder(body[messageHeaderSize:])
	count, err := readCompactLength(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if count*len(Address{}) > dec.Remaining() {
		return nil, fmt.Errorf("%w: %d account keys announced, data too short", ErrMalformedMessage, count)
	}
	keys := make([]Address, count)
	for i := range keys {
		raw, err := dec.ReadNBytes(len(Address{}))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		copy(keys[i][:], raw)
	}
	return keys, nil
}

func readCompactLength(dec *bin.Decoder) (int, error) {
	if dec.Remaining() == 0 {
		return 0, fmt.Errorf("missing length prefix")
	}
	return dec.ReadCompactU16()
}

// WireTransaction is a signed transaction in the form both client ecosystems
// agree on: a list of signature slots and the serialized message they sign.
// A zero signature marks a slot that has not been signed.
type WireTransaction struct {
	Signatures []Signature
	Message    []byte
}

func (t WireTransaction) Version() (MessageVersion, error) {
	return DecodeMessageVersion(t.Message)
}

// maxCompactU16 is the largest value the compact-u16 length prefix can hold.
const maxCompactU16 = 1<<16 - 1

func encodeWireTransaction(tx WireTransaction) ([]byte, error) {
	if len(tx.Signatures) > maxCompactU16 {
		return nil, fmt.Errorf("%w: too many signatures (%d)", ErrMalformedMessage, len(tx.Signatures))
	}
	res := make([]byte, 0, 3+len(tx.Signatures)*len(Signature{})+len(tx.Message))
	bin.EncodeCompactU16Length(&res, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		res = append(res, sig[:]...)
	}
	return append(res, tx.Message...), nil
}

// EncodeLegacyTransaction serializes a transaction carrying a legacy message.
func EncodeLegacyTransaction(tx WireTransaction) ([]byte, error) {
	version, err := tx.Version()
	if err != nil {
		return nil, err
	}
	if !version.IsLegacy() {
		return nil, fmt.Errorf("%w: expected legacy message, got %v", ErrMalformedMessage, version)
	}
	return encodeWireTransaction(tx)
}

// EncodeVersionedTransaction serializes a transaction carrying a versioned
// message. Any version number is accepted; picking the versions an engine
// supports is left to the caller.
func EncodeVersionedTransaction(tx WireTransaction) ([]byte, error) {
	version, err := tx.Version()
	if err != nil {
		return nil, err
	}
	if version.IsLegacy() {
		return nil, fmt.Errorf("%w: expected versioned message, got legacy", ErrMalformedMessage)
	}
	return encodeWireTransaction(tx)
}

// DecodeWireTransaction splits a serialized transaction into its signature
// slots and message.
func DecodeWireTransaction(data []byte) (WireTransaction, error) {
	dec := bin.NewBinDecoder(data)
	count, err := readCompactLength(dec)
	if err != nil {
		return WireTransaction{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if count*len(Signature{}) > dec.Remaining() {
		return WireTransaction{}, fmt.Errorf("%w: %d signatures announced, data too short", ErrMalformedMessage, count)
	}
	res := WireTransaction{Signatures: make([]Signature, count)}
	for i := range res.Signatures {
		raw, err := dec.ReadNBytes(len(Signature{}))
		if err != nil {
			return WireTransaction{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		copy(res.Signatures[i][:], raw)
	}
	res.Message = bytes.Clone(data[len(data)-dec.Remaining():])
	if _, err := ParseMessageHeader(res.Message); err != nil {
		return WireTransaction{}, err
	}
	return res, nil
}

// CheckSignatures verifies that every signature slot required by the message
// header is populated. The signatures themselves are not verified.
func CheckSignatures(tx WireTransaction) error {
	header, err := ParseMessageHeader(tx.Message)
	if err != nil {
		return err
	}
	required := int(header.NumRequiredSignatures)
	if len(tx.Signatures) < required {
		return fmt.Errorf("%w: %d of %d signature slots present", ErrMissingSignatures, len(tx.Signatures), required)
	}
	for i, sig := range tx.Signatures[:required] {
		if sig.IsZero() {
			return fmt.Errorf("%w: slot %d is unsigned", ErrMissingSignatures, i)
		}
	}
	return nil
}
