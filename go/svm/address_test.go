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
	"errors"
	"strings"
	"testing"

	"pgregory.net/rand"
)

func TestAddress_ZeroAddressIsSystemProgram(t *testing.T) {
	if !SystemProgramID.IsZero() {
		t.Errorf("system program id should be the zero address")
	}
	if want, got := "11111111111111111111111111111111", SystemProgramID.String(); want != got {
		t.Errorf("unexpected encoding, wanted %s, got %s", want, got)
	}
}

func TestAddress_Base58RoundTrip(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		var address Address
		if _, err := rnd.Read(address[:]); err != nil {
			t.Fatalf("failed to generate address: %v", err)
		}
		restored, err := AddressFromBase58(address.String())
		if err != nil {
			t.Fatalf("failed to decode %v: %v", address, err)
		}
		if restored != address {
			t.Errorf("round trip failed, wanted %v, got %v", address, restored)
		}
	}
}

func TestAddress_BytesRoundTrip(t *testing.T) {
	rnd := rand.New(1)
	for i := 0; i < 100; i++ {
		var address Address
		if _, err := rnd.Read(address[:]); err != nil {
			t.Fatalf("failed to generate address: %v", err)
		}
		restored, err := AddressFromBytes(address.Bytes())
		if err != nil {
			t.Fatalf("failed to decode %v: %v", address, err)
		}
		if restored != address {
			t.Errorf("round trip failed, wanted %v, got %v", address, restored)
		}
	}
}

func TestAddress_BytesReturnsACopy(t *testing.T) {
	address := Address{1, 2, 3}
	raw := address.Bytes()
	raw[0] = 42
	if address[0] != 1 {
		t.Errorf("modifying the result of Bytes changed the address")
	}
}

func TestAddress_FromBytesRejectsWrongLengths(t *testing.T) {
	for _, size := range []int{0, 1, 31, 33, 64} {
		_, err := AddressFromBytes(make([]byte, size))
		if !errors.Is(err, ErrMalformedAddress) {
			t.Errorf("expected malformed address error for %d bytes, got %v", size, err)
		}
	}
}

func TestAddress_FromBase58RejectsInvalidInput(t *testing.T) {
	tests := map[string]string{
		"empty":             "",
		"invalid character": "0OIl" + strings.Repeat("1", 28),
		"too short":         "1111111111111111111111111111111",
		"too long":          strings.Repeat("z", 50),
		"whitespace":        " " + SysvarOwnerID.String(),
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			address, err := AddressFromBase58(text)
			if !errors.Is(err, ErrMalformedAddress) {
				t.Errorf("expected decoding to fail, but instead it produced %v", address)
			}
		})
	}
}

func TestAddress_TextEncoding(t *testing.T) {
	text, err := ClockSysvarID.MarshalText()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if want, got := "SysvarC1ock11111111111111111111111111111111", string(text); want != got {
		t.Errorf("unexpected encoding, wanted %s, got %s", want, got)
	}
	var restored Address
	if err := restored.UnmarshalText(text); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if restored != ClockSysvarID {
		t.Errorf("unexpected restored value, wanted %v, got %v", ClockSysvarID, restored)
	}
}

func TestSignature_RoundTripAndZero(t *testing.T) {
	rnd := rand.New(2)
	var signature Signature
	if !signature.IsZero() {
		t.Errorf("default signature should be zero")
	}
	if _, err := rnd.Read(signature[:]); err != nil {
		t.Fatalf("failed to generate signature: %v", err)
	}
	if signature.IsZero() {
		t.Errorf("random signature should not be zero")
	}
	restored, err := SignatureFromBase58(signature.String())
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if restored != signature {
		t.Errorf("round trip failed, wanted %v, got %v", signature, restored)
	}
	if _, err := SignatureFromBytes(signature[:32]); !errors.Is(err, ErrMalformedSignature) {
		t.Errorf("expected malformed signature error, got %v", err)
	}
	if _, err := SignatureFromBase58(SysvarOwnerID.String()); !errors.Is(err, ErrMalformedSignature) {
		t.Errorf("expected malformed signature error, got %v", err)
	}
}

func TestHash_RoundTrip(t *testing.T) {
	hash := Hash{1, 2, 3, 4}
	restored, err := HashFromBase58(hash.String())
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if restored != hash {
		t.Errorf("round trip failed, wanted %v, got %v", hash, restored)
	}
	if _, err := HashFromBytes(make([]byte, 33)); !errors.Is(err, ErrMalformedHash) {
		t.Errorf("expected malformed hash error, got %v", err)
	}
}
