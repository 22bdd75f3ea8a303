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
	"math"
	"math/big"
	"strings"
	"testing"

	"pgregory.net/rand"
)

func TestAccount_EncodeDecodeRoundTrip(t *testing.T) {
	rnd := rand.New(0)
	for i := 0; i < 50; i++ {
		account := Account{
			Lamports:   rnd.Uint64(),
			Data:       make([]byte, rnd.Intn(64)),
			Executable: rnd.Intn(2) == 0,
			RentEpoch:  rnd.Uint64(),
		}
		rnd.Read(account.Data)
		rnd.Read(account.Owner[:])

		restored, err := DecodeAccount(EncodeAccount(account))
		if err != nil {
			t.Fatalf("failed to decode account: %v", err)
		}
		if !account.Equal(&restored) {
			t.Errorf("round trip failed: %v", account.Diff(&restored))
		}
	}
}

func TestAccount_EncodingDoesNotShareData(t *testing.T) {
	account := Account{Data: []byte{1, 2, 3}}
	record := EncodeAccount(account)
	record.Data[0] = 42
	record.Owner[0] = 42
	if account.Data[0] != 1 || account.Owner[0] != 0 {
		t.Errorf("modifying the record changed the source account")
	}

	restored, err := DecodeAccount(record)
	if err != nil {
		t.Fatalf("failed to decode account: %v", err)
	}
	restored.Data[1] = 42
	if record.Data[1] != 2 {
		t.Errorf("modifying the decoded account changed the record")
	}
}

func TestAccount_DecodeFailsOnMalformedOwner(t *testing.T) {
	_, err := DecodeAccount(AccountRecord{Owner: []byte{1, 2, 3}})
	if !errors.Is(err, ErrMalformedAddress) {
		t.Errorf("expected malformed address error, got %v", err)
	}
}

func TestAccount_CloneIsIndependent(t *testing.T) {
	account := Account{Lamports: 5, Data: []byte{1}}
	clone := account.Clone()
	clone.Data[0] = 2
	if account.Data[0] != 1 {
		t.Errorf("clone shares data with original")
	}
}

func TestAccount_DiffReportsEveryField(t *testing.T) {
	a := Account{}
	b := Account{Lamports: 1, Data: []byte{1}, Owner: Address{1}, Executable: true, RentEpoch: 1}
	diffs := a.Diff(&b)
	if len(diffs) != 5 {
		t.Fatalf("expected 5 differences, got %v", diffs)
	}
	for i, want := range []string{"lamports", "data", "owner", "executable", "rent epoch"} {
		if !strings.Contains(diffs[i], want) {
			t.Errorf("expected difference %d to mention %s, got %s", i, want, diffs[i])
		}
	}
	if len(a.Diff(&a)) != 0 {
		t.Errorf("self comparison reported differences")
	}
}

func TestUint64FromBig(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 64)
	tests := map[string]struct {
		input *big.Int
		want  uint64
		err   error
	}{
		"nil":        {nil, 0, nil},
		"zero":       {big.NewInt(0), 0, nil},
		"small":      {big.NewInt(42), 42, nil},
		"max":        {new(big.Int).SetUint64(math.MaxUint64), math.MaxUint64, nil},
		"2^64":       {tooBig, 0, ErrOverflow},
		"2^256":      {new(big.Int).Lsh(big.NewInt(1), 256), 0, ErrOverflow},
		"negative":   {big.NewInt(-1), 0, ErrOverflow},
		"max+1 rent": {new(big.Int).Add(tooBig, big.NewInt(1)), 0, ErrOverflow},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Uint64FromBig(test.input)
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error, wanted %v, got %v", test.err, err)
			}
			if got != test.want {
				t.Errorf("unexpected result, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestBigFromUint64_RoundTrip(t *testing.T) {
	for _, value := range []uint64{0, 1, math.MaxUint32, math.MaxUint64} {
		got, err := Uint64FromBig(BigFromUint64(value))
		if err != nil || got != value {
			t.Errorf("round trip of %d failed, got %d, %v", value, got, err)
		}
	}
}
