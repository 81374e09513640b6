// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"code.hybscloud.com/chain"
)

const propertyN = 1000

// randInt returns a random int in [-1000, 1000].
func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

var errThreshold = errors.New("above threshold")

// randStep returns a random step and its pure equivalent.
// About a quarter of the steps fail above a random threshold.
func randStep(rng *rand.Rand) (chain.Step[int, int], func(int) (int, bool)) {
	k := rng.IntN(7) - 3
	switch rng.IntN(4) {
	case 0:
		return func(x int) (int, error) { return x + k, nil }, func(x int) (int, bool) { return x + k, true }
	case 1:
		return func(x int) (int, error) { return x * k, nil }, func(x int) (int, bool) { return x * k, true }
	case 2:
		return func(x int) (int, error) { return x - k, nil }, func(x int) (int, bool) { return x - k, true }
	default:
		limit := randInt(rng)
		step := func(x int) (int, error) {
			if x > limit {
				return 0, errThreshold
			}
			return x, nil
		}
		return step, func(x int) (int, bool) { return x, x <= limit }
	}
}

// TestPropertyComposition: Chain(v, s1..sn) ≡ sn(...s1(v)) with early exit.
func TestPropertyComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		n := 1 + rng.IntN(6)
		steps := make([]chain.Step[int, int], n)
		pure := make([]func(int) (int, bool), n)
		for i := range steps {
			steps[i], pure[i] = randStep(rng)
		}
		v := randInt(rng)

		want, ok := v, true
		for _, p := range pure {
			if want, ok = p(want); !ok {
				break
			}
		}
		got, err := chain.Chain(v, steps[0], steps[1:]...)
		if ok != (err == nil) {
			t.Fatalf("composition: ok=%v err=%v (v=%d)", ok, err, v)
		}
		if ok && got != want {
			t.Fatalf("composition: %d != %d (v=%d)", got, want, v)
		}
		if !ok && err != errThreshold {
			t.Fatalf("composition: got error %v, want %v", err, errThreshold)
		}
	}
}

// TestPropertyAssociativity: Chain(v, s1, s2, s3) ≡ Chain(Chain(v, s1), s2, s3)
// and ≡ Chain(Chain(v, s1, s2), s3).
func TestPropertyAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		s1, _ := randStep(rng)
		s2, _ := randStep(rng)
		s3, _ := randStep(rng)
		v := randInt(rng)

		whole, errWhole := chain.Chain(v, s1, s2, s3)

		left, errLeft := chain.Chain(v, s1)
		if errLeft == nil {
			left, errLeft = chain.Chain(left, s2, s3)
		}
		right, errRight := chain.Chain(v, s1, s2)
		if errRight == nil {
			right, errRight = chain.Chain(right, s3)
		}

		if whole != left || errWhole != errLeft {
			t.Fatalf("associativity (left): (%d, %v) != (%d, %v) (v=%d)", whole, errWhole, left, errLeft, v)
		}
		if whole != right || errWhole != errRight {
			t.Fatalf("associativity (right): (%d, %v) != (%d, %v) (v=%d)", whole, errWhole, right, errRight, v)
		}
	}
}

// TestPropertySingleStep: Chain(v, s) ≡ s(v).
func TestPropertySingleStep(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		s, _ := randStep(rng)
		v := randInt(rng)
		got, gotErr := chain.Chain(v, s)
		want, wantErr := s(v)
		if wantErr != nil {
			want = 0
		}
		if got != want || gotErr != wantErr {
			t.Fatalf("single step: (%d, %v) != (%d, %v) (v=%d)", got, gotErr, want, wantErr, v)
		}
	}
}

// TestPropertyFirstFailureWins: a failing step k stops the chain; steps
// after k never run and the error is step k's.
func TestPropertyFirstFailureWins(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		n := 2 + rng.IntN(6)
		k := rng.IntN(n)
		calls := make([]int, n)
		stepErr := errors.New("step failed")
		steps := make([]chain.Step[int, int], n)
		for i := range steps {
			steps[i] = func(x int) (int, error) {
				calls[i]++
				if i == k {
					return 0, stepErr
				}
				return x + 1, nil
			}
		}
		_, err := chain.Chain(randInt(rng), steps[0], steps[1:]...)
		if err != stepErr {
			t.Fatalf("got error %v, want step %d's error", err, k)
		}
		for i, c := range calls {
			want := 1
			if i > k {
				want = 0
			}
			if c != want {
				t.Fatalf("step %d ran %d times, want %d (k=%d)", i, c, want, k)
			}
		}
	}
}

// TestPropertyInstrumentationTransparent: scopes never change the outcome.
func TestPropertyInstrumentationTransparent(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	rec := &chain.Recorder{}
	on := chain.WithInstrument(context.Background(), rec)
	off := chain.WithInstrument(context.Background(), nil)
	for range propertyN {
		s1, _ := randStep(rng)
		s2, _ := randStep(rng)
		s3, _ := randStep(rng)
		v := randInt(rng)

		plain, errPlain := chain.ChainContext(off, v, s1, s2, s3)
		traced, errTraced := chain.ChainContext(on, v, s1, s2, s3)
		if plain != traced || errPlain != errTraced {
			t.Fatalf("transparency: (%d, %v) != (%d, %v) (v=%d)", plain, errPlain, traced, errTraced, v)
		}
	}
	events := rec.Events()
	if len(events)%2 != 0 {
		t.Fatalf("unbalanced scopes: %d events", len(events))
	}
}

// TestPropertyInlineNamedEquivalent: named, inline and mixed chains agree.
func TestPropertyInlineNamedEquivalent(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	inlineAdd := func(x int) (int, error) { return x + 1, nil }
	inlineDouble := func(x int) (int, error) { return x * 2, nil }
	inlineSub := func(x int) (int, error) { return x - 3, nil }
	for range propertyN {
		v := randInt(rng)
		named, _ := chain.Chain(v, addOne, multiplyByTwo, subtractThree)
		inline, _ := chain.Chain(v, inlineAdd, inlineDouble, inlineSub)
		mixed, _ := chain.Chain(v, addOne, inlineDouble, subtractThree)
		if named != inline || named != mixed || named != 2*v-1 {
			t.Fatalf("named=%d inline=%d mixed=%d, want %d (v=%d)", named, inline, mixed, 2*v-1, v)
		}
	}
}
