// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sample holds the arithmetic steps used by chaindemo and by tests.
package sample

import (
	"context"
	"errors"
	"fmt"

	"code.hybscloud.com/chain"
)

// ErrOdd is returned by RequireEven for odd input.
var ErrOdd = errors.New("sample: odd input")

// AddOne returns x+1.
func AddOne(x int) (int, error) { return x + 1, nil }

// MultiplyByTwo returns x*2.
func MultiplyByTwo(x int) (int, error) { return x * 2, nil }

// SubtractThree returns x-3.
func SubtractThree(x int) (int, error) { return x - 3, nil }

// RequireEven returns x*2 for even x and fails with ErrOdd otherwise.
func RequireEven(x int) (int, error) {
	if x%2 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrOdd, x)
	}
	return x * 2, nil
}

// Compute runs AddOne, MultiplyByTwo, SubtractThree, i.e. 2x-1.
func Compute(ctx context.Context, x int) (int, error) {
	return chain.ChainContext(ctx, x, AddOne, MultiplyByTwo, SubtractThree)
}

// ComputeStrict is Compute with MultiplyByTwo replaced by RequireEven.
// It fails for every even x, since AddOne makes the value odd.
func ComputeStrict(ctx context.Context, x int) (int, error) {
	return chain.ChainContext(ctx, x, AddOne, RequireEven, SubtractThree)
}
