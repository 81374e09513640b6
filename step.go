// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// Step is a single fallible transformation from A to B.
// A named function and an inline func literal are both Steps.
type Step[A, B any] func(A) (B, error)

// Named pairs a Step with an explicit diagnostic label.
type Named[A, B any] struct {
	Label string
	Fn    Step[A, B]
}

// Name labels fn for diagnostic scopes.
// An empty label falls back to the derived label of fn.
func Name[A, B any](label string, fn Step[A, B]) Named[A, B] {
	return Named[A, B]{Label: label, Fn: fn}
}

// Then composes f and g into a single step.
// g runs only when f succeeds; the composed step is one scope when chained.
func Then[A, B, C any](f Step[A, B], g Step[B, C]) Step[A, C] {
	return func(a A) (C, error) {
		b, err := f(a)
		if err != nil {
			var zero C
			return zero, err
		}
		return g(b)
	}
}

// Lift turns an infallible function into a Step.
func Lift[A, B any](f func(A) B) Step[A, B] {
	return func(a A) (B, error) {
		return f(a), nil
	}
}

// stepLabel derives a diagnostic label for fn at the 1-based index.
// Named functions and method values yield their Go symbol with the import
// path trimmed (e.g. "sample.AddOne"). Func literals yield "step N".
func stepLabel(fn any, index int) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ordinal(index)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ordinal(index)
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if isFuncLiteral(name) {
		return ordinal(index)
	}
	return name
}

// isFuncLiteral reports whether a symbol names a compiler-generated closure,
// such as "pkg.TestX.func1", "pkg.init.func2.3" or "pkg.glob..func1".
func isFuncLiteral(name string) bool {
	parts := strings.Split(name, ".")
	for _, p := range parts[1:] {
		if strings.HasPrefix(p, "func") && isDigits(p[len("func"):]) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func ordinal(index int) string {
	return "step " + strconv.Itoa(index)
}
