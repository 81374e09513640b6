// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !chaintrace

package chain

// Instrumented reports whether the module was built with the chaintrace tag.
// Without it, chains open no scopes unless an instrument is attached with
// WithInstrument, and no labels are computed.
const Instrumented = false

func defaultInstrument() Instrument { return nil }
