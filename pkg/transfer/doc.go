// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transfer implements the segmented transfer state machine of EBICS
upload and download transactions.

A transaction moves forward only:

	Initialisation -> Transfer(1..N) -> Receipt -> Done

Segments are processed strictly in order; a segment that is not the next
one fails with ErrOutOfSequence. Receipts are only part of downloads.

# Upload

	segments := transfer.Split(ciphertext, transfer.DefaultSegmentSize)
	state, _ := transfer.NewState(len(segments))
	state.SetTransactionID(txID)
	for state.HasNext() {
	    n, _ := state.Next()
	    send(segments[n-1], n, state.IsLast())
	}

# Download

	state, _ := transfer.NewState(numSegments)
	joiner := transfer.NewJoiner()
	_ = state.Apply(1)
	joiner.Append(first)
	for state.HasNext() {
	    seg, n := fetch(state.Segment() + 1)
	    if err := state.Apply(n); err != nil { ... }
	    joiner.Append(seg)
	}
	_ = state.Receipt()

A State is owned by a single transaction and is not safe for concurrent use.
*/
package transfer
