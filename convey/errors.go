// SPDX-License-Identifier: MIT
// Package convey: sentinel error set.
// All collectives MUST return these sentinels and tests MUST check them
// via errors.Is. Panics are reserved for programmer errors in private
// helpers.
package convey

import "errors"

var (
	// ErrAborted is returned by every collective on a group that has been
	// torn down because some rank failed. The originating error is the one
	// reported by Run; ErrAborted is what the bystander ranks observe.
	ErrAborted = errors.New("convey: group aborted")

	// ErrBadGroupSize indicates Run was asked to launch fewer than one rank.
	ErrBadGroupSize = errors.New("convey: group size must be >= 1")

	// ErrNilBody indicates Run was given a nil body function.
	ErrNilBody = errors.New("convey: nil rank body")

	// ErrBadDestination indicates Session.Push targeted a rank outside [0, P).
	ErrBadDestination = errors.New("convey: destination rank out of range")

	// ErrSessionClosed indicates Session.Push was called after Finish.
	ErrSessionClosed = errors.New("convey: session already finished")
)
