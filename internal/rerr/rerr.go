// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rerr names the error kinds spec 7 assigns distinct handling to,
// so components above the wire layer can decide whether a failure closes a
// connection, stops the process, or is simply a reply.
package rerr

// Kind classifies what happens next after an error, per spec 7.
type Kind int

const (
	// KindFrameMalformed: the byte stream itself could not be decoded.
	// The connection sends a best-effort reply, then closes.
	KindFrameMalformed Kind = iota
	// KindCommandUnknown / KindInvalidParams: the client sent a
	// recognizable frame that does not name a known command, or names
	// one with bad arguments. A reply is sent, the connection stays up.
	KindCommandUnknown
	KindInvalidParams
	// KindWrongType / KindNoSuchKey / KindOutOfRange: a canonical error
	// reply, no keyspace mutation, connection stays up.
	KindWrongType
	KindNoSuchKey
	KindOutOfRange
	// KindInternal: a generic error reply; keyspace left unchanged.
	KindInternal
	// KindChannelClosed: fatal to the owning task; the supervisor exits.
	KindChannelClosed
	// KindIO: closes only the affected session.
	KindIO
	// KindConfig: a startup failure.
	KindConfig
)

// Error pairs a Kind with the underlying cause, so callers can both branch
// on Kind and log/propagate the original error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given Kind.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// ClosesConnection reports whether this Kind, per spec 7, terminates the
// owning Session rather than merely producing an error reply.
func (k Kind) ClosesConnection() bool {
	switch k {
	case KindFrameMalformed, KindIO:
		return true
	default:
		return false
	}
}

// IsFatalToTask reports whether this Kind requires the owning task (and,
// for KindChannelClosed, the whole supervisor) to stop.
func (k Kind) IsFatalToTask() bool {
	return k == KindChannelClosed
}
