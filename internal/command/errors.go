// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "errors"

// ParseError is the error kind a failed Parse reports, per spec 4.2's
// error-to-reply mapping: CommandNotFound -> "ERR unknown command",
// InvalidParameter -> "ERR invalid command", ProtocolError -> connection
// closing after a best-effort reply.
type ParseError struct {
	Kind Kind
	Name string
	err  error
}

type Kind int

const (
	CommandNotFound Kind = iota
	InvalidParameter
	ProtocolError
)

func (e *ParseError) Error() string {
	switch e.Kind {
	case CommandNotFound:
		return "unknown command '" + e.Name + "'"
	case ProtocolError:
		return "protocol error: " + e.err.Error()
	default:
		if e.err != nil {
			return "invalid parameter: " + e.err.Error()
		}
		return "invalid parameter"
	}
}

func (e *ParseError) Unwrap() error { return e.err }

func errNotFound(name string) error {
	return &ParseError{Kind: CommandNotFound, Name: name}
}

func errInvalidParam(err error) error {
	return &ParseError{Kind: InvalidParameter, err: err}
}

func errProtocol(err error) error {
	return &ParseError{Kind: ProtocolError, err: err}
}

// Sentinel causes wrapped by errInvalidParam/errProtocol.
var (
	ErrWrongArgCount  = errors.New("wrong number of arguments")
	ErrNotArray       = errors.New("expected an array frame")
	ErrNotIntegerLike = errors.New("expected an integer argument")
	ErrOddPairs       = errors.New("expected an even number of arguments")
	ErrEmptyCommand   = errors.New("empty command array")
)
