// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

// ReplyFrame is Frame used in the server-to-client direction. It is the same
// wire shape; this file only names the constants replies reuse most often
// (spec 3, "ReplyFrame"). Go interns string constants, so there is no
// separate owned/static representation to model here - every Frame already
// shares storage for its Str/Bulk contents the way the runtime sees fit.
type ReplyFrame = Frame

// Status/error text shared across command families. Reply wording follows
// Redis (OK, not the source's inconsistent Ok/OK), per spec 9 design note c.
const (
	okText              = "OK"
	pongText             = "PONG"
	queuedText           = "QUEUED"
	wrongTypeErrText     = "WRONGTYPE Operation against a key holding the wrong kind of value"
	noSuchKeyErrText     = "ERR no such key"
	outOfRangeErrText    = "ERR index out of range"
	invalidCommandText   = "ERR invalid command"
	syntaxErrText        = "ERR syntax error"
	stringTooLongErrText = "ERR string exceeds maximum allowed size"
)

func OK() ReplyFrame              { return Simple(okText) }
func Pong() ReplyFrame            { return Simple(pongText) }
func Queued() ReplyFrame          { return Simple(queuedText) }
func WrongTypeErr() ReplyFrame    { return Error(wrongTypeErrText) }
func NoSuchKeyErr() ReplyFrame    { return Error(noSuchKeyErrText) }
func OutOfRangeErr() ReplyFrame   { return Error(outOfRangeErrText) }
func InvalidCommand() ReplyFrame  { return Error(invalidCommandText) }
func SyntaxErr() ReplyFrame       { return Error(syntaxErrText) }
func StringTooLongErr() ReplyFrame { return Error(stringTooLongErrText) }

// UnknownCommandErr formats the "ERR unknown command" reply for an unknown
// command name, per spec 4.2's error-to-reply mapping.
func UnknownCommandErr(name string) ReplyFrame {
	return Error("ERR unknown command '" + name + "'")
}

// InternalErr reports an internal error (spec 7): the keyspace is left
// unchanged and the client sees a generic failure.
func InternalErr(msg string) ReplyFrame {
	return Error("ERR internal error: " + msg)
}

func Zero() ReplyFrame    { return Integer(0) }
func One() ReplyFrame     { return Integer(1) }
func NegOne() ReplyFrame  { return Integer(-1) }
func EmptyArray() ReplyFrame { return ArrayOf(nil) }
func EmptyBulk() ReplyFrame  { return BulkOf(nil) }
