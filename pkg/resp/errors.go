// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

import "errors"

// errIncomplete/errMalformed are only returned by Parse, which the caller is
// required to invoke only after Check reported StatusComplete; seeing either
// here means Check and Parse disagreed, which is a codec bug, not a client
// error.
var (
	errIncomplete = errors.New("resp: parse called on an incomplete frame")
	errMalformed  = errors.New("resp: parse called on a malformed frame")
)
