// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cluster

import (
	"testing"

	"github.com/ClusterCockpit/radonkv/internal/command"
	"github.com/ClusterCockpit/radonkv/pkg/resp"
)

func TestHandleReadOnlyAndReadWriteAlwaysOK(t *testing.T) {
	c := NewComponent(nil)

	for _, op := range []command.ClusterOp{command.ClusterReadOnly, command.ClusterReadWrite} {
		frame := c.Handle(command.ClusterCmd{Op: op})
		if frame.Type != resp.TypeSimple || frame.Str != "OK" {
			t.Fatalf("Handle(%v) = %+v, want simple OK", op, frame)
		}
	}
}
