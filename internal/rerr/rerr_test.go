// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rerr

import (
	"errors"
	"testing"
)

func TestClosesConnection(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindFrameMalformed, true},
		{KindIO, true},
		{KindCommandUnknown, false},
		{KindInvalidParams, false},
		{KindWrongType, false},
		{KindNoSuchKey, false},
		{KindOutOfRange, false},
		{KindInternal, false},
		{KindChannelClosed, false},
		{KindConfig, false},
	}
	for _, tt := range tests {
		if got := tt.kind.ClosesConnection(); got != tt.want {
			t.Fatalf("Kind(%d).ClosesConnection() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestIsFatalToTask(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindChannelClosed, true},
		{KindFrameMalformed, false},
		{KindIO, false},
		{KindInternal, false},
		{KindConfig, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsFatalToTask(); got != tt.want {
			t.Fatalf("Kind(%d).IsFatalToTask() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestErrorWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := New(KindIO, cause)

	if err.Error() != "boom" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "boom")
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false, want true")
	}
	if err.Kind != KindIO {
		t.Fatalf("Kind = %v, want KindIO", err.Kind)
	}
}
