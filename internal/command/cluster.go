// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// ClusterOp enumerates the trivial cluster-management operations handled by
// the Cluster stub component (spec 4.6).
type ClusterOp int

const (
	ClusterReadOnly ClusterOp = iota
	ClusterReadWrite
)

// ClusterCmd is READONLY/READWRITE, routed to the Cluster component.
type ClusterCmd struct {
	Op ClusterOp
}

func (ClusterCmd) Family() Family { return FamilyClusterManagement }

func parseClusterCommand(name string, cur *Cursor) (Command, error) {
	switch name {
	case "readonly":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ClusterCmd{Op: ClusterReadOnly}, nil
	case "readwrite":
		if err := cur.RequireExhausted(); err != nil {
			return nil, err
		}
		return ClusterCmd{Op: ClusterReadWrite}, nil
	}
	return nil, nil
}
