// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads and validates radonkv's JSON configuration file,
// following the teacher's own config shape (a flat JSON document decoded
// with DisallowUnknownFields, validated against a JSON Schema via
// santhosh-tekuri/jsonschema) generalized from a single HTTP listener to
// this server's set of RESP endpoints, storage target, and NATS settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"

	"github.com/ClusterCockpit/radonkv/pkg/nats"
)

// Endpoint is one address a Listener binds to (spec 4.4: "Listener (per
// endpoint)"). Protocol is schema-validated against the full set spec 6
// names, but only "tcp" is accepted at Load time - tls/ws/wss/quic/uds are
// recognized so a config file can name them and receive a clear config
// error, rather than an unknown-field rejection or a silent bind failure
// later.
type Endpoint struct {
	Name     string `json:"name"`
	Addr     string `json:"addr"`
	Protocol string `json:"protocol"`
}

// LimitsConfig bounds the frame sizes a Session accepts, wired straight
// into pkg/resp.Limits (spec 6).
type LimitsConfig struct {
	MaxBulkBytes int64 `json:"max-bulk-bytes"`
	MaxArrayLen  int64 `json:"max-array-len"`
}

// SnapshotConfig picks and configures the storage.SnapshotTarget SAVE/
// BGSAVE write to, plus the interval for the scheduled BGSAVE job.
type SnapshotConfig struct {
	// Target selects "file" or "s3".
	Target string `json:"target"`

	FilePath string `json:"file-path"`

	S3Endpoint     string `json:"s3-endpoint"`
	S3Bucket       string `json:"s3-bucket"`
	S3AccessKey    string `json:"s3-access-key"`
	S3SecretKey    string `json:"s3-secret-key"`
	S3Region       string `json:"s3-region"`
	S3UsePathStyle bool   `json:"s3-use-path-style"`

	// BGSaveInterval, a Go duration string (e.g. "15m"). Empty disables
	// the scheduled job; SAVE/BGSAVE/BGREWRITEAOF remain available on
	// demand regardless.
	BGSaveInterval string `json:"bgsave-interval"`
}

// Config is radonkv's program configuration, analogous to the teacher's
// ProgramConfig in cmd/cc-backend/main.go.
type Config struct {
	Endpoints []Endpoint `json:"endpoints"`

	// MetricsAddr is where the Prometheus /metrics and /healthz admin
	// surface listens, separate from the RESP endpoints above.
	MetricsAddr string `json:"metrics-addr"`

	Limits LimitsConfig `json:"limits"`

	Snapshot SnapshotConfig `json:"snapshot"`

	Nats nats.NatsConfig `json:"nats"`

	// Drop root permissions once every endpoint's port is bound.
	User  string `json:"user"`
	Group string `json:"group"`
}

// Default mirrors the teacher's package-level defaults, overridable by
// whatever config file is loaded on top.
func Default() Config {
	return Config{
		Endpoints:   []Endpoint{{Name: "default", Addr: ":6380", Protocol: "tcp"}},
		MetricsAddr: ":9121",
		Limits: LimitsConfig{
			MaxBulkBytes: 512 * 1024 * 1024,
			MaxArrayLen:  1024 * 1024,
		},
		Snapshot: SnapshotConfig{
			Target:         "file",
			FilePath:       "./var/snapshots",
			BGSaveInterval: "15m",
		},
	}
}

// schema is radonkv's top-level JSON Schema, composing nats.ConfigSchema the
// same way the teacher composes per-package schemas into one document.
const schema = `{
	"type": "object",
	"properties": {
		"endpoints": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"addr": {"type": "string"},
					"protocol": {
						"type": "string",
						"enum": ["tcp", "tls", "ws", "wss", "quic", "uds"]
					}
				},
				"required": ["name", "addr"]
			}
		},
		"metrics-addr": {"type": "string"},
		"limits": {
			"type": "object",
			"properties": {
				"max-bulk-bytes": {"type": "integer", "minimum": 1},
				"max-array-len": {"type": "integer", "minimum": 1}
			}
		},
		"snapshot": {
			"type": "object",
			"properties": {
				"target": {"type": "string", "enum": ["file", "s3"]},
				"file-path": {"type": "string"},
				"s3-endpoint": {"type": "string"},
				"s3-bucket": {"type": "string"},
				"s3-access-key": {"type": "string"},
				"s3-secret-key": {"type": "string"},
				"s3-region": {"type": "string"},
				"s3-use-path-style": {"type": "boolean"},
				"bgsave-interval": {"type": "string"}
			},
			"required": ["target"]
		},
		"nats": ` + nats.ConfigSchema + `,
		"user": {"type": "string"},
		"group": {"type": "string"}
	}
}`

// Load decodes and validates path into a Config starting from Default().
// Callers load any .env file (runtimeEnv.LoadEnv) before calling Load, same
// order as the teacher's main.go.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cclog.Warnf("config: %s not found, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	Validate(schema, raw)

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	for i, ep := range cfg.Endpoints {
		if ep.Protocol == "" {
			cfg.Endpoints[i].Protocol = "tcp"
			continue
		}
		if ep.Protocol != "tcp" {
			return cfg, fmt.Errorf("config: endpoint %q: protocol %q is recognized but not implemented, only \"tcp\" is supported", ep.Name, ep.Protocol)
		}
	}

	return cfg, nil
}
