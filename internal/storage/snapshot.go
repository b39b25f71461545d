// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of radonkv.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/linkedin/goavro/v2"

	"github.com/ClusterCockpit/radonkv/internal/mem"
)

// entrySchema is the Avro record schema one mem.Record encodes to. The
// payload field carries the gob-encoded, kind-specific body opaquely -
// this layer only needs to get entries onto a target and back, not
// understand their contents.
const entrySchema = `{
	"type": "record",
	"name": "Entry",
	"fields": [
		{"name": "key", "type": "string"},
		{"name": "kind", "type": "int"},
		{"name": "payload", "type": "bytes"}
	]
}`

// EncodeSnapshot serializes records as an Avro object container file, the
// same format the teacher's metric checkpoints use (goavro.OCFWriter).
func EncodeSnapshot(records []mem.Record) ([]byte, error) {
	codec, err := goavro.NewCodec(entrySchema)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}

	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	writer, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               bw,
		Codec:           codec,
		CompressionName: goavro.CompressionDeflateLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("create snapshot writer: %w", err)
	}

	avroRecords := make([]interface{}, len(records))
	for i, r := range records {
		avroRecords[i] = map[string]interface{}{
			"key":     r.Key,
			"kind":    int32(r.Kind),
			"payload": r.Payload,
		}
	}
	if err := writer.Append(avroRecords); err != nil {
		return nil, fmt.Errorf("append snapshot records: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flush snapshot: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot, for a future LOAD/restore path.
func DecodeSnapshot(data []byte) ([]mem.Record, error) {
	reader, err := goavro.NewOCFReader(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("create snapshot reader: %w", err)
	}

	var records []mem.Record
	for reader.Scan() {
		raw, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("read snapshot record: %w", err)
		}
		rec, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected snapshot record shape %T", raw)
		}
		records = append(records, mem.Record{
			Key:     rec["key"].(string),
			Kind:    mem.Kind(rec["kind"].(int32)),
			Payload: rec["payload"].([]byte),
		})
	}
	return records, nil
}
