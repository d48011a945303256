// Copyright 2017-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package osmpbf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
	"google.golang.org/protobuf/encoding/protowire"
)

// The fixtures below assemble wire-format messages field by field, so a
// test can describe exactly the bytes a writer would have produced,
// including malformed ones.

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

func msgField(num protowire.Number, payload []byte) []byte {
	b := protowire.AppendTag(nil, num, protowire.BytesType)

	return protowire.AppendBytes(b, payload)
}

func stringField(num protowire.Number, s string) []byte {
	b := protowire.AppendTag(nil, num, protowire.BytesType)

	return protowire.AppendString(b, s)
}

func varintField(num protowire.Number, v uint64) []byte {
	b := protowire.AppendTag(nil, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func sint64Field(num protowire.Number, v int64) []byte {
	return varintField(num, protowire.EncodeZigZag(v))
}

func packedSint64s(num protowire.Number, vals ...int64) []byte {
	var payload []byte
	for _, v := range vals {
		payload = protowire.AppendVarint(payload, protowire.EncodeZigZag(v))
	}

	return msgField(num, payload)
}

func packedSint32s(num protowire.Number, vals ...int32) []byte {
	var payload []byte
	for _, v := range vals {
		payload = protowire.AppendVarint(payload, protowire.EncodeZigZag(int64(v)))
	}

	return msgField(num, payload)
}

func packedVarints(num protowire.Number, vals ...uint64) []byte {
	var payload []byte
	for _, v := range vals {
		payload = protowire.AppendVarint(payload, v)
	}

	return msgField(num, payload)
}

func packedInt32s(num protowire.Number, vals ...int32) []byte {
	var payload []byte
	for _, v := range vals {
		payload = protowire.AppendVarint(payload, uint64(int64(v)))
	}

	return msgField(num, payload)
}

func packedBools(num protowire.Number, vals ...bool) []byte {
	var payload []byte

	for _, v := range vals {
		var u uint64
		if v {
			u = 1
		}

		payload = protowire.AppendVarint(payload, u)
	}

	return msgField(num, payload)
}

// stringTableField builds the string table field of a PrimitiveBlock.  By
// OSM convention the first entry is the empty string, so tests pass it
// explicitly.
func stringTableField(entries ...string) []byte {
	var msg []byte
	for _, e := range entries {
		msg = append(msg, stringField(1, e)...)
	}

	return msgField(1, msg)
}

func groupField(parts ...[]byte) []byte {
	return msgField(2, concat(parts...))
}

func nodeMsg(parts ...[]byte) []byte {
	return msgField(1, concat(parts...))
}

func denseMsg(parts ...[]byte) []byte {
	return msgField(2, concat(parts...))
}

func wayMsg(parts ...[]byte) []byte {
	return msgField(3, concat(parts...))
}

func relationMsg(parts ...[]byte) []byte {
	return msgField(4, concat(parts...))
}

// frameBlob frames content as one blob record: length field, BlobHeader,
// Blob.  kind selects the Blob payload arm.
func frameBlob(t testing.TB, typ, kind string, content []byte) []byte {
	t.Helper()

	blobMsg := blobBody(t, kind, content)
	headerMsg := concat(
		stringField(1, typ),
		varintField(3, uint64(len(blobMsg))),
	)

	out := binary.BigEndian.AppendUint32(nil, uint32(len(headerMsg)))
	out = append(out, headerMsg...)

	return append(out, blobMsg...)
}

func blobBody(t testing.TB, kind string, content []byte) []byte {
	t.Helper()

	rawSize := varintField(2, uint64(len(content)))

	switch kind {
	case "raw":
		return msgField(1, content)

	case "zlib":
		var buf bytes.Buffer

		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(content); err != nil {
			t.Fatal(err)
		}

		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}

		return concat(rawSize, msgField(3, buf.Bytes()))

	case "lzma":
		var buf bytes.Buffer

		lw, err := lzma.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := lw.Write(content); err != nil {
			t.Fatal(err)
		}

		if err := lw.Close(); err != nil {
			t.Fatal(err)
		}

		return concat(rawSize, msgField(4, buf.Bytes()))

	case "lz4":
		var buf bytes.Buffer

		lw := lz4.NewWriter(&buf)
		if _, err := lw.Write(content); err != nil {
			t.Fatal(err)
		}

		if err := lw.Close(); err != nil {
			t.Fatal(err)
		}

		return concat(rawSize, msgField(6, buf.Bytes()))

	case "zstd":
		var buf bytes.Buffer

		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := zw.Write(content); err != nil {
			t.Fatal(err)
		}

		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}

		return concat(rawSize, msgField(7, buf.Bytes()))

	default:
		t.Fatalf("unknown blob payload kind %q", kind)

		return nil
	}
}

// headerBlockMsg builds a minimal OSMHeader content message.
func headerBlockMsg(parts ...[]byte) []byte {
	return concat(parts...)
}

func bboxField(left, right, top, bottom int64) []byte {
	return msgField(1, concat(
		sint64Field(1, left),
		sint64Field(2, right),
		sint64Field(3, top),
		sint64Field(4, bottom),
	))
}

// sampleHeaderFrame is an OSMHeader blob with the features and metadata
// most writers emit.
func sampleHeaderFrame(t testing.TB) []byte {
	t.Helper()

	content := headerBlockMsg(
		bboxField(-511482000, 335437000, 51693440000, 51285540000),
		stringField(4, "OsmSchema-V0.6"),
		stringField(4, "DenseNodes"),
		stringField(16, "osmpbf-fixture"),
		stringField(17, "test"),
		varintField(32, 1395698102),
		varintField(33, 4221),
		stringField(34, "http://example.com/replication"),
	)

	return frameBlob(t, "OSMHeader", "raw", content)
}

// sampleBlockFrame is an OSMData blob with one group of each element shape:
// two dense nodes, one plain node, one way and one relation.
func sampleBlockFrame(t testing.TB) []byte {
	t.Helper()

	content := concat(
		stringTableField("", "highway", "primary", "name", "A1", "stop", "outer"),
		groupField(
			nodeMsg(
				sint64Field(1, 25),
				packedVarints(2, 3),
				packedVarints(3, 4),
				sint64Field(8, 515000000),
				sint64Field(9, -5000000),
			),
			denseMsg(
				packedSint64s(1, 10, 5),
				packedSint64s(8, 516000000, 1000),
				packedSint64s(9, -6000000, 2000),
				packedInt32s(10, 1, 2, 0, 0),
			),
			wayMsg(
				varintField(1, 40),
				packedVarints(2, 1),
				packedVarints(3, 2),
				packedSint64s(8, 10, 5, 10),
			),
			relationMsg(
				varintField(1, 50),
				packedVarints(2, 3),
				packedVarints(3, 4),
				packedInt32s(8, 6),
				packedSint64s(9, 40),
				packedInt32s(10, 1),
			),
		),
	)

	return frameBlob(t, "OSMData", "zlib", content)
}
