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

package info

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/osmpbf/model"
)

// frame assembles one blob record: length field, BlobHeader, raw Blob.
func frame(typ string, content []byte) []byte {
	blobMsg := protowire.AppendTag(nil, 1, protowire.BytesType)
	blobMsg = protowire.AppendBytes(blobMsg, content)

	headerMsg := protowire.AppendTag(nil, 1, protowire.BytesType)
	headerMsg = protowire.AppendString(headerMsg, typ)
	headerMsg = protowire.AppendTag(headerMsg, 3, protowire.VarintType)
	headerMsg = protowire.AppendVarint(headerMsg, uint64(len(blobMsg)))

	out := binary.BigEndian.AppendUint32(nil, uint32(len(headerMsg)))
	out = append(out, headerMsg...)

	return append(out, blobMsg...)
}

func sampleStream() []byte {
	header := protowire.AppendTag(nil, 4, protowire.BytesType)
	header = protowire.AppendString(header, "OsmSchema-V0.6")
	header = protowire.AppendTag(header, 16, protowire.BytesType)
	header = protowire.AppendString(header, "osmpbf-fixture")

	// one group holding a single node with id 7
	node := protowire.AppendTag(nil, 1, protowire.VarintType)
	node = protowire.AppendVarint(node, protowire.EncodeZigZag(7))

	group := protowire.AppendTag(nil, 1, protowire.BytesType)
	group = protowire.AppendBytes(group, node)

	block := protowire.AppendTag(nil, 2, protowire.BytesType)
	block = protowire.AppendBytes(block, group)

	return append(frame("OSMHeader", header), frame("OSMData", block)...)
}

func TestRunInfo(t *testing.T) {
	info := runInfo(bytes.NewReader(sampleStream()), 2, false)

	assert.Equal(t, []string{"OsmSchema-V0.6"}, info.RequiredFeatures)
	assert.Equal(t, "osmpbf-fixture", info.WritingProgram)
	assert.Zero(t, info.NodeCount)
}

func TestRunInfoExtended(t *testing.T) {
	info := runInfo(bytes.NewReader(sampleStream()), 2, true)

	assert.Equal(t, int64(1), info.NodeCount)
	assert.Zero(t, info.WayCount)
	assert.Zero(t, info.RelationCount)
}

func TestRenderJSON(t *testing.T) {
	bbox := &model.BoundingBox{Left: -0.511482, Right: 0.335437, Top: 51.69344, Bottom: 51.28554}
	ts, _ := time.Parse(time.RFC3339, "2014-03-24T21:55:02Z")
	h := model.Header{
		BoundingBox:                 bbox,
		RequiredFeatures:            []string{"OsmSchema-V0.6", "DenseNodes"},
		WritingProgram:              "Osmium (http://wiki.openstreetmap.org/wiki/Osmium)",
		OsmosisReplicationTimestamp: ts,
	}
	eh := &extendedHeader{
		Header:        h,
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
	}

	// mock out to collect JSON output
	buf := &bytes.Buffer{}

	saved := out

	defer func() { out = saved }()

	out = buf

	renderJSON(eh, true)

	info := &extendedHeader{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), info))

	require.NotNil(t, info.BoundingBox)
	assert.True(t, info.BoundingBox.EqualWithin(bbox, model.E6))
	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, info.RequiredFeatures)
	assert.Equal(t, "Osmium (http://wiki.openstreetmap.org/wiki/Osmium)", info.WritingProgram)
	assert.Equal(t, ts, info.OsmosisReplicationTimestamp.UTC())
	assert.Equal(t, int64(2729006), info.NodeCount)
	assert.Equal(t, int64(459055), info.WayCount)
	assert.Equal(t, int64(12833), info.RelationCount)
}

func TestRenderText(t *testing.T) {
	bbox := &model.BoundingBox{Left: -0.511482, Right: 0.335437, Top: 51.69344, Bottom: 51.28554}
	ts, _ := time.Parse(time.RFC3339, "2014-03-24T21:55:02Z")
	eh := &extendedHeader{
		Header: model.Header{
			BoundingBox:                 bbox,
			RequiredFeatures:            []string{"OsmSchema-V0.6", "DenseNodes"},
			WritingProgram:              "osmpbf-fixture",
			OsmosisReplicationTimestamp: ts,
		},
		NodeCount: 42,
	}

	buf := &bytes.Buffer{}

	saved := out

	defer func() { out = saved }()

	out = buf

	renderTxt(eh, true)

	txt := buf.String()

	assert.Contains(t, txt, "BoundingBox: [(51.69344, -0.511482) (51.28554, 0.335437)]")
	assert.Contains(t, txt, "RequiredFeatures: OsmSchema-V0.6, DenseNodes")
	assert.Contains(t, txt, "WritingProgram: osmpbf-fixture")
	assert.Contains(t, txt, "OsmosisReplicationTimestamp: 2014-03-24T21:55:02Z")
	assert.Contains(t, txt, "NodeCount: 42")

	assert.Equal(t, 11, strings.Count(txt, "\n"))
}
