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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseNodes(t *testing.T, block *PrimitiveBlock) []DenseNode {
	t.Helper()

	var nodes []DenseNode

	for group := range block.Groups() {
		for node := range group.DenseNodes() {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

func TestDenseNodesDeltaDecoding(t *testing.T) {
	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, 10, 5, -3),
			packedSint64s(8, 515000000, 1000, -2000),
			packedSint64s(9, -5000000, 100, 100),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))
	nodes := denseNodes(t, block)

	require.Len(t, nodes, 3)

	assert.Equal(t, int64(10), nodes[0].ID())
	assert.Equal(t, int64(15), nodes[1].ID())
	assert.Equal(t, int64(12), nodes[2].ID())

	// granularity defaults to 100 nanodegrees per unit
	assert.Equal(t, int64(51500000000), nodes[0].NanoLat())
	assert.Equal(t, int64(51500100000), nodes[1].NanoLat())
	assert.Equal(t, int64(51499900000), nodes[2].NanoLat())

	assert.Equal(t, int64(-500000000), nodes[0].NanoLon())
	assert.Equal(t, int64(-499990000), nodes[1].NanoLon())
	assert.Equal(t, int64(-499980000), nodes[2].NanoLon())

	assert.InDelta(t, 51.5, nodes[0].Lat(), 1e-9)
	assert.InDelta(t, -0.5, nodes[0].Lon(), 1e-9)
}

func TestDenseNodesShortColumn(t *testing.T) {
	// a truncated lon column limits the whole group
	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, 1, 1, 1),
			packedSint64s(8, 0, 0, 0),
			packedSint64s(9, 0, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))

	assert.Len(t, denseNodes(t, block), 2)
}

func TestDenseNodesTags(t *testing.T) {
	// shared keys_vals column: node 1 has two tags, node 2 none, node 3 one
	content := concat(
		stringTableField("", "highway", "primary", "name", "A1"),
		groupField(denseMsg(
			packedSint64s(1, 1, 1, 1),
			packedSint64s(8, 0, 0, 0),
			packedSint64s(9, 0, 0, 0),
			packedInt32s(10, 1, 2, 3, 4, 0, 0, 3, 4, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))
	nodes := denseNodes(t, block)
	require.Len(t, nodes, 3)

	collect := func(n DenseNode) map[string]string {
		tags := map[string]string{}
		for k, v := range n.Tags() {
			tags[k] = v
		}

		return tags
	}

	assert.Equal(t, map[string]string{"highway": "primary", "name": "A1"}, collect(nodes[0]))
	assert.Empty(t, collect(nodes[1]))
	assert.Equal(t, map[string]string{"name": "A1"}, collect(nodes[2]))
}

func TestDenseNodesMissingKeysVals(t *testing.T) {
	// an entirely untagged group omits the keys_vals column
	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, 1, 1),
			packedSint64s(8, 0, 0),
			packedSint64s(9, 0, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))

	for _, node := range denseNodes(t, block) {
		var n int
		for range node.RawTags() {
			n++
		}

		assert.Zero(t, n)
	}
}

func TestDenseNodesInfo(t *testing.T) {
	denseInfo := msgField(5, concat(
		packedInt32s(1, 1, 2, 1),
		packedSint64s(2, 1000, 10, 10),
		packedSint64s(3, 100, 1, 1),
		packedSint32s(4, 7, 1, 0),
		packedSint32s(5, 1, 1, -1),
		packedBools(6, true, false, true),
	))

	content := concat(
		stringTableField("", "alice", "bob"),
		varintField(18, 2000),
		groupField(denseMsg(
			packedSint64s(1, 1, 1, 1),
			denseInfo,
			packedSint64s(8, 0, 0, 0),
			packedSint64s(9, 0, 0, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))
	nodes := denseNodes(t, block)
	require.Len(t, nodes, 3)

	first, ok := nodes[0].Info()
	require.True(t, ok)

	// versions are absolute, the other columns are delta coded
	assert.Equal(t, int32(1), first.Version())
	assert.Equal(t, int64(1000*2000), first.MilliTimestamp())
	assert.Equal(t, int64(100), first.Changeset())
	assert.Equal(t, int32(7), first.UID())
	assert.True(t, first.Visible())

	user, err := first.User()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	second, ok := nodes[1].Info()
	require.True(t, ok)

	assert.Equal(t, int32(2), second.Version())
	assert.Equal(t, int64(1010*2000), second.MilliTimestamp())
	assert.Equal(t, int64(101), second.Changeset())
	assert.Equal(t, int32(8), second.UID())
	assert.False(t, second.Visible())

	user, err = second.User()
	require.NoError(t, err)
	assert.Equal(t, "bob", user)

	third, ok := nodes[2].Info()
	require.True(t, ok)

	assert.Equal(t, int64(1020*2000), third.MilliTimestamp())
	assert.True(t, third.Visible())

	user, err = third.User()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}

func TestDenseNodesInfoMissingVisible(t *testing.T) {
	denseInfo := msgField(5, concat(
		packedInt32s(1, 1),
		packedSint64s(2, 0),
		packedSint64s(3, 0),
		packedSint32s(4, 0),
		packedSint32s(5, 0),
	))

	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, 1),
			denseInfo,
			packedSint64s(8, 0),
			packedSint64s(9, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))
	nodes := denseNodes(t, block)
	require.Len(t, nodes, 1)

	info, ok := nodes[0].Info()
	require.True(t, ok)
	assert.True(t, info.Visible())
}

func TestDenseNodesInfoShortColumns(t *testing.T) {
	// only one timestamp for two nodes: the second node has no usable
	// metadata
	denseInfo := msgField(5, concat(
		packedInt32s(1, 1, 1),
		packedSint64s(2, 0),
		packedSint64s(3, 0, 0),
		packedSint32s(4, 0, 0),
		packedSint32s(5, 0, 0),
	))

	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, 1, 1),
			denseInfo,
			packedSint64s(8, 0, 0),
			packedSint64s(9, 0, 0),
		)),
	)

	block := decodeBlockFrame(t, frameBlob(t, "OSMData", "raw", content))
	nodes := denseNodes(t, block)
	require.Len(t, nodes, 2)

	_, ok := nodes[0].Info()
	assert.True(t, ok)

	_, ok = nodes[1].Info()
	assert.False(t, ok)
}

func TestDenseNodesNoInfo(t *testing.T) {
	block := decodeBlockFrame(t, sampleBlockFrame(t))

	for _, node := range denseNodes(t, block) {
		_, ok := node.Info()
		assert.False(t, ok)
	}
}
