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
	"iter"

	"m4o.io/osmpbf/internal/pb"
)

// DenseNode is a node decoded from the columnar dense representation,
// borrowed from its PrimitiveBlock.  Its id, coordinates and metadata are
// already reconstructed from the delta coded columns; its tags still index
// the block's string table.
type DenseNode struct {
	block *pb.PrimitiveBlock
	dense *pb.DenseNodes

	id  int64
	lat int64
	lon int64

	// kvStart is the index of this node's first entry in the shared
	// keys_vals column; the node's run ends at the next zero.
	kvStart int

	info    DenseNodeInfo
	hasInfo bool
}

func (DenseNode) isElement() {}

// ID returns the node id.
func (n DenseNode) ID() int64 {
	return n.id
}

// NanoLat returns the latitude in nanodegrees.
func (n DenseNode) NanoLat() int64 {
	return n.block.GetLatOffset() + int64(n.block.GetGranularity())*n.lat
}

// NanoLon returns the longitude in nanodegrees.
func (n DenseNode) NanoLon() int64 {
	return n.block.GetLonOffset() + int64(n.block.GetGranularity())*n.lon
}

// Lat returns the latitude in degrees.
func (n DenseNode) Lat() float64 {
	return 1e-9 * float64(n.NanoLat())
}

// Lon returns the longitude in degrees.
func (n DenseNode) Lon() float64 {
	return 1e-9 * float64(n.NanoLon())
}

// Tags returns an iterator over the node's resolved tag pairs, with the
// same early-truncation behavior as Node.Tags.
func (n DenseNode) Tags() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for k, v := range n.RawTags() {
			key, kerr := strFromStringTable(n.block, int(k))
			val, verr := strFromStringTable(n.block, int(v))

			if kerr != nil || verr != nil {
				return
			}

			if !yield(key, val) {
				return
			}
		}
	}
}

// RawTags returns an iterator over the node's tag index pairs.  Dense tags
// are stored as one shared zero-delimited column; a trailing key without a
// value is dropped.
func (n DenseNode) RawTags() iter.Seq2[uint32, uint32] {
	return func(yield func(uint32, uint32) bool) {
		kvs := n.dense.GetKeysVals()

		for i := n.kvStart; i+1 < len(kvs) && kvs[i] != 0; i += 2 {
			if !yield(uint32(kvs[i]), uint32(kvs[i+1])) {
				return
			}
		}
	}
}

// Info returns the node's metadata.  ok is false when the group carries no
// dense metadata, or carries too few column entries to cover this node.
func (n DenseNode) Info() (info DenseNodeInfo, ok bool) {
	return n.info, n.hasInfo
}

// DenseNodeInfo is metadata reconstructed from the dense metadata columns.
// Unlike Info, its fields are not optional: a group either carries every
// column for every node or carries no usable metadata at all.
type DenseNodeInfo struct {
	block *pb.PrimitiveBlock

	version   int32
	timestamp int64
	changeset int64
	uid       int32
	userSid   int32
	visible   bool
}

// Version returns the element version.
func (i DenseNodeInfo) Version() int32 {
	return i.version
}

// MilliTimestamp returns the timestamp in milliseconds since the epoch: the
// reconstructed column value times the block's date granularity.
func (i DenseNodeInfo) MilliTimestamp() int64 {
	return i.timestamp * int64(i.block.GetDateGranularity())
}

// Changeset returns the changeset id.
func (i DenseNodeInfo) Changeset() int64 {
	return i.changeset
}

// UID returns the user id.
func (i DenseNodeInfo) UID() int32 {
	return i.uid
}

// User returns the user name resolved through the string table.
func (i DenseNodeInfo) User() (string, error) {
	return strFromStringTable(i.block, int(i.userSid))
}

// Visible returns the visibility of the element.  A missing visible column
// means true: only history files record deleted elements.
func (i DenseNodeInfo) Visible() bool {
	return i.visible
}

// denseNodeIter walks the dense columns in lock step, maintaining the
// running sums the delta coding requires.
type denseNodeIter struct {
	block *pb.PrimitiveBlock
	dense *pb.DenseNodes

	// n is the number of decodable nodes: the shortest of the id, lat and
	// lon columns.
	n int
	i int

	id  int64
	lat int64
	lon int64
	kv  int

	timestamp int64
	changeset int64
	uid       int32
	userSid   int32
}

func newDenseNodeIter(block *pb.PrimitiveBlock, dense *pb.DenseNodes) *denseNodeIter {
	it := &denseNodeIter{block: block, dense: dense}

	if dense != nil {
		it.n = min(len(dense.GetId()), len(dense.GetLat()), len(dense.GetLon()))
	}

	return it
}

func (it *denseNodeIter) next() (DenseNode, bool) {
	if it.i >= it.n {
		return DenseNode{}, false
	}

	i := it.i
	it.i++

	it.id += it.dense.GetId()[i]
	it.lat += it.dense.GetLat()[i]
	it.lon += it.dense.GetLon()[i]

	node := DenseNode{
		block:   it.block,
		dense:   it.dense,
		id:      it.id,
		lat:     it.lat,
		lon:     it.lon,
		kvStart: it.kv,
	}

	it.advanceKeysVals()

	if info, ok := it.denseInfo(i); ok {
		node.info = info
		node.hasInfo = true
	}

	return node, true
}

// advanceKeysVals skips the current node's run in the shared keys_vals
// column, including its zero terminator.  A column that has run out leaves
// later nodes with empty tags, which is also how writers encode an entirely
// untagged group.
func (it *denseNodeIter) advanceKeysVals() {
	kvs := it.dense.GetKeysVals()

	for it.kv < len(kvs) && kvs[it.kv] != 0 {
		it.kv += 2
	}

	if it.kv < len(kvs) {
		it.kv++
	}
}

// denseInfo reconstructs the i-th node's metadata from the dense info
// columns.  Metadata is all-or-nothing: every delta coded column must cover
// the node or no metadata is reported.
func (it *denseNodeIter) denseInfo(i int) (DenseNodeInfo, bool) {
	di := it.dense.GetDenseinfo()
	if di == nil {
		return DenseNodeInfo{}, false
	}

	versions := di.GetVersion()
	timestamps := di.GetTimestamp()
	changesets := di.GetChangeset()
	uids := di.GetUid()
	userSids := di.GetUserSid()

	if i >= len(versions) || i >= len(timestamps) || i >= len(changesets) ||
		i >= len(uids) || i >= len(userSids) {
		return DenseNodeInfo{}, false
	}

	it.timestamp += timestamps[i]
	it.changeset += changesets[i]
	it.uid += uids[i]
	it.userSid += userSids[i]

	// The visible column is optional as a whole; absent means visible.
	visible := true
	if visibles := di.GetVisible(); i < len(visibles) {
		visible = visibles[i]
	}

	return DenseNodeInfo{
		block:     it.block,
		version:   versions[i],
		timestamp: it.timestamp,
		changeset: it.changeset,
		uid:       it.uid,
		userSid:   it.userSid,
		visible:   visible,
	}, true
}
