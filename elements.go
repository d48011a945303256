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

// Element is one of the OSM core elements: Node, DenseNode, Way or
// Relation.  DenseNode is a node with a different representation in memory;
// the distinction is not abstracted away to avoid copying, so code matching
// Node almost always wants to match DenseNode too.
type Element interface {
	isElement()
}

// Node is a point on the earth's surface, borrowed from its PrimitiveBlock.
// Its id may be negative for elements not yet uploaded to a server.
type Node struct {
	block *pb.PrimitiveBlock
	node  *pb.Node
}

func (Node) isElement() {}

// ID returns the node id.
func (n Node) ID() int64 {
	return n.node.GetId()
}

// Tags returns an iterator over the node's resolved tag pairs.
//
// The sequence ends early at the first pair whose key or value cannot be
// resolved through the string table; use RawTags to observe every index
// pair regardless.
func (n Node) Tags() iter.Seq2[string, string] {
	return resolvedTags(n.block, n.node.GetKeys(), n.node.GetVals())
}

// RawTags returns an iterator over the node's tag index pairs.
func (n Node) RawTags() iter.Seq2[uint32, uint32] {
	return rawTags(n.node.GetKeys(), n.node.GetVals())
}

// Info returns additional metadata for this element.
func (n Node) Info() Info {
	return Info{block: n.block, info: n.node.GetInfo()}
}

// NanoLat returns the latitude in nanodegrees.
func (n Node) NanoLat() int64 {
	return n.block.GetLatOffset() + int64(n.block.GetGranularity())*n.node.GetLat()
}

// NanoLon returns the longitude in nanodegrees.
func (n Node) NanoLon() int64 {
	return n.block.GetLonOffset() + int64(n.block.GetGranularity())*n.node.GetLon()
}

// Lat returns the latitude in degrees.
func (n Node) Lat() float64 {
	return 1e-9 * float64(n.NanoLat())
}

// Lon returns the longitude in degrees.
func (n Node) Lon() float64 {
	return 1e-9 * float64(n.NanoLon())
}

// Way is an ordered list of node references, borrowed from its
// PrimitiveBlock.
type Way struct {
	block *pb.PrimitiveBlock
	way   *pb.Way
}

func (Way) isElement() {}

// ID returns the way id.
func (w Way) ID() int64 {
	return w.way.GetId()
}

// Tags returns an iterator over the way's resolved tag pairs, with the same
// early-truncation behavior as Node.Tags.
func (w Way) Tags() iter.Seq2[string, string] {
	return resolvedTags(w.block, w.way.GetKeys(), w.way.GetVals())
}

// RawTags returns an iterator over the way's tag index pairs.
func (w Way) RawTags() iter.Seq2[uint32, uint32] {
	return rawTags(w.way.GetKeys(), w.way.GetVals())
}

// Info returns additional metadata for this element.
func (w Way) Info() Info {
	return Info{block: w.block, info: w.way.GetInfo()}
}

// Refs returns an iterator over the way's node ids, reconstructed by
// running sum over the stored deltas.  The sequence must be consumed from
// the start; the values are not randomly indexable.
func (w Way) Refs() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var current int64

		for _, delta := range w.way.GetRefs() {
			current += delta

			if !yield(current) {
				return
			}
		}
	}
}

// RawRefs returns the way's delta coded node ids.
func (w Way) RawRefs() []int64 {
	return w.way.GetRefs()
}

// RelMemberType is the element type of a relation member.
type RelMemberType int

// Relation member types.
const (
	RelMemberTypeNode RelMemberType = iota
	RelMemberTypeWay
	RelMemberTypeRelation
)

func (t RelMemberType) String() string {
	switch t {
	case RelMemberTypeNode:
		return "Node"
	case RelMemberTypeWay:
		return "Way"
	case RelMemberTypeRelation:
		return "Relation"
	default:
		return "Unknown"
	}
}

// RelMember is one member of a relation: a role index, an absolute member
// id, and the member's element type.
type RelMember struct {
	block *pb.PrimitiveBlock

	RoleSid    int32
	MemberID   int64
	MemberType RelMemberType
}

// Role resolves the member's role through the string table.
func (m RelMember) Role() (string, error) {
	return strFromStringTable(m.block, int(m.RoleSid))
}

// Relation documents a relationship between elements, borrowed from its
// PrimitiveBlock.
type Relation struct {
	block *pb.PrimitiveBlock
	rel   *pb.Relation
}

func (Relation) isElement() {}

// ID returns the relation id.
func (r Relation) ID() int64 {
	return r.rel.GetId()
}

// Tags returns an iterator over the relation's resolved tag pairs, with the
// same early-truncation behavior as Node.Tags.
func (r Relation) Tags() iter.Seq2[string, string] {
	return resolvedTags(r.block, r.rel.GetKeys(), r.rel.GetVals())
}

// RawTags returns an iterator over the relation's tag index pairs.
func (r Relation) RawTags() iter.Seq2[uint32, uint32] {
	return rawTags(r.rel.GetKeys(), r.rel.GetVals())
}

// Info returns additional metadata for this element.
func (r Relation) Info() Info {
	return Info{block: r.block, info: r.rel.GetInfo()}
}

// Members returns an iterator over the relation's members.  The three
// member columns are consumed in lock step; iteration stops when the
// shortest column is exhausted.  Member ids are a running sum over the
// stored deltas, seeded at zero.
func (r Relation) Members() iter.Seq[RelMember] {
	return func(yield func(RelMember) bool) {
		roles := r.rel.GetRolesSid()
		deltas := r.rel.GetMemids()
		types := r.rel.GetTypes()

		n := min(len(roles), len(deltas), len(types))

		var memberID int64

		for i := 0; i < n; i++ {
			memberID += deltas[i]

			member := RelMember{
				block:      r.block,
				RoleSid:    roles[i],
				MemberID:   memberID,
				MemberType: decodeMemberType(types[i]),
			}

			if !yield(member) {
				return
			}
		}
	}
}

func decodeMemberType(mt pb.Relation_MemberType) RelMemberType {
	switch mt {
	case pb.Relation_WAY:
		return RelMemberTypeWay
	case pb.Relation_RELATION:
		return RelMemberTypeRelation
	default:
		return RelMemberTypeNode
	}
}

// Info is optional element metadata.  Every field is independently gated by
// a presence flag in the wire data.
type Info struct {
	block *pb.PrimitiveBlock
	info  *pb.Info
}

// Version returns the element version, if present.
func (i Info) Version() (int32, bool) {
	if i.info == nil || i.info.Version == nil {
		return 0, false
	}

	return *i.info.Version, true
}

// MilliTimestamp returns the timestamp in milliseconds since the epoch, if
// present: the stored value times the block's date granularity.
func (i Info) MilliTimestamp() (int64, bool) {
	if i.info == nil || i.info.Timestamp == nil {
		return 0, false
	}

	return *i.info.Timestamp * int64(i.block.GetDateGranularity()), true
}

// Changeset returns the changeset id, if present.
func (i Info) Changeset() (int64, bool) {
	if i.info == nil || i.info.Changeset == nil {
		return 0, false
	}

	return *i.info.Changeset, true
}

// UID returns the user id, if present.
func (i Info) UID() (int32, bool) {
	if i.info == nil || i.info.Uid == nil {
		return 0, false
	}

	return *i.info.Uid, true
}

// User returns the user name resolved through the string table.  ok is
// false when the field is absent; err is non-nil when the field is present
// but resolution fails.
func (i Info) User() (user string, ok bool, err error) {
	if i.info == nil || i.info.UserSid == nil {
		return "", false, nil
	}

	user, err = strFromStringTable(i.block, int(*i.info.UserSid))

	return user, true, err
}

// Visible returns the visibility of the element.  An absent flag means
// true: only history files record deleted elements.
func (i Info) Visible() bool {
	return i.info.GetVisible()
}

// resolvedTags consumes the key and value index columns in lock step,
// stopping at the shortest column.  The whole sequence ends at the first
// unresolvable index; callers that need every pair use rawTags.
func resolvedTags(block *pb.PrimitiveBlock, keys, vals []uint32) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		n := min(len(keys), len(vals))

		for i := 0; i < n; i++ {
			key, kerr := strFromStringTable(block, int(keys[i]))
			val, verr := strFromStringTable(block, int(vals[i]))

			if kerr != nil || verr != nil {
				return
			}

			if !yield(key, val) {
				return
			}
		}
	}
}

// rawTags consumes the key and value index columns in lock step, stopping
// at the shortest column.  It never fails; resolution is the caller's.
func rawTags(keys, vals []uint32) iter.Seq2[uint32, uint32] {
	return func(yield func(uint32, uint32) bool) {
		n := min(len(keys), len(vals))

		for i := 0; i < n; i++ {
			if !yield(keys[i], vals[i]) {
				return
			}
		}
	}
}
