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
	"unicode/utf8"

	"m4o.io/osmpbf/internal/pb"
)

// PrimitiveBlock is one decoded unit of map data.  It owns every byte its
// element views reference; the views borrow from the block and must not be
// used after the block is released.
type PrimitiveBlock struct {
	block *pb.PrimitiveBlock
}

func (*PrimitiveBlock) blobDecode() {}

// Granularity returns the coordinate granularity in nanodegrees per unit.
func (b *PrimitiveBlock) Granularity() int32 {
	return b.block.GetGranularity()
}

// LatOffset returns the latitude offset in nanodegrees.
func (b *PrimitiveBlock) LatOffset() int64 {
	return b.block.GetLatOffset()
}

// LonOffset returns the longitude offset in nanodegrees.
func (b *PrimitiveBlock) LonOffset() int64 {
	return b.block.GetLonOffset()
}

// DateGranularity returns the date granularity in milliseconds per unit.
func (b *PrimitiveBlock) DateGranularity() int32 {
	return b.block.GetDateGranularity()
}

// RawStringTable returns the block's string table.  Elements do not store
// strings themselves; they store indices into this table.  By convention
// the entries are UTF-8 encoded but it is not safe to assume that.
func (b *PrimitiveBlock) RawStringTable() [][]byte {
	return b.block.GetStringtable().GetS()
}

// Groups returns an iterator over the primitive groups in stored order.
func (b *PrimitiveBlock) Groups() iter.Seq[*PrimitiveGroup] {
	return func(yield func(*PrimitiveGroup) bool) {
		for _, group := range b.block.GetPrimitivegroup() {
			if !yield(&PrimitiveGroup{block: b.block, group: group}) {
				return
			}
		}
	}
}

// Elements returns an iterator over all elements in the block: groups in
// stored order and, within a group, dense nodes first, then nodes, ways
// and relations.
func (b *PrimitiveBlock) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		it := newBlockElementsIter(b.block)

		for {
			el, ok := it.next()
			if !ok {
				return
			}

			if !yield(el) {
				return
			}
		}
	}
}

// ForEachElement calls fn on each element, in the same order Elements
// yields them.
func (b *PrimitiveBlock) ForEachElement(fn func(Element)) {
	for el := range b.Elements() {
		fn(el)
	}
}

// PrimitiveGroup is a batch of elements within a block.  Writers normally
// populate a single shape per group, but consumers must not rely on that.
type PrimitiveGroup struct {
	block *pb.PrimitiveBlock
	group *pb.PrimitiveGroup
}

// Nodes returns an iterator over the plain nodes in this group.
func (g *PrimitiveGroup) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, node := range g.group.GetNodes() {
			if !yield(Node{block: g.block, node: node}) {
				return
			}
		}
	}
}

// DenseNodes returns an iterator over the dense nodes in this group.
func (g *PrimitiveGroup) DenseNodes() iter.Seq[DenseNode] {
	return func(yield func(DenseNode) bool) {
		it := newDenseNodeIter(g.block, g.group.GetDense())

		for {
			node, ok := it.next()
			if !ok {
				return
			}

			if !yield(node) {
				return
			}
		}
	}
}

// Ways returns an iterator over the ways in this group.
func (g *PrimitiveGroup) Ways() iter.Seq[Way] {
	return func(yield func(Way) bool) {
		for _, way := range g.group.GetWays() {
			if !yield(Way{block: g.block, way: way}) {
				return
			}
		}
	}
}

// Relations returns an iterator over the relations in this group.
func (g *PrimitiveGroup) Relations() iter.Seq[Relation] {
	return func(yield func(Relation) bool) {
		for _, rel := range g.group.GetRelations() {
			if !yield(Relation{block: g.block, rel: rel}) {
				return
			}
		}
	}
}

// elementsIterState enumerates the cascade the flattened element iterator
// walks within each group.
type elementsIterState int

const (
	stateAdvanceGroup elementsIterState = iota
	stateDenseNode
	stateNode
	stateWay
	stateRelation
)

// blockElementsIter is an explicit state machine that flattens a block's
// groups into one order-preserving element sequence.
type blockElementsIter struct {
	block  *pb.PrimitiveBlock
	state  elementsIterState
	groups []*pb.PrimitiveGroup
	gi     int

	dense *denseNodeIter
	nodes []*pb.Node
	ni    int
	ways  []*pb.Way
	wi    int
	rels  []*pb.Relation
	ri    int
}

func newBlockElementsIter(block *pb.PrimitiveBlock) *blockElementsIter {
	return &blockElementsIter{
		block:  block,
		state:  stateAdvanceGroup,
		groups: block.GetPrimitivegroup(),
		dense:  newDenseNodeIter(block, nil),
	}
}

// step advances the machine by one transition.  produced reports whether el
// holds an element; done reports that no further elements remain.
func (it *blockElementsIter) step() (el Element, produced, done bool) {
	switch it.state {
	case stateAdvanceGroup:
		if it.gi >= len(it.groups) {
			return nil, false, true
		}

		group := it.groups[it.gi]
		it.gi++

		it.state = stateDenseNode
		it.dense = newDenseNodeIter(it.block, group.GetDense())
		it.nodes, it.ni = group.GetNodes(), 0
		it.ways, it.wi = group.GetWays(), 0
		it.rels, it.ri = group.GetRelations(), 0

		return nil, false, false

	case stateDenseNode:
		if node, ok := it.dense.next(); ok {
			return node, true, false
		}

		it.state = stateNode

		return nil, false, false

	case stateNode:
		if it.ni < len(it.nodes) {
			node := Node{block: it.block, node: it.nodes[it.ni]}
			it.ni++

			return node, true, false
		}

		it.state = stateWay

		return nil, false, false

	case stateWay:
		if it.wi < len(it.ways) {
			way := Way{block: it.block, way: it.ways[it.wi]}
			it.wi++

			return way, true, false
		}

		it.state = stateRelation

		return nil, false, false

	default: // stateRelation
		if it.ri < len(it.rels) {
			rel := Relation{block: it.block, rel: it.rels[it.ri]}
			it.ri++

			return rel, true, false
		}

		it.state = stateAdvanceGroup

		return nil, false, false
	}
}

func (it *blockElementsIter) next() (Element, bool) {
	for {
		el, produced, done := it.step()
		if done {
			return nil, false
		}

		if produced {
			return el, true
		}
	}
}

// strFromStringTable resolves a string table index to a UTF-8 string.  A
// failure is local to the index; it does not poison later lookups.
func strFromStringTable(block *pb.PrimitiveBlock, index int) (string, error) {
	table := block.GetStringtable().GetS()
	if index < 0 || index >= len(table) {
		return "", &StringTableIndexError{Index: index}
	}

	entry := table[index]
	if !utf8.Valid(entry) {
		return "", &StringTableUTF8Error{Index: index}
	}

	return string(entry), nil
}
