// Copyright 2026 the original author or authors.
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

package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// HeaderBlock carries file level metadata that precedes the data blocks.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   *string
	Source                           *string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        *string
}

// GetBbox returns the file bounding box, or nil if absent.
func (m *HeaderBlock) GetBbox() *HeaderBBox {
	if m == nil {
		return nil
	}

	return m.Bbox
}

// GetRequiredFeatures returns the features a parser must implement.
func (m *HeaderBlock) GetRequiredFeatures() []string {
	if m == nil {
		return nil
	}

	return m.RequiredFeatures
}

// GetOptionalFeatures returns the features a parser may ignore.
func (m *HeaderBlock) GetOptionalFeatures() []string {
	if m == nil {
		return nil
	}

	return m.OptionalFeatures
}

// GetWritingprogram returns the program that wrote the file.
func (m *HeaderBlock) GetWritingprogram() string {
	if m == nil || m.Writingprogram == nil {
		return ""
	}

	return *m.Writingprogram
}

// GetSource returns the data source.
func (m *HeaderBlock) GetSource() string {
	if m == nil || m.Source == nil {
		return ""
	}

	return *m.Source
}

// GetOsmosisReplicationTimestamp returns the replication timestamp in epoch
// seconds.
func (m *HeaderBlock) GetOsmosisReplicationTimestamp() int64 {
	if m == nil || m.OsmosisReplicationTimestamp == nil {
		return 0
	}

	return *m.OsmosisReplicationTimestamp
}

// GetOsmosisReplicationSequenceNumber returns the replication sequence number.
func (m *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	if m == nil || m.OsmosisReplicationSequenceNumber == nil {
		return 0
	}

	return *m.OsmosisReplicationSequenceNumber
}

// GetOsmosisReplicationBaseUrl returns the replication base URL.
func (m *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if m == nil || m.OsmosisReplicationBaseUrl == nil {
		return ""
	}

	return *m.OsmosisReplicationBaseUrl
}

// Unmarshal decodes a HeaderBlock from protobuf encoded bytes.
func (m *HeaderBlock) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Bbox = &HeaderBBox{}
				err = m.Bbox.Unmarshal(buf)
			}
		case 4:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.RequiredFeatures = append(m.RequiredFeatures, v)
			}
		case 5:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.OptionalFeatures = append(m.OptionalFeatures, v)
			}
		case 16:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.Writingprogram = &v
			}
		case 17:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.Source = &v
			}
		case 32:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				ts := int64(v)
				m.OsmosisReplicationTimestamp = &ts
			}
		case 33:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				seq := int64(v)
				m.OsmosisReplicationSequenceNumber = &seq
			}
		case 34:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.OsmosisReplicationBaseUrl = &v
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// HeaderBBox is the file bounding box in nanodegrees.
type HeaderBBox struct {
	Left   *int64
	Right  *int64
	Top    *int64
	Bottom *int64
}

// GetLeft returns the left edge in nanodegrees.
func (m *HeaderBBox) GetLeft() int64 {
	if m == nil || m.Left == nil {
		return 0
	}

	return *m.Left
}

// GetRight returns the right edge in nanodegrees.
func (m *HeaderBBox) GetRight() int64 {
	if m == nil || m.Right == nil {
		return 0
	}

	return *m.Right
}

// GetTop returns the top edge in nanodegrees.
func (m *HeaderBBox) GetTop() int64 {
	if m == nil || m.Top == nil {
		return 0
	}

	return *m.Top
}

// GetBottom returns the bottom edge in nanodegrees.
func (m *HeaderBBox) GetBottom() int64 {
	if m == nil || m.Bottom == nil {
		return 0
	}

	return *m.Bottom
}

// Unmarshal decodes a HeaderBBox from protobuf encoded bytes.  The corners
// are sint64 values.
func (m *HeaderBBox) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		set := func(dst **int64) {
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				d := protowire.DecodeZigZag(v)
				*dst = &d
			}
		}

		switch num {
		case 1:
			set(&m.Left)
		case 2:
			set(&m.Right)
		case 3:
			set(&m.Top)
		case 4:
			set(&m.Bottom)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// StringTable is the per block table of raw byte strings.  Index 0 is used
// as a delimiter and is always the empty string.
type StringTable struct {
	S [][]byte
}

// GetS returns the table entries.
func (m *StringTable) GetS() [][]byte {
	if m == nil {
		return nil
	}

	return m.S
}

// Unmarshal decodes a StringTable from protobuf encoded bytes.  Entries
// alias data.
func (m *StringTable) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(data, typ); err == nil {
				m.S = append(m.S, v)
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// PrimitiveBlock is one unit of map data: a string table, coordinate and
// date scaling parameters, and a sequence of primitive groups.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	DateGranularity *int32
	LatOffset       *int64
	LonOffset       *int64
}

// Proto2 field defaults from osmformat.proto.
const (
	DefaultGranularity     = 100
	DefaultDateGranularity = 1000
)

// GetStringtable returns the block string table.
func (m *PrimitiveBlock) GetStringtable() *StringTable {
	if m == nil {
		return nil
	}

	return m.Stringtable
}

// GetPrimitivegroup returns the primitive groups in stored order.
func (m *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup {
	if m == nil {
		return nil
	}

	return m.Primitivegroup
}

// GetGranularity returns the coordinate granularity in nanodegrees per unit.
func (m *PrimitiveBlock) GetGranularity() int32 {
	if m == nil || m.Granularity == nil {
		return DefaultGranularity
	}

	return *m.Granularity
}

// GetDateGranularity returns the date granularity in milliseconds per unit.
func (m *PrimitiveBlock) GetDateGranularity() int32 {
	if m == nil || m.DateGranularity == nil {
		return DefaultDateGranularity
	}

	return *m.DateGranularity
}

// GetLatOffset returns the latitude offset in nanodegrees.
func (m *PrimitiveBlock) GetLatOffset() int64 {
	if m == nil || m.LatOffset == nil {
		return 0
	}

	return *m.LatOffset
}

// GetLonOffset returns the longitude offset in nanodegrees.
func (m *PrimitiveBlock) GetLonOffset() int64 {
	if m == nil || m.LonOffset == nil {
		return 0
	}

	return *m.LonOffset
}

// Unmarshal decodes a PrimitiveBlock from protobuf encoded bytes.
func (m *PrimitiveBlock) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Stringtable = &StringTable{}
				err = m.Stringtable.Unmarshal(buf)
			}
		case 2:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				group := &PrimitiveGroup{}
				if err = group.Unmarshal(buf); err == nil {
					m.Primitivegroup = append(m.Primitivegroup, group)
				}
			}
		case 17:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				g := int32(v)
				m.Granularity = &g
			}
		case 18:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				g := int32(v)
				m.DateGranularity = &g
			}
		case 19:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				off := int64(v)
				m.LatOffset = &off
			}
		case 20:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				off := int64(v)
				m.LonOffset = &off
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// PrimitiveGroup is a batch of elements.  Writers normally populate exactly
// one of the sub sequences but readers must handle all of them.
type PrimitiveGroup struct {
	Nodes      []*Node
	Dense      *DenseNodes
	Ways       []*Way
	Relations  []*Relation
	Changesets []*ChangeSet
}

// GetNodes returns the plain nodes.
func (m *PrimitiveGroup) GetNodes() []*Node {
	if m == nil {
		return nil
	}

	return m.Nodes
}

// GetDense returns the dense node columns, or nil if absent.
func (m *PrimitiveGroup) GetDense() *DenseNodes {
	if m == nil {
		return nil
	}

	return m.Dense
}

// GetWays returns the ways.
func (m *PrimitiveGroup) GetWays() []*Way {
	if m == nil {
		return nil
	}

	return m.Ways
}

// GetRelations returns the relations.
func (m *PrimitiveGroup) GetRelations() []*Relation {
	if m == nil {
		return nil
	}

	return m.Relations
}

// GetChangesets returns the changesets.
func (m *PrimitiveGroup) GetChangesets() []*ChangeSet {
	if m == nil {
		return nil
	}

	return m.Changesets
}

// Unmarshal decodes a PrimitiveGroup from protobuf encoded bytes.
func (m *PrimitiveGroup) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var (
			err error
			buf []byte
		)

		switch num {
		case 1:
			if buf, n, err = consumeBytes(data, typ); err == nil {
				node := &Node{}
				if err = node.Unmarshal(buf); err == nil {
					m.Nodes = append(m.Nodes, node)
				}
			}
		case 2:
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Dense = &DenseNodes{}
				err = m.Dense.Unmarshal(buf)
			}
		case 3:
			if buf, n, err = consumeBytes(data, typ); err == nil {
				way := &Way{}
				if err = way.Unmarshal(buf); err == nil {
					m.Ways = append(m.Ways, way)
				}
			}
		case 4:
			if buf, n, err = consumeBytes(data, typ); err == nil {
				rel := &Relation{}
				if err = rel.Unmarshal(buf); err == nil {
					m.Relations = append(m.Relations, rel)
				}
			}
		case 5:
			if buf, n, err = consumeBytes(data, typ); err == nil {
				cs := &ChangeSet{}
				if err = cs.Unmarshal(buf); err == nil {
					m.Changesets = append(m.Changesets, cs)
				}
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// ChangeSet is a deprecated OSMPBF message kept for wire compatibility.
type ChangeSet struct {
	Id *int64
}

// GetId returns the changeset id.
func (m *ChangeSet) GetId() int64 {
	if m == nil || m.Id == nil {
		return 0
	}

	return *m.Id
}

// Unmarshal decodes a ChangeSet from protobuf encoded bytes.
func (m *ChangeSet) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				id := int64(v)
				m.Id = &id
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Info is optional element metadata.  All fields are presence gated.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	Uid       *int32
	UserSid   *uint32
	Visible   *bool
}

// GetVersion returns the element version, or -1 if unset (proto default).
func (m *Info) GetVersion() int32 {
	if m == nil || m.Version == nil {
		return -1
	}

	return *m.Version
}

// GetTimestamp returns the timestamp in date granularity units.
func (m *Info) GetTimestamp() int64 {
	if m == nil || m.Timestamp == nil {
		return 0
	}

	return *m.Timestamp
}

// GetChangeset returns the changeset id.
func (m *Info) GetChangeset() int64 {
	if m == nil || m.Changeset == nil {
		return 0
	}

	return *m.Changeset
}

// GetUid returns the user id.
func (m *Info) GetUid() int32 {
	if m == nil || m.Uid == nil {
		return 0
	}

	return *m.Uid
}

// GetUserSid returns the string table index of the user name.
func (m *Info) GetUserSid() uint32 {
	if m == nil || m.UserSid == nil {
		return 0
	}

	return *m.UserSid
}

// GetVisible reports whether the element is visible.  Absence means true;
// false only appears in history files.
func (m *Info) GetVisible() bool {
	if m == nil || m.Visible == nil {
		return true
	}

	return *m.Visible
}

// Unmarshal decodes an Info from protobuf encoded bytes.
func (m *Info) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var (
			err error
			v   uint64
		)

		switch num {
		case 1:
			if v, n, err = consumeVarint(data, typ); err == nil {
				ver := int32(v)
				m.Version = &ver
			}
		case 2:
			if v, n, err = consumeVarint(data, typ); err == nil {
				ts := int64(v)
				m.Timestamp = &ts
			}
		case 3:
			if v, n, err = consumeVarint(data, typ); err == nil {
				cs := int64(v)
				m.Changeset = &cs
			}
		case 4:
			if v, n, err = consumeVarint(data, typ); err == nil {
				uid := int32(v)
				m.Uid = &uid
			}
		case 5:
			if v, n, err = consumeVarint(data, typ); err == nil {
				sid := uint32(v)
				m.UserSid = &sid
			}
		case 6:
			if v, n, err = consumeVarint(data, typ); err == nil {
				vis := v != 0
				m.Visible = &vis
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Node is a plain node with zigzag coded id and coordinates.
type Node struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  *int64
	Lon  *int64
}

// GetId returns the node id.
func (m *Node) GetId() int64 {
	if m == nil || m.Id == nil {
		return 0
	}

	return *m.Id
}

// GetKeys returns the tag key indices.
func (m *Node) GetKeys() []uint32 {
	if m == nil {
		return nil
	}

	return m.Keys
}

// GetVals returns the tag value indices.
func (m *Node) GetVals() []uint32 {
	if m == nil {
		return nil
	}

	return m.Vals
}

// GetInfo returns the optional metadata, or nil if absent.
func (m *Node) GetInfo() *Info {
	if m == nil {
		return nil
	}

	return m.Info
}

// GetLat returns the latitude in granularity units.
func (m *Node) GetLat() int64 {
	if m == nil || m.Lat == nil {
		return 0
	}

	return *m.Lat
}

// GetLon returns the longitude in granularity units.
func (m *Node) GetLon() int64 {
	if m == nil || m.Lon == nil {
		return 0
	}

	return *m.Lon
}

// Unmarshal decodes a Node from protobuf encoded bytes.
func (m *Node) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				id := protowire.DecodeZigZag(v)
				m.Id = &id
			}
		case 2:
			m.Keys, n, err = appendUint32s(m.Keys, data, typ)
		case 3:
			m.Vals, n, err = appendUint32s(m.Vals, data, typ)
		case 4:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(buf)
			}
		case 8:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				lat := protowire.DecodeZigZag(v)
				m.Lat = &lat
			}
		case 9:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				lon := protowire.DecodeZigZag(v)
				m.Lon = &lon
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// DenseNodes is the columnar bulk encoding of nodes: delta coded id, lat
// and lon columns plus a flattened, zero terminated keys_vals index array.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

// GetId returns the delta coded id column.
func (m *DenseNodes) GetId() []int64 {
	if m == nil {
		return nil
	}

	return m.Id
}

// GetDenseinfo returns the optional metadata columns, or nil if absent.
func (m *DenseNodes) GetDenseinfo() *DenseInfo {
	if m == nil {
		return nil
	}

	return m.Denseinfo
}

// GetLat returns the delta coded latitude column.
func (m *DenseNodes) GetLat() []int64 {
	if m == nil {
		return nil
	}

	return m.Lat
}

// GetLon returns the delta coded longitude column.
func (m *DenseNodes) GetLon() []int64 {
	if m == nil {
		return nil
	}

	return m.Lon
}

// GetKeysVals returns the flattened tag index array.
func (m *DenseNodes) GetKeysVals() []int32 {
	if m == nil {
		return nil
	}

	return m.KeysVals
}

// Unmarshal decodes a DenseNodes from protobuf encoded bytes.
func (m *DenseNodes) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			m.Id, n, err = appendSint64s(m.Id, data, typ)
		case 5:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Denseinfo = &DenseInfo{}
				err = m.Denseinfo.Unmarshal(buf)
			}
		case 8:
			m.Lat, n, err = appendSint64s(m.Lat, data, typ)
		case 9:
			m.Lon, n, err = appendSint64s(m.Lon, data, typ)
		case 10:
			m.KeysVals, n, err = appendInt32s(m.KeysVals, data, typ)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// DenseInfo holds the metadata columns for dense nodes.  The timestamp,
// changeset, uid and user_sid columns are delta coded; version and visible
// are not.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

// GetVersion returns the version column.
func (m *DenseInfo) GetVersion() []int32 {
	if m == nil {
		return nil
	}

	return m.Version
}

// GetTimestamp returns the delta coded timestamp column.
func (m *DenseInfo) GetTimestamp() []int64 {
	if m == nil {
		return nil
	}

	return m.Timestamp
}

// GetChangeset returns the delta coded changeset column.
func (m *DenseInfo) GetChangeset() []int64 {
	if m == nil {
		return nil
	}

	return m.Changeset
}

// GetUid returns the delta coded uid column.
func (m *DenseInfo) GetUid() []int32 {
	if m == nil {
		return nil
	}

	return m.Uid
}

// GetUserSid returns the delta coded user string index column.
func (m *DenseInfo) GetUserSid() []int32 {
	if m == nil {
		return nil
	}

	return m.UserSid
}

// GetVisible returns the visible column.
func (m *DenseInfo) GetVisible() []bool {
	if m == nil {
		return nil
	}

	return m.Visible
}

// Unmarshal decodes a DenseInfo from protobuf encoded bytes.
func (m *DenseInfo) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			m.Version, n, err = appendInt32s(m.Version, data, typ)
		case 2:
			m.Timestamp, n, err = appendSint64s(m.Timestamp, data, typ)
		case 3:
			m.Changeset, n, err = appendSint64s(m.Changeset, data, typ)
		case 4:
			m.Uid, n, err = appendSint32s(m.Uid, data, typ)
		case 5:
			m.UserSid, n, err = appendSint32s(m.UserSid, data, typ)
		case 6:
			m.Visible, n, err = appendBools(m.Visible, data, typ)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Way is an ordered list of node references stored as deltas.
type Way struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

// GetId returns the way id.
func (m *Way) GetId() int64 {
	if m == nil || m.Id == nil {
		return 0
	}

	return *m.Id
}

// GetKeys returns the tag key indices.
func (m *Way) GetKeys() []uint32 {
	if m == nil {
		return nil
	}

	return m.Keys
}

// GetVals returns the tag value indices.
func (m *Way) GetVals() []uint32 {
	if m == nil {
		return nil
	}

	return m.Vals
}

// GetInfo returns the optional metadata, or nil if absent.
func (m *Way) GetInfo() *Info {
	if m == nil {
		return nil
	}

	return m.Info
}

// GetRefs returns the delta coded node references.
func (m *Way) GetRefs() []int64 {
	if m == nil {
		return nil
	}

	return m.Refs
}

// Unmarshal decodes a Way from protobuf encoded bytes.
func (m *Way) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				id := int64(v)
				m.Id = &id
			}
		case 2:
			m.Keys, n, err = appendUint32s(m.Keys, data, typ)
		case 3:
			m.Vals, n, err = appendUint32s(m.Vals, data, typ)
		case 4:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(buf)
			}
		case 8:
			m.Refs, n, err = appendSint64s(m.Refs, data, typ)
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Relation_MemberType discriminates the element type of a relation member.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY      Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation documents a relationship between elements via three parallel
// member columns: role index, delta coded member id, and member type.
type Relation struct {
	Id       *int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

// GetId returns the relation id.
func (m *Relation) GetId() int64 {
	if m == nil || m.Id == nil {
		return 0
	}

	return *m.Id
}

// GetKeys returns the tag key indices.
func (m *Relation) GetKeys() []uint32 {
	if m == nil {
		return nil
	}

	return m.Keys
}

// GetVals returns the tag value indices.
func (m *Relation) GetVals() []uint32 {
	if m == nil {
		return nil
	}

	return m.Vals
}

// GetInfo returns the optional metadata, or nil if absent.
func (m *Relation) GetInfo() *Info {
	if m == nil {
		return nil
	}

	return m.Info
}

// GetRolesSid returns the member role string indices.
func (m *Relation) GetRolesSid() []int32 {
	if m == nil {
		return nil
	}

	return m.RolesSid
}

// GetMemids returns the delta coded member ids.
func (m *Relation) GetMemids() []int64 {
	if m == nil {
		return nil
	}

	return m.Memids
}

// GetTypes returns the member types.
func (m *Relation) GetTypes() []Relation_MemberType {
	if m == nil {
		return nil
	}

	return m.Types
}

// Unmarshal decodes a Relation from protobuf encoded bytes.
func (m *Relation) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				id := int64(v)
				m.Id = &id
			}
		case 2:
			m.Keys, n, err = appendUint32s(m.Keys, data, typ)
		case 3:
			m.Vals, n, err = appendUint32s(m.Vals, data, typ)
		case 4:
			var buf []byte
			if buf, n, err = consumeBytes(data, typ); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(buf)
			}
		case 8:
			m.RolesSid, n, err = appendInt32s(m.RolesSid, data, typ)
		case 9:
			m.Memids, n, err = appendSint64s(m.Memids, data, typ)
		case 10:
			var raw []int32
			if raw, n, err = appendInt32s(nil, data, typ); err == nil {
				for _, v := range raw {
					m.Types = append(m.Types, Relation_MemberType(v))
				}
			}
		default:
			n, err = skipField(num, typ, data)
		}

		if err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}
