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
	"time"

	"m4o.io/osmpbf/internal/pb"
	"m4o.io/osmpbf/model"
)

// HeaderBlock contains metadata about the PrimitiveBlocks that follow it.
type HeaderBlock struct {
	header *pb.HeaderBlock
}

func (*HeaderBlock) blobDecode() {}

// RequiredFeatures returns the features a parser must implement before
// decoding the following blocks.
func (h *HeaderBlock) RequiredFeatures() []string {
	return h.header.GetRequiredFeatures()
}

// OptionalFeatures returns the features a parser can choose to ignore.
func (h *HeaderBlock) OptionalFeatures() []string {
	return h.header.GetOptionalFeatures()
}

// WritingProgram returns the program that wrote the file.
func (h *HeaderBlock) WritingProgram() string {
	return h.header.GetWritingprogram()
}

// Source returns the data source.
func (h *HeaderBlock) Source() string {
	return h.header.GetSource()
}

// Header materializes the block into an owned model.Header.
func (h *HeaderBlock) Header() model.Header {
	hb := h.header

	header := model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
	}

	if bbox := hb.GetBbox(); bbox != nil {
		header.BoundingBox = &model.BoundingBox{
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		header.OsmosisReplicationTimestamp = time.Unix(*hb.OsmosisReplicationTimestamp, 0)
	}

	return header
}
