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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmpbf/model"
)

func TestHeaderBlockAccessors(t *testing.T) {
	blob := readOneBlob(t, sampleHeaderFrame(t))

	hb, err := blob.ToHeaderBlock()
	require.NoError(t, err)

	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, hb.RequiredFeatures())
	assert.Empty(t, hb.OptionalFeatures())
	assert.Equal(t, "osmpbf-fixture", hb.WritingProgram())
	assert.Equal(t, "test", hb.Source())
}

func TestHeaderBlockToModel(t *testing.T) {
	blob := readOneBlob(t, sampleHeaderFrame(t))

	hb, err := blob.ToHeaderBlock()
	require.NoError(t, err)

	header := hb.Header()

	require.NotNil(t, header.BoundingBox)

	bbox := model.BoundingBox{Left: -0.511482, Right: 0.335437, Top: 51.69344, Bottom: 51.28554}
	assert.True(t, header.BoundingBox.EqualWithin(&bbox, model.E6))

	assert.Equal(t, []string{"OsmSchema-V0.6", "DenseNodes"}, header.RequiredFeatures)
	assert.Equal(t, "osmpbf-fixture", header.WritingProgram)
	assert.Equal(t, "test", header.Source)
	assert.Equal(t, time.Unix(1395698102, 0), header.OsmosisReplicationTimestamp)
	assert.Equal(t, int64(4221), header.OsmosisReplicationSequenceNumber)
	assert.Equal(t, "http://example.com/replication", header.OsmosisReplicationBaseURL)
}

func TestHeaderBlockWithoutBoundingBox(t *testing.T) {
	content := headerBlockMsg(stringField(4, "OsmSchema-V0.6"))
	blob := readOneBlob(t, frameBlob(t, "OSMHeader", "raw", content))

	hb, err := blob.ToHeaderBlock()
	require.NoError(t, err)

	header := hb.Header()
	assert.Nil(t, header.BoundingBox)
	assert.True(t, header.OsmosisReplicationTimestamp.IsZero())
}
