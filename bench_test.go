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
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
)

const (
	benchNodesPerBlock = 8000
	benchBlocks        = 16
)

// benchStream builds a synthetic file of densely packed nodes, the shape
// that dominates real planet extracts.
func benchStream(b *testing.B) []byte {
	b.Helper()

	ids := make([]int64, benchNodesPerBlock)
	lats := make([]int64, benchNodesPerBlock)
	lons := make([]int64, benchNodesPerBlock)

	ids[0], lats[0], lons[0] = 1, 515000000, -5000000
	for i := 1; i < benchNodesPerBlock; i++ {
		ids[i], lats[i], lons[i] = 1, 10, 10
	}

	content := concat(
		stringTableField(""),
		groupField(denseMsg(
			packedSint64s(1, ids...),
			packedSint64s(8, lats...),
			packedSint64s(9, lons...),
		)),
	)

	stream := sampleHeaderFrame(b)
	block := frameBlob(b, "OSMData", "zlib", content)

	for range benchBlocks {
		stream = append(stream, block...)
	}

	return stream
}

func BenchmarkDecoder(b *testing.B) {
	stream := benchStream(b)

	for _, ncpu := range []uint16{1, 2, 4} {
		b.Run(fmt.Sprintf("ncpu=%d", ncpu), func(b *testing.B) {
			b.SetBytes(int64(len(stream)))

			for n := 0; n < b.N; n++ {
				decoder, err := NewDecoder(context.Background(), bytes.NewReader(stream),
					WithNCpus(ncpu))
				if err != nil {
					b.Fatal(err)
				}

				for {
					if _, err := decoder.Decode(); err != nil {
						if !errors.Is(err, io.EOF) {
							b.Fatal(err)
						}

						break
					}
				}

				decoder.Close()
			}
		})
	}
}

func BenchmarkBlobReader(b *testing.B) {
	stream := benchStream(b)

	b.SetBytes(int64(len(stream)))

	for n := 0; n < b.N; n++ {
		rdr := NewBlobReader(bytes.NewReader(stream))

		for {
			if _, err := rdr.Next(); err != nil {
				if !errors.Is(err, io.EOF) {
					b.Fatal(err)
				}

				break
			}
		}
	}
}
