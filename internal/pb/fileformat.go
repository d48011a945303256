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

// BlobHeader is the message that precedes every Blob and declares its type
// tag and payload size.
type BlobHeader struct {
	Type      *string
	Indexdata []byte
	Datasize  *int32
}

// GetType returns the blob type tag.
func (m *BlobHeader) GetType() string {
	if m == nil || m.Type == nil {
		return ""
	}

	return *m.Type
}

// GetIndexdata returns the opaque index data.
func (m *BlobHeader) GetIndexdata() []byte {
	if m == nil {
		return nil
	}

	return m.Indexdata
}

// GetDatasize returns the serialized size of the following Blob message.
func (m *BlobHeader) GetDatasize() int32 {
	if m == nil || m.Datasize == nil {
		return 0
	}

	return *m.Datasize
}

// Unmarshal decodes a BlobHeader from protobuf encoded bytes.
func (m *BlobHeader) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			var v string
			if v, n, err = consumeString(data, typ); err == nil {
				m.Type = &v
			}
		case 2:
			m.Indexdata, n, err = consumeBytes(data, typ)
		case 3:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				size := int32(v)
				m.Datasize = &size
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

// Blob is the envelope for one block of map data.  Exactly one of the data
// fields is expected to be present; a nil slice means the field was absent.
type Blob struct {
	Raw      []byte
	RawSize  *int32
	ZlibData []byte
	LzmaData []byte
	Lz4Data  []byte
	ZstdData []byte
}

// GetRaw returns the uncompressed payload bytes.
func (m *Blob) GetRaw() []byte {
	if m == nil {
		return nil
	}

	return m.Raw
}

// GetRawSize returns the advisory uncompressed size declared by the writer.
func (m *Blob) GetRawSize() int32 {
	if m == nil || m.RawSize == nil {
		return 0
	}

	return *m.RawSize
}

// GetZlibData returns the zlib compressed payload bytes.
func (m *Blob) GetZlibData() []byte {
	if m == nil {
		return nil
	}

	return m.ZlibData
}

// GetLzmaData returns the lzma compressed payload bytes.
func (m *Blob) GetLzmaData() []byte {
	if m == nil {
		return nil
	}

	return m.LzmaData
}

// GetLz4Data returns the lz4 compressed payload bytes.
func (m *Blob) GetLz4Data() []byte {
	if m == nil {
		return nil
	}

	return m.Lz4Data
}

// GetZstdData returns the zstd compressed payload bytes.
func (m *Blob) GetZstdData() []byte {
	if m == nil {
		return nil
	}

	return m.ZstdData
}

// Unmarshal decodes a Blob from protobuf encoded bytes.  Payload fields
// alias data.
func (m *Blob) Unmarshal(data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}

		data = data[n:]

		var err error

		switch num {
		case 1:
			m.Raw, n, err = consumeBytes(data, typ)
		case 2:
			var v uint64
			if v, n, err = consumeVarint(data, typ); err == nil {
				size := int32(v)
				m.RawSize = &size
			}
		case 3:
			m.ZlibData, n, err = consumeBytes(data, typ)
		case 4:
			m.LzmaData, n, err = consumeBytes(data, typ)
		case 6:
			m.Lz4Data, n, err = consumeBytes(data, typ)
		case 7:
			m.ZstdData, n, err = consumeBytes(data, typ)
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
