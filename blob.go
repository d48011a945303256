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

// Package osmpbf reads OpenStreetMap PBF files as a stream of blobs and
// decodes them into blocks of nodes, ways and relations without loading the
// whole file into memory.
//
// A BlobReader walks the outer length-prefixed framing and yields undecoded
// Blobs.  Blob.Decode inflates and parses one blob on demand, producing a
// HeaderBlock or a PrimitiveBlock whose element views borrow from the
// decoded block.  Decode is pure per blob, so distinct blobs may be decoded
// concurrently; the Decoder type does exactly that over a worker pool.
package osmpbf

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/osmpbf/internal/pb"
)

const (
	// MaxBlobHeaderSize is the maximum allowed BlobHeader size in bytes.
	MaxBlobHeaderSize = 64 * 1024

	// MaxBlobMessageSize is the maximum allowed uncompressed blob content
	// size in bytes.  The bound is enforced on actual decompressed output,
	// never on the writer-declared raw_size, which is untrusted.
	MaxBlobMessageSize = 32 * 1024 * 1024
)

// ByteOffset is the offset of a blob in bytes from stream start.
type ByteOffset uint64

// BlobType is the type tag of a blob.  Parsers should ignore blobs with
// tags they do not expect.
type BlobType string

// Blob type tags with well-known content.
const (
	BlobTypeOSMHeader BlobType = "OSMHeader"
	BlobTypeOSMData   BlobType = "OSMData"
)

// BlobDecode is the decoded content of a blob: a *HeaderBlock, a
// *PrimitiveBlock, or Unknown.
type BlobDecode interface {
	blobDecode()
}

// Unknown is the type tag of a blob whose content the parser does not
// understand.  It is not an error; callers are expected to skip it.
type Unknown string

func (Unknown) blobDecode() {}

// Blob is one framed record of a PBF file.  It retains its undecoded bytes,
// so Decode is repeatable and independent blobs can be decoded in parallel.
type Blob struct {
	header *pb.BlobHeader
	blob   *pb.Blob
	offset *ByteOffset
}

// Type returns the type tag of the blob without decoding its content.
func (b *Blob) Type() BlobType {
	return BlobType(b.header.GetType())
}

// DataSize returns the framed size in bytes of the blob's undecoded
// content.
func (b *Blob) DataSize() int32 {
	return b.header.GetDatasize()
}

// Compression returns the name of the compression scheme the blob content
// is stored with.
func (b *Blob) Compression() string {
	switch {
	case b.blob.Raw != nil:
		return "raw"
	case b.blob.ZlibData != nil:
		return "zlib"
	case b.blob.LzmaData != nil:
		return "lzma"
	case b.blob.Lz4Data != nil:
		return "lz4"
	case b.blob.ZstdData != nil:
		return "zstd"
	default:
		return "empty"
	}
}

// Offset returns the byte offset of the blob from the start of its source
// stream.  ok is false if the source does not track offsets.
func (b *Blob) Offset() (offset ByteOffset, ok bool) {
	if b.offset == nil {
		return 0, false
	}

	return *b.offset, true
}

// Decode decompresses and parses the blob content.  The result is a
// *HeaderBlock for "OSMHeader" blobs, a *PrimitiveBlock for "OSMData"
// blobs, and Unknown for anything else.
func (b *Blob) Decode() (BlobDecode, error) {
	switch b.Type() {
	case BlobTypeOSMHeader:
		return b.ToHeaderBlock()
	case BlobTypeOSMData:
		return b.ToPrimitiveBlock()
	default:
		return Unknown(b.header.GetType()), nil
	}
}

// ToHeaderBlock decodes the blob content to a HeaderBlock.
func (b *Blob) ToHeaderBlock() (*HeaderBlock, error) {
	hb := &pb.HeaderBlock{}
	if err := decodeBlob(b.blob, hb); err != nil {
		return nil, err
	}

	return &HeaderBlock{header: hb}, nil
}

// ToPrimitiveBlock decodes the blob content to a PrimitiveBlock.  This may
// involve an expensive decompression step.
func (b *Blob) ToPrimitiveBlock() (*PrimitiveBlock, error) {
	blk := &pb.PrimitiveBlock{}
	if err := decodeBlob(b.blob, blk); err != nil {
		return nil, err
	}

	return &PrimitiveBlock{block: blk}, nil
}

type wireMessage interface {
	Unmarshal(data []byte) error
}

// decodeBlob unpacks the blob content and parses it into msg.  Compressed
// payloads are read through a hard cap of MaxBlobMessageSize decompressed
// bytes; content that would exceed the cap fails to parse at the cap
// boundary instead of growing without bound.
func decodeBlob(blob *pb.Blob, msg wireMessage) error {
	switch {
	case blob.Raw != nil:
		if size := uint64(len(blob.GetRaw())); size >= MaxBlobMessageSize {
			return &MessageTooBigError{Size: size}
		}

		if err := msg.Unmarshal(blob.GetRaw()); err != nil {
			return &ProtobufError{Location: LocationRawData, Err: err}
		}

		return nil

	case blob.ZlibData != nil:
		return decodePacked(msg, LocationZlibData, func() (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(blob.GetZlibData()))
		})

	case blob.LzmaData != nil:
		return decodePacked(msg, LocationLzmaData, func() (io.Reader, error) {
			return lzma.NewReader(bytes.NewReader(blob.GetLzmaData()))
		})

	case blob.Lz4Data != nil:
		return decodePacked(msg, LocationLz4Data, func() (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(blob.GetLz4Data())), nil
		})

	case blob.ZstdData != nil:
		dec, err := zstd.NewReader(bytes.NewReader(blob.GetZstdData()),
			zstd.WithDecoderConcurrency(1))
		if err != nil {
			return &ProtobufError{Location: LocationZstdData, Err: err}
		}
		defer dec.Close()

		return decodePacked(msg, LocationZstdData, func() (io.Reader, error) {
			return dec, nil
		})

	default:
		return ErrEmptyBlob
	}
}

// decodePacked inflates a compressed payload, bounded to MaxBlobMessageSize
// output bytes, and parses the result into msg.
func decodePacked(msg wireMessage, location string, factory func() (io.Reader, error)) error {
	rdr, err := factory()
	if err != nil {
		return &ProtobufError{Location: location, Err: err}
	}

	buf, err := io.ReadAll(io.LimitReader(rdr, MaxBlobMessageSize))
	if err != nil {
		return &ProtobufError{Location: location, Err: err}
	}

	if err := msg.Unmarshal(buf); err != nil {
		return &ProtobufError{Location: location, Err: err}
	}

	return nil
}
