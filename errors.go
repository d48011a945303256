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

package osmpbf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeaderSize is returned when the 4-byte blob header length
	// field could not be read.  A truncated 1-3 byte read counts; a clean
	// end of stream does not.
	ErrInvalidHeaderSize = errors.New("blob header size could not be decoded")

	// ErrEmptyBlob is returned when a blob carries none of the known
	// payload fields.
	ErrEmptyBlob = errors.New("blob is missing its payload fields")
)

// HeaderTooBigError is returned when a blob header length field meets or
// exceeds MaxBlobHeaderSize.
type HeaderTooBigError struct {
	// Size is the declared blob header size in bytes.
	Size uint64
}

func (e *HeaderTooBigError) Error() string {
	return fmt.Sprintf("blob header is too big: %d bytes", e.Size)
}

// MessageTooBigError is returned when a blob's uncompressed content meets or
// exceeds MaxBlobMessageSize.
type MessageTooBigError struct {
	// Size is the blob content size in bytes.
	Size uint64
}

func (e *MessageTooBigError) Error() string {
	return fmt.Sprintf("blob message is too big: %d bytes", e.Size)
}

// Locations a wire message decode can fail at, for ProtobufError.Location.
const (
	LocationBlobHeader  = "blob header"
	LocationBlobContent = "blob content"
	LocationRawData     = "raw blob data"
	LocationZlibData    = "blob zlib data"
	LocationLzmaData    = "blob lzma data"
	LocationLz4Data     = "blob lz4 data"
	LocationZstdData    = "blob zstd data"
)

// ProtobufError reports a wire message decode failure, tagged with the
// location in the framing that failed.
type ProtobufError struct {
	Location string
	Err      error
}

func (e *ProtobufError) Error() string {
	return fmt.Sprintf("protobuf error at %q: %v", e.Location, e.Err)
}

func (e *ProtobufError) Unwrap() error { return e.Err }

// StringTableIndexError reports an out-of-bounds index into a block's
// string table.
type StringTableIndexError struct {
	Index int
}

func (e *StringTableIndexError) Error() string {
	return fmt.Sprintf("stringtable index out of bounds: %d", e.Index)
}

// StringTableUTF8Error reports a string table entry that is not valid UTF-8.
type StringTableUTF8Error struct {
	Index int
}

func (e *StringTableUTF8Error) Error() string {
	return fmt.Sprintf("invalid UTF-8 at stringtable index %d", e.Index)
}
