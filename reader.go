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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"golang.org/x/exp/mmap"

	"m4o.io/osmpbf/internal/pb"
)

// ErrNotSeekable is returned by Seek when the underlying stream does not
// support seeking.
var ErrNotSeekable = errors.New("stream does not support seeking")

// BlobReader reads the outer framing of a PBF stream and yields undecoded
// Blobs in stream order.
//
// Framing errors are unrecoverable: once Next returns a non-nil error, the
// byte alignment of subsequent records can no longer be trusted and every
// later call returns io.EOF.  Per-element errors surfaced by decoded blocks
// do not affect the reader.
type BlobReader struct {
	src    io.Reader
	seeker io.Seeker
	buf    *bufio.Reader
	closer io.Closer

	offset  ByteOffset
	tracked bool

	err  error
	done bool
}

// NewBlobReader creates a BlobReader from r.  Blobs read from a plain
// reader carry no offsets.
func NewBlobReader(r io.Reader) *BlobReader {
	return &BlobReader{src: r, buf: bufio.NewReader(r)}
}

// NewSeekableBlobReader creates a BlobReader from rs, initialized with the
// stream's current position so that every Blob carries its byte offset.
func NewSeekableBlobReader(rs io.ReadSeeker) (*BlobReader, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	return &BlobReader{
		src:     rs,
		seeker:  rs,
		buf:     bufio.NewReader(rs),
		offset:  ByteOffset(pos),
		tracked: true,
	}, nil
}

// Open opens the file at path and returns a seekable BlobReader that owns
// the file.  The caller must call Close when done.
func Open(path string) (*BlobReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rdr, err := NewSeekableBlobReader(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	rdr.closer = f

	return rdr, nil
}

// OpenMmap memory-maps the file at path and returns a seekable BlobReader
// over the mapping.  The caller must call Close when done.
func OpenMmap(path string) (*BlobReader, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	rdr, err := NewSeekableBlobReader(io.NewSectionReader(m, 0, int64(m.Len())))
	if err != nil {
		m.Close()

		return nil, err
	}

	rdr.closer = m

	return rdr, nil
}

// Close releases the underlying source if the reader owns it.
func (r *BlobReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}

	return nil
}

// Offset returns the reader's current offset in bytes from stream start.
// ok is false when the source does not track offsets.
func (r *BlobReader) Offset() (offset ByteOffset, ok bool) {
	return r.offset, r.tracked
}

// Next reads the next blob.  It returns io.EOF at a clean end of stream and
// on every call after a framing error has been returned.
func (r *BlobReader) Next() (*Blob, error) {
	if r.err != nil || r.done {
		return nil, io.EOF
	}

	blob, err := r.read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.done = true

			return nil, io.EOF
		}

		r.err = err

		return nil, err
	}

	return blob, nil
}

// Blobs returns an iterator over the blobs remaining in the stream.  The
// sequence ends after yielding at most one error.
func (r *BlobReader) Blobs() iter.Seq2[*Blob, error] {
	return func(yield func(*Blob, error) bool) {
		for {
			blob, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(blob, err) || err != nil {
				return
			}
		}
	}
}

// Seek repositions the stream to an offset in bytes from stream start and
// resumes framing there.  The offset must point at the start of a blob's
// length field, i.e. an offset previously observed via Blob.Offset, or the
// next read will fail or mis-parse.  A reader halted by a framing error is
// revived, since the caller has re-established alignment.
func (r *BlobReader) Seek(offset ByteOffset) error {
	if r.seeker == nil {
		return ErrNotSeekable
	}

	pos, err := r.seeker.Seek(int64(offset), io.SeekStart)
	if err != nil {
		r.tracked = false

		return err
	}

	r.buf.Reset(r.src)
	r.offset = ByteOffset(pos)
	r.tracked = true
	r.err = nil
	r.done = false

	return nil
}

// read performs one step of the framing protocol: length field, blob
// header, blob body.
func (r *BlobReader) read() (*Blob, error) {
	var prev *ByteOffset
	if r.tracked {
		o := r.offset
		prev = &o
	}

	var lenField [4]byte

	if _, err := io.ReadFull(r.buf, lenField[:]); err != nil {
		if errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			// Zero bytes available is a clean end of stream.
			return nil, io.EOF
		}

		// A 1-3 byte read lands here too: a truncated length field is
		// corruption, not a clean end of stream.
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeaderSize, err)
	}

	headerSize := uint64(binary.BigEndian.Uint32(lenField[:]))
	if headerSize >= MaxBlobHeaderSize {
		return nil, &HeaderTooBigError{Size: headerSize}
	}

	headerBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(r.buf, headerBuf); err != nil {
		return nil, &ProtobufError{Location: LocationBlobHeader, Err: err}
	}

	header := &pb.BlobHeader{}
	if err := header.Unmarshal(headerBuf); err != nil {
		return nil, &ProtobufError{Location: LocationBlobHeader, Err: err}
	}

	size := header.GetDatasize()
	if size < 0 {
		return nil, &ProtobufError{
			Location: LocationBlobContent,
			Err:      fmt.Errorf("negative blob datasize %d", size),
		}
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r.buf, body); err != nil {
		return nil, &ProtobufError{Location: LocationBlobContent, Err: err}
	}

	blob := &pb.Blob{}
	if err := blob.Unmarshal(body); err != nil {
		return nil, &ProtobufError{Location: LocationBlobContent, Err: err}
	}

	if r.tracked {
		r.offset += ByteOffset(4 + headerSize + uint64(size))
	}

	return &Blob{header: header, blob: blob, offset: prev}, nil
}
