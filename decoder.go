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
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/destel/rill"

	"m4o.io/osmpbf/model"
)

// Decoder reads and decodes OpenStreetMap PBF data from an input stream,
// fanning blob decoding out over a pool of workers while preserving stream
// order.  The header blob is decoded eagerly during construction.
type Decoder struct {
	// Header is the decoded content of the stream's leading OSMHeader blob.
	Header model.Header

	cancel  context.CancelFunc
	decoded <-chan rill.Try[[]model.Entity]
}

// NewDecoder returns a new decoder that reads from rdr.  It fails if the
// stream does not start with a decodable OSMHeader blob.
func NewDecoder(ctx context.Context, rdr io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	blobs := &BlobReader{src: rdr, buf: bufio.NewReaderSize(rdr, cfg.protoBufferSize)}

	header, err := loadHeader(blobs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	encoded := generateBlobs(ctx, blobs)
	batched := rill.Batch(encoded, cfg.protoBatchSize, -1)
	decoded := rill.OrderedFlatMap(batched, int(cfg.nCPU), decodeBatch)

	return &Decoder{Header: header, cancel: cancel, decoded: decoded}, nil
}

// Decode returns the entities of the next decoded primitive block, in
// stream order.  The end of the input stream is reported by an io.EOF
// error.
func (d *Decoder) Decode() ([]model.Entity, error) {
	res, more := <-d.decoded
	if !more {
		return nil, io.EOF
	}

	if res.Error != nil {
		return nil, res.Error
	}

	return res.Value, nil
}

// Entities returns an iterator over the remaining entities of the stream.
// The sequence ends after yielding at most one error.
func (d *Decoder) Entities() iter.Seq2[model.Entity, error] {
	return func(yield func(model.Entity, error) bool) {
		for {
			entities, err := d.Decode()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				yield(nil, err)

				return
			}

			for _, e := range entities {
				if !yield(e, nil) {
					return
				}
			}
		}
	}
}

// Close cancels the background decoding pipeline.  It does not close the
// underlying reader.
func (d *Decoder) Close() {
	d.cancel()
	rill.DrainNB(d.decoded)
}

// loadHeader reads and decodes the stream's leading header blob.
func loadHeader(rdr *BlobReader) (model.Header, error) {
	blob, err := rdr.Next()
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to read header blob: %w", err)
	}

	content, err := blob.Decode()
	if err != nil {
		return model.Header{}, err
	}

	hb, ok := content.(*HeaderBlock)
	if !ok {
		return model.Header{}, fmt.Errorf("expected header data but got %T", content)
	}

	return hb.Header(), nil
}

// generateBlobs reads framed blobs off the reader and sends them down a
// channel until the stream ends, a framing error occurs, or ctx is done.
func generateBlobs(ctx context.Context, rdr *BlobReader) <-chan rill.Try[*Blob] {
	ch := make(chan rill.Try[*Blob])

	go func() {
		defer close(ch)

		for {
			blob, err := rdr.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				slog.Error("unable to read blob", "error", err)

				select {
				case ch <- rill.Try[*Blob]{Error: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case ch <- rill.Try[*Blob]{Value: blob}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// decodeBatch decodes a batch of blobs into per-block entity slices.
// Header blobs and blobs of unknown type carry no entities and are
// skipped.
func decodeBatch(batch []*Blob) <-chan rill.Try[[]model.Entity] {
	ch := make(chan rill.Try[[]model.Entity])

	go func() {
		defer close(ch)

		for _, blob := range batch {
			content, err := blob.Decode()
			if err != nil {
				slog.Error("unable to decode blob", "error", err)
				ch <- rill.Try[[]model.Entity]{Error: err}

				return
			}

			block, ok := content.(*PrimitiveBlock)
			if !ok {
				continue
			}

			ch <- rill.Try[[]model.Entity]{Value: materialize(block)}
		}
	}()

	return ch
}

// materialize copies a block's borrowed element views into owned model
// entities.
func materialize(block *PrimitiveBlock) []model.Entity {
	entities := make([]model.Entity, 0)

	for el := range block.Elements() {
		switch e := el.(type) {
		case Node:
			entities = append(entities, &model.Node{
				ID:   model.ID(e.ID()),
				Tags: collectTags(e.Tags()),
				Info: entityInfo(e.Info()),
				Lat:  model.ToDegrees(0, 1, e.NanoLat()),
				Lon:  model.ToDegrees(0, 1, e.NanoLon()),
			})
		case DenseNode:
			entities = append(entities, &model.Node{
				ID:   model.ID(e.ID()),
				Tags: collectTags(e.Tags()),
				Info: denseEntityInfo(e),
				Lat:  model.ToDegrees(0, 1, e.NanoLat()),
				Lon:  model.ToDegrees(0, 1, e.NanoLon()),
			})
		case Way:
			nodeIDs := make([]model.ID, 0, len(e.RawRefs()))
			for ref := range e.Refs() {
				nodeIDs = append(nodeIDs, model.ID(ref))
			}

			entities = append(entities, &model.Way{
				ID:      model.ID(e.ID()),
				Tags:    collectTags(e.Tags()),
				Info:    entityInfo(e.Info()),
				NodeIDs: nodeIDs,
			})
		case Relation:
			var members []model.Member
			for m := range e.Members() {
				role, err := m.Role()
				if err != nil {
					role = ""
				}

				members = append(members, model.Member{
					ID:   model.ID(m.MemberID),
					Type: model.EntityType(m.MemberType),
					Role: role,
				})
			}

			entities = append(entities, &model.Relation{
				ID:      model.ID(e.ID()),
				Tags:    collectTags(e.Tags()),
				Info:    entityInfo(e.Info()),
				Members: members,
			})
		}
	}

	return entities
}

func collectTags(seq iter.Seq2[string, string]) map[string]string {
	tags := make(map[string]string)

	for k, v := range seq {
		tags[k] = v
	}

	return tags
}

func entityInfo(inf Info) *model.Info {
	if inf.info == nil {
		return nil
	}

	version, ok := inf.Version()
	if !ok {
		version = -1
	}

	info := &model.Info{
		Version: version,
		Visible: inf.Visible(),
	}

	if ms, ok := inf.MilliTimestamp(); ok {
		info.Timestamp = time.UnixMilli(ms)
	}

	if changeset, ok := inf.Changeset(); ok {
		info.Changeset = changeset
	}

	if uid, ok := inf.UID(); ok {
		info.UID = model.UID(uid)
	}

	if user, ok, err := inf.User(); ok && err == nil {
		info.User = user
	}

	return info
}

func denseEntityInfo(node DenseNode) *model.Info {
	inf, ok := node.Info()
	if !ok {
		return nil
	}

	user, err := inf.User()
	if err != nil {
		user = ""
	}

	return &model.Info{
		Version:   inf.Version(),
		UID:       model.UID(inf.UID()),
		Timestamp: time.UnixMilli(inf.MilliTimestamp()),
		Changeset: inf.Changeset(),
		User:      user,
		Visible:   inf.Visible(),
	}
}
