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

// Package pb holds the OSMPBF wire messages from fileformat.proto and
// osmformat.proto.  The messages are decoded with the protowire codec and
// keep the proto2 pointer-presence and accessor conventions so that callers
// can treat them like generated code.  Repeated scalar fields accept both
// the packed and the unpacked encoding.
//
// Unmarshal never copies length-delimited payloads; byte fields alias the
// input buffer, so the buffer must stay immutable for the lifetime of the
// message.
package pb

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

var errUnexpectedWireType = errors.New("unexpected wire type")

func consumeBytes(data []byte, typ protowire.Type) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errUnexpectedWireType
	}

	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}

	if v == nil {
		v = []byte{}
	}

	return v, n, nil
}

func consumeString(data []byte, typ protowire.Type) (string, int, error) {
	v, n, err := consumeBytes(data, typ)
	if err != nil {
		return "", 0, err
	}

	return string(v), n, nil
}

func consumeVarint(data []byte, typ protowire.Type) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, errUnexpectedWireType
	}

	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

// appendVarints consumes one occurrence of a repeated varint field, either a
// packed run or a single unpacked value, and appends the raw varints.
func appendVarints(vals []uint64, data []byte, typ protowire.Type) ([]uint64, int, error) {
	if typ == protowire.BytesType {
		buf, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return vals, 0, protowire.ParseError(n)
		}

		for len(buf) > 0 {
			v, m := protowire.ConsumeVarint(buf)
			if m < 0 {
				return vals, 0, protowire.ParseError(m)
			}

			vals = append(vals, v)
			buf = buf[m:]
		}

		return vals, n, nil
	}

	v, n, err := consumeVarint(data, typ)
	if err != nil {
		return vals, 0, err
	}

	return append(vals, v), n, nil
}

func appendSint64s(vals []int64, data []byte, typ protowire.Type) ([]int64, int, error) {
	raw, n, err := appendVarints(nil, data, typ)
	if err != nil {
		return vals, 0, err
	}

	for _, v := range raw {
		vals = append(vals, protowire.DecodeZigZag(v))
	}

	return vals, n, nil
}

func appendSint32s(vals []int32, data []byte, typ protowire.Type) ([]int32, int, error) {
	raw, n, err := appendVarints(nil, data, typ)
	if err != nil {
		return vals, 0, err
	}

	for _, v := range raw {
		vals = append(vals, int32(protowire.DecodeZigZag(v)))
	}

	return vals, n, nil
}

func appendInt32s(vals []int32, data []byte, typ protowire.Type) ([]int32, int, error) {
	raw, n, err := appendVarints(nil, data, typ)
	if err != nil {
		return vals, 0, err
	}

	for _, v := range raw {
		vals = append(vals, int32(v))
	}

	return vals, n, nil
}

func appendUint32s(vals []uint32, data []byte, typ protowire.Type) ([]uint32, int, error) {
	raw, n, err := appendVarints(nil, data, typ)
	if err != nil {
		return vals, 0, err
	}

	for _, v := range raw {
		vals = append(vals, uint32(v))
	}

	return vals, n, nil
}

func appendBools(vals []bool, data []byte, typ protowire.Type) ([]bool, int, error) {
	raw, n, err := appendVarints(nil, data, typ)
	if err != nil {
		return vals, 0, err
	}

	for _, v := range raw {
		vals = append(vals, v != 0)
	}

	return vals, n, nil
}

func skipField(num protowire.Number, typ protowire.Type, data []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, data)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}

	return n, nil
}
