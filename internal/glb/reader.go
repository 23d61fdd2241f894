package glb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Document is a decoded container: header fields plus the two chunk
// payloads, still padded as stored.
type Document struct {
	Version     uint32
	TotalLength uint32
	JSON        []byte
	BIN         []byte
}

// Decode splits a GLB blob into its chunks, checking the magic, the
// declared total length, and every chunk's framing against the actual
// byte count.
func Decode(data []byte) (*Document, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("glb: %d bytes is shorter than the header", len(data))
	}

	r := &reader{data: data}
	if m := r.u32(); m != glbMagic {
		return nil, fmt.Errorf("glb: bad magic 0x%08X", m)
	}

	doc := &Document{
		Version:     r.u32(),
		TotalLength: r.u32(),
	}
	if doc.Version != glbVersion {
		return nil, fmt.Errorf("glb: unsupported version %d", doc.Version)
	}
	if int(doc.TotalLength) != len(data) {
		return nil, fmt.Errorf("glb: declared length %d, actual %d", doc.TotalLength, len(data))
	}

	for r.remaining() > 0 {
		if r.remaining() < 8 {
			return nil, fmt.Errorf("glb: truncated chunk header at offset %d", r.off)
		}
		length := r.u32()
		ctype := r.u32()
		payload := r.bytes(int(length))
		if payload == nil {
			return nil, fmt.Errorf("glb: chunk of %d bytes overruns the blob", length)
		}

		switch ctype {
		case chunkTypeJSON:
			if doc.JSON != nil {
				return nil, fmt.Errorf("glb: duplicate JSON chunk")
			}
			doc.JSON = payload
		case chunkTypeBIN:
			if doc.BIN != nil {
				return nil, fmt.Errorf("glb: duplicate BIN chunk")
			}
			doc.BIN = payload
		default:
			// Unknown chunks are legal and skipped.
		}
	}

	if doc.JSON == nil {
		return nil, fmt.Errorf("glb: missing JSON chunk")
	}
	return doc, nil
}

// Meta is the slice of the JSON chunk the audit tooling inspects.
type Meta struct {
	Asset struct {
		Generator string `json:"generator"`
		Version   string `json:"version"`
	} `json:"asset"`
	Buffers []struct {
		ByteLength int `json:"byteLength"`
	} `json:"buffers"`
	BufferViews []struct {
		Buffer     int `json:"buffer"`
		ByteOffset int `json:"byteOffset"`
		ByteLength int `json:"byteLength"`
		Target     int `json:"target"`
	} `json:"bufferViews"`
	Accessors []struct {
		BufferView    int       `json:"bufferView"`
		ComponentType int       `json:"componentType"`
		Count         int       `json:"count"`
		Type          string    `json:"type"`
		Min           []float64 `json:"min"`
		Max           []float64 `json:"max"`
	} `json:"accessors"`
}

// Meta parses the JSON chunk down to the audit fields.
func (d *Document) Meta() (*Meta, error) {
	var m Meta
	if err := json.Unmarshal(d.JSON, &m); err != nil {
		return nil, fmt.Errorf("glb: parse JSON chunk: %w", err)
	}
	return &m, nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) u32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if n < 0 || r.off+n > len(r.data) {
		r.off = len(r.data)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}
