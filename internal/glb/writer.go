package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"

	"bodyscan-recon/internal/bodymesh"
)

// Binary glTF 2.0 container framing.
const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2

	chunkTypeJSON = 0x4E4F534A // "JSON"
	chunkTypeBIN  = 0x004E4942 // "BIN\0"

	headerLen = 12
)

// GL enums referenced by the JSON chunk.
const (
	targetArrayBuffer        = 34962
	targetElementArrayBuffer = 34963
	componentFloat           = 5126
	componentUint            = 5125
	modeTriangles            = 4
)

type jsonDoc struct {
	Asset       jsonAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []jsonScene      `json:"scenes"`
	Nodes       []jsonNode       `json:"nodes"`
	Meshes      []jsonMesh       `json:"meshes"`
	Materials   []jsonMaterial   `json:"materials"`
	Buffers     []jsonBuffer     `json:"buffers"`
	BufferViews []jsonBufferView `json:"bufferViews"`
	Accessors   []jsonAccessor   `json:"accessors"`
}

type jsonAsset struct {
	Generator string `json:"generator"`
	Version   string `json:"version"`
}

type jsonScene struct {
	Nodes []int `json:"nodes"`
}

type jsonNode struct {
	Mesh int `json:"mesh"`
}

type jsonMesh struct {
	Primitives []jsonPrimitive `json:"primitives"`
}

type jsonPrimitive struct {
	Attributes jsonAttributes `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   int            `json:"material"`
	Mode       int            `json:"mode"`
}

type jsonAttributes struct {
	Position int `json:"POSITION"`
	Normal   int `json:"NORMAL"`
}

type jsonMaterial struct {
	PBR         jsonPBR `json:"pbrMetallicRoughness"`
	DoubleSided bool    `json:"doubleSided"`
}

type jsonPBR struct {
	BaseColorFactor [4]float32 `json:"baseColorFactor"`
	MetallicFactor  float32    `json:"metallicFactor"`
	RoughnessFactor float32    `json:"roughnessFactor"`
}

type jsonBuffer struct {
	ByteLength int `json:"byteLength"`
}

type jsonBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target"`
}

type jsonAccessor struct {
	BufferView    int        `json:"bufferView"`
	ComponentType int        `json:"componentType"`
	Count         int        `json:"count"`
	Type          string     `json:"type"`
	Min           []float32  `json:"min,omitempty"`
	Max           []float32  `json:"max,omitempty"`
}

// Encode serializes mesh buffers into a self-contained binary glTF
// document: header, JSON chunk padded with spaces, BIN chunk padded
// with zeros, total length patched in last. The binary payload packs
// vertices, then normals, then indices, with no interleaving. Empty
// buffers encode to empty bytes, the pipeline's failure signal.
func Encode(b bodymesh.Buffers) []byte {
	if b.Empty() {
		return nil
	}

	vertBytes := len(b.Vertices) * 4
	normBytes := len(b.Normals) * 4
	idxBytes := len(b.Indices) * 4
	binLen := vertBytes + normBytes + idxBytes

	bin := make([]byte, binLen)
	off := 0
	for _, f := range b.Vertices {
		binary.LittleEndian.PutUint32(bin[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range b.Normals {
		binary.LittleEndian.PutUint32(bin[off:], math.Float32bits(f))
		off += 4
	}
	for _, v := range b.Indices {
		binary.LittleEndian.PutUint32(bin[off:], v)
		off += 4
	}

	min, max := positionBounds(b.Vertices)
	doc := jsonDoc{
		Asset: jsonAsset{Generator: "bodyscan-recon", Version: "2.0"},
		Scene: 0,
		Scenes: []jsonScene{
			{Nodes: []int{0}},
		},
		Nodes: []jsonNode{
			{Mesh: 0},
		},
		Meshes: []jsonMesh{
			{Primitives: []jsonPrimitive{{
				Attributes: jsonAttributes{Position: 0, Normal: 1},
				Indices:    2,
				Material:   0,
				Mode:       modeTriangles,
			}}},
		},
		Materials: []jsonMaterial{
			{
				PBR: jsonPBR{
					BaseColorFactor: [4]float32{0.8, 0.8, 0.8, 1},
					MetallicFactor:  0,
					RoughnessFactor: 0.9,
				},
				DoubleSided: true,
			},
		},
		Buffers: []jsonBuffer{
			{ByteLength: binLen},
		},
		BufferViews: []jsonBufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: vertBytes, Target: targetArrayBuffer},
			{Buffer: 0, ByteOffset: vertBytes, ByteLength: normBytes, Target: targetArrayBuffer},
			{Buffer: 0, ByteOffset: vertBytes + normBytes, ByteLength: idxBytes, Target: targetElementArrayBuffer},
		},
		Accessors: []jsonAccessor{
			{BufferView: 0, ComponentType: componentFloat, Count: b.VertexCount(), Type: "VEC3", Min: min[:], Max: max[:]},
			{BufferView: 1, ComponentType: componentFloat, Count: b.VertexCount(), Type: "VEC3"},
			{BufferView: 2, ComponentType: componentUint, Count: len(b.Indices), Type: "SCALAR"},
		},
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	jsonBytes = pad(jsonBytes, ' ')
	bin = pad(bin, 0)

	var out bytes.Buffer
	putU32 := func(v uint32) {
		var q [4]byte
		binary.LittleEndian.PutUint32(q[:], v)
		out.Write(q[:])
	}

	putU32(glbMagic)
	putU32(glbVersion)
	putU32(0) // total length, patched once the size is known

	putU32(uint32(len(jsonBytes)))
	putU32(chunkTypeJSON)
	out.Write(jsonBytes)

	putU32(uint32(len(bin)))
	putU32(chunkTypeBIN)
	out.Write(bin)

	blob := out.Bytes()
	binary.LittleEndian.PutUint32(blob[8:headerLen], uint32(len(blob)))
	return blob
}

// pad extends data to the next 4-byte boundary with the filler byte.
func pad(data []byte, filler byte) []byte {
	for len(data)%4 != 0 {
		data = append(data, filler)
	}
	return data
}

func positionBounds(verts []float32) (min, max [3]float32) {
	for i := 0; i+2 < len(verts); i += 3 {
		for c := 0; c < 3; c++ {
			v := verts[i+c]
			if i == 0 || v < min[c] {
				min[c] = v
			}
			if i == 0 || v > max[c] {
				max[c] = v
			}
		}
	}
	return min, max
}
