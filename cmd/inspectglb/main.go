package main

import (
	"bytes"
	"fmt"
	"os"

	"bodyscan-recon/internal/glb"

	"github.com/qmuntal/gltf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspectglb <model.glb> [...]")
		os.Exit(2)
	}

	failed := 0
	for _, arg := range os.Args[1:] {
		if err := inspect(arg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== %s (%d bytes) ===\n", path, len(data))
	if len(data) == 0 {
		fmt.Println("empty file: reconstruction produced no mesh")
		return nil
	}

	doc, err := glb.Decode(data)
	if err != nil {
		return err
	}
	fmt.Printf("glTF binary v%d, declared length %d\n", doc.Version, doc.TotalLength)
	fmt.Printf("JSON chunk: %d bytes, BIN chunk: %d bytes\n", len(doc.JSON), len(doc.BIN))

	meta, err := doc.Meta()
	if err != nil {
		return err
	}
	fmt.Printf("asset: %q (glTF %s)\n", meta.Asset.Generator, meta.Asset.Version)

	binDeclared := 0
	for i, b := range meta.Buffers {
		fmt.Printf("buffer[%d]: %d bytes\n", i, b.ByteLength)
		binDeclared += b.ByteLength
	}
	if binDeclared != len(doc.BIN) {
		fmt.Printf("  WARNING: buffers declare %d bytes, BIN chunk holds %d\n", binDeclared, len(doc.BIN))
	}

	viewTotal := 0
	for i, bv := range meta.BufferViews {
		fmt.Printf("bufferView[%d]: buffer=%d offset=%d length=%d target=%d\n",
			i, bv.Buffer, bv.ByteOffset, bv.ByteLength, bv.Target)
		viewTotal += bv.ByteLength
	}
	if viewTotal != len(doc.BIN) {
		fmt.Printf("  WARNING: bufferViews cover %d of %d BIN bytes\n", viewTotal, len(doc.BIN))
	}

	for i, a := range meta.Accessors {
		fmt.Printf("accessor[%d]: %s componentType=%d count=%d view=%d",
			i, a.Type, a.ComponentType, a.Count, a.BufferView)
		if len(a.Min) == 3 && len(a.Max) == 3 {
			fmt.Printf(" min=[%.3f %.3f %.3f] max=[%.3f %.3f %.3f]",
				a.Min[0], a.Min[1], a.Min[2], a.Max[0], a.Max[1], a.Max[2])
		}
		fmt.Println()
	}

	return crossCheck(data, doc)
}

// crossCheck re-decodes the blob with the gltf library and compares
// its view of the geometry against the raw chunk accounting.
func crossCheck(data []byte, doc *glb.Document) error {
	var gdoc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(&gdoc); err != nil {
		return fmt.Errorf("gltf decode: %w", err)
	}

	if len(gdoc.Buffers) > 0 && len(gdoc.Buffers[0].Data) != len(doc.BIN) {
		fmt.Printf("  WARNING: gltf sees %d buffer bytes, BIN chunk holds %d\n",
			len(gdoc.Buffers[0].Data), len(doc.BIN))
	}

	for mi, mesh := range gdoc.Meshes {
		for pi, prim := range mesh.Primitives {
			verts := uint32(0)
			if ai, ok := prim.Attributes[gltf.POSITION]; ok && int(ai) < len(gdoc.Accessors) {
				verts = uint32(gdoc.Accessors[ai].Count)
			}
			tris := uint32(0)
			if prim.Indices != nil && int(*prim.Indices) < len(gdoc.Accessors) {
				tris = uint32(gdoc.Accessors[*prim.Indices].Count) / 3
			}
			fmt.Printf("mesh[%d].primitive[%d]: %d vertices, %d triangles, mode=%d\n",
				mi, pi, verts, tris, prim.Mode)
		}
	}
	fmt.Println("cross-check: OK")
	return nil
}
