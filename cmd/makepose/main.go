package main

import (
	"flag"
	"fmt"
	"os"

	"bodyscan-recon/internal/scan"
)

func main() {
	height := flag.Float64("height", 175, "Subject height in cm, recorded in the session")
	name := flag.String("name", "synthetic", "Session name")
	out := flag.String("o", "", "Output path (default: <name>.json)")

	flag.Parse()

	sess := scan.Synthetic(*name, float32(*height))

	outPath := *out
	if outPath == "" {
		outPath = *name + ".json"
	}
	if err := scan.SaveSession(outPath, sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d views, height %.0f cm)\n", outPath, len(sess.Views), *height)
}
