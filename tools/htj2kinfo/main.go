// Command htj2kinfo inspects HTJ2K codestreams and dumps decoded samples.
//
// Usage:
//
//	htj2kinfo info image.jhc
//	htj2kinfo decode --engine openjph --zstd -o image.raw.zst image.jhc
//
// decode is available once a decoding engine is registered, for example
// by a blank import of the engine's package.
package main

import (
	"log"
	"os"

	"github.com/cocosip/go-dicom-htj2k/jpeg2000/htj2k"
)

func main() {
	if err := newRootCommand(htj2k.Engines()).Execute(); err != nil {
		log.Printf("htj2kinfo: %v", err)
		os.Exit(1)
	}
}
