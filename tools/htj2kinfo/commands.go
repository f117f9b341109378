package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cocosip/go-dicom-htj2k/jpeg2000/codestream"
	"github.com/cocosip/go-dicom-htj2k/jpeg2000/htj2k"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. decode is only offered when at
// least one decoding engine is linked in.
func newRootCommand(engines []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "htj2kinfo",
		Short:         "Inspect and decode HTJ2K codestreams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newInfoCommand())
	if len(engines) > 0 {
		root.AddCommand(newDecodeCommand(engines))
	}
	return root
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <codestream>",
		Short: "Print the main header and whether it can be decoded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := codestream.ParseHeader(data)
			if err != nil {
				return err
			}
			printHeader(cmd.OutOrStdout(), h)

			layout, err := htj2k.ValidateComponents(htj2k.ComponentsFromHeader(h))
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Decodable: no (%v)\n", err)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Decodable: yes, %d-bit interleaved output, %d samples\n",
				layout.Precision, uint64(layout.Width)*uint64(layout.Height)*uint64(layout.Components))
			return nil
		},
	}
}

func printHeader(w io.Writer, h *codestream.Header) {
	siz := h.SIZ
	fmt.Fprintf(w, "Image: %dx%d at offset %d,%d\n", siz.Xsiz-siz.XOsiz, siz.Ysiz-siz.YOsiz, siz.XOsiz, siz.YOsiz)
	fmt.Fprintf(w, "Tiles: %dx%d\n", siz.XTsiz, siz.YTsiz)
	fmt.Fprintf(w, "HTJ2K: %v\n", h.IsHTJ2K())
	for i, c := range siz.Components {
		sign := "unsigned"
		if c.IsSigned() {
			sign = "signed"
		}
		fmt.Fprintf(w, "Component %d: %dx%d, %d-bit %s, subsampling %dx%d\n",
			i, siz.ReconWidth(i), siz.ReconHeight(i), c.BitDepth(), sign, c.XRsiz, c.YRsiz)
	}
	if h.COD != nil {
		cbw, cbh := h.COD.CodeBlockSize()
		fmt.Fprintf(w, "Coding: %d levels, %d layers, code-blocks %dx%d, reversible %v\n",
			h.COD.NumberOfDecompositionLevels, h.COD.NumberOfLayers, cbw, cbh, h.COD.Reversible())
	}
	names := make([]string, len(h.Markers))
	for i, m := range h.Markers {
		names[i] = codestream.MarkerName(m)
	}
	fmt.Fprintf(w, "Markers: %s\n", strings.Join(names, " "))
	for _, c := range h.COM {
		if c.Rcom == 1 {
			fmt.Fprintf(w, "Comment: %s\n", c.Data)
		}
	}
}

type decodeFlags struct {
	engine     string
	output     string
	compress   bool
	maxSamples int
}

func newDecodeCommand(engines []string) *cobra.Command {
	f := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   "decode <codestream>",
		Short: "Decode to raw little-endian interleaved samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.engine, "engine", "",
		fmt.Sprintf("decoding engine, one of %s (default %q)", strings.Join(engines, ", "), engines[0]))
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (required)")
	cmd.Flags().BoolVar(&f.compress, "zstd", false, "compress the output with zstd")
	cmd.Flags().IntVar(&f.maxSamples, "max-samples", 0, "reject images with more samples (0: no limit)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runDecode(cmd *cobra.Command, f *decodeFlags, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opts := htj2k.DefaultOptions().WithEngineName(f.engine).WithMaxSamples(f.maxSamples)
	var img htj2k.DecodedImage
	msg := make([]byte, 256)
	if st := htj2k.NewDecoder(opts).Decode(data, &img, msg); st != htj2k.StatusOK {
		return fmt.Errorf("decode %s: %s: %s", path, st, htj2k.MessageString(msg))
	}
	defer img.Release()

	out, err := os.Create(f.output)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := writeSamples(out, &img, f.compress)
	if err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	cmd.Printf("%dx%dx%d %d-bit samples (%d bytes) written to %s\n",
		img.Width, img.Height, img.Components, img.Precision(), n, f.output)
	return out.Close()
}

// writeSamples writes the image as raw little-endian samples, optionally
// zstd compressed. It returns the uncompressed size.
func writeSamples(w io.Writer, img *htj2k.DecodedImage, compress bool) (int, error) {
	var raw []byte
	if p := img.Samples8(); p != nil {
		raw = p
	} else {
		p := img.Samples16()
		raw = make([]byte, 2*len(p))
		for i, v := range p {
			binary.LittleEndian.PutUint16(raw[2*i:], v)
		}
	}

	if !compress {
		_, err := w.Write(raw)
		return len(raw), err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return 0, err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return 0, err
	}
	return len(raw), enc.Close()
}
