// Command rawprobe opens a raw pixel file against a declared or
// BMP-derived geometry, runs the band-construction sanity check and the
// multi-band layout classifier, and reports what it finds.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	_ "golang.org/x/image/bmp"

	rawbinary "github.com/robert-malhotra/rawraster/internal/binary"
	"github.com/robert-malhotra/rawraster/internal/dtype"
	"github.com/robert-malhotra/rawraster/internal/stream"
	"github.com/robert-malhotra/rawraster/rawio"
)

func main() {
	var (
		width   = flag.Int("width", 0, "band width in pixels (ignored if -bmp is set)")
		height  = flag.Int("height", 0, "band height in pixels (ignored if -bmp is set)")
		bands   = flag.Int("bands", 1, "band count")
		bmpMode = flag.Bool("bmp", false, "derive geometry from a BMP file header instead of -width/-height")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rawprobe [-bands N] (-width W -height H | -bmp) <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	var descs []bandDesc
	var err error
	if *bmpMode {
		descs, err = probeBMP(path, *bands)
	} else {
		if *width <= 0 || *height <= 0 {
			fmt.Fprintln(os.Stderr, "rawprobe: -width and -height are required unless -bmp is set")
			os.Exit(2)
		}
		descs, err = declaredGeometry(*width, *height, *bands)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rawprobe: %v\n", err)
		os.Exit(1)
	}

	st, err := stream.OpenReadOnly(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rawprobe: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	cfg := rawio.DefaultConfig()
	bandList := make([]*rawio.Band, 0, len(descs))
	for i, d := range descs {
		if err := rawio.Preflight(rawio.PreflightParams{
			Width: uint32(d.width), Height: uint32(d.height),
			NumBands: len(descs), SampleSize: d.sampleType.Size(),
			PixelStride: d.pixelStride, LineStride: d.lineStride,
			HeaderSize: d.imageOffset, BandOffset: d.bandOffset,
			Stream: st,
		}, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "rawprobe: band %d failed preflight: %v\n", i, err)
			os.Exit(1)
		}

		b, err := rawio.NewBand(rawio.BandConfig{
			Stream: st, ImageOffset: d.imageOffset + uint64(i)*uint64(d.bandOffset),
			PixelStride: d.pixelStride, LineStride: d.lineStride,
			SampleType: d.sampleType, NativeOrder: true,
			Width: uint32(d.width), Height: uint32(d.height),
		}, rawio.WithConfig(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "rawprobe: band %d: %v\n", i, err)
			os.Exit(1)
		}
		bandList = append(bandList, b)
	}

	ds := rawio.NewDataset(bandList, rawio.WithDatasetConfig(cfg))
	layout := ds.RawBinaryLayout()

	fmt.Printf("bands:        %d\n", len(bandList))
	fmt.Printf("geometry:     %dx%d, sample=%s, pixel_stride=%d, line_stride=%d\n",
		bandList[0].Width(), bandList[0].Height(), bandList[0].SampleType(),
		bandList[0].PixelStride(), bandList[0].LineStride())
	fmt.Printf("interleaving: %s\n", layout.Interleaving)
	if layout.Interleaving != rawio.Unknown {
		fmt.Printf("band_offset:  %d\n", layout.BandOffset)
	}
}

type bandDesc struct {
	width, height int
	sampleType    dtype.Type
	pixelStride   int32
	lineStride    int64
	imageOffset   uint64
	bandOffset    int64
}

func declaredGeometry(width, height, bands int) ([]bandDesc, error) {
	d := bandDesc{
		width: width, height: height,
		sampleType:  dtype.Byte,
		pixelStride: int32(bands),
		lineStride:  int64(width * bands),
		imageOffset: 0,
		bandOffset:  1,
	}
	out := make([]bandDesc, bands)
	for i := range out {
		out[i] = d
	}
	return out, nil
}

// probeBMP derives declared geometry from a BMP file header: the pixel
// data offset (bfOffBits) and the image dimensions, read through
// image.DecodeConfig plus the raw bfOffBits field x/image/bmp does not
// surface on its own.
func probeBMP(path string, bands int) ([]bandDesc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening BMP: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding BMP header: %w", err)
	}

	header := make([]byte, 54)
	if _, err := f.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("reading BMP header: %w", err)
	}
	offBits, err := rawbinary.Uint32LE(header, 10)
	if err != nil {
		return nil, fmt.Errorf("parsing bfOffBits: %w", err)
	}

	d := bandDesc{
		width: cfg.Width, height: cfg.Height,
		sampleType:  dtype.Byte,
		pixelStride: 3,
		lineStride:  int64((cfg.Width*3 + 3) &^ 3), // BMP rows pad to a 4-byte boundary
		imageOffset: uint64(offBits),
		bandOffset:  1,
	}
	out := make([]bandDesc, bands)
	for i := range out {
		out[i] = d
	}
	return out, nil
}
