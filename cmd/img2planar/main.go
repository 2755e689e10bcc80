// seehuhn.de/go/planar - planar raster devices and color image rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Img2planar renders a PNG or JPEG image onto a planar raster device and
// writes the device contents as a TIFF file.
//
// Usage:
//
//	img2planar [options] input.png output.tiff
//
// Use "-" as the output file name to write to standard output.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/planar"
	"seehuhn.de/go/planar/cms"
	"seehuhn.de/go/planar/halftone"
	"seehuhn.de/go/planar/scratch"
	"seehuhn.de/go/planar/memdev"
	"seehuhn.de/go/planar/render"
)

type options struct {
	model     string
	bits      int
	scale     float64
	rotate    bool
	threshold bool
	bayer     int
	gamma     float64
}

func main() {
	opt := &options{}
	flag.StringVar(&opt.model, "model", "rgb", "device color model (gray, rgb or cmyk)")
	flag.IntVar(&opt.bits, "bits", 8, "bits per device plane (1, 2, 4 or 8)")
	flag.Float64Var(&opt.scale, "scale", 1, "scale factor from image to device pixels")
	flag.BoolVar(&opt.rotate, "rotate", false, "rotate the image by 90 degrees")
	flag.BoolVar(&opt.threshold, "threshold", false, "use the threshold renderer where possible")
	flag.IntVar(&opt.bayer, "bayer", 3, "log2 of the dither matrix size")
	flag.Float64Var(&opt.gamma, "gamma", 1, "transfer function exponent")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.png output.tiff\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		planar.SetLogger(slog.New(h))
	}

	err := run(flag.Arg(0), flag.Arg(1), opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "img2planar: %v\n", err)
		os.Exit(1)
	}
}

func run(inName, outName string, opt *options) error {
	src, err := readImage(inName)
	if err != nil {
		return err
	}

	var out io.Writer
	if outName == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write TIFF data to a terminal")
		}
		out = os.Stdout
	} else {
		f, err := os.Create(outName)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	space, planes, err := deviceLayout(opt.model, opt.bits)
	if err != nil {
		return err
	}

	b := src.Bounds()
	iw, ih := b.Dx(), b.Dy()
	dw := int(float64(iw)*opt.scale + 0.5)
	dh := int(float64(ih)*opt.scale + 0.5)
	m := matrix.Scale(opt.scale, opt.scale)
	if opt.rotate {
		dw, dh = dh, dw
		m = matrix.Matrix{0, opt.scale, opt.scale, 0, 0, 0}
	}
	if dw < 1 || dh < 1 {
		return fmt.Errorf("device size %dx%d is empty", dw, dh)
	}

	dev := memdev.New(dw, dh, len(planes)*opt.bits)
	if err := dev.SetPlanes(planes); err != nil {
		return err
	}
	arena := &scratch.Arena{}
	dev.SetArena(arena)
	if err := dev.Open(); err != nil {
		return err
	}
	// Start from a blank page.
	white := make([]planar.ColorValue, len(planes))
	if space != cms.SpaceCMYK {
		for i := range white {
			white[i] = planar.MaxColorValue
		}
	}
	if err := dev.FillRectangle(0, 0, dw, dh, dev.EncodeColor(white)); err != nil {
		return err
	}

	cm, err := cms.NewManager(cms.BuiltinProfile(space))
	if err != nil {
		return err
	}
	order, err := halftone.Bayer(opt.bayer)
	if err != nil {
		return err
	}
	p := &render.Params{
		Width:            iw,
		Height:           ih,
		BitsPerComponent: 8,
		Matrix:           m,
		Screen:           halftone.NewScreen(order, len(planes)),
		FastThreshold:    opt.threshold,
	}
	if opt.gamma != 1 {
		t := halftone.Gamma(opt.gamma)
		for range planes {
			p.Transfer = append(p.Transfer, t)
		}
	}
	data := samples(src, p)

	e, err := render.NewEnum(dev, p, cm)
	if err != nil {
		return err
	}
	e.SetArena(arena)
	_, err = e.PlaneData([][]byte{data}, ih)
	if err != nil {
		e.Close()
		used := e.Used()
		return fmt.Errorf("row %d, sample %d: %w", used.Y, used.X, err)
	}
	if err := e.Close(); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, dw, dh))
	rgb := make([]byte, 3*dw*dh)
	gp := &memdev.GetBitsParams{
		Options: memdev.ColorsRGB | memdev.Depth8 | memdev.AlphaNone |
			memdev.PackingChunky | memdev.ReturnCopy,
		Data: [][]byte{rgb},
	}
	if err := dev.GetBitsRectangle(0, 0, dw, dh, gp); err != nil {
		return err
	}
	for i := range dw * dh {
		copy(img.Pix[4*i:4*i+3], rgb[3*i:3*i+3])
		img.Pix[4*i+3] = 0xff
	}

	err = tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	if err != nil {
		return err
	}

	pr := message.NewPrinter(language.English)
	pr.Fprintf(os.Stderr, "%s: %d×%d samples rendered to %d×%d %s pixels using the %s renderer\n",
		inName, iw, ih, dw, dh, space, e.Class())
	pr.Fprintf(os.Stderr, "peak scratch memory: %d bytes\n", arena.Peak())
	return nil
}

func readImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// deviceLayout returns the color space and the plane layout of the
// device.  Plane 0 holds the most significant bits.
func deviceLayout(model string, bits int) (cms.ColorSpace, []memdev.PlaneDesc, error) {
	var space cms.ColorSpace
	switch model {
	case "gray":
		space = cms.SpaceGray
	case "rgb":
		space = cms.SpaceRGB
	case "cmyk":
		space = cms.SpaceCMYK
	default:
		return 0, nil, fmt.Errorf("unknown color model %q", model)
	}
	switch bits {
	case 1, 2, 4, 8:
	default:
		return 0, nil, fmt.Errorf("unsupported plane depth %d", bits)
	}

	n := space.NumComponents()
	planes := make([]memdev.PlaneDesc, n)
	for i := range planes {
		planes[i] = memdev.PlaneDesc{Depth: bits, Shift: (n - 1 - i) * bits}
	}
	return space, planes, nil
}

// samples returns the pixels of img as chunky 8-bit samples and sets the
// number of components in p.  Gray images keep one component, all other
// images are converted to RGB.
func samples(img image.Image, p *render.Params) []byte {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		p.NumComponents = 1
		data := make([]byte, 0, b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := g.PixOffset(b.Min.X, y)
			data = append(data, g.Pix[i:i+b.Dx()]...)
		}
		return data
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	p.NumComponents = 3
	data := make([]byte, 0, 3*b.Dx()*b.Dy())
	for i := 0; i < len(rgba.Pix); i += 4 {
		data = append(data, rgba.Pix[i:i+3]...)
	}
	return data
}
