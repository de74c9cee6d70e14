package normalizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	pngMIME = "image/png"

	// MaxImagePixels bounds the width*height a PNG header may declare. It
	// is checked before any pixel buffer is allocated.
	MaxImagePixels = 4096 * 4096
)

var (
	errEmptyImage    = errors.New("image has no pixels")
	errImageTooLarge = errors.New("image is too large")
)

// normalizeImage turns a PNG into 224*224 grayscale intensities in [0,1].
// Pixels are resampled with draw.BiLinear after alpha is discarded; each
// output value is the unweighted mean of R, G and B divided by 255.
func normalizeImage(ctx context.Context, in ImageFile) (Tensor, error) {
	if baseMediaType(in.MIME) != pngMIME {
		return Tensor{}, unsupportedMIME(in.MIME, pngMIME)
	}

	t, err := processPNG(ctx, in.Data)
	if err != nil {
		return Tensor{}, &Error{Kind: DecodeFailure, MIME: in.MIME, Err: err}
	}

	return t, nil
}

func processPNG(ctx context.Context, data []byte) (Tensor, error) {
	img, err := decodePNG(ctx, data)
	if err != nil {
		return Tensor{}, err
	}

	rgba, err := opaque(ctx, img)
	if err != nil {
		return Tensor{}, err
	}
	if err := ctx.Err(); err != nil {
		return Tensor{}, err
	}

	scaled := resample(rgba)
	if err := ctx.Err(); err != nil {
		return Tensor{}, err
	}

	return grayscale(scaled), nil
}

// ctxReader fails every Read once ctx is done, which stops png.Decode at
// its next read.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}

func decodePNG(ctx context.Context, data []byte) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", errImageTooLarge, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, err := png.Decode(ctxReader{ctx: ctx, r: bytes.NewReader(data)})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, errEmptyImage
	}

	return img, nil
}

// opaque copies src's straight RGB values into a fully opaque RGBA image
// anchored at the origin. It stops between rows once ctx is done.
func opaque(ctx context.Context, src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			c, _ := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = 0xff
		}
	}

	return dst, nil
}

func resample(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, ImageSize, ImageSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

func grayscale(img *image.RGBA) Tensor {
	data := make([]float64, ImageLen)

	for y := 0; y < ImageSize; y++ {
		for x := 0; x < ImageSize; x++ {
			i := img.PixOffset(x, y)
			sum := float64(img.Pix[i]) + float64(img.Pix[i+1]) + float64(img.Pix[i+2])
			data[y*ImageSize+x] = sum / 3 / 255
		}
	}

	return Tensor{Shape: []int{ImageLen}, Data: data}
}
