package utils

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ResizeOptions controls serve-time image resizing.
type ResizeOptions struct {
	Width  int
	Height int
	Fit    string // "contain" (default), "cover", or "fill"
}

func (o ResizeOptions) IsEmpty() bool {
	return o.Width == 0 && o.Height == 0
}

// ResizeImage resizes an image stream to the requested dimensions, keeping
// the aspect ratio unless fit says otherwise, and re-encodes it as PNG.
func ResizeImage(reader io.Reader, opts ResizeOptions) ([]byte, error) {
	src, err := imaging.Decode(reader)
	if err != nil {
		return nil, err
	}

	srcBounds := src.Bounds()
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = srcBounds.Dx() * height / srcBounds.Dy()
	} else if height == 0 {
		height = srcBounds.Dy() * width / srcBounds.Dx()
	}

	var resized *image.NRGBA
	switch opts.Fit {
	case "cover":
		resized = imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	case "fill":
		resized = imaging.Resize(src, width, height, imaging.Lanczos)
	default:
		resized = imaging.Fit(src, width, height, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
