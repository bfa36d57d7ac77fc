package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
)

// Region is a crop rectangle in natural image pixels.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Complete reports whether the region describes a non-empty area.
func (r Region) Complete() bool { return r.Width > 0 && r.Height > 0 }

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

var errEmptyCrop = errors.New("crop region is empty")

// Crop cuts region out of an encoded image and re-encodes it in the same format.
// The region is clipped to the image bounds.
func Crop(data []byte, region Region) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	area := region.rect().Add(src.Bounds().Min).Intersect(src.Bounds())
	if area.Empty() {
		return nil, errEmptyCrop
	}

	dst := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(dst, dst.Bounds(), src, area.Min, draw.Src)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Sniff returns the image format name and dimensions of data.
func Sniff(data []byte) (string, image.Point, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Point{}, err
	}
	return format, image.Pt(cfg.Width, cfg.Height), nil
}
