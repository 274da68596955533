package gielisaux

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	captionOnce sync.Once
	captionFont *truetype.Font
	captionErr  error
)

func loadCaptionFont() (*truetype.Font, error) {
	captionOnce.Do(func() {
		captionFont, captionErr = truetype.Parse(goregular.TTF)
	})
	return captionFont, captionErr
}

// DrawCaption writes a single line of text in the bottom left corner of img.
// The text height is a fraction of the image height.
func DrawCaption(img draw.Image, text string) error {
	if text == "" {
		return nil
	}
	ttf, err := loadCaptionFont()
	if err != nil {
		return err
	}
	bb := img.Bounds()
	size := max(8, float64(bb.Dy())/32)
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	metrics := face.Metrics()
	margin := fixed.I(int(size / 2))
	dot := fixed.Point26_6{
		X: fixed.I(bb.Min.X) + margin,
		Y: fixed.I(bb.Max.Y) - margin - metrics.Descent,
	}
	if dot.Y-metrics.Ascent < fixed.I(bb.Min.Y) {
		return errors.New("image too short for caption")
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
	return nil
}
