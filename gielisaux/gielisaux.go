package gielisaux

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"time"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gielis"
	"github.com/soypat/gielis/gleval"
	"github.com/soypat/gielis/glrender"
	"golang.org/x/image/draw"
)

// RenderConfig selects the outputs produced by [Render] and how they are drawn.
// Nil outputs are skipped.
type RenderConfig struct {
	STLOutput io.Writer
	PNGOutput io.Writer
	SVGOutput io.Writer
	// Resolution is the number of perimeter vertices of the fan mesh.
	// If zero [gielis.DefaultResolution] is used.
	Resolution int
	// ImageHeight of the PNG output in pixels. Width is chosen to preserve
	// the aspect ratio of the curve. Defaults to 512.
	ImageHeight int
	// Supersample renders the PNG this many times larger before scaling it down
	// to smooth the outline edge. Values below 2 disable supersampling.
	Supersample int
	// ColorConversion maps signed distance to pixel color. If nil
	// the conversion is chosen by Colors.
	ColorConversion func(float32) color.Color
	// Colors names the PNG color style when ColorConversion is nil:
	// "iq" (default), "bw" or "gradient". See [ColorConversionByName].
	Colors string
	// Caption draws the curve parameters on the PNG output.
	Caption bool
	Silent  bool
}

// Render is an auxiliary function to aid users in getting a superformula leaf
// written to disk quickly. Applications with other needs should use the
// gielis, gleval and glrender packages directly.
func Render(p gielis.Params, cfg RenderConfig) (err error) {
	if cfg.STLOutput == nil && cfg.PNGOutput == nil && cfg.SVGOutput == nil {
		return errors.New("Render requires output parameter in config")
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	if err := p.Validate(); err != nil {
		log("curve may contain non-finite points:", err)
	}
	res := cfg.Resolution
	if res == 0 {
		res = gielis.DefaultResolution
	}

	if cfg.STLOutput != nil {
		watch := stopwatch()
		mesh := gielis.FanMesh(p, res)
		triangles, err := glrender.RenderAll(glrender.NewMeshRenderer(mesh), nil)
		if err != nil {
			return fmt.Errorf("rendering triangles: %s", err)
		}
		total := len(triangles)
		triangles = finiteTriangles(triangles)
		if dropped := total - len(triangles); dropped > 0 {
			log("omitted", dropped, "non-finite triangles,", percent(dropped, total), "percent of mesh")
		}
		log("generated", len(mesh.Vertices), "vertices and", len(triangles), "triangles in", watch())
		watch = stopwatch()
		_, err = glrender.WriteBinarySTL(cfg.STLOutput, triangles)
		if err != nil {
			return fmt.Errorf("writing STL file: %s", err)
		}
		log("wrote", outputName(cfg.STLOutput, "STL"), "in", watch())
	}

	if cfg.SVGOutput != nil {
		watch := stopwatch()
		err = glrender.WriteSVG(cfg.SVGOutput, gielis.Outline(p, res), glrender.SVGConfig{
			Title:  paramsString(p),
			Spokes: true,
		})
		if err != nil {
			return fmt.Errorf("writing SVG file: %s", err)
		}
		log("wrote", outputName(cfg.SVGOutput, "SVG"), "in", watch())
	}

	if cfg.PNGOutput != nil {
		watch := stopwatch()
		sdf, err := gleval.NewRadial(p, max(res, 1024))
		if err != nil {
			return fmt.Errorf("instantiating SDF: %s", err)
		}
		height := cfg.ImageHeight
		if height == 0 {
			height = 512
		}
		conv := cfg.ColorConversion
		if conv == nil {
			sz := sdf.Bounds().Size()
			conv, err = ColorConversionByName(cfg.Colors, math.Hypot(sz.X, sz.Y))
			if err != nil {
				return err
			}
		}
		img, err := RenderImage(sdf, height, cfg.Supersample, conv)
		if err != nil {
			return err
		}
		if cfg.Caption {
			err = DrawCaption(img, paramsString(p))
			if err != nil {
				return err
			}
		}
		log("evaluated SDF", sdf.Evaluations(), "times in", watch())
		watch = stopwatch()
		err = png.Encode(cfg.PNGOutput, img)
		if err != nil {
			return fmt.Errorf("encoding PNG: %s", err)
		}
		log("wrote", outputName(cfg.PNGOutput, "PNG"), "in", watch())
	}
	return nil
}

// RenderSupershape writes the 3D supershape built from a longitudinal and
// latitudinal curve as a binary STL. Resolutions follow [gielis.SupershapeMesh].
func RenderSupershape(lon, lat gielis.Params, resLon, resLat int, stl io.Writer) error {
	mesh := gielis.SupershapeMesh(lon, lat, resLon, resLat)
	triangles, err := glrender.RenderAll(glrender.NewMeshRenderer(mesh), nil)
	if err != nil {
		return err
	}
	triangles = finiteTriangles(triangles)
	if len(triangles) == 0 {
		return errors.New("supershape has no finite triangles")
	}
	_, err = glrender.WriteBinarySTL(stl, triangles)
	return err
}

// RenderImage rasterizes a 2D SDF into an image of the given height. The image width
// is sized automatically to preserve the SDF aspect ratio. If supersample is 2 or more
// the SDF is rendered at a larger size and scaled down with Catmull-Rom interpolation.
// If a nil color conversion function is passed then one is automatically chosen.
func RenderImage(sdf gleval.SDF2, height, supersample int, colorConversion func(float32) color.Color) (*image.RGBA, error) {
	if height <= 0 {
		return nil, errors.New("image height must be positive")
	}
	bb := sdf.Bounds()
	sz := bb.Size()
	if !(sz.X > 0 && sz.Y > 0) {
		return nil, errors.New("empty SDF bounds")
	}
	if colorConversion == nil {
		colorConversion = ColorConversionInigoQuilez(math.Hypot(sz.X, sz.Y) / 3)
	}
	supersample = max(supersample, 1)
	width := max(1, int(float32(height)*sz.X/sz.Y))
	big := image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample))
	renderer, err := glrender.NewImageRendererSDF2(max(4096, big.Rect.Dx(), big.Rect.Dy()), colorConversion)
	if err != nil {
		return nil, err
	}
	err = renderer.Render(sdf, big, nil)
	if err != nil {
		return nil, err
	}
	if supersample == 1 {
		return big, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(img, img.Rect, big, big.Rect, draw.Src, nil)
	return img, nil
}

func finiteTriangles(triangles []ms3.Triangle) []ms3.Triangle {
	n := 0
	for _, t := range triangles {
		if finite(t[0]) && finite(t[1]) && finite(t[2]) {
			triangles[n] = t
			n++
		}
	}
	return triangles[:n]
}

func finite(v ms3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

func paramsString(p gielis.Params) string {
	return fmt.Sprintf("a=%g b=%g m=%g n1=%g n2=%g n3=%g", p.A, p.B, p.M, p.N1, p.N2, p.N3)
}

func outputName(w io.Writer, fallback string) string {
	if fp, ok := w.(*os.File); ok {
		return fp.Name()
	}
	return fallback
}

func percent(num, denom int) float32 {
	return math.Trunc(10000*float32(num)/float32(denom)) / 100
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
