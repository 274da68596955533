package gielisaux

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/gielis"
)

// Config is the TOML document read by the leaf and supershape programs.
//
//	[leaf]
//	a = 1.0
//	b = 1.0
//	m = 5.0
//	n1 = 2.0
//	n2 = 7.0
//	n3 = 7.0
//	resolution = 128
//
//	[output]
//	stl = "leaf.stl"
//	png = "leaf.png"
type Config struct {
	Leaf       Leaf              `toml:"leaf"`
	Output     OutputConfig      `toml:"output"`
	Supershape *SupershapeConfig `toml:"supershape"`
}

// OutputConfig names output files. Empty filenames are not written.
type OutputConfig struct {
	STL         string `toml:"stl"`
	PNG         string `toml:"png"`
	SVG         string `toml:"svg"`
	Height      int    `toml:"height"`
	Supersample int    `toml:"supersample"`
	Colors      string `toml:"colors"`
	Caption     bool   `toml:"caption"`
	Silent      bool   `toml:"silent"`
}

// SupershapeConfig describes a 3D supershape from two superformula curves.
type SupershapeConfig struct {
	Longitude           gielis.Params `toml:"longitude"`
	Latitude            gielis.Params `toml:"latitude"`
	LongitudeResolution int           `toml:"longitude_resolution"`
	LatitudeResolution  int           `toml:"latitude_resolution"`
	STL                 string        `toml:"stl"`
}

// DefaultConfig returns the configuration used for keys absent from a document.
func DefaultConfig() Config {
	return Config{
		Leaf: Leaf{
			Params:     gielis.DefaultParams(),
			Resolution: gielis.DefaultResolution,
		},
		Output: OutputConfig{
			Height:      512,
			Supersample: 2,
		},
	}
}

// LoadConfig decodes a TOML document on top of [DefaultConfig].
// Unknown keys are reported as errors.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	if cfg.Output.Height < 0 {
		return Config{}, errors.New("negative output height")
	}
	if _, err := ColorConversionByName(cfg.Output.Colors, 1); err != nil {
		return Config{}, err
	}
	if ss := cfg.Supershape; ss != nil {
		if ss.LongitudeResolution == 0 {
			ss.LongitudeResolution = gielis.DefaultResolution
		}
		if ss.LatitudeResolution == 0 {
			ss.LatitudeResolution = gielis.DefaultResolution / 2
		}
	}
	return cfg, nil
}

// RenderConfig returns the settings of the output section. Writers are left
// for the caller to open.
func (oc OutputConfig) RenderConfig(resolution int) RenderConfig {
	return RenderConfig{
		Resolution:  resolution,
		ImageHeight: oc.Height,
		Supersample: oc.Supersample,
		Colors:      oc.Colors,
		Caption:     oc.Caption,
		Silent:      oc.Silent,
	}
}
