package render

import (
	"github.com/taigrr/vitrine/pkg/math3d"
)

// ToneMapping selects the curve that compresses linear radiance into [0,1].
type ToneMapping int

const (
	ToneMappingNone       ToneMapping = iota // Clamp only
	ToneMappingLinear                        // Exposure scale, then clamp
	ToneMappingACESFilmic                    // ACES RRT+ODT fit
)

// ParseToneMapping maps a config name to a ToneMapping. Unknown names
// select ACES filmic.
func ParseToneMapping(name string) ToneMapping {
	switch name {
	case "none":
		return ToneMappingNone
	case "linear":
		return ToneMappingLinear
	default:
		return ToneMappingACESFilmic
	}
}

// Apply maps a linear color through the curve with the given exposure.
func (tm ToneMapping) Apply(c math3d.Vec3, exposure float64) math3d.Vec3 {
	switch tm {
	case ToneMappingLinear:
		c = c.Scale(exposure)
	case ToneMappingACESFilmic:
		c = acesFilmic(c.Scale(exposure / 0.6))
	}
	return c.Max(math3d.Zero3()).Min(math3d.V3(1, 1, 1))
}

func acesFilmic(c math3d.Vec3) math3d.Vec3 {
	// sRGB => XYZ => D65_2_D60 => AP1 => RRT_SAT
	c = math3d.V3(
		0.59719*c.X+0.35458*c.Y+0.04823*c.Z,
		0.07600*c.X+0.90834*c.Y+0.01566*c.Z,
		0.02840*c.X+0.13383*c.Y+0.83777*c.Z,
	)
	c = math3d.V3(rrtAndODTFit(c.X), rrtAndODTFit(c.Y), rrtAndODTFit(c.Z))
	// ODT_SAT => XYZ => D60_2_D65 => sRGB
	return math3d.V3(
		1.60475*c.X-0.53108*c.Y-0.07367*c.Z,
		-0.10208*c.X+1.10813*c.Y-0.00605*c.Z,
		-0.00327*c.X-0.07276*c.Y+1.07602*c.Z,
	)
}

func rrtAndODTFit(v float64) float64 {
	a := v*(v+0.0245786) - 0.000090537
	b := v*(0.983729*v+0.4329510) + 0.238081
	return a / b
}
