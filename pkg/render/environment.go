package render

import (
	"math"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// Environment is image-based ambient lighting, stored as the nine order-2
// spherical harmonic coefficients of an equirectangular radiance map.
type Environment struct {
	SH [9]math3d.Vec3
}

// UniformEnvironment returns an environment that emits radiance l from every
// direction.
func UniformEnvironment(l math3d.Vec3) *Environment {
	env := &Environment{}
	env.SH[0] = l.Scale(4 * math.Pi * shY00)
	return env
}

// maxProjectWidth caps the number of columns sampled when projecting a map.
const maxProjectWidth = 128

// NewEnvironment projects an equirectangular HDR map onto spherical harmonics.
func NewEnvironment(img *HDRImage) *Environment {
	env := &Environment{}
	if img == nil || img.Width == 0 || img.Height == 0 {
		return env
	}

	step := max(1, img.Width/maxProjectWidth)
	cols := (img.Width + step - 1) / step
	rows := (img.Height + step - 1) / step
	dTheta := math.Pi / float64(rows)
	dPhi := 2 * math.Pi / float64(cols)

	for ry := range rows {
		y := min(ry*step+step/2, img.Height-1)
		// Solid angle of one cell shrinks toward the poles.
		lat := (0.5 - (float64(ry)+0.5)/float64(rows)) * math.Pi
		dOmega := math.Cos(lat) * dTheta * dPhi

		for rx := range cols {
			x := min(rx*step+step/2, img.Width-1)
			dir := EquirectDirection(x, y, img.Width, img.Height)
			basis := shBasis(dir)
			l := img.At(x, y).Scale(dOmega)
			for i := range env.SH {
				env.SH[i] = env.SH[i].Add(l.Scale(basis[i]))
			}
		}
	}
	return env
}

// Irradiance returns the cosine-weighted irradiance arriving at a surface
// with normal n.
func (e *Environment) Irradiance(n math3d.Vec3) math3d.Vec3 {
	basis := shBasis(n)
	var out math3d.Vec3
	for i := range e.SH {
		out = out.Add(e.SH[i].Scale(shBand[i] * basis[i]))
	}
	return out.Max(math3d.Zero3())
}

// Diffuse returns the Lambertian radiance reflected toward the viewer by a
// surface of the given albedo.
func (e *Environment) Diffuse(n, albedo math3d.Vec3) math3d.Vec3 {
	return albedo.Mul(e.Irradiance(n)).Scale(1 / math.Pi)
}

const shY00 = 0.282095

// Convolution weights of the clamped cosine lobe per band.
var shBand = [9]float64{
	math.Pi,
	2 * math.Pi / 3, 2 * math.Pi / 3, 2 * math.Pi / 3,
	math.Pi / 4, math.Pi / 4, math.Pi / 4, math.Pi / 4, math.Pi / 4,
}

func shBasis(d math3d.Vec3) [9]float64 {
	x, y, z := d.X, d.Y, d.Z
	return [9]float64{
		shY00,
		0.488603 * y,
		0.488603 * z,
		0.488603 * x,
		1.092548 * x * y,
		1.092548 * y * z,
		0.315392 * (3*z*z - 1),
		1.092548 * x * z,
		0.546274 * (x*x - y*y),
	}
}
