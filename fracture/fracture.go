// Package fracture implements Voronoi-based destruction for rigid objects.
// An object's footprint is partitioned into regions around impact sites;
// a stress model decides which pieces detach as independent rigid fragments.
package fracture

import (
	"math/rand"

	"github.com/rill-engine/rill/fluid"
)

// footprintSamples is the lattice resolution used to bound Voronoi regions.
const footprintSamples = 24

// Fragment is a detached piece of a fractured object.
type Fragment struct {
	Position fluid.Vec3
	Size     fluid.Vec3
	Mass     float32
	Velocity fluid.Vec3
}

// System generates fracture patterns.
type System struct {
	rng      *rand.Rand
	strength float32
	auxSites int
}

// NewSystem creates a fracture system. Strength scales the stress threshold;
// auxSites is the number of extra random Voronoi sites added per fracture
// for a more natural pattern.
func NewSystem(rng *rand.Rand, strength float32, auxSites int) *System {
	return &System{rng: rng, strength: strength, auxSites: auxSites}
}

// region accumulates the XZ bounds of one Voronoi cell.
type region struct {
	minX, maxX float32
	minZ, maxZ float32
	hit        bool
}

// Fracture partitions the object's XZ footprint into Voronoi regions around
// the impact points (plus auxiliary random sites), extrudes each region
// through the object's height, and returns the pieces that break off.
func (s *System) Fracture(position, size fluid.Vec3, impacts []fluid.Vec3) []Fragment {
	sites := make([]fluid.Vec3, 0, len(impacts)+s.auxSites)
	sites = append(sites, impacts...)
	for i := 0; i < s.auxSites; i++ {
		sites = append(sites, fluid.Vec3{
			X: position.X + (s.rng.Float32()*0.6-0.3)*size.X,
			Y: position.Y + (s.rng.Float32()*0.6-0.3)*size.Y,
			Z: position.Z + (s.rng.Float32()*0.6-0.3)*size.Z,
		})
	}
	if len(sites) == 0 {
		return nil
	}

	minCorner := position.Sub(size.Scale(0.5))
	maxCorner := position.Add(size.Scale(0.5))

	// Nearest-site assignment over a sample lattice of the footprint gives
	// each region's bounding box without building cell geometry.
	regions := make([]region, len(sites))
	stepX := (maxCorner.X - minCorner.X) / footprintSamples
	stepZ := (maxCorner.Z - minCorner.Z) / footprintSamples

	for ix := 0; ix < footprintSamples; ix++ {
		x := minCorner.X + (float32(ix)+0.5)*stepX
		for iz := 0; iz < footprintSamples; iz++ {
			z := minCorner.Z + (float32(iz)+0.5)*stepZ

			best := 0
			bestDist := float32(0)
			for si, site := range sites {
				dx := x - site.X
				dz := z - site.Z
				d := dx*dx + dz*dz
				if si == 0 || d < bestDist {
					best = si
					bestDist = d
				}
			}

			r := &regions[best]
			if !r.hit {
				r.minX, r.maxX = x, x
				r.minZ, r.maxZ = z, z
				r.hit = true
			} else {
				if x < r.minX {
					r.minX = x
				}
				if x > r.maxX {
					r.maxX = x
				}
				if z < r.minZ {
					r.minZ = z
				}
				if z > r.maxZ {
					r.maxZ = z
				}
			}
		}
	}

	var fragments []Fragment
	for _, r := range regions {
		if !r.hit {
			continue
		}

		pieceSize := fluid.Vec3{
			X: r.maxX - r.minX + stepX,
			Y: size.Y,
			Z: r.maxZ - r.minZ + stepZ,
		}
		pieceCenter := fluid.Vec3{
			X: (r.minX + r.maxX) * 0.5,
			Y: position.Y,
			Z: (r.minZ + r.maxZ) * 0.5,
		}
		volume := pieceSize.X * pieceSize.Y * pieceSize.Z

		if !s.detaches(volume) {
			continue
		}

		fragments = append(fragments, Fragment{
			Position: pieceCenter,
			Size:     pieceSize,
			Mass:     volume * 1000, // water-density mass model
			Velocity: fluid.Vec3{
				X: s.rng.Float32()*4 - 2,
				Y: s.rng.Float32()*4 - 2,
				Z: s.rng.Float32()*4 - 2,
			},
		})
	}

	return fragments
}

// detaches decides whether a piece breaks off. Small pieces always detach;
// medium pieces detach when a random stress factor exceeds the material
// strength (normalized so strength 100 gives even odds); large pieces hold.
func (s *System) detaches(volume float32) bool {
	if volume < 0.1 {
		return true
	}
	if volume < 0.5 {
		factor := 0.5 + s.rng.Float32()
		return factor < s.strength/100
	}
	return false
}
