package fluid

// Neighbor holds a nearby particle with precomputed pair data so the passes
// never redo the subtraction and distance in the hot loop.
type Neighbor struct {
	Index  int
	Delta  Vec3 // position[i] - position[j], i being the query origin
	DistSq float32
}

// uniformGrid is a cell-based spatial index over particle indices.
// Cells are sized to the smoothing radius, so a radius query only has to
// visit the 3×3×3 block around the origin cell.
type uniformGrid struct {
	cellSize float32
	origin   Vec3
	nx, ny, nz int
	cells    [][]int32
}

// newUniformGrid builds an index covering the given box. Positions outside
// the box clamp to the border cells.
func newUniformGrid(boxMin, boxMax Vec3, cellSize float32) *uniformGrid {
	size := boxMax.Sub(boxMin)
	nx := int(size.X/cellSize) + 1
	ny := int(size.Y/cellSize) + 1
	nz := int(size.Z/cellSize) + 1

	cells := make([][]int32, nx*ny*nz)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &uniformGrid{
		cellSize: cellSize,
		origin:   boxMin,
		nx:       nx,
		ny:       ny,
		nz:       nz,
		cells:    cells,
	}
}

// clear drops all particles but keeps the per-cell capacity.
func (g *uniformGrid) clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// rebuild reindexes every particle. Must run single-threaded between passes.
func (g *uniformGrid) rebuild(positions []Vec3) {
	g.clear()
	for i, p := range positions {
		g.cells[g.cellIndex(p)] = append(g.cells[g.cellIndex(p)], int32(i))
	}
}

// queryInto appends all particles j ≠ i with |p_j - origin|² < radiusSq to
// dst and returns the updated slice. Reuse dst across calls to avoid
// allocations.
func (g *uniformGrid) queryInto(dst []Neighbor, origin Vec3, radiusSq float32, exclude int, positions []Vec3) []Neighbor {
	cx, cy, cz := g.cellCoords(origin)

	for dz := -1; dz <= 1; dz++ {
		z := cz + dz
		if z < 0 || z >= g.nz {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			y := cy + dy
			if y < 0 || y >= g.ny {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				x := cx + dx
				if x < 0 || x >= g.nx {
					continue
				}
				for _, j := range g.cells[(z*g.ny+y)*g.nx+x] {
					if int(j) == exclude {
						continue
					}
					d := origin.Sub(positions[j])
					distSq := d.LenSq()
					if distSq < radiusSq {
						dst = append(dst, Neighbor{Index: int(j), Delta: d, DistSq: distSq})
					}
				}
			}
		}
	}

	return dst
}

func (g *uniformGrid) cellCoords(p Vec3) (x, y, z int) {
	x = int((p.X - g.origin.X) / g.cellSize)
	y = int((p.Y - g.origin.Y) / g.cellSize)
	z = int((p.Z - g.origin.Z) / g.cellSize)

	x = clampInt(x, 0, g.nx-1)
	y = clampInt(y, 0, g.ny-1)
	z = clampInt(z, 0, g.nz-1)
	return
}

func (g *uniformGrid) cellIndex(p Vec3) int {
	x, y, z := g.cellCoords(p)
	return (z*g.ny+y)*g.nx + x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
