package level

import "fmt"

// Orientation of a wall segment.
type Orientation int

// Wall orientations.
const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Wall is a straight run of at least two wall cells.
type Wall struct {
	Origin      Position // top-most, left-most cell
	Orientation Orientation
	Length      int // number of cells
}

// Cells returns the cells covered by a wall.
func (w Wall) Cells() []Position {
	cells := make([]Position, w.Length)
	for i := range cells {
		if w.Orientation == Horizontal {
			cells[i] = Position{w.Origin.Row, w.Origin.Col + i}
		} else {
			cells[i] = Position{w.Origin.Row + i, w.Origin.Col}
		}
	}
	return cells
}

func (w Wall) String() string {
	return fmt.Sprintf("<%s wall at %s, length %d>", w.Orientation, w.Origin, w.Length)
}

// wallFinder groups wall cells into maximal horizontal and vertical runs.
// Cells are expected to be visited in row-major order, thus every run is
// detected at its first cell.
type wallFinder struct {
	grid  [][]byte
	hseen map[Position]bool
	vseen map[Position]bool
	walls []Wall
}

func newWallFinder(grid [][]byte) *wallFinder {
	return &wallFinder{
		grid:  grid,
		hseen: make(map[Position]bool),
		vseen: make(map[Position]bool),
	}
}

// extend visits a wall cell and records the runs starting at p. It reports
// whether p belongs to any run.
func (wf *wallFinder) extend(p Position) bool {
	proper := false
	if wf.hseen[p] {
		proper = true
	} else if n := wf.run(p, 0, 1, wf.hseen); n > 1 {
		wf.walls = append(wf.walls, Wall{Origin: p, Orientation: Horizontal, Length: n})
		proper = true
	}
	if wf.vseen[p] {
		proper = true
	} else if n := wf.run(p, 1, 0, wf.vseen); n > 1 {
		wf.walls = append(wf.walls, Wall{Origin: p, Orientation: Vertical, Length: n})
		proper = true
	}
	if !proper {
		tracer().Debugf("isolated wall cell at %s", p)
	}
	return proper
}

// run marks the cells of the run starting at p as seen and returns its length.
func (wf *wallFinder) run(p Position, dr, dc int, seen map[Position]bool) int {
	n := 0
	for r, c := p.Row, p.Col; r < len(wf.grid) && c < len(wf.grid[r]); r, c = r+dr, c+dc {
		if wf.grid[r][c] != WallCell {
			break
		}
		seen[Position{r, c}] = true
		n++
	}
	return n
}
