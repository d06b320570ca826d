/*
Package level loads herbert puzzle levels.

A level is a rectangular grid of cells, followed by the points a solution
is worth and the byte budget of the level:

    .......
    ...w...
    ...g...
    ..*w*..
    ..*u*..
    ..***..
    1000
    10

Cells are given by one character each:

    .   empty cell
    *   wall
    g   gray button
    w   white button
    u   robot, facing up (r, d, l for right, down, left)

Every row is terminated by a newline, as is the line holding the points.
The byte budget may be the last line of input, with or without a newline.
Walls must be at least two cells long, horizontally or vertically. Exactly
one robot must be present.

Levels are immutable once loaded. A level is played by instantiating a
simulation environment for it (see package sim).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package level

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/herbert"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'herbert.level'.
func tracer() tracing.Trace {
	return tracing.Select("herbert.level")
}

// Cell symbols of the level format.
const (
	Empty       = '.'
	WallCell    = '*'
	GrayButton  = 'g'
	WhiteButton = 'w'
)

// Default dimensions of a level.
const (
	DefaultRows = 25
	DefaultCols = 25
)

// Limits for points and byte budget (exclusive upper bounds).
const (
	PointsLimit   = 1000000
	MaxBytesLimit = 1000
)

// --- Positions and headings ------------------------------------------------

// Position is a 0-based (row, column) cell position.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row+1, p.Col+1)
}

// positionComparator orders positions row-major.
func positionComparator(p1, p2 interface{}) int {
	a, b := p1.(Position), p2.(Position)
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// Heading is a direction the robot faces. Headings are ordered clockwise.
type Heading int

// Headings, in clockwise order.
const (
	Up Heading = iota
	Right
	Down
	Left
)

var headingSymbols = [4]byte{'u', 'r', 'd', 'l'}

// HeadingFromSymbol returns the heading for a robot symbol of the level format.
func HeadingFromSymbol(ch byte) (Heading, bool) {
	for i, sym := range headingSymbols {
		if sym == ch {
			return Heading(i), true
		}
	}
	return Up, false
}

// Symbol returns the level format symbol of a heading.
func (h Heading) Symbol() byte {
	return headingSymbols[h&3]
}

// TurnLeft returns the heading after a left turn.
func (h Heading) TurnLeft() Heading {
	return (h + 3) % 4
}

// TurnRight returns the heading after a right turn.
func (h Heading) TurnRight() Heading {
	return (h + 1) % 4
}

// Delta returns the row and column offset of a step in direction h.
func (h Heading) Delta() (int, int) {
	switch h {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	}
	return 0, -1
}

func (h Heading) String() string {
	return string(h.Symbol())
}

// Robot is the start position and heading of the robot.
type Robot struct {
	Position
	Facing Heading
}

// --- Level -----------------------------------------------------------------

// Level is a loaded puzzle level.
type Level struct {
	Name         string     // base name of the level file, if any
	Rows, Cols   int        // dimensions of the grid
	Points       int        // points for a complete solution
	MaxBytes     int        // byte budget
	Robot        Robot      // start of the robot
	GrayButtons  []Position // in row-major order
	WhiteButtons []Position // in row-major order
	Walls        []Wall     // in order of detection
	grid         [][]byte   // cells as loaded, robot start cell cleared
	gray         *treeset.Set
	white        *treeset.Set
	inaccessible *treeset.Set
}

// InBounds is a predicate: is p a cell of the level's grid?
func (l *Level) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

// Cell returns the symbol of a cell. The robot's start cell is reported as
// empty.
func (l *Level) Cell(p Position) byte {
	return l.grid[p.Row][p.Col]
}

// IsInaccessible is a predicate: is p part of a wall?
func (l *Level) IsInaccessible(p Position) bool {
	return l.inaccessible.Contains(p)
}

// IsGrayButton is a predicate: is there a gray button at p?
func (l *Level) IsGrayButton(p Position) bool {
	return l.gray.Contains(p)
}

// IsWhiteButton is a predicate: is there a white button at p?
func (l *Level) IsWhiteButton(p Position) bool {
	return l.white.Contains(p)
}

// Inaccessible returns all wall cells in row-major order.
func (l *Level) Inaccessible() []Position {
	cells := make([]Position, 0, l.inaccessible.Size())
	it := l.inaccessible.Iterator()
	for it.Next() {
		cells = append(cells, it.Value().(Position))
	}
	return cells
}

// String returns the level in level file format.
func (l *Level) String() string {
	var b strings.Builder
	for r, row := range l.grid {
		for c, ch := range row {
			if l.Robot.Row == r && l.Robot.Col == c {
				ch = l.Robot.Facing.Symbol()
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d\n%d\n", l.Points, l.MaxBytes)
	return b.String()
}

// levelContent is the hashable content of a level.
type levelContent struct {
	Rows, Cols int
	Points     int
	MaxBytes   int
	Grid       string
}

// Fingerprint returns a digest of the level's content. Levels with equal
// content have equal fingerprints, independent of their name.
func (l *Level) Fingerprint() string {
	h, err := structhash.Hash(levelContent{
		Rows:     l.Rows,
		Cols:     l.Cols,
		Points:   l.Points,
		MaxBytes: l.MaxBytes,
		Grid:     l.String(),
	}, 1)
	if err != nil { // cannot happen for plain structs
		panic(err)
	}
	return h
}

// --- Loading ---------------------------------------------------------------

type options struct {
	rows, cols int
	name       string
}

// Option configures loading of a level.
type Option func(*options)

// Rows sets the number of rows of the level grid.
func Rows(n int) Option {
	return func(o *options) {
		o.rows = n
	}
}

// Cols sets the number of columns of the level grid.
func Cols(n int) Option {
	return func(o *options) {
		o.cols = n
	}
}

// Name sets a display name for the level.
func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// LoadFile loads a level from a file. The level is named after the file's
// base name, unless another name is given as an option.
func LoadFile(path string, opts ...Option) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open level file")
	}
	defer f.Close()
	opts = append([]Option{Name(filepath.Base(path))}, opts...)
	return Load(f, opts...)
}

// Parse loads a level from a string.
func Parse(text string, opts ...Option) (*Level, error) {
	return Load(strings.NewReader(text), opts...)
}

// Load reads a level from r. Malformed levels are reported as
// *herbert.LevelError, failures of r are wrapped and returned as is.
func Load(r io.Reader, opts ...Option) (*Level, error) {
	o := options{rows: DefaultRows, cols: DefaultCols}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rows < 1 {
		return nil, herbert.LevelErrorf("the number of rows must be greater than or equal to 1: %d", o.rows)
	}
	if o.cols < 1 {
		return nil, herbert.LevelErrorf("the number of columns must be greater than or equal to 1: %d", o.cols)
	}
	rd := &reader{in: bufio.NewReader(r)}
	grid, err := rd.grid(o.rows, o.cols)
	if err != nil {
		return nil, err
	}
	points, err := rd.number(o.rows+1, PointsLimit)
	if err != nil {
		return nil, err
	}
	maxBytes, err := rd.number(o.rows+2, MaxBytesLimit)
	if err != nil {
		return nil, err
	}
	l := &Level{
		Name:         o.name,
		Rows:         o.rows,
		Cols:         o.cols,
		Points:       points,
		MaxBytes:     maxBytes,
		grid:         grid,
		gray:         treeset.NewWith(positionComparator),
		white:        treeset.NewWith(positionComparator),
		inaccessible: treeset.NewWith(positionComparator),
	}
	if err = l.analyze(); err != nil {
		return nil, err
	}
	tracer().Infof("loaded level %q: %d×%d, %d white %s, %d %s",
		l.Name, l.Rows, l.Cols, len(l.WhiteButtons),
		herbert.Pluralize(len(l.WhiteButtons), "button", "buttons"),
		len(l.Walls), herbert.Pluralize(len(l.Walls), "wall", "walls"))
	return l, nil
}

// analyze locates robot, buttons and walls.
func (l *Level) analyze() error {
	found := false
	walls := newWallFinder(l.grid)
	for r, row := range l.grid {
		for c, ch := range row {
			p := Position{r, c}
			if h, ok := HeadingFromSymbol(ch); ok {
				if found {
					return herbert.LevelErrorf("too many robots, found another one at %s", p)
				}
				found = true
				l.Robot = Robot{Position: p, Facing: h}
				l.grid[r][c] = Empty
				continue
			}
			switch ch {
			case GrayButton:
				l.GrayButtons = append(l.GrayButtons, p)
				l.gray.Add(p)
			case WhiteButton:
				l.WhiteButtons = append(l.WhiteButtons, p)
				l.white.Add(p)
			case WallCell:
				if !walls.extend(p) {
					return herbert.LevelErrorf("improper wall at %s", p)
				}
			}
		}
	}
	if !found {
		return herbert.LevelErrorf("no robot found")
	}
	l.Walls = walls.walls
	for _, w := range l.Walls {
		for _, p := range w.Cells() {
			l.inaccessible.Add(p)
		}
	}
	return nil
}

// --- Reading ---------------------------------------------------------------

type reader struct {
	in *bufio.Reader
}

func isCellSymbol(ch rune) bool {
	return strings.ContainsRune(".*gwurdl", ch)
}

// line reads up to limit runes, stopping after a newline.
func (rd *reader) line(limit int) (string, error) {
	var b strings.Builder
	for n := 0; n < limit; n++ {
		ch, _, err := rd.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", errors.Wrap(err, "cannot read level")
		}
		b.WriteRune(ch)
		if ch == '\n' {
			break
		}
	}
	return b.String(), nil
}

func (rd *reader) grid(nrows, ncols int) ([][]byte, error) {
	grid := make([][]byte, 0, nrows)
	for i := 0; i < nrows; i++ {
		line, err := rd.line(ncols + 1)
		if err != nil {
			return nil, err
		}
		lineno := i + 1
		switch {
		case line == "":
			return nil, herbert.LevelErrorf("expected %d %s but got %d", nrows,
				herbert.Pluralize(nrows, "line", "lines"), i)
		case line == "\n":
			return nil, herbert.LevelErrorf("line %d is an empty line", lineno)
		}
		cells := strings.TrimSuffix(line, "\n")
		if strings.IndexFunc(cells, func(ch rune) bool { return !isCellSymbol(ch) }) >= 0 {
			return nil, herbert.LevelErrorf("illegal character found at line %d", lineno)
		}
		if len(cells) != ncols || len(line) != ncols+1 {
			return nil, herbert.LevelErrorf("line %d is not %d %s long", lineno, ncols,
				herbert.Pluralize(ncols, "character", "characters"))
		}
		grid = append(grid, []byte(cells))
	}
	return grid, nil
}

// number reads a line holding a positive integer below limit.
func (rd *reader) number(lineno int, limit int) (int, error) {
	line, err := rd.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "cannot read level")
	}
	line = strings.TrimSuffix(line, "\n")
	n, err := strconv.Atoi(line)
	if err != nil || !isDigits(line) || n < 1 || n >= limit {
		return 0, herbert.LevelErrorf("expected a positive integer in the range [1, %d) at line %d: %s",
			limit, lineno, line)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}
