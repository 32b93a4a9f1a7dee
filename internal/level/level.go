package level

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/zeebo/xxh3"
)

// Level file glyphs. Any other byte is floor.
const (
	GlyphWall   = '#'
	GlyphPlayer = 'P'
	GlyphBox    = 'B'
	GlyphGoal   = '.'
)

var (
	// ErrEmptyLevel is returned for a level file without any rows.
	ErrEmptyLevel = errors.New("level has no rows")
	// ErrNoPlayer is returned when a level has no player start.
	ErrNoPlayer = errors.New("level has no player start")
)

// Cell is an integer grid coordinate. Y grows upwards: the last row of the file is y=0.
type Cell struct {
	X, Y int
}

// Add returns c moved by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c.X + d.X, c.Y + d.Y}
}

func (c Cell) key() int64 {
	return int64(c.X)<<32 | int64(uint32(c.Y))
}

// Grid is a parsed level. Boxes and Player are the current cell positions when the grid
// is played in discrete mode and the start positions otherwise.
type Grid struct {
	Raw    []string
	W, H   int
	Player Cell
	Boxes  []Cell
	Goals  []Cell
	// Fingerprint identifies the file contents the grid was parsed from.
	Fingerprint uint64

	occupied *intmap.Map[int64, int]
}

// Load reads and parses the level file at path.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	g, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return g, nil
}

// Parse reads a level from r. Trailing carriage returns are stripped from every row.
func Parse(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	g := &Grid{Fingerprint: xxh3.Hash(data)}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		g.Raw = append(g.Raw, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(g.Raw) == 0 {
		return nil, ErrEmptyLevel
	}

	g.H = len(g.Raw)
	hasPlayer := false
	for row, line := range g.Raw {
		g.W = max(g.W, len(line))
		y := g.H - 1 - row
		for x := 0; x < len(line); x++ {
			switch line[x] {
			case GlyphPlayer:
				g.Player = Cell{x, y}
				hasPlayer = true
			case GlyphBox:
				g.Boxes = append(g.Boxes, Cell{x, y})
			case GlyphGoal:
				g.Goals = append(g.Goals, Cell{x, y})
			}
		}
	}
	if !hasPlayer {
		return nil, ErrNoPlayer
	}
	g.reindex()
	return g, nil
}

func (g *Grid) reindex() {
	g.occupied = intmap.New[int64, int](len(g.Boxes))
	for i, b := range g.Boxes {
		g.occupied.Put(b.key(), i)
	}
}

// IsWall reports whether c is a wall. Cells outside the file count as walls.
func (g *Grid) IsWall(c Cell) bool {
	row := g.H - 1 - c.Y
	if row < 0 || row >= g.H || c.X < 0 || c.X >= len(g.Raw[row]) {
		return true
	}
	return g.Raw[row][c.X] == GlyphWall
}

// WallTiles returns every wall cell, bottom row first, left to right.
func (g *Grid) WallTiles() []Cell {
	var out []Cell
	for y := 0; y < g.H; y++ {
		row := g.Raw[g.H-1-y]
		for x := 0; x < len(row); x++ {
			if row[x] == GlyphWall {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// IsGoal reports whether c is a goal cell.
func (g *Grid) IsGoal(c Cell) bool {
	for _, goal := range g.Goals {
		if goal == c {
			return true
		}
	}
	return false
}

// BoxAt returns the index of the box on c.
func (g *Grid) BoxAt(c Cell) (int, bool) {
	return g.occupied.Get(c.key())
}

// CellFree reports whether c is neither a wall nor holds a box.
func (g *Grid) CellFree(c Cell) bool {
	if g.IsWall(c) {
		return false
	}
	_, taken := g.BoxAt(c)
	return !taken
}

// TryMove steps the player one cell in direction d, pushing a single box ahead if the cell
// behind it is free. Returns false when the move is blocked.
func (g *Grid) TryMove(d Cell) bool {
	dest := g.Player.Add(d)
	if g.IsWall(dest) {
		return false
	}
	if i, ok := g.BoxAt(dest); ok {
		beyond := dest.Add(d)
		if !g.CellFree(beyond) {
			return false
		}
		g.occupied.Del(dest.key())
		g.Boxes[i] = beyond
		g.occupied.Put(beyond.key(), i)
	}
	g.Player = dest
	return true
}

// Won reports whether every goal holds a box.
func (g *Grid) Won() bool {
	for _, goal := range g.Goals {
		if _, ok := g.BoxAt(goal); !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Raw = slices.Clone(g.Raw)
	c.Boxes = slices.Clone(g.Boxes)
	c.Goals = slices.Clone(g.Goals)
	c.reindex()
	return &c
}
