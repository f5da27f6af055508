// Package tetris is the simulation core of the game: the piece catalog, the board,
// collision and placement, line clearing, and the pure transitions that advance a Game
// in response to ticks and player input.
//
// Every transition takes a Game value and returns a new one. Boards are copied on
// write, so earlier Game values remain valid after a transition.
package tetris

import (
	"errors"
	"fmt"
)

// Coord is a board-relative cell coordinate. Y grows downward and row 0 is the top row.
type Coord struct {
	X, Y int
}

// Add returns the sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Shape is one rotation state of a piece: four offsets from its logical center.
type Shape [4]Coord

// RotateShape turns a shape 90 degrees clockwise around its center.
func RotateShape(s Shape) Shape {
	var out Shape
	for i, c := range s {
		out[i] = Coord{X: -c.Y, Y: c.X}
	}
	return out
}

// Bounds returns the minimum and maximum offsets of the shape.
func (s Shape) Bounds() (lo, hi Coord) {
	lo, hi = s[0], s[0]
	for _, c := range s[1:] {
		lo.X = min(lo.X, c.X)
		lo.Y = min(lo.Y, c.Y)
		hi.X = max(hi.X, c.X)
		hi.Y = max(hi.Y, c.Y)
	}
	return lo, hi
}

// sameCells reports whether two shapes cover the same cells once both are moved to the
// origin of their bounding box.
func sameCells(a, b Shape) bool {
	amin, _ := a.Bounds()
	bmin, _ := b.Bounds()

	seen := make(map[Coord]bool, len(a))
	for _, c := range a {
		seen[Coord{X: c.X - amin.X, Y: c.Y - amin.Y}] = true
	}
	for _, c := range b {
		if !seen[Coord{X: c.X - bmin.X, Y: c.Y - bmin.Y}] {
			return false
		}
	}
	return true
}

// Color is the RGB color of a piece and of the tiles it leaves on the board.
type Color struct {
	R, G, B uint8
}

var (
	Cyan   = Color{R: 0, G: 255, B: 255}
	Orange = Color{R: 255, G: 165, B: 0}
	Blue   = Color{R: 0, G: 0, B: 255}
	Yellow = Color{R: 255, G: 255, B: 0}
	Purple = Color{R: 128, G: 0, B: 128}
	Green  = Color{R: 0, G: 128, B: 0}
	Red    = Color{R: 255, G: 0, B: 0}
)

// Piece is an immutable catalog entry.
type Piece struct {
	Label     string
	Rotations []Shape
	Color     Color
}

// MaxRotations is the number of distinct orientations a piece can have.
const MaxRotations = 4

var (
	ErrEmptyCatalog = errors.New("catalog has no pieces")
	ErrNoRotations  = errors.New("piece has no rotations")
)

// Catalog is the fixed set of pieces a game draws from.
type Catalog struct {
	pieces []*Piece
}

// NewCatalog validates the given pieces and builds a catalog from them.
func NewCatalog(pieces ...Piece) (*Catalog, error) {
	if len(pieces) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{pieces: make([]*Piece, 0, len(pieces))}
	for i, p := range pieces {
		if p.Label == "" {
			return nil, fmt.Errorf("piece %d: empty label", i)
		}
		if len(p.Rotations) == 0 {
			return nil, fmt.Errorf("piece %q: %w", p.Label, ErrNoRotations)
		}
		if len(p.Rotations) > MaxRotations {
			return nil, fmt.Errorf("piece %q: %d rotations, at most %d allowed", p.Label, len(p.Rotations), MaxRotations)
		}

		piece := p
		piece.Rotations = append([]Shape(nil), p.Rotations...)
		c.pieces = append(c.pieces, &piece)
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid definition.
func MustCatalog(pieces ...Piece) *Catalog {
	c, err := NewCatalog(pieces...)
	if err != nil {
		panic("tetris: " + err.Error())
	}
	return c
}

// Len returns the number of pieces in the catalog.
func (c *Catalog) Len() int {
	return len(c.pieces)
}

// At returns the i-th piece.
func (c *Catalog) At(i int) *Piece {
	return c.pieces[i]
}

// Index returns the position of p in the catalog, or -1.
func (c *Catalog) Index(p *Piece) int {
	for i, candidate := range c.pieces {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Pieces returns the catalog entries in order.
func (c *Catalog) Pieces() []*Piece {
	return append([]*Piece(nil), c.pieces...)
}

// Random picks a piece uniformly.
func (c *Catalog) Random(rng Rand) *Piece {
	return c.pieces[rng.IntN(len(c.pieces))]
}

// Lookup returns the piece with the given label.
func (c *Catalog) Lookup(label string) (*Piece, bool) {
	for _, p := range c.pieces {
		if p.Label == label {
			return p, true
		}
	}
	return nil, false
}

var (
	pieceI = Piece{
		Label: "I",
		Rotations: []Shape{
			{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
			{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		},
		Color: Cyan,
	}
	pieceL = Piece{
		Label: "L",
		Rotations: []Shape{
			{{1, -1}, {1, 0}, {0, 0}, {-1, 0}},
			{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
			{{0, 0}, {1, 0}, {-1, 0}, {-1, 1}},
			{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
		},
		Color: Orange,
	}
	pieceJ = Piece{
		Label:     "J",
		Rotations: []Shape{{{0, -1}, {0, 0}, {0, 1}, {-1, 1}}},
		Color:     Blue,
	}
	pieceX = Piece{
		Label:     "X",
		Rotations: []Shape{{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		Color:     Yellow,
	}
	pieceT = Piece{
		Label:     "T",
		Rotations: []Shape{{{0, -1}, {0, 0}, {-1, 0}, {1, 0}}},
		Color:     Purple,
	}
	pieceBackslash = Piece{
		Label:     `\`,
		Rotations: []Shape{{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}}},
		Color:     Green,
	}
	pieceSlash = Piece{
		Label:     "/",
		Rotations: []Shape{{{1, -1}, {1, 0}, {0, 0}, {0, 1}}},
		Color:     Red,
	}
)

// Standard is the seven-piece catalog. Only I and L define more than one orientation.
var Standard = MustCatalog(pieceI, pieceL, pieceJ, pieceX, pieceT, pieceBackslash, pieceSlash)

// Classic has the same pieces as Standard with every distinct orientation filled in.
var Classic = MustCatalog(
	withAllRotations(pieceI),
	withAllRotations(pieceL),
	withAllRotations(pieceJ),
	withAllRotations(pieceX),
	withAllRotations(pieceT),
	withAllRotations(pieceBackslash),
	withAllRotations(pieceSlash),
)

// Trio is the reduced three-piece catalog.
var Trio = MustCatalog(pieceI, pieceL, pieceX)

// withAllRotations keeps the piece's first orientation and appends each clockwise turn
// until the shape repeats.
func withAllRotations(p Piece) Piece {
	base := p.Rotations[0]
	rotations := []Shape{base}

	next := RotateShape(base)
	for len(rotations) < MaxRotations && !sameCells(next, base) {
		rotations = append(rotations, next)
		next = RotateShape(next)
	}

	p.Rotations = rotations
	return p
}

// CatalogByName resolves the configured catalog name.
func CatalogByName(name string) (*Catalog, error) {
	switch name {
	case "", "standard":
		return Standard, nil
	case "classic":
		return Classic, nil
	case "trio":
		return Trio, nil
	}
	return nil, fmt.Errorf("unknown catalog %q", name)
}
