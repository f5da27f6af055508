package tetris

// Status is the lifecycle state of a game.
type Status int

const (
	Playing Status = iota
	Paused
	Ended
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Rules fixes the board size, the catalog and where new pieces appear.
type Rules struct {
	Width   int
	Height  int
	Catalog *Catalog

	// SpawnColumn is the x position of new pieces; nil means Width/2.
	SpawnColumn *int
	// SpawnJitter moves each spawn by a uniform offset in [-SpawnJitter, SpawnJitter].
	SpawnJitter int
}

// DefaultRules is a 10x20 board with the Standard catalog, spawning in the center.
func DefaultRules() Rules {
	return Rules{
		Width:   10,
		Height:  20,
		Catalog: Standard,
	}
}

func (r Rules) catalog() *Catalog {
	if r.Catalog == nil {
		return Standard
	}
	return r.Catalog
}

func (r Rules) spawnColumn(rng Rand) int {
	col := r.Width / 2
	if r.SpawnColumn != nil {
		col = *r.SpawnColumn
	}
	if r.SpawnJitter > 0 {
		col += rng.IntN(2*r.SpawnJitter+1) - r.SpawnJitter
	}
	return col
}

// Preview is the next piece together with the rotation it will spawn in.
type Preview struct {
	Piece    *Piece
	Rotation int
}

func (p Preview) valid() bool {
	return p.Piece != nil && p.Rotation >= 0 && p.Rotation < len(p.Piece.Rotations)
}

func rollPreview(c *Catalog, rng Rand) Preview {
	p := c.Random(rng)
	return Preview{Piece: p, Rotation: rng.IntN(len(p.Rotations))}
}

// Game is one complete simulation state.
type Game struct {
	Status Status
	Rules  Rules
	Board  Board
	Active ActivePiece
	Next   Preview
	Score  int

	// Lines is the total number of rows cleared.
	Lines int
	// Pieces is the number of pieces locked into the board.
	Pieces int
}

// NewGame starts a game with a random active piece and a random preview.
func NewGame(rules Rules, rng Rand) Game {
	g := Game{
		Status: Playing,
		Rules:  rules,
		Board:  NewBoard(rules.Width, rules.Height),
	}
	g.Active = g.spawn(rollPreview(rules.catalog(), rng), rng)
	g.Next = rollPreview(rules.catalog(), rng)
	return g
}

func (g Game) Width() int  { return g.Board.Width() }
func (g Game) Height() int { return g.Board.Height() }

// spawn places a preview at the spawn column on row 0, pulled back inside the side
// walls when the column would leave part of the piece off the board.
func (g Game) spawn(p Preview, rng Rand) ActivePiece {
	a := ActivePiece{
		Piece:    p.Piece,
		Rotation: p.Rotation,
		Position: Coord{X: g.Rules.spawnColumn(rng), Y: 0},
	}

	lo, hi := a.Shape().Bounds()
	if a.Position.X+hi.X >= g.Board.Width() {
		a.Position.X = g.Board.Width() - 1 - hi.X
	}
	if a.Position.X+lo.X < 0 {
		a.Position.X = -lo.X
	}
	return a
}

func (g Game) activeValid() bool {
	return g.Active.Piece != nil && g.Active.Rotation >= 0 && g.Active.Rotation < len(g.Active.Piece.Rotations)
}

// Fall moves the active piece one row down and reports whether it landed. A landed
// piece is left in its colliding position for LockPiece to resolve.
func Fall(g Game) (Game, bool) {
	if g.Status != Playing || !g.activeValid() {
		return g, false
	}
	g.Active = g.Active.Moved(0, 1)
	return g, Collides(g.Board, g.Active)
}

// LockPiece locks the landed piece, spawns the preview and rolls a new one. The game
// ends when the spawned piece collides immediately. A preview with an unknown rotation
// is rolled again before it spawns.
func LockPiece(g Game, rng Rand) Game {
	if g.Status != Playing || !g.activeValid() {
		return g
	}

	g.Board = Lock(g.Board, g.Active)
	g.Pieces++

	if !g.Next.valid() {
		g.Next = rollPreview(g.Rules.catalog(), rng)
	}

	g.Active = g.spawn(g.Next, rng)
	if Collides(g.Board, g.Active) {
		g.Status = Ended
	}
	g.Next = rollPreview(g.Rules.catalog(), rng)
	return g
}

// ClearRows removes full rows and adds their score. It returns the rows cleared.
func ClearRows(g Game) (Game, int) {
	board, lines := ClearLines(g.Board)
	g.Board = board
	g.Lines += lines
	g.Score += ScoreDelta(lines)
	return g, lines
}

// Tick advances gravity by one row, locking and clearing as needed.
// It is a no-op unless the game is playing.
func Tick(g Game, rng Rand) Game {
	if g.Status != Playing {
		return g
	}

	g, landed := Fall(g)
	if landed {
		g = LockPiece(g, rng)
	}
	g, _ = ClearRows(g)
	return g
}

// Move shifts the active piece one column left (-1) or right (+1). A shift into a wall
// or onto a locked tile is rejected and the game is returned unchanged.
func Move(g Game, dir int) Game {
	if g.Status != Playing || !g.activeValid() || (dir != -1 && dir != 1) {
		return g
	}

	moved := g.Active.Moved(dir, 0)
	if Collides(g.Board, moved) || IsOutOfBounds(g.Board, moved) {
		return g
	}
	g.Active = moved
	return g
}

// Rotate advances the active piece to its next orientation. A piece that overflows a
// side wall is kicked back by one column; if that is not enough the rotation is
// rejected. Locked tiles are not checked, so a rotation may overlap them.
func Rotate(g Game) Game {
	if g.Status != Playing || !g.activeValid() {
		return g
	}

	rotated := g.Active
	rotated.Rotation = (rotated.Rotation + 1) % len(rotated.Piece.Rotations)

	left, right := horizontalOverflow(g.Board, rotated)
	if left {
		rotated = rotated.Moved(1, 0)
	} else if right {
		rotated = rotated.Moved(-1, 0)
	}
	if IsOutOfBounds(g.Board, rotated) {
		return g
	}

	g.Active = rotated
	return g
}

// Pause suspends a playing game.
func Pause(g Game) Game {
	if g.Status == Playing {
		g.Status = Paused
	}
	return g
}

// Resume continues a paused game.
func Resume(g Game) Game {
	if g.Status == Paused {
		g.Status = Playing
	}
	return g
}
