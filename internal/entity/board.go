package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const BoardSize = 10

// Cell statuses. A cell moves at most once from empty/ship to hit/miss.
const (
	CellEmpty = "empty"
	CellShip  = "ship"
	CellHit   = "hit"
	CellMiss  = "miss"
)

const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

var ErrInvalidLayout = errors.New("invalid ship layout")

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coordinates) InRange() bool {
	return that.X >= 0 && that.X < BoardSize && that.Y >= 0 && that.Y < BoardSize
}

type Ship struct {
	Name        string      `json:"name"`
	Length      int         `json:"length"`
	Position    Coordinates `json:"position"`
	Orientation string      `json:"orientation"`
	Sunk        bool        `json:"sunk"`
}

// Cells - expands the ship's head position by its length in its orientation.
func (that *Ship) Cells() []Coordinates {
	cells := make([]Coordinates, 0, that.Length)

	for i := 0; i < that.Length; i++ {
		cell := that.Position
		if that.Orientation == OrientationVertical {
			cell.Y += i
		} else {
			cell.X += i
		}
		cells = append(cells, cell)
	}

	return cells
}

// Board is one player's side of a game: a 10x10 grid of cell statuses,
// indexed [y][x], paired with that player's ships.
type Board struct {
	Cells [BoardSize][BoardSize]string `json:"cells"`
	Ships []Ship                       `json:"ships"`
}

func NewEmptyBoard() Board {
	var board Board
	for y := range board.Cells {
		for x := range board.Cells[y] {
			board.Cells[y][x] = CellEmpty
		}
	}

	return board
}

// Validate - checks the layout shape: positive lengths, known orientation,
// every occupied cell on the grid. Overlap and fleet composition stay with
// the client.
func (that *Board) Validate() error {
	for i := range that.Ships {
		ship := &that.Ships[i]

		if ship.Name == "" || ship.Length <= 0 {
			return fmt.Errorf("%w: ship %q has length %d", ErrInvalidLayout, ship.Name, ship.Length)
		}

		if ship.Orientation != OrientationHorizontal && ship.Orientation != OrientationVertical {
			return fmt.Errorf("%w: ship %q has orientation %q", ErrInvalidLayout, ship.Name, ship.Orientation)
		}

		for _, cell := range ship.Cells() {
			if !cell.InRange() {
				return fmt.Errorf("%w: ship %q does not fit the grid", ErrInvalidLayout, ship.Name)
			}
		}
	}

	return nil
}

// shipIndexAt - index of the ship occupying the cell, or -1.
func (that *Board) shipIndexAt(coords Coordinates) int {
	for i := range that.Ships {
		for _, cell := range that.Ships[i].Cells() {
			if cell == coords {
				return i
			}
		}
	}

	return -1
}

// isSunk - true when every occupied cell of the ship has been hit.
func (that *Board) isSunk(ship *Ship) bool {
	for _, cell := range ship.Cells() {
		if that.Cells[cell.Y][cell.X] != CellHit {
			return false
		}
	}

	return true
}

// AllSunk - true when the board has ships and all of them are sunk.
func (that *Board) AllSunk() bool {
	if len(that.Ships) == 0 {
		return false
	}

	for i := range that.Ships {
		if !that.isSunk(&that.Ships[i]) {
			return false
		}
	}

	return true
}

// ApplyAttack - resolves an attack on the board. The outcome is derived from
// the stored ship geometry, never from the caller.
func (that *Board) ApplyAttack(coords Coordinates) (hit bool, sunkShip string, err error) {
	if !coords.InRange() {
		return false, "", fmt.Errorf("%w: (%d,%d)", apperror.ErrOutOfRange, coords.X, coords.Y)
	}

	switch that.Cells[coords.Y][coords.X] {
	case CellHit, CellMiss:
		return false, "", fmt.Errorf("%w: (%d,%d)", apperror.ErrAlreadyAttacked, coords.X, coords.Y)
	}

	shipIndex := that.shipIndexAt(coords)
	if shipIndex < 0 {
		that.Cells[coords.Y][coords.X] = CellMiss
		return false, "", nil
	}

	that.Cells[coords.Y][coords.X] = CellHit

	ship := &that.Ships[shipIndex]
	if that.isSunk(ship) {
		ship.Sunk = true
		sunkShip = ship.Name
	}

	return true, sunkShip, nil
}
