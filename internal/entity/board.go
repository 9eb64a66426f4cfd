package entity

import "unicode"

const (
	MinPosition Position = 1
	MaxPosition Position = 9

	BoardSize = int(MaxPosition)

	NoMark Mark = 0
)

// Position identifies a cell of the 3x3 grid, numbered 1..9 row by row.
type Position int

func (that Position) Valid() bool {
	return that >= MinPosition && that <= MaxPosition
}

func (that Position) index() int {
	return int(that) - 1
}

// Mark is the symbol a player places on the board.
type Mark rune

// Code returns the numeric code of the mark, its code point.
func (that Mark) Code() int {
	return int(that)
}

func (that Mark) IsEmpty() bool {
	return that == NoMark
}

// Printable reports whether the mark can be shown on a cell without being
// confused with a blank or a position label.
func (that Mark) Printable() bool {
	r := rune(that)
	if that.IsEmpty() || unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return false
	}

	return r < '1' || r > '9'
}

func (that Mark) String() string {
	if that.IsEmpty() {
		return ""
	}
	return string(rune(that))
}

// Board maps every position 1..9 to an optional mark. NoMark is an empty cell.
type Board [BoardSize]Mark

func NewBoard() Board {
	return Board{}
}

// At returns the mark on pos, or NoMark for empty or invalid positions.
func (that Board) At(pos Position) Mark {
	if !pos.Valid() {
		return NoMark
	}
	return that[pos.index()]
}

// Set places mark on pos. Invalid positions are ignored.
func (that *Board) Set(pos Position, mark Mark) {
	if !pos.Valid() {
		return
	}
	that[pos.index()] = mark
}

func (that Board) IsOccupied(pos Position) bool {
	return !that.At(pos).IsEmpty()
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}

// Positions returns all board positions in order.
func (that Board) Positions() []Position {
	positions := make([]Position, 0, BoardSize)
	for pos := MinPosition; pos <= MaxPosition; pos++ {
		positions = append(positions, pos)
	}
	return positions
}

// Value sums the mark codes of the non-empty cells on line.
func (that Board) Value(line Line) int {
	value := 0
	for _, pos := range line {
		value += that.At(pos).Code()
	}
	return value
}

// Owner returns the mark held on all three cells of line, or NoMark.
func (that Board) Owner(line Line) Mark {
	a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
	if !a.IsEmpty() && a == b && b == c {
		return a
	}
	return NoMark
}
