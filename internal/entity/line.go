package entity

import "time"

// Line is a triple of positions that wins when one mark holds all of it.
type Line [3]Position

var (
	Columns = [3]Line{
		{1, 4, 7},
		{2, 5, 8},
		{3, 6, 9},
	}
	Rows = [3]Line{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	Crosswise = [2]Line{
		{1, 5, 9},
		{3, 5, 7},
	}
)

// WinLines returns the 8 lines in detection order: columns, rows, crosswise.
func WinLines() []Line {
	lines := make([]Line, 0, len(Columns)+len(Rows)+len(Crosswise))
	lines = append(lines, Columns[:]...)
	lines = append(lines, Rows[:]...)
	lines = append(lines, Crosswise[:]...)

	return lines
}

func (that Line) Contains(pos Position) bool {
	for _, p := range that {
		if p == pos {
			return true
		}
	}
	return false
}

// LineValue pairs a line with the aggregate of its mark codes.
type LineValue struct {
	Value int
	Line  Line
}

// Outcome of a round. The zero value means no winner was found.
type Outcome struct {
	Found bool `json:"found"`
	Mark  Mark `json:"mark,omitempty"`
	Line  Line `json:"line,omitempty"`
}

const NoWinner = "-"

// RoundRecord is the summary of a finished round.
type RoundRecord struct {
	Round      int       `json:"round"`
	Winner     string    `json:"winner"`
	Line       *Line     `json:"line,omitempty"`
	Turns      int       `json:"turns"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that RoundRecord) IsDraw() bool {
	return that.Winner == NoWinner
}
