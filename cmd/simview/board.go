// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

// Tile is the content of one board cell.
type Tile uint8

const (
	Empty Tile = iota
	X
	O
)

func (t Tile) String() string {
	switch t {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

func (t Tile) opponent() Tile {
	if t == X {
		return O
	}
	return X
}

// Board is a tic-tac-toe game that keeps score across rounds.
type Board struct {
	cells  [3][3]Tile
	turn   Tile
	winner Tile
	line   [2][2]int // first and last cell of the winning line
	draw   bool
	wins   map[Tile]int
	draws  int
}

// NewBoard returns an empty board with X to move.
func NewBoard() *Board {
	return &Board{turn: X, wins: make(map[Tile]int)}
}

// At returns the tile at row, col.
func (b *Board) At(row, col int) Tile { return b.cells[row][col] }

// Turn returns the player to move.
func (b *Board) Turn() Tile { return b.turn }

// Over reports whether the round has ended.
func (b *Board) Over() bool { return b.winner != Empty || b.draw }

// Winner returns the winner of the round and its line, or Empty.
func (b *Board) Winner() (Tile, [2][2]int) { return b.winner, b.line }

// Wins returns the rounds won by p.
func (b *Board) Wins(p Tile) int { return b.wins[p] }

// Draws returns the number of drawn rounds.
func (b *Board) Draws() int { return b.draws }

// Play places the current player's piece. It reports false for an occupied
// or out-of-range cell or a finished round.
func (b *Board) Play(row, col int) bool {
	if b.Over() || row < 0 || row > 2 || col < 0 || col > 2 || b.cells[row][col] != Empty {
		return false
	}
	b.cells[row][col] = b.turn
	line, won := b.lineOf(b.turn)
	switch {
	case won:
		b.winner = b.turn
		b.line = line
		b.wins[b.turn]++
	case b.full():
		b.draw = true
		b.draws++
	default:
		b.turn = b.turn.opponent()
	}
	return true
}

// Reset clears the board for a new round, keeping the score.
func (b *Board) Reset() {
	b.cells = [3][3]Tile{}
	b.turn = X
	b.winner = Empty
	b.draw = false
}

var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// lineOf returns the end cells of a line completed by t.
func (b *Board) lineOf(t Tile) ([2][2]int, bool) {
	for _, l := range winLines {
		if b.cells[l[0][0]][l[0][1]] == t && b.cells[l[1][0]][l[1][1]] == t && b.cells[l[2][0]][l[2][1]] == t {
			return [2][2]int{l[0], l[2]}, true
		}
	}
	return [2][2]int{}, false
}

func (b *Board) full() bool {
	for _, row := range b.cells {
		for _, t := range row {
			if t == Empty {
				return false
			}
		}
	}
	return true
}

// nextMove picks a move for the autoplayer: win, block, center, then the
// first free cell in a fixed order.
func (b *Board) nextMove() (row, col int, ok bool) {
	for _, t := range []Tile{b.turn, b.turn.opponent()} {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				if b.cells[r][c] != Empty {
					continue
				}
				b.cells[r][c] = t
				_, wins := b.lineOf(t)
				b.cells[r][c] = Empty
				if wins {
					return r, c, true
				}
			}
		}
	}
	if b.cells[1][1] == Empty {
		return 1, 1, true
	}
	for _, rc := range [9][2]int{{0, 0}, {2, 2}, {0, 2}, {2, 0}, {0, 1}, {1, 0}, {1, 2}, {2, 1}, {1, 1}} {
		if b.cells[rc[0]][rc[1]] == Empty {
			return rc[0], rc[1], true
		}
	}
	return 0, 0, false
}
