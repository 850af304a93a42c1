// meta/meta.go
package meta

// BOARD_SIZE is the default edge length of the board.
const BOARD_SIZE = 8

// SEARCH_DEPTH is the default number of plies the computer looks ahead.
const SEARCH_DEPTH = 5

// MAX_DEPTH keeps configured searches within a few seconds on a 10x10 board.
const MAX_DEPTH = 12

// START_COLOR moves first.
const START_COLOR = "white"

// COMPUTER_COLOR is played by the computer in interactive games.
const COMPUTER_COLOR = "white"

const EXPERIMENT_GAMES = 10

// OPENING_PLIES random moves start every experiment game.
const OPENING_PLIES = 4

const EXPERIMENT_DIR = "experiments"
