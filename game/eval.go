package game

import "fmt"

// Heuristic scores a position from one side's perspective; higher favors
// that side. Heuristics are pure and total over any reachable board,
// finished games included.
type Heuristic func(p Position, pov Side) int

// Heuristic names accepted by configuration and the CLI.
const (
	HeuristicCoinParity      = "coin_parity"
	HeuristicCornersCaptured = "corners_captured"
	HeuristicMobility        = "mobility"
	HeuristicFrontier        = "frontier"
	HeuristicPositional      = "positional"
	HeuristicAllInOne        = "all_in_one"
)

// HeuristicByName resolves a configured heuristic name.
func HeuristicByName(name string) (Heuristic, error) {
	switch name {
	case HeuristicCoinParity:
		return CoinParity, nil
	case HeuristicCornersCaptured:
		return CornersCaptured, nil
	case HeuristicMobility:
		return Mobility, nil
	case HeuristicFrontier:
		return Frontier, nil
	case HeuristicPositional:
		return Positional, nil
	case HeuristicAllInOne:
		return AllInOne, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

// ratio scales a differential to [-100, 100], 0 when both counts are 0.
func ratio(own, opp int) int {
	if own+opp == 0 {
		return 0
	}
	return 100 * (own - opp) / (own + opp)
}

// CoinParity scores the disc-count differential.
func CoinParity(p Position, pov Side) int {
	return ratio(p.Count(pov), p.Count(pov.Opponent()))
}

// corners returns the mask of the four corner squares.
func corners(size int) Bits {
	var b Bits
	return b.With(0).With(size - 1).With((size - 1) * size).With(size*size - 1)
}

// CornersCaptured scores corner occupation, the most stable squares.
func CornersCaptured(p Position, pov Side) int {
	c := corners(p.Size())
	return ratio(p.Discs(pov).And(c).Popcount(), p.Discs(pov.Opponent()).And(c).Popcount())
}

// Mobility scores the legal-move differential.
func Mobility(p Position, pov Side) int {
	return ratio(p.LegalMoves(pov).Popcount(), p.LegalMoves(pov.Opponent()).Popcount())
}

// Frontier scores the liberty differential. Discs bordering empty
// squares are attackable, so fewer own liberties is better: the ratio is
// taken opponent-first.
func Frontier(p Position, pov Side) int {
	return ratio(p.Frontier(pov.Opponent()).Popcount(), p.Frontier(pov).Popcount())
}

// Positional scores discs against a static weight table biased towards
// corners and edges and away from the squares that give a corner away.
func Positional(p Position, pov Side) int {
	weights := weightTable(p.Size())
	score := 0
	for _, sq := range p.Discs(pov).Squares() {
		score += weights[sq]
	}
	for _, sq := range p.Discs(pov.Opponent()).Squares() {
		score -= weights[sq]
	}
	return score
}

// weightTable builds the static square weights for an N*N board: corners
// dominate, the diagonal and orthogonal neighbors of an empty-corner
// trap are penalized, remaining edge squares are mildly favored.
func weightTable(size int) []int {
	weights := make([]int, size*size)
	last := size - 1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			edgeRow := row == 0 || row == last
			edgeCol := col == 0 || col == last
			nearRow := row == 1 || row == last-1
			nearCol := col == 1 || col == last-1
			w := 1
			switch {
			case edgeRow && edgeCol:
				w = 100
			case nearRow && nearCol:
				w = -50
			case (edgeRow && nearCol) || (edgeCol && nearRow):
				w = -20
			case edgeRow || edgeCol:
				w = 10
			}
			weights[row*size+col] = w
		}
	}
	return weights
}

// AllInOne combines corners, mobility and material with the weights the
// original tuning settled on.
func AllInOne(p Position, pov Side) int {
	return 10*CornersCaptured(p, pov) + 4*Mobility(p, pov) + CoinParity(p, pov)
}
