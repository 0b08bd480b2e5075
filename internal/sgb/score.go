package sgb

import "fmt"

// DefaultTargetSize is the footprint side of a standard large npc.
const DefaultTargetSize = 3

// Footprint is a Size x Size square anchored at its south-west cell.
type Footprint struct {
	SW   Pos `json:"sw"`
	Size int `json:"size"`
}

func (f Footprint) MinRow() int { return f.SW.Row - f.Size + 1 }
func (f Footprint) MaxCol() int { return f.SW.Col + f.Size - 1 }

func (f Footprint) Contains(p Pos) bool {
	return p.Row >= f.MinRow() && p.Row <= f.SW.Row && p.Col >= f.SW.Col && p.Col <= f.MaxCol()
}

func (f Footprint) Validate() error {
	if f.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidFootprint, f.Size)
	}
	if !InBounds(f.SW) || !InBounds(Pos{f.MinRow(), f.MaxCol()}) {
		return fmt.Errorf("%w: sw %s size %d leaves grid", ErrInvalidFootprint, f.SW, f.Size)
	}
	return nil
}

// Score counts arrows landed inside the footprint. A cell holding a dummy
// keeps its own hit free and counts the rest at half weight. The tally starts
// at one.
func Score(dummies []Pos, fp Footprint, grid *Grid) float64 {
	landed := 1.0
	for i := fp.MinRow(); i <= fp.SW.Row; i++ {
		for j := fp.SW.Col; j <= fp.MaxCol(); j++ {
			p := Pos{i, j}
			if containsPos(dummies, p) {
				landed += 0.5 * float64(grid.At(p)-1)
			} else {
				landed += float64(grid.At(p))
			}
		}
	}
	return landed
}

func containsPos(ps []Pos, p Pos) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
