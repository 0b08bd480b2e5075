package sgb

import (
	"strconv"
	"strings"
)

// GridSize is the side length of the battlefield grid.
const GridSize = 9

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) Add(d Pos) Pos { return Pos{p.Row + d.Row, p.Col + d.Col} }
func (p Pos) String() string {
	return "(" + strconv.Itoa(p.Row) + "," + strconv.Itoa(p.Col) + ")"
}

// InBounds reports whether p addresses a cell of the grid.
func InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < GridSize && p.Col >= 0 && p.Col < GridSize
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v >= GridSize {
		return GridSize - 1
	}
	return v
}

// Grid counts hits per cell for one trial.
type Grid [GridSize][GridSize]int

func NewGrid() *Grid { return &Grid{} }

func (g *Grid) At(p Pos) int { return g[p.Row][p.Col] }
func (g *Grid) inc(p Pos)    { g[p.Row][p.Col]++ }

func (g *Grid) Total() int {
	n := 0
	for i := range g {
		for j := range g[i] {
			n += g[i][j]
		}
	}
	return n
}

// String prints rows as "[0 1 0 ...]" with columns right-aligned to the widest count.
func (g *Grid) String() string {
	width := 1
	for i := range g {
		for j := range g[i] {
			if w := len(strconv.Itoa(g[i][j])); w > width {
				width = w
			}
		}
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range g {
		if i > 0 {
			sb.WriteString("\n ")
		}
		sb.WriteByte('[')
		for j := range g[i] {
			if j > 0 {
				sb.WriteByte(' ')
			}
			s := strconv.Itoa(g[i][j])
			sb.WriteString(strings.Repeat(" ", width-len(s)))
			sb.WriteString(s)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// Render lays the dummies out on an empty grid, one count per dummy.
// Out-of-grid dummies are skipped.
func Render(dummies []Pos) string {
	g := NewGrid()
	for _, d := range dummies {
		if InBounds(d) {
			g.inc(d)
		}
	}
	return g.String()
}
