package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"sgbsim/internal/sgb"
)

// ParsePos reads "row,col".
func ParsePos(s string) (sgb.Pos, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return sgb.Pos{}, fmt.Errorf("position %q: want row,col", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return sgb.Pos{}, fmt.Errorf("position %q: %w", s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return sgb.Pos{}, fmt.Errorf("position %q: %w", s, err)
	}
	return sgb.Pos{Row: r, Col: c}, nil
}

// ParseLayout reads a dummy list written as "r,c;r,c;...".
func ParseLayout(s string) ([]sgb.Pos, error) {
	var out []sgb.Pos
	for _, item := range strings.Split(s, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		p, err := ParsePos(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("layout %q: no dummies", s)
	}
	return out, nil
}
