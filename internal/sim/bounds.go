package sim

import "fmt"

// Arena limits on each horizontal axis.
const (
	InnerBound = 9.8
	OuterBound = 9.9
)

// BoundsPolicy decides how a per-tick displacement is applied near the
// arena edge. Both displacements are subtracted from the position.
type BoundsPolicy uint8

const (
	// BoundsLegacy applies both contributions inside the inner band and
	// at most one corrective contribution outside it, picked by a fixed
	// priority rather than by magnitude. Cameras stick at the edges.
	BoundsLegacy BoundsPolicy = iota
	// BoundsClamp applies both contributions and clamps to OuterBound.
	BoundsClamp
)

func (b BoundsPolicy) String() string {
	switch b {
	case BoundsLegacy:
		return "legacy"
	case BoundsClamp:
		return "clamp"
	}
	return fmt.Sprintf("BoundsPolicy(%d)", uint8(b))
}

// ParseBoundsPolicy maps a config string to a policy.
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	switch s {
	case "", "legacy":
		return BoundsLegacy, nil
	case "clamp":
		return BoundsClamp, nil
	}
	return 0, fmt.Errorf("unknown bounds policy %q", s)
}

// Apply returns the new coordinate after subtracting the forward and
// side displacements dF and dS from p.
func (b BoundsPolicy) Apply(p, dF, dS float64) float64 {
	if b == BoundsClamp {
		return min(max(p-dF-dS, -OuterBound), OuterBound)
	}

	switch {
	case p < InnerBound && p > -InnerBound:
		p -= dF
		p -= dS
	case p < OuterBound && dF < 0:
		p -= dF
	case p < OuterBound && dS < 0:
		p -= dS
	case p > -OuterBound && dF > 0:
		p -= dF
	case p > -OuterBound && dS > 0:
		p -= dS
	}
	return p
}
