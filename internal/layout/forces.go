package layout

import "math"

const distanceMin2 = 1

func (s *Simulation) applyLink() {
	for _, sp := range s.springs {
		src, tgt := s.bodies[sp.source], s.bodies[sp.target]
		x := tgt.X + tgt.VX - src.X - src.VX
		if x == 0 {
			x = s.jiggle()
		}
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if y == 0 {
			y = s.jiggle()
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - s.cfg.LinkDistance) / l * s.alpha * sp.strength
		x *= l
		y *= l
		tgt.VX -= x * sp.bias
		tgt.VY -= y * sp.bias
		src.VX += x * (1 - sp.bias)
		src.VY += y * (1 - sp.bias)
	}
}

// applyCharge is the exact pairwise form of the many-body force.
func (s *Simulation) applyCharge() {
	w := s.cfg.ChargeStrength * s.alpha
	for _, b := range s.bodies {
		for _, o := range s.bodies {
			if o == b {
				continue
			}
			x := o.X - b.X
			y := o.Y - b.Y
			l := x*x + y*y
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			b.VX += x * w / l
			b.VY += y * w / l
		}
	}
}

func (s *Simulation) applyCenter() {
	n := float64(len(s.bodies))
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, b := range s.bodies {
		sx += b.X
		sy += b.Y
	}
	sx = sx/n - s.cfg.Width/2
	sy = sy/n - s.cfg.Height/2
	for _, b := range s.bodies {
		b.X -= sx
		b.Y -= sy
	}
}

// applyCollide treats every body as a circle of CollideRadius and pushes overlapping
// pairs apart, using positions projected one step ahead.
func (s *Simulation) applyCollide() {
	r := s.cfg.CollideRadius * 2
	r2 := r * r
	for i, a := range s.bodies {
		xi, yi := a.X+a.VX, a.Y+a.VY
		for _, b := range s.bodies[i+1:] {
			x := xi - (b.X + b.VX)
			y := yi - (b.Y + b.VY)
			l := x*x + y*y
			if l >= r2 {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l
			x *= l
			y *= l
			// Equal radii split the correction evenly.
			a.VX += x * 0.5
			a.VY += y * 0.5
			b.VX -= x * 0.5
			b.VY -= y * 0.5
		}
	}
}
