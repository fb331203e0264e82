package score

// Bounds is an exclusive-on-both-sides interval of possible scores for a move, used to prune
// search branches before their exact value is known. A missing Min represents "no lower bound"
// (i.e. 0 is reachable) and a missing Max represents "no upper bound" (i.e. 1 is reachable);
// Bounds does not otherwise guarantee Min < Max, see Valid.
type Bounds struct {
	Min    Score
	HasMin bool
	Max    Score
	HasMax bool
}

// Widest returns the unconstrained bounds, containing every score in [0, 1].
func Widest() Bounds {
	return Bounds{}
}

func (b Bounds) ScoreTooLow(s Score) bool {
	return b.HasMin && s <= b.Min
}

func (b Bounds) ScoreTooHigh(s Score) bool {
	return b.HasMax && b.Max <= s
}

func (b Bounds) Contains(s Score) bool {
	return !b.ScoreTooLow(s) && !b.ScoreTooHigh(s)
}

// MinDecreasedBy lowers the min bound by amount, dropping it entirely if that underflows.
func (b Bounds) MinDecreasedBy(amount Score) Bounds {
	out := Bounds{Max: b.Max, HasMax: b.HasMax}
	if b.HasMin {
		if v, ok := b.Min.CheckedSub(amount); ok {
			out.Min, out.HasMin = v, true
		}
	}
	return out
}

// Expanded divides both bounds by amount, a value in (0, 1); dividing by a fraction less than
// one widens the interval, hence the name. A max bound that would divide past ONE is dropped,
// since it means there is effectively no longer an upper bound.
func (b Bounds) Expanded(amount Score) Bounds {
	if amount <= ZERO {
		panic("score: amount must be positive")
	}
	if amount >= ONE {
		panic("score: amount must be less than 1")
	}

	out := Bounds{}
	if b.HasMin {
		v, ok := b.Min.CheckedDiv(amount)
		if !ok || v > ONE {
			panic("score: expanding min should not overflow")
		}
		out.Min, out.HasMin = v, true
	}
	if b.HasMax {
		if v, ok := b.Max.CheckedDiv(amount); ok && v <= ONE {
			out.Max, out.HasMax = v, true
		}
	}
	return out
}

// BothDecreasedBy lowers both bounds by amount, assuming the worst case for the other branch's
// contribution at both ends of the interval. A missing max is treated as ONE - amount + DELTA,
// since the bounds are exclusive: in practice this is immediately widened back out by Expanded.
func (b Bounds) BothDecreasedBy(amount Score) Bounds {
	out := Bounds{}
	if b.HasMin {
		if v, ok := b.Min.CheckedSub(amount); ok {
			out.Min, out.HasMin = v, true
		}
	}
	if b.HasMax {
		v, ok := b.Max.CheckedSub(amount)
		if !ok {
			panic("score: decreasing max should not overflow")
		}
		out.Max, out.HasMax = v, true
	} else {
		v, ok := ONE.CheckedSub(amount)
		if !ok {
			panic("score: decreasing max should not overflow")
		}
		v, ok = v.CheckedAdd(DELTA)
		if !ok {
			panic("score: decreasing max should not overflow")
		}
		out.Max, out.HasMax = v, true
	}
	return out
}

// Valid reports whether the bounds are internally consistent: max within [0, 1], and min < max
// whenever both are set.
func (b Bounds) Valid() bool {
	if !b.HasMax {
		return true
	}
	if b.Max > ONE {
		return false
	}
	if !b.HasMin {
		return true
	}
	return b.Min < b.Max
}

// UpdateMin raises the min bound to s if s is higher, narrowing it in favor of a maximizer.
func (b *Bounds) UpdateMin(s Score) {
	if !b.HasMin || s > b.Min {
		b.Min, b.HasMin = s, true
	}
}

// UpdateMax lowers the max bound to s if s is lower, narrowing it in favor of a minimizer.
func (b *Bounds) UpdateMax(s Score) {
	if !b.HasMax || s < b.Max {
		b.Max, b.HasMax = s, true
	}
}

// InfoTooLow reports whether a table entry's range is entirely at or below the min bound.
func (b Bounds) InfoTooLow(info ScoreInfo) bool {
	return b.HasMin && info.Max <= b.Min
}

// InfoTooHigh reports whether a table entry's range is entirely at or above the max bound.
func (b Bounds) InfoTooHigh(info ScoreInfo) bool {
	return b.HasMax && info.Min >= b.Max
}
