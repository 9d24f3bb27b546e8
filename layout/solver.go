package layout

import "sort"

// Split resolves constraints against area's size along direction, producing
// one sub-rect per constraint that tiles area along that axis while
// preserving the orthogonal axis unchanged. An empty constraint list
// yields an empty slice. Tie-breaking (remainder distribution, shrink
// order) is deterministic by list index throughout.
func Split(area Rect, direction Direction, constraints []Constraint) []Rect {
	n := len(constraints)
	if n == 0 {
		return nil
	}

	var axisSize int
	if direction == Horizontal {
		axisSize = area.Width
	} else {
		axisSize = area.Height
	}

	sizes := lowerBounds(constraints, axisSize)
	total := sumInts(sizes)
	remaining := axisSize - total

	if remaining >= 0 {
		grow(constraints, sizes, remaining)
	} else {
		shrink(constraints, sizes, -remaining)
	}

	// Defensive final correction: guarantee the sum equals axisSize exactly
	// and no slot is negative, regardless of any rounding in the
	// proportional passes above.
	normalize(sizes, axisSize)

	return toRects(area, direction, sizes)
}

func lowerBounds(constraints []Constraint, axisSize int) []int {
	sizes := make([]int, len(constraints))
	for i, c := range constraints {
		switch c.Kind {
		case Length:
			sizes[i] = c.Value
		case Min:
			sizes[i] = c.Value
		case Max:
			sizes[i] = 0
		case Ratio:
			if c.Den != 0 {
				sizes[i] = (axisSize * c.Num) / c.Den
			}
		case Flex:
			sizes[i] = 0
		}
	}
	return sizes
}

func grow(constraints []Constraint, sizes []int, remaining int) {
	if remaining <= 0 {
		return
	}

	flexIdx, flexWeight := indicesOfKind(constraints, Flex)
	if len(flexIdx) > 0 {
		distributeProportional(sizes, flexIdx, flexWeight, remaining)
		return
	}

	maxIdx, maxCap := indicesOfKind(constraints, Max)
	if len(maxIdx) > 0 {
		remaining = distributeCapped(sizes, maxIdx, maxCap, remaining)
	}

	minIdx, _ := indicesOfKind(constraints, Min)
	if remaining > 0 && len(minIdx) > 0 {
		distributeEvenly(sizes, minIdx, remaining)
		remaining = 0
	}

	if remaining > 0 {
		sizes[len(sizes)-1] += remaining
	}
}

func shrink(constraints []Constraint, sizes []int, deficit int) {
	// Flex and Max constraints already contribute a lower bound of 0 (see
	// lowerBounds), so there is nothing to take from them here; they are
	// already at their shrink-to-zero floor. Min shrinks next, then
	// Length/Ratio together as the last resort (both are fixed-demand
	// constraints with no declared elasticity).
	minIdx, _ := indicesOfKind(constraints, Min)
	deficit = shrinkEvenly(sizes, minIdx, deficit)

	var fixedIdx []int
	for i, c := range constraints {
		if c.Kind == Length || c.Kind == Ratio {
			fixedIdx = append(fixedIdx, i)
		}
	}
	deficit = shrinkEvenly(sizes, fixedIdx, deficit)
	_ = deficit // any remainder is absorbed by normalize's final clamp
}

func indicesOfKind(constraints []Constraint, kind Kind) (idx []int, weight []int) {
	for i, c := range constraints {
		if c.Kind == kind {
			idx = append(idx, i)
			weight = append(weight, c.Value)
		}
	}
	return idx, weight
}

// distributeProportional grows sizes[idxs[i]] in proportion to weight[i],
// using the largest-remainder method so the shares sum exactly to total;
// remainder ties are broken by list order (earlier index wins).
func distributeProportional(sizes []int, idxs []int, weights []int, total int) {
	totalWeight := sumInts(weights)
	if totalWeight <= 0 {
		if len(idxs) > 0 {
			sizes[idxs[len(idxs)-1]] += total
		}
		return
	}

	type share struct {
		pos       int // position within idxs
		remainder float64
	}
	shares := make([]share, len(idxs))
	allocated := 0
	for i, w := range weights {
		exact := float64(total) * float64(w) / float64(totalWeight)
		floor := int(exact)
		sizes[idxs[i]] += floor
		allocated += floor
		shares[i] = share{pos: i, remainder: exact - float64(floor)}
	}

	left := total - allocated
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})
	for k := 0; k < left && k < len(shares); k++ {
		sizes[idxs[shares[k].pos]]++
	}
}

// distributeCapped grows sizes[idxs[i]] up to cap[i], in list order,
// returning whatever could not be placed because every cap was reached.
func distributeCapped(sizes []int, idxs []int, caps []int, total int) int {
	remaining := total
	for i, idx := range idxs {
		room := caps[i] - sizes[idx]
		if room <= 0 {
			continue
		}
		grow := remaining
		if grow > room {
			grow = room
		}
		sizes[idx] += grow
		remaining -= grow
		if remaining == 0 {
			break
		}
	}
	return remaining
}

// distributeEvenly splits total evenly across idxs, giving the +1
// remainder to earlier list positions first.
func distributeEvenly(sizes []int, idxs []int, total int) {
	n := len(idxs)
	if n == 0 {
		return
	}
	base := total / n
	rem := total % n
	for i, idx := range idxs {
		add := base
		if i < rem {
			add++
		}
		sizes[idx] += add
	}
}

// shrinkEvenly removes up to deficit, proportionally to each item's
// current size, never taking a slot below zero. Returns the unabsorbed
// remainder (0 if this group had enough to give).
func shrinkEvenly(sizes []int, idxs []int, deficit int) int {
	if deficit <= 0 || len(idxs) == 0 {
		return deficit
	}
	total := 0
	for _, idx := range idxs {
		total += sizes[idx]
	}
	if total == 0 {
		return deficit
	}

	remove := deficit
	if remove > total {
		remove = total
	}

	type share struct {
		pos       int
		remainder float64
	}
	shares := make([]share, len(idxs))
	removed := 0
	for i, idx := range idxs {
		exact := float64(remove) * float64(sizes[idx]) / float64(total)
		floor := int(exact)
		sizes[idx] -= floor
		removed += floor
		shares[i] = share{pos: i, remainder: exact - float64(floor)}
	}

	left := remove - removed
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})
	for k := 0; k < left && k < len(shares); k++ {
		idx := idxs[shares[k].pos]
		if sizes[idx] > 0 {
			sizes[idx]--
		}
	}

	return deficit - remove
}

// normalize guarantees every slot is non-negative and the sum equals
// target exactly, regardless of rounding drift upstream.
func normalize(sizes []int, target int) {
	for i, s := range sizes {
		if s < 0 {
			sizes[i] = 0
		}
	}
	diff := target - sumInts(sizes)
	if diff == 0 {
		return
	}
	if diff > 0 {
		sizes[len(sizes)-1] += diff
		return
	}
	// diff < 0: pull the excess off from the back forward.
	excess := -diff
	for i := len(sizes) - 1; i >= 0 && excess > 0; i-- {
		take := sizes[i]
		if take > excess {
			take = excess
		}
		sizes[i] -= take
		excess -= take
	}
}

func toRects(area Rect, direction Direction, sizes []int) []Rect {
	out := make([]Rect, len(sizes))
	pos := 0
	for i, s := range sizes {
		if direction == Horizontal {
			out[i] = Rect{X: area.X + pos, Y: area.Y, Width: s, Height: area.Height}
		} else {
			out[i] = Rect{X: area.X, Y: area.Y + pos, Width: area.Width, Height: s}
		}
		pos += s
	}
	return out
}

func sumInts(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}
	return s
}
