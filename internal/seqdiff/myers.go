package seqdiff

// differ marks which tokens of left are deleted and which tokens of right are inserted. Unmarked tokens form a longest common subsequence.
type differ[T any] struct {
	left, right []T
	eq          func(a, b T) bool

	deleted  []bool
	inserted []bool

	// maxEdits bounds the edit distance (0 is unbounded). It is checked on the outermost call only: sub-problems never need more edits than the whole.
	maxEdits int
}

// compare diffs left[aLo:aHi] against right[bLo:bHi].
func (d *differ[T]) compare(aLo, aHi, bLo, bHi int, outer bool) error {
	for aLo < aHi && bLo < bHi && d.eq(d.left[aLo], d.right[bLo]) {
		aLo++
		bLo++
	}
	for aLo < aHi && bLo < bHi && d.eq(d.left[aHi-1], d.right[bHi-1]) {
		aHi--
		bHi--
	}

	if aLo == aHi || bLo == bHi {
		if outer {
			if err := d.checkDistance(aHi - aLo + bHi - bLo); err != nil {
				return err
			}
		}
		d.markAll(aLo, aHi, bLo, bHi)
		return nil
	}

	x, y, ok, err := d.bisect(aLo, aHi, bLo, bHi, outer)
	if err != nil {
		return err
	}
	if !ok {
		d.markAll(aLo, aHi, bLo, bHi)
		return nil
	}
	if err := d.compare(aLo, x, bLo, y, false); err != nil {
		return err
	}
	return d.compare(x, aHi, y, bHi, false)
}

func (d *differ[T]) markAll(aLo, aHi, bLo, bHi int) {
	for i := aLo; i < aHi; i++ {
		d.deleted[i] = true
	}
	for j := bLo; j < bHi; j++ {
		d.inserted[j] = true
	}
}

func (d *differ[T]) checkDistance(atLeast int) error {
	if d.maxEdits > 0 && atLeast > d.maxEdits {
		return effortExceeded("seqdiff: edit distance over limit", "limit", d.maxEdits, "atleast", atLeast, "left", len(d.left), "right", len(d.right))
	}
	return nil
}

// bisect finds the middle snake of a shortest edit script between left[aLo:aHi] and right[bLo:bHi] (both non-empty, with no common prefix or suffix) and returns
// a split point (x, y) on that script. Both halves are strictly smaller than the whole. ok is false when the ranges share no token, in which case everything
// is deleted and inserted.
//
// Forward paths run from (aLo, bLo) and reverse paths from (aHi, bHi); the first diagonal on which they overlap gives the split. On a diagonal tie the forward
// search prefers advancing in left (a deletion) over advancing in right (an insertion).
func (d *differ[T]) bisect(aLo, aHi, bLo, bHi int, outer bool) (int, int, bool, error) {
	n, m := aHi-aLo, bHi-bLo
	maxD := (n + m + 1) / 2
	offset := maxD
	size := 2*maxD + 2
	vf := make([]int, size)
	vb := make([]int, size)
	for i := range vf {
		vf[i] = -1
		vb[i] = -1
	}
	vf[offset+1] = 0
	vb[offset+1] = 0

	delta := n - m
	// When delta is odd the paths can first meet during a forward step; when even, during a reverse step.
	front := delta%2 != 0

	// Diagonals that have run off the grid are trimmed from the ends of the search.
	kfStart, kfEnd, kbStart, kbEnd := 0, 0, 0, 0

	for step := 0; step < maxD; step++ {
		for k := -step + kfStart; k <= step-kfEnd; k += 2 {
			ki := offset + k
			var x int
			if k == -step || (k != step && vf[ki-1] < vf[ki+1]) {
				x = vf[ki+1]
			} else {
				x = vf[ki-1] + 1
			}
			y := x - k
			for x < n && y < m && d.eq(d.left[aLo+x], d.right[bLo+y]) {
				x++
				y++
			}
			vf[ki] = x
			switch {
			case x > n:
				kfEnd += 2
			case y > m:
				kfStart += 2
			case front:
				kb := offset + delta - k
				if kb >= 0 && kb < size && vb[kb] != -1 && vb[kb] <= n && x >= n-vb[kb] {
					if outer {
						if err := d.checkDistance(2*step - 1); err != nil {
							return 0, 0, false, err
						}
					}
					return aLo + x, bLo + y, true, nil
				}
			}
		}

		for k := -step + kbStart; k <= step-kbEnd; k += 2 {
			ki := offset + k
			var x int
			if k == -step || (k != step && vb[ki-1] < vb[ki+1]) {
				x = vb[ki+1]
			} else {
				x = vb[ki-1] + 1
			}
			y := x - k
			for x < n && y < m && d.eq(d.left[aHi-x-1], d.right[bHi-y-1]) {
				x++
				y++
			}
			vb[ki] = x
			switch {
			case x > n:
				kbEnd += 2
			case y > m:
				kbStart += 2
			case !front:
				kf := offset + delta - k
				if kf >= 0 && kf < size && vf[kf] != -1 {
					fx := vf[kf]
					fy := offset + fx - kf
					if fx <= n && fy <= m && fx >= n-x {
						if outer {
							if err := d.checkDistance(2 * step); err != nil {
								return 0, 0, false, err
							}
						}
						return aLo + fx, bLo + fy, true, nil
					}
				}
			}
		}

		if outer {
			if err := d.checkDistance(2*step + 1); err != nil {
				return 0, 0, false, err
			}
		}
	}

	if outer {
		if err := d.checkDistance(n + m); err != nil {
			return 0, 0, false, err
		}
	}
	return 0, 0, false, nil
}
