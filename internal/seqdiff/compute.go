package seqdiff

// Options bound the work a diff may do. A nil *Options, or a zero field, means unbounded.
type Options struct {
	// MaxTokens fails the diff before any work when len(left)+len(right) exceeds it.
	MaxTokens int

	// MaxEditDistance fails the diff as soon as the search proves that more than MaxEditDistance inserted plus deleted tokens are needed.
	MaxEditDistance int
}

func (o *Options) validate() error {
	if o == nil {
		return nil
	}
	if o.MaxTokens < 0 {
		return invalidInput("seqdiff: negative MaxTokens", "maxtokens", o.MaxTokens)
	}
	if o.MaxEditDistance < 0 {
		return invalidInput("seqdiff: negative MaxEditDistance", "maxeditdistance", o.MaxEditDistance)
	}
	return nil
}

// Compute diffs left against right with no effort bound. It cannot fail: tokens that are not equal to themselves (ex: NaN) simply never match.
func Compute[T comparable](left, right []T) Result {
	r, err := run(left, right, equal[T], 0)
	if err != nil {
		// Unreachable without an edit bound.
		panic(err)
	}
	return r
}

// ComputeWithOptions diffs left against right within the limits of opts. It returns an error wrapping ErrInvalidInput when opts is malformed or a token is
// not equal to itself, and an error wrapping ErrEffortExceeded when a limit is hit.
func ComputeWithOptions[T comparable](left, right []T, opts *Options) (Result, error) {
	return ComputeFunc(left, right, equal[T], opts)
}

// ComputeFunc is like ComputeWithOptions but compares tokens with eq, which must be an equivalence relation (reflexive, symmetric, transitive). A nil eq
// is ErrInvalidInput.
func ComputeFunc[T any](left, right []T, eq func(a, b T) bool, opts *Options) (Result, error) {
	if eq == nil {
		return Result{}, invalidInput("seqdiff: nil equality func")
	}
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if err := checkReflexive("left", left, eq); err != nil {
		return Result{}, err
	}
	if err := checkReflexive("right", right, eq); err != nil {
		return Result{}, err
	}

	maxEdits := 0
	if opts != nil {
		if opts.MaxTokens > 0 && len(left)+len(right) > opts.MaxTokens {
			return Result{}, effortExceeded("seqdiff: input too large", "limit", opts.MaxTokens, "left", len(left), "right", len(right))
		}
		maxEdits = opts.MaxEditDistance
	}
	return run(left, right, eq, maxEdits)
}

func equal[T comparable](a, b T) bool {
	return a == b
}

func checkReflexive[T any](side string, s []T, eq func(a, b T) bool) error {
	for i, v := range s {
		if !eq(v, v) {
			return invalidInput("seqdiff: token is not equal to itself", "side", side, "index", i)
		}
	}
	return nil
}

// run computes the edit script. maxEdits of 0 is unbounded.
func run[T any](left, right []T, eq func(a, b T) bool, maxEdits int) (Result, error) {
	d := &differ[T]{
		left:     left,
		right:    right,
		eq:       eq,
		deleted:  make([]bool, len(left)),
		inserted: make([]bool, len(right)),
		maxEdits: maxEdits,
	}
	if err := d.compare(0, len(left), 0, len(right), true); err != nil {
		return Result{}, err
	}
	slide(left, d.deleted, eq)
	slide(right, d.inserted, eq)
	return buildResult(d.deleted, d.inserted), nil
}

// buildResult turns per-token change marks into edits. In each change region deletions are emitted before insertions.
func buildResult(deleted, inserted []bool) Result {
	n, m := len(deleted), len(inserted)
	r := Result{LeftLen: n, RightLen: m}
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && deleted[i]:
			start := i
			for i < n && deleted[i] {
				i++
			}
			r.Edits = append(r.Edits, Edit{Op: OpDelete, LeftStart: start, LeftEnd: i, RightStart: j, RightEnd: j})
		case j < m && inserted[j]:
			start := j
			for j < m && inserted[j] {
				j++
			}
			r.Edits = append(r.Edits, Edit{Op: OpInsert, LeftStart: i, LeftEnd: i, RightStart: start, RightEnd: j})
		case i < n && j < m:
			si, sj := i, j
			for i < n && j < m && !deleted[i] && !inserted[j] {
				i++
				j++
			}
			r.Edits = append(r.Edits, Edit{Op: OpEqual, LeftStart: si, LeftEnd: i, RightStart: sj, RightEnd: j})
		default:
			panic("seqdiff: unbalanced change marks")
		}
	}
	return r
}
