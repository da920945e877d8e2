package seqdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatch_Apply(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "a b"},
		{"a b", ""},
		{"a b c", "a x c"},
		{"a b c d e", "a x c e f"},
		{"x y z", "x y z"},
	}
	for _, p := range pairs {
		left, right := toks(p[0]), toks(p[1])
		patch := NewPatch(Compute(left, right), right)

		got, err := patch.Apply(left)
		require.NoError(t, err)
		require.Equal(t, len(right), len(got))
		for i := range right {
			require.Equal(t, right[i], got[i])
		}
	}
}

func TestPatch_ApplyRejectsMismatchedInput(t *testing.T) {
	left, right := toks("a b c"), toks("a x c")
	patch := NewPatch(Compute(left, right), right)

	_, err := patch.Apply(toks("a b"))
	require.ErrorIs(t, err, ErrInvalidInput)

	patch.Inserted = nil
	_, err = patch.Apply(left)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPatch_ApplyRejectsExtraInsertedRuns(t *testing.T) {
	left, right := toks("a b c"), toks("a x c")
	patch := NewPatch(Compute(left, right), right)
	patch.Inserted = append(patch.Inserted, []string{"y"})

	_, err := patch.Apply(left)
	require.ErrorIs(t, err, ErrInvalidInput)

	// A patch with no inserts must not carry inserted runs either.
	same := NewPatch(Compute(left, left), left)
	same.Inserted = [][]string{{"z"}}
	_, err = same.Apply(left)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPatch_DoesNotAliasRight(t *testing.T) {
	left, right := toks("a"), toks("a b")
	patch := NewPatch(Compute(left, right), right)
	right[1] = "changed"

	got, err := patch.Apply(left)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}
