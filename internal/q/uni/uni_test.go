package uni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// "a" + combining acute, "b", and a CJK ideograph.
const mixed = "áb世"

func TestTextWidthDefault(t *testing.T) {
	assert.Equal(t, 4, TextWidth(mixed, nil))
	assert.Equal(t, 0, TextWidth("", nil))
}

func TestTextWidthOptions(t *testing.T) {
	star := "a☆"
	eye := "a\U0001F441"

	assert.Equal(t, 2, TextWidth(star, nil))

	eastAsian := &Options{EastAsianWidth: true}
	assert.Equal(t, 3, TextWidth(star, eastAsian))
	assert.Equal(t, 2, TextWidth(eye, eastAsian))

	wideEmoji := &Options{
		EastAsianWidth:   true,
		TreatEmojiAsWide: true,
	}
	assert.Equal(t, 3, TextWidth(eye, wideEmoji))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5, "…", nil))
	assert.Equal(t, "hel…", Truncate("hello", 4, "…", nil))
	assert.Equal(t, "…", Truncate("hello", 1, "…", nil))
	assert.Equal(t, "", Truncate("hello", 0, "…", nil))

	// The wide ideograph does not fit in the remaining column, so it is dropped whole.
	assert.Equal(t, "áb…", Truncate(mixed+"x", 4, "…", nil))
	assert.Equal(t, "áb…", Truncate(mixed, 3, "…", nil))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, mixed+"  ", PadRight(mixed, 6, nil))
	assert.Equal(t, "abc", PadRight("abc", 2, nil))
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "    x", ExpandTabs("\tx", 4, nil))
	assert.Equal(t, "ab  x", ExpandTabs("ab\tx", 4, nil))
	assert.Equal(t, "世  x", ExpandTabs("世\tx", 4, nil))
	assert.Equal(t, "no tabs", ExpandTabs("no tabs", 4, nil))
}

func TestClusters(t *testing.T) {
	var values []string
	var widths []int
	Clusters(mixed, nil, func(c string, w int) bool {
		values = append(values, c)
		widths = append(widths, w)
		return true
	})
	assert.Equal(t, []string{"á", "b", "世"}, values)
	assert.Equal(t, []int{1, 1, 2}, widths)

	n := 0
	Clusters(mixed, nil, func(string, int) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}
