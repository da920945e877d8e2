package health

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanError(t *testing.T) {
	err := NewHumanErr("Don't frob that!", "bad_frobbing", "target", "thing")
	assert.Equal(t, "Don't frob that!", err.Error())
	assert.Equal(t, "bad_frobbing[target=thing]", err.(*HumanErr).HealthErr.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestWrapHuman(t *testing.T) {
	sentinel := errors.New("effort exceeded")
	err := WrapHuman("The files differ too much.", "diff aborted", sentinel, "limit", 10)

	assert.Equal(t, "The files differ too much.", err.Error())
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "diff aborted[limit=10] via effort exceeded", err.(*HumanErr).HealthErr.Error())
}
