package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPointerAndValueOrZero(t *testing.T) {
	p := ToPointer(42.5)
	assert.Equal(t, 42.5, *p)
	assert.Equal(t, 42.5, ValueOrZero(p))
	assert.Zero(t, ValueOrZero[float64](nil))
	assert.Equal(t, "", ValueOrZero[string](nil))
}

func TestTimeNowNY(t *testing.T) {
	now := TimeNowNY()
	assert.Equal(t, "America/New_York", now.Location().String())
}
