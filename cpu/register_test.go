package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntReg(t *testing.T) {
	assert := assert.New(t)

	for n := range 32 {
		index, err := IntReg(fmt.Sprintf("x%d", n))
		assert.NoError(err)
		assert.Equal(uint8(n), index)
	}

	// ABI aliases.
	for name, expected := range map[string]uint8{
		"zero": 0, "ra": 1, "sp": 2, "a0": 10, "a7": 17, "t6": 31,
	} {
		index, err := IntReg(name)
		assert.NoError(err)
		assert.Equal(expected, index, name)
	}

	// s0 and fp are the same register.
	s0, err := IntReg("s0")
	assert.NoError(err)
	fp, err := IntReg("fp")
	assert.NoError(err)
	assert.Equal(s0, fp)
	assert.Equal(uint8(8), s0)
}

func TestFloatReg(t *testing.T) {
	assert := assert.New(t)

	for n := range 32 {
		index, err := FloatReg(fmt.Sprintf("f%d", n))
		assert.NoError(err)
		assert.Equal(uint8(n), index)
	}

	index, err := FloatReg("fa0")
	assert.NoError(err)
	assert.Equal(uint8(10), index)
}

func TestStatusReg(t *testing.T) {
	assert := assert.New(t)

	for name, expected := range map[string]uint8{
		"cycle": 0, "time": 1, "instret": 2,
		"cycleh": 3, "timeh": 4, "instreth": 5,
	} {
		index, err := StatusReg(name)
		assert.NoError(err)
		assert.Equal(expected, index, name)
	}
}

func TestRegUnknown(t *testing.T) {
	assert := assert.New(t)

	for _, lookup := range []func(string) (uint8, error){IntReg, FloatReg, StatusReg} {
		_, err := lookup("x32")
		var unknown ErrRegisterUnknown
		assert.True(errors.As(err, &unknown))
		assert.Equal("x32", string(unknown))
	}

	// The namespaces never bleed into each other.
	_, err := IntReg("fa0")
	assert.Error(err)
	_, err = FloatReg("a0")
	assert.Error(err)
}
