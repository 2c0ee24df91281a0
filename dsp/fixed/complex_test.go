package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexConversion(t *testing.T) {
	c := FromComplex128(complex(0.5, -1.25))
	assert.Equal(t, FromFloat(0.5), c.Re)
	assert.Equal(t, FromFloat(-1.25), c.Im)
	assert.Equal(t, complex(0.5, -1.25), c.Complex128())
	assert.Equal(t, "(0.5-1.25i)", c.String())
	assert.Equal(t, "(2+0i)", FromComplex128(2).String())
}

func TestComplexArithmetic(t *testing.T) {
	a := FromComplex128(complex(1, 2))
	b := FromComplex128(complex(3, -1))

	assert.Equal(t, FromComplex128(complex(4, 1)), a.Add(b))
	assert.Equal(t, FromComplex128(complex(-2, 3)), a.Sub(b))
	assert.Equal(t, FromComplex128(complex(1, -2)), a.Conj())
	// (1+2i)(3-i) = 5+5i
	assert.Equal(t, FromComplex128(complex(5, 5)), a.Mul(b))
	assert.Equal(t, FromComplex128(complex(0.5, 1)), a.Scale(One/2))
	assert.Equal(t, FromComplex128(complex(4, 8)), a.MulInt(4))
}

func TestComplexSaturatesPerPart(t *testing.T) {
	a := Complex{Re: Max, Im: -One}
	got := a.Add(Complex{Re: One, Im: One})
	assert.Equal(t, Max, got.Re)
	assert.Equal(t, Q16(0), got.Im)

	got = Complex{Re: FromFloat(20000), Im: FromFloat(-20000)}.MulInt(3)
	assert.Equal(t, Complex{Re: Max, Im: Min}, got)
}

func TestComplexIsZero(t *testing.T) {
	assert.True(t, Complex{}.IsZero())
	assert.False(t, Complex{Im: 1}.IsZero())
}
