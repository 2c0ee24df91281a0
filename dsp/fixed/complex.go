package fixed

import "fmt"

// Complex is a complex value with Q16 parts.
type Complex struct {
	Re Q16
	Im Q16
}

// FromComplex128 converts c with the rounding and saturation of [FromFloat].
func FromComplex128(c complex128) Complex {
	return Complex{Re: FromFloat(real(c)), Im: FromFloat(imag(c))}
}

// Complex128 returns c as complex128. The conversion is exact.
func (c Complex) Complex128() complex128 {
	return complex(c.Re.Float(), c.Im.Float())
}

func (c Complex) String() string {
	if c.Im < 0 {
		return fmt.Sprintf("(%v-%vi)", c.Re, c.Im.Neg())
	}
	return fmt.Sprintf("(%v+%vi)", c.Re, c.Im)
}

// IsZero reports whether both parts are exactly zero.
func (c Complex) IsZero() bool {
	return c.Re == 0 && c.Im == 0
}

// Add returns c+d with per-part saturation.
func (c Complex) Add(d Complex) Complex {
	return Complex{Re: c.Re.Add(d.Re), Im: c.Im.Add(d.Im)}
}

// Sub returns c-d with per-part saturation.
func (c Complex) Sub(d Complex) Complex {
	return Complex{Re: c.Re.Sub(d.Re), Im: c.Im.Sub(d.Im)}
}

// Conj returns the complex conjugate of c.
func (c Complex) Conj() Complex {
	return Complex{Re: c.Re, Im: c.Im.Neg()}
}

// Scale multiplies both parts by the real scalar s.
func (c Complex) Scale(s Q16) Complex {
	return Complex{Re: c.Re.Mul(s), Im: c.Im.Mul(s)}
}

// MulInt multiplies both parts by the integer n.
func (c Complex) MulInt(n int) Complex {
	return Complex{Re: c.Re.MulInt(n), Im: c.Im.MulInt(n)}
}

// Mul returns the complex product c*d. Each part is accumulated wide and
// saturated once.
func (c Complex) Mul(d Complex) Complex {
	return Complex{
		Re: Saturate(MulWide(c.Re, d.Re) - MulWide(c.Im, d.Im)),
		Im: Saturate(MulWide(c.Re, d.Im) + MulWide(c.Im, d.Re)),
	}
}
