package fixed

const fracMask = int64(One) - 1

// Acc is an exact sum of Q16 values and Q16*Q16 products. The integer
// part and the 16-bit fraction are kept apart, so a few full-range
// products cannot overflow int64. The zero value is an empty sum.
type Acc struct {
	whole int64
	frac  int64
}

// Add adds q to the sum.
func (a *Acc) Add(q Q16) {
	a.whole += int64(q)
}

// MulAdd adds x*y to the sum.
func (a *Acc) MulAdd(x, y Q16) {
	a.add(int64(x) * int64(y))
}

// MulSub subtracts x*y from the sum.
func (a *Acc) MulSub(x, y Q16) {
	a.add(-(int64(x) * int64(y)))
}

func (a *Acc) add(p int64) {
	a.whole += p >> FracBits
	a.frac += p & fracMask
}

// floor returns the sum rounded toward -inf and the dropped fraction.
func (a Acc) floor() (int64, int64) {
	return a.whole + a.frac>>FracBits, a.frac & fracMask
}

// Round returns the sum rounded to nearest (ties toward +inf), saturated.
func (a Acc) Round() Q16 {
	f, r := a.floor()
	return Saturate(f + (r+half)>>FracBits)
}

// Truncate returns the sum rounded toward zero, saturated. Magnitude
// truncation never rounds a value away from zero.
func (a Acc) Truncate() Q16 {
	f, r := a.floor()
	if f < 0 && r != 0 {
		f++
	}
	return Saturate(f)
}
