package engine

import "math/big"

// fastMod implements fast modular reduction for moduli of the form
// 2^b - c with small c, the way the example corpus's common.FastMod does
// for discrete-log-group primes. A Mersenne modulus 2^E-1 is the
// degenerate, best-case instance of that family (c=1), so the reduction
// loop here always takes the fast path: split x into a low b-bit chunk
// and a high carry, fold carry*c back into the low chunk, and repeat
// until the carry vanishes.
type fastMod struct {
	b    uint
	c    big.Int // 2^b - p, equal to 1 for a Mersenne modulus
	p    big.Int
	mask big.Int // (1<<b) - 1
}

func newFastMod(p *big.Int) *fastMod {
	m := &fastMod{}
	m.p.Set(p)
	m.b = uint(p.BitLen())
	var pow big.Int
	pow.Lsh(big.NewInt(1), m.b)
	m.c.Sub(&pow, &m.p)
	m.mask.Sub(&pow, big.NewInt(1))
	return m
}

// mod sets ret = x mod p and returns it, assuming x >= 0.
func (m *fastMod) mod(ret, x *big.Int) *big.Int {
	if x.Cmp(&m.p) < 0 {
		return ret.Set(x)
	}

	cur := x
	var tmp, carry big.Int
	touched := false
	for {
		carry.Rsh(cur, m.b)
		if carry.Sign() == 0 {
			break
		}
		touched = true
		ret.And(cur, &m.mask)
		tmp.Mul(&carry, &m.c)
		ret.Add(ret, &tmp)
		cur = ret
	}

	if !touched {
		ret.Set(cur)
	}
	if ret.Cmp(&m.p) >= 0 {
		ret.Sub(ret, &m.p)
	}
	return ret
}
