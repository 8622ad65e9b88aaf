package value

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxConstants is the largest number of distinct constants a single Chunk
// may hold: the CONSTANT opcode's operand is a single byte.
const MaxConstants = 256

// ConstantPool is a Chunk's append-only sequence of Values, referenced by
// one-byte index from CONSTANT instructions.
type ConstantPool struct {
	values   []Value
	interned map[string]byte
}

// Add appends v and returns its index. Past the 256th distinct constant, Add
// logs the overflow through logrus, substitutes index 0, and returns a
// non-nil error; the caller still gets a usable Chunk back - the compiler
// does not abort the whole compile over a full constant pool.
func (p *ConstantPool) Add(v Value) (byte, error) {
	if len(p.values) >= MaxConstants {
		err := fmt.Errorf("constant pool overflow: chunk already holds %d constants, substituting index 0", MaxConstants)
		logrus.Error(err)
		return 0, err
	}
	p.values = append(p.values, v)
	return byte(len(p.values) - 1), nil
}

// Intern is like Add but deduplicates String values by content, so that
// compiling the same string literal twice reuses one constant-pool slot.
func (p *ConstantPool) Intern(s string) (byte, error) {
	if p.interned == nil {
		p.interned = make(map[string]byte)
	}
	if idx, ok := p.interned[s]; ok {
		return idx, nil
	}
	idx, err := p.Add(String(s))
	if err != nil {
		return idx, err
	}
	p.interned[s] = idx
	return idx, nil
}

// Get returns the constant at idx.
func (p *ConstantPool) Get(idx byte) Value {
	return p.values[idx]
}

// Len reports how many constants the pool currently holds.
func (p *ConstantPool) Len() int {
	return len(p.values)
}
