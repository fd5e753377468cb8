package vm

// Word is the machine word; all arithmetic on it wraps modulo 2^16.
type Word = uint16

type cpu_flag = Word

// general purpose registers
const (
	R0 = 0b000
	R1 = 0b001
	R2 = 0b010
	R3 = 0b011
	R4 = 0b100
	R5 = 0b101
	R6 = 0b110
	R7 = 0b111
)

// flags
const (
	FLAG_POS cpu_flag = 0b001
	FLAG_ZRO cpu_flag = 0b010
	FLAG_NEG cpu_flag = 0b100
)

// Registers holds the register file. Cond always has exactly one flag set.
type Registers struct {
	R    [8]Word
	PC   Word
	Cond cpu_flag
}

func (r *Registers) updateFlags(dr Word) {
	if r.R[dr] == 0 {
		r.Cond = FLAG_ZRO
	} else if r.R[dr]>>15 != 0 {
		r.Cond = FLAG_NEG
	} else {
		r.Cond = FLAG_POS
	}
}

// set writes a general purpose register and recomputes the condition flags.
func (r *Registers) set(dr, value Word) {
	r.R[dr] = value
	r.updateFlags(dr)
}

func flagName(cond cpu_flag) string {
	switch cond {
	case FLAG_POS:
		return "P"
	case FLAG_ZRO:
		return "Z"
	case FLAG_NEG:
		return "N"
	}
	return "?"
}
