package bfvm

// Cell is an 8-bit unsigned tape cell. Arithmetic is modulo 1<<CellBits.
type Cell uint8

const (
	CellBits = 8

	cellModulus = 1 << CellBits

	CellMax Cell = cellModulus - 1
)

func (c Cell) Inc() Cell {
	return Cell((uint(c) + 1) % cellModulus)
}

func (c Cell) Dec() Cell {
	return Cell((uint(c) + cellModulus - 1) % cellModulus)
}

// CellOf maps any integer onto the cell range, so CellOf(-1) == CellMax.
func CellOf(i int) Cell {
	m := i % cellModulus
	if m < 0 {
		m += cellModulus
	}
	return Cell(m)
}
