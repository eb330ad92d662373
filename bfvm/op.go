package bfvm

type Op uint8

const (
	OpNop Op = iota
	OpRight
	OpLeft
	OpInc
	OpDec
	OpOut
	OpIn
	OpLoop
	OpEnd
	OpTap // only meaningful when the engine has a tap installed
)

var decodeTable = [256]Op{
	'>': OpRight,
	'<': OpLeft,
	'+': OpInc,
	'-': OpDec,
	'.': OpOut,
	',': OpIn,
	'[': OpLoop,
	']': OpEnd,
	'#': OpTap,
}

func Decode(b byte) Op {
	return decodeTable[b]
}

func (o Op) String() string {
	switch o {
	case OpRight:
		return ">"
	case OpLeft:
		return "<"
	case OpInc:
		return "+"
	case OpDec:
		return "-"
	case OpOut:
		return "."
	case OpIn:
		return ","
	case OpLoop:
		return "["
	case OpEnd:
		return "]"
	case OpTap:
		return "#"
	}
	return "nop"
}
