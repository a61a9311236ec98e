package calc

import "math"

// funcs maps function names to their node kinds.
var funcs = map[string]nodeKind{
	"sin": nodeSin,
	"cos": nodeCos,
	"tan": nodeTan,
}

// binops maps operator text to node kinds.
var binops = map[string]nodeKind{
	"+": nodeAdd,
	"-": nodeSub,
	"*": nodeMul,
	"/": nodeDiv,
	"^": nodePow,
}

// unary returns whether k is a function of one argument.
func (k nodeKind) unary() bool {
	switch k {
	case nodeSin, nodeCos, nodeTan:
		return true
	default:
		return false
	}
}

// binary returns whether k is an operator of two arguments.
func (k nodeKind) binary() bool {
	switch k {
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return true
	default:
		return false
	}
}

// apply computes the operation of k on x and y. Unary functions ignore y.
// Division follows IEEE semantics. The result is false if k is not an
// operation.
func (k nodeKind) apply(x, y float64) (float64, bool) {
	switch k {
	case nodeSin:
		return math.Sin(x), true
	case nodeCos:
		return math.Cos(x), true
	case nodeTan:
		return math.Tan(x), true
	case nodeAdd:
		return x + y, true
	case nodeSub:
		return x - y, true
	case nodeMul:
		return x * y, true
	case nodeDiv:
		return x / y, true
	case nodePow:
		return math.Pow(x, y), true
	default:
		return 0, false
	}
}
