package classify

// Orientation is the strand signature of a canonically ordered pair, the
// upstream read's strand first.
type Orientation uint8

const (
	// FF means both reads on the forward strand.
	FF Orientation = iota
	// RR means both reads on the reverse strand.
	RR
	// FR means the upstream read forward, the downstream read reverse.
	FR
	// RF means the upstream read reverse, the downstream read forward.
	RF
)

// numOrientations is the number of distinct strand signatures.
const numOrientations = 4

func orientationOf(upReverse, downReverse bool) Orientation {
	if upReverse {
		if downReverse {
			return RR
		}
		return RF
	}
	if downReverse {
		return FR
	}
	return FF
}

func (o Orientation) String() string {
	switch o {
	case FF:
		return "FF"
	case RR:
		return "RR"
	case FR:
		return "FR"
	case RF:
		return "RF"
	}
	return "??"
}
