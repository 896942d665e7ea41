package play

import (
	"fmt"
	"strings"
)

// ParseFormat checks a printf style file name pattern holding exactly one
// integer conversion, such as "frame%04d.txt", and returns it in a form
// accepted by fmt. C length modifiers (l, ll, L, q) are accepted and dropped;
// %i and %u become %d.
func ParseFormat(format string) (string, error) {
	start := strings.IndexByte(format, '%')
	if start < 0 {
		return "", fmt.Errorf("%w: no conversion in format %q", ErrArgument, format)
	}

	i := start + 1
	for i < len(format) && format[i] >= '0' && format[i] <= '9' {
		i++
	}
	width := format[start+1 : i]

	longs := 0
loop:
	for ; i < len(format); i++ {
		switch format[i] {
		case 'l':
			longs++
		case 'L', 'q':
			longs += 2
		default:
			break loop
		}
	}
	if i == len(format) {
		return "", fmt.Errorf("%w: incomplete conversion in format %q", ErrArgument, format)
	}
	if longs > 2 {
		return "", fmt.Errorf("%w: invalid length modifier in format %q", ErrArgument, format)
	}

	verb := format[i]
	switch verb {
	case 'd', 'i', 'u':
		verb = 'd'
	case 'o', 'x', 'X':
	default:
		return "", fmt.Errorf("%w: unsupported conversion %%%c in format %q", ErrArgument, format[i], format)
	}

	rest := format[i+1:]
	if strings.IndexByte(rest, '%') >= 0 {
		return "", fmt.Errorf("%w: more than one conversion in format %q", ErrArgument, format)
	}

	return format[:start] + "%" + width + string(verb) + rest, nil
}
