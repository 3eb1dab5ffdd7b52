package mathexpr

// FirstBalancedGroup returns the first balanced group in s delimited by open
// and close, including the delimiters. If s contains no open delimiter, or if
// the first group never closes, the result is s itself; callers must check
// for that case. If a close delimiter appears while no group is open, the
// result is an UnbalancedGroup error.
func FirstBalancedGroup(s string, open, close byte) (string, error) {
	start := -1
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			depth--
			if depth < 0 {
				return "", &Error{Kind: UnbalancedGroup, Col: i + 1, Text: string(close), Msg: "close with no open"}
			}
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return s, nil
}

// closer returns the close delimiter for an open delimiter.
func closer(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		panic("mathexpr: invalid group delimiter " + string(open))
	}
}

// isGroup reports whether g is a complete group opened by open.
func isGroup(g string, open byte) bool {
	return len(g) >= 2 && g[0] == open && g[len(g)-1] == closer(open)
}
