package charset

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

func concat(parts ...[]rune) []rune {
	var out []rune
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Half-width katakana U+FF66..U+FF9D; the two trailing sound marks are excluded
var halfwidthKatakana = runeRange(0xFF66, 0xFF9D)

var (
	Matrix   = mustNew("matrix", concat(runeRange(0xFF66, 0xFF9F), runeRange('0', '9'), []rune(`:."=*+-<>|~^`)))
	ASCII    = mustNew("ascii", runeRange('!', '~'))
	Binary   = mustNew("binary", []rune("01"))
	Digits   = mustNew("digits", runeRange('0', '9'))
	Katakana = mustNew("katakana", halfwidthKatakana)
	Latin    = mustNew("latin", concat(runeRange('A', 'Z'), runeRange('a', 'z')))
)

var builtins = []*Set{Matrix, ASCII, Binary, Digits, Katakana, Latin}
