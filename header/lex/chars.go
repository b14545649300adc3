package lex

// IsWSP reports whether c is a space or horizontal tab.
func IsWSP(c byte) bool { return c == ' ' || c == '\t' }

// IsFWS reports whether c can be part of folding white space in an unfolded
// or partially unfolded body.
func IsFWS(c byte) bool { return IsWSP(c) || c == '\r' || c == '\n' }

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsAtext reports whether c may appear in an atom. Bytes of multi-byte UTF-8
// sequences are accepted as RFC 6532 allows.
func IsAtext(c byte) bool {
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return isAlpha(c) || IsDigit(c) || c >= 0x80
}

// IsSpecial reports whether c is one of the RFC 5322 specials.
func IsSpecial(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', ':', ';', '@', '\\', ',', '.', '"':
		return true
	}
	return false
}

// IsTSpecial reports whether c is one of the RFC 2045 tspecials.
func IsTSpecial(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=':
		return true
	}
	return false
}

// IsTokenChar reports whether c may appear in an RFC 2045 token.
func IsTokenChar(c byte) bool {
	return c > ' ' && c < 0x7f && !IsTSpecial(c)
}

// isObsNoWSCtl reports the control characters the obsolete syntax permits
// inside quoted-strings, comments and domain literals.
func isObsNoWSCtl(c byte) bool {
	return c >= 1 && c <= 8 || c == 11 || c == 12 || c >= 14 && c <= 31 || c == 127
}

// IsQtext reports whether c may appear unescaped in a quoted-string,
// including obs-qtext and UTF-8.
func IsQtext(c byte) bool {
	return c == 33 || c >= 35 && c <= 91 || c >= 93 && c <= 126 || c >= 0x80 || isObsNoWSCtl(c)
}

// IsDtext reports whether c may appear unescaped in a domain literal.
func IsDtext(c byte) bool {
	return c >= 33 && c <= 90 || c >= 94 && c <= 126 || c >= 0x80 || isObsNoWSCtl(c)
}

// IsAtom reports whether s is a non-empty run of atext.
func IsAtom(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsAtext(s[i]) {
			return false
		}
	}
	return true
}

// IsDotAtom reports whether s is a dot-atom-text: atoms joined by single
// dots.
func IsDotAtom(s string) bool {
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !IsAtom(s[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}

// IsToken reports whether s is a non-empty RFC 2045 token.
func IsToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// Quote renders s as a quoted-string, escaping double quotes and
// backslashes.
func Quote(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return string(append(b, '"'))
}
