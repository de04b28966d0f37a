package zval

// NaturalCompare compares two strings in natural order, the way strnatcmp
// and strnatcasecmp do: runs of digits compare by numeric value, so "img2"
// sorts before "img10". Leading zeros at the start of a string are ignored;
// a digit run starting with a zero elsewhere compares digit by digit as a
// fractional part. foldCase ignores ASCII case.
func NaturalCompare(a, b string, foldCase bool) int {
	if len(a) == 0 || len(b) == 0 {
		return compareInts(int64(len(a)), int64(len(b)))
	}

	ap, bp := 0, 0
	leading := true
	for {
		ca, cb := byteAt(a, ap), byteAt(b, bp)

		for leading && ca == '0' && ap+1 < len(a) && isDigit(a[ap+1]) {
			ap++
			ca = a[ap]
		}
		for leading && cb == '0' && bp+1 < len(b) && isDigit(b[bp+1]) {
			bp++
			cb = b[bp]
		}
		leading = false

		for isSpace(ca) {
			ap++
			ca = byteAt(a, ap)
		}
		for isSpace(cb) {
			bp++
			cb = byteAt(b, bp)
		}

		if isDigit(ca) && isDigit(cb) {
			var r int
			if ca == '0' || cb == '0' {
				r = compareLeftAligned(a, b, &ap, &bp)
			} else {
				r = compareRightAligned(a, b, &ap, &bp)
			}

			switch {
			case r != 0:
				return r
			case ap == len(a) && bp == len(b):
				return 0
			case ap == len(a):
				return -1
			case bp == len(b):
				return 1
			}
			ca, cb = a[ap], b[bp]
		}

		if foldCase {
			ca, cb = upper(ca), upper(cb)
		}
		if ca != cb {
			return compareInts(int64(ca), int64(cb))
		}

		ap++
		bp++
		switch {
		case ap >= len(a) && bp >= len(b):
			return 0
		case ap >= len(a):
			return -1
		case bp >= len(b):
			return 1
		}
	}
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}

	return 0
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}

	return c
}

// compareRightAligned compares two digit runs by magnitude: the longer run
// wins, equal lengths are decided by the first differing digit.
func compareRightAligned(a, b string, ap, bp *int) int {
	bias := 0
	for ; ; *ap, *bp = *ap+1, *bp+1 {
		da, db := isDigit(byteAt(a, *ap)), isDigit(byteAt(b, *bp))
		switch {
		case !da && !db:
			return bias
		case !da:
			return -1
		case !db:
			return 1
		}

		if bias == 0 {
			bias = compareInts(int64(a[*ap]), int64(b[*bp]))
		}
	}
}

// compareLeftAligned compares two digit runs as fractions: the first
// differing digit wins.
func compareLeftAligned(a, b string, ap, bp *int) int {
	for ; ; *ap, *bp = *ap+1, *bp+1 {
		da, db := isDigit(byteAt(a, *ap)), isDigit(byteAt(b, *bp))
		switch {
		case !da && !db:
			return 0
		case !da:
			return -1
		case !db:
			return 1
		}

		if c := compareInts(int64(a[*ap]), int64(b[*bp])); c != 0 {
			return c
		}
	}
}
