package block

type line struct {
	start int
	end   int // excludes the line ending
	next  int // start of the following line
}

func splitLines(src string) []line {
	var lines []line
	start := 0
	for start < len(src) {
		i := start
		for i < len(src) && src[i] != '\n' && src[i] != '\r' {
			i++
		}
		next := i
		if next < len(src) {
			if src[next] == '\r' && next+1 < len(src) && src[next+1] == '\n' {
				next += 2
			} else {
				next++
			}
		}
		lines = append(lines, line{start: start, end: i, next: next})
		start = next
	}
	return lines
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

// column returns the visual column of pos in the line starting at lineStart,
// with tab stops every four columns.
func column(src string, lineStart, pos int) int {
	col := 0
	for i := lineStart; i < pos && i < len(src); i++ {
		if src[i] == '\t' {
			col += 4 - col%4
		} else {
			col++
		}
	}
	return col
}

// skipIndent skips spaces and tabs from pos, stopping once more than limit
// columns have been skipped. It returns the new position and the number of
// columns skipped.
func skipIndent(src string, lineStart, pos, end, limit int) (int, int) {
	base := column(src, lineStart, pos)
	q := pos
	for q < end && (src[q] == ' ' || src[q] == '\t') {
		if column(src, lineStart, q+1)-base > limit {
			q++
			break
		}
		q++
	}
	return q, column(src, lineStart, q) - base
}

func trimRight(src string, start, end int) int {
	for end > start && (src[end-1] == ' ' || src[end-1] == '\t') {
		end--
	}
	return end
}

func skipSpaces(src string, pos, end int) int {
	for pos < end && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	return pos
}
