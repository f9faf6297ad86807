package templating

import "strings"

// inc returns i + 1.
func inc(i int) int {
	return i + 1
}

// add returns a + b.
func add(a, b int) int {
	return a + b
}

// upper returns s in upper case.
func upper(s string) string {
	return strings.ToUpper(s)
}

// lower returns s in lower case.
func lower(s string) string {
	return strings.ToLower(s)
}

// join concatenates elems with sep between them.
func join(sep string, elems []string) string {
	return strings.Join(elems, sep)
}

// trim removes leading and trailing whitespace.
func trim(s string) string {
	return strings.TrimSpace(s)
}

// curly wraps s in typographic double quotes, unless it is empty.
func curly(s string) string {
	if s == "" {
		return ""
	}
	return "“" + s + "”"
}

// words returns the number of space-separated words in s.
func words(s string) int {
	return len(strings.Fields(s))
}

// defaultString returns s, or def if s is empty.
func defaultString(def, s string) string {
	if s == "" {
		return def
	}
	return s
}
