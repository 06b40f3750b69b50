package gedcom

import (
	"strconv"
	"strings"
)

// idSpace maps xrefs of one record type onto positive integers. "@I42@"
// becomes 42; xrefs without a usable number, or whose number is taken, get
// sequential ids above the largest numeric one. Ids belong to declarations,
// not xref strings: a repeated declaration gets its own fresh id, and
// references resolve to the first declaration. References to xrefs that
// were never declared also receive fresh ids so the graph builder can report
// them as dangling.
type idSpace struct {
	ids  map[string]int
	used map[int]bool
	next int
}

// declared is the id given to one record, and its own sequence number (zero
// when the xref carried none or it repeats an earlier declaration).
type declared struct {
	id     int
	number int
}

func newIDSpace() *idSpace {
	return &idSpace{ids: make(map[string]int), used: make(map[int]bool)}
}

// declare assigns an id to every declaration, in order. Numeric xrefs are
// placed first so that fresh ids never steal a number declared later.
func (s *idSpace) declare(xrefs []string) []declared {
	out := make([]declared, len(xrefs))
	var pending []int
	for i, x := range xrefs {
		if _, ok := s.ids[x]; ok {
			pending = append(pending, i)
			continue
		}
		if n, ok := xrefNumber(x); ok && !s.used[n] {
			s.ids[x] = n
			s.used[n] = true
			s.next = max(s.next, n)
			out[i] = declared{id: n, number: n}
			continue
		}
		pending = append(pending, i)
	}
	for _, i := range pending {
		id := s.fresh()
		if _, ok := s.ids[xrefs[i]]; !ok {
			s.ids[xrefs[i]] = id
		}
		out[i] = declared{id: id}
	}
	return out
}

// lookup resolves a reference, allocating a fresh id for unknown xrefs.
func (s *idSpace) lookup(xref string) int {
	if id, ok := s.ids[xref]; ok {
		return id
	}
	id := s.fresh()
	s.ids[xref] = id
	return id
}

func (s *idSpace) fresh() int {
	s.next++
	for s.used[s.next] {
		s.next++
	}
	s.used[s.next] = true
	return s.next
}

func xrefNumber(xref string) (int, bool) {
	inner := strings.Trim(xref, "@")
	digits := strings.TrimLeftFunc(inner, func(r rune) bool { return r < '0' || r > '9' })
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
