package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// node is one GEDCOM line with its nested sub-lines. CONC/CONT continuations
// are folded into the parent's value while reading.
type node struct {
	level    int
	xref     string
	tag      string
	value    string
	line     int
	children []*node
}

func (n *node) child(tag string) *node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

func (n *node) childValue(tag string) string {
	if c := n.child(tag); c != nil {
		return c.value
	}
	return ""
}

// readRecords parses the line stream into level-0 records.
func readRecords(r io.Reader) ([]*node, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var (
		records []*node
		stack   []*node
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimRight(text, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		n, err := parseLine(text, lineNo)
		if err != nil {
			return nil, err
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= n.level {
			stack = stack[:len(stack)-1]
		}
		if n.level == 0 {
			records = append(records, n)
			stack = append(stack[:0], n)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].level != n.level-1 {
			return nil, fmt.Errorf("line %d: level %d has no parent", lineNo, n.level)
		}
		parent := stack[len(stack)-1]
		switch n.tag {
		case "CONC":
			parent.value += n.value
			continue
		case "CONT":
			parent.value += "\n" + n.value
			continue
		}
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read gedcom: %w", err)
	}
	return records, nil
}

// parseLine splits "level [@xref@] TAG [value]".
func parseLine(text string, lineNo int) (*node, error) {
	rest := strings.TrimLeft(text, " \t")
	levelStr, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return nil, fmt.Errorf("line %d: malformed line %q", lineNo, text)
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 {
		return nil, fmt.Errorf("line %d: invalid level %q", lineNo, levelStr)
	}

	n := &node{level: level, line: lineNo}
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, "@") {
		xref, after, _ := strings.Cut(rest, " ")
		n.xref = xref
		rest = strings.TrimLeft(after, " ")
	}
	tag, value, _ := strings.Cut(rest, " ")
	if tag == "" {
		return nil, fmt.Errorf("line %d: missing tag", lineNo)
	}
	n.tag = strings.ToUpper(tag)
	n.value = value
	return n, nil
}
