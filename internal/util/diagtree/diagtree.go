package diagtree

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
)

// Node is one path segment. Notes attached to a node are displayed beneath
// it; nodes without notes in their subtree are never displayed.
type Node struct {
	Title string
	Notes []Note

	subfields       []*Node
	subfieldByTitle map[string]*Node
	doDisplay       bool
	parent          *Node
}

// Note is a single diagnostic message.
type Note struct {
	Severity Severity
	Message  string
}

func (m *Node) subfield(name string) *Node {
	contract.Assertf(name != "", "we cannot display an empty name")
	if v, ok := m.subfieldByTitle[name]; ok {
		return v
	}
	v := &Node{
		Title:  name,
		parent: m,
	}
	if m.subfieldByTitle == nil {
		m.subfieldByTitle = map[string]*Node{}
	}
	m.subfieldByTitle[name] = v
	m.subfields = append(m.subfields, v)
	return v
}

// Child returns the child titled name, creating it if needed.
func (m *Node) Child(name string) *Node {
	return m.subfield(name)
}

// Path descends through each segment in turn.
func (m *Node) Path(segments ...string) *Node {
	n := m
	for _, s := range segments {
		n = n.subfield(s)
	}
	return n
}

// AddNote attaches a message and marks the node and its ancestors for display.
func (m *Node) AddNote(level Severity, msg string, a ...any) {
	for v := m; v != nil && !v.doDisplay; v = v.parent {
		v.doDisplay = true
	}
	m.Notes = append(m.Notes, Note{Severity: level, Message: fmt.Sprintf(msg, a...)})
}

// PathTitles lists titles from the top of the tree down to m.
func (m *Node) PathTitles() []string {
	if m == nil {
		return nil
	}

	parts := []string{}
	for n := m; n != nil; n = n.parent {
		if n.Title == "" {
			continue
		}
		parts = append(parts, n.Title)
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return parts
}

// WalkDisplayed visits displayed nodes in insertion order.
func (m *Node) WalkDisplayed(visit func(*Node)) {
	if m == nil || visit == nil {
		return
	}
	m.walkDisplayed(visit)
}

func (m *Node) walkDisplayed(visit func(*Node)) {
	if m == nil || !m.doDisplay {
		return
	}
	visit(m)
	for _, child := range m.subfields {
		child.walkDisplayed(visit)
	}
}

// Prune drops every subtree that holds no notes.
func (m *Node) Prune() {
	sfs := []*Node{}
	for _, v := range m.subfields {
		if !v.doDisplay {
			continue
		}
		sfs = append(sfs, v)
		v.Prune()
	}
	if len(sfs) == 0 {
		m.subfields = nil
		m.subfieldByTitle = nil
		return
	}
	m.subfields = sfs
	m.subfieldByTitle = make(map[string]*Node, len(sfs))
	for _, child := range sfs {
		m.subfieldByTitle[child.Title] = child
	}
}

type cappedWriter struct {
	// The number of remaining lines before we hit the cap.
	remaining int
	out       io.Writer
}

func (c *cappedWriter) incr() {
	if c.remaining > 0 {
		// We never step past 0, because -1 indicates that we should always print
		c.remaining--
	}
}

func (c *cappedWriter) Write(p []byte) (n int, err error) {
	if c.remaining > 0 || c.remaining == -1 {
		return c.out.Write(p)
	}
	// We pretend we finished the write, but we do nothing.
	return len(p), nil
}

// Display writes the tree as a nested markdown list, at most max notes
// (-1 for all), and returns the number of notes in the tree.
func (m *Node) Display(out io.Writer, max int) int {
	writer := &cappedWriter{max, out}
	return m.display(writer, 0, nil)
}

func (m *Node) display(out *cappedWriter, level int, chain []string) int {
	write := func(s string) {
		_, err := out.Write([]byte(s))
		contract.AssertNoErrorf(err, "failed to write display")
	}
	if m == nil || !m.doDisplay {
		return 0
	}

	if m.Title != "" {
		chain = append(chain, "`"+m.Title+"`")
	}

	// Segments without notes and a single displayed child collapse into
	// their child's line, "a: b: c".
	if len(m.Notes) == 0 {
		if s := m.uniqueSuccessor(); s != nil {
			return s.display(out, level, chain)
		}
	}

	indent := strings.Repeat("  ", level)
	var displayed int
	if len(chain) > 0 {
		line := indent + "- " + strings.Join(chain, ": ")
		if len(m.Notes) == 1 {
			write(line + " " + m.Notes[0].String() + "\n")
			out.incr()
			displayed++
		} else {
			write(line + "\n")
			for _, n := range m.Notes {
				write(indent + "  - " + n.String() + "\n")
				out.incr()
				displayed++
			}
		}
		level++
	} else {
		for _, n := range m.Notes {
			write("- " + n.String() + "\n")
			out.incr()
			displayed++
		}
	}

	// Obtain an ordering on the subfields without mutating `.subfields`.
	order := make([]int, len(m.subfields))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return m.subfields[order[i]].Title < m.subfields[order[j]].Title
	})
	for _, i := range order {
		displayed += m.subfields[i].display(out, level, nil)
	}

	return displayed
}

// Find the unique successor node for m.
//
// If there is no successor or if there are multiple successors, nil is returned.
func (m *Node) uniqueSuccessor() *Node {
	var us *Node
	for _, s := range m.subfields {
		if !s.doDisplay {
			continue
		}
		if us != nil {
			return nil
		}
		us = s
	}
	return us
}

func (n Note) String() string {
	if n.Severity == None {
		return n.Message
	}
	return n.Severity.String() + " " + n.Message
}

// The severity of a note.
type Severity struct{ s string }

var (
	None   = Severity{""}
	Info   = Severity{"`🟢`"}
	Warn   = Severity{"`🟡`"}
	Danger = Severity{"`🔴`"}
)

func (s Severity) String() string {
	return s.s
}
