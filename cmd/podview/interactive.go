package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/podwire/podcodec/param"
	"github.com/podwire/podcodec/pod"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// treeNode is one pre-rendered line of the pod tree. Compound pods carry
// their children and an expanded flag; scalars are leaves.
type treeNode struct {
	key      string // property key, control offset, "default"/"alt" slot
	text     string
	depth    int
	expanded bool
	children []*treeNode
}

func newLeaf(key, text string) *treeNode {
	return &treeNode{key: key, text: text}
}

func newBranch(key, text string) *treeNode {
	return &treeNode{key: key, text: text, expanded: true}
}

type inspectorModel struct {
	filename string
	hexInput bool
	root     *treeNode
	visible  []*treeNode
	cursor   int
	top      int
	height   int
	filter   textinput.Model
	typing   bool
	err      error
}

func newInspectorModel(filename string, hexInput bool) *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/"
	ti.Width = 40
	return &inspectorModel{
		filename: filename,
		hexInput: hexInput,
		height:   24,
		filter:   ti,
	}
}

type loadedMsg struct {
	err  error
	root *treeNode
}

func (m *inspectorModel) Init() tea.Cmd {
	return m.loadPod
}

func (m *inspectorModel) loadPod() tea.Msg {
	view, err := readPod(m.filename, m.hexInput)
	if err != nil {
		return loadedMsg{err: err}
	}
	root, err := buildNode(view, "")
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{root: root}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.flatten()

	case tea.KeyMsg:
		if m.typing {
			switch msg.String() {
			case "enter", "esc":
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.typing = false
				m.filter.Blur()
				m.flatten()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.flatten()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}

		case "enter", " ":
			if m.cursor < len(m.visible) {
				n := m.visible[m.cursor]
				if len(n.children) > 0 {
					n.expanded = !n.expanded
					m.flatten()
				}
			}

		case "left", "h":
			if m.cursor < len(m.visible) {
				m.visible[m.cursor].expanded = false
				m.flatten()
			}

		case "right", "l":
			if m.cursor < len(m.visible) {
				m.visible[m.cursor].expanded = true
				m.flatten()
			}

		case "/":
			m.typing = true
			m.filter.Focus()

		case "esc":
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.flatten()
			}
		}
	}

	return m, nil
}

// flatten rebuilds the visible line list from the tree, honoring the
// expand state and the filter. A filtered view keeps every node whose
// subtree matches so the path to a match stays readable.
func (m *inspectorModel) flatten() {
	m.visible = m.visible[:0]
	if m.root == nil {
		return
	}
	filter := strings.ToLower(m.filter.Value())

	var walk func(n *treeNode, depth int)
	walk = func(n *treeNode, depth int) {
		if filter != "" && !subtreeMatches(n, filter) {
			return
		}
		n.depth = depth
		m.visible = append(m.visible, n)
		if n.expanded || filter != "" {
			for _, c := range n.children {
				walk(c, depth+1)
			}
		}
	}
	walk(m.root, 0)

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func subtreeMatches(n *treeNode, filter string) bool {
	if strings.Contains(strings.ToLower(n.key), filter) ||
		strings.Contains(strings.ToLower(n.text), filter) {
		return true
	}
	for _, c := range n.children {
		if subtreeMatches(c, filter) {
			return true
		}
	}
	return false
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.root == nil {
		return "Loading pod..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pod Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+rows {
		m.top = m.cursor - rows + 1
	}
	end := m.top + rows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.top; i < end; i++ {
		n := m.visible[i]
		marker := "  "
		if len(n.children) > 0 {
			if n.expanded {
				marker = "- "
			} else {
				marker = "+ "
			}
		}
		line := strings.Repeat("  ", n.depth) + marker + m.formatNode(n)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.typing {
		b.WriteString(m.filter.View())
	} else if m.filter.Value() != "" {
		b.WriteString(helpStyle.Render("filter: " + m.filter.Value() + " (esc clear)"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter toggle • / filter • q quit"))
	}
	return b.String()
}

func (m *inspectorModel) formatNode(n *treeNode) string {
	if n.key == "" {
		return nodeStyle.Render(n.text)
	}
	return keyStyle.Render(n.key+": ") + nodeStyle.Render(n.text)
}

// buildNode renders one pod into a tree node, recursing into compounds.
// key labels the node's slot in its parent and may be empty.
func buildNode(v pod.View, key string) (*treeNode, error) {
	switch v.Tag() {
	case pod.TagArray:
		return buildArray(v, key)
	case pod.TagStruct:
		return buildStruct(v, key)
	case pod.TagChoice:
		return buildChoice(v, key)
	case pod.TagSequence:
		return buildSequence(v, key)
	case pod.TagPod:
		inner, err := v.Pod()
		if err != nil {
			return nil, err
		}
		child, err := buildNode(inner, "")
		if err != nil {
			return nil, err
		}
		n := newBranch(key, "Pod")
		n.children = append(n.children, child)
		return n, nil
	default:
		if v.Tag().IsObjectType() || v.Tag() == pod.TagObject {
			return buildObject(v, key)
		}
		text, err := leafText(v)
		if err != nil {
			return nil, err
		}
		return newLeaf(key, text), nil
	}
}

func buildArray(v pod.View, key string) (*treeNode, error) {
	a, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	n := newBranch(key, fmt.Sprintf("Array of %s (%d elements)", a.ChildTag(), a.Len()))
	it := a.Elements()
	for it.Next() {
		n.children = append(n.children, newLeaf("", scalarText(it.Value())))
	}
	return n, it.Err()
}

func buildStruct(v pod.View, key string) (*treeNode, error) {
	s, err := v.AsStruct()
	if err != nil {
		return nil, err
	}
	n := newBranch(key, "Struct")
	it := s.Fields()
	for it.Next() {
		child, err := buildNode(it.Pod(), "")
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, it.Err()
}

func buildChoice(v pod.View, key string) (*treeNode, error) {
	c, err := v.AsChoice()
	if err != nil {
		return nil, err
	}
	n := newBranch(key, fmt.Sprintf("Choice %s of %s", c.Mode(), c.ChildTag()))
	def, err := c.Default()
	if err != nil {
		return nil, err
	}
	n.children = append(n.children, newLeaf("default", scalarText(def)))
	it := c.Alternatives()
	for it.Next() {
		n.children = append(n.children, newLeaf("alt", scalarText(it.Value())))
	}
	return n, it.Err()
}

func buildObject(v pod.View, key string) (*treeNode, error) {
	o, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	name := param.ObjectTypeName(o.BodyType())
	n := newBranch(key, fmt.Sprintf("Object %s (id %d)", name, o.ObjectID()))
	it := o.Properties()
	for it.Next() {
		p := it.Prop()
		child, err := buildNode(p.Value, param.KeyName(o.BodyType(), p.Key))
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, it.Err()
}

func buildSequence(v pod.View, key string) (*treeNode, error) {
	s, err := v.AsSequence()
	if err != nil {
		return nil, err
	}
	n := newBranch(key, fmt.Sprintf("Sequence (unit %d)", s.Unit()))
	it := s.Controls()
	for it.Next() {
		slot := fmt.Sprintf("@%d type=%d", it.Offset(), it.ControlType())
		child, err := buildNode(it.Value(), slot)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, it.Err()
}

func leafText(v pod.View) (string, error) {
	value, err := v.Value()
	if err != nil {
		return "", err
	}
	switch x := value.(type) {
	case pod.String:
		return fmt.Sprintf("String %q", string(x)), nil
	case pod.Bytes:
		return fmt.Sprintf("Bytes (%d bytes)", len(x)), nil
	case pod.Bitmap:
		return fmt.Sprintf("Bitmap (%d bytes)", len(x)), nil
	default:
		return scalarText(value), nil
	}
}

func scalarText(v pod.Value) string {
	switch x := v.(type) {
	case pod.None:
		return "None"
	case pod.Bool:
		return fmt.Sprintf("Bool %t", bool(x))
	case pod.ID:
		return fmt.Sprintf("Id %d", uint32(x))
	case pod.Int:
		return fmt.Sprintf("Int %d", int32(x))
	case pod.Long:
		return fmt.Sprintf("Long %d", int64(x))
	case pod.Float:
		return fmt.Sprintf("Float %g", float32(x))
	case pod.Double:
		return fmt.Sprintf("Double %g", float64(x))
	case pod.Fd:
		return fmt.Sprintf("Fd %d", int64(x))
	case pod.Rectangle:
		return fmt.Sprintf("Rectangle %dx%d", x.Width, x.Height)
	case pod.Fraction:
		return fmt.Sprintf("Fraction %d/%d", x.Num, x.Denom)
	case pod.Pointer:
		return fmt.Sprintf("Pointer type=%d 0x%x", x.Type, x.Value)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func runInteractive(filename string, hexInput bool) error {
	p := tea.NewProgram(newInspectorModel(filename, hexInput), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
