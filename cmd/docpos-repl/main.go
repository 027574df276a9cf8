// docpos-repl is an interactive explorer for document positions: load a
// document, move a cursor through text and math, snapshot positions and
// watch them re-resolve after edits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/peterh/liner"
	slogmulti "github.com/samber/slog-multi"

	"github.com/phroun/docpos"
)

var (
	nodeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// REPL holds the state of the interactive session
type REPL struct {
	doc    *docpos.Document
	cursor *docpos.Path
	log    *slog.Logger
	hits   int
}

func main() {
	docPath := flag.String("doc", "", "YAML document to open at startup")
	tracePath := flag.String("trace", "", "write JSON trace logs to this file")
	logLevel := flag.String("log-level", "warn", "stderr log level: debug, info, warn, error")
	flag.Parse()

	logger, closeLog, err := newLogger(*logLevel, *tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	repl := &REPL{log: logger}
	repl.setDocument(docpos.NewText())
	if *docPath != "" {
		repl.cmdOpen([]string{*docPath})
	}

	fmt.Println("docpos REPL - Document Position Explorer")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("docpos> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if !repl.handleCommand(input) {
			return
		}
	}
}

// newLogger fans records out to stderr and, when requested, a JSON trace
// file that also receives debug records.
func newLogger(level, tracePath string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	}
	closer := func() {}
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = func() { f.Close() }
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

func (r *REPL) setDocument(root *docpos.TextNode) {
	r.doc = docpos.NewDocument(root, docpos.Options{Logger: r.log})
	r.cursor = r.doc.Begin()
	r.hits = 0
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		fmt.Println("Goodbye!")
		return false

	case "new":
		r.cmdNew(args)

	case "open":
		r.cmdOpen(args)

	case "status":
		r.cmdStatus()

	case "cursor", "where":
		r.cmdCursor()

	case "f", "b":
		r.cmdMove(append([]string{"pos"}, args...), cmd == "b")

	case "fwd", "forward":
		r.cmdMove(args, false)

	case "back", "backward":
		r.cmdMove(args, true)

	case "cell":
		r.cmdCell(args)

	case "enter":
		r.cmdEnter()

	case "leave":
		r.cmdLeave()

	case "insert":
		r.cmdInsert(args)

	case "delete":
		r.cmdDelete(args)

	case "stable":
		r.cmdStable()

	case "resolve":
		r.cmdResolve(args)

	case "mark":
		r.cmdMark(args)

	case "goto":
		r.cmdGoto(args)

	case "marks":
		r.cmdMarks()

	case "unmark":
		r.cmdUnmark(args)

	case "save":
		r.cmdSave(args)

	case "load":
		r.cmdLoad(args)

	case "nodes":
		r.cmdNodes()

	case "find":
		r.cmdFind(args)

	case "dump":
		r.cmdDump()

	default:
		fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	help := `
Available Commands:
-------------------

DOCUMENT:
  new <p1> | <p2> ...     Create a document, paragraphs separated by '|'
  open <file.yaml>        Load a document description
  status                  Show document status
  dump                    Show all paragraphs

CURSOR:
  cursor                  Show the cursor path and the element under it
  f / b                   Move one position forward / backward
  fwd <unit>              Move forward by pos, char, par, cell, node or edge
  back <unit>             Move backward by pos, char, par, node or edge
  cell <row> <col>        Jump to a cell of the current math grid
  enter                   Enter the node after the cursor
  leave                   Leave the current node

EDITING:
  insert <text>           Insert text at the cursor
  delete [n]              Delete n items after the cursor (default 1)

STABLE POSITIONS:
  stable                  Print the cursor's stable form
  resolve <stable>        Resolve a stable form and move the cursor there
  mark <name>             Bookmark the cursor
  goto <name>             Move the cursor to a bookmark
  marks                   List bookmarks
  unmark <name>           Remove a bookmark
  save <file>             Write bookmarks as YAML
  load <file>             Read bookmarks from YAML

SEARCH:
  nodes                   List every contained node
  find <text>             Find text; hits are bookmarked as hit1, hit2, ...

OTHER:
  help                    Show this help message
  quit, exit              Exit the REPL
`
	fmt.Println(help)
}

func (r *REPL) cmdNew(args []string) {
	var paragraphs []string
	for _, p := range strings.Split(strings.Join(args, " "), "|") {
		paragraphs = append(paragraphs, strings.TrimSpace(p))
	}
	r.setDocument(docpos.NewText(paragraphs...))
	fmt.Printf("Created new document with %d paragraphs\n", r.doc.Root().NumParagraphs())
}

func (r *REPL) cmdOpen(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: open <file.yaml>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		printErr("Open error", err)
		return
	}
	defer f.Close()

	root, err := docpos.LoadDocument(f)
	if err != nil {
		printErr("Load error", err)
		return
	}
	r.setDocument(root)
	fmt.Printf("Opened %s: %d paragraphs, %d positions\n",
		filepath.Base(args[0]), root.NumParagraphs(), docpos.CountPositions(root))
}

func (r *REPL) cmdStatus() {
	root := r.doc.Root()
	nodes := 0
	for range docpos.Nodes(root) {
		nodes++
	}
	fmt.Println("Document Status:")
	fmt.Printf("  Paragraphs: %d\n", root.NumParagraphs())
	fmt.Printf("  Positions:  %d\n", docpos.CountPositions(root))
	fmt.Printf("  Nodes:      %d\n", nodes)
	fmt.Printf("  Revision:   %d\n", r.doc.Revision())
	fmt.Printf("  Bookmarks:  %d\n", len(r.doc.Bookmarks()))
	fmt.Printf("  Cursor:     %s\n", r.cursor)
}

func (r *REPL) cmdCursor() {
	if r.cursor.Empty() {
		fmt.Println(dimStyle.Render("Cursor is outside the document"))
		return
	}
	fmt.Printf("Path:   %s\n", renderPath(r.cursor))
	fmt.Printf("Stable: %s\n", r.cursor.Stable())
	if r.cursor.InMath() {
		fmt.Printf("Grid:   row %d, col %d of %dx%d\n",
			r.cursor.Row(), r.cursor.Col(), r.cursor.Node().Rows(), r.cursor.Node().Cols())
	}
	text, caret := renderElement(r.cursor)
	fmt.Printf("  %s\n  %s\n", text, caret)
}

func parseUnit(s string) (docpos.MoveUnit, bool) {
	switch strings.ToLower(s) {
	case "", "pos":
		return docpos.ByPos, true
	case "char":
		return docpos.ByChar, true
	case "par", "paragraph":
		return docpos.ByParagraph, true
	case "cell":
		return docpos.ByCell, true
	case "node":
		return docpos.ByNode, true
	case "edge":
		return docpos.ToEdge, true
	}
	return 0, false
}

func (r *REPL) cmdMove(args []string, backward bool) {
	unitName := ""
	if len(args) > 0 {
		unitName = args[0]
	}
	unit, ok := parseUnit(unitName)
	if !ok {
		fmt.Println("Unknown unit. Use: pos, char, par, cell, node or edge")
		return
	}
	count := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Printf("Invalid count: %s\n", args[1])
			return
		}
		count = n
	}

	m := docpos.Move{Unit: unit, Dir: docpos.DirForward}
	if backward {
		m.Dir = docpos.DirBackward
	}
	for i := 0; i < count; i++ {
		if err := r.cursor.Move(m); err != nil {
			printErr("Move stopped", err)
			break
		}
	}
	fmt.Printf("Cursor: %s\n", renderPath(r.cursor))
}

func (r *REPL) cmdCell(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: cell <row> <col>")
		return
	}
	row, err1 := strconv.Atoi(args[0])
	col, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Row and column must be numbers")
		return
	}
	if err := r.cursor.SetGridCell(row, col); err != nil {
		printErr("Cell error", err)
		return
	}
	fmt.Printf("Cursor: %s\n", renderPath(r.cursor))
}

func (r *REPL) cmdEnter() {
	n, ok := r.cursor.NextNode()
	if !ok {
		fmt.Println("No node after the cursor")
		return
	}
	if err := r.cursor.Push(n); err != nil {
		printErr("Enter error", err)
		return
	}
	fmt.Printf("Cursor: %s\n", renderPath(r.cursor))
}

func (r *REPL) cmdLeave() {
	if r.cursor.Depth() <= 1 {
		fmt.Println("Already at the top level")
		return
	}
	r.cursor.Pop()
	fmt.Printf("Cursor: %s\n", renderPath(r.cursor))
}

func (r *REPL) cmdInsert(args []string) {
	text := strings.Join(args, " ")
	if text == "" {
		fmt.Println("Usage: insert <text>")
		return
	}
	if err := r.doc.Insert(r.cursor, docpos.TextItems(text)...); err != nil {
		printErr("Insert error", err)
		return
	}
	fmt.Printf("Inserted %q. Revision %d\n", text, r.doc.Revision())
}

func (r *REPL) cmdDelete(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Printf("Invalid count: %s\n", args[0])
			return
		}
		n = v
	}
	removed, err := r.doc.Erase(r.cursor, n)
	if err != nil {
		printErr("Delete error", err)
		return
	}
	fmt.Printf("Deleted %d items. Revision %d\n", len(removed), r.doc.Revision())
	r.reportMarks()
}

func (r *REPL) cmdStable() {
	fmt.Println(r.cursor.Stable())
}

func (r *REPL) cmdResolve(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: resolve <stable>")
		return
	}
	var s docpos.StablePath
	if err := s.UnmarshalText([]byte(args[0])); err != nil {
		printErr("Parse error", err)
		return
	}
	p, res := r.doc.Resolve(s)
	if p.Empty() {
		fmt.Printf("Resolution %s: nothing to move to\n", res)
		return
	}
	r.cursor = p
	fmt.Printf("Resolution %s. Cursor: %s\n", res, renderPath(r.cursor))
}

func (r *REPL) cmdMark(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: mark <name>")
		return
	}
	r.doc.SetBookmark(args[0], r.cursor)
	fmt.Printf("Bookmarked %s at %s\n", args[0], r.cursor.Stable())
}

func (r *REPL) cmdGoto(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: goto <name>")
		return
	}
	p, res, err := r.doc.Bookmark(args[0])
	if err != nil {
		printErr("Goto error", err)
		return
	}
	r.cursor = p
	fmt.Printf("Resolution %s. Cursor: %s\n", res, renderPath(r.cursor))
}

func (r *REPL) cmdMarks() {
	marks := r.doc.Bookmarks()
	if len(marks) == 0 {
		fmt.Println("No bookmarks")
		return
	}
	for _, b := range marks {
		fmt.Printf("  %-12s %-24s rev %d\n", b.Name, b.Pos, b.Revision)
	}
}

// reportMarks shows bookmarks that were degraded by the latest edit.
func (r *REPL) reportMarks() {
	for _, b := range r.doc.Bookmarks() {
		if b.Revision == r.doc.Revision() {
			fmt.Printf("  bookmark %s fell back to %s\n", b.Name, b.Pos)
		}
	}
}

func (r *REPL) cmdUnmark(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: unmark <name>")
		return
	}
	if err := r.doc.RemoveBookmark(args[0]); err != nil {
		printErr("Unmark error", err)
	}
}

func (r *REPL) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: save <file>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		printErr("Save error", err)
		return
	}
	defer f.Close()
	if err := r.doc.SaveBookmarks(f); err != nil {
		printErr("Save error", err)
		return
	}
	fmt.Printf("Saved %d bookmarks\n", len(r.doc.Bookmarks()))
}

func (r *REPL) cmdLoad(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: load <file>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		printErr("Load error", err)
		return
	}
	defer f.Close()
	if err := r.doc.LoadBookmarks(f); err != nil {
		printErr("Load error", err)
		return
	}
	fmt.Printf("Now %d bookmarks\n", len(r.doc.Bookmarks()))
}

func (r *REPL) cmdNodes() {
	count := 0
	for p, n := range docpos.Nodes(r.doc.Root()) {
		state := ""
		if !n.Active() {
			state = dimStyle.Render(" (inactive)")
		}
		fmt.Printf("  %s %dx%d at %s%s\n",
			nodeStyle.Render(nodeLabel(n)), n.Rows(), n.Cols(), p.Stable(), state)
		count++
	}
	if count == 0 {
		fmt.Println("No contained nodes")
	}
}

func (r *REPL) cmdFind(args []string) {
	needle := strings.Join(args, " ")
	if needle == "" {
		fmt.Println("Usage: find <text>")
		return
	}
	results := docpos.FindString(r.doc.Root(), needle, docpos.SearchOptions{})
	for _, res := range results {
		r.hits++
		name := "hit" + strconv.Itoa(r.hits)
		r.doc.SetBookmark(name, res.Start)
		fmt.Printf("  %-8s %s\n", name, renderPath(res.Start))
	}
	fmt.Printf("%d matches\n", len(results))
}

func (r *REPL) cmdDump() {
	root := r.doc.Root()
	for i := 0; i < root.NumParagraphs(); i++ {
		fmt.Printf("%3d  %s\n", i, root.Paragraph(i).Text())
	}
}

func nodeLabel(n docpos.Node) string {
	kind := "node"
	switch {
	case n.MathLike():
		kind = "math"
	case n.TextLike():
		kind = "text"
	}
	return fmt.Sprintf("%s#%d", kind, n.ID())
}

// renderPath styles each level of a path.
func renderPath(p *docpos.Path) string {
	if p.Empty() {
		return dimStyle.Render("<outside document>")
	}
	parts := make([]string, p.Depth())
	for i := 0; i < p.Depth(); i++ {
		s := p.At(i)
		label := nodeStyle.Render(nodeLabel(s.Node()))
		pos := fmt.Sprintf("c%d e%d o%d", s.Cell(), s.Element(), s.Offset())
		if s.Node().CellCount() > 1 {
			pos += fmt.Sprintf(" (%d,%d)", s.Row(), s.Col())
		}
		if s.Boundary() {
			pos += " b"
		}
		parts[i] = label + dimStyle.Render("["+pos+"]")
	}
	return strings.Join(parts, " > ")
}

// renderElement returns the element under the cursor and a caret line
// whose column accounts for wide characters.
func renderElement(p *docpos.Path) (string, string) {
	s := p.Top()
	var before, after strings.Builder
	for i := 0; i < s.LastOffset(); i++ {
		it, _ := s.Node().At(s.Cell(), s.Element(), i)
		text := it.Text
		if it.Node != nil {
			text = "[" + nodeLabel(it.Node) + "]"
		}
		if i < s.Offset() {
			before.WriteString(text)
		} else {
			after.WriteString(text)
		}
	}
	line := before.String() + after.String()
	caret := strings.Repeat(" ", runewidth.StringWidth(before.String())) + caretStyle.Render("^")
	return line, caret
}

func printErr(prefix string, err error) {
	fmt.Println(errStyle.Render(fmt.Sprintf("%s: %v", prefix, err)))
}
