package tui

import "strings"

// entry is one unstyled transcript line. Lines are kept raw so they can be
// re-wrapped and re-styled when the terminal is resized.
type entry struct {
	text string
	kind lineKind
	echo bool // player input
}

// transcript is the scrollback of a play session.
type transcript struct {
	entries []entry
}

// addInput records the player's command.
func (t *transcript) addInput(input string) {
	t.entries = append(t.entries, entry{text: "> " + input, echo: true})
}

// addGame records engine output, classifying each line for styling.
func (t *transcript) addGame(lines []string) {
	for _, l := range lines {
		t.entries = append(t.entries, entry{text: l, kind: classifyLine(l)})
	}
}

// addSystem records meta-command notices, shown bracketed.
func (t *transcript) addSystem(lines []string) {
	for _, l := range lines {
		t.entries = append(t.entries, entry{text: "[" + l + "]", kind: kindSystem})
	}
}

// endTurn separates turns with a blank line.
func (t *transcript) endTurn() {
	t.entries = append(t.entries, entry{})
}

// plain returns the transcript text without styling.
func (t *transcript) plain() string {
	lines := make([]string, len(t.entries))
	for i, e := range t.entries {
		lines[i] = e.text
	}
	return strings.Join(lines, "\n")
}

// render wraps and styles every entry for the given width.
func (t *transcript) render(width int) string {
	if width < 10 {
		width = 10
	}
	styled := make([]string, len(t.entries))
	for i, e := range t.entries {
		switch {
		case e.text == "":
		case e.echo:
			styled[i] = stylePlayerInput.Render(wordWrap(e.text, width))
		default:
			styled[i] = renderLineKind(wordWrap(e.text, width), e.kind)
		}
	}
	return strings.Join(styled, "\n")
}

// wordWrap breaks text at word boundaries so no line exceeds width, unless
// a single word is longer than width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(text) {
		switch {
		case col == 0:
		case col+1+len(word) > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
