package main

import (
	"strings"
	"sync"
)

const maxUILogLines = 50

// logPanel keeps the most recent log lines for the GUI and TUI log views.
type logPanel struct {
	mu       sync.Mutex
	max      int
	lines    []string
	onChange func(text string)
}

func newLogPanel(max int) *logPanel {
	if max <= 0 {
		max = maxUILogLines
	}
	return &logPanel{max: max, lines: make([]string, 0, max)}
}

func (p *logPanel) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	p.mu.Lock()
	p.lines = append(p.lines, line)
	if len(p.lines) > p.max {
		p.lines = p.lines[len(p.lines)-p.max:]
	}
	text := strings.Join(p.lines, "\n")
	notify := p.onChange
	p.mu.Unlock()

	if notify != nil {
		notify(text)
	}
}

func (p *logPanel) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

// OnChange registers fn to receive the joined panel text after each append.
func (p *logPanel) OnChange(fn func(text string)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}
