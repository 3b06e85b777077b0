// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package hook

import (
	"bytes"
	"sync"
)

// maxLineBytes bounds a single retained line; longer lines keep their end.
const maxLineBytes = 4 << 10

// tail keeps the last n complete lines written to it.
type tail struct {
	mu      sync.Mutex
	lines   []string
	pos     int
	full    bool
	partial []byte
}

func newTail(n int) *tail {
	return &tail{lines: make([]string, n)}
}

func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.partial = append(t.partial, p...)
	for {
		i := bytes.IndexByte(t.partial, '\n')
		if i < 0 {
			break
		}
		t.add(string(bytes.TrimRight(t.partial[:i], "\r")))
		t.partial = t.partial[i+1:]
	}
	if len(t.partial) > maxLineBytes {
		t.partial = append([]byte(nil), t.partial[len(t.partial)-maxLineBytes:]...)
	}
	return len(p), nil
}

func (t *tail) add(line string) {
	if len(line) > maxLineBytes {
		line = line[len(line)-maxLineBytes:]
	}
	t.lines[t.pos] = line
	t.pos = (t.pos + 1) % len(t.lines)
	if t.pos == 0 {
		t.full = true
	}
}

// Lines returns the retained lines oldest first, including a trailing
// unterminated line.
func (t *tail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []string
	if t.full {
		out = make([]string, 0, len(t.lines)+1)
		out = append(out, t.lines[t.pos:]...)
		out = append(out, t.lines[:t.pos]...)
	} else {
		out = append([]string(nil), t.lines[:t.pos]...)
	}
	if len(t.partial) > 0 {
		out = append(out, string(t.partial))
	}
	return out
}
