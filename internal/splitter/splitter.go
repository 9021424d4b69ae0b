// Package splitter demultiplexes a streamed generation response into
// user-visible prose and one embedded code artifact. The response interleaves
// free-form commentary with at most one fenced code block; prose is emitted
// incrementally as fragments arrive, while the code artifact is emitted
// exactly once, in full, only after the closing fence is observed.
package splitter

import (
	"regexp"
	"strings"
)

const (
	openMarker  = "```html"
	closeMarker = "```"
)

// Placeholder is the fixed prose string emitted in place of the opening
// fence while the code block is being received.
const Placeholder = "Generating code...\n"

var codeBlockRe = regexp.MustCompile("(?s)```html(.*?)```")

// Splitter is a two-state machine (prose / awaiting close) over a rolling
// buffer. Fences split across fragment boundaries are handled by holding
// back a possible marker prefix at the end of the unprocessed tail instead
// of re-scanning the whole buffer on every fragment.
//
// Not safe for concurrent use; the generation stream is sequential.
type Splitter struct {
	onProse func(string)
	onCode  func(string)

	inCode  bool
	emitted bool
	pending string
	code    strings.Builder
	full    strings.Builder
}

// New returns a Splitter that forwards prose deltas to onProse and the
// finalized code artifact to onCode. Either callback may be nil.
func New(onProse, onCode func(string)) *Splitter {
	if onProse == nil {
		onProse = func(string) {}
	}
	if onCode == nil {
		onCode = func(string) {}
	}
	return &Splitter{onProse: onProse, onCode: onCode}
}

// Feed consumes one fragment of the response stream. Prose deltas fire in
// the exact order fragments are received; the callback work is the only
// processing done per fragment, so the caller is never blocked beyond that.
func (s *Splitter) Feed(fragment string) {
	if fragment == "" {
		return
	}
	s.full.WriteString(fragment)
	s.pending += fragment
	s.process()
}

// Finish signals end of stream. Held-back prose is flushed, and if no
// artifact was emitted by the incremental path, the full accumulated buffer
// is re-scanned once with a non-greedy first-pair match. This is the defined
// fallback for a closing fence that arrived split across fragment boundaries
// or was never observed in a single fragment.
func (s *Splitter) Finish() {
	if !s.inCode && s.pending != "" {
		s.onProse(s.pending)
		s.pending = ""
	}
	if !s.emitted {
		if m := codeBlockRe.FindStringSubmatch(s.full.String()); m != nil {
			s.emit(m[1])
		}
	}
}

func (s *Splitter) process() {
	for {
		if !s.inCode {
			i := strings.Index(s.pending, openMarker)
			if i < 0 {
				// Hold back a possible fence prefix at the tail; the rest is prose.
				keep := suffixOverlap(s.pending, openMarker)
				if emit := s.pending[:len(s.pending)-keep]; emit != "" {
					s.onProse(emit)
					s.pending = s.pending[len(emit):]
				}
				return
			}
			if i > 0 {
				s.onProse(s.pending[:i])
			}
			s.pending = s.pending[i+len(openMarker):]
			s.inCode = true
			s.onProse(Placeholder)
			continue
		}

		j := strings.Index(s.pending, closeMarker)
		if j < 0 {
			keep := suffixOverlap(s.pending, closeMarker)
			s.code.WriteString(s.pending[:len(s.pending)-keep])
			s.pending = s.pending[len(s.pending)-keep:]
			return
		}
		s.code.WriteString(s.pending[:j])
		s.pending = s.pending[j+len(closeMarker):]
		s.inCode = false
		s.emit(s.code.String())
		s.code.Reset()
	}
}

// emit fires the artifact callback at most once per stream. Only the first
// complete fenced block is ever extracted; later blocks are dropped while
// their fences stay suppressed from prose.
func (s *Splitter) emit(interior string) {
	if s.emitted {
		return
	}
	s.emitted = true
	s.onCode(strings.Trim(interior, "\n"))
}

// suffixOverlap returns the length of the longest proper prefix of marker
// that is also a suffix of text.
func suffixOverlap(text, marker string) int {
	max := len(marker) - 1
	if max > len(text) {
		max = len(text)
	}
	for n := max; n > 0; n-- {
		if strings.HasSuffix(text, marker[:n]) {
			return n
		}
	}
	return 0
}
