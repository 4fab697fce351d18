package lsp

import (
	"sort"
	"sync"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

type document struct {
	text    string
	version protocol.Integer
}

// store holds the text of every open document.
type store struct {
	mu   sync.Mutex
	docs map[protocol.DocumentUri]document
}

func newStore() *store {
	return &store{docs: make(map[protocol.DocumentUri]document)}
}

func (s *store) put(uri protocol.DocumentUri, text string, version protocol.Integer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = document{text: text, version: version}
}

func (s *store) get(uri protocol.DocumentUri) (document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *store) remove(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *store) uris() []protocol.DocumentUri {
	s.mu.Lock()
	defer s.mu.Unlock()
	uris := make([]protocol.DocumentUri, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// applyChange applies one content change event to text.
func applyChange(text string, change any) string {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text
		}
		start := c.Range.Start.IndexIn(text)
		end := c.Range.End.IndexIn(text)
		if end < start {
			end = start
		}
		return text[:start] + c.Text + text[end:]
	default:
		return text
	}
}

// position converts a byte offset into an LSP position counted in UTF-16
// code units.
func position(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, char protocol.UInteger
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > offset {
			break
		}
		switch {
		case r == '\n':
			line++
			char = 0
		case r >= 0x10000:
			char += 2
		default:
			char++
		}
		i += size
	}
	return protocol.Position{Line: line, Character: char}
}

func wholeRange(text string) protocol.Range {
	return protocol.Range{End: position(text, len(text))}
}
