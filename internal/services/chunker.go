package services

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// TextChunker splits long documents into overlapping pieces small enough to
// embed one at a time.
type TextChunker interface {
	ChunkText(text string) []string
}

type textChunker struct {
	maxSize int
	overlap int
}

func NewTextChunker(maxSize, overlap int) TextChunker {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxSize {
		overlap = maxSize / 4
	}
	return &textChunker{maxSize: maxSize, overlap: overlap}
}

// chunkBuilder accumulates pieces until the next one would overflow.
type chunkBuilder struct {
	maxSize int
	overlap int
	chunks  []string
	current strings.Builder
}

func (b *chunkBuilder) add(piece, sep string) {
	size := utf8.RuneCountInString(b.current.String())
	if size > 0 && size+len(sep)+utf8.RuneCountInString(piece) > b.maxSize {
		b.flush()
	}
	if b.current.Len() > 0 {
		b.current.WriteString(sep)
	}
	b.current.WriteString(piece)
}

// flush closes the current chunk and seeds the next one with its tail.
func (b *chunkBuilder) flush() {
	chunk := b.current.String()
	b.chunks = append(b.chunks, chunk)
	b.current.Reset()

	if tail := lastRunes(chunk, b.overlap); tail != "" {
		b.current.WriteString(tail)
	}
}

func (tc *textChunker) ChunkText(text string) []string {
	b := &chunkBuilder{maxSize: tc.maxSize, overlap: tc.overlap}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= tc.maxSize {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitSentences(para) {
			b.add(sentence, " ")
		}
	}

	if b.current.Len() > 0 {
		b.chunks = append(b.chunks, b.current.String())
	}
	return b.chunks
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
