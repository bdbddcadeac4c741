// Package script splits raw narration text into ordered scene texts.
package script

import (
	"strings"

	"github.com/scenecast/scenecast/internal/mederr"
)

// Fallback sentence chunks grow until they reach roughly this many words.
const fallbackChunkWords = 18

// Segment splits a script into scene texts. Paragraphs separated by blank
// lines become scenes; a paragraph is never subdivided, so scene count always
// equals the number of non-blank paragraphs. Only a script with no paragraphs
// at all falls back to rough sentence chunking. A script with zero non-empty
// scenes is a configuration error.
func Segment(text string) ([]string, error) {
	scenes := splitParagraphs(text)
	if len(scenes) == 0 {
		scenes = splitSentences(text)
	}
	if len(scenes) == 0 {
		return nil, mederr.Configf("script contains no scenes")
	}
	return scenes, nil
}

func splitParagraphs(text string) []string {
	var scenes []string
	var buf []string
	flush := func() {
		joined := strings.TrimSpace(strings.Join(buf, "\n"))
		if joined != "" {
			scenes = append(scenes, joined)
		}
		buf = buf[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buf = append(buf, line)
	}
	flush()
	return scenes
}

// splitSentences chunks paragraph-free text into scene-sized groups of
// sentences.
func splitSentences(text string) []string {
	normalized := strings.NewReplacer("?", ".", "!", ".").Replace(text)

	var scenes []string
	var buf []string
	wordCount := 0
	for _, part := range strings.Split(normalized, ".") {
		sentence := strings.TrimSpace(part)
		if sentence == "" {
			continue
		}
		buf = append(buf, sentence)
		wordCount += len(strings.Fields(sentence))
		if wordCount >= fallbackChunkWords {
			scenes = append(scenes, strings.Join(buf, ". ")+".")
			buf = buf[:0]
			wordCount = 0
		}
	}
	if len(buf) > 0 {
		scenes = append(scenes, strings.Join(buf, ". ")+".")
	}
	return scenes
}
