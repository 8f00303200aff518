// Package mention encodes and decodes the inline mention markup used in
// comment text. A mention is written as @[display](id) where id is the
// numeric user id; everything that does not match that grammar exactly is
// plain text.
package mention

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind distinguishes plain text from an expanded mention.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentMention
)

// Segment is one renderable span of decoded text. Text segments carry the
// verbatim source text; mention segments carry the display name and user id.
type Segment struct {
	Kind    SegmentKind
	Text    string
	Display string
	UserID  int64
}

// Encode produces the inline markup token for one mention.
func Encode(display string, userID int64) string {
	return fmt.Sprintf("@[%s](%d)", display, userID)
}

// Decode scans text left to right and splits it into interleaved text and
// mention segments, preserving all non-matching spans verbatim. Malformed
// tokens (unbalanced brackets, empty display, non-numeric id) pass through
// as literal text. Empty input yields no segments.
func Decode(text string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	var plain strings.Builder

	i := 0
	for i < len(text) {
		display, id, end, ok := scanToken(text, i)
		if !ok {
			plain.WriteByte(text[i])
			i++
			continue
		}
		if plain.Len() > 0 {
			segments = append(segments, Segment{Kind: SegmentText, Text: plain.String()})
			plain.Reset()
		}
		segments = append(segments, Segment{Kind: SegmentMention, Display: display, UserID: id})
		i = end
	}
	if plain.Len() > 0 {
		segments = append(segments, Segment{Kind: SegmentText, Text: plain.String()})
	}
	return segments
}

// ExtractIDs returns the user ids referenced by the mention tokens in text,
// in order of appearance. Duplicate mentions are preserved as separate
// entries.
func ExtractIDs(text string) []int64 {
	var ids []int64
	for _, seg := range Decode(text) {
		if seg.Kind == SegmentMention {
			ids = append(ids, seg.UserID)
		}
	}
	return ids
}

// scanToken attempts to read one @[display](digits) token starting at
// position start. It returns the display name, the parsed id and the index
// just past the token. Candidate closing brackets are tried left to right so
// a display name may itself contain "]" when a well-formed suffix follows a
// later bracket.
func scanToken(text string, start int) (string, int64, int, bool) {
	if text[start] != '@' || start+1 >= len(text) || text[start+1] != '[' {
		return "", 0, 0, false
	}

	for j := start + 2; j < len(text); j++ {
		if text[j] != ']' {
			continue
		}
		display := text[start+2 : j]
		if display == "" {
			continue
		}
		id, end, ok := scanID(text, j+1)
		if ok {
			return display, id, end, true
		}
	}
	return "", 0, 0, false
}

// scanID reads "(digits)" starting at pos and parses the digits.
func scanID(text string, pos int) (int64, int, bool) {
	if pos >= len(text) || text[pos] != '(' {
		return 0, 0, false
	}
	j := pos + 1
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	if j == pos+1 || j >= len(text) || text[j] != ')' {
		return 0, 0, false
	}
	id, err := strconv.ParseInt(text[pos+1:j], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return id, j + 1, true
}
