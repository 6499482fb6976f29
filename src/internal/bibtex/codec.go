package bibtex

import (
	"bytes"
	"fmt"
	"strings"
)

// DecodeError describes a structurally malformed record chunk.
type DecodeError struct {
	Reason string
	Chunk  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", chunkSnippet(e.Chunk), e.Reason)
}

func decodeErrorf(chunk, format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Chunk: chunk}
}

// chunkSnippet truncates a chunk for error messages.
func chunkSnippet(s string) string {
	const max = 48
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// SplitRecords groups the full text of a bibliography file into one raw chunk
// per record, in file order. Lines are whitespace-stripped; blank lines and
// '%' comment lines are dropped anywhere; an '@' line starts a new record and
// flushes the one being accumulated. The lines of a chunk are concatenated
// with no separator, so a value spanning lines loses its line breaks.
//
// An empty or comment-only input yields no chunks. Text preceding the first
// '@' becomes a chunk of its own and is rejected later by Decode.
func SplitRecords(text string) []string {
	var chunks []string
	var cur []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if strings.HasPrefix(line, "@") {
			if len(cur) > 0 {
				chunks = append(chunks, strings.Join(cur, ""))
			}
			cur = []string{line}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, ""))
	}
	return chunks
}

// Decode parses one raw chunk into a Record.
//
// The chunk must look like @type{key,name = value,...} after the splitter has
// joined its lines. The entry type is the text between '@' and the first '{';
// the key is the body text before the first comma; the rest of the body is
// the field list. Field values are stored as written, quotes included.
func Decode(chunk string) (Record, error) {
	if !strings.HasPrefix(chunk, "@") {
		return Record{}, decodeErrorf(chunk, "missing record marker '@'")
	}
	brace := strings.Index(chunk, "{")
	if brace < 0 {
		return Record{}, decodeErrorf(chunk, "missing '{' after entry type")
	}
	typ := strings.TrimSpace(chunk[1:brace])
	if typ == "" {
		return Record{}, decodeErrorf(chunk, "empty entry type")
	}
	rest := chunk[brace:]
	if !strings.HasSuffix(rest, "}") {
		return Record{}, decodeErrorf(chunk, "record body is not closed by '}'")
	}
	body := rest[1 : len(rest)-1]
	key, fieldText := body, ""
	if i := strings.Index(body, ","); i >= 0 {
		key, fieldText = body[:i], body[i+1:]
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Record{}, decodeErrorf(chunk, "empty citation key")
	}
	fields, err := parseFieldList(fieldText)
	if err != nil {
		return Record{}, decodeErrorf(chunk, "%v", err)
	}
	return Record{Type: typ, Key: key, Fields: fields}, nil
}

// parseFieldList splits the field-list text on '=' and stitches the tokens
// back into name/value pairs. The first token is the first field name. Each
// middle token holds the end of one value followed by the next field name;
// all comma pieces but the last rejoin into the pending value and the last
// piece becomes the next name. The final token, less trailing whitespace and
// at most one trailing comma, is the last value. Values must not contain a
// literal '='; that is a restriction of the grammar, and such input parses
// wrong without an error here.
func parseFieldList(text string) (Fields, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	tokens := strings.Split(text, "=")
	if len(tokens) == 1 {
		return nil, fmt.Errorf("field %q has no '=' value", strings.TrimSpace(tokens[0]))
	}
	var fields Fields
	add := func(name, value string) error {
		if name == "" {
			return fmt.Errorf("empty field name")
		}
		if fields.Has(name) {
			return fmt.Errorf("duplicate field %q", name)
		}
		fields = append(fields, Field{Name: name, Value: value})
		return nil
	}
	name := strings.TrimSpace(tokens[0])
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if i == len(tokens)-1 {
			val := strings.TrimRight(tok, " \t")
			val = strings.TrimSuffix(val, ",")
			if err := add(name, strings.TrimSpace(val)); err != nil {
				return nil, err
			}
			break
		}
		pieces := strings.Split(tok, ",")
		val := strings.Join(pieces[:len(pieces)-1], ",")
		if err := add(name, strings.TrimSpace(val)); err != nil {
			return nil, err
		}
		name = strings.TrimSpace(pieces[len(pieces)-1])
	}
	return fields, nil
}

// Encode renders a Record in canonical form:
//
//	@type{key,
//	name = value,
//	}
//
// One line per field in stored order, every field line comma-terminated (the
// last included), closing brace on its own line, no trailing newline.
func Encode(rec Record) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "@%s{%s,\n", rec.Type, rec.Key)
	for _, f := range rec.Fields {
		fmt.Fprintf(&b, "%s = %s,\n", f.Name, f.Value)
	}
	b.WriteString("}")
	return b.String()
}
