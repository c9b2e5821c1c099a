package protocol

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// HashField is the envelope key that carries the integrity tag.
const HashField = "Hash"

// The integrity tag is the hex SHA-256 of the envelope without its Hash
// field, rendered in the indented form the desktop clients hash: keys
// sorted, four-space indent, "key": value, a trailing newline and no HTML
// escaping. It has no key: it detects corruption in transit but anyone can
// recompute it, so it is not authentication.

// Digest returns the tag for an already decoded envelope. The Hash key, if
// present, is ignored.
func Digest(envelope map[string]any) (string, error) {
	body := make(map[string]any, len(envelope))
	for key, value := range envelope {
		if key != HashField {
			body[key] = value
		}
	}

	text, err := canonical(body)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(text)
	return hex.EncodeToString(sum[:]), nil
}

// Decode parses raw into a generic envelope, keeping numbers verbatim.
func Decode(raw []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var envelope map[string]any
	if err := decoder.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("%w: envelope is not an object", ErrIntegrity)
	}
	return envelope, nil
}

// Verify checks the Hash of raw and returns the decoded envelope.
func Verify(raw []byte) (map[string]any, error) {
	envelope, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	tag, ok := envelope[HashField].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrIntegrity)
	}
	received, err := hex.DecodeString(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: hash is not hex", ErrIntegrity)
	}

	expected, err := Digest(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	want, _ := hex.DecodeString(expected)
	if !bytes.Equal(received, want) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrIntegrity)
	}
	return envelope, nil
}

// Seal encodes v and attaches its integrity tag.
func Seal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	envelope, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	tag, err := Digest(envelope)
	if err != nil {
		return nil, err
	}
	envelope[HashField] = tag
	return json.Marshal(envelope)
}

// Open verifies raw and decodes it into v.
func Open(raw []byte, v any) error {
	if _, err := Verify(raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadValue, err)
	}
	return nil
}

// canonical renders a decoded envelope in the hashed text form. Empty
// objects and arrays keep their line break ("{\n}", "[\n    ]").
func canonical(envelope map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, envelope, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, value any, indent int) error {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		buf.WriteString("{\n")
		for i, key := range keys {
			buf.WriteString(strings.Repeat("    ", indent+1))
			writeString(buf, key)
			buf.WriteString(": ")
			if err := writeValue(buf, v[key], indent+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("    ", indent))
		buf.WriteByte('}')
	case []any:
		buf.WriteString("[\n")
		for i, item := range v {
			buf.WriteString(strings.Repeat("    ", indent+1))
			if err := writeValue(buf, item, indent+1); err != nil {
				return err
			}
			if i < len(v)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat("    ", indent))
		buf.WriteByte(']')
	case string:
		writeString(buf, v)
	case json.Number:
		return writeNumber(buf, v)
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unsupported envelope value %T", value)
	}
	return nil
}

// writeNumber prints integers as integers and every other number in its
// shortest round-trip form, so 1.50 and 1.5 hash alike.
func writeNumber(buf *bytes.Buffer, n json.Number) error {
	if i, err := n.Int64(); err == nil {
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// writeString escapes quotes, backslashes and control characters only.
// Everything else, including '<', '>', '&' and non-ASCII text, is written as is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, c)
				continue
			}
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}
