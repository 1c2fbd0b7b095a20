package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies an output encoding.
type Format int

const (
	FormatTOML Format = iota // toml
	FormatYAML               // yaml
	FormatJSON               // json
)

// DefaultFormat is used when no format is given and none can be inferred.
const DefaultFormat = FormatTOML

// Formats yields the names of all supported formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name (case-insensitive).
// "yml" is accepted as an alias of "yaml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}

	return DefaultFormat, ErrInvalidFormat.WrapText(name).
		With(slog.String("format", name))
}

// FormatFromPath infers the format from the extension of path, falling back
// to [DefaultFormat].
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return DefaultFormat
	}

	f, err := ParseFormat(ext)
	if err != nil {
		return DefaultFormat
	}

	return f
}

// Encode writes m to w in the given format. Indent applies to YAML and JSON;
// zero selects compact output.
//
// The mapping is encoded in full before anything is written, so a failed
// encode leaves w untouched.
func Encode(
	ctx context.Context,
	w io.Writer,
	m *Mapping,
	format Format,
	indent int,
) error {
	var (
		buf bytes.Buffer
		err error
	)

	switch format {
	case FormatTOML:
		err = m.EncodeTOML(&buf)
	case FormatYAML:
		err = m.EncodeYAML(ctx, &buf, indent)
	case FormatJSON:
		err = m.EncodeJSON(&buf, indent)
	default:
		return ErrInvalidFormat.WrapText(format.String())
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format.String()))
	}

	if _, err := buf.WriteTo(w); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format.String()))
	}

	return nil
}

// EncodeTOML writes m as a TOML document with keys in first-assignment
// order.
func (m *Mapping) EncodeTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)

	// Encoding a map sorts its keys, so emit one single-key table per entry.
	for k, v := range m.All() {
		if err := enc.Encode(map[string]any{k: v.Native()}); err != nil {
			return err
		}
	}

	return nil
}

// EncodeYAML writes m as a YAML document. A positive indent sets the
// block indentation; otherwise flow style is used.
func (m *Mapping) EncodeYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, m.MapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// MapSlice returns m as an ordered YAML mapping.
func (m *Mapping) MapSlice() yaml.MapSlice {
	ms := make(yaml.MapSlice, 0, m.Len())
	for k, v := range m.All() {
		ms = append(ms, yaml.MapItem{Key: k, Value: v.Native()})
	}

	return ms
}

// EncodeJSON writes m as a JSON object followed by a newline.
func (m *Mapping) EncodeJSON(w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(m, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(m)
	}

	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// MarshalJSON implements json.Marshaler, keeping keys in first-assignment
// order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v.Native())
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
