package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const textIndent = "  "

// TextFormatter renders decoded JSON as indented "key: value" lines.
// Strings are written verbatim; list items are separated by "---".
type TextFormatter struct{}

// Format writes data to w.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	var b strings.Builder
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		b.WriteString(strings.TrimRight(v, "\n"))
		b.WriteByte('\n')
	case []any:
		for i, item := range v {
			if i > 0 {
				b.WriteString("---\n")
			}
			writeValue(&b, item, "")
		}
	default:
		writeValue(&b, v, "")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeValue(b *strings.Builder, v any, indent string) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeEntry(b, k, t[k], indent)
		}
	case []any:
		for _, item := range t {
			if isScalar(item) {
				fmt.Fprintf(b, "%s- %s\n", indent, scalar(item))
				continue
			}
			fmt.Fprintf(b, "%s-\n", indent)
			writeValue(b, item, indent+textIndent)
		}
	default:
		fmt.Fprintf(b, "%s%s\n", indent, scalar(t))
	}
}

func writeEntry(b *strings.Builder, key string, v any, indent string) {
	if isScalar(v) {
		fmt.Fprintf(b, "%s%s: %s\n", indent, key, scalar(v))
		return
	}
	fmt.Fprintf(b, "%s%s:\n", indent, key)
	writeValue(b, v, indent+textIndent)
}

func isScalar(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return true
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		return "{}"
	case []any:
		return "[]"
	default:
		return fmt.Sprint(t)
	}
}
