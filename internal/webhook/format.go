package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Shape identifies which reply layout a webhook body matched.
type Shape int

const (
	// ShapeText is a bare JSON string or a body that is not JSON at all.
	ShapeText Shape = iota
	// ShapeMessageContent is {"message":{"content":"..."}}.
	ShapeMessageContent
	// ShapeEnvelopeArray is an array whose first element is a recognised object.
	ShapeEnvelopeArray
	// ShapeField is an object with one of the well-known text fields.
	ShapeField
	// ShapeUnknown is any other JSON value.
	ShapeUnknown
)

func (s Shape) String() string {
	switch s {
	case ShapeText:
		return "text"
	case ShapeMessageContent:
		return "message_content"
	case ShapeEnvelopeArray:
		return "envelope_array"
	case ShapeField:
		return "field"
	default:
		return "unknown"
	}
}

// textFields are checked in this order.
var textFields = []string{"output", "answer", "response", "message", "text"}

// Response is the parsed reply. Text is set for every shape but ShapeUnknown.
type Response struct {
	Shape Shape
	Text  string
	// Field names the matched key for ShapeField.
	Field string
	// Value holds the decoded body for ShapeUnknown.
	Value any
}

func ParseResponse(body []byte) Response {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Response{Shape: ShapeText}
	}
	if looksLikeHTML(string(trimmed)) {
		return Response{Shape: ShapeText, Text: htmlToText(string(trimmed))}
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil || dec.More() {
		return Response{Shape: ShapeText, Text: string(trimmed)}
	}

	switch val := v.(type) {
	case string:
		return Response{Shape: ShapeText, Text: val}
	case map[string]any:
		if r, ok := parseObject(val); ok {
			return r
		}
	case []any:
		if len(val) > 0 {
			if obj, ok := val[0].(map[string]any); ok {
				if r, ok := parseObject(obj); ok {
					return Response{Shape: ShapeEnvelopeArray, Text: r.Text, Field: r.Field}
				}
			}
		}
	}
	return Response{Shape: ShapeUnknown, Value: v}
}

func parseObject(obj map[string]any) (Response, bool) {
	if msg, ok := obj["message"].(map[string]any); ok {
		if content, ok := msg["content"].(string); ok {
			return Response{Shape: ShapeMessageContent, Text: content}, true
		}
	}
	for _, f := range textFields {
		if s, ok := obj[f].(string); ok {
			return Response{Shape: ShapeField, Text: s, Field: f}, true
		}
	}
	return Response{}, false
}

// Render turns the response into display text.
func (r Response) Render() string {
	if r.Shape == ShapeUnknown {
		return strings.TrimSpace(renderUnknown(r.Value))
	}
	return strings.TrimSpace(unescape(r.Text))
}

// FormatResponseToText normalizes any webhook body into displayable prose.
func FormatResponseToText(body []byte) string {
	return ParseResponse(body).Render()
}

var escapeReplacer = strings.NewReplacer(
	`\r\n`, "\n",
	`\n`, "\n",
	`\t`, "\t",
	`\"`, `"`,
)

// unescape expands escape sequences that arrive double-encoded in the text.
func unescape(s string) string {
	return escapeReplacer.Replace(s)
}

var fieldNames = map[string]string{
	"status":    "Durum",
	"success":   "Başarılı",
	"error":     "Hata",
	"message":   "Mesaj",
	"data":      "Veri",
	"result":    "Sonuç",
	"content":   "İçerik",
	"code":      "Kod",
	"details":   "Detaylar",
	"timestamp": "Zaman",
	"userId":    "Kullanıcı",
	"user_id":   "Kullanıcı",
	"date":      "Tarih",
	"sign":      "Burç",
	"comment":   "Yorum",
}

func renderUnknown(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return renderValue(v)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		name, ok := fieldNames[k]
		if !ok {
			name = k
		}
		fmt.Fprintf(&b, "%s: %s\n", name, renderValue(obj[k]))
	}
	return b.String()
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return unescape(val)
	case bool:
		if val {
			return "evet"
		}
		return "hayır"
	case json.Number:
		return val.String()
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(out)
	}
}

func looksLikeHTML(s string) bool {
	if !strings.HasPrefix(s, "<") {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype") ||
		strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<p") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<br")
}

// htmlToText flattens an HTML reply, keeping paragraph and line breaks.
func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Find("body").Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
