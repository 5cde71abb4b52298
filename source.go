package pave

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON     = errors.New("invalid JSON document")
	ErrJSONNotAnObject = errors.New("JSON document is not an object")
)

///////////////////////////////////////////////////////////////////////////////
// JSON
///////////////////////////////////////////////////////////////////////////////

// FromJSON decodes a JSON object into raw parameters. Objects become
// map[string]any, arrays []any, integral numbers int and other numbers
// float64. An empty document yields an empty map.
func FromJSON(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: got %s", ErrJSONNotAnObject, root.Type)
	}
	return jsonValue(root).(map[string]any), nil
}

func jsonValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		out := make(map[string]any)
		r.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = jsonValue(value)
			return true
		})
		return out
	case r.IsArray():
		elems := r.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = jsonValue(e)
		}
		return out
	}

	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if n := r.Int(); float64(n) == r.Num {
				return int(n)
			}
		}
		return r.Num
	case gjson.String:
		return r.Str
	default:
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// HTTP requests
///////////////////////////////////////////////////////////////////////////////

// FromRequest collects raw parameters from the query string and, for
// urlencoded or JSON bodies, the request body. Body values win over query
// values. Keys use bracket nesting: a[b]=1, tags[]=x, items[][name]=y.
//
// The body is restored after reading so handlers can read it again.
func FromRequest(r *http.Request) (map[string]any, error) {
	params := make(map[string]any)

	if r.URL != nil {
		if err := assignQuery(params, r.URL.RawQuery); err != nil {
			return nil, fmt.Errorf("failed to parse query string: %w", err)
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return params, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != ContentTypeApplicationJSON && mediaType != ContentTypeForm {
		return params, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	switch mediaType {
	case ContentTypeApplicationJSON:
		doc, err := FromJSON(body)
		if err != nil {
			return nil, err
		}
		for k, v := range doc {
			params[k] = v
		}
	case ContentTypeForm:
		if err := assignQuery(params, string(body)); err != nil {
			return nil, fmt.Errorf("failed to parse form body: %w", err)
		}
	}

	return params, nil
}

// assignQuery applies key=value pairs in document order, so arrays of
// hashes are assembled the way the client wrote them.
func assignQuery(params map[string]any, raw string) error {
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return err
		}

		assign(params, splitKey(key), value)
	}
	return nil
}

// splitKey turns "a[b][]" into ["a", "b", ""]. Malformed keys are kept
// whole.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []string{key}
	}

	segs := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		segs = append(segs, rest[1:end])
		rest = rest[end+1:]
	}
	return segs
}

func assign(m map[string]any, segs []string, value string) {
	head, rest := segs[0], segs[1:]

	if len(rest) == 0 {
		m[head] = value
		return
	}

	if rest[0] == "" {
		list, _ := m[head].([]any)
		if len(rest) == 1 {
			m[head] = append(list, value)
			return
		}

		// items[][name]: start a new element once the last one has the key
		var last map[string]any
		if n := len(list); n > 0 {
			last, _ = list[n-1].(map[string]any)
		}
		if _, taken := last[rest[1]]; last == nil || taken {
			last = make(map[string]any)
			list = append(list, last)
		}
		assign(last, rest[1:], value)
		m[head] = list
		return
	}

	child, ok := m[head].(map[string]any)
	if !ok {
		child = make(map[string]any)
		m[head] = child
	}
	assign(child, rest, value)
}
