package pave

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	t.Run("document", func(t *testing.T) {
		got, err := FromJSON([]byte(`{
			"name": "Go",
			"count": 3,
			"ratio": 0.5,
			"big": 1e3,
			"ok": true,
			"none": null,
			"tags": ["a", 1],
			"author": {"age": 42}
		}`))
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"name":   "Go",
			"count":  3,
			"ratio":  0.5,
			"big":    1000.0,
			"ok":     true,
			"none":   nil,
			"tags":   []any{"a", 1},
			"author": map[string]any{"age": 42},
		}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := FromJSON([]byte("  "))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := FromJSON([]byte(`{"a":`))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("not_an_object", func(t *testing.T) {
		_, err := FromJSON([]byte(`[1, 2]`))
		assert.ErrorIs(t, err, ErrJSONNotAnObject)
	})

	t.Run("feeds_evaluator", func(t *testing.T) {
		params, err := FromJSON([]byte(`{"price": "19.99", "qty": 2}`))
		require.NoError(t, err)

		p := New(params, EvaluatorOpts{})
		_, err = p.Param("price", Decimal, Options{Required: true})
		require.NoError(t, err)
		qty, err := p.Param("qty", Integer, Options{Min: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, qty)
	})
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"a", []string{"a"}},
		{"a[b]", []string{"a", "b"}},
		{"a[b][c]", []string{"a", "b", "c"}},
		{"tags[]", []string{"tags", ""}},
		{"items[][name]", []string{"items", "", "name"}},
		{"[b]", []string{"[b]"}},
		{"a[b", []string{"a[b"}},
		{"a[b]c", []string{"a[b]c"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, splitKey(tt.key))
		})
	}
}

func TestFromRequest(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet,
			"/books?page=2&tags[]=a&tags[]=b&author[name]=Rob&items[][id]=1&items[][qty]=2&items[][id]=3", nil)

		got, err := FromRequest(r)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"page":   "2",
			"tags":   []any{"a", "b"},
			"author": map[string]any{"name": "Rob"},
			"items": []any{
				map[string]any{"id": "1", "qty": "2"},
				map[string]any{"id": "3"},
			},
		}, got)
	})

	t.Run("escaped_query", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?q=a%20b&filter%5Bkind%5D=x", nil)
		got, err := FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, "a b", got["q"])
		assert.Equal(t, map[string]any{"kind": "x"}, got["filter"])
	})

	t.Run("bad_escape", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.URL.RawQuery = "q=%zz"
		_, err := FromRequest(r)
		assert.Error(t, err)
	})

	t.Run("form_body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/?page=1", strings.NewReader("user[name]=jo&user[age]=7"))
		r.Header.Set("Content-Type", ContentTypeForm)

		got, err := FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"page": "1",
			"user": map[string]any{"name": "jo", "age": "7"},
		}, got)
	})

	t.Run("json_body_wins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/?page=1&sort=asc", strings.NewReader(`{"page": 3}`))
		r.Header.Set("Content-Type", ContentTypeApplicationJSON+"; charset=utf-8")

		got, err := FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, 3, got["page"])
		assert.Equal(t, "asc", got["sort"])

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"page": 3}`, string(body), "body is readable again")
	})

	t.Run("invalid_json_body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", ContentTypeApplicationJSON)

		_, err := FromRequest(r)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("other_body_ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/?a=1", strings.NewReader("raw"))
		r.Header.Set("Content-Type", "text/plain")

		got, err := FromRequest(r)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "1"}, got)
	})

	t.Run("end_to_end", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?ids[]=4&ids[]=x", nil)
		params, err := FromRequest(r)
		require.NoError(t, err)

		_, err = Declare(params, "ids", Array, Options{}, func(p *Evaluator, i int) error {
			_, err := p.Elem(i, Integer, Options{})
			return err
		})
		requireInvalid(t, err, "ids[1]")
	})
}
