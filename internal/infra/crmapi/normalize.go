package crmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
)

// pageBody is the paginated list shape of the CRM.
type pageBody[T any] struct {
	Results  []T     `json:"results"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Count    int     `json:"count"`
}

// Normalize turns a successful CRM response body into an Envelope.
//
// A JSON object carrying a "results" key is a page: its results become Data
// and next/previous/count become Pagination. Any other body is wrapped as
// a single element, arrays and primitives included. An empty body yields
// an empty Data slice.
func Normalize[T any](status int, body []byte) (domain.Envelope[T], error) {
	env := domain.Envelope[T]{Success: true, Status: status, Data: []T{}}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return env, nil
	}

	if trimmed[0] == '{' {
		var head map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &head); err != nil {
			return domain.Failed[T](status, domain.KindDecode), fmt.Errorf("decode body: %w", err)
		}
		if _, paged := head["results"]; paged {
			var page pageBody[T]
			if err := json.Unmarshal(trimmed, &page); err != nil {
				return domain.Failed[T](status, domain.KindDecode), fmt.Errorf("decode page: %w", err)
			}
			if page.Results != nil {
				env.Data = page.Results
			}
			env.Pagination = &domain.Pagination{
				Next:  page.Next,
				Prev:  page.Previous,
				Count: page.Count,
			}
			return env, nil
		}
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return domain.Failed[T](status, domain.KindDecode), fmt.Errorf("decode body: %w", err)
	}
	env.Data = []T{v}
	return env, nil
}

// joinURL joins base and path with exactly one slash between them.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// withPage appends page_size and page to path when both are positive.
func withPage(path string, p domain.PageRequest) string {
	if p.Page <= 0 || p.PageSize <= 0 {
		return path
	}
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(p.PageSize))
	q.Set("page", strconv.Itoa(p.Page))
	return withQuery(path, q)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func seg(id string) string { return url.PathEscape(id) }
