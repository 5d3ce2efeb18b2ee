package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/couchcryptid/ajudejf/internal/domain"
)

const maxFormBytes = 64 << 10

// readFormPairs returns the url-encoded body of r in document order.
// Request.ParseForm keeps values per name but loses their relative order,
// which decides the summary and payload column order.
func readFormPairs(w http.ResponseWriter, r *http.Request) ([]domain.FormPair, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}
	return parseFormPairs(string(body))
}

func parseFormPairs(body string) ([]domain.FormPair, error) {
	var pairs []domain.FormPair
	for _, part := range strings.Split(body, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		n, err := url.QueryUnescape(name)
		if err != nil {
			return nil, fmt.Errorf("decode form field %q: %w", name, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("decode form value of %q: %w", n, err)
		}
		pairs = append(pairs, domain.FormPair{Name: n, Value: v})
	}
	return pairs, nil
}
