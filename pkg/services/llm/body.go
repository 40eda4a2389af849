package llm

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// readBody returns the response body, decoding gzip, deflate and brotli
// content encodings.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	encoding := resp.Header.Get("Content-Encoding")

	switch encoding {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		// HTTP deflate is zlib-wrapped (RFC 1950), not raw DEFLATE.
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open deflate body: %w", err)
		}
		defer zr.Close()
		reader = zr
	case "br":
		reader = brotli.NewReader(resp.Body)
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q body: %w", encoding, err)
	}
	return body, nil
}
