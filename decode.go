package colorcube

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText normalizes LUT bytes to UTF-8. A UTF-8, UTF-16LE or UTF-16BE
// byte order mark selects the source encoding and is stripped; without a BOM
// the input is taken as UTF-8.
func decodeText(data []byte) ([]byte, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: decode text: %w", ErrMalformedFormat, err)}
	}
	return out, nil
}
