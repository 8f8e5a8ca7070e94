package fieldops

import (
	"fmt"
	"net/url"
)

// Filters is an arbitrary key/value mapping applied to list requests. There
// is no fixed schema per resource; the server ignores keys it does not know.
type Filters map[string]interface{}

// Values converts the filters to url.Values. Keys whose value is nil or an
// empty string are dropped; falsy-but-defined values such as 0 and false are
// kept.
func (f Filters) Values() url.Values {
	if len(f) == 0 {
		return url.Values{}
	}

	values := url.Values{}

	for key, value := range f {
		if value == nil {
			continue
		}

		if s, ok := value.(string); ok {
			if s == "" {
				continue
			}

			values.Set(key, s)

			continue
		}

		values.Set(key, fmt.Sprintf("%v", value))
	}

	return values
}

// Encode returns the filters as a query string. Key order is deterministic
// (url.Values sorts on encode).
func (f Filters) Encode() string {
	return f.Values().Encode()
}
