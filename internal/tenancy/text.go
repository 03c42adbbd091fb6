// Package tenancy provides the records served by the tenancy API: tenants,
// rooms, payments, maintenance requests and vacate requests.
package tenancy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a scalar the API may send as a string, a number or a boolean.
// It keeps the value as text; null decodes to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding text: %w", err)
		}
		*t = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decoding text: %w", err)
		}
		*t = Text(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decoding text: %w", err)
		}
		*t = Text(n.String())
	}
	return nil
}

// String returns the text value.
func (t Text) String() string {
	return string(t)
}
