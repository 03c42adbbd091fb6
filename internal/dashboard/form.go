package dashboard

import (
	"net/url"
	"strings"

	"github.com/evcraddock/rentdesk/internal/client"
)

// ConfirmField carries the answer to a confirmation prompt. Fields starting
// with an underscore belong to the dashboard and are never submitted.
const ConfirmField = "_confirm"

// Form is a submitted form: its field values and an optional attachment.
type Form struct {
	Values url.Values
	File   *client.File
}

// NewForm wraps submitted values. A nil map yields an empty form.
func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{Values: values}
}

// Get returns the last value submitted for field.
func (f *Form) Get(field string) string {
	vs := f.Values[field]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

// Fields flattens the form into the object sent to the API. When a field
// repeats, the last value wins.
func (f *Form) Fields() map[string]string {
	out := make(map[string]string, len(f.Values))
	for k := range f.Values {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = f.Get(k)
	}
	return out
}

// Reset clears every field and drops the attachment.
func (f *Form) Reset() {
	f.Values = url.Values{}
	f.File = nil
}
