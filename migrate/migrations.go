package migrate

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// TimestampOffsetFix repairs the malformed "+00+00:00" UTC offset suffix an
// early generator wrote into created_at and updated_at, rewriting it to the
// valid "+00:00" form.
type TimestampOffsetFix struct{}

// Name implements Migration.
func (TimestampOffsetFix) Name() string { return "2024-11-08-timestamp-offset-fix" }

// Apply implements Migration.
func (TimestampOffsetFix) Apply(data []byte) ([]byte, bool, error) {
	changed := false
	for _, field := range []string{"created_at", "updated_at"} {
		value := gjson.GetBytes(data, field)
		if !value.Exists() {
			continue
		}
		fixed := strings.ReplaceAll(value.String(), "+00+00:00", "+00:00")
		if fixed == value.String() {
			continue
		}
		next, err := sjson.SetBytes(data, field, fixed)
		if err != nil {
			return nil, false, fmt.Errorf("set %s: %w", field, err)
		}
		data = next
		changed = true
	}
	return data, changed, nil
}

// StripReferences removes the redacted, appended and group keys. The
// synthetic data set never carries real referenced documents, so dangling
// references are dropped rather than resolved.
type StripReferences struct{}

// Name implements Migration.
func (StripReferences) Name() string { return "2024-11-08-strip-references" }

// Apply implements Migration.
func (StripReferences) Apply(data []byte) ([]byte, bool, error) {
	changed := false
	for _, field := range []string{"redacted", "appended", "group"} {
		if !gjson.GetBytes(data, field).Exists() {
			continue
		}
		next, err := sjson.DeleteBytes(data, field)
		if err != nil {
			return nil, false, fmt.Errorf("delete %s: %w", field, err)
		}
		data = next
		changed = true
	}
	return data, changed, nil
}
