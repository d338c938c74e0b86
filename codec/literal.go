package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExpectLiteral decodes data and checks that it equals literal, which must
// be a bool, string or integer constant. Numbers are compared by their
// canonical JSON text, so 1 matches 1 but neither true nor "1" nor 1.0.
func ExpectLiteral[L bool | string | int | uint8](data []byte, literal L) error {
	want, err := json.Marshal(literal)
	if err != nil {
		return err
	}

	got := bytes.TrimSpace(data)
	if !bytes.Equal(got, want) {
		return NewDecodeError(
			"", string(got), fmt.Errorf("%w: expected %s",
				ErrUnknownValue, want),
		)
	}

	return nil
}
