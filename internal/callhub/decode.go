package callhub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeConcatenated parses a body containing one or more JSON objects
// concatenated without separators. The custom fields listing endpoint is
// known to respond this way; keeping the corrective parsing here avoids
// ad hoc string splitting at call sites.
func decodeConcatenated(body []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	var objects []map[string]any
	for {
		var obj map[string]any
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode concatenated response: %w", err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}
