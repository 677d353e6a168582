package providers

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONContent is returned when a model response contains no JSON
// array or object at all.
var ErrNoJSONContent = errors.New("no JSON content found in response")

var whitespaceRuns = regexp.MustCompile(`\s+`)

// DecodeEventEnvelope extracts event-like records from a raw model
// response. Models wrap their JSON in prose, code fences and stray
// whitespace; this locates the outermost array (or, failing that, a
// single object, which is wrapped into a one-element list), normalizes
// whitespace and decodes. Non-object items inside the array are dropped.
func DecodeEventEnvelope(response string) ([]map[string]interface{}, error) {
	payload, err := locateJSON(response)
	if err != nil {
		return nil, err
	}

	payload = whitespaceRuns.ReplaceAllString(payload, " ")

	var items []interface{}
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, err
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// locateJSON finds the outermost JSON array in the response, or a single
// object wrapped as an array when no array exists.
func locateJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start != -1 && end > start {
		return response[start : end+1], nil
	}

	start = strings.Index(response, "{")
	end = strings.LastIndex(response, "}")
	if start != -1 && end > start {
		return "[" + response[start:end+1] + "]", nil
	}

	return "", ErrNoJSONContent
}
