package structureddata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	scriptOpen  = `<script type="application/ld+json">`
	scriptClose = `</script>`
)

// Encode marshals a schema without Go's HTML escaping; the schema builders
// have already made every string safe for a script element.
func Encode(data any) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("failed to encode structured data: %w", err)
	}

	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// Script wraps the encoded schema in an application/ld+json script element.
func Script(data any) (string, error) {
	payload, err := Encode(data)
	if err != nil {
		return "", err
	}

	return scriptOpen + payload + scriptClose, nil
}
