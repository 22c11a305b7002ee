package sceneio

import (
	"fmt"
	"strconv"
)

// readFloat consumes one token and parses it as a float64.
func readFloat(t *tokenizer) (float64, error) {
	tok, _, ok := t.next()
	if !ok {
		return 0, fmt.Errorf("expected a number, got end of file")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", tok)
	}
	return v, nil
}
