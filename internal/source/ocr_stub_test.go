//go:build !ocr

package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOCRSourceDisabled(t *testing.T) {
	_, err := (&OCRSource{}).Words(context.Background())
	assert.ErrorIs(t, err, ErrOCRNotEnabled)
}
