package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateULID_SortedWithinSameInstant(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	first := GenerateULID(now)
	second := GenerateULID(now)

	assert.Len(t, first, 26)
	assert.Less(t, first, second)
}

func TestGenerateUUID_NoHyphens(t *testing.T) {
	id := GenerateUUID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
}

func TestLogJSONFormatter(t *testing.T) {
	assert.Equal(t, `{"a":1}`, LogJSONFormatter(map[string]int{"a": 1}))
	assert.Equal(t, "", LogJSONFormatter(make(chan int)))
}
