package eventbridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMicrosecondsToTime(t *testing.T) {
	micros := int64(1780315200000000) // 2026-06-01T12:00:00Z
	got := MicrosecondsToTime(micros)

	assert.Equal(t, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), got.UTC())
}

func TestScheduleNames(t *testing.T) {
	assert.Equal(t, "sd-presale-start-democon", presaleStartPrefix+"democon")
	assert.Equal(t, "sd-presale-end-democon", presaleEndPrefix+"democon")
}
