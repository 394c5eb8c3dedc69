package occurrence

import (
	"testing"
	"time"

	"github.com/iwtcode/pendantService/models"
	"github.com/stretchr/testify/assert"
)

func TestRecordConversion(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := models.InterlockEvent{
		ErrorID:   "8a9c2f7e-0000-4000-8000-000000000001",
		Code:      "S-1002",
		Domain:    "security",
		Message:   "Cell gate open",
		Status:    "Raised",
		Counter:   1,
		Timestamp: at,
	}

	rec := toRecord(ev)
	assert.NotEqual(t, rec.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, at, rec.OccurredAt)
	assert.Equal(t, ev, fromRecord(*rec))
}
