package kafka

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neo-data-etl/internal/config"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

func testRecord() domain.CombinedRecord {
	return domain.CombinedRecord{
		ApproachRecord: domain.ApproachRecord{
			DatetimeUTC: "1900-12-27 01:30",
			DistanceAU:  0.314,
			VelocityKmS: 5.58,
		},
		NEO: domain.NEORecord{
			Designation:          "433",
			Name:                 "Eros",
			DiameterKM:           16.84,
			PotentiallyHazardous: false,
		},
		ProcessedAt: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(testRecord())
	require.NoError(t, err)

	assert.Equal(t, []byte("433"), msg.Key)

	var decoded domain.CombinedRecord
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "1900-12-27 01:30", decoded.DatetimeUTC)
	assert.Equal(t, "Eros", decoded.NEO.Name)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "false", headers["hazardous"])
	assert.Equal(t, "2025-06-01T12:00:00Z", headers["processed_at"])
}

func TestSerializeToMessage_UnknownsAreNull(t *testing.T) {
	rec := testRecord()
	rec.DistanceAU = domain.OptionalFloat(math.NaN())
	rec.NEO.DiameterKM = domain.OptionalFloat(math.NaN())

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Contains(t, string(msg.Value), `"distance_au":null`)
	assert.Contains(t, string(msg.Value), `"diameter_km":null`)
}

func TestNewWriterUsesConfig(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:   []string{"broker1:9092", "broker2:9092"},
		KafkaSinkTopic: "neo-close-approaches",
	}
	w := NewWriter(cfg, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "neo-close-approaches", w.writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", w.writer.Addr.String())
}
