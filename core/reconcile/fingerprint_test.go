package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func tvPtr(v TimeValue) *TimeValue { return &v }

func standup() SourceEvent {
	return SourceEvent{
		UID:      "abc@upstream",
		Title:    "Standup",
		Start:    Instant(time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)),
		End:      tvPtr(Instant(time.Date(2023, 6, 1, 11, 0, 0, 0, time.UTC))),
		Location: strPtr("Room A"),
	}
}

func TestFingerprint_Format(t *testing.T) {
	fp, err := Fingerprint(standup())
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("202306011000_202306011100_Standup_Room A"))
	assert.Equal(t, hex.EncodeToString(sum[:]), fp)
	assert.Len(t, fp, 64)
}

func TestFingerprint_IgnoresUIDAndDescription(t *testing.T) {
	a := standup()
	b := standup()
	b.UID = "recreated@upstream"
	b.Description = strPtr("Agenda moved to the wiki")

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestFingerprint_SensitiveFields(t *testing.T) {
	base, err := Fingerprint(standup())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*SourceEvent)
	}{
		{"Title", func(ev *SourceEvent) { ev.Title = "Retro" }},
		{"Location", func(ev *SourceEvent) { ev.Location = strPtr("Room B") }},
		{"NoLocation", func(ev *SourceEvent) { ev.Location = nil }},
		{"Start", func(ev *SourceEvent) { ev.Start = Instant(time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)) }},
		{"End", func(ev *SourceEvent) { ev.End = tvPtr(Instant(time.Date(2023, 6, 1, 11, 30, 0, 0, time.UTC))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := standup()
			tt.mutate(&ev)
			fp, err := Fingerprint(ev)
			require.NoError(t, err)
			assert.NotEqual(t, base, fp)
		})
	}
}

func TestFingerprint_MinuteResolution(t *testing.T) {
	a := standup()
	b := standup()
	b.Start = Instant(time.Date(2023, 6, 1, 10, 0, 42, 0, time.UTC))

	fa, _ := Fingerprint(a)
	fb, _ := Fingerprint(b)
	assert.Equal(t, fa, fb)
}

func TestFingerprint_MissingEndUsesStart(t *testing.T) {
	ev := standup()
	ev.End = nil

	fp, err := Fingerprint(ev)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("202306011000_202306011000_Standup_Room A"))
	assert.Equal(t, hex.EncodeToString(sum[:]), fp)
}

func TestFingerprint_DateOnly(t *testing.T) {
	ev := SourceEvent{
		Title: "Holiday",
		Start: Date(2023, 7, 4),
		End:   tvPtr(Date(2023, 7, 5)),
	}

	fp, err := Fingerprint(ev)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("20230704_20230705_Holiday_"))
	assert.Equal(t, hex.EncodeToString(sum[:]), fp)
}

func TestFingerprint_WallClockOfOwnZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	ev := SourceEvent{
		Title: "Standup",
		Start: Instant(time.Date(2023, 6, 1, 12, 0, 0, 0, berlin)),
	}
	fp, err := Fingerprint(ev)
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("202306011200_202306011200_Standup_"))
	assert.Equal(t, hex.EncodeToString(sum[:]), fp)
}

func TestFingerprint_MissingStart(t *testing.T) {
	_, err := Fingerprint(SourceEvent{Title: "Broken"})
	assert.ErrorIs(t, err, ErrMissingStart)
}

func TestFingerprintOrFallback(t *testing.T) {
	fp, degraded := FingerprintOrFallback(standup())
	assert.False(t, degraded)
	assert.Len(t, fp, 64)

	fp, degraded = FingerprintOrFallback(SourceEvent{UID: "uid-1"})
	assert.True(t, degraded)
	assert.Equal(t, "uid-1", fp)

	a, degraded := FingerprintOrFallback(SourceEvent{})
	assert.True(t, degraded)
	b, _ := FingerprintOrFallback(SourceEvent{})
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
