package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsEmptyFile(t *testing.T) {
	assert.ErrorIs(t, Validate(0), ErrEmptyFile)
	assert.ErrorIs(t, Validate(-1), ErrEmptyFile)
	assert.NoError(t, Validate(1))
}

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		declared string
		want     string
		wantErr  bool
	}{
		{"declared supported", "lecture.bin", "audio/webm", "audio/webm", false},
		{"wav from extension", "lecture.WAV", "application/octet-stream", "audio/wav", false},
		{"wave from extension", "lecture.wave", "", "audio/wav", false},
		{"mp3 from extension", "lecture.mp3", "binary/octet-stream", "audio/mpeg", false},
		{"m4a from extension", "lecture.m4a", "", "audio/x-m4a", false},
		{"mp4 from extension", "lecture.mp4", "", "audio/mp4", false},
		{"webm from extension", "lecture.webm", "", "audio/webm", false},
		{"unsupported", "lecture.ogg", "audio/ogg", "", true},
		{"no extension", "lecture", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveContentType(tt.fileName, tt.declared)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".mp3", Extension("lecture.MP3"))
	assert.Equal(t, ".wav", Extension("recording"))
}

func TestWaveformFromPCM16(t *testing.T) {
	wav := buildWAV(t, 640, math.MaxInt16/2)

	envelope := Waveform(wav)

	require.Len(t, envelope, MaxWaveformBuckets)
	for _, v := range envelope {
		assert.InDelta(t, 0.5, v, 0.01)
	}
}

func TestWaveformShortClipUsesFewerBuckets(t *testing.T) {
	wav := buildWAV(t, 5, 1000)

	envelope := Waveform(wav)

	assert.Len(t, envelope, 5)
}

func TestWaveformRejectsNonWAV(t *testing.T) {
	assert.Nil(t, Waveform([]byte("not a riff file at all, just text")))
	assert.Nil(t, Waveform(nil))
}

// buildWAV writes a minimal PCM16 mono WAV with n samples of the given value.
func buildWAV(t *testing.T, n int, sample int16) []byte {
	t.Helper()

	dataSize := n * 2
	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1)  // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1)  // mono
	buf = binary.LittleEndian.AppendUint32(buf, 16000)
	buf = binary.LittleEndian.AppendUint32(buf, 32000)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 16)
	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	for i := 0; i < n; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(sample))
	}
	return buf
}
