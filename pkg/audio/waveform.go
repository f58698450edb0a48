package audio

import (
	"encoding/binary"
	"math"
)

// MaxWaveformBuckets caps the amplitude envelope length so the client
// visualizer always receives at most 32 values.
const MaxWaveformBuckets = 32

// Waveform computes a coarse amplitude envelope from a 16-bit PCM WAV file,
// normalized to [0,1] with at most MaxWaveformBuckets buckets. It returns nil
// for anything that is not plain PCM16 WAV; the envelope is a display aid,
// never a processing requirement.
func Waveform(data []byte) []float64 {
	samples := pcm16Samples(data)
	if len(samples) == 0 {
		return nil
	}

	buckets := MaxWaveformBuckets
	if len(samples) < buckets {
		buckets = len(samples)
	}

	envelope := make([]float64, buckets)
	per := len(samples) / buckets
	for i := 0; i < buckets; i++ {
		start := i * per
		end := start + per
		if i == buckets-1 {
			end = len(samples)
		}

		var sum float64
		for _, s := range samples[start:end] {
			v := float64(s) / math.MaxInt16
			sum += v * v
		}
		envelope[i] = math.Sqrt(sum / float64(end-start))
	}
	return envelope
}

// pcm16Samples walks the RIFF chunk list and returns the int16 samples of
// the data chunk, or nil if the file is not uncompressed 16-bit PCM.
func pcm16Samples(data []byte) []int16 {
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil
	}

	var pcm16 bool
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			return nil
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			pcm16 = format == 1 && bits == 16
		case "data":
			if !pcm16 {
				return nil
			}
			samples := make([]int16, chunkSize/2)
			for i := range samples {
				samples[i] = int16(binary.LittleEndian.Uint16(data[body+i*2 : body+i*2+2]))
			}
			return samples
		}

		// Chunks are word aligned.
		offset = body + chunkSize + chunkSize%2
	}
	return nil
}
