package audio

import (
	"bytes"
	"encoding/binary"
	"time"
)

// Buffer holds one decoded utterance as raw PCM samples plus the format
// metadata providers need to build a request body.
type Buffer struct {
	PCM        []byte // little-endian signed samples
	SampleRate int
	Channels   int
	BitDepth   int
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	bytesPerSec := b.SampleRate * b.Channels * (b.BitDepth / 8)
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(float64(len(b.PCM)) / float64(bytesPerSec) * float64(time.Second))
}

// Empty reports whether the buffer contains no samples.
func (b *Buffer) Empty() bool {
	return b == nil || len(b.PCM) == 0
}

// WAV wraps the PCM samples in a RIFF/WAVE container so the buffer can be
// posted to HTTP recognition APIs as a regular wav file.
func (b *Buffer) WAV() []byte {
	blockAlign := b.Channels * (b.BitDepth / 8)
	byteRate := b.SampleRate * blockAlign

	var out bytes.Buffer
	out.Grow(44 + len(b.PCM))

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+len(b.PCM)))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&out, binary.LittleEndian, uint16(b.Channels))
	binary.Write(&out, binary.LittleEndian, uint32(b.SampleRate))
	binary.Write(&out, binary.LittleEndian, uint32(byteRate))
	binary.Write(&out, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&out, binary.LittleEndian, uint16(b.BitDepth))

	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(len(b.PCM)))
	out.Write(b.PCM)

	return out.Bytes()
}
