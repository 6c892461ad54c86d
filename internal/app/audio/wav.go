package audio

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadFile decodes a wav file into a Buffer.
func ReadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid wav file", path)
	}

	pcmBuf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}

	pcm := make([]byte, 0, len(pcmBuf.Data)*(bitDepth/8))
	switch bitDepth {
	case 8:
		for _, s := range pcmBuf.Data {
			pcm = append(pcm, byte(s))
		}
	case 16:
		var tmp [2]byte
		for _, s := range pcmBuf.Data {
			binary.LittleEndian.PutUint16(tmp[:], uint16(int16(s)))
			pcm = append(pcm, tmp[:]...)
		}
	case 32:
		var tmp [4]byte
		for _, s := range pcmBuf.Data {
			binary.LittleEndian.PutUint32(tmp[:], uint32(int32(s)))
			pcm = append(pcm, tmp[:]...)
		}
	default:
		return nil, fmt.Errorf("unsupported bit depth %d in %s", bitDepth, path)
	}

	return &Buffer{
		PCM:        pcm,
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   bitDepth,
	}, nil
}
