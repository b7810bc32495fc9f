// Package wav wraps raw 16-bit mono PCM in an uncompressed WAV
// container. The speech model returns bare PCM frames; browsers need
// the 44-byte RIFF header in front before they will play them.
package wav

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// DefaultSampleRate is the sample rate the speech model emits.
const DefaultSampleRate = 24000

// HeaderSize is the fixed size of the canonical RIFF/WAVE header.
const HeaderSize = 44

const (
	formatPCM     = 1
	numChannels   = 1
	bitsPerSample = 16
	blockAlign    = numChannels * bitsPerSample / 8
)

// Encode prepends the canonical 44-byte WAV header to pcm, interpreted
// as 16-bit signed little-endian mono samples. All multi-byte header
// fields are little-endian.
func Encode(pcm []byte, sampleRate int) []byte {
	dataLen := len(pcm)
	out := make([]byte, 0, HeaderSize+dataLen)

	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+dataLen))
	out = append(out, "WAVE"...)
	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, formatPCM)
	out = binary.LittleEndian.AppendUint16(out, numChannels)
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate*blockAlign))
	out = binary.LittleEndian.AppendUint16(out, blockAlign)
	out = binary.LittleEndian.AppendUint16(out, bitsPerSample)
	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(dataLen))

	return append(out, pcm...)
}

// PCMToWAV decodes base64 PCM, wraps it via Encode, and re-encodes the
// whole header+data buffer to base64.
func PCMToWAV(base64PCM string, sampleRate int) (string, error) {
	pcm, err := base64.StdEncoding.DecodeString(base64PCM)
	if err != nil {
		return "", fmt.Errorf("decode pcm: %w", err)
	}
	return base64.StdEncoding.EncodeToString(Encode(pcm, sampleRate)), nil
}
