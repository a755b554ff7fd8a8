package audio

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
	"github.com/orcaman/writerseeker"
)

const flacBlockSize = 4096

// FLACEncoder turns captured PCM16 samples into the FLAC body the
// recognition service consumes. The capture layer produces raw PCM; the wire
// format goes PCM -> WAV -> FLAC, mirroring what desktop recognition stacks
// send to the Web Speech API.
type FLACEncoder struct {
	sampleRate int
}

func NewFLACEncoder(sampleRate int) *FLACEncoder {
	return &FLACEncoder{sampleRate: sampleRate}
}

func (e *FLACEncoder) Encode(samples []int16) ([]byte, error) {
	wavData, err := EncodeWAV(samples, e.sampleRate)
	if err != nil {
		return nil, err
	}
	return WAVToFLAC(wavData)
}

// EncodeWAV writes mono 16-bit PCM samples into an in-memory WAV file.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalizing wav: %w", err)
	}

	data, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("reading wav buffer: %w", err)
	}
	return data, nil
}

// WAVToFLAC decodes a mono 16-bit WAV file and re-encodes its samples as FLAC.
func WAVToFLAC(wavData []byte) ([]byte, error) {
	dec := wav.NewDecoder(bytes.NewReader(wavData))
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav payload")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}

	sampleRate := 16000
	if pcm.Format != nil && pcm.Format.SampleRate > 0 {
		sampleRate = pcm.Format.SampleRate
	}

	payload := make([]byte, len(pcm.Data)*2)
	sample32 := make([]int32, len(pcm.Data))
	for i, s := range pcm.Data {
		binary.LittleEndian.PutUint16(payload[i*2:], uint16(int16(s)))
		sample32[i] = int32(s)
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(len(pcm.Data)),
		MD5sum:        md5.Sum(payload),
	}

	out := new(bytes.Buffer)
	enc, err := flac.NewEncoder(out, info)
	if err != nil {
		return nil, fmt.Errorf("creating flac encoder: %w", err)
	}

	for i := 0; i < len(sample32); i += flacBlockSize {
		end := i + flacBlockSize
		if end > len(sample32) {
			end = len(sample32)
		}
		chunk := sample32[i:end]

		f := &frame.Frame{
			Header: frame.Header{
				SampleRate:    uint32(sampleRate),
				Channels:      frame.ChannelsMono,
				BitsPerSample: 16,
				BlockSize:     uint16(len(chunk)),
			},
			Subframes: []*frame.Subframe{
				{
					NSamples: len(chunk),
					Samples:  chunk,
				},
			},
		}

		if err := enc.WriteFrame(f); err != nil {
			return nil, fmt.Errorf("writing flac frame: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalizing flac: %w", err)
	}

	return out.Bytes(), nil
}
