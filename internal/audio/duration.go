package audio

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits 16-bit stereo PCM.
const bytesPerSample = 4

// Duration reports the playing time of an MP3 payload in milliseconds.
// The payload is measured by walking its actual frames, so variable-bitrate
// streams come out right.
func Duration(data []byte) (int, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	pcm := dec.Length()
	if pcm < 0 {
		n, err := io.Copy(io.Discard, dec)
		if err != nil {
			return 0, fmt.Errorf("decode mp3: %w", err)
		}
		pcm = n
	}

	return int(pcm * 1000 / (bytesPerSample * int64(dec.SampleRate()))), nil
}
