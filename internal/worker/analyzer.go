package worker

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

var audioClient = &http.Client{Timeout: 30 * time.Second}

// analyzeAudio downloads the rendered MP3 and computes its RMS loudness,
// normalized to [0,1] against full-scale 16-bit samples.
func analyzeAudio(url string) (float64, error) {
	// #nosec G107 -- URL comes from a render job row written by our own engines
	resp, err := audioClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("audio fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("audio fetch status %d", resp.StatusCode)
	}

	decoder, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("audio decode failed: %w", err)
	}

	buf := make([]byte, 4096)
	var sumSquares float64
	var count float64

	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			for i := 0; i+1 < n; i += 2 {
				sample := int16(buf[i]) | int16(buf[i+1])<<8
				val := float64(sample)
				sumSquares += val * val
				count++
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("audio read failed: %w", err)
		}
	}

	if count == 0 {
		return 0, fmt.Errorf("audio contains no samples")
	}

	rms := math.Sqrt(sumSquares / count)
	loudness := rms / 32768.0
	if loudness < 0 {
		loudness = 0
	}
	if loudness > 1 {
		loudness = 1
	}

	return loudness, nil
}

// AnalyzeAudioFunc allows tests to override the analyzer implementation.
var AnalyzeAudioFunc = analyzeAudio
