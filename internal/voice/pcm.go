package voice

import (
	"math"
	"time"
)

const (
	// InputSampleRate é a taxa dos frames capturados enviados ao
	// serviço de fala.
	InputSampleRate = 16000

	// OutputSampleRate é a taxa do áudio sintetizado recebido.
	OutputSampleRate = 24000
)

// EncodePCM16 converte amostras float32 normalizadas [-1, 1] em PCM16
// little-endian, o formato de fio do serviço.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := int16(math.Round(float64(s) * 32767))
		out[2*i] = byte(uint16(v))
		out[2*i+1] = byte(uint16(v) >> 8)
	}
	return out
}

// DecodePCM16 converte PCM16 little-endian de volta para amostras
// normalizadas. Byte ímpar sobrando é ignorado.
func DecodePCM16(data []byte) []float32 {
	n := len(data) / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
		out[i] = float32(v) / 32768.0
	}
	return out
}

// PCM16Duration calcula a duração de um buffer PCM16 mono na taxa dada.
func PCM16Duration(numBytes, sampleRate int) time.Duration {
	samples := numBytes / 2
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
