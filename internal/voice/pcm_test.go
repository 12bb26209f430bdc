package voice

import (
	"math"
	"testing"
	"time"
)

func TestEncodePCM16(t *testing.T) {
	got := EncodePCM16([]float32{0, 1, -1, 0.5})

	want := []byte{
		0x00, 0x00, // 0
		0xff, 0x7f, // 32767
		0x01, 0x80, // -32767
		0x00, 0x40, // 16384 (0.5 * 32767 arredondado)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestDecodePCM16_RoundTrip(t *testing.T) {
	in := []float32{0, 0.25, -0.25, 0.9, -0.9}
	out := DecodePCM16(EncodePCM16(in))

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if diff := math.Abs(float64(out[i] - in[i])); diff > 1.0/32768 {
			t.Fatalf("sample %d = %f, want ~%f", i, out[i], in[i])
		}
	}
}

func TestDecodePCM16_OddTrailingByte(t *testing.T) {
	out := DecodePCM16([]byte{0x00, 0x00, 0xff})
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (trailing byte ignored)", len(out))
	}
}

func TestPCM16Duration(t *testing.T) {
	cases := []struct {
		numBytes   int
		sampleRate int
		want       time.Duration
	}{
		{numBytes: 48000, sampleRate: OutputSampleRate, want: time.Second},
		{numBytes: 4800, sampleRate: OutputSampleRate, want: 100 * time.Millisecond},
		{numBytes: 32000, sampleRate: InputSampleRate, want: time.Second},
		{numBytes: 0, sampleRate: OutputSampleRate, want: 0},
	}
	for _, tc := range cases {
		if got := PCM16Duration(tc.numBytes, tc.sampleRate); got != tc.want {
			t.Fatalf("PCM16Duration(%d, %d) = %v, want %v", tc.numBytes, tc.sampleRate, got, tc.want)
		}
	}
}
