//go:build !headless
// +build !headless

package video

import "testing"

type fakeMixer struct {
	lastSampleRate int
	fill           int16
}

func (m *fakeMixer) Mix(out []int16, sampleRate int) {
	m.lastSampleRate = sampleRate
	for i := range out {
		out[i] = m.fill
	}
}

func TestMixerStreamReadPacksLittleEndianStereo(t *testing.T) {
	m := &fakeMixer{fill: 0x0102}
	s := &mixerStream{mixer: m, sampleRate: 32000}

	buf := make([]byte, 8) // 2 stereo frames worth of bytes
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("Read returned n=%d, want 8", n)
	}
	if m.lastSampleRate != 32000 {
		t.Fatalf("Mix was called with sampleRate=%d, want 32000", m.lastSampleRate)
	}
	// 0x0102 little-endian is low byte 0x02 then high byte 0x01.
	for i := 0; i < n; i += 2 {
		if buf[i] != 0x02 || buf[i+1] != 0x01 {
			t.Fatalf("buf[%d:%d] = %#02x %#02x, want 0x02 0x01", i, i+1, buf[i], buf[i+1])
		}
	}
}

func TestMixerStreamReadTruncatesToWholeStereoFrames(t *testing.T) {
	m := &fakeMixer{}
	s := &mixerStream{mixer: m, sampleRate: 32000}

	buf := make([]byte, 7) // not a multiple of 4
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 {
		t.Fatalf("Read returned n=%d, want 4 (truncated to whole stereo sample pairs)", n)
	}
}

func TestAttachMixerRejectsNonEbitengineWindow(t *testing.T) {
	b := &ebitengineBackend{cfg: Config{SampleRate: 32000}}
	if err := b.Initialize(Config{SampleRate: 32000}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := b.AttachMixer(&headlessWindow{}, &fakeMixer{}); err == nil {
		t.Fatal("AttachMixer should reject a non-ebitengine Window")
	}
}
