package romio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildLoROM returns a minimal 32 KiB LoROM image with a valid internal
// header checksum/complement pair at $7FDC.
func buildLoROM() []byte {
	buf := make([]byte, 0x8000)
	binary.LittleEndian.PutUint16(buf[0x7FDC:], 0xAAAA)   // complement
	binary.LittleEndian.PutUint16(buf[0x7FDE:], ^uint16(0xAAAA)) // checksum
	return buf
}

func TestLoadFromReaderStripsCopierHeader(t *testing.T) {
	rom := buildLoROM()
	withHeader := append(make([]byte, headerSize), rom...)

	r, err := LoadFromReader(bytes.NewReader(withHeader))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if got := r.Load(0x00, 0x8000); got != rom[0] {
		t.Fatalf("first ROM byte after header strip = %#x, want %#x", got, rom[0])
	}
}

func TestLoadFromReaderRejectsUndersizedImage(t *testing.T) {
	_, err := LoadFromReader(bytes.NewReader(make([]byte, 100)))
	if err == nil {
		t.Fatal("expected an error loading an undersized image")
	}
}

func TestDetectMapModePrefersLoROMOnTie(t *testing.T) {
	buf := append(buildLoROM(), make([]byte, 0x8000)...)
	// Also make the HiROM header location look valid.
	binary.LittleEndian.PutUint16(buf[0xFFDC:], 0x5555)
	binary.LittleEndian.PutUint16(buf[0xFFDE:], ^uint16(0x5555))

	if got := detectMapMode(buf); got != MapLoROM {
		t.Fatalf("detectMapMode = %v, want MapLoROM on a tie", got)
	}
}

func TestLoROMBankMirroring(t *testing.T) {
	data := buildLoROM()
	data[0] = 0x42
	rom := NewFlatROM(data, MapLoROM)

	// Bank $80 mirrors bank $00 in LoROM.
	if got := rom.Load(0x80, 0x8000); got != 0x42 {
		t.Fatalf("Load(0x80, 0x8000) = %#x, want mirrored byte 0x42", got)
	}
}

func TestHiROMAddressing(t *testing.T) {
	data := make([]byte, 0x10000)
	data[0x1234] = 0x99
	rom := NewFlatROM(data, MapHiROM)

	if got := rom.Load(0xC0, 0x1234); got != 0x99 {
		t.Fatalf("HiROM Load(0xC0, 0x1234) = %#x, want 0x99", got)
	}
}

func TestSRAMReadWrite(t *testing.T) {
	rom := NewFlatROM(buildLoROM(), MapLoROM)
	rom.Store(0x70, 0x0000, 0x55)
	if got := rom.Load(0x70, 0x0000); got != 0x55 {
		t.Fatalf("SRAM round trip = %#x, want 0x55", got)
	}
}

func TestMockROMRecordsReads(t *testing.T) {
	m := &MockROM{}
	m.LoadBytes([]byte{0x01, 0x02, 0x03})
	m.Load(0x00, 0x0001)
	m.Load(0x00, 0x0002)

	if len(m.Reads) != 2 || m.Reads[0] != 1 || m.Reads[1] != 2 {
		t.Fatalf("Reads = %v, want [1 2]", m.Reads)
	}
}
