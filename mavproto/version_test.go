package mavproto

import "testing"

func TestFirmwareVersionRoundTrip(t *testing.T) {
	cases := []string{"1.2.3.4", "0.0.0.0", "255.255.255.255", "4.1.0.12"}

	for _, s := range cases {
		v, err := ParseFirmwareVersion(s)
		if err != nil {
			t.Fatalf("ParseFirmwareVersion(%q): unexpected error: %v", s, err)
		}

		got := UnpackFirmwareVersion(v.Pack())
		if got != v {
			t.Fatalf("round trip mismatch for %q: got %+v want %+v", s, got, v)
		}
		if got.String() != s {
			t.Fatalf("round trip string mismatch for %q: got %q", s, got.String())
		}
	}
}

func TestFirmwareVersionEmptyStringIsValidZero(t *testing.T) {
	v, err := ParseFirmwareVersion("")
	if err != nil {
		t.Fatalf("unexpected error for empty string: %v", err)
	}
	if v != (FirmwareVersion{}) {
		t.Fatalf("expected zero version, got %+v", v)
	}
	if v.Pack() != 0 {
		t.Fatalf("expected packed zero version, got %d", v.Pack())
	}
}

func TestFirmwareVersionMalformed(t *testing.T) {
	bad := []string{"1.2.3", "1.2.3.4.5", "a.b.c.d", "1..3.4", "1.2.3.", "not-a-version"}

	for _, s := range bad {
		if _, err := ParseFirmwareVersion(s); err == nil {
			t.Fatalf("ParseFirmwareVersion(%q): expected error, got nil", s)
		}
	}
}

func TestUnpackFirmwareVersionFieldOrder(t *testing.T) {
	// major in the low byte, dev in the high byte.
	packed := uint32(4)<<24 | uint32(3)<<16 | uint32(2)<<8 | uint32(1)
	got := UnpackFirmwareVersion(packed)
	want := FirmwareVersion{Major: 1, Minor: 2, Patch: 3, Dev: 4}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
