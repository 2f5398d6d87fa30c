package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skytether/mavcam/mavproto"
)

const testCameraYAML = `
camera:
  vendor_name: Acme
  model_name: EyeSpy 9000
  firmware_version: "1.2.3.4"
  focal_length_mm: 4.5
  horizontal_sensor_size_mm: 6.4
  vertical_sensor_size_mm: 4.8
  horizontal_resolution_px: 1920
  vertical_resolution_px: 1080
  lens_id: 1
  definition_file_version: 2
  definition_file_uri: "https://example.invalid/cam.xml"
video_streams:
  - stream_id: 0
    status: running
    spectrum: infrared
    settings:
      frame_rate_hz: 30
      horizontal_resolution_px: 1920
      vertical_resolution_px: 1080
      bit_rate_bs: 5000000
      rotation_deg: 0
      horizontal_fov_deg: 90
      uri: "rtsp://example.invalid/stream0"
`

func writeTestYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "camera.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test fixture: %v", err)
	}
	return path
}

func TestLoadCameraInfo(t *testing.T) {
	path := writeTestYAML(t, testCameraYAML)

	info, err := LoadCameraInfo(path)
	if err != nil {
		t.Fatalf("LoadCameraInfo() error: %v", err)
	}

	if info.Information.VendorName != "Acme" {
		t.Fatalf("expected vendor Acme, got %q", info.Information.VendorName)
	}
	if info.Information.FirmwareVersion != (mavproto.FirmwareVersion{Major: 1, Minor: 2, Patch: 3, Dev: 4}) {
		t.Fatalf("unexpected firmware version: %+v", info.Information.FirmwareVersion)
	}
	if len(info.VideoStreams) != 1 {
		t.Fatalf("expected 1 video stream, got %d", len(info.VideoStreams))
	}
	stream := info.VideoStreams[0]
	if stream.Status != mavproto.VideoStreamStatusInProgress {
		t.Fatalf("expected running status, got %v", stream.Status)
	}
	if stream.Spectrum != mavproto.VideoStreamSpectrumInfrared {
		t.Fatalf("expected infrared spectrum, got %v", stream.Spectrum)
	}
	if stream.Settings.URI != "rtsp://example.invalid/stream0" {
		t.Fatalf("unexpected stream URI: %q", stream.Settings.URI)
	}
}

func TestLoadCameraInfoRejectsBadFirmwareVersion(t *testing.T) {
	path := writeTestYAML(t, `
camera:
  vendor_name: Acme
  model_name: EyeSpy
  firmware_version: "not-a-version"
`)

	if _, err := LoadCameraInfo(path); err == nil {
		t.Fatal("expected error for malformed firmware_version")
	}
}

func TestLoadCameraInfoMissingFile(t *testing.T) {
	if _, err := LoadCameraInfo("/nonexistent/path/camera.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
