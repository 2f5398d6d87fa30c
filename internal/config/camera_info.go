package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skytether/mavcam/mavproto"
)

// cameraInfoYAML mirrors the on-disk shape of the camera identity file.
// Field names stay close to the wire/domain vocabulary so the YAML reads
// like the MAVLink messages it ends up producing.
type cameraInfoYAML struct {
	Camera struct {
		VendorName             string  `yaml:"vendor_name"`
		ModelName              string  `yaml:"model_name"`
		FirmwareVersion        string  `yaml:"firmware_version"`
		FocalLengthMM          float32 `yaml:"focal_length_mm"`
		HorizontalSensorSizeMM float32 `yaml:"horizontal_sensor_size_mm"`
		VerticalSensorSizeMM   float32 `yaml:"vertical_sensor_size_mm"`
		HorizontalResolutionPX uint16  `yaml:"horizontal_resolution_px"`
		VerticalResolutionPX   uint16  `yaml:"vertical_resolution_px"`
		LensID                 uint8   `yaml:"lens_id"`
		DefinitionFileVersion  uint32  `yaml:"definition_file_version"`
		DefinitionFileURI      string  `yaml:"definition_file_uri"`
	} `yaml:"camera"`
	VideoStreams []videoStreamYAML `yaml:"video_streams"`
}

type videoStreamYAML struct {
	StreamID uint8  `yaml:"stream_id"`
	Status   string `yaml:"status"`   // "running" | "not_running"
	Spectrum string `yaml:"spectrum"` // "visible_light" | "infrared"
	Settings struct {
		FrameRateHz             float32 `yaml:"frame_rate_hz"`
		HorizontalResolutionPix uint16  `yaml:"horizontal_resolution_px"`
		VerticalResolutionPix   uint16  `yaml:"vertical_resolution_px"`
		BitRateBS               uint32  `yaml:"bit_rate_bs"`
		RotationDeg             uint16  `yaml:"rotation_deg"`
		HorizontalFOVDeg        uint16  `yaml:"horizontal_fov_deg"`
		URI                     string  `yaml:"uri"`
	} `yaml:"settings"`
}

// CameraInfo is what LoadCameraInfo hands to mavcam.Server.SetInformation /
// SetVideoStreamInfo.
type CameraInfo struct {
	Information  mavproto.Information
	VideoStreams []mavproto.VideoStreamInfo
}

// LoadCameraInfo loads the camera's static identity and video-stream layout
// from a YAML file, the same way the teacher's drone registry loads fleet
// configuration from YAML.
func LoadCameraInfo(path string) (*CameraInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read camera info: %w", err)
	}

	var doc cameraInfoYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse camera info: %w", err)
	}

	version, err := mavproto.ParseFirmwareVersion(doc.Camera.FirmwareVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid firmware_version: %w", err)
	}

	info := &CameraInfo{
		Information: mavproto.Information{
			VendorName:             doc.Camera.VendorName,
			ModelName:              doc.Camera.ModelName,
			FirmwareVersion:        version,
			FocalLengthMM:          doc.Camera.FocalLengthMM,
			HorizontalSensorSizeMM: doc.Camera.HorizontalSensorSizeMM,
			VerticalSensorSizeMM:   doc.Camera.VerticalSensorSizeMM,
			HorizontalResolutionPX: doc.Camera.HorizontalResolutionPX,
			VerticalResolutionPX:   doc.Camera.VerticalResolutionPX,
			LensID:                 doc.Camera.LensID,
			DefinitionFileVersion:  doc.Camera.DefinitionFileVersion,
			DefinitionFileURI:      doc.Camera.DefinitionFileURI,
		},
	}

	for _, vs := range doc.VideoStreams {
		stream := mavproto.VideoStreamInfo{
			StreamID: vs.StreamID,
			Settings: mavproto.VideoStreamSettings{
				FrameRateHz:             vs.Settings.FrameRateHz,
				HorizontalResolutionPix: vs.Settings.HorizontalResolutionPix,
				VerticalResolutionPix:   vs.Settings.VerticalResolutionPix,
				BitRateBS:               vs.Settings.BitRateBS,
				RotationDeg:             vs.Settings.RotationDeg,
				HorizontalFOVDeg:        vs.Settings.HorizontalFOVDeg,
				URI:                     vs.Settings.URI,
			},
		}
		if vs.Status == "running" {
			stream.Status = mavproto.VideoStreamStatusInProgress
		}
		if vs.Spectrum == "infrared" {
			stream.Spectrum = mavproto.VideoStreamSpectrumInfrared
		}
		info.VideoStreams = append(info.VideoStreams, stream)
	}

	return info, nil
}
