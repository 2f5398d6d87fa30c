package mavproto

import (
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
)

// encodeFixed32 copies s into a fixed-size byte array, truncating if s is
// longer than the array and leaving the remainder zero-padded if shorter.
// This is the one place string length is enforced against the wire limit;
// callers that care about rejecting an over-long name do so before calling
// a builder, this just guarantees the builder never panics.
func encodeFixed32(s string) [32]uint8 {
	var out [32]uint8
	copy(out[:], s)
	return out
}

// BuildCameraInformation builds the CAMERA_INFORMATION message announcing a
// camera's static identity and capabilities.
func BuildCameraInformation(info Information, caps CapabilityFlags, timeBootMs uint32) *common.MessageCameraInformation {
	return &common.MessageCameraInformation{
		TimeBootMs:           timeBootMs,
		VendorName:           encodeFixed32(info.VendorName),
		ModelName:            encodeFixed32(info.ModelName),
		FirmwareVersion:      info.FirmwareVersion.Pack(),
		FocalLength:          info.FocalLengthMM,
		SensorSizeH:          info.HorizontalSensorSizeMM,
		SensorSizeV:          info.VerticalSensorSizeMM,
		ResolutionH:          info.HorizontalResolutionPX,
		ResolutionV:          info.VerticalResolutionPX,
		LensId:               info.LensID,
		Flags:                common.CAMERA_CAP_FLAGS(caps),
		CamDefinitionVersion: uint16(info.DefinitionFileVersion),
		CamDefinitionUri:     info.DefinitionFileURI,
	}
}

// BuildCameraSettings builds the CAMERA_SETTINGS message. zoomLevel and
// focusLevel are sent as literal 0 placeholders when the camera does not
// report basic zoom/focus, matching the original plugin.
func BuildCameraSettings(mode Mode, zoomLevel, focusLevel float32, timeBootMs uint32) *common.MessageCameraSettings {
	return &common.MessageCameraSettings{
		TimeBootMs: timeBootMs,
		ModeId:     modeToWire(mode),
		ZoomLevel:  zoomLevel,
		FocusLevel: focusLevel,
	}
}

// BuildStorageInformation builds the STORAGE_INFORMATION message for one
// storage slot out of storageCount total slots.
func BuildStorageInformation(storageID uint8, storageCount uint8, info StorageInformation, timeBootMs uint32) *common.MessageStorageInformation {
	return &common.MessageStorageInformation{
		TimeBootMs:        timeBootMs,
		StorageId:         storageID,
		StorageCount:      storageCount,
		Status:            storageStatusToWire(info.Status),
		TotalCapacity:     info.TotalMiB,
		UsedCapacity:      info.UsedMiB,
		AvailableCapacity: info.AvailableMiB,
		ReadSpeed:         info.ReadSpeed,
		WriteSpeed:        info.WriteSpeed,
		Type:              storageTypeToWire(info.Type),
	}
}

// BuildCameraCaptureStatus builds the CAMERA_CAPTURE_STATUS message.
func BuildCameraCaptureStatus(status CaptureStatus, timeBootMs uint32) *common.MessageCameraCaptureStatus {
	return &common.MessageCameraCaptureStatus{
		TimeBootMs:        timeBootMs,
		ImageStatus:       imageStatusFlag(status.ImageStatus),
		VideoStatus:       videoStatusFlag(status.VideoStatus),
		RecordingTimeMs:   uint32(status.RecordingTimeS * 1000),
		AvailableCapacity: status.AvailableCapacity,
		ImageCount:        status.ImageCount,
	}
}

// captureResultCode maps IsSuccess into the wire CAMERA_IMAGE_CAPTURED
// capture_result int8 ("1: success, -1: failed").
func captureResultCode(success bool) int8 {
	if success {
		return 1
	}
	return -1
}

// BuildCameraImageCaptured builds the CAMERA_IMAGE_CAPTURED message for one
// completed (or failed) photo capture.
func BuildCameraImageCaptured(cameraID uint8, cap CaptureInfo, timeBootMs uint32) *common.MessageCameraImageCaptured {
	return &common.MessageCameraImageCaptured{
		TimeBootMs:     timeBootMs,
		TimeUtc:        cap.TimeUTCUs,
		CameraId:       cameraID,
		Lat:            int32(cap.Position.LatitudeDeg * 1e7),
		Lon:            int32(cap.Position.LongitudeDeg * 1e7),
		Alt:            int32(cap.Position.AbsoluteAltitudeM * 1e3),
		RelativeAlt:    int32(cap.Position.RelativeAltitudeM * 1e3),
		Q:              [4]float32{cap.Attitude.W, cap.Attitude.X, cap.Attitude.Y, cap.Attitude.Z},
		ImageIndex:     cap.Index,
		CaptureResult:  captureResultCode(cap.IsSuccess),
		FileUrl:        cap.FileURL,
	}
}

// BuildVideoStreamInformation builds one VIDEO_STREAM_INFORMATION message
// out of streamCount total configured streams.
func BuildVideoStreamInformation(streamCount uint8, info VideoStreamInfo) *common.MessageVideoStreamInformation {
	return &common.MessageVideoStreamInformation{
		StreamId:      info.StreamID,
		Count:         streamCount,
		Type:          common.VIDEO_STREAM_TYPE_RTSP,
		Flags:         common.VIDEO_STREAM_STATUS_FLAGS(videoStreamStatusFlags(info)),
		Framerate:     info.Settings.FrameRateHz,
		ResolutionH:   info.Settings.HorizontalResolutionPix,
		ResolutionV:   info.Settings.VerticalResolutionPix,
		Bitrate:       info.Settings.BitRateBS,
		Rotation:      info.Settings.RotationDeg,
		Hfov:          info.Settings.HorizontalFOVDeg,
		Uri:           info.Settings.URI,
	}
}

// BuildCommandAck builds a COMMAND_ACK for a completed or rejected command.
// Sending this before any follow-up response messages is the ordering
// invariant the command dispatch table depends on, with the one exception of
// REQUEST_VIDEO_STREAM_INFORMATION, which sends its data messages first.
func BuildCommandAck(command common.MAV_CMD, result common.MAV_RESULT) *common.MessageCommandAck {
	return &common.MessageCommandAck{
		Command: command,
		Result:  result,
	}
}
