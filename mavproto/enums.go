package mavproto

import "github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

// CapabilityFlags is a CAMERA_CAP_FLAGS bitmask describing what a camera
// instance supports. mavcam derives this from which subscriptions are
// currently registered; mavproto only owns the bit values and the pack step.
type CapabilityFlags uint32

const (
	CapCaptureVideo                   CapabilityFlags = 1 << 0
	CapCaptureImage                   CapabilityFlags = 1 << 1
	CapHasModes                       CapabilityFlags = 1 << 2
	CapCanCaptureImageInVideoMode     CapabilityFlags = 1 << 3
	CapCanCaptureVideoInImageMode     CapabilityFlags = 1 << 4
	CapHasImageSurveyMode             CapabilityFlags = 1 << 5
	CapHasBasicZoom                   CapabilityFlags = 1 << 6
	CapHasBasicFocus                  CapabilityFlags = 1 << 7
	CapHasVideoStream                 CapabilityFlags = 1 << 8
	CapHasTrackingPoint               CapabilityFlags = 1 << 9
	CapHasTrackingRectangle           CapabilityFlags = 1 << 10
	CapHasTrackingGeoStatus           CapabilityFlags = 1 << 11
)

func storageStatusToWire(s StorageStatus) common.STORAGE_STATUS {
	switch s {
	case StorageStatusUnformatted:
		return common.STORAGE_STATUS_UNFORMATTED
	case StorageStatusFormatted:
		return common.STORAGE_STATUS_READY
	case StorageStatusNotSupported:
		return common.STORAGE_STATUS_NOT_SUPPORTED
	default:
		return common.STORAGE_STATUS_EMPTY
	}
}

func storageTypeToWire(t StorageType) common.STORAGE_TYPE {
	switch t {
	case StorageTypeUsbStick:
		return common.STORAGE_TYPE_USB_STICK
	case StorageTypeSd:
		return common.STORAGE_TYPE_SD
	case StorageTypeMicrosd:
		return common.STORAGE_TYPE_MICROSD
	case StorageTypeHd:
		return common.STORAGE_TYPE_HD
	case StorageTypeOther:
		return common.STORAGE_TYPE_OTHER
	default:
		return common.STORAGE_TYPE_UNKNOWN
	}
}

func modeToWire(m Mode) common.CAMERA_MODE {
	switch m {
	case ModeVideo:
		return common.CAMERA_MODE_VIDEO
	default:
		return common.CAMERA_MODE_IMAGE
	}
}

// ModeFromWire translates an incoming MAV_CMD_SET_CAMERA_MODE param2 value
// (as carried by the wire CAMERA_MODE enum) into the domain Mode.
func ModeFromWire(w common.CAMERA_MODE) Mode {
	switch w {
	case common.CAMERA_MODE_VIDEO:
		return ModeVideo
	case common.CAMERA_MODE_IMAGE:
		return ModePhoto
	default:
		return ModeUnknown
	}
}

func videoStreamStatusFlags(info VideoStreamInfo) uint16 {
	var flags uint16
	if info.Status == VideoStreamStatusInProgress {
		flags |= uint16(common.VIDEO_STREAM_STATUS_FLAGS_RUNNING)
	}
	if info.Spectrum == VideoStreamSpectrumInfrared {
		flags |= uint16(common.VIDEO_STREAM_STATUS_FLAGS_THERMAL)
	}
	return flags
}

// imageStatusFlag and videoStatusFlag translate the domain capture state
// into the bitfield halves of CAMERA_CAPTURE_STATUS's image_status/
// video_status fields (each is its own small enum on the wire, not a single
// combined bitmask, per the MAVLink CAMERA_CAPTURE_STATUS definition).
func imageStatusFlag(s ImageStatus) uint8 {
	switch s {
	case ImageStatusCaptureInProgress:
		return 1
	case ImageStatusIntervalIdle:
		return 2
	case ImageStatusIntervalInProgress:
		return 3
	default:
		return 0
	}
}

func videoStatusFlag(s VideoStatus) uint8 {
	switch s {
	case VideoStatusCaptureInProgress:
		return 1
	default:
		return 0
	}
}
