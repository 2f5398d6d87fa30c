package mavproto

// Information is the camera's static identity, set once to "activate" the
// camera (spec.md §3). This struct does not enforce name lengths;
// BuildCameraInformation truncates VendorName and ModelName to 32 bytes via
// encodeFixed32 at pack time.
type Information struct {
	VendorName              string
	ModelName               string
	FirmwareVersion          FirmwareVersion
	FocalLengthMM            float32
	HorizontalSensorSizeMM   float32
	VerticalSensorSizeMM     float32
	HorizontalResolutionPX   uint16
	VerticalResolutionPX     uint16
	LensID                   uint8
	DefinitionFileVersion    uint32
	DefinitionFileURI        string
}

// Position is a geodetic position used by CaptureInfo.
type Position struct {
	LatitudeDeg        float64
	LongitudeDeg       float64
	AbsoluteAltitudeM  float64
	RelativeAltitudeM  float64
}

// Quaternion is a camera attitude quaternion, (w, x, y, z) order.
type Quaternion struct {
	W, X, Y, Z float32
}

// IndexSynthesized is the sentinel CaptureInfo.Index value meaning "this
// capture was synthesised by the interval engine, do not update the
// monotonic image_capture_count counter".
const IndexSynthesized int32 = -1 << 31 // INT32_MIN

// CaptureInfo describes a single completed (or failed) photo capture.
type CaptureInfo struct {
	Position   Position
	Attitude   Quaternion
	TimeUTCUs  uint64
	IsSuccess  bool
	Index      int32
	FileURL    string
}

// StorageStatus mirrors MAVLink's STORAGE_STATUS enum in domain terms.
type StorageStatus int

const (
	StorageStatusNotAvailable StorageStatus = iota
	StorageStatusUnformatted
	StorageStatusFormatted
	StorageStatusNotSupported
)

// StorageType mirrors MAVLink's STORAGE_TYPE enum in domain terms.
type StorageType int

const (
	StorageTypeUnknown StorageType = iota
	StorageTypeUsbStick
	StorageTypeSd
	StorageTypeMicrosd
	StorageTypeHd
	StorageTypeOther
)

// StorageInformation describes one storage device/slot.
type StorageInformation struct {
	TotalMiB     float32
	UsedMiB      float32
	AvailableMiB float32
	ReadSpeed    float32
	WriteSpeed   float32
	Status       StorageStatus
	Type         StorageType
}

// ImageStatus mirrors the domain-level (not wire bitfield) image capture
// state machine.
type ImageStatus int

const (
	ImageStatusIdle ImageStatus = iota
	ImageStatusCaptureInProgress
	ImageStatusIntervalIdle
	ImageStatusIntervalInProgress
)

// VideoStatus mirrors the domain-level video capture state.
type VideoStatus int

const (
	VideoStatusIdle VideoStatus = iota
	VideoStatusCaptureInProgress
)

// CaptureStatus is the camera's current capture state, reported via
// CAMERA_CAPTURE_STATUS.
type CaptureStatus struct {
	ImageStatus        ImageStatus
	VideoStatus        VideoStatus
	RecordingTimeS     float64
	AvailableCapacity  float32
	ImageCount         int32
}

// VideoStreamStatus mirrors MAVLink's VIDEO_STREAM_STATUS_FLAGS "running" bit.
type VideoStreamStatus int

const (
	VideoStreamStatusNotRunning VideoStreamStatus = iota
	VideoStreamStatusInProgress
)

// VideoStreamSpectrum mirrors MAVLink's VIDEO_STREAM_STATUS_FLAGS "thermal" bit.
type VideoStreamSpectrum int

const (
	VideoStreamSpectrumVisibleLight VideoStreamSpectrum = iota
	VideoStreamSpectrumInfrared
)

// VideoStreamSettings carries the stream's format parameters.
type VideoStreamSettings struct {
	FrameRateHz             float32
	HorizontalResolutionPix uint16
	VerticalResolutionPix   uint16
	BitRateBS               uint32
	RotationDeg             uint16
	HorizontalFOVDeg        uint16
	URI                     string
}

// VideoStreamInfo describes one configured video stream.
type VideoStreamInfo struct {
	StreamID uint8
	Status   VideoStreamStatus
	Spectrum VideoStreamSpectrum
	Settings VideoStreamSettings
}

// Mode is the server-domain camera mode, translated from the wire
// CAMERA_MODE enum at the codec boundary (spec.md §9: keep enum universes
// separate, cross them only here).
type Mode int

const (
	ModeUnknown Mode = iota
	ModePhoto
	ModeVideo
)
