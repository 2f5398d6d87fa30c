package main

import (
	"fmt"
	"log"
	"time"

	"github.com/skytether/mavcam/internal/metrics"
	"github.com/skytether/mavcam/mavcam"
	"github.com/skytether/mavcam/mavproto"
)

// registerExampleSubscribers wires a minimal stand-in camera driver: one
// that always succeeds, reports a fixed storage device, and logs every
// video/mode/storage command instead of touching real hardware. A real
// deployment replaces these with subscribers backed by an actual sensor and
// storage stack; this module's scope stops at the MAVLink-facing contract.
func registerExampleSubscribers(s *mavcam.Server, m *metrics.Metrics, logger *log.Logger) {
	var seq int

	s.SubscribeTakePhoto(func(index int32) {
		seq++
		result := s.RespondTakePhoto(mavcam.TakePhotoFeedbackOk, mavproto.CaptureInfo{
			Position: mavproto.Position{
				LatitudeDeg:       47.3977,
				LongitudeDeg:      8.5456,
				AbsoluteAltitudeM: 500,
				RelativeAltitudeM: 50,
			},
			Attitude:  mavproto.Quaternion{W: 1},
			TimeUTCUs: uint64(time.Now().UnixMicro()),
			IsSuccess: true,
			Index:     index,
			FileURL:   fmt.Sprintf("file:///data/img_%06d.jpg", seq),
		})
		m.RecordCapture(result == mavcam.Success)
	})

	s.SubscribeStorageInformation(func(storageID uint8) {
		s.RespondStorageInformation(mavproto.StorageInformation{
			TotalMiB:     32000,
			UsedMiB:      512,
			AvailableMiB: 31488,
			ReadSpeed:    90,
			WriteSpeed:   60,
			Status:       mavproto.StorageStatusFormatted,
			Type:         mavproto.StorageTypeMicrosd,
		})
		m.StorageCapacityB.Set(31488 * 1024 * 1024)
	})

	s.SubscribeCaptureStatus(func(storageID uint8) {
		s.RespondCaptureStatus(mavproto.CaptureStatus{
			ImageStatus:       mavproto.ImageStatusIdle,
			VideoStatus:       mavproto.VideoStatusIdle,
			AvailableCapacity: 31488,
		})
	})

	s.SubscribeFormatStorage(func(storageID uint8) {
		logger.Printf("example subscriber: STORAGE_FORMAT storage_id=%d (no-op)", storageID)
	})

	s.SubscribeResetSettings(func(int32) {
		logger.Println("example subscriber: RESET_CAMERA_SETTINGS (no-op)")
	})

	s.SubscribeSetMode(func(mode mavproto.Mode) {
		logger.Printf("example subscriber: SET_CAMERA_MODE mode=%v", mode)
	})

	s.SubscribeStartVideo(func(streamID uint8) {
		logger.Printf("example subscriber: VIDEO_START_CAPTURE stream=%d", streamID)
	})
	s.SubscribeStopVideo(func(streamID uint8) {
		logger.Printf("example subscriber: VIDEO_STOP_CAPTURE stream=%d", streamID)
	})
	s.SubscribeStartVideoStreaming(func(streamID uint8) {
		logger.Printf("example subscriber: VIDEO_START_STREAMING stream=%d", streamID)
	})
	s.SubscribeStopVideoStreaming(func(streamID uint8) {
		logger.Printf("example subscriber: VIDEO_STOP_STREAMING stream=%d", streamID)
	})
}
