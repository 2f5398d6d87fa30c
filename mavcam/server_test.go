package mavcam

import (
	"testing"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/skytether/mavcam/mavproto"
)

func TestRespondTakePhotoTracksImageCaptureCount(t *testing.T) {
	s, sender := newTestServer()

	s.RespondTakePhoto(TakePhotoFeedbackOk, mavproto.CaptureInfo{IsSuccess: true, Index: 1})
	s.RespondTakePhoto(TakePhotoFeedbackOk, mavproto.CaptureInfo{IsSuccess: true, Index: 2})

	sent := sender.snapshot()
	if len(sent) != 2 {
		t.Fatalf("expected 2 CAMERA_IMAGE_CAPTURED messages, got %d", len(sent))
	}
	last := sent[1].(*common.MessageCameraImageCaptured)
	if last.ImageIndex != 2 {
		t.Fatalf("expected image index 2, got %d", last.ImageIndex)
	}
}

func TestRespondTakePhotoSynthesizedIndexDoesNotUpdateCount(t *testing.T) {
	s, _ := newTestServer()

	s.RespondTakePhoto(TakePhotoFeedbackOk, mavproto.CaptureInfo{IsSuccess: true, Index: 3})
	s.RespondTakePhoto(TakePhotoFeedbackOk, mavproto.CaptureInfo{IsSuccess: true, Index: mavproto.IndexSynthesized})

	s.mu.Lock()
	count := s.imageCaptureCount
	s.mu.Unlock()

	if count != 3 {
		t.Fatalf("expected image capture count to remain 3, got %d", count)
	}
}

func TestRespondStorageInformationUsesLastRequestedStorageID(t *testing.T) {
	s, sender := newTestServer()
	s.SubscribeStorageInformation(func(storageID uint8) {
		s.RespondStorageInformation(mavproto.StorageInformation{Status: mavproto.StorageStatusFormatted})
	})

	s.HandleCommandLong(&common.MessageCommandLong{
		Command: common.MAV_CMD_REQUEST_STORAGE_INFORMATION,
		Param1:  7,
		Param2:  1,
	})

	sent := sender.snapshot()
	var info *common.MessageStorageInformation
	for _, m := range sent {
		if si, ok := m.(*common.MessageStorageInformation); ok {
			info = si
		}
	}
	if info == nil {
		t.Fatal("expected a STORAGE_INFORMATION message")
	}
	if info.StorageId != 7 {
		t.Fatalf("expected storage id 7, got %d", info.StorageId)
	}
}

func TestRespondCaptureStatusReflectsImageCount(t *testing.T) {
	s, sender := newTestServer()
	s.RespondTakePhoto(TakePhotoFeedbackOk, mavproto.CaptureInfo{IsSuccess: true, Index: 9})

	s.SubscribeCaptureStatus(func(uint8) {
		s.RespondCaptureStatus(mavproto.CaptureStatus{ImageStatus: mavproto.ImageStatusIdle})
	})

	s.HandleCommandLong(&common.MessageCommandLong{
		Command: common.MAV_CMD_REQUEST_CAMERA_CAPTURE_STATUS,
		Param1:  1,
	})

	sent := sender.snapshot()
	var status *common.MessageCameraCaptureStatus
	for _, m := range sent {
		if cs, ok := m.(*common.MessageCameraCaptureStatus); ok {
			status = cs
		}
	}
	if status == nil {
		t.Fatal("expected a CAMERA_CAPTURE_STATUS message")
	}
	if status.ImageCount != 9 {
		t.Fatalf("expected image count 9, got %d", status.ImageCount)
	}
}

func TestCapabilityFlagsReflectSubscriptions(t *testing.T) {
	s, _ := newTestServer()
	if flags := s.capabilityFlags(); flags != 0 {
		t.Fatalf("expected no capability flags with no subscribers, got %v", flags)
	}

	s.SubscribeTakePhoto(func(int32) {})
	if flags := s.capabilityFlags(); flags&mavproto.CapCaptureImage == 0 {
		t.Fatal("expected capture-image flag once take-photo has a subscriber")
	}
}

func TestUnsubscribeStopsFutureDispatch(t *testing.T) {
	s, sender := newTestServer()
	var calls int
	h := s.SubscribeSetMode(func(mavproto.Mode) { calls++ })
	s.UnsubscribeSetMode(h)

	s.HandleCommandLong(&common.MessageCommandLong{
		Command: common.MAV_CMD_SET_CAMERA_MODE,
		Param2:  float32(common.CAMERA_MODE_IMAGE),
	})

	if calls != 0 {
		t.Fatalf("expected unsubscribed callback not to fire, calls=%d", calls)
	}
	ack := sender.snapshot()[0].(*common.MessageCommandAck)
	if ack.Result != common.MAV_RESULT_UNSUPPORTED {
		t.Fatalf("expected UNSUPPORTED after unsubscribe, got %v", ack.Result)
	}
}
