package mavcam

import (
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/skytether/mavcam/mavproto"
)

// HandleCommandLong dispatches one incoming COMMAND_LONG to the matching
// camera operation and sends the COMMAND_ACK (and, for commands with a
// data response, the data message too) directly on s.node. It is a no-op
// for any command this server doesn't implement — the caller is expected
// to only route MAV_CMD values this table recognizes; dispatching an
// unrecognized command here sends no reply at all, which is indistinguishable
// from packet loss to the caller and therefore never silently "handled".
func (s *Server) HandleCommandLong(cmd *common.MessageCommandLong) {
	switch cmd.Command {
	case common.MAV_CMD_REQUEST_CAMERA_INFORMATION:
		s.handleRequestCameraInformation(cmd)
	case common.MAV_CMD_REQUEST_CAMERA_SETTINGS:
		s.handleRequestCameraSettings(cmd)
	case common.MAV_CMD_REQUEST_STORAGE_INFORMATION:
		s.handleRequestStorageInformation(cmd)
	case common.MAV_CMD_STORAGE_FORMAT:
		s.handleStorageFormat(cmd)
	case common.MAV_CMD_REQUEST_CAMERA_CAPTURE_STATUS:
		s.handleRequestCaptureStatus(cmd)
	case common.MAV_CMD_RESET_CAMERA_SETTINGS:
		s.handleResetCameraSettings(cmd)
	case common.MAV_CMD_SET_CAMERA_MODE:
		s.handleSetCameraMode(cmd)
	case common.MAV_CMD_SET_CAMERA_ZOOM:
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
	case common.MAV_CMD_SET_CAMERA_FOCUS:
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
	case common.MAV_CMD_SET_STORAGE_USAGE:
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
	case common.MAV_CMD_IMAGE_START_CAPTURE:
		s.handleImageStartCapture(cmd)
	case common.MAV_CMD_IMAGE_STOP_CAPTURE:
		s.stopImageCaptureInterval()
		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
	case common.MAV_CMD_REQUEST_CAMERA_IMAGE_CAPTURE:
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
	case common.MAV_CMD_VIDEO_START_CAPTURE:
		s.handleVideoStartCapture(cmd)
	case common.MAV_CMD_VIDEO_STOP_CAPTURE:
		s.handleVideoStopCapture(cmd)
	case common.MAV_CMD_VIDEO_START_STREAMING:
		s.handleVideoStartStreaming(cmd)
	case common.MAV_CMD_VIDEO_STOP_STREAMING:
		s.handleVideoStopStreaming(cmd)
	case common.MAV_CMD_REQUEST_VIDEO_STREAM_INFORMATION:
		s.handleRequestVideoStreamInformation(cmd)
	case common.MAV_CMD_REQUEST_VIDEO_STREAM_STATUS:
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
	}
}

func (s *Server) ackResult(cmd *common.MessageCommandLong, result common.MAV_RESULT) {
	s.send(mavproto.BuildCommandAck(cmd.Command, result))
}

// capabilityFlags derives CAMERA_CAP_FLAGS from which subscriptions are
// currently registered, the same approach the original plugin uses for
// CAMERA_CAP_FLAGS_CAPTURE_IMAGE, extended here to the rest of the
// capability bits that have an obvious matching subscription.
func (s *Server) capabilityFlags() mavproto.CapabilityFlags {
	var flags mavproto.CapabilityFlags
	if !s.takePhoto.Empty() {
		flags |= mavproto.CapCaptureImage
	}
	if !s.startVideo.Empty() && !s.stopVideo.Empty() {
		flags |= mavproto.CapCaptureVideo
	}
	if !s.setMode.Empty() {
		flags |= mavproto.CapHasModes
	}
	if !s.startVideoStreaming.Empty() && !s.stopVideoStreaming.Empty() {
		flags |= mavproto.CapHasVideoStream
	}
	return flags
}

func (s *Server) handleRequestCameraInformation(cmd *common.MessageCommandLong) {
	if cmd.Param1 == 0 {
		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
		return
	}

	s.mu.Lock()
	set := s.isInformationSet
	info := s.information
	s.mu.Unlock()

	if !set {
		s.ackResult(cmd, common.MAV_RESULT_TEMPORARILY_REJECTED)
		return
	}

	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
	s.send(mavproto.BuildCameraInformation(info, s.capabilityFlags(), s.timeBootMs()))
}

func (s *Server) handleRequestCameraSettings(cmd *common.MessageCommandLong) {
	if cmd.Param1 == 0 {
		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
		return
	}

	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
	// Zoom/focus aren't supported, so this always reports image mode with
	// unknown zoom/focus levels, matching the original's fixed response.
	s.send(mavproto.BuildCameraSettings(mavproto.ModePhoto, 0, 0, s.timeBootMs()))
}

func (s *Server) handleRequestStorageInformation(cmd *common.MessageCommandLong) {
	if cmd.Param2 == 0 {
		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
		return
	}

	if s.storageInformation.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	storageID := uint8(cmd.Param1)

	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)

	s.mu.Lock()
	s.lastStorageID = storageID
	s.mu.Unlock()

	s.storageInformation.Each(func(fn func(uint8)) { fn(storageID) })
}

func (s *Server) handleStorageFormat(cmd *common.MessageCommandLong) {
	if s.formatStorage.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	storageID := uint8(cmd.Param1)
	s.formatStorage.Each(func(fn func(uint8)) { fn(storageID) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleRequestCaptureStatus(cmd *common.MessageCommandLong) {
	if cmd.Param1 == 0 {
		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
		return
	}

	if s.captureStatus.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
	s.captureStatus.Each(func(fn func(uint8)) { fn(0) })
}

func (s *Server) handleResetCameraSettings(cmd *common.MessageCommandLong) {
	if s.resetSettings.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	s.resetSettings.Each(func(fn func(int32)) { fn(0) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleSetCameraMode(cmd *common.MessageCommandLong) {
	if s.setMode.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	mode := mavproto.ModeFromWire(common.CAMERA_MODE(uint8(cmd.Param2)))
	if mode == mavproto.ModeUnknown {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	s.setMode.Each(func(fn func(mavproto.Mode)) { fn(mode) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleImageStartCapture(cmd *common.MessageCommandLong) {
	intervalS := cmd.Param2
	totalImages := int32(cmd.Param3)
	seqNumber := int32(cmd.Param4)

	s.stopImageCaptureInterval()

	if s.takePhoto.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}

	if totalImages == 1 {
		s.mu.Lock()
		alreadyCaptured := seqNumber < s.imageCaptureCount
		s.mu.Unlock()

		if alreadyCaptured {
			s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
			return
		}

		s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)

		s.mu.Lock()
		s.lastTakePhotoCommand = cmd
		s.mu.Unlock()

		s.takePhoto.Each(func(fn func(int32)) { fn(seqNumber) })
		return
	}

	s.startImageCaptureInterval(intervalS, totalImages, seqNumber)
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleVideoStartCapture(cmd *common.MessageCommandLong) {
	if s.startVideo.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}
	streamID := uint8(cmd.Param1)
	s.startVideo.Each(func(fn func(uint8)) { fn(streamID) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleVideoStopCapture(cmd *common.MessageCommandLong) {
	if s.stopVideo.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}
	streamID := uint8(cmd.Param1)
	s.stopVideo.Each(func(fn func(uint8)) { fn(streamID) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleVideoStartStreaming(cmd *common.MessageCommandLong) {
	if s.startVideoStreaming.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}
	streamID := uint8(cmd.Param1)
	s.startVideoStreaming.Each(func(fn func(uint8)) { fn(streamID) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

func (s *Server) handleVideoStopStreaming(cmd *common.MessageCommandLong) {
	if s.stopVideoStreaming.Empty() {
		s.ackResult(cmd, common.MAV_RESULT_UNSUPPORTED)
		return
	}
	streamID := uint8(cmd.Param1)
	s.stopVideoStreaming.Each(func(fn func(uint8)) { fn(streamID) })
	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}

// handleRequestVideoStreamInformation is the one command in this table
// where the per-stream data messages go out before the ACK, matching the
// original plugin exactly.
func (s *Server) handleRequestVideoStreamInformation(cmd *common.MessageCommandLong) {
	s.mu.Lock()
	set := s.isVideoStreamInfoSet
	infos := s.videoStreamInfos
	s.mu.Unlock()

	if !set {
		s.ackResult(cmd, common.MAV_RESULT_TEMPORARILY_REJECTED)
		return
	}

	for _, info := range infos {
		s.send(mavproto.BuildVideoStreamInformation(uint8(len(infos)), info))
	}

	s.ackResult(cmd, common.MAV_RESULT_ACCEPTED)
}
