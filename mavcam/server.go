// Package mavcam is the camera server core (spec components F and G): the
// mutex-guarded camera state machine, its public subscribe/respond/set
// façade, and the capture-interval engine built on top of scheduler.
// Command dispatch against incoming COMMAND_LONG messages lives in
// dispatch.go; this file owns state and the operations a camera
// implementation calls to answer those commands.
package mavcam

import (
	"log"
	"sync"
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"

	"github.com/skytether/mavcam/callback"
	"github.com/skytether/mavcam/mavproto"
	"github.com/skytether/mavcam/scheduler"
)

// Result mirrors the original plugin's CameraServer::Result enum, trimmed
// to two values. Every operation in this package returns Success;
// WrongArgument is defined but not returned by any of them.
type Result int

const (
	Success Result = iota
	WrongArgument
)

func (r Result) String() string {
	if r == Success {
		return "Success"
	}
	return "WrongArgument"
}

// TakePhotoFeedback describes how a single-photo request was answered by
// user code before RespondTakePhoto is called with the final CaptureInfo.
type TakePhotoFeedback int

const (
	TakePhotoFeedbackOk TakePhotoFeedback = iota
	TakePhotoFeedbackBusy
	TakePhotoFeedbackFailed
)

// Sender is the subset of *gomavlib.Node the camera core needs. Declaring
// it narrows the dependency to what this package actually calls, the way
// the teacher repo narrows its own MAVLink client's surface.
type Sender interface {
	WriteMessageAll(msg message.Message) error
}

// Config configures a Server.
type Config struct {
	Node        Sender
	SystemID    uint8
	ComponentID uint8
	Scheduler   *scheduler.Scheduler
	Logger      *log.Logger

	// OnIntervalActiveChanged, if set, is called whenever a timed
	// photo-capture interval starts or stops. It lets a caller observe
	// interval state (e.g. for metrics) without this package depending on
	// any particular instrumentation library.
	OnIntervalActiveChanged func(active bool)
}

// Server is the camera instance's full state: identity, storage, capture
// and video-stream status, and every subscriber registry a camera
// implementation can hook into.
type Server struct {
	mu sync.Mutex

	node      Sender
	systemID  uint8
	compID    uint8
	sched     *scheduler.Scheduler
	logger    *log.Logger
	startedAt time.Time

	onIntervalActiveChanged func(active bool)

	isInformationSet bool
	information      mavproto.Information

	isVideoStreamInfoSet bool
	videoStreamInfos     []mavproto.VideoStreamInfo

	imageCaptureCount          int32
	lastStorageID              uint8
	isImageCaptureIntervalSet  bool
	imageCaptureTimerIntervalS float32
	imageCaptureTimerHandle    scheduler.Handle
	lastTakePhotoCommand       *common.MessageCommandLong

	takePhoto            callback.Registry[func(index int32)]
	startVideo           callback.Registry[func(streamID uint8)]
	stopVideo            callback.Registry[func(streamID uint8)]
	startVideoStreaming  callback.Registry[func(streamID uint8)]
	stopVideoStreaming   callback.Registry[func(streamID uint8)]
	setMode              callback.Registry[func(mode mavproto.Mode)]
	storageInformation   callback.Registry[func(storageID uint8)]
	captureStatus        callback.Registry[func(storageID uint8)]
	formatStorage        callback.Registry[func(storageID uint8)]
	resetSettings        callback.Registry[func(dummy int32)]
}

// New creates a Server ready to accept subscriptions and command dispatch.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.New(scheduler.Config{Logger: cfg.Logger})
	}
	return &Server{
		node:                    cfg.Node,
		systemID:                cfg.SystemID,
		compID:                  cfg.ComponentID,
		sched:                   cfg.Scheduler,
		logger:                  cfg.Logger,
		startedAt:               time.Now(),
		onIntervalActiveChanged: cfg.OnIntervalActiveChanged,
	}
}

func (s *Server) setIntervalActive(active bool) {
	if s.onIntervalActiveChanged != nil {
		s.onIntervalActiveChanged(active)
	}
}

func (s *Server) timeBootMs() uint32 {
	return uint32(time.Since(s.startedAt).Milliseconds())
}

func (s *Server) send(msg message.Message) {
	if err := s.node.WriteMessageAll(msg); err != nil {
		s.logger.Printf("mavcam: failed to send %T: %v", msg, err)
	}
}

// SetInformation activates the camera by recording its static identity.
// Firmware version validation happens at mavproto.ParseFirmwareVersion,
// before a caller ever has a well-formed Information value to pass here.
func (s *Server) SetInformation(info mavproto.Information) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isInformationSet = true
	s.information = info
	return Success
}

// SetVideoStreamInfo records the camera's configured video streams.
func (s *Server) SetVideoStreamInfo(infos []mavproto.VideoStreamInfo) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isVideoStreamInfoSet = true
	s.videoStreamInfos = infos
	return Success
}

// SubscribeTakePhoto registers fn to be called whenever a photo capture is
// requested, with the sequence index the response must use.
func (s *Server) SubscribeTakePhoto(fn func(index int32)) callback.Handle {
	return s.takePhoto.Subscribe(fn)
}

// UnsubscribeTakePhoto cancels a subscription from SubscribeTakePhoto.
func (s *Server) UnsubscribeTakePhoto(h callback.Handle) { s.takePhoto.Unsubscribe(h) }

// RespondTakePhoto reports the outcome of a single photo capture (or one
// interval tick) back to the ground station via CAMERA_IMAGE_CAPTURED.
func (s *Server) RespondTakePhoto(feedback TakePhotoFeedback, capture mavproto.CaptureInfo) Result {
	s.mu.Lock()
	if capture.Index != mavproto.IndexSynthesized {
		if s.imageCaptureCount != 0 && capture.Index != s.imageCaptureCount+1 {
			s.logger.Printf(
				"mavcam: unexpected image index, expecting %d but was %d",
				s.imageCaptureCount+1, capture.Index,
			)
		}
		s.imageCaptureCount = capture.Index
	}
	s.mu.Unlock()

	if feedback == TakePhotoFeedbackBusy {
		s.logger.Printf("mavcam: take-photo feedback: busy")
	}

	const cameraID = 0 // deprecated field, always 0 on the wire
	s.send(mavproto.BuildCameraImageCaptured(cameraID, capture, s.timeBootMs()))
	return Success
}

// SubscribeStorageInformation registers fn to be called when storage
// information for storageID is requested.
func (s *Server) SubscribeStorageInformation(fn func(storageID uint8)) callback.Handle {
	return s.storageInformation.Subscribe(fn)
}

// UnsubscribeStorageInformation cancels a SubscribeStorageInformation subscription.
func (s *Server) UnsubscribeStorageInformation(h callback.Handle) {
	s.storageInformation.Unsubscribe(h)
}

// RespondStorageInformation answers a pending storage-information request.
func (s *Server) RespondStorageInformation(info mavproto.StorageInformation) Result {
	s.mu.Lock()
	storageID := s.lastStorageID
	s.mu.Unlock()

	const storageCount = 1
	s.send(mavproto.BuildStorageInformation(storageID, storageCount, info, s.timeBootMs()))
	return Success
}

// SubscribeCaptureStatus registers fn to be called when capture status is
// requested.
func (s *Server) SubscribeCaptureStatus(fn func(storageID uint8)) callback.Handle {
	return s.captureStatus.Subscribe(fn)
}

// UnsubscribeCaptureStatus cancels a SubscribeCaptureStatus subscription.
func (s *Server) UnsubscribeCaptureStatus(h callback.Handle) { s.captureStatus.Unsubscribe(h) }

// RespondCaptureStatus answers a pending capture-status request.
func (s *Server) RespondCaptureStatus(status mavproto.CaptureStatus) Result {
	s.mu.Lock()
	status.ImageCount = s.imageCaptureCount
	s.mu.Unlock()

	s.send(mavproto.BuildCameraCaptureStatus(status, s.timeBootMs()))
	return Success
}

// SubscribeFormatStorage registers fn to be called when a storage-format
// request is received.
func (s *Server) SubscribeFormatStorage(fn func(storageID uint8)) callback.Handle {
	return s.formatStorage.Subscribe(fn)
}

// UnsubscribeFormatStorage cancels a SubscribeFormatStorage subscription.
func (s *Server) UnsubscribeFormatStorage(h callback.Handle) { s.formatStorage.Unsubscribe(h) }

// SubscribeResetSettings registers fn to be called when a reset-settings
// request is received.
func (s *Server) SubscribeResetSettings(fn func(dummy int32)) callback.Handle {
	return s.resetSettings.Subscribe(fn)
}

// UnsubscribeResetSettings cancels a SubscribeResetSettings subscription.
func (s *Server) UnsubscribeResetSettings(h callback.Handle) { s.resetSettings.Unsubscribe(h) }

// SubscribeSetMode registers fn to be called when a camera-mode change is
// requested.
func (s *Server) SubscribeSetMode(fn func(mode mavproto.Mode)) callback.Handle {
	return s.setMode.Subscribe(fn)
}

// UnsubscribeSetMode cancels a SubscribeSetMode subscription.
func (s *Server) UnsubscribeSetMode(h callback.Handle) { s.setMode.Unsubscribe(h) }

// SubscribeStartVideo registers fn to be called when video capture start is
// requested.
func (s *Server) SubscribeStartVideo(fn func(streamID uint8)) callback.Handle {
	return s.startVideo.Subscribe(fn)
}

// UnsubscribeStartVideo cancels a SubscribeStartVideo subscription.
func (s *Server) UnsubscribeStartVideo(h callback.Handle) { s.startVideo.Unsubscribe(h) }

// SubscribeStopVideo registers fn to be called when video capture stop is
// requested.
func (s *Server) SubscribeStopVideo(fn func(streamID uint8)) callback.Handle {
	return s.stopVideo.Subscribe(fn)
}

// UnsubscribeStopVideo cancels a SubscribeStopVideo subscription.
func (s *Server) UnsubscribeStopVideo(h callback.Handle) { s.stopVideo.Unsubscribe(h) }

// SubscribeStartVideoStreaming registers fn to be called when video
// streaming start is requested.
func (s *Server) SubscribeStartVideoStreaming(fn func(streamID uint8)) callback.Handle {
	return s.startVideoStreaming.Subscribe(fn)
}

// UnsubscribeStartVideoStreaming cancels a SubscribeStartVideoStreaming subscription.
func (s *Server) UnsubscribeStartVideoStreaming(h callback.Handle) {
	s.startVideoStreaming.Unsubscribe(h)
}

// SubscribeStopVideoStreaming registers fn to be called when video
// streaming stop is requested.
func (s *Server) SubscribeStopVideoStreaming(fn func(streamID uint8)) callback.Handle {
	return s.stopVideoStreaming.Subscribe(fn)
}

// UnsubscribeStopVideoStreaming cancels a SubscribeStopVideoStreaming subscription.
func (s *Server) UnsubscribeStopVideoStreaming(h callback.Handle) {
	s.stopVideoStreaming.Unsubscribe(h)
}

// startImageCaptureInterval begins periodic photo capture. count == 0 means
// "forever" until stopImageCaptureInterval is called.
func (s *Server) startImageCaptureInterval(intervalS float32, count int32, index int32) {
	remaining := count
	forever := count == 0
	var captured int32

	h := s.sched.AddCallEvery(time.Duration(intervalS*float32(time.Second)), func() {
		if s.takePhoto.Empty() {
			return
		}
		s.takePhoto.Each(func(fn func(int32)) { fn(index + captured) })
		captured++
		if !forever {
			remaining--
			if remaining == 0 {
				// stopImageCaptureInterval calls sched.Remove on this very
				// job's handle, which blocks until the job's goroutine (this
				// one, mid-tick) exits — a self-join. Run it from a separate
				// goroutine so the join has someone else to wait on.
				go s.stopImageCaptureInterval()
			}
		}
	})

	s.mu.Lock()
	s.imageCaptureTimerHandle = h
	s.isImageCaptureIntervalSet = true
	s.imageCaptureTimerIntervalS = intervalS
	s.mu.Unlock()

	s.setIntervalActive(true)
}

// stopImageCaptureInterval cancels any pending interval timer. Safe to call
// when no interval is active.
func (s *Server) stopImageCaptureInterval() {
	s.mu.Lock()
	h := s.imageCaptureTimerHandle
	wasActive := s.isImageCaptureIntervalSet
	s.imageCaptureTimerHandle = 0
	s.isImageCaptureIntervalSet = false
	s.imageCaptureTimerIntervalS = 0
	s.mu.Unlock()

	s.sched.Remove(h)

	if wasActive {
		s.setIntervalActive(false)
	}
}

// Close stops any pending capture interval. It does not close the
// scheduler, whether it was supplied via Config or created by New.
func (s *Server) Close() {
	s.stopImageCaptureInterval()
}
