package main

import (
	"fmt"
	"log"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"

	"github.com/skytether/mavcam/internal/metrics"
	"github.com/skytether/mavcam/mavcam"
	"github.com/skytether/mavcam/paramserver"
)

// sender is the subset of *gomavlib.Node the router needs to reply to
// PARAM_* requests; mavcam.Server takes its own copy via mavcam.Config.Node.
type sender interface {
	WriteMessageAll(msg message.Message) error
}

// router demultiplexes inbound MAVLink frames to the camera core and the
// parameter server, the same Events()-channel-plus-type-switch shape the
// teacher's mavlink.Client.listen/handleMessage uses.
type router struct {
	node    sender
	events  <-chan gomavlib.Event
	cam     *mavcam.Server
	params  *paramserver.Server
	metrics *metrics.Metrics
	logger  *log.Logger
}

func newRouter(node *gomavlib.Node, cam *mavcam.Server, params *paramserver.Server, m *metrics.Metrics, logger *log.Logger) *router {
	return &router{
		node:    node,
		events:  node.Events(),
		cam:     cam,
		params:  params,
		metrics: m,
		logger:  logger,
	}
}

func (r *router) run() {
	r.logger.Println("router: listening for MAVLink frames")
	for evt := range r.events {
		frm, ok := evt.(*gomavlib.EventFrame)
		if !ok {
			continue
		}
		r.dispatch(frm.Message())
	}
	r.logger.Println("router: event channel closed")
}

func (r *router) dispatch(msg message.Message) {
	switch m := msg.(type) {
	case *common.MessageCommandLong:
		r.handleCommandLong(m)
	case *common.MessageParamRequestRead:
		if v := r.params.HandleParamRequestRead(m); v != nil {
			r.send(v)
		}
	case *common.MessageParamRequestList:
		for _, v := range r.params.HandleParamRequestList() {
			r.send(v)
		}
	case *common.MessageParamSet:
		if v := r.params.HandleParamSet(m); v != nil {
			r.metrics.RecordParamSet(m.ParamId)
			r.send(v)
		}
	case *common.MessageParamExtRequestRead:
		if v := r.params.HandleParamExtRequestRead(m); v != nil {
			r.send(v)
		}
	case *common.MessageParamExtRequestList:
		for _, v := range r.params.HandleParamExtRequestList() {
			r.send(v)
		}
	case *common.MessageParamExtSet:
		ack := r.params.HandleParamExtSet(m)
		if ack.ParamResult == common.PARAM_ACK_ACCEPTED {
			r.metrics.RecordParamSet(m.ParamId)
		}
		r.send(ack)
	}
}

func (r *router) handleCommandLong(cmd *common.MessageCommandLong) {
	start := time.Now()
	r.cam.HandleCommandLong(cmd)
	r.metrics.ObserveCommand(fmt.Sprintf("%d", int(cmd.Command)), "dispatched", time.Since(start))
}

func (r *router) send(msg message.Message) {
	if err := r.node.WriteMessageAll(msg); err != nil {
		r.logger.Printf("router: failed to send %T: %v", msg, err)
	}
}
