package paramserver

import (
	"testing"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
)

func TestBuildParamValueIntUsesBitcastEncoding(t *testing.T) {
	s := New()
	s.ProvideParamInt("ALT", -5)

	msg := s.BuildParamValue("ALT", 0, 1)
	if msg == nil {
		t.Fatal("expected non-nil message")
	}
	if msg.ParamType != common.MAV_PARAM_TYPE_INT32 {
		t.Fatalf("expected INT32 type, got %v", msg.ParamType)
	}

	decoded := decodeWireValue(msg.ParamValue, msg.ParamType)
	if decoded.i != -5 {
		t.Fatalf("expected round-tripped value -5, got %d", decoded.i)
	}
}

func TestHandleParamRequestListCountsOnlyStandardParams(t *testing.T) {
	s := New()
	s.ProvideParamInt("I1", 1)
	s.ProvideParamFloat("F1", 2)
	s.ProvideParamCustom("C1", "x")

	out := s.HandleParamRequestList()
	if len(out) != 2 {
		t.Fatalf("expected 2 standard params, got %d", len(out))
	}
	for _, m := range out {
		if m.ParamCount != 2 {
			t.Fatalf("expected param count 2, got %d", m.ParamCount)
		}
	}
}

func TestHandleParamSetUpdatesAndEchoes(t *testing.T) {
	s := New()
	s.ProvideParamFloat("GAIN", 1.0)

	ack := s.HandleParamSet(&common.MessageParamSet{
		ParamId:    "GAIN",
		ParamValue: 2.5,
		ParamType:  common.MAV_PARAM_TYPE_REAL32,
	})
	if ack == nil || ack.ParamValue != 2.5 {
		t.Fatalf("expected echoed PARAM_VALUE of 2.5, got %+v", ack)
	}

	if r, v := s.RetrieveParamFloat("GAIN"); r != Success || v != 2.5 {
		t.Fatalf("expected stored value updated to 2.5, got %v/%v", r, v)
	}
}

func TestHandleParamSetUnknownNameReturnsNil(t *testing.T) {
	s := New()
	if ack := s.HandleParamSet(&common.MessageParamSet{ParamId: "NOPE"}); ack != nil {
		t.Fatalf("expected nil ack for unknown param, got %+v", ack)
	}
}

func TestHandleParamSetRejectsCustomParam(t *testing.T) {
	s := New()
	s.ProvideParamCustom("BLOB", "hello")

	if ack := s.HandleParamSet(&common.MessageParamSet{ParamId: "BLOB"}); ack != nil {
		t.Fatalf("expected nil ack for custom param via PARAM_SET, got %+v", ack)
	}
}

func TestHandleParamExtSetUpdatesCustomParam(t *testing.T) {
	s := New()
	s.ProvideParamCustom("BLOB", "old")

	ack := s.HandleParamExtSet(&common.MessageParamExtSet{ParamId: "BLOB", ParamValue: "new"})
	if ack == nil || ack.ParamResult != common.PARAM_ACK_ACCEPTED {
		t.Fatalf("expected accepted ack, got %+v", ack)
	}

	if r, v := s.RetrieveParamCustom("BLOB"); r != Success || v != "new" {
		t.Fatalf("expected updated value 'new', got %v/%q", r, v)
	}
}

func TestHandleParamExtSetUnknownNameFails(t *testing.T) {
	s := New()
	ack := s.HandleParamExtSet(&common.MessageParamExtSet{ParamId: "NOPE"})
	if ack == nil || ack.ParamResult != common.PARAM_ACK_FAILED {
		t.Fatalf("expected failed ack, got %+v", ack)
	}
}
