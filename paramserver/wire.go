package paramserver

import (
	"math"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
)

// encodeWireValue renders one parameter as the (float32, MAV_PARAM_TYPE)
// pair PARAM_VALUE/PARAM_SET carries on the wire. Integer parameters use
// PX4's bitwise float encoding (store the int32 bit pattern inside the
// float32), since that's the convention ground stations in this ecosystem
// already expect.
func encodeWireValue(e *entry) (float32, common.MAV_PARAM_TYPE) {
	switch e.kind {
	case kindInt:
		return math.Float32frombits(uint32(e.i)), common.MAV_PARAM_TYPE_INT32
	case kindFloat:
		return e.f, common.MAV_PARAM_TYPE_REAL32
	default:
		return 0, common.MAV_PARAM_TYPE_REAL32
	}
}

func decodeWireValue(value float32, typ common.MAV_PARAM_TYPE) *entry {
	switch typ {
	case common.MAV_PARAM_TYPE_INT32, common.MAV_PARAM_TYPE_INT16, common.MAV_PARAM_TYPE_INT8,
		common.MAV_PARAM_TYPE_UINT32, common.MAV_PARAM_TYPE_UINT16, common.MAV_PARAM_TYPE_UINT8:
		return &entry{kind: kindInt, i: int32(math.Float32bits(value))}
	default:
		return &entry{kind: kindFloat, f: value}
	}
}

// BuildParamValue builds the PARAM_VALUE message for one Int or Float
// parameter at the given wire index, out of paramCount total such
// parameters. Building for a Custom/Typed entry is a caller error (those
// are only ever carried over PARAM_EXT_VALUE) and returns nil.
func (s *Server) BuildParamValue(name string, index, paramCount uint16) *common.MessageParamValue {
	s.mu.RLock()
	e, ok := s.params[name]
	s.mu.RUnlock()

	if !ok || (e.kind != kindInt && e.kind != kindFloat) {
		return nil
	}

	value, typ := encodeWireValue(e)
	return &common.MessageParamValue{
		ParamId:    name,
		ParamValue: value,
		ParamType:  typ,
		ParamCount: paramCount,
		ParamIndex: index,
	}
}

// standardParamNames returns the Int/Float parameter names in stable
// enumeration order, the order PARAM_REQUEST_LIST replies in.
func (s *Server) standardParamNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if e := s.params[name]; e.kind == kindInt || e.kind == kindFloat {
			names = append(names, name)
		}
	}
	return names
}

// extParamNames returns the Custom/Typed parameter names in stable
// enumeration order, the order PARAM_EXT_REQUEST_LIST replies in.
func (s *Server) extParamNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if e := s.params[name]; e.kind == kindCustom || e.kind == kindTyped {
			names = append(names, name)
		}
	}
	return names
}

// HandleParamRequestRead answers a PARAM_REQUEST_READ. A ParamIndex that is
// non-negative and within range selects the parameter by its position in
// the Int/Float enumeration order; otherwise the lookup is by ParamId.
func (s *Server) HandleParamRequestRead(msg *common.MessageParamRequestRead) *common.MessageParamValue {
	names := s.standardParamNames()
	name := msg.ParamId
	if msg.ParamIndex >= 0 && int(msg.ParamIndex) < len(names) {
		name = names[msg.ParamIndex]
	}

	for i, n := range names {
		if n == name {
			return s.BuildParamValue(n, uint16(i), uint16(len(names)))
		}
	}
	return nil
}

// HandleParamRequestList answers a PARAM_REQUEST_LIST with one PARAM_VALUE
// per stored Int/Float parameter.
func (s *Server) HandleParamRequestList() []*common.MessageParamValue {
	names := s.standardParamNames()
	out := make([]*common.MessageParamValue, 0, len(names))
	for i, name := range names {
		if v := s.BuildParamValue(name, uint16(i), uint16(len(names))); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// HandleParamSet applies an incoming PARAM_SET and returns the PARAM_VALUE
// echo a ground station expects in response, or nil if the named parameter
// is not known (MAVLink has no negative PARAM_SET acknowledgement).
func (s *Server) HandleParamSet(msg *common.MessageParamSet) *common.MessageParamValue {
	s.mu.Lock()
	existing, ok := s.params[msg.ParamId]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	wasCustom := existing.kind == kindCustom || existing.kind == kindTyped
	s.mu.Unlock()

	if wasCustom {
		return nil
	}

	decoded := decodeWireValue(msg.ParamValue, msg.ParamType)
	if decoded.kind == kindInt {
		s.ProvideParamInt(msg.ParamId, decoded.i)
	} else {
		s.ProvideParamFloat(msg.ParamId, decoded.f)
	}

	names := s.standardParamNames()
	for i, n := range names {
		if n == msg.ParamId {
			return s.BuildParamValue(n, uint16(i), uint16(len(names)))
		}
	}
	return nil
}

// BuildParamExtValue builds the PARAM_EXT_VALUE message for one Custom or
// Typed parameter.
func (s *Server) BuildParamExtValue(name string, index, paramCount uint16) *common.MessageParamExtValue {
	s.mu.RLock()
	e, ok := s.params[name]
	s.mu.RUnlock()

	if !ok || (e.kind != kindCustom && e.kind != kindTyped) {
		return nil
	}

	typ := common.MAV_PARAM_EXT_TYPE_CUSTOM
	if e.kind == kindTyped {
		typ = extTypeFor(e.typ)
	}

	return &common.MessageParamExtValue{
		ParamId:    name,
		ParamValue: e.s,
		ParamType:  typ,
		ParamCount: paramCount,
		ParamIndex: index,
	}
}

func extTypeFor(t Type) common.MAV_PARAM_EXT_TYPE {
	switch t {
	case TypeUint8:
		return common.MAV_PARAM_EXT_TYPE_UINT8
	case TypeInt8:
		return common.MAV_PARAM_EXT_TYPE_INT8
	case TypeUint16:
		return common.MAV_PARAM_EXT_TYPE_UINT16
	case TypeInt16:
		return common.MAV_PARAM_EXT_TYPE_INT16
	case TypeUint32:
		return common.MAV_PARAM_EXT_TYPE_UINT32
	case TypeInt32:
		return common.MAV_PARAM_EXT_TYPE_INT32
	case TypeUint64:
		return common.MAV_PARAM_EXT_TYPE_UINT64
	case TypeInt64:
		return common.MAV_PARAM_EXT_TYPE_INT64
	case TypeFloat:
		return common.MAV_PARAM_EXT_TYPE_REAL32
	case TypeDouble:
		return common.MAV_PARAM_EXT_TYPE_REAL64
	default:
		return common.MAV_PARAM_EXT_TYPE_CUSTOM
	}
}

// HandleParamExtRequestRead answers a PARAM_EXT_REQUEST_READ.
func (s *Server) HandleParamExtRequestRead(msg *common.MessageParamExtRequestRead) *common.MessageParamExtValue {
	names := s.extParamNames()
	name := msg.ParamId
	if msg.ParamIndex >= 0 && int(msg.ParamIndex) < len(names) {
		name = names[msg.ParamIndex]
	}

	for i, n := range names {
		if n == name {
			return s.BuildParamExtValue(n, uint16(i), uint16(len(names)))
		}
	}
	return nil
}

// HandleParamExtRequestList answers a PARAM_EXT_REQUEST_LIST with one
// PARAM_EXT_VALUE per stored Custom/Typed parameter.
func (s *Server) HandleParamExtRequestList() []*common.MessageParamExtValue {
	names := s.extParamNames()
	out := make([]*common.MessageParamExtValue, 0, len(names))
	for i, name := range names {
		if v := s.BuildParamExtValue(name, uint16(i), uint16(len(names))); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// HandleParamExtSet applies an incoming PARAM_EXT_SET and returns the
// PARAM_EXT_ACK a ground station expects in response.
func (s *Server) HandleParamExtSet(msg *common.MessageParamExtSet) *common.MessageParamExtAck {
	s.mu.RLock()
	existing, ok := s.params[msg.ParamId]
	s.mu.RUnlock()

	if !ok {
		return &common.MessageParamExtAck{
			ParamId:     msg.ParamId,
			ParamValue:  msg.ParamValue,
			ParamType:   msg.ParamType,
			ParamResult: common.PARAM_ACK_FAILED,
		}
	}

	if existing.kind == kindTyped {
		s.ProvideParamTyped(msg.ParamId, msg.ParamValue, existing.typ)
	} else {
		s.ProvideParamCustom(msg.ParamId, msg.ParamValue)
	}

	return &common.MessageParamExtAck{
		ParamId:     msg.ParamId,
		ParamValue:  msg.ParamValue,
		ParamType:   msg.ParamType,
		ParamResult: common.PARAM_ACK_ACCEPTED,
	}
}
