// Package paramserver is the camera server's typed parameter store
// (spec component E): a name-keyed value table reachable both from Go
// callers (ProvideParam*/RetrieveParam*) and from the MAVLink PARAM wire
// protocol (PARAM_REQUEST_READ/LIST/SET and their PARAM_EXT_* counterparts),
// with per-parameter change subscriptions for the latter.
package paramserver

import (
	"math"
	"strconv"
	"sync"

	"github.com/skytether/mavcam/callback"
)

// Result mirrors the original plugin's ParamServer::Result enum.
type Result int

const (
	Success Result = iota
	NotFound
	WrongType
	ParamNameTooLong
	ParamValueTooLong
	Unknown
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case NotFound:
		return "NotFound"
	case WrongType:
		return "WrongType"
	case ParamNameTooLong:
		return "ParamNameTooLong"
	case ParamValueTooLong:
		return "ParamValueTooLong"
	default:
		return "Unknown"
	}
}

// Type is the XML parameter-value type tag used by typed custom params
// (PARAM_EXT wire protocol). It has no bearing on plain Int/Float params.
type Type int

const (
	TypeUint8 Type = iota
	TypeInt8
	TypeUint16
	TypeInt16
	TypeUint32
	TypeInt32
	TypeUint64
	TypeInt64
	TypeFloat
	TypeDouble
)

// xmlTag renders the type the way provide_param_custom's original C++
// switch does, for types that have a known xml_type_string. Untyped custom
// values (the "default: break" case in the original) are represented by
// ProvideParamCustom rather than ProvideParamTyped.
func (t Type) xmlTag() string {
	switch t {
	case TypeUint8:
		return "uint8"
	case TypeInt8:
		return "int8"
	case TypeUint16:
		return "uint16"
	case TypeInt16:
		return "int16"
	case TypeUint32:
		return "uint32"
	case TypeInt32:
		return "int32"
	case TypeUint64:
		return "uint64"
	case TypeInt64:
		return "int64"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	default:
		return ""
	}
}

const (
	maxParamNameLen  = 16
	maxParamValueLen = 128
)

type kind int

const (
	kindInt kind = iota
	kindFloat
	kindCustom
	kindTyped
)

type entry struct {
	kind kind
	i    int32
	f    float32
	s    string
	typ  Type
}

// IntParam is one entry of AllParams' integer-valued parameters.
type IntParam struct {
	Name  string
	Value int32
}

// FloatParam is one entry of AllParams' float-valued parameters.
type FloatParam struct {
	Name  string
	Value float32
}

// AllParams is the snapshot returned by RetrieveAllParams. It mirrors the
// original plugin's behavior of only surfacing Int and Float params here;
// custom/typed params are retrieved individually via RetrieveParamCustom.
type AllParams struct {
	IntParams   []IntParam
	FloatParams []FloatParam
}

// Server is the parameter store plus its change-subscription registries.
type Server struct {
	mu     sync.RWMutex
	order  []string
	params map[string]*entry
	subs   map[string]*callback.Registry[func(string)]
}

// New creates an empty parameter store.
func New() *Server {
	return &Server{
		params: make(map[string]*entry),
		subs:   make(map[string]*callback.Registry[func(string)]),
	}
}

func (s *Server) set(name string, e *entry) {
	if _, exists := s.params[name]; !exists {
		s.order = append(s.order, name)
	}
	s.params[name] = e
}

// ProvideParamInt creates or updates an integer parameter.
func (s *Server) ProvideParamInt(name string, value int32) Result {
	if len(name) > maxParamNameLen {
		return ParamNameTooLong
	}

	s.mu.Lock()
	s.set(name, &entry{kind: kindInt, i: value})
	s.mu.Unlock()

	s.notifyLocked(name, strconv.FormatInt(int64(value), 10))
	return Success
}

// ProvideParamFloat creates or updates a float parameter.
func (s *Server) ProvideParamFloat(name string, value float32) Result {
	if len(name) > maxParamNameLen {
		return ParamNameTooLong
	}

	s.mu.Lock()
	s.set(name, &entry{kind: kindFloat, f: value})
	s.mu.Unlock()

	s.notifyLocked(name, strconv.FormatFloat(float64(value), 'g', -1, 32))
	return Success
}

// ProvideParamCustom creates or updates an untyped custom (string) parameter,
// exposed only over PARAM_EXT.
func (s *Server) ProvideParamCustom(name string, value string) Result {
	if len(name) > maxParamNameLen {
		return ParamNameTooLong
	}
	if len(value) > maxParamValueLen {
		return ParamValueTooLong
	}

	s.mu.Lock()
	s.set(name, &entry{kind: kindCustom, s: value})
	s.mu.Unlock()

	s.notifyLocked(name, value)
	return Success
}

// ProvideParamTyped creates or updates a custom parameter carrying an
// explicit XML value type, so a ground station can interpret the string as
// the named numeric type instead of an opaque blob.
func (s *Server) ProvideParamTyped(name string, value string, typ Type) Result {
	if len(name) > maxParamNameLen {
		return ParamNameTooLong
	}
	if len(value) > maxParamValueLen {
		return ParamValueTooLong
	}

	s.mu.Lock()
	s.set(name, &entry{kind: kindTyped, s: value, typ: typ})
	s.mu.Unlock()

	s.notifyLocked(name, value)
	return Success
}

// notifyLocked takes the read lock only long enough to find the registry,
// then invokes subscribers without holding it — subscribers are allowed to
// call back into the Server (e.g. Subscribe/Unsubscribe) from the callback.
func (s *Server) notifyLocked(name, value string) {
	s.mu.RLock()
	reg := s.subs[name]
	s.mu.RUnlock()

	if reg == nil {
		return
	}
	reg.Each(func(fn func(string)) { fn(value) })
}

// RetrieveParamInt looks up an integer parameter by name. A name stored
// under a different type is reported as NotFound, the same as a name that
// isn't stored at all, matching the original plugin's collapse of every
// retrieve failure into one result.
func (s *Server) RetrieveParamInt(name string) (Result, int32) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.params[name]
	if !ok || e.kind != kindInt {
		return NotFound, -1
	}
	return Success, e.i
}

// RetrieveParamFloat looks up a float parameter by name. A name stored
// under a different type is reported as NotFound, the same as a name that
// isn't stored at all.
func (s *Server) RetrieveParamFloat(name string) (Result, float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.params[name]
	if !ok || e.kind != kindFloat {
		return NotFound, float32(math.NaN())
	}
	return Success, e.f
}

// RetrieveParamCustom looks up a custom or typed parameter by name, returning
// its raw string representation. A name stored under a different type is
// reported as NotFound, the same as a name that isn't stored at all.
func (s *Server) RetrieveParamCustom(name string) (Result, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.params[name]
	if !ok || (e.kind != kindCustom && e.kind != kindTyped) {
		return NotFound, ""
	}
	return Success, e.s
}

// RetrieveAllParams returns every Int and Float parameter currently stored.
func (s *Server) RetrieveAllParams() AllParams {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all AllParams
	for _, name := range s.order {
		e := s.params[name]
		switch e.kind {
		case kindInt:
			all.IntParams = append(all.IntParams, IntParam{Name: name, Value: e.i})
		case kindFloat:
			all.FloatParams = append(all.FloatParams, FloatParam{Name: name, Value: e.f})
		}
	}
	return all
}

// SubscribeParamChanged registers fn to be called with the parameter's new
// value (rendered as a string, matching the original plugin's
// std::to_string-everything callback signature) every time name changes.
// The returned handle can be passed to Unsubscribe.
func (s *Server) SubscribeParamChanged(name string, fn func(value string)) callback.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.subs[name]
	if !ok {
		reg = &callback.Registry[func(string)]{}
		s.subs[name] = reg
	}
	return reg.Subscribe(fn)
}

// Unsubscribe cancels a subscription previously returned by
// SubscribeParamChanged for the given parameter name.
func (s *Server) Unsubscribe(name string, h callback.Handle) {
	s.mu.RLock()
	reg, ok := s.subs[name]
	s.mu.RUnlock()

	if !ok {
		return
	}
	reg.Unsubscribe(h)
}
