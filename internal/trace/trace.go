// Package trace records drag samples as JSON lines and plays them back.
//
// Each line is one object carrying the sample's fields under their wire
// names, in a fixed order:
//
//	{"button":0,"buttons":1,"screenX":12,"screenY":6,"clientX":2,"clientY":1,
//	 "dx":1,"dy":0,"ctrlKey":false,"shiftKey":false,"altKey":false,
//	 "metaKey":false,"relatedTarget":null,"region":""}
//
// relatedTarget is written as the target's display name, or null.
package trace

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/dragstream/internal/input/button"
	"github.com/dshills/dragstream/internal/input/mouse"
)

// Wire names in encoding order.
const (
	FieldButton        = "button"
	FieldButtons       = "buttons"
	FieldScreenX       = "screenX"
	FieldScreenY       = "screenY"
	FieldClientX       = "clientX"
	FieldClientY       = "clientY"
	FieldDx            = "dx"
	FieldDy            = "dy"
	FieldCtrlKey       = "ctrlKey"
	FieldShiftKey      = "shiftKey"
	FieldAltKey        = "altKey"
	FieldMetaKey       = "metaKey"
	FieldRelatedTarget = "relatedTarget"
	FieldRegion        = "region"
)

// Fields lists every wire name in encoding order.
var Fields = []string{
	FieldButton, FieldButtons,
	FieldScreenX, FieldScreenY,
	FieldClientX, FieldClientY,
	FieldDx, FieldDy,
	FieldCtrlKey, FieldShiftKey, FieldAltKey, FieldMetaKey,
	FieldRelatedTarget, FieldRegion,
}

// Record is a decoded sample. The related target cannot be rebuilt from
// its name, so Sample.RelatedTarget is always nil and the name is kept
// separately.
type Record struct {
	Sample            mouse.Sample
	RelatedTargetName string
}

// Encode returns the JSON object for s.
func Encode(s mouse.Sample) ([]byte, error) {
	values := []any{
		int(s.Button), int(s.Buttons),
		s.ScreenX, s.ScreenY,
		s.ClientX, s.ClientY,
		s.Dx, s.Dy,
		s.CtrlKey, s.ShiftKey, s.AltKey, s.MetaKey,
	}

	out := []byte("{}")
	var err error
	for i, v := range values {
		if out, err = sjson.SetBytes(out, Fields[i], v); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", Fields[i], err)
		}
	}

	if s.RelatedTarget == nil {
		out, err = sjson.SetRawBytes(out, FieldRelatedTarget, []byte("null"))
	} else {
		out, err = sjson.SetBytes(out, FieldRelatedTarget, fmt.Sprint(s.RelatedTarget))
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FieldRelatedTarget, err)
	}

	if out, err = sjson.SetBytes(out, FieldRegion, s.Region); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FieldRegion, err)
	}
	return out, nil
}

// Decode parses one JSON object. Every wire name must be present with the
// right JSON type; unknown keys are ignored.
func Decode(data []byte) (Record, error) {
	var rec Record
	if !gjson.ValidBytes(data) {
		return rec, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return rec, fmt.Errorf("%w: not an object", ErrInvalidJSON)
	}

	get := func(name string, types ...gjson.Type) (gjson.Result, error) {
		r := root.Get(name)
		if !r.Exists() {
			return r, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
		for _, t := range types {
			if r.Type == t {
				return r, nil
			}
		}
		return r, fmt.Errorf("%w: %s is %s", ErrFieldType, name, r.Type)
	}
	num := func(name string) (float64, error) {
		r, err := get(name, gjson.Number)
		return r.Float(), err
	}
	flag := func(name string) (bool, error) {
		r, err := get(name, gjson.True, gjson.False)
		return r.Bool(), err
	}

	s := &rec.Sample
	b, err := num(FieldButton)
	if err != nil {
		return rec, err
	}
	s.Button = button.Button(b)

	m, err := num(FieldButtons)
	if err != nil {
		return rec, err
	}
	s.Buttons = button.Mask(m)

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{FieldScreenX, &s.ScreenX}, {FieldScreenY, &s.ScreenY},
		{FieldClientX, &s.ClientX}, {FieldClientY, &s.ClientY},
		{FieldDx, &s.Dx}, {FieldDy, &s.Dy},
	} {
		if *f.dst, err = num(f.name); err != nil {
			return rec, err
		}
	}

	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{FieldCtrlKey, &s.CtrlKey}, {FieldShiftKey, &s.ShiftKey},
		{FieldAltKey, &s.AltKey}, {FieldMetaKey, &s.MetaKey},
	} {
		if *f.dst, err = flag(f.name); err != nil {
			return rec, err
		}
	}

	rt, err := get(FieldRelatedTarget, gjson.String, gjson.Null)
	if err != nil {
		return rec, err
	}
	rec.RelatedTargetName = rt.Str

	region, err := get(FieldRegion, gjson.String)
	if err != nil {
		return rec, err
	}
	s.Region = region.Str
	return rec, nil
}
