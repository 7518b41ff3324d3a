package watchface

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
)

// WeatherPath is the companion data path carrying weather updates.
const WeatherPath = "/weather"

// Payload field names on the companion data item.
const (
	FieldHighTemperature  = "high_temperature"
	FieldLowTemperature   = "low_temperature"
	FieldWeatherCondition = "weather_condition"
)

// WeatherPayload is one decoded companion update. Nil fields were missing or
// malformed on the wire.
type WeatherPayload struct {
	High      *string `json:"high_temperature,omitempty"`
	Low       *string `json:"low_temperature,omitempty"`
	Condition *int    `json:"weather_condition,omitempty"`
}

// ErrNotObject is returned when a payload body is not a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

// DecodeWeatherPayload decodes a companion data item field by field. A field
// that is present but of the wrong type is dropped and reported in fieldErrs;
// the rest of the payload still decodes. err is non-nil only when the body
// is not a JSON object at all.
func DecodeWeatherPayload(data []byte) (p WeatherPayload, fieldErrs []error, err error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return WeatherPayload{}, nil, ErrNotObject
	}

	if v, ok := raw[FieldHighTemperature]; ok {
		p.High, err = decodeString(v)
		if err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("%s: %w", FieldHighTemperature, err))
		}
	}
	if v, ok := raw[FieldLowTemperature]; ok {
		p.Low, err = decodeString(v)
		if err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("%s: %w", FieldLowTemperature, err))
		}
	}
	if v, ok := raw[FieldWeatherCondition]; ok {
		var code int
		if err := json.Unmarshal(v, &code); err != nil {
			fieldErrs = append(fieldErrs, fmt.Errorf("%s: %w", FieldWeatherCondition, err))
		} else if !isNull(v) {
			p.Condition = &code
		}
	}
	return p, fieldErrs, nil
}

func decodeString(v json.RawMessage) (*string, error) {
	if isNull(v) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// WeatherState is the last-known weather shown on the face. Values are
// immutable snapshots; an update replaces the whole state.
//
// The zero value is the unset state: no payload has been received yet, and
// the face shows the open-app prompt instead of temperatures.
type WeatherState struct {
	High            *string
	Low             *string
	Condition       *int
	IconInteractive image.Image
	IconAmbient     image.Image

	set bool
}

// NewWeatherState builds a set state from a payload and its decoded icons.
func NewWeatherState(p WeatherPayload, interactive, ambient image.Image) WeatherState {
	return WeatherState{
		High:            p.High,
		Low:             p.Low,
		Condition:       p.Condition,
		IconInteractive: interactive,
		IconAmbient:     ambient,
		set:             true,
	}
}

// IsSet reports whether any payload has been received.
func (w WeatherState) IsSet() bool {
	return w.set
}

// Icon returns the icon variant for the given power mode.
func (w WeatherState) Icon(mode PowerMode) image.Image {
	if mode.Ambient() {
		return w.IconAmbient
	}
	return w.IconInteractive
}
