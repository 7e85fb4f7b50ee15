package validation

import (
	"strings"

	"github.com/bhujal/registry/internal/models"
)

// BorewellInput is a create or update payload. Nil means "not provided".
type BorewellInput struct {
	Latitude         *string  `json:"latitude"`
	Longitude        *string  `json:"longitude"`
	WellType         *string  `json:"wellType"`
	DepthType        *string  `json:"depthType"`
	WallType         *string  `json:"wallType"`
	SupplySystem     *string  `json:"supplySystem"`
	ExactDepth       *float64 `json:"exactDepth"`
	MotorOperated    *bool    `json:"motorOperated"`
	AuthoritiesAware *bool    `json:"authoritiesAware"`
	Description      *string  `json:"description"`
}

// BorewellAttributes is a fully defaulted, validated set of borewell fields.
type BorewellAttributes struct {
	Latitude         string  `json:"latitude" validate:"latitude_dd"`
	Longitude        string  `json:"longitude" validate:"longitude_dd"`
	WellType         string  `json:"wellType" validate:"oneof=dug-well drilled-well other"`
	DepthType        string  `json:"depthType" validate:"max=100"`
	WallType         string  `json:"wallType" validate:"max=100"`
	SupplySystem     string  `json:"supplySystem" validate:"max=100"`
	ExactDepth       float64 `json:"exactDepth" validate:"gte=0"`
	MotorOperated    bool    `json:"motorOperated"`
	AuthoritiesAware bool    `json:"authoritiesAware"`
	Description      string  `json:"description" validate:"max=500"`
}

// MissingRequiredMessage is reported when any of latitude, longitude or
// wellType is absent.
const MissingRequiredMessage = "Please provide latitude, longitude, and well type"

// ValidateBorewell checks a payload and returns its attributes with defaults
// applied. Missing required fields are reported together in one error
// before any other rule runs.
func ValidateBorewell(in BorewellInput) (BorewellAttributes, error) {
	var missing []FieldError
	for _, req := range []struct {
		field string
		value *string
	}{
		{"latitude", in.Latitude},
		{"longitude", in.Longitude},
		{"wellType", in.WellType},
	} {
		if req.value == nil || strings.TrimSpace(*req.value) == "" {
			missing = append(missing, FieldError{Field: req.field, Reason: req.field + " is required"})
		}
	}
	if len(missing) > 0 {
		return BorewellAttributes{}, &ValidationError{Message: MissingRequiredMessage, Fields: missing}
	}

	attrs := BorewellAttributes{
		Latitude:         strings.TrimSpace(*in.Latitude),
		Longitude:        strings.TrimSpace(*in.Longitude),
		WellType:         *in.WellType,
		DepthType:        deref(in.DepthType),
		WallType:         deref(in.WallType),
		SupplySystem:     deref(in.SupplySystem),
		ExactDepth:       deref(in.ExactDepth),
		MotorOperated:    deref(in.MotorOperated),
		AuthoritiesAware: deref(in.AuthoritiesAware),
		Description:      deref(in.Description),
	}
	if err := check(attrs); err != nil {
		return BorewellAttributes{}, err
	}
	return attrs, nil
}

// Over fills every field the payload left out with the current value, so
// a partial update can be validated as a whole record.
func (in BorewellInput) Over(cur BorewellAttributes) BorewellInput {
	return BorewellInput{
		Latitude:         or(in.Latitude, cur.Latitude),
		Longitude:        or(in.Longitude, cur.Longitude),
		WellType:         or(in.WellType, cur.WellType),
		DepthType:        or(in.DepthType, cur.DepthType),
		WallType:         or(in.WallType, cur.WallType),
		SupplySystem:     or(in.SupplySystem, cur.SupplySystem),
		ExactDepth:       or(in.ExactDepth, cur.ExactDepth),
		MotorOperated:    or(in.MotorOperated, cur.MotorOperated),
		AuthoritiesAware: or(in.AuthoritiesAware, cur.AuthoritiesAware),
		Description:      or(in.Description, cur.Description),
	}
}

// AttributesOf extracts the mutable attributes of a stored record.
func AttributesOf(b models.Borewell) BorewellAttributes {
	return BorewellAttributes{
		Latitude:         b.Latitude,
		Longitude:        b.Longitude,
		WellType:         b.WellType,
		DepthType:        b.DepthType,
		WallType:         b.WallType,
		SupplySystem:     b.SupplySystem,
		ExactDepth:       b.ExactDepth,
		MotorOperated:    b.MotorOperated,
		AuthoritiesAware: b.AuthoritiesAware,
		Description:      b.Description,
	}
}

// ApplyTo copies the attributes onto b. Identity and ownership are untouched.
func (a BorewellAttributes) ApplyTo(b *models.Borewell) {
	b.Latitude = a.Latitude
	b.Longitude = a.Longitude
	b.WellType = a.WellType
	b.DepthType = a.DepthType
	b.WallType = a.WallType
	b.SupplySystem = a.SupplySystem
	b.ExactDepth = a.ExactDepth
	b.MotorOperated = a.MotorOperated
	b.AuthoritiesAware = a.AuthoritiesAware
	b.Description = a.Description
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func or[T any](p *T, fallback T) *T {
	if p != nil {
		return p
	}
	return &fallback
}
