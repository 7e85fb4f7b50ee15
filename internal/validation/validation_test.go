package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhujal/registry/internal/models"
)

func ptr[T any](v T) *T { return &v }

func validInput() BorewellInput {
	return BorewellInput{
		Latitude:  ptr("12.9716"),
		Longitude: ptr("77.5946"),
		WellType:  ptr(models.WellTypeDrilled),
	}
}

func TestValidateBorewellAppliesDefaults(t *testing.T) {
	attrs, err := ValidateBorewell(validInput())
	require.NoError(t, err)
	require.Equal(t, BorewellAttributes{
		Latitude:  "12.9716",
		Longitude: "77.5946",
		WellType:  "drilled-well",
	}, attrs)
}

func TestValidateBorewellMissingFieldsAggregated(t *testing.T) {
	_, err := ValidateBorewell(BorewellInput{Longitude: ptr("77.5946"), WellType: ptr("")})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, MissingRequiredMessage, ve.Error())
	require.Equal(t, []FieldError{
		{Field: "latitude", Reason: "latitude is required"},
		{Field: "wellType", Reason: "wellType is required"},
	}, ve.Fields)
}

func TestCoordinatePatterns(t *testing.T) {
	cases := []struct {
		lat, lng string
		ok       bool
	}{
		{"12.9716", "77.5946", true},
		{"-89.999999", "-179.5", true},
		{"90.0", "180.0", true},
		{"-90.000000", "-180.0", true},
		{"0.1", "0.1", true},
		{"91.0", "77.5946", false},
		{"12.9716", "181.0", false},
		{"90.5", "77.5946", false},
		{"12.9716", "180.5", false},
		{"12", "77.5946", false},
		{"12.1234567", "77.5946", false},
		{"north", "77.5946", false},
	}
	for _, tc := range cases {
		in := validInput()
		in.Latitude = ptr(tc.lat)
		in.Longitude = ptr(tc.lng)
		_, err := ValidateBorewell(in)
		if tc.ok {
			require.NoError(t, err, "%s,%s", tc.lat, tc.lng)
		} else {
			require.Error(t, err, "%s,%s", tc.lat, tc.lng)
		}
	}
}

func TestValidateBorewellFieldReasons(t *testing.T) {
	in := validInput()
	in.Latitude = ptr("91.0")
	in.WellType = ptr("tube-well")
	in.ExactDepth = ptr(-3.0)
	in.Description = ptr(strings.Repeat("x", 501))
	in.WallType = ptr(strings.Repeat("y", 101))

	_, err := ValidateBorewell(in)
	require.Error(t, err)
	require.ElementsMatch(t, []FieldError{
		{Field: "latitude", Reason: "Please provide a valid latitude"},
		{Field: "wellType", Reason: "Well type must be one of dug-well, drilled-well, other"},
		{Field: "wallType", Reason: "Wall type cannot exceed 100 characters"},
		{Field: "exactDepth", Reason: "Depth cannot be negative"},
		{Field: "description", Reason: "Description cannot exceed 500 characters"},
	}, FieldsOf(err))
}

func TestValidateBorewellLengthBoundary(t *testing.T) {
	in := validInput()
	in.SupplySystem = ptr(strings.Repeat("s", 100))
	in.Description = ptr(strings.Repeat("d", 500))

	attrs, err := ValidateBorewell(in)
	require.NoError(t, err)
	require.Len(t, attrs.SupplySystem, 100)
}

func TestOverMergesPartialUpdate(t *testing.T) {
	cur := BorewellAttributes{
		Latitude:      "12.9716",
		Longitude:     "77.5946",
		WellType:      "dug-well",
		DepthType:     "shallow",
		ExactDepth:    20,
		MotorOperated: true,
	}
	merged := BorewellInput{ExactDepth: ptr(35.5), MotorOperated: ptr(false)}.Over(cur)

	attrs, err := ValidateBorewell(merged)
	require.NoError(t, err)
	require.Equal(t, "dug-well", attrs.WellType)
	require.Equal(t, "shallow", attrs.DepthType)
	require.Equal(t, 35.5, attrs.ExactDepth)
	require.False(t, attrs.MotorOperated)
}

func TestAttributesRoundTripThroughModel(t *testing.T) {
	attrs := BorewellAttributes{Latitude: "1.5", Longitude: "2.5", WellType: "other", Description: "near gate"}
	var b models.Borewell
	attrs.ApplyTo(&b)
	require.Equal(t, attrs, AttributesOf(b))
}

func TestValidateRegistration(t *testing.T) {
	r := Registration{
		Name:        "  Asha Rao ",
		Email:       "Asha@Example.COM",
		PhoneNumber: "+919876543210",
		Address:     "Hebbal, Bengaluru",
		Password:    "secret1",
	}
	require.NoError(t, ValidateRegistration(&r))
	require.Equal(t, "Asha Rao", r.Name)
	require.Equal(t, "asha@example.com", r.Email)

	bad := Registration{Name: "A", Email: "not-an-email", PhoneNumber: "0123", Address: "x", Password: "123"}
	err := ValidateRegistration(&bad)
	require.ElementsMatch(t, []FieldError{
		{Field: "email", Reason: "Please provide a valid email"},
		{Field: "phoneNumber", Reason: "Please provide a valid phone number"},
		{Field: "password", Reason: "Password must be at least 6 characters long"},
	}, FieldsOf(err))
}

func TestValidateProfileKeepsUnsetFields(t *testing.T) {
	cur := Profile{Name: "Asha", PhoneNumber: "+919876543210", Address: "Hebbal"}

	p, err := ValidateProfile(ProfileInput{Address: ptr("Yelahanka")}, cur)
	require.NoError(t, err)
	require.Equal(t, Profile{Name: "Asha", PhoneNumber: "+919876543210", Address: "Yelahanka"}, p)

	_, err = ValidateProfile(ProfileInput{PhoneNumber: ptr("abc")}, cur)
	require.Equal(t, []FieldError{{Field: "phoneNumber", Reason: "Please provide a valid phone number"}}, FieldsOf(err))
}
