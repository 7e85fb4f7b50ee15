package validation

import "strings"

// Registration is a signup payload after required-field and confirmation
// checks.
type Registration struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Address     string `json:"address" validate:"required,max=200"`
	Password    string `json:"password" validate:"required,min=6"`
}

// Normalize trims free text and lower-cases the email in place.
func (r *Registration) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
}

// ValidateRegistration normalizes and checks a signup payload.
func ValidateRegistration(r *Registration) error {
	r.Normalize()
	return check(r)
}

// ProfileInput is a profile update. Only these three fields can change.
type ProfileInput struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// Profile is the validated result of a profile update.
type Profile struct {
	Name        string `json:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Address     string `json:"address" validate:"required,max=200"`
}

// ValidateProfile merges the update over cur and checks the result.
func ValidateProfile(in ProfileInput, cur Profile) (Profile, error) {
	p := Profile{
		Name:        strings.TrimSpace(*or(in.Name, cur.Name)),
		PhoneNumber: strings.TrimSpace(*or(in.PhoneNumber, cur.PhoneNumber)),
		Address:     strings.TrimSpace(*or(in.Address, cur.Address)),
	}
	if err := check(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
