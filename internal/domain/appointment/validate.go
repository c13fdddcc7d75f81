package appointment

import "strings"

// Validate checks the six required booking fields. Notes is optional.
func (a *Appointment) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"email", a.Email},
		{"phone", a.Phone},
		{"service", a.Service},
		{"date", a.Date},
		{"time", a.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
