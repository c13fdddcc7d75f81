package appointment

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	ok := &Appointment{Name: "A", Email: "a@x.com", Phone: "111", Service: "Dental", Date: "2024-05-01", Time: "10:00"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid appointment rejected: %v", err)
	}

	err := (&Appointment{Name: " ", Phone: "111", Date: "2024-05-01", Notes: "n/a"}).Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if want := []string{"name", "email", "service", "time"}; !reflect.DeepEqual(ve.Fields, want) {
		t.Fatalf("fields = %v, want %v", ve.Fields, want)
	}
	if ve.Error() != "missing required fields: name, email, service, time" {
		t.Fatalf("message = %q", ve.Error())
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("database is locked")
	infra := fmt.Errorf("wrapped: %w", &InfrastructureError{Op: "create appointment", Err: cause})

	if !IsInfrastructure(infra) || IsValidation(infra) {
		t.Fatalf("infrastructure error misclassified")
	}
	if !errors.Is(infra, cause) {
		t.Fatalf("InfrastructureError must unwrap to its cause")
	}
	if got := (&InfrastructureError{Op: "list", Err: cause}).Error(); got != "list: database is locked" {
		t.Fatalf("message = %q", got)
	}

	val := &ValidationError{Fields: []string{"name"}}
	if !IsValidation(val) || IsInfrastructure(val) {
		t.Fatalf("validation error misclassified")
	}
}
