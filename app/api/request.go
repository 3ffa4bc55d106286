package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Let numeric tags (gte, lte, ...) apply to decimal amounts.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// NullableID validates as its id pointer, so an explicit 0 still reaches
	// gt=0; unset or null counts as absent.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(NullableID); ok && n.Value != nil {
			return n.Value
		}
		return nil
	}, NullableID{})

	return v
}

// NullableID is an optional id in a JSON payload that tells an explicit null
// apart from an absent field.
type NullableID struct {
	Set   bool  // present in the payload, possibly as null
	Value *uint // nil when null
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// IsNull reports whether the payload set the field to null.
func (n NullableID) IsNull() bool {
	return n.Set && n.Value == nil
}

// DecodeJSON decodes the request body into dst and validates it against its
// `validate` tags. The returned error message is safe to send to clients.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("Request body too large")
		}
		return errors.New("Invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return describeValidation(err)
	}
	return nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.New("Invalid request body")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
