package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	bankNameRe      = regexp.MustCompile(`^[\p{L}0-9 &'.\-]{2,64}$`)
	accountNumberRe = regexp.MustCompile(`^[0-9 \-]{4,34}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations adds the wallet tags and the decimal type to v.
func RegisterValidations(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("bank_name", validateBankName)
	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("cents", validateCents)
}

// decimalValue exposes a decimal to numeric tags like gt=0.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// validateBankName allows letters, digits, spaces, and & ' . -
func validateBankName(fl validator.FieldLevel) bool {
	return bankNameRe.MatchString(fl.Field().String())
}

// validateCents rejects amounts with more than two decimal places. Decimal
// fields arrive here as float64 through decimalValue.
func validateCents(fl validator.FieldLevel) bool {
	var d decimal.Decimal
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		d = decimal.NewFromFloat(fl.Field().Float())
	case reflect.String:
		parsed, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		d = parsed
	default:
		return false
	}
	return d.Equal(d.Round(2))
}

func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberRe.MatchString(fl.Field().String())
}

// SanitizeStruct trims whitespace from every exported string field
// (including *string and embedded structs) of a struct pointer. Values are
// stored as plain text, so no escaping happens here.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		case reflect.Struct:
			if rv.Type().Field(i).Anonymous {
				sanitizeFields(f)
			}
		}
	}
}

func sanitize(s string) string {
	return strings.TrimSpace(s)
}
