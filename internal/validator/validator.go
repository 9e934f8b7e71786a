// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"heirloom/internal/fieldrules"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_kind", validateAssetKind)
		_ = v.RegisterValidation("address_kind", validateAddressKind)
		_ = v.RegisterValidation("relation", validateRelation)
		_ = v.RegisterValidation("ifsc", validateIFSC)
		_ = v.RegisterValidation("pan", validatePAN)
		_ = v.RegisterValidation("aadhaar", validateAadhaar)
		_ = v.RegisterValidation("in_phone", validateIndianPhone)
		_ = v.RegisterValidation("pincode", validatePincode)
	}
}

func validateAssetKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bank_account", "loan", "deposit", "insurance", "stock", "record":
		return true
	}
	return false
}

func validateAddressKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "home", "office", "other":
		return true
	}
	return false
}

func validateRelation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "spouse", "son", "daughter", "parent", "sibling", "other":
		return true
	}
	return false
}

func validateIFSC(fl validator.FieldLevel) bool {
	return fieldrules.PatternIFSC.MatchString(fl.Field().String())
}

func validatePAN(fl validator.FieldLevel) bool {
	return fieldrules.PatternPAN.MatchString(fl.Field().String())
}

func validateAadhaar(fl validator.FieldLevel) bool {
	return fieldrules.PatternAadhaar.MatchString(fl.Field().String())
}

func validateIndianPhone(fl validator.FieldLevel) bool {
	return fieldrules.PatternPhone.MatchString(fl.Field().String())
}

func validatePincode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
