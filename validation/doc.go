// Package validation provides input and response validation for service clients.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for request and response models.
//
// # Struct Tag Validation
//
//	type User struct {
//	    ID    string `json:"id" validate:"required"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//	err := validation.Validate(user)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("user_id", userID)
//	err := v.Validate()
package validation
