package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"video-catalog/internal/models"
	"video-catalog/internal/repository"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		return models.ValidRating(fl.Field().String())
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1000 && year <= 9999
	})
	_ = v.RegisterValidation("cast_member_type", func(fl validator.FieldLevel) bool {
		return models.CastMemberType(fl.Field().Int()).Valid()
	})

	return v
}

// validateStruct runs the struct tags of in and collects the failures.
func validateStruct(ctx context.Context, in any) (*ValidationError, error) {
	verr := NewValidationError()

	err := validate.StructCtx(ctx, in)
	if err == nil {
		return verr, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate input: %w", err)
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), messageFor(fe))
	}
	return verr, nil
}

func messageFor(fe validator.FieldError) string {
	attr := attrName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", attr, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s must have at least %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", attr, fe.Param())
	case "year":
		return fmt.Sprintf("The %s does not match the format Y.", attr)
	case "rating", "cast_member_type", "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}

// requireRelation enforces a required relation field on create.
func requireRelation(verr *ValidationError, field string, ids []string) {
	if len(ids) == 0 && !verr.Has(field) {
		verr.Add(field, fmt.Sprintf("The %s field is required.", attrName(field)))
	}
}

// checkExists rejects ids that are unknown or soft deleted.
func checkExists[M any](ctx context.Context, verr *ValidationError, repo repository.CrudRepository[M], field string, ids []string) error {
	if len(ids) == 0 || verr.Has(field) {
		return nil
	}

	unique := dedupe(ids)
	count, err := repo.CountExisting(ctx, unique)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if count != int64(len(unique)) {
		verr.Add(field, fmt.Sprintf("The selected %s is invalid.", attrName(field)))
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func attrName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
