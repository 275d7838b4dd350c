package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/elimu-cbc/quiz-service/internal/errors"
	"github.com/elimu-cbc/quiz-service/internal/models"
)

// Validator wraps go-playground struct validation with the service's custom
// tag registrations. Core generation code stays permissive (it degrades via
// defaults); this strict validation is applied at the HTTP boundary only.
type Validator struct {
	structValidator *validator.Validate
}

func NewValidator() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)
	return &Validator{structValidator: structValidator}
}

// Validate validates struct tags, converting failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("confidence_level", validateConfidenceLevel)
	validate.RegisterValidation("grade_level", validateGradeLevel)

	// Report field names from json tags for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	validTypes := []models.QuestionType{
		models.MultipleChoice,
		models.TrueFalse,
		models.ShortAnswer,
		models.FillBlank,
		models.Matching,
		models.Ordering,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateConfidenceLevel(fl validator.FieldLevel) bool {
	validLevels := []models.ConfidenceLevel{
		models.ConfidenceLow,
		models.ConfidenceMedium,
		models.ConfidenceHigh,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

// CBC grades: pre-primary PP1-PP2, primary grade1-grade6, junior secondary
// grade7-grade9.
func validateGradeLevel(fl validator.FieldLevel) bool {
	validGrades := []string{
		"pp1", "pp2",
		"grade1", "grade2", "grade3", "grade4", "grade5", "grade6",
		"grade7", "grade8", "grade9",
	}

	value := strings.ToLower(fl.Field().String())
	for _, validGrade := range validGrades {
		if validGrade == value {
			return true
		}
	}
	return false
}
