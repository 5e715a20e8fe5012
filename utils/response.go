package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}

func CreateError(status int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(status, iris.Map{"error": title, "message": detail})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Internal Server Error", "Something went wrong, please try again.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

// CreateUnauthorized tells the caller to log in; no resource lookup
// has happened at this point.
func CreateUnauthorized(ctx iris.Context) {
	CreateError(iris.StatusUnauthorized, "Unauthorized", "Authentication required.", ctx)
}

// CreateForbidden carries the fixed per-resource denial reason.
func CreateForbidden(reason string, ctx iris.Context) {
	CreateError(iris.StatusForbidden, "Forbidden", reason, ctx)
}

// FieldError returns a 400 with the offending field named; also used
// for store-level unique/FK violations.
func FieldError(field, message string, ctx iris.Context) {
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
		"error":  "Validation Error",
		"errors": iris.Map{field: message},
	})
}

// HandleValidationErrors maps validator failures to a field->message
// body. Anything else that broke ReadJSON is a malformed payload.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := iris.Map{}
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field()[:1])+fieldErr.Field()[1:]] = validationMessage(fieldErr)
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":  "Validation Error",
			"errors": fields,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Validation Error", "Invalid request payload.", ctx)
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "min":
		return "Value is below the allowed minimum (" + fieldErr.Param() + ")."
	case "max":
		return "Value is above the allowed maximum (" + fieldErr.Param() + ")."
	case "oneof":
		return "Must be one of: " + fieldErr.Param() + "."
	case "latitude":
		return "Latitude must be between -90 and 90."
	case "longitude":
		return "Longitude must be between -180 and 180."
	default:
		return "Invalid value."
	}
}
