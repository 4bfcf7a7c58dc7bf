package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// patternCache holds compiled tag patterns; tags are static so the cache
// only ever grows by the number of distinct patterns in the program.
var patternCache sync.Map

// New returns a validator with the list rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty rule names, which are constants here.
	_ = v.RegisterValidation("listmatch", listMatch)
	_ = v.RegisterValidation("listdeny", listDeny)

	return v
}

// listMatch requires every string element of the field to match the pattern
// given as the tag parameter.
func listMatch(fl validator.FieldLevel) bool {
	return checkList(fl, true)
}

// listDeny requires that no string element of the field matches the pattern.
func listDeny(fl validator.FieldLevel) bool {
	return checkList(fl, false)
}

func checkList(fl validator.FieldLevel, want bool) bool {
	re, err := compilePattern(fl.Param())
	if err != nil {
		// A broken pattern in a tag is a programming error; fail closed so
		// it surfaces in tests instead of silently passing everything.
		return false
	}

	field := fl.Field()
	if field.Kind() != reflect.Slice && field.Kind() != reflect.Array {
		return false
	}

	for i := 0; i < field.Len(); i++ {
		elem := field.Index(i)
		if elem.Kind() != reflect.String {
			return false
		}
		if re.MatchString(elem.String()) != want {
			return false
		}
	}
	return true
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// Describe converts a validation error into human-readable messages, one per
// failed field. Non-validator errors are passed through as a single message.
func Describe(err error) []string {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return msgs
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "listmatch":
		return fmt.Sprintf("%s: every element must match %q", fe.Field(), fe.Param())
	case "listdeny":
		return fmt.Sprintf("%s: elements matching %q are not allowed", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
