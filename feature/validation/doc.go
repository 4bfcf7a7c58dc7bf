// Package validation provides struct-tag validation with extra rules for
// list-typed fields.
//
// It configures a go-playground/validator instance so that models carrying
// slice fields can express per-element constraints directly in tags.
//
// # Custom Rules
//
//   - listmatch=<pattern>: every string element must match the pattern.
//   - listdeny=<pattern>: no string element may match the pattern.
//
// Element length and numeric range constraints use the validator's built-in
// dive support, e.g. `validate:"dive,min=2,max=10"` on a []string field or
// `validate:"dive,gte=0,lte=100"` on a numeric slice.
//
// # Usage
//
//	type Payload struct {
//	    Tags   []string `validate:"required,dive,min=1,max=32"`
//	    Emails []string `validate:"dive,email"`
//	    Codes  []string `validate:"listmatch=^[A-Z]{3}$"`
//	}
//
//	v := validation.New()
//	if err := v.Struct(payload); err != nil {
//	    for _, msg := range validation.Describe(err) {
//	        fmt.Println(msg)
//	    }
//	}
package validation
