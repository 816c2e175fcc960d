// Package apperr carries business-rule violations as structured values so
// handlers never parse error strings to find out what went wrong.
package apperr

import "fmt"

type Error struct {
	Status  int    // HTTP status to respond with
	Code    string // stable machine-readable code
	Message string
	Issues  any // optional field-level detail
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// ----- 400 validation -----

func BadBody(issues any) *Error {
	return &Error{Status: 400, Code: "BAD_BODY", Message: "invalid payload", Issues: issues}
}

func BadID() *Error {
	return New(400, "BAD_ID", "invalid id")
}

func NoCompany() *Error {
	return New(400, "NO_COMPANY", "user has no company assigned")
}

func CompanyIDRequired() *Error {
	return New(400, "COMPANY_ID_REQUIRED", "companyId is required for SUPER_ADMIN")
}

func ProductNotFound(invalid []uint) *Error {
	return &Error{Status: 400, Code: "PRODUCT_NOT_FOUND", Message: "order references unknown products", Issues: invalid}
}

func BaseEmpty() *Error {
	return New(400, "BASE_EMPTY", "base order has no items")
}

// ----- authorization -----

// Forbidden is used when the role itself is not allowed for the operation.
// Tenant mismatches respond NotFound instead, so out-of-scope resources are
// indistinguishable from missing ones.
func Forbidden() *Error {
	return New(403, "FORBIDDEN", "forbidden")
}

func NotFound(what string) *Error {
	return New(404, "NOT_FOUND", what+" not found")
}

// ----- 409 state machine / integrity -----

func OrderFinalState(current string) *Error {
	return New(409, "ORDER_FINAL_STATE", "order already finalized: "+current)
}

func InvalidTransition(from, to string) *Error {
	return New(409, "INVALID_TRANSITION", from+" -> "+to)
}

func EmailTaken() *Error {
	return New(409, "EMAIL_TAKEN", "email already registered")
}
