package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission   = &CustomError{"You do not have permission"}
	ErrMissingToken   = &CustomError{"tableToken is required"}
	ErrMissingPrinter = &CustomError{"printer identity missing from request"}
)
