package assignment

// AssignmentError is a custom error type for assignment generation errors
type AssignmentError string

// Error implements the error interface
func (e AssignmentError) Error() string {
	return string(e)
}

// Define errors. Detailed errors wrap these, so match with errors.Is.
const (
	// ErrValidation indicates malformed input the caller can fix
	ErrValidation AssignmentError = "invalid assignment input"

	// ErrInfeasibleConstraints indicates the exclusions admit no valid assignment
	ErrInfeasibleConstraints AssignmentError = "exclusions admit no valid assignment"
)
