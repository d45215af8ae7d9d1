package errors_test

import (
	"errors"
	"fmt"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

// Example demonstrates Go 1.13+ error wrapping
func Example() {
	// Create a base error
	baseErr := fmt.Errorf("invalid input value")

	// Wrap the error with context using Go 1.13+ syntax
	wrappedErr := fmt.Errorf("model validation failed: %w", baseErr)

	// Further wrap with operation context
	opErr := fmt.Errorf("LinearRegression.Fit: %w", wrappedErr)

	// Use errors.Is to check for specific error types
	if errors.Is(opErr, baseErr) {
		fmt.Println("Found base error in chain")
	}

	// Unwrap errors to get the underlying cause
	unwrapped := errors.Unwrap(opErr)
	fmt.Printf("Unwrapped: %v\n", unwrapped)

	// Output: Found base error in chain
	// Unwrapped: model validation failed: invalid input value
}

// Example_customErrorTypes demonstrates custom error type handling
func Example_customErrorTypes() {
	// Create a custom error using our error constructors
	schemaErr := lsqErrors.NewSchemaMismatchError("LinearRegression.Predict", 5, 3)

	// Wrap it with additional context
	wrappedErr := fmt.Errorf("prediction failed: %w", schemaErr)

	// Check if error is of specific type using errors.As
	var mismatchErr *lsqErrors.SchemaMismatchError
	if errors.As(wrappedErr, &mismatchErr) {
		fmt.Printf("Schema mismatch: expected %d, got %d\n",
			mismatchErr.Expected, mismatchErr.Got)
	}

	// Output: Schema mismatch: expected 5, got 3
}

// Example_errorComparison demonstrates error comparison patterns
func Example_errorComparison() {
	// Create different types of errors
	notFittedErr := lsqErrors.NewNotFittedError("LinearRegression", "Predict")
	inputErr := lsqErrors.NewInvalidInputError("MSE", "empty vector")

	// Create a sentinel error for comparison
	customErr := errors.New("custom processing error")
	wrappedCustom := fmt.Errorf("operation failed: %w", customErr)

	// Use errors.Is for sentinel error checking
	if errors.Is(wrappedCustom, customErr) {
		fmt.Println("Custom error detected")
	}

	// Use errors.As for type assertions
	var notFitted *lsqErrors.NotFittedError
	if errors.As(notFittedErr, &notFitted) {
		fmt.Printf("Model %s is not fitted for %s\n",
			notFitted.ModelName, notFitted.Method)
	}

	var invalid *lsqErrors.InvalidInputError
	if errors.As(inputErr, &invalid) {
		fmt.Printf("Invalid input in %s: %s\n", invalid.Op, invalid.Reason)
	}

	// Output: Custom error detected
	// Model LinearRegression is not fitted for Predict
	// Invalid input in MSE: empty vector
}

// Example_errorChaining demonstrates practical error chaining across a fit
// pipeline
func Example_errorChaining() {
	simulateFitError := func() error {
		dataErr := lsqErrors.NewInvalidInputError("ReadCSV", "non-numeric field at row 3, column 2")

		prepErr := fmt.Errorf("feature expansion failed: %w", dataErr)

		return fmt.Errorf("curve study failed: %w", prepErr)
	}

	err := simulateFitError()

	var inputErr *lsqErrors.InvalidInputError
	if errors.As(err, &inputErr) {
		fmt.Printf("Root cause in %s\n", inputErr.Op)
	}

	// Output: Root cause in ReadCSV
}
