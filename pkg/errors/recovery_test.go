package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	lsqErrors "github.com/mizuhira/lsqfit/pkg/errors"
)

func TestRecoverConvertsPanic(t *testing.T) {
	fn := func() (err error) {
		defer lsqErrors.Recover(&err, "TestOp")
		panic("boom")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}

	var panicErr *lsqErrors.PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOp" {
		t.Errorf("expected operation 'TestOp', got '%s'", panicErr.Operation)
	}
	if panicErr.PanicValue != "boom" {
		t.Errorf("expected panic value 'boom', got '%v'", panicErr.PanicValue)
	}
	if panicErr.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestRecoverPreservesExistingError(t *testing.T) {
	original := fmt.Errorf("original failure")
	fn := func() (err error) {
		defer lsqErrors.Recover(&err, "TestOp")
		err = original
		panic("after error")
	}

	err := fn()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, original) {
		t.Errorf("original error lost from chain: %v", err)
	}
	if !strings.Contains(err.Error(), "after error") {
		t.Errorf("panic message lost: %v", err)
	}
}

func TestRecoverNoopWithoutPanic(t *testing.T) {
	fn := func() (err error) {
		defer lsqErrors.Recover(&err, "TestOp")
		return nil
	}
	if err := fn(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	err := lsqErrors.SafeExecute("divide", func() error {
		var xs []int
		_ = xs[3]
		return nil
	})
	if err == nil {
		t.Fatal("expected error from out-of-range panic")
	}

	err = lsqErrors.SafeExecute("ok", func() error { return nil })
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
