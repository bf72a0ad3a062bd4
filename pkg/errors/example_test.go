package errors_test

import (
	"fmt"

	"github.com/labelmint/labelmint/pkg/errors"
)

func ExampleNew() {
	err := errors.New(errors.ErrCodeInvalidConfig, "canvas width %d out of range [%d, %d]", 900, 200, 800)

	fmt.Println(err)
	fmt.Println("code:", errors.GetCode(err))
	fmt.Println("user message:", errors.UserMessage(err))
	// Output:
	// INVALID_CONFIG: canvas width 900 out of range [200, 800]
	// code: INVALID_CONFIG
	// user message: canvas width 900 out of range [200, 800]
}

func ExampleWrap() {
	cause := fmt.Errorf("no such file")
	err := errors.Wrap(errors.ErrCodeFileNotFound, cause, "open layout.toml")

	fmt.Println(err)
	fmt.Println(errors.Is(err, errors.ErrCodeFileNotFound))
	// Output:
	// FILE_NOT_FOUND: open layout.toml: no such file
	// true
}
