package common

import "fmt"

var (
	ErrOutputDirNotFound = fmt.Errorf("output directory does not exist")
	ErrEmptyInput        = fmt.Errorf("no input")
)
