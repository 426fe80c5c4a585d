package fatomic

import (
	"os"
)

// WriteFile is used just to not break go build on Windows. We do not support
// atomic rename on Windows. This project targets Linux hosts only; the
// fallback merely lets developers on Windows exercise the rest of the
// program.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err = f.Write(data); err != nil {
		return err
	}
	return nil
}
