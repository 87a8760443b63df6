package storage

import (
	"testing"

	"go.uber.org/goleak"
)

// Every backend must release its goroutines on Close.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
