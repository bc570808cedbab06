package service

import (
	"os"
	"testing"

	"github.com/blacksmith/atlas/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
