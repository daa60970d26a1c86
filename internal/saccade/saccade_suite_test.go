package saccade_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSaccade(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Saccade Suite")
}
