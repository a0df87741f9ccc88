package fid_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFID(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FID Suite")
}
