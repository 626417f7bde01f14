package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/cliui"
)

var _ = Describe("Step", func() {
	It("returns the error of fn and marks the line", func() {
		var buf bytes.Buffer
		boom := errors.New("boom")

		err := cliui.Step(&buf, "Seeding", func() error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(buf.String()).To(ContainSubstring("Seeding"))
		Expect(buf.String()).To(ContainSubstring("✗"))
	})

	It("marks success", func() {
		var buf bytes.Buffer
		Expect(cliui.Step(&buf, "Loading", func() error { return nil })).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("✓"))
	})
})

var _ = Describe("FormatDuration", func() {
	It("uses milliseconds below a second", func() {
		Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
	})

	It("uses seconds with one decimal above a second", func() {
		Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
	})
})

var _ = Describe("RenderMarkdown", func() {
	It("keeps the text of the document", func() {
		out, err := cliui.RenderMarkdown("# Calculus\n\n- Algebra\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Calculus"))
		Expect(out).To(ContainSubstring("Algebra"))
	})
})
