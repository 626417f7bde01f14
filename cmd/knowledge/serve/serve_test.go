package servecmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	servecmder "github.com/vdk888/knowledge/cmd/knowledge/serve"
)

var _ = Describe("NewServeCmd", func() {
	It("registers the shared flags with their defaults", func() {
		cmd := servecmder.NewServeCmd()

		listen := cmd.Flags().Lookup("listen")
		Expect(listen).NotTo(BeNil())
		Expect(listen.Shorthand).To(Equal("l"))
		Expect(listen.DefValue).To(Equal(":8081"))

		Expect(cmd.Flags().Lookup("database-url")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("breaker-failures").DefValue).To(Equal("5"))
		Expect(cmd.Flags().Lookup("events-topic").DefValue).To(Equal("knowledge.progress"))
		Expect(cmd.Flags().Lookup("events-brokers")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("log-json")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("log-file")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("no-mcp")).NotTo(BeNil())
	})

	It("rejects positional arguments", func() {
		cmd := servecmder.NewServeCmd()
		Expect(cmd.Args(cmd, []string{"extra"})).To(HaveOccurred())
	})
})
