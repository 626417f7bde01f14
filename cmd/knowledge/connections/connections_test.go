package connectionscmder_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	connectionscmder "github.com/vdk888/knowledge/cmd/knowledge/connections"
	"github.com/vdk888/knowledge/pkg/connections"
	"github.com/vdk888/knowledge/pkg/knowledge"
)

var _ = Describe("Markdown", func() {
	It("lists each group and marks empty ones", func() {
		doc := connectionscmder.Markdown(
			knowledge.Concept{Name: "Calculus", Domain: "Mathematics", Difficulty: knowledge.DifficultyIntermediate, Description: "Limits."},
			&connections.Connections{
				Prerequisites: []knowledge.Concept{{Name: "Algebra", Domain: "Mathematics"}},
				Related:       []knowledge.Concept{},
				Dependents:    []knowledge.Concept{},
			},
		)

		Expect(doc).To(HavePrefix("# Calculus\n"))
		Expect(doc).To(ContainSubstring("## Prerequisites\n\n- **Algebra** (Mathematics)\n"))
		Expect(doc).To(ContainSubstring("## Related\n\n_none_"))
	})
})

var _ = Describe("NewConnectionsCmd", func() {
	execute := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := connectionscmder.NewConnectionsCmd()
		cmd.Flags().String("config-dir", GinkgoT().TempDir(), "")
		cmd.Flags().Bool("debug", false, "")
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := cmd.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		GinkgoT().Setenv("DATABASE_URL", "")
		GinkgoT().Setenv("KNOWLEDGE_STORAGE_DATABASE_URL", "")
	})

	It("looks a concept up by name", func() {
		out, err := execute("Calculus", "--plain")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("# Calculus"))
		Expect(out).To(ContainSubstring("**Algebra**"))
	})

	It("looks a concept up by id", func() {
		out, err := execute("1", "--plain")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("# Algebra"))
	})

	It("reports an unknown concept", func() {
		_, err := execute("Alchemy", "--plain")
		Expect(err).To(MatchError("concept not found: Alchemy"))
	})

	It("requires exactly one argument", func() {
		_, err := execute()
		Expect(err).To(HaveOccurred())
	})
})
