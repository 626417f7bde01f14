package seedcmder_test

import (
	"bytes"
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	seedcmder "github.com/vdk888/knowledge/cmd/knowledge/seed"
	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage/backend"
)

var _ = Describe("NewSeedCmd", func() {
	var configDir string

	BeforeEach(func() {
		configDir = GinkgoT().TempDir()
		GinkgoT().Setenv("DATABASE_URL", "")
		GinkgoT().Setenv("KNOWLEDGE_STORAGE_DATABASE_URL", "")
	})

	execute := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := seedcmder.NewSeedCmd()
		cmd.Flags().String("config-dir", configDir, "")
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := cmd.Execute()
		return out.String(), err
	}

	It("requires a database url", func() {
		_, err := execute()
		Expect(err).To(MatchError(ContainSubstring("no database url configured")))
	})

	It("seeds a sqlite store once", func() {
		url := "sqlite://" + filepath.Join(GinkgoT().TempDir(), "k.db")

		out, err := execute("--database-url", url)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Seeded"))

		_, err = execute("--database-url", url)
		Expect(err).NotTo(HaveOccurred())

		store, err := backend.Open(context.Background(), url)
		Expect(err).NotTo(HaveOccurred())
		defer store.Close()

		concepts, err := store.GetConcepts(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(concepts).To(HaveLen(len(knowledge.SeedDataset().Concepts)))
	})
})
