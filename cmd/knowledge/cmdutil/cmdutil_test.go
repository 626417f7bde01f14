package cmdutil_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/cmd/knowledge/cmdutil"
	"github.com/vdk888/knowledge/pkg/config"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("config-dir", "", "")
	return cmd
}

var _ = Describe("ResolveConfig", func() {
	It("reads log settings from the config dir and environment", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[log]\nsource = true\n"), 0o600)).To(Succeed())
		GinkgoT().Setenv("KNOWLEDGE_LOG_FILE", filepath.Join(dir, "serve.log"))

		cmd := newCmd()
		Expect(cmd.Flags().Set("config-dir", dir)).To(Succeed())

		cfg, err := cmdutil.ResolveConfig(cmd)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Log.Source).To(BeTrue())
		Expect(cfg.Log.File).To(Equal(filepath.Join(dir, "serve.log")))
	})
})

var _ = Describe("NewLogger", func() {
	It("needs no cleanup without a log file", func() {
		l, closeLog, err := cmdutil.NewLogger(newCmd(), config.NewDefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(l).NotTo(BeNil())
		Expect(closeLog()).To(Succeed())
	})

	It("appends JSON records to the log file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "serve.log")
		cfg := config.NewDefaultConfig()
		cfg.Log.File = path
		cfg.Log.Source = true

		l, closeLog, err := cmdutil.NewLogger(newCmd(), cfg)
		Expect(err).NotTo(HaveOccurred())
		l.Info("starting API server", "listen", ":8081")
		l.Debug("hidden at info level")
		Expect(closeLog()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		Expect(lines).To(HaveLen(1))

		var record map[string]any
		Expect(json.Unmarshal([]byte(lines[0]), &record)).To(Succeed())
		Expect(record).To(HaveKeyWithValue("msg", "starting API server"))
		Expect(record).To(HaveKeyWithValue("listen", ":8081"))
		Expect(record).To(HaveKey("source"))
	})

	It("writes debug records to the file with --debug", func() {
		path := filepath.Join(GinkgoT().TempDir(), "debug.log")
		cfg := config.NewDefaultConfig()
		cfg.Log.File = path

		cmd := newCmd()
		Expect(cmd.Flags().Set("debug", "true")).To(Succeed())

		l, closeLog, err := cmdutil.NewLogger(cmd, cfg)
		Expect(err).NotTo(HaveOccurred())
		l.Debug("computed recommendations")
		Expect(closeLog()).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("computed recommendations"))
	})

	It("fails when the log file cannot be opened", func() {
		cfg := config.NewDefaultConfig()
		cfg.Log.File = filepath.Join(GinkgoT().TempDir(), "missing", "dir", "serve.log")

		_, _, err := cmdutil.NewLogger(newCmd(), cfg)
		Expect(err).To(MatchError(ContainSubstring("opening log file")))
	})
})
