package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/config"
)

var _ = Describe("Configer config", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	writeConfig := func(data string) {
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())
	}

	load := func() (*config.Config, error) {
		c, err := config.NewConfiger(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		return c.LoadConfig()
	}

	Describe("LoadConfig", func() {
		It("returns default config when no config file exists", func() {
			cfg, err := load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.NewDefaultConfig()))
		})

		It("loads all config fields", func() {
			writeConfig(`version = 0

[storage]
database_url = "postgres://u:p@db:5432/knowledge"

[storage.breaker]
enabled = false
consecutive_failures = 3
open_timeout = "10s"

[api]
listen = ":9091"

[events]
brokers = ["kafka-1:9092", "kafka-2:9092"]
topic = "progress"

[log]
debug = true
json = true
`)

			cfg, err := load()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.DatabaseURL).To(Equal("postgres://u:p@db:5432/knowledge"))
			Expect(cfg.Storage.Breaker.Enabled).To(BeFalse())
			Expect(cfg.Storage.Breaker.ConsecutiveFailures).To(Equal(uint32(3)))
			Expect(cfg.Storage.Breaker.Timeout()).To(Equal(10 * time.Second))
			Expect(cfg.API.Listen).To(Equal(":9091"))
			Expect(cfg.Events.Brokers).To(Equal([]string{"kafka-1:9092", "kafka-2:9092"}))
			Expect(cfg.Events.Topic).To(Equal("progress"))
			Expect(cfg.Log.Debug).To(BeTrue())
			Expect(cfg.Log.JSON).To(BeTrue())
		})

		It("keeps defaults for fields missing from the file", func() {
			writeConfig(`[api]
listen = ":7000"
`)

			cfg, err := load()
			Expect(err).NotTo(HaveOccurred())
			defaults := config.NewDefaultConfig()
			Expect(cfg.API.Listen).To(Equal(":7000"))
			Expect(cfg.Storage.Breaker).To(Equal(defaults.Storage.Breaker))
			Expect(cfg.Events.Topic).To(Equal(defaults.Events.Topic))
		})

		It("returns error for malformed TOML", func() {
			writeConfig("not valid toml [[[")

			cfg, err := load()
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})

		It("returns error for unsupported config version", func() {
			writeConfig("version = 99\n")

			cfg, err := load()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported config version"))
			Expect(cfg).To(BeNil())
		})

		It("returns error for an invalid breaker timeout", func() {
			writeConfig(`[storage.breaker]
open_timeout = "soon"
`)

			_, err := load()
			Expect(err).To(MatchError(ContainSubstring("open_timeout")))
		})
	})

	Describe("SaveConfig", func() {
		It("persists config to disk", func() {
			cfg := config.NewDefaultConfig()
			cfg.Storage.DatabaseURL = "sqlite://knowledge.db"
			cfg.Events.Brokers = []string{"localhost:9092"}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SaveConfig(cfg)).To(Succeed())

			_, err = os.Stat(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("returns error for nil config", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.SaveConfig(nil)).To(HaveOccurred())
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		var c *config.Configer

		BeforeEach(func() {
			var err error
			c, err = config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())
		})

		It("sets and gets a string value", func() {
			Expect(c.SetConfigValue("storage.database_url", "sqlite:///tmp/k.db")).To(Succeed())

			val, err := c.GetConfigValue("storage.database_url")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("sqlite:///tmp/k.db"))
		})

		It("splits broker lists", func() {
			Expect(c.SetConfigValue("events.brokers", "a:9092, b:9092,")).To(Succeed())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Events.Brokers).To(Equal([]string{"a:9092", "b:9092"}))
		})

		It("rejects invalid values", func() {
			Expect(c.SetConfigValue("log.debug", "maybe")).To(MatchError(ContainSubstring("log.debug")))
			Expect(c.SetConfigValue("storage.breaker.consecutive_failures", "-1")).To(HaveOccurred())
			Expect(c.SetConfigValue("storage.breaker.open_timeout", "later")).To(HaveOccurred())
		})

		It("rejects unknown keys", func() {
			Expect(c.SetConfigValue("proxy.upstream", "x")).To(MatchError(ContainSubstring("unknown config key")))
			_, err := c.GetConfigValue("proxy.upstream")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("returns every key sorted", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements("storage.database_url", "api.listen", "events.brokers", "log.json", "log.file", "log.source"))
			for i := 1; i < len(keys); i++ {
				Expect(keys[i-1] < keys[i]).To(BeTrue())
			}
			for _, k := range keys {
				Expect(config.IsValidConfigKey(k)).To(BeTrue())
			}
		})
	})

	Describe("PresetConfig", func() {
		It("selects the storage backend", func() {
			cfg, err := config.PresetConfig("SQLite")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.DatabaseURL).To(HavePrefix("sqlite://"))

			cfg, err = config.PresetConfig("postgres")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.DatabaseURL).To(HavePrefix("postgres://"))

			cfg, err = config.PresetConfig("memory")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Storage.DatabaseURL).To(BeEmpty())
		})

		It("rejects unknown presets", func() {
			_, err := config.PresetConfig("mongo")
			Expect(err).To(MatchError(ContainSubstring("unknown preset")))
		})
	})
})
