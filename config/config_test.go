package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir string
		origDir string
	)

	writeConfig := func(content string) string {
		path := filepath.Join(tempDir, "config.yaml")
		err := os.WriteFile(path, []byte(content), 0644)
		Expect(err).NotTo(HaveOccurred())
		return path
	}

	BeforeEach(func() {
		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
		os.RemoveAll(tempDir)
		os.Unsetenv("FETCHER_NAMESPACE")
		os.Unsetenv("FETCHER_ATTEMPT_TIMEOUT")
	})

	Describe("Load", func() {
		Context("with a valid config file", func() {
			var path string

			BeforeEach(func() {
				path = writeConfig(`
server:
  address: ":8080"
  environment: "dev"

logging:
  level: "debug"

fetcher:
  namespace: "exercises"
  service: "ping-pong-svc"
  label_selector: "app=ping-pong"
  service_port: 1234
  attempt_timeout: "2s"
  chain_budget: "6s"
  prefer_last_good: true
  strategies: ["cluster-ip", "pod-ip"]
  lookup:
    mode: "api"
  breaker:
    threshold: 3
    reset_timeout: "10s"

generator:
  file: "/tmp/status.txt"
  interval: "1s"
`)
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())
				Expect(cfg.Logging.Level).To(Equal("debug"))
			})

			It("should parse the fetcher section", func() {
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fetcher.Strategies).To(Equal([]string{"cluster-ip", "pod-ip"}))
				Expect(cfg.Fetcher.AttemptTimeoutDuration()).To(Equal(2 * time.Second))
				Expect(cfg.Fetcher.ChainBudgetDuration()).To(Equal(6 * time.Second))
				Expect(cfg.Fetcher.PreferLastGood).To(BeTrue())
				Expect(cfg.Fetcher.Lookup.Mode).To(Equal(config.LookupAPI))
				Expect(cfg.Fetcher.Breaker.Threshold).To(Equal(3))
				Expect(cfg.Fetcher.Breaker.ResetTimeoutDuration()).To(Equal(10 * time.Second))
			})

			It("should keep defaults for omitted sections", func() {
				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fetcher.Path).To(Equal("/pongs"))
				Expect(cfg.Fetcher.Field).To(Equal("pongs"))
				Expect(cfg.PingPong.Address).To(Equal(":8002"))
				Expect(cfg.Todo.Store).To(Equal(config.StoreMemory))
				Expect(cfg.Generator.IntervalDuration()).To(Equal(time.Second))
			})

			It("should let the environment override the file", func() {
				os.Setenv("FETCHER_NAMESPACE", "staging-exercises")

				cfg, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fetcher.Namespace).To(Equal("staging-exercises"))
			})
		})

		Context("without a config file", func() {
			BeforeEach(func() {
				Expect(os.Chdir(tempDir)).To(Succeed())
			})

			It("should use defaults", func() {
				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fetcher.Service).To(Equal("ping-pong-svc"))
				Expect(cfg.Fetcher.ServicePort).To(Equal(1234))
				Expect(cfg.Fetcher.AttemptTimeoutDuration()).To(Equal(5 * time.Second))
				Expect(cfg.Fetcher.ChainBudgetDuration()).To(BeZero())
				Expect(cfg.Fetcher.Strategies).To(Equal([]string{"fqdn", "namespaced-dns", "cluster-ip", "pod-ip"}))
				Expect(cfg.Fetcher.Lookup.Mode).To(Equal(config.LookupKubectl))
				Expect(cfg.Generator.File).To(Equal("/app/shared/status.txt"))
			})

			It("should read settings from the environment", func() {
				os.Setenv("FETCHER_ATTEMPT_TIMEOUT", "250ms")

				cfg, err := config.Load("")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fetcher.AttemptTimeoutDuration()).To(Equal(250 * time.Millisecond))
			})

			It("should fail for an explicit path that does not exist", func() {
				_, err := config.Load(filepath.Join(tempDir, "missing.yaml"))
				Expect(err).To(HaveOccurred())
			})
		})

		DescribeTable("rejects invalid settings",
			func(content string) {
				_, err := config.Load(writeConfig(content))
				Expect(err).To(HaveOccurred())
			},
			Entry("unknown environment", "server:\n  environment: \"qa\"\n"),
			Entry("bad log level", "logging:\n  level: \"loud\"\n"),
			Entry("unknown strategy", "fetcher:\n  strategies: [\"random\"]\n"),
			Entry("bad timeout", "fetcher:\n  attempt_timeout: \"soon\"\n"),
			Entry("negative budget", "fetcher:\n  chain_budget: \"-1s\"\n"),
			Entry("port out of range", "fetcher:\n  service_port: 70000\n"),
			Entry("relative path", "fetcher:\n  path: \"pongs\"\n"),
			Entry("unknown lookup mode", "fetcher:\n  lookup:\n    mode: \"magic\"\n"),
			Entry("unknown todo store", "todo:\n  store: \"disk\"\n"),
			Entry("redis without address", "todo:\n  store: \"redis\"\n  redis:\n    address: \"\"\n"),
			Entry("bad server address", "server:\n  address: \"nope\"\n"),
		)
	})
})
