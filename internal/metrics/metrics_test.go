package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("RecordAttempt", func() {
		It("should count attempts per strategy and outcome", func() {
			m.RecordAttempt("fqdn", "timeout", 5*time.Second)
			m.RecordAttempt("fqdn", "dns", time.Millisecond)
			m.RecordAttempt("cluster-ip", metrics.OutcomeOK, 10*time.Millisecond)

			snap := m.Snapshot()
			Expect(snap.Strategies["fqdn"].Attempts).To(Equal(int64(2)))
			Expect(snap.Strategies["fqdn"].Outcomes).To(HaveKeyWithValue("timeout", int64(1)))
			Expect(snap.Strategies["fqdn"].Outcomes).To(HaveKeyWithValue("dns", int64(1)))
			Expect(snap.Strategies["cluster-ip"].Outcomes).To(HaveKeyWithValue(metrics.OutcomeOK, int64(1)))
		})

		It("should not sample latency for skipped attempts", func() {
			m.RecordAttempt("pod-ip", "resolution", 0)

			snap := m.Snapshot()
			Expect(snap.Strategies["pod-ip"].Attempts).To(Equal(int64(1)))
			Expect(snap.Strategies["pod-ip"].AvgResponse).To(BeZero())
		})

		It("should calculate percentiles", func() {
			for i := 1; i <= 100; i++ {
				m.RecordAttempt("fqdn", metrics.OutcomeOK, time.Duration(i)*time.Millisecond)
			}

			sm := m.Snapshot().Strategies["fqdn"]
			Expect(sm.P50Response).To(BeNumerically("~", 50*time.Millisecond, time.Millisecond))
			Expect(sm.P95Response).To(BeNumerically("~", 95*time.Millisecond, time.Millisecond))
			Expect(sm.P99Response).To(BeNumerically("~", 99*time.Millisecond, time.Millisecond))
		})

		It("should keep a bounded number of samples", func() {
			for i := 1; i <= 1500; i++ {
				m.RecordAttempt("fqdn", metrics.OutcomeOK, time.Duration(i)*time.Millisecond)
			}

			Expect(m.Snapshot().Strategies["fqdn"].AvgResponse).To(BeNumerically(">", 500*time.Millisecond))
		})
	})

	Describe("RecordChain", func() {
		It("should split successful and exhausted chains", func() {
			m.RecordChain("cluster-ip", true)
			m.RecordChain("", false)
			m.RecordChain("fqdn", true)

			snap := m.Snapshot()
			Expect(snap.Chains).To(Equal(int64(3)))
			Expect(snap.Succeeded).To(Equal(int64(2)))
			Expect(snap.Exhausted).To(Equal(int64(1)))
			Expect(snap.LastSuccess).To(Equal("fqdn"))
		})
	})

	Describe("Snapshot", func() {
		It("should handle empty metrics", func() {
			snap := m.Snapshot()
			Expect(snap.Chains).To(BeZero())
			Expect(snap.Strategies).To(BeEmpty())
		})

		It("should return an independent copy", func() {
			m.RecordAttempt("fqdn", "timeout", time.Second)
			snap := m.Snapshot()

			m.RecordAttempt("fqdn", "timeout", time.Second)
			Expect(snap.Strategies["fqdn"].Outcomes["timeout"]).To(Equal(int64(1)))
		})
	})
})
