package circuitbreaker_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/log-output/internal/circuitbreaker"
)

var _ = Describe("Registry", func() {
	var registry *circuitbreaker.Registry

	BeforeEach(func() {
		registry = circuitbreaker.NewRegistry(5, 30*time.Second)
	})

	Describe("Breaker", func() {
		It("should create a closed breaker for an unknown strategy", func() {
			cb := registry.Breaker("cluster-ip")
			Expect(cb).NotTo(BeNil())
			Expect(cb.State()).To(Equal(circuitbreaker.StateClosed))
		})

		It("should return the same breaker for the same strategy", func() {
			Expect(registry.Breaker("fqdn")).To(BeIdenticalTo(registry.Breaker("fqdn")))
		})

		It("should keep strategies apart", func() {
			Expect(registry.Breaker("fqdn")).NotTo(BeIdenticalTo(registry.Breaker("pod-ip")))
		})

		It("should apply the registry threshold and timeout", func() {
			registry = circuitbreaker.NewRegistry(2, 50*time.Millisecond)
			cb := registry.Breaker("pod-ip")

			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.State()).To(Equal(circuitbreaker.StateOpen))

			time.Sleep(60 * time.Millisecond)
			Expect(cb.Allow()).To(BeTrue())
			Expect(cb.State()).To(Equal(circuitbreaker.StateHalfOpen))
		})
	})

	Describe("Concurrent access", func() {
		It("should create a single breaker per key", func() {
			var wg sync.WaitGroup
			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					Expect(registry.Breaker("fqdn")).NotTo(BeNil())
				}()
			}
			wg.Wait()

			Expect(registry.Stats()).To(HaveLen(1))
		})
	})

	Describe("Stats", func() {
		It("should report the state of each breaker", func() {
			registry.Breaker("fqdn")
			cb := registry.Breaker("cluster-ip")
			for i := 0; i < 5; i++ {
				cb.RecordFailure()
			}

			stats := registry.Stats()
			Expect(stats).To(HaveKeyWithValue("fqdn", circuitbreaker.StateClosed))
			Expect(stats).To(HaveKeyWithValue("cluster-ip", circuitbreaker.StateOpen))
		})
	})
})
