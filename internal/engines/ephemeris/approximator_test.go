package ephemeris

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
)

var _ = Describe("Julian Day conversion", func() {
	It("should map the J2000 epoch to 2451545.0", func() {
		t := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
		Expect(JulianDay(t)).To(BeNumerically("~", J2000, 1e-9))
		Expect(JulianCenturies(J2000)).To(BeZero())
	})

	It("should map the Unix epoch to 2440587.5", func() {
		Expect(JulianDay(time.Unix(0, 0))).To(BeNumerically("~", UnixEpochJD, 1e-9))
	})

	It("should round-trip instants to the millisecond", func() {
		t := time.Date(1987, time.March, 14, 6, 45, 30, 250_000_000, time.UTC)
		back := TimeFromJulianDay(JulianDay(t))
		Expect(back.Sub(t).Abs()).To(BeNumerically("<", time.Millisecond))
	})
})

var _ = Describe("Approximator", func() {
	var approx *Approximator

	BeforeEach(func() {
		approx = NewApproximator()
	})

	Context("longitude range", func() {
		It("should always normalize into [0,360)", func() {
			for _, planet := range v1alpha1.Planets {
				for jd := J2000 - 200*DaysPerCentury/10; jd < J2000+200*DaysPerCentury/10; jd += 811.37 {
					pos := approx.Position(planet, jd)
					Expect(pos.Longitude).To(BeNumerically(">=", 0), "%s at %f", planet, jd)
					Expect(pos.Longitude).To(BeNumerically("<", 360), "%s at %f", planet, jd)
					Expect(pos.Sign).To(Equal(v1alpha1.SignOf(pos.Longitude)))
					Expect(pos.DegreeInSign).To(BeNumerically("<", 30))
					Expect(pos.KeplerConverged).To(BeTrue())
				}
			}
		})
	})

	Context("reference positions at J2000", func() {
		It("should place the Sun near 280.4 degrees", func() {
			pos := approx.Position(v1alpha1.Sun, J2000)
			Expect(pos.Longitude).To(BeNumerically("~", 280.38, 0.1))
			Expect(pos.Sign).To(Equal(v1alpha1.Capricorn))
			Expect(pos.Retrograde).To(BeFalse())
			Expect(pos.Distance).To(BeNumerically("~", 0.983, 0.005))
		})

		It("should place Saturn in Taurus near 45.5 degrees and direct", func() {
			pos := approx.Position(v1alpha1.Saturn, J2000)
			Expect(pos.Longitude).To(BeNumerically("~", 45.5, 0.75))
			Expect(pos.Sign).To(Equal(v1alpha1.Taurus))
			Expect(pos.Retrograde).To(BeFalse())
			Expect(pos.Distance).To(BeNumerically("~", 9.18, 0.1))
		})

		It("should place the mean node in Leo and keep Ketu opposite", func() {
			rahu := approx.Position(v1alpha1.Rahu, J2000)
			ketu := approx.Position(v1alpha1.Ketu, J2000)
			Expect(rahu.Longitude).To(BeNumerically("~", 125.04, 0.05))
			Expect(rahu.Sign).To(Equal(v1alpha1.Leo))
			Expect(v1alpha1.NormalizeLongitude(ketu.Longitude - rahu.Longitude)).To(BeNumerically("~", 180, 1e-9))
			Expect(rahu.Retrograde).To(BeTrue())
			Expect(ketu.Retrograde).To(BeTrue())
			Expect(rahu.Distance).To(BeZero())
		})
	})

	Context("retrograde heuristic", func() {
		It("should never flag the luminaries", func() {
			for jd := J2000; jd < J2000+400; jd += 3.3 {
				Expect(approx.Position(v1alpha1.Sun, jd).Retrograde).To(BeFalse())
				Expect(approx.Position(v1alpha1.Moon, jd).Retrograde).To(BeFalse())
			}
		})

		It("should flag Saturn exactly inside its mean anomaly window", func() {
			el := elementTable[v1alpha1.Saturn]
			Expect(el.isRetrograde(95)).To(BeFalse())
			Expect(el.isRetrograde(95.01)).To(BeTrue())
			Expect(el.isRetrograde(180)).To(BeTrue())
			Expect(el.isRetrograde(264.99)).To(BeTrue())
			Expect(el.isRetrograde(265)).To(BeFalse())
			Expect(el.isRetrograde(-100)).To(BeTrue())
		})
	})

	Context("mean motion", func() {
		It("should derive Saturn's period and sign duration from its elements", func() {
			Expect(approx.MeanMotion(v1alpha1.Saturn)).To(BeNumerically("~", 0.03346, 1e-5))
			Expect(approx.OrbitalPeriod(v1alpha1.Saturn)).To(BeNumerically("~", 10759, 2))
			Expect(SignDays(approx, v1alpha1.Saturn)).To(BeNumerically("~", 896.6, 1))
		})

		It("should report the nodes moving backwards", func() {
			Expect(approx.MeanMotion(v1alpha1.Rahu)).To(BeNumerically("<", 0))
			Expect(approx.MeanMotion(v1alpha1.Ketu)).To(Equal(approx.MeanMotion(v1alpha1.Rahu)))
		})

		It("should move Saturn forward by roughly its mean motion", func() {
			a := approx.Position(v1alpha1.Saturn, J2000)
			b := approx.Position(v1alpha1.Saturn, J2000+100)
			moved := v1alpha1.NormalizeLongitude(b.Longitude - a.Longitude)
			Expect(moved).To(BeNumerically("~", 3.35, 0.6))
		})
	})

	It("should be deterministic", func() {
		jd := J2000 + 12345.678
		for _, planet := range v1alpha1.Planets {
			Expect(approx.Position(planet, jd)).To(Equal(approx.Position(planet, jd)))
		}
	})

	It("should return a zero position for an invalid planet", func() {
		pos := approx.Position(v1alpha1.Planet(99), J2000)
		Expect(pos.Longitude).To(BeZero())
		Expect(approx.MeanMotion(v1alpha1.Planet(99))).To(BeZero())
		Expect(math.IsInf(SignDays(approx, v1alpha1.Planet(99)), 1)).To(BeTrue())
	})
})

var _ = Describe("Nutation", func() {
	It("should stay within the classical 17.2 arcsecond amplitude envelope", func() {
		for t := -2.0; t <= 2.0; t += 0.0137 {
			Expect(math.Abs(Nutation(t))).To(BeNumerically("<", 19.0/3600))
		}
	})
})

var _ = Describe("CachedSource", func() {
	var (
		approx *Approximator
		cached *CachedSource
	)

	BeforeEach(func() {
		approx = NewApproximator()
		cached = NewCachedSource(approx, config.EphemerisConfig{CacheSize: 64, CacheResolutionMinutes: 1})
	})

	It("should return the position computed at the truncated instant", func() {
		jd := J2000 + 0.123456
		tick := math.Floor(jd * 1440)
		want := approx.Position(v1alpha1.Mars, tick/1440)

		Expect(cached.Position(v1alpha1.Mars, jd)).To(Equal(want))
		Expect(cached.Len()).To(Equal(1))

		// same minute hits the cache
		Expect(cached.Position(v1alpha1.Mars, jd+1e-6)).To(Equal(want))
		Expect(cached.Len()).To(Equal(1))
	})

	It("should key entries by planet", func() {
		cached.Position(v1alpha1.Mars, J2000)
		cached.Position(v1alpha1.Venus, J2000)
		Expect(cached.Len()).To(Equal(2))
		Expect(cached.MeanMotion(v1alpha1.Venus)).To(Equal(approx.MeanMotion(v1alpha1.Venus)))
	})

	It("should compute on every call when disabled", func() {
		disabled := NewCachedSource(approx, config.EphemerisConfig{})
		disabled.Position(v1alpha1.Sun, J2000)
		Expect(disabled.Len()).To(BeZero())
	})
})
