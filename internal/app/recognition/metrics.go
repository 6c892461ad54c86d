package recognition

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recognitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voicescribe",
		Name:      "recognitions_total",
		Help:      "Recognition attempts by provider and outcome.",
	}, []string{"provider", "outcome"})

	recognitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voicescribe",
		Name:      "recognition_duration_seconds",
		Help:      "Wall time of provider recognition calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

func observeOutcome(providerID string, out Outcome, seconds float64) {
	label := "text"
	switch out.Kind {
	case OutcomeNoSpeech:
		label = "no_speech"
	case OutcomeFailure:
		label = string(out.Failure)
	}
	recognitionsTotal.WithLabelValues(providerID, label).Inc()
	recognitionDuration.WithLabelValues(providerID).Observe(seconds)
}
