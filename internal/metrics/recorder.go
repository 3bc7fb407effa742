package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects gameplay metrics. It satisfies app.Observer and is shared
// by every engine in the process.
type Recorder struct {
	registry      *prometheus.Registry
	answers       *prometheus.CounterVec
	rounds        prometheus.Counter
	supplyFailure prometheus.Counter
	accuracy      prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movie_quiz_answers_total",
			Help: "Answers submitted, by result.",
		}, []string{"result"}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movie_quiz_rounds_total",
			Help: "Completed quiz rounds.",
		}),
		supplyFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movie_quiz_supply_failures_total",
			Help: "Question supply failures shown to players.",
		}),
		accuracy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "movie_quiz_round_accuracy_ratio",
			Help:    "Share of correct answers per completed round.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
	r.registry.MustRegister(
		r.answers,
		r.rounds,
		r.supplyFailure,
		r.accuracy,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) AnswerSubmitted(correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	r.answers.WithLabelValues(result).Inc()
}

func (r *Recorder) RoundCompleted(correct, total int) {
	r.rounds.Inc()
	if total > 0 {
		r.accuracy.Observe(float64(correct) / float64(total))
	}
}

func (r *Recorder) SupplyFailed() {
	r.supplyFailure.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
