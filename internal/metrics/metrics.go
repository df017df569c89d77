package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GameMetrics exports game events to Prometheus. It satisfies app.Recorder.
type GameMetrics struct {
	ActiveSessions prometheus.Gauge
	GamesStarted   prometheus.Counter
	RoundsStarted  prometheus.Counter
	Answers        *prometheus.CounterVec
	GamesFinished  *prometheus.CounterVec
}

// New registers the game collectors with reg.
func New(reg prometheus.Registerer) *GameMetrics {
	factory := promauto.With(reg)
	return &GameMetrics{
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "trivia",
			Name:      "active_sessions",
			Help:      "Number of provisioned game sessions",
		}),
		GamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "games_started_total",
			Help:      "Total number of games started",
		}),
		RoundsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "rounds_started_total",
			Help:      "Total number of rounds started, including the first round of each game",
		}),
		Answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Name:      "answers_total",
				Help:      "Answer submissions by outcome",
			},
			[]string{"outcome"}, // correct, wrong
		),
		GamesFinished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Name:      "games_finished_total",
				Help:      "Finished games by how the winner was decided",
			},
			[]string{"reason"}, // score, exhausted
		),
	}
}

func (m *GameMetrics) SessionProvisioned() { m.ActiveSessions.Inc() }
func (m *GameMetrics) SessionReleased()    { m.ActiveSessions.Dec() }
func (m *GameMetrics) GameStarted()        { m.GamesStarted.Inc() }
func (m *GameMetrics) RoundStarted()       { m.RoundsStarted.Inc() }

func (m *GameMetrics) AnswerSubmitted(correct bool) {
	outcome := "wrong"
	if correct {
		outcome = "correct"
	}
	m.Answers.WithLabelValues(outcome).Inc()
}

func (m *GameMetrics) GameFinished(reason string) {
	m.GamesFinished.WithLabelValues(reason).Inc()
}
