package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "takgo_games_created_total",
		Help: "Number of games created.",
	})

	turnsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "takgo_turns_applied_total",
		Help: "Number of turns accepted and applied.",
	})

	turnsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "takgo_turns_rejected_total",
		Help: "Number of turns rejected, by reason.",
	}, []string{"reason"})
)
