package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ContributionsAccepted counts ledger appends that committed.
	ContributionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_contributions_accepted_total",
		Help: "Contributions accepted into the ledger.",
	})

	// ContributionsRejected counts contribute calls turned away, by reason.
	ContributionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bargain_contributions_rejected_total",
		Help: "Contribute calls rejected, labelled by reason.",
	}, []string{"reason"})

	// ActivitiesCreated counts new bargain activities.
	ActivitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_activities_created_total",
		Help: "Bargain activities created.",
	})

	// ActivitiesClosed counts terminal transitions, by final status.
	ActivitiesClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bargain_activities_closed_total",
		Help: "Activities reaching a terminal status, labelled by status.",
	}, []string{"status"})

	// SweepsRun counts expiry sweeper passes.
	SweepsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_sweeps_run_total",
		Help: "Expiry sweeper passes completed.",
	})

	// SweepExpired counts activities the sweeper moved to EXPIRED.
	SweepExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bargain_sweep_expired_total",
		Help: "Activities transitioned to EXPIRED by the sweeper.",
	})
)
