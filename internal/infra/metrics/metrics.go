package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovementsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depotd_movements_appended_total",
		Help: "Ledger movements appended, by reason.",
	}, []string{"reason"})

	DepositToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depotd_deposit_toggles_total",
		Help: "Deposit approval flag toggles, by flag.",
	}, []string{"flag"})

	SequenceRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depotd_sequence_retries_total",
		Help: "Sequence allocations retried after a write conflict.",
	})

	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "depotd_notify_failures_total",
		Help: "Notification deliveries that failed (non-fatal).",
	})
)
