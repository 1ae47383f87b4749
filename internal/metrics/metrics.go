package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EventTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "evenoo_event_transitions_total",
	Help: "Event lifecycle transitions by action and resulting status",
}, []string{"action", "status"})

var TicketsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "evenoo_tickets_issued_total",
	Help: "Number of tickets issued",
})

var TicketIDCollisions = promauto.NewCounter(prometheus.CounterOpts{
	Name: "evenoo_ticket_id_collisions_total",
	Help: "Number of generated ticket ids rejected as duplicates",
})

var CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "evenoo_check_ins_total",
	Help: "Check-in attempts by result",
}, []string{"result"})

var WalletOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "evenoo_wallet_operations_total",
	Help: "Wallet ledger operations by type and outcome",
}, []string{"type", "outcome"})

var RegistrationFees = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "evenoo_registration_fee",
	Help:    "Frozen registration fee amounts",
	Buckets: []float64{0, 50, 100, 250, 500, 1000, 2500, 5000},
}, []string{"type"})

var NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "evenoo_notifications_delivered_total",
	Help: "Queued notifications handed to the pusher, by outcome",
}, []string{"outcome"})

var SessionResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "evenoo_session_resolve_duration_seconds",
	Help: "Time spent resolving a bearer token to an actor",
})
