// Package metrics defines and registers the custom Prometheus metrics of the
// CodeBlaze portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "codeblaze"

// ── Job board metrics ─────────────────────────────────────────────────────────

// JobMutationsTotal counts successful writes to the job board.
// Label:
//   - op: "create", "update" or "delete"
var JobMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_mutations_total",
		Help:      "Total number of job postings created, updated or deleted.",
	},
	[]string{"op"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts account flow actions by outcome.
// Labels:
//   - action: "register", "verify_otp", "login", "reset_password"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of account flow actions, by action and result.",
	},
	[]string{"action", "result"},
)

// VerificationCodesIssuedTotal counts OTPs and reset tokens handed out.
// Label:
//   - purpose: "registration" or "password_reset"
var VerificationCodesIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_codes_issued_total",
		Help:      "Total number of verification codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailSentTotal counts delivery attempts.
// Labels:
//   - category: "otp" or "password_reset"
//   - result: "sent", "failed" or "dropped"
var MailSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sent_total",
		Help:      "Total number of outbound mails, by category and result.",
	},
	[]string{"category", "result"},
)

// MailQueueDepth tracks mails waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MailSendDuration measures a single provider call.
var MailSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_send_duration_seconds",
		Help:      "Duration of a single mail provider call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"category"},
)
