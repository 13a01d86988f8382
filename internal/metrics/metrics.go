// Package metrics содержит счётчики prometheus для решений о доступе.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AccessDecisions считает результаты проверок доступа по исходу:
// allow, deny_expired, deny_insufficient_plan, deny_no_user, deny_fetch_error.
var AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "family_budget_access_decisions_total",
	Help: "Access validation outcomes by result.",
}, []string{"result"})
