// Package entitlement содержит чистую логику проверки прав доступа по подписке:
// сравнение тарифных планов и проверку действия подписки по статусу
// и пробному периоду. Функции детерминированы и не имеют побочных эффектов.
package entitlement

import (
	"time"

	"github.com/fambudgeteer/family-budget/internal/models"
)

// Тарифные планы в порядке возрастания уровня.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanFamily  = "family"
)

// Статусы подписки.
const (
	StatusTrial    = "trial"
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
)

// Причины отказа в доступе.
const (
	ReasonExpired          = "expired"
	ReasonInsufficientPlan = "insufficient_plan"
)

// Decision результат проверки доступа: разрешение либо отказ с причиной.
type Decision struct {
	Allowed bool
	Reason  string
}

// planLevels фиксирует порядок планов: free < premium < family.
var planLevels = map[string]int{
	PlanFree:    0,
	PlanPremium: 1,
	PlanFamily:  2,
}

// PlanLevel возвращает уровень тарифного плана.
// Неизвестный план получает уровень 0 — доступ закрывается, а не открывается.
func PlanLevel(plan string) int {
	return planLevels[plan]
}

// IsEntitled проверяет, действует ли подписка в момент now.
// Подписка действует, если статус active, либо статус trial и пробный
// период ещё не истёк. Статус trial без даты окончания считается истёкшим.
func IsEntitled(sub models.Subscription, now time.Time) bool {
	switch sub.Status {
	case StatusActive:
		return true
	case StatusTrial:
		return sub.TrialEnd != nil && sub.TrialEnd.After(now)
	default:
		return false
	}
}

// MeetsPlan проверяет, достаточен ли план подписки для требуемого уровня.
func MeetsPlan(plan, requiredPlan string) bool {
	return PlanLevel(plan) >= PlanLevel(requiredPlan)
}

// Decide принимает решение о доступе по снимку подписки и требуемому плану.
// При одновременном нарушении обоих условий причиной отказа
// становится expired.
func Decide(sub models.Subscription, requiredPlan string, now time.Time) Decision {
	if !IsEntitled(sub, now) {
		return Decision{Allowed: false, Reason: ReasonExpired}
	}
	if !MeetsPlan(sub.Plan, requiredPlan) {
		return Decision{Allowed: false, Reason: ReasonInsufficientPlan}
	}
	return Decision{Allowed: true}
}
