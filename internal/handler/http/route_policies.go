// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/kirana-ledger/models"
)

// routePolicy binds a route to the authority its caller must hold.
type routePolicy struct {
	method    string
	pattern   string
	authority models.Authority
	handler   func(h *Handler) http.HandlerFunc
}

// routePolicies is the single source of routes served by [Handler.Init].
var routePolicies = []routePolicy{
	{http.MethodPost, "/kirana/authenticate", models.AuthorityNone, func(h *Handler) http.HandlerFunc { return h.login }},
	{http.MethodGet, "/kirana/users", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.listUsers }},
	{http.MethodPost, "/kirana/new", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.createUser }},
	{http.MethodPut, "/kirana/{userId}", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.updateUser }},
	{http.MethodDelete, "/kirana/{userId}", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.deleteUser }},

	{http.MethodGet, "/transactions", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.listTransactions }},
	{http.MethodPost, "/transactions/admin", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.createTransaction }},
	{http.MethodPost, "/transactions/employee", models.AuthorityEmployee, func(h *Handler) http.HandlerFunc { return h.createEmployeeTransaction }},
	{http.MethodPut, "/transactions/{transactionId}", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.updateTransaction }},
	{http.MethodDelete, "/transactions/{transactionId}", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.deleteTransaction }},

	{http.MethodGet, "/reports/weekly", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.report(models.PeriodWeekly) }},
	{http.MethodGet, "/reports/monthly", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.report(models.PeriodMonthly) }},
	{http.MethodGet, "/reports/yearly", models.AuthorityUser, func(h *Handler) http.HandlerFunc { return h.report(models.PeriodYearly) }},

	{http.MethodGet, "/version", models.AuthorityNone, func(h *Handler) http.HandlerFunc { return h.getServerVersion }},
}

func policyKey(method, pattern string) string {
	return method + " " + pattern
}

// validateRoutePolicies walks router and fails on any route that has no
// entry in policies.
func validateRoutePolicies(router chi.Routes, policies []routePolicy) error {
	known := make(map[string]struct{}, len(policies))
	for _, p := range policies {
		known[policyKey(p.method, p.pattern)] = struct{}{}
	}

	var missing []string
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if _, ok := known[policyKey(method, route)]; !ok {
			missing = append(missing, policyKey(method, route))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking routes: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRouteWithoutPolicy, strings.Join(missing, ", "))
	}
	return nil
}
