/*
Package catalog holds the static delivery configuration.

PURPOSE:
  The scheduling core is deliberately configuration-free: the activity
  sequence, the concurrency blocks, the day-rate card and the holiday set
  are all data handed in by the caller. This package is where that data
  lives for the standard deployment - the security delivery methodology
  expressed as Go values.

WHY CODE, NOT A CONFIG FILE?
  The activity catalog changes at the cadence of the delivery methodology
  (quarterly at most), is reviewed like code, and every change shifts
  project schedules. Keeping it in a compiled package gives version
  control, code review and type checking for free.

SEE ALSO:
  - groups.go: concurrency block definitions for the decomposer
  - rates.go:  day-rate card, holiday set, working week
*/
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Bogsagz/CSPOG-sub002/schedule"
)

func days(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// Activities returns the canonical ordered delivery activity list. The
// order is the schedule: the timeline builder walks it front to back.
// Activities up to and including the discovery milestone are Discovery
// phase; everything after the cutover is Alpha.
func Activities() []schedule.ActivityTemplate {
	return []schedule.ActivityTemplate{
		{Name: "Security Ownership", InfoAssurerDays: days(1), SecurityArchitectDays: days(0.5)},
		{Name: "Business Impact Assessment", InfoAssurerDays: days(2), SecurityArchitectDays: days(1)},
		{Name: "Threat Assessment", InfoAssurerDays: days(2), SecurityArchitectDays: days(2), SocAnalystDays: days(1)},
		{Name: "Security Risk Appetite", InfoAssurerDays: days(1), SecurityArchitectDays: days(0.5)},
		{Name: "Data Protection Impact Assessment", InfoAssurerDays: days(3), SecurityArchitectDays: days(1)},
		{Name: "Intellectual Property Assessments", InfoAssurerDays: days(1)},
		{Name: "Security Policy Review", InfoAssurerDays: days(1), SecurityArchitectDays: days(1)},
		{Name: "Data Sharing Agreements", InfoAssurerDays: days(2)},
		{Name: "End Security Discovery", Milestone: true},
		{Name: "Secure Design Review", InfoAssurerDays: days(1), SecurityArchitectDays: days(3)},
		{Name: "Network Architecture Review", InfoAssurerDays: days(0.5), SecurityArchitectDays: days(2)},
		{Name: "Cloud Security Assessment", InfoAssurerDays: days(1), SecurityArchitectDays: days(2)},
		{Name: "Identity and Access Management Review", InfoAssurerDays: days(0.5), SecurityArchitectDays: days(2)},
		{Name: "Supply Chain Security Assessment", InfoAssurerDays: days(2), SecurityArchitectDays: days(1)},
		{Name: "Protective Monitoring Design", SecurityArchitectDays: days(1), SocAnalystDays: days(3)},
		{Name: "SOC Onboarding", SecurityArchitectDays: days(0.5), SocAnalystDays: days(3)},
		{Name: "Incident Response Plan", InfoAssurerDays: days(1), SecurityArchitectDays: days(0.5), SocAnalystDays: days(2)},
		{Name: "Vulnerability Management Process", InfoAssurerDays: days(0.5), SecurityArchitectDays: days(1), SocAnalystDays: days(2)},
		{Name: "Penetration Test Scoping", InfoAssurerDays: days(0.5), SecurityArchitectDays: days(1)},
		{Name: "IT Health Check", InfoAssurerDays: days(1), SecurityArchitectDays: days(2), SocAnalystDays: days(1)},
		{Name: "Remediation Planning", InfoAssurerDays: days(1), SecurityArchitectDays: days(1), SocAnalystDays: days(1)},
		{Name: "Security Case Development", InfoAssurerDays: days(3), SecurityArchitectDays: days(1)},
		{Name: "Risk Treatment Plan", InfoAssurerDays: days(2), SecurityArchitectDays: days(0.5)},
		{Name: "Residual Risk Acceptance", InfoAssurerDays: days(1)},
	}
}
