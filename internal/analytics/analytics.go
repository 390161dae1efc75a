// Package analytics turns closed deals into yearly revenue summaries.
package analytics

import (
	"time"

	"github.com/closetrack/api-crm/internal/commission"
	"github.com/closetrack/api-crm/internal/csvimport"
	"github.com/closetrack/api-crm/internal/deal"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"github.com/samber/lo"
)

// CloseDateUTC resolves a deal's effective close date. The user-entered
// close date, when parseable, wins over the automatically stamped
// closed-at timestamp; year/month bucketing depends on this precedence.
func CloseDateUTC(closeDate string, closedAt *time.Time) *time.Time {
	if iso := csvimport.ParseFlexibleDate(closeDate); iso != "" {
		t, err := time.Parse("2006-01-02", iso)
		if err == nil {
			t = t.UTC()
			return &t
		}
	}
	if closedAt != nil {
		t := closedAt.UTC()
		return &t
	}
	return nil
}

// MonthlyBucket is one month's closed-deal totals.
type MonthlyBucket struct {
	Month int     `json:"month"`
	Deals int     `json:"deals"`
	GCI   float64 `json:"gci"`
	Net   float64 `json:"net"`
}

// Summary is a workspace's revenue picture for one calendar year.
type Summary struct {
	Year        int             `json:"year"`
	TotalDeals  int             `json:"totalDeals"`
	ClosedDeals int             `json:"closedDeals"`
	GCI         float64         `json:"gci"`
	Net         float64         `json:"net"`
	Months      []MonthlyBucket `json:"months"`
}

// BuildSummary prices every closed deal that falls in the given year and
// buckets the results by month. Deals whose status is not in the closed
// lifecycle stage, or that have no usable close date, are counted only
// in the total.
func BuildSummary(deals []deal.Deal, year int) Summary {
	s := Summary{Year: year, TotalDeals: len(deals)}

	type pricedDeal struct {
		month int
		gci   float64
		net   float64
	}

	closed := lo.FilterMap(deals, func(d deal.Deal, _ int) (pricedDeal, bool) {
		if d.PipelineStatus == nil || d.PipelineStatus.LifecycleStage != pipelinestatus.StageClosed {
			return pricedDeal{}, false
		}
		when := CloseDateUTC(d.CloseDate, d.ClosedAt)
		if when == nil || when.Year() != year {
			return pricedDeal{}, false
		}

		source := d.LeadSource
		if source == nil {
			source = &leadsource.LeadSource{}
		}
		in := source.PayoutInput(d.Financials())
		return pricedDeal{
			month: int(when.Month()),
			gci:   commission.ActualGCI(in),
			net:   commission.NetCommission(in),
		}, true
	})

	byMonth := lo.GroupBy(closed, func(p pricedDeal) int { return p.month })
	for month := 1; month <= 12; month++ {
		bucket := MonthlyBucket{Month: month}
		for _, p := range byMonth[month] {
			bucket.Deals++
			bucket.GCI += p.gci
			bucket.Net += p.net
		}
		s.ClosedDeals += bucket.Deals
		s.GCI += bucket.GCI
		s.Net += bucket.Net
		s.Months = append(s.Months, bucket)
	}

	return s
}
