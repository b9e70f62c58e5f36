package inventory

import (
	"math"
	"time"

	"foodflow/domain"
)

// FarFuture is the days-remaining value of an item whose expiration date
// cannot be parsed.
const FarFuture int64 = math.MaxInt64

const (
	progressHorizonDays = 100
	minProgress         = 0.1
	maxProgress         = 1.0

	secondsPerDay = 24 * 60 * 60
)

type Tier struct {
	Name  string
	Color string
}

var (
	TierCritical = Tier{Name: "critical", Color: "#FF0000"}
	TierWarning  = Tier{Name: "warning", Color: "#FFA500"}
	TierCaution  = Tier{Name: "caution", Color: "#00CED1"}
	TierFresh    = Tier{Name: "fresh", Color: "#228B22"}
)

// DaysRemaining returns the whole calendar days from now's date to the
// expiration date, negative once it has passed.
func DaysRemaining(expirationDate string, now time.Time) int64 {
	exp, err := time.Parse(domain.DateLayout, expirationDate)
	if err != nil {
		return FarFuture
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return (exp.Unix() - today.Unix()) / secondsPerDay
}

// ExpirationProgress maps days remaining onto [0.1, 1.0]; the closer to
// expiry, the fuller the bar.
func ExpirationProgress(daysRemaining int64) float64 {
	switch {
	case daysRemaining <= 0:
		return maxProgress
	case daysRemaining >= progressHorizonDays:
		return minProgress
	}

	p := 1 - float64(daysRemaining)/progressHorizonDays
	return math.Max(p, minProgress)
}

func ExpirationTier(daysRemaining int64) Tier {
	switch {
	case daysRemaining <= 2:
		return TierCritical
	case daysRemaining <= 7:
		return TierWarning
	case daysRemaining <= 14:
		return TierCaution
	default:
		return TierFresh
	}
}

func ToResponse(item domain.InventoryItem, now time.Time) domain.InventoryItemResponse {
	days := DaysRemaining(item.ExpirationDate, now)
	tier := ExpirationTier(days)

	return domain.InventoryItemResponse{
		ID:                 item.ID,
		Name:               item.Name,
		Location:           item.Location,
		Quantity:           item.Quantity,
		ExpirationDate:     item.ExpirationDate,
		ImageURL:           item.ImageURL,
		DaysRemaining:      days,
		ExpirationProgress: ExpirationProgress(days),
		ExpirationTier:     tier.Name,
		ExpirationColor:    tier.Color,
	}
}

func ToResponses(items []domain.InventoryItem, now time.Time) []domain.InventoryItemResponse {
	out := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToResponse(item, now))
	}
	return out
}
