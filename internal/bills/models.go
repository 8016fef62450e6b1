package bills

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bill is one bill document. Number is unique within a court.
type Bill struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Court             string             `bson:"court" json:"court"`
	Number            string             `bson:"number" json:"number"`
	Title             string             `bson:"title" json:"title"`
	PrimarySponsorID  string             `bson:"primary_sponsor_id" json:"primary_sponsor_id"`
	CommitteeID       string             `bson:"committee_id" json:"committee_id"`
	City              string             `bson:"city" json:"city"`
	CosponsorCount    int                `bson:"cosponsor_count" json:"cosponsor_count"`
	TestimonyCount    int                `bson:"testimony_count" json:"testimony_count"`
	LatestTestimonyAt time.Time          `bson:"latest_testimony_at" json:"latest_testimony_at"`
	NextHearingAt     time.Time          `bson:"next_hearing_at" json:"next_hearing_at"`
}

// Sort selects the ordering of a bill listing. Every mode except SortByNumber
// orders descending on its primary field with the bill number as tie-break,
// so pagination is deterministic.
type Sort string

const (
	SortByNumber          Sort = "number"
	SortByCosponsors      Sort = "cosponsors"
	SortByLatestTestimony Sort = "latest_testimony"
	SortByTestimonyCount  Sort = "testimony_count"
	SortByNextHearing     Sort = "next_hearing"
)

// ParseSort maps a query-string value to a Sort, defaulting to SortByNumber.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortByCosponsors, SortByLatestTestimony, SortByTestimonyCount, SortByNextHearing:
		return Sort(s)
	default:
		return SortByNumber
	}
}

// FilterField names the document field a listing filter matches on.
type FilterField string

const (
	FilterByNumber    FilterField = "number"
	FilterBySponsor   FilterField = "primary_sponsor_id"
	FilterByCommittee FilterField = "committee_id"
	FilterByCity      FilterField = "city"
)

// Filter is a single equality constraint on a bill listing.
type Filter struct {
	Field FilterField
	Value string
}

// ParseFilterField maps a query-string value to a FilterField.
func ParseFilterField(s string) (FilterField, bool) {
	switch FilterField(s) {
	case FilterByNumber, FilterBySponsor, FilterByCommittee, FilterByCity:
		return FilterField(s), true
	default:
		return "", false
	}
}
