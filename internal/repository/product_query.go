package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sort fields and orders accepted by product listings
const (
	SortByPrice = "price"
	SortByDate  = "date"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	defaultPage  int64 = 1
	defaultLimit int64 = 10
)

// ProductQuery describes an optional set of listing filters. Zero value is a
// plain unfiltered listing with default pagination. MinPrice and MaxPrice are
// pointers so that an absent bound is distinguishable from a bound of 0.
type ProductQuery struct {
	Search    string
	Name      string
	MinPrice  *float64
	MaxPrice  *float64
	Category  string
	Status    string
	SortBy    string
	SortOrder string
	Page      int64
	Limit     int64
}

// Pagination is the listing metadata returned alongside each page.
type Pagination struct {
	TotalResults int64 `json:"totalResults"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int64 `json:"currentPage"`
	PageSize     int64 `json:"pageSize"`
}

func (q ProductQuery) page() int64 {
	if q.Page < 1 {
		return defaultPage
	}
	return q.Page
}

func (q ProductQuery) limit() int64 {
	if q.Limit < 1 {
		return defaultLimit
	}
	return q.Limit
}

// Skip returns the number of documents to skip for the requested page.
func (q ProductQuery) Skip() int64 {
	return (q.page() - 1) * q.limit()
}

// Filter builds the store filter document. Search matches any of the four
// text fields case-insensitively; price bounds are inclusive and independent;
// name and category are case-insensitive substring matches; status is exact.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"brand": re},
			bson.M{"flavor": re},
		}
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	if q.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
	}

	if q.Category != "" {
		filter["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Category), Options: "i"}
	}

	if q.Status != "" {
		filter["status"] = q.Status
	}

	return filter
}

// SortSpec returns the sort document, or nil when no sort stage applies.
// SortBy defaults to "date" (createdAt) only when empty; an unrecognized
// value leaves the listing unsorted. SortOrder defaults to descending.
func (q ProductQuery) SortSpec() bson.D {
	dir := -1
	if q.SortOrder == SortOrderAsc {
		dir = 1
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}

	switch sortBy {
	case SortByPrice:
		return bson.D{{Key: "price", Value: dir}}
	case SortByDate:
		return bson.D{{Key: "createdAt", Value: dir}}
	default:
		return nil
	}
}

// FindOptions builds the paginated find options with the sort stage applied.
func (q ProductQuery) FindOptions() *options.FindOptions {
	opts := options.Find().SetLimit(q.limit()).SetSkip(q.Skip())
	if sort := q.SortSpec(); sort != nil {
		opts.SetSort(sort)
	}
	return opts
}

// Paginate computes the listing metadata for a total that was counted against
// the same filter as the page itself.
func (q ProductQuery) Paginate(totalResults int64) Pagination {
	limit := q.limit()
	return Pagination{
		TotalResults: totalResults,
		TotalPages:   (totalResults + limit - 1) / limit,
		CurrentPage:  q.page(),
		PageSize:     limit,
	}
}
