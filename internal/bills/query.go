package bills

import (
	"go.mongodb.org/mongo-driver/bson"
)

// orderClause is one field of a listing's order-by, in precedence order.
type orderClause struct {
	field      string
	descending bool
}

// orderClauses resolves a sort mode to its explicit order-by list. Every
// list ends in the bill number for determinism, except when the listing is
// filtered by number: equality on the number makes that clause redundant and
// it is dropped.
func orderClauses(sort Sort, filter *Filter) []orderClause {
	var clauses []orderClause
	switch sort {
	case SortByCosponsors:
		clauses = []orderClause{{field: "cosponsor_count", descending: true}}
	case SortByLatestTestimony:
		clauses = []orderClause{{field: "latest_testimony_at", descending: true}}
	case SortByTestimonyCount:
		clauses = []orderClause{{field: "testimony_count", descending: true}}
	case SortByNextHearing:
		clauses = []orderClause{{field: "next_hearing_at", descending: true}}
	}

	if filter == nil || filter.Field != FilterByNumber {
		clauses = append(clauses, orderClause{field: "number"})
	}
	return clauses
}

// sortDocument translates the order-by list into a mongo sort document.
func sortDocument(clauses []orderClause) bson.D {
	doc := make(bson.D, 0, len(clauses))
	for _, c := range clauses {
		dir := 1
		if c.descending {
			dir = -1
		}
		doc = append(doc, bson.E{Key: c.field, Value: dir})
	}
	return doc
}

// filterPredicate translates a listing filter into its equality constraint.
func filterPredicate(filter *Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M{string(filter.Field): filter.Value}
}

// keysetPredicate builds the strictly-after condition for a cursor: the
// standard keyset expansion where each branch fixes the preceding order
// fields with equality and ranges on the next one.
func keysetPredicate(clauses []orderClause, keys []interface{}) bson.M {
	branches := make([]bson.M, 0, len(clauses))
	for i, c := range clauses {
		branch := bson.M{}
		for j := 0; j < i; j++ {
			branch[clauses[j].field] = keys[j]
		}
		op := "$gt"
		if c.descending {
			op = "$lt"
		}
		branch[c.field] = bson.M{op: keys[i]}
		branches = append(branches, branch)
	}
	switch len(branches) {
	case 0:
		// Equality on the identifier left nothing to order by.
		return bson.M{}
	case 1:
		return branches[0]
	}
	return bson.M{"$or": branches}
}
