package listview

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

type ticket struct {
	ID        string
	Customer  string
	Status    string
	Category  string
	CreatedAt string
	Amount    string
	Details   string
}

var ticketSchema = Schema[ticket]{
	Fields: map[string]Field[ticket]{
		"id":            {Kind: Text, Get: func(t ticket) string { return t.ID }},
		"customer_name": {Kind: Text, Get: func(t ticket) string { return t.Customer }},
		"status":        {Kind: Text, Get: func(t ticket) string { return t.Status }},
		"category":      {Kind: Text, Get: func(t ticket) string { return t.Category }},
		"created_at":    {Kind: Time, Get: func(t ticket) string { return t.CreatedAt }},
		"amount":        {Kind: Number, Get: func(t ticket) string { return t.Amount }},
		"product":       {Kind: Text, Get: func(t ticket) string { return ParseDetails(t.Details).Text("productName") }},
	},
	Search: []string{"customer_name", "id", "product"},
	Facets: map[string]Facet[ticket]{
		"group": func(t ticket, v string) bool {
			switch v {
			case "open":
				return t.Status == "submitted" || t.Status == "in_progress"
			case "closed":
				return t.Status == "resolved" || t.Status == "rejected"
			}
			return false
		},
	},
	DateField:   "created_at",
	DefaultSort: SortSpec{Field: "created_at", Order: Desc},
	ID:          func(t ticket) string { return t.ID },
}

var (
	statuses   = []string{"submitted", "in_progress", "resolved", "rejected"}
	categories = []string{"billing_issue", "product_issue", "other"}
	names      = []string{"John Doe", "jane roe", "Ravi Kumar", "", "JOHNNY Walker", "Priya"}
)

// randomTickets builds a reproducible store with duplicate keys, blanks and
// unparsable values mixed in.
func randomTickets(seed int64, n int) []ticket {
	rng := rand.New(rand.NewSource(seed))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]ticket, n)
	for i := range out {
		created := base.Add(time.Duration(rng.Intn(90*24)) * time.Hour).Format(time.RFC3339)
		if rng.Intn(15) == 0 {
			created = "not a date"
		}
		amount := strconv.Itoa(rng.Intn(50))
		if rng.Intn(10) == 0 {
			amount = "n/a"
		}
		out[i] = ticket{
			ID:        fmt.Sprintf("T-%03d", i),
			Customer:  names[rng.Intn(len(names))],
			Status:    statuses[rng.Intn(len(statuses))],
			Category:  categories[rng.Intn(len(categories))],
			CreatedAt: created,
			Amount:    amount,
			Details:   `{"productName":"Seat Cover ` + strconv.Itoa(rng.Intn(3)) + `"}`,
		}
	}
	return out
}

func ids(ts []ticket) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
