package timeslot

// SortColumns whitelists the sort keys accepted from clients.
var SortColumns = map[string]string{
	"time_asc":      "slot_time ASC",
	"time_desc":     "slot_time DESC",
	"capacity_asc":  "max_capacity ASC, slot_time ASC",
	"capacity_desc": "max_capacity DESC, slot_time ASC",
	"created_desc":  "created_at DESC, id DESC",
}

const DefaultSort = "time_asc"

func OrderClause(sort string) string {
	if c, ok := SortColumns[sort]; ok {
		return c
	}
	return SortColumns[DefaultSort]
}
